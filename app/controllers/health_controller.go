package controllers

// RootController 服务信息
type RootController struct {
	BaseController
}

// GET /
func (c *RootController) Index() {
	c.JSONSuccess(map[string]interface{}{
		"service": "docqa",
		"status":  "running",
	})
}

// HealthController 健康检查
type HealthController struct {
	BaseController
}

// GET /healthz
func (c *HealthController) Health() {
	c.JSONSuccess(map[string]interface{}{
		"status": "healthy",
	})
}
