package router

import (
	"github.com/beego/beego/v2/server/web"

	"github.com/aihub/docqa-go/app/controllers"
	"github.com/aihub/docqa-go/app/middleware"
	"github.com/aihub/docqa-go/internal/metrics"
)

// Init registers all routes. Must be called after controllers are initialized.
func Init() {
	web.InsertFilter("/*", web.BeforeRouter, middleware.CORSMiddleware)

	web.Router("/", &controllers.RootController{}, "get:Index")
	web.Router("/healthz", &controllers.HealthController{}, "get:Health")
	web.Handler("/metrics", metrics.Handler())

	authController := &controllers.AuthController{}
	web.Router("/api/auth/register", authController, "post:Register")
	web.Router("/api/auth/login", authController, "post:Login")

	documentController := &controllers.DocumentController{}
	web.Router("/api/documents/upload", documentController, "post:Upload")

	queryController := &controllers.QueryController{}
	web.Router("/api/ask", queryController, "post:Ask")
}
