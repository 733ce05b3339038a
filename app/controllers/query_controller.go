package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// QueryController 文档问答
type QueryController struct {
	BaseController
}

type askRequest struct {
	Question string `json:"question"`
	Source   string `json:"source,omitempty"`
}

// POST /api/ask
func (c *QueryController) Ask() {
	userID, ok := c.getAuthenticatedUserID()
	if !ok {
		return
	}

	var req askRequest
	if err := json.Unmarshal(c.Ctx.Input.RequestBody, &req); err != nil {
		c.JSONError(http.StatusBadRequest, "invalid request body")
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		c.JSONError(http.StatusBadRequest, "question is required")
		return
	}

	answer, err := DocService().Answer(c.Ctx.Request.Context(), userID, req.Question, req.Source)
	if err != nil {
		c.JSONAppError(err)
		return
	}

	c.JSONSuccess(map[string]interface{}{
		"answer": answer,
	})
}
