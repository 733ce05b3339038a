package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/aihub/docqa-go/internal/services"
)

// AuthController 注册与登录
type AuthController struct {
	BaseController
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (c *AuthController) Register() {
	var req services.RegisterRequest
	if err := json.Unmarshal(c.Ctx.Input.RequestBody, &req); err != nil {
		c.JSONError(http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := UserService().Register(req)
	if err != nil {
		c.JSONAppError(err)
		return
	}

	c.JSONSuccess(map[string]interface{}{
		"user_id":  user.UserID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// POST /api/auth/login
func (c *AuthController) Login() {
	var req loginRequest
	if err := json.Unmarshal(c.Ctx.Input.RequestBody, &req); err != nil {
		c.JSONError(http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSONError(http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := UserService().Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSONAppError(err)
		return
	}

	token, err := JWTService().GenerateToken(user.UserID, user.Username)
	if err != nil {
		c.JSONError(http.StatusInternalServerError, "failed to issue token")
		return
	}

	c.JSONSuccess(map[string]interface{}{
		"token":    token,
		"user_id":  user.UserID,
		"username": user.Username,
	})
}
