package controllers

import (
	"net/http"

	"github.com/beego/beego/v2/server/web"

	"github.com/aihub/docqa-go/internal/auth"
	apperrors "github.com/aihub/docqa-go/internal/errors"
)

// BaseController provides helpers for consistent JSON responses.
type BaseController struct {
	web.Controller
}

// JSON writes a JSON response with the supplied HTTP status code.
func (c *BaseController) JSON(status int, payload interface{}) {
	c.Ctx.Output.SetStatus(status)
	c.Data["json"] = payload
	c.ServeJSON()
}

// JSONSuccess writes a standard success envelope.
func (c *BaseController) JSONSuccess(data interface{}) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// JSONError writes an error envelope with message.
func (c *BaseController) JSONError(status int, message string) {
	c.JSON(status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// JSONAppError writes an error envelope derived from an AppError.
func (c *BaseController) JSONAppError(err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		c.JSON(appErr.HTTPCode, map[string]interface{}{
			"success": false,
			"code":    appErr.Code,
			"error":   appErr.Message,
		})
		return
	}
	c.JSONError(http.StatusInternalServerError, err.Error())
}

// getAuthenticatedUserID 从Authorization header验证JWT并返回用户ID
func (c *BaseController) getAuthenticatedUserID() (uint, bool) {
	jwtService := JWTService()
	if jwtService == nil {
		c.JSONError(http.StatusInternalServerError, "auth service not initialized")
		return 0, false
	}

	token, err := auth.ExtractTokenFromHeader(c.Ctx.Input.Header("Authorization"))
	if err != nil {
		c.JSONError(http.StatusUnauthorized, err.Error())
		return 0, false
	}

	claims, err := jwtService.ValidateToken(token)
	if err != nil {
		c.JSONError(http.StatusUnauthorized, "invalid or expired token")
		return 0, false
	}

	return claims.UserID, true
}
