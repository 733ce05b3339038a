package controllers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/aihub/docqa-go/internal/config"
	"github.com/aihub/docqa-go/internal/logger"
)

// DocumentController 文档上传
type DocumentController struct {
	BaseController
}

// POST /api/documents/upload
func (c *DocumentController) Upload() {
	userID, ok := c.getAuthenticatedUserID()
	if !ok {
		return
	}

	file, header, err := c.GetFile("file")
	if err != nil || file == nil {
		c.JSONError(http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if maxSize := config.AppConfig.Ingest.MaxUploadSize; maxSize > 0 && header.Size > maxSize {
		c.JSONError(http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	result, err := DocService().Ingest(c.Ctx.Request.Context(), userID, header.Filename, file)
	if err != nil {
		logger.Warn("文档上传处理失败",
			zap.Uint("user_id", userID),
			zap.String("filename", header.Filename),
			zap.Error(err))
		c.JSONAppError(err)
		return
	}

	c.JSONSuccess(result)
}
