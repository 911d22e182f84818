package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/domain/backup"
)

// maxBackupSize caps accepted restore uploads at 64 MiB.
const maxBackupSize = 64 << 20

// BackupHandler provides backup export and restore endpoints.
type BackupHandler struct {
	base    *BaseHandler
	service *backup.Service
}

// NewBackupHandler creates a new backup handler.
func NewBackupHandler(base *BaseHandler, service *backup.Service) *BackupHandler {
	return &BackupHandler{base: base, service: service}
}

// RegisterRoutes registers backup endpoints.
func (h *BackupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/export", h.Export)
	rg.POST("/restore", h.Restore)
}

// Export handles GET /backup/export. The response body is a compressed
// snapshot suitable for a later restore.
func (h *BackupHandler) Export(c *gin.Context) {
	data, err := h.service.Export(c.Request.Context())
	if err != nil {
		h.base.Error(c, err)
		return
	}

	filename := fmt.Sprintf("viten-backup-%s.json.zst", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/zstd", data)
}

// Restore handles POST /backup/restore. The raw request body is the snapshot,
// either compressed as exported or plain JSON.
func (h *BackupHandler) Restore(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBackupSize))
	if err != nil {
		h.base.Error(c, apperror.NewValidation("failed to read backup payload").WithDetail("error", err.Error()))
		return
	}

	if err := h.service.Restore(c.Request.Context(), data); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.Success(c, "backup restored")
}
