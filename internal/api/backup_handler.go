package api

import (
	"concarne/health-app/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BackupHandler holds the backup service dependency.
type BackupHandler struct {
	backupService service.BackupService
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backupService service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// BackupResponse points the caller at the exported archive.
type BackupResponse struct {
	ObjectKey   string `json:"objectKey"`
	DownloadURL string `json:"downloadUrl"`
	ExpiresIn   int64  `json:"expiresInSeconds"`
}

// Export serializes the authenticated user's data to object storage and
// returns a presigned download URL.
func (h *BackupHandler) Export(c *gin.Context) {
	userID := currentUserID(c)
	if userID == primitive.NilObjectID {
		return
	}

	result, err := h.backupService.Export(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to export backup.")
		return
	}

	c.JSON(http.StatusOK, BackupResponse{
		ObjectKey:   result.ObjectKey,
		DownloadURL: result.DownloadURL,
		ExpiresIn:   int64(result.ExpiresIn / time.Second),
	})
}
