package api

import (
	"concarne/health-app/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler serves the authenticated user's profile.
type UserHandler struct {
	authService service.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// UpdateHeightRequest defines the expected JSON for a height update.
type UpdateHeightRequest struct {
	HeightCm int `json:"heightCm" binding:"required,gt=0"`
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c *gin.Context) {
	userID := currentUserID(c)
	if userID == primitive.NilObjectID {
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile.")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateHeight stores the user's height.
func (h *UserHandler) UpdateHeight(c *gin.Context) {
	var req UpdateHeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID := currentUserID(c)
	if userID == primitive.NilObjectID {
		return
	}

	user, err := h.authService.UpdateHeight(c.Request.Context(), userID, req.HeightCm)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHeightValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, "User not found.")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update height.")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}
