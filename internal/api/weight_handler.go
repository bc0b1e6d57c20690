package api

import (
	"concarne/health-app/internal/domain"
	"concarne/health-app/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightHandler holds the weight service dependency.
type WeightHandler struct {
	weightService service.WeightService
}

// NewWeightHandler creates a new WeightHandler.
func NewWeightHandler(weightService service.WeightService) *WeightHandler {
	return &WeightHandler{weightService: weightService}
}

// --- DTOs ---

// CreateWeightRequest defines the expected JSON for recording a weight.
// Date is optional and defaults to now.
type CreateWeightRequest struct {
	WeightKg float64    `json:"weightKg" binding:"required,gt=0"`
	Date     *time.Time `json:"date"`
}

// WeightResponse is the DTO for returning a weight entry.
type WeightResponse struct {
	ID       string    `json:"id"`
	WeightKg float64   `json:"weightKg"`
	Date     time.Time `json:"date"`
}

// MapWeightToResponse converts a domain.WeightEntry to WeightResponse DTO.
func MapWeightToResponse(e *domain.WeightEntry) WeightResponse {
	if e == nil {
		return WeightResponse{}
	}
	return WeightResponse{
		ID:       e.ID.Hex(),
		WeightKg: e.WeightKg,
		Date:     e.Date,
	}
}

// MapWeightsToResponse converts a slice of entries to response DTOs.
func MapWeightsToResponse(entries []domain.WeightEntry) []WeightResponse {
	responses := make([]WeightResponse, len(entries))
	for i := range entries {
		responses[i] = MapWeightToResponse(&entries[i])
	}
	return responses
}

// --- Handler Methods ---

// CreateWeight records a weight measurement for the authenticated user.
func (h *WeightHandler) CreateWeight(c *gin.Context) {
	var req CreateWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID := currentUserID(c)
	if userID == primitive.NilObjectID {
		return
	}

	date := time.Time{}
	if req.Date != nil {
		date = *req.Date
	}

	entry, err := h.weightService.AddEntry(c.Request.Context(), userID, req.WeightKg, date)
	if err != nil {
		if errors.Is(err, service.ErrWeightValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to record weight.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapWeightToResponse(entry))
}

// ListWeights returns the authenticated user's weight history.
func (h *WeightHandler) ListWeights(c *gin.Context) {
	userID := currentUserID(c)
	if userID == primitive.NilObjectID {
		return
	}

	entries, err := h.weightService.ListEntries(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve weight entries.")
		return
	}
	if entries == nil {
		c.JSON(http.StatusOK, []WeightResponse{})
		return
	}

	c.JSON(http.StatusOK, MapWeightsToResponse(entries))
}

// DeleteWeight removes one of the authenticated user's weight entries.
func (h *WeightHandler) DeleteWeight(c *gin.Context) {
	userID := currentUserID(c)
	if userID == primitive.NilObjectID {
		return
	}
	entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid weight entry ID format.")
		return
	}

	if err := h.weightService.DeleteEntry(c.Request.Context(), entryID, userID); err != nil {
		if errors.Is(err, service.ErrWeightNotFound) {
			abortWithError(c, http.StatusNotFound, "Weight entry not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete weight entry.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
