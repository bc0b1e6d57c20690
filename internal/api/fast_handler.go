package api

import (
	"concarne/health-app/internal/domain"
	"concarne/health-app/internal/fasting"
	"concarne/health-app/internal/service"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FastHandler holds the fast service dependency.
type FastHandler struct {
	fastService  service.FastService
	tickInterval time.Duration
}

// NewFastHandler creates a new FastHandler. tickInterval drives the
// snapshot stream cadence.
func NewFastHandler(fastService service.FastService, tickInterval time.Duration) *FastHandler {
	return &FastHandler{fastService: fastService, tickInterval: tickInterval}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateFastRequest defines the expected JSON for creating a fast.
type CreateFastRequest struct {
	Duration int `json:"duration" binding:"required,gt=0"` // target hours
}

// StartFastRequest carries an optional caller-supplied start time;
// omitted means "now".
type StartFastRequest struct {
	StartTime *time.Time `json:"startTime"`
}

// EndFastRequest carries an optional caller-supplied end time;
// omitted means "now".
type EndFastRequest struct {
	EndTime *time.Time `json:"endTime"`
}

// UpdateStartTimeRequest amends the start time of a started fast.
type UpdateStartTimeRequest struct {
	StartTime time.Time `json:"startTime" binding:"required"`
}

// UpdateEndTimeRequest amends the end time of a completed fast.
type UpdateEndTimeRequest struct {
	EndTime time.Time `json:"endTime" binding:"required"`
}

// FastResponse is the DTO for returning fast details.
type FastResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	TargetHours int        `json:"targetHours"`
	FastType    string     `json:"fastType"`
	Status      string     `json:"status"`
	StartTime   *time.Time `json:"startTime,omitempty"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// CurrentFastResponse pairs the resolved fast with its computed snapshot.
// Fast is null when the user has no current fast.
type CurrentFastResponse struct {
	Fast     *FastResponse     `json:"fast"`
	Snapshot *fasting.Snapshot `json:"snapshot,omitempty"`
}

// MapFastToResponse converts a domain.Fast to FastResponse DTO.
func MapFastToResponse(f *domain.Fast) FastResponse {
	if f == nil {
		return FastResponse{}
	}
	return FastResponse{
		ID:          f.ID.Hex(),
		UserID:      f.UserID.Hex(),
		TargetHours: f.TargetHours,
		FastType:    f.FastType,
		Status:      string(f.Status()),
		StartTime:   f.StartTime,
		EndTime:     f.EndTime,
		CreatedAt:   f.CreatedAt,
	}
}

// MapFastsToResponse converts a slice of domain.Fast to a slice of FastResponse DTO.
func MapFastsToResponse(fasts []domain.Fast) []FastResponse {
	responses := make([]FastResponse, len(fasts))
	for i := range fasts {
		responses[i] = MapFastToResponse(&fasts[i])
	}
	return responses
}

// --- Handler Methods ---

// CreateFast godoc
// @Summary Create a new fast
// @Description Creates a pending fast for the authenticated user from a target duration in hours.
// @Tags Fasts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param fast body CreateFastRequest true "Fast details"
// @Success 201 {object} FastResponse "Fast created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /fasts [post]
func (h *FastHandler) CreateFast(c *gin.Context) {
	var req CreateFastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID := currentUserID(c)
	if userID == primitive.NilObjectID {
		return
	}

	fast, err := h.fastService.CreateFast(c.Request.Context(), userID, req.Duration)
	if err != nil {
		h.respondError(c, err, "Failed to create fast.")
		return
	}

	c.JSON(http.StatusCreated, MapFastToResponse(fast))
}

// ListFasts returns the authenticated user's full fasting history.
func (h *FastHandler) ListFasts(c *gin.Context) {
	userID := currentUserID(c)
	if userID == primitive.NilObjectID {
		return
	}

	fasts, err := h.fastService.ListFasts(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve fasts.")
		return
	}
	if fasts == nil {
		c.JSON(http.StatusOK, []FastResponse{})
		return
	}

	c.JSON(http.StatusOK, MapFastsToResponse(fasts))
}

// GetCurrentFast godoc
// @Summary Resolve the current fast
// @Description Returns the fast the UI should display: the explicit ?id= record if given, otherwise the most recently started open fast. Fast is null when no open fast exists.
// @Tags Fasts
// @Produce json
// @Security BearerAuth
// @Param id query string false "Explicit fast ID"
// @Success 200 {object} CurrentFastResponse
// @Failure 404 {object} gin.H "Explicit fast not found"
// @Router /fasts/current [get]
func (h *FastHandler) GetCurrentFast(c *gin.Context) {
	userID := currentUserID(c)
	if userID == primitive.NilObjectID {
		return
	}

	var explicitID *primitive.ObjectID
	if idStr := c.Query("id"); idStr != "" {
		id, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid fast ID format.")
			return
		}
		explicitID = &id
	}

	fast, err := h.fastService.CurrentFast(c.Request.Context(), userID, explicitID)
	if err != nil {
		h.respondError(c, err, "Failed to resolve current fast.")
		return
	}
	if fast == nil {
		// No open fast: the caller shows the catalog of fast types.
		c.JSON(http.StatusOK, CurrentFastResponse{Fast: nil})
		return
	}

	resp := MapFastToResponse(fast)
	snapshot := fasting.ComputeSnapshot(fast.StartTime, fast.EndTime, fast.TargetHours, time.Now())
	c.JSON(http.StatusOK, CurrentFastResponse{Fast: &resp, Snapshot: &snapshot})
}

// StartFast moves a pending fast to active.
func (h *FastHandler) StartFast(c *gin.Context) {
	var req StartFastRequest
	// The body is optional; an absent or empty body means "start now".
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID := currentUserID(c)
	if userID == primitive.NilObjectID {
		return
	}
	fastID, ok := fastIDParam(c)
	if !ok {
		return
	}

	startTime := time.Now()
	if req.StartTime != nil {
		startTime = *req.StartTime
	}

	fast, err := h.fastService.StartFast(c.Request.Context(), fastID, userID, startTime)
	if err != nil {
		h.respondError(c, err, "Failed to start fast.")
		return
	}

	c.JSON(http.StatusOK, MapFastToResponse(fast))
}

// EndFast moves an active fast to completed.
func (h *FastHandler) EndFast(c *gin.Context) {
	var req EndFastRequest
	// The body is optional; an absent or empty body means "end now".
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID := currentUserID(c)
	if userID == primitive.NilObjectID {
		return
	}
	fastID, ok := fastIDParam(c)
	if !ok {
		return
	}

	endTime := time.Now()
	if req.EndTime != nil {
		endTime = *req.EndTime
	}

	fast, err := h.fastService.EndFast(c.Request.Context(), fastID, userID, endTime)
	if err != nil {
		h.respondError(c, err, "Failed to end fast.")
		return
	}

	c.JSON(http.StatusOK, MapFastToResponse(fast))
}

// UpdateStartTime amends the start time of a started fast.
func (h *FastHandler) UpdateStartTime(c *gin.Context) {
	var req UpdateStartTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID := currentUserID(c)
	if userID == primitive.NilObjectID {
		return
	}
	fastID, ok := fastIDParam(c)
	if !ok {
		return
	}

	fast, err := h.fastService.UpdateStartTime(c.Request.Context(), fastID, userID, req.StartTime)
	if err != nil {
		h.respondError(c, err, "Failed to update fast start time.")
		return
	}

	c.JSON(http.StatusOK, MapFastToResponse(fast))
}

// UpdateEndTime amends the end time of a completed fast.
func (h *FastHandler) UpdateEndTime(c *gin.Context) {
	var req UpdateEndTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID := currentUserID(c)
	if userID == primitive.NilObjectID {
		return
	}
	fastID, ok := fastIDParam(c)
	if !ok {
		return
	}

	fast, err := h.fastService.UpdateEndTime(c.Request.Context(), fastID, userID, req.EndTime)
	if err != nil {
		h.respondError(c, err, "Failed to update fast end time.")
		return
	}

	c.JSON(http.StatusOK, MapFastToResponse(fast))
}

// TrackFast streams recomputed snapshots for a fast as server-sent events
// until the client disconnects. A pending or completed fast yields a
// single frozen snapshot.
func (h *FastHandler) TrackFast(c *gin.Context) {
	userID := currentUserID(c)
	if userID == primitive.NilObjectID {
		return
	}
	fastID, ok := fastIDParam(c)
	if !ok {
		return
	}

	fast, err := h.fastService.CurrentFast(c.Request.Context(), userID, &fastID)
	if err != nil {
		h.respondError(c, err, "Failed to resolve fast.")
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// Closing the stream channel when Run returns ends the request for
	// the single-snapshot (pending/completed) case; otherwise the client
	// disconnect cancels the request context and stops the tracker.
	snapshots := make(chan fasting.Snapshot, 1)
	tracker := fasting.NewTracker(h.tickInterval)
	go func() {
		defer close(snapshots)
		tracker.Run(c.Request.Context(), fast, func(s fasting.Snapshot) {
			select {
			case snapshots <- s:
			case <-c.Request.Context().Done():
			}
		})
	}()

	c.Stream(func(w io.Writer) bool {
		s, more := <-snapshots
		if !more {
			return false
		}
		c.SSEvent("snapshot", s)
		return true
	})
}

func fastIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	fastID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid fast ID format.")
		return primitive.NilObjectID, false
	}
	return fastID, true
}

// respondError maps service errors to HTTP responses: validation to 400,
// missing records to 404, state conflicts to 409, the rest to a generic
// 500 without internal detail.
func (h *FastHandler) respondError(c *gin.Context, err error, generic string) {
	switch {
	case errors.Is(err, service.ErrFastValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrFastNotFound):
		abortWithError(c, http.StatusNotFound, "Fast not found.")
	case errors.Is(err, service.ErrActiveFastExists),
		errors.Is(err, service.ErrFastAlreadyStarted),
		errors.Is(err, service.ErrFastAlreadyEnded),
		errors.Is(err, service.ErrFastNotStarted),
		errors.Is(err, service.ErrFastNotEnded):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		// log.Printf("Error handling fast request: %v", err)
		abortWithError(c, http.StatusInternalServerError, generic)
	}
}
