package service

import (
	"concarne/health-app/internal/domain"
	"concarne/health-app/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrFastNotFound       = errors.New("fast not found")
	ErrFastValidation     = errors.New("fast validation failed")
	ErrActiveFastExists   = errors.New("another fast is already active")
	ErrFastNotStarted     = errors.New("fast has not been started")
	ErrFastAlreadyStarted = errors.New("fast has already been started")
	ErrFastAlreadyEnded   = errors.New("fast has already been ended")
	ErrFastNotEnded       = errors.New("fast has not been ended")
)

// FastService is the lifecycle engine and current-fast resolver for
// fasting sessions. Every operation is scoped by an explicit user ID;
// there is no ambient "current user".
type FastService interface {
	CreateFast(ctx context.Context, userID primitive.ObjectID, durationHours int) (*domain.Fast, error)
	StartFast(ctx context.Context, fastID, userID primitive.ObjectID, startTime time.Time) (*domain.Fast, error)
	EndFast(ctx context.Context, fastID, userID primitive.ObjectID, endTime time.Time) (*domain.Fast, error)
	UpdateStartTime(ctx context.Context, fastID, userID primitive.ObjectID, startTime time.Time) (*domain.Fast, error)
	UpdateEndTime(ctx context.Context, fastID, userID primitive.ObjectID, endTime time.Time) (*domain.Fast, error)
	// CurrentFast resolves the single fast the caller should display.
	// With an explicit id it returns that record or ErrFastNotFound.
	// Without one it returns the most recently started open fast, or
	// (nil, nil) when the user has no open fast.
	CurrentFast(ctx context.Context, userID primitive.ObjectID, fastID *primitive.ObjectID) (*domain.Fast, error)
	ListFasts(ctx context.Context, userID primitive.ObjectID) ([]domain.Fast, error)
}

// fastService implements the FastService interface.
type fastService struct {
	fastRepo repository.FastRepository
}

// NewFastService creates a new instance of fastService.
func NewFastService(fastRepo repository.FastRepository) FastService {
	return &fastService{fastRepo: fastRepo}
}

// CreateFast records a new pending fast with the given target duration.
// The display label is resolved from the preset catalog once, here.
func (s *fastService) CreateFast(ctx context.Context, userID primitive.ObjectID, durationHours int) (*domain.Fast, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create a fast")
	}
	if durationHours <= 0 {
		return nil, fmt.Errorf("%w: duration must be a positive number of hours", ErrFastValidation)
	}

	fast := &domain.Fast{
		UserID:      userID,
		TargetHours: durationHours,
		FastType:    domain.FastTypeLabel(durationHours),
	}

	fastID, err := s.fastRepo.Create(ctx, fast)
	if err != nil {
		return nil, err
	}
	fast.ID = fastID
	return fast, nil
}

// StartFast moves a pending fast to active by setting its start time.
// At most one fast may be active per user, enforced here rather than by
// the store schema.
func (s *fastService) StartFast(ctx context.Context, fastID, userID primitive.ObjectID, startTime time.Time) (*domain.Fast, error) {
	fast, err := s.getOwnedFast(ctx, fastID, userID)
	if err != nil {
		return nil, err
	}
	if fast.Status() != domain.FastPending {
		return nil, ErrFastAlreadyStarted
	}
	if startTime.After(time.Now()) {
		return nil, fmt.Errorf("%w: start time cannot be in the future", ErrFastValidation)
	}

	open, err := s.fastRepo.FindOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range open {
		if open[i].ID != fastID && open[i].Status() == domain.FastActive {
			return nil, ErrActiveFastExists
		}
	}

	if err := s.fastRepo.SetStartTime(ctx, fastID, userID, startTime); err != nil {
		return nil, mapRepoError(err)
	}
	st := startTime.UTC()
	fast.StartTime = &st
	return fast, nil
}

// EndFast moves an active fast to completed by setting its end time.
// The end time must fall between the start time and wall-clock now.
func (s *fastService) EndFast(ctx context.Context, fastID, userID primitive.ObjectID, endTime time.Time) (*domain.Fast, error) {
	fast, err := s.getOwnedFast(ctx, fastID, userID)
	if err != nil {
		return nil, err
	}
	switch fast.Status() {
	case domain.FastPending:
		return nil, ErrFastNotStarted
	case domain.FastCompleted:
		return nil, ErrFastAlreadyEnded
	}
	if err := validateEndTime(endTime, *fast.StartTime); err != nil {
		return nil, err
	}

	if err := s.fastRepo.SetEndTime(ctx, fastID, userID, endTime); err != nil {
		return nil, mapRepoError(err)
	}
	et := endTime.UTC()
	fast.EndTime = &et
	return fast, nil
}

// UpdateStartTime amends the start time of an already started fast
// without changing its lifecycle state.
func (s *fastService) UpdateStartTime(ctx context.Context, fastID, userID primitive.ObjectID, startTime time.Time) (*domain.Fast, error) {
	fast, err := s.getOwnedFast(ctx, fastID, userID)
	if err != nil {
		return nil, err
	}
	if fast.Status() == domain.FastPending {
		return nil, ErrFastNotStarted
	}
	if startTime.After(time.Now()) {
		return nil, fmt.Errorf("%w: start time cannot be in the future", ErrFastValidation)
	}
	if fast.EndTime != nil && startTime.After(*fast.EndTime) {
		return nil, fmt.Errorf("%w: start time cannot be after the end time", ErrFastValidation)
	}

	if err := s.fastRepo.SetStartTime(ctx, fastID, userID, startTime); err != nil {
		return nil, mapRepoError(err)
	}
	st := startTime.UTC()
	fast.StartTime = &st
	return fast, nil
}

// UpdateEndTime amends the end time of a completed fast without changing
// its lifecycle state.
func (s *fastService) UpdateEndTime(ctx context.Context, fastID, userID primitive.ObjectID, endTime time.Time) (*domain.Fast, error) {
	fast, err := s.getOwnedFast(ctx, fastID, userID)
	if err != nil {
		return nil, err
	}
	if fast.Status() != domain.FastCompleted {
		return nil, ErrFastNotEnded
	}
	if err := validateEndTime(endTime, *fast.StartTime); err != nil {
		return nil, err
	}

	if err := s.fastRepo.SetEndTime(ctx, fastID, userID, endTime); err != nil {
		return nil, mapRepoError(err)
	}
	et := endTime.UTC()
	fast.EndTime = &et
	return fast, nil
}

// CurrentFast resolves which single fast is "current" for display.
func (s *fastService) CurrentFast(ctx context.Context, userID primitive.ObjectID, fastID *primitive.ObjectID) (*domain.Fast, error) {
	if fastID != nil {
		return s.getOwnedFast(ctx, *fastID, userID)
	}

	open, err := s.fastRepo.FindOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		// Not an error: the user has no open fast and should be shown
		// the catalog to start a new one.
		return nil, nil
	}
	// The repository orders by start time descending with a stable id
	// tie-break, so anomalous duplicate actives resolve deterministically.
	return &open[0], nil
}

// ListFasts returns the user's full fasting history, newest first.
func (s *fastService) ListFasts(ctx context.Context, userID primitive.ObjectID) ([]domain.Fast, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.fastRepo.ListByUser(ctx, userID)
}

func (s *fastService) getOwnedFast(ctx context.Context, fastID, userID primitive.ObjectID) (*domain.Fast, error) {
	if fastID == primitive.NilObjectID || userID == primitive.NilObjectID {
		return nil, errors.New("fast ID and user ID are required")
	}
	fast, err := s.fastRepo.GetByIDAndUser(ctx, fastID, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return fast, nil
}

func validateEndTime(endTime, startTime time.Time) error {
	if endTime.After(time.Now()) {
		return fmt.Errorf("%w: end time cannot be in the future", ErrFastValidation)
	}
	if endTime.Before(startTime) {
		return fmt.Errorf("%w: end time cannot be before the start time", ErrFastValidation)
	}
	return nil
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrFastNotFound
	}
	return err
}
