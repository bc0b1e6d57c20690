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

var (
	ErrWeightNotFound   = errors.New("weight entry not found")
	ErrWeightValidation = errors.New("weight entry validation failed")
)

// WeightService manages a user's body-weight history.
type WeightService interface {
	AddEntry(ctx context.Context, userID primitive.ObjectID, weightKg float64, date time.Time) (*domain.WeightEntry, error)
	ListEntries(ctx context.Context, userID primitive.ObjectID) ([]domain.WeightEntry, error)
	DeleteEntry(ctx context.Context, entryID, userID primitive.ObjectID) error
}

type weightService struct {
	weightRepo repository.WeightRepository
}

// NewWeightService creates a new instance of weightService.
func NewWeightService(weightRepo repository.WeightRepository) WeightService {
	return &weightService{weightRepo: weightRepo}
}

// AddEntry records a weight measurement. A zero date defaults to now.
func (s *weightService) AddEntry(ctx context.Context, userID primitive.ObjectID, weightKg float64, date time.Time) (*domain.WeightEntry, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to add a weight entry")
	}
	if weightKg <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", ErrWeightValidation)
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	entry := &domain.WeightEntry{
		UserID:   userID,
		WeightKg: weightKg,
		Date:     date,
	}
	entryID, err := s.weightRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = entryID
	return entry, nil
}

// ListEntries returns the user's weight history, newest first.
func (s *weightService) ListEntries(ctx context.Context, userID primitive.ObjectID) ([]domain.WeightEntry, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.weightRepo.ListByUser(ctx, userID)
}

// DeleteEntry removes a weight entry, ensuring ownership.
func (s *weightService) DeleteEntry(ctx context.Context, entryID, userID primitive.ObjectID) error {
	if entryID == primitive.NilObjectID || userID == primitive.NilObjectID {
		return errors.New("entry ID and user ID are required")
	}
	err := s.weightRepo.Delete(ctx, entryID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Could mean "not found" or "found but wrong user"; both
			// surface the same way to the caller.
			return ErrWeightNotFound
		}
		return err
	}
	return nil
}
