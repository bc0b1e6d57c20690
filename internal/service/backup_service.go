package service

import (
	"concarne/health-app/internal/domain"
	"concarne/health-app/internal/repository"
	"concarne/health-app/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BackupResult points at an exported archive.
type BackupResult struct {
	ObjectKey   string
	DownloadURL string
	ExpiresIn   time.Duration
}

// backupArchive is the JSON document written to object storage.
type backupArchive struct {
	UserID     string               `json:"userId"`
	ExportedAt time.Time            `json:"exportedAt"`
	Fasts      []domain.Fast        `json:"fasts"`
	Weights    []domain.WeightEntry `json:"weights"`
}

// BackupService exports a user's data as a JSON archive in object storage.
type BackupService interface {
	Export(ctx context.Context, userID primitive.ObjectID) (*BackupResult, error)
}

type backupService struct {
	fastRepo    repository.FastRepository
	weightRepo  repository.WeightRepository
	fileStorage storage.ObjectStorage
	urlExpiry   time.Duration
}

// NewBackupService creates a new instance of backupService.
func NewBackupService(fastRepo repository.FastRepository, weightRepo repository.WeightRepository, fileStorage storage.ObjectStorage) BackupService {
	return &backupService{
		fastRepo:    fastRepo,
		weightRepo:  weightRepo,
		fileStorage: fileStorage,
		urlExpiry:   storage.DefaultPresignedURLExpiry,
	}
}

// Export serializes everything the user owns, uploads it under a fresh
// object key, and returns a presigned download URL.
func (s *backupService) Export(ctx context.Context, userID primitive.ObjectID) (*BackupResult, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to export a backup")
	}

	fasts, err := s.fastRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	weights, err := s.weightRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	archive := backupArchive{
		UserID:     userID.Hex(),
		ExportedAt: time.Now().UTC(),
		Fasts:      fasts,
		Weights:    weights,
	}
	data, err := json.Marshal(archive)
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("backups/%s/%s.json", userID.Hex(), uuid.NewString())
	if err := s.fileStorage.Put(ctx, objectKey, "application/json", data); err != nil {
		return nil, err
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, s.urlExpiry)
	if err != nil {
		return nil, err
	}

	return &BackupResult{
		ObjectKey:   objectKey,
		DownloadURL: url,
		ExpiresIn:   s.urlExpiry,
	}, nil
}
