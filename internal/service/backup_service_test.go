package service_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"concarne/health-app/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeObjectStorage records uploads and hands out deterministic URLs.
type fakeObjectStorage struct {
	objects map[string][]byte
	types   map[string]string
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (s *fakeObjectStorage) Put(_ context.Context, objectKey, contentType string, data []byte) error {
	s.objects[objectKey] = data
	s.types[objectKey] = contentType
	return nil
}

func (s *fakeObjectStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.example.com/" + objectKey, nil
}

func (s *fakeObjectStorage) DeleteObject(_ context.Context, objectKey string) error {
	delete(s.objects, objectKey)
	return nil
}

func TestBackupExportWritesArchive(t *testing.T) {
	fastRepo := newFakeFastRepo()
	weightRepo := newFakeWeightRepo()
	objStore := newFakeObjectStorage()

	fastSvc := service.NewFastService(fastRepo)
	weightSvc := service.NewWeightService(weightRepo)
	userID := primitive.NewObjectID()

	fast := mustCreate(t, fastSvc, userID, 16)
	t0 := time.Now().Add(-20 * time.Hour)
	mustStart(t, fastSvc, fast, userID, t0)
	_, err := fastSvc.EndFast(context.Background(), fast.ID, userID, t0.Add(16*time.Hour))
	require.NoError(t, err)
	_, err = weightSvc.AddEntry(context.Background(), userID, 82.4, time.Now())
	require.NoError(t, err)

	svc := service.NewBackupService(fastRepo, weightRepo, objStore)
	result, err := svc.Export(context.Background(), userID)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.ObjectKey, "backups/"+userID.Hex()+"/"),
		"object key is namespaced per user, got %q", result.ObjectKey)
	assert.True(t, strings.HasSuffix(result.ObjectKey, ".json"))
	assert.Equal(t, "https://storage.example.com/"+result.ObjectKey, result.DownloadURL)
	assert.Equal(t, 15*time.Minute, result.ExpiresIn)

	data, ok := objStore.objects[result.ObjectKey]
	require.True(t, ok, "archive was uploaded")
	assert.Equal(t, "application/json", objStore.types[result.ObjectKey])

	var archive struct {
		UserID  string            `json:"userId"`
		Fasts   []json.RawMessage `json:"fasts"`
		Weights []json.RawMessage `json:"weights"`
	}
	require.NoError(t, json.Unmarshal(data, &archive))
	assert.Equal(t, userID.Hex(), archive.UserID)
	assert.Len(t, archive.Fasts, 1)
	assert.Len(t, archive.Weights, 1)
}

func TestBackupExportEmptyAccount(t *testing.T) {
	fastRepo := newFakeFastRepo()
	weightRepo := newFakeWeightRepo()
	objStore := newFakeObjectStorage()

	svc := service.NewBackupService(fastRepo, weightRepo, objStore)
	result, err := svc.Export(context.Background(), primitive.NewObjectID())

	require.NoError(t, err)
	_, ok := objStore.objects[result.ObjectKey]
	assert.True(t, ok, "an empty archive is still uploaded")
}

func TestBackupExportUniqueKeysPerCall(t *testing.T) {
	fastRepo := newFakeFastRepo()
	weightRepo := newFakeWeightRepo()
	objStore := newFakeObjectStorage()
	userID := primitive.NewObjectID()

	svc := service.NewBackupService(fastRepo, weightRepo, objStore)
	first, err := svc.Export(context.Background(), userID)
	require.NoError(t, err)
	second, err := svc.Export(context.Background(), userID)
	require.NoError(t, err)

	assert.NotEqual(t, first.ObjectKey, second.ObjectKey)
}
