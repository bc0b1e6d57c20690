package service_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"concarne/health-app/internal/domain"
	"concarne/health-app/internal/repository"
	"concarne/health-app/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeWeightRepo struct {
	mu      sync.Mutex
	entries map[primitive.ObjectID]domain.WeightEntry
}

func newFakeWeightRepo() *fakeWeightRepo {
	return &fakeWeightRepo{entries: make(map[primitive.ObjectID]domain.WeightEntry)}
}

func (r *fakeWeightRepo) Create(_ context.Context, entry *domain.WeightEntry) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = primitive.NewObjectID()
	r.entries[entry.ID] = *entry
	return entry.ID, nil
}

func (r *fakeWeightRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.WeightEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []domain.WeightEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			all = append(all, e)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	return all, nil
}

func (r *fakeWeightRepo) Delete(_ context.Context, entryID, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[entryID]
	if !ok || entry.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.entries, entryID)
	return nil
}

func TestAddEntryRecordsWeight(t *testing.T) {
	svc := service.NewWeightService(newFakeWeightRepo())
	userID := primitive.NewObjectID()
	date := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	entry, err := svc.AddEntry(context.Background(), userID, 82.4, date)

	require.NoError(t, err)
	assert.False(t, entry.ID.IsZero())
	assert.Equal(t, 82.4, entry.WeightKg)
	assert.True(t, entry.Date.Equal(date))
}

func TestAddEntryDefaultsDateToNow(t *testing.T) {
	svc := service.NewWeightService(newFakeWeightRepo())
	userID := primitive.NewObjectID()

	entry, err := svc.AddEntry(context.Background(), userID, 82.4, time.Time{})

	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), entry.Date, 5*time.Second)
}

func TestAddEntryRejectsNonPositiveWeight(t *testing.T) {
	svc := service.NewWeightService(newFakeWeightRepo())
	userID := primitive.NewObjectID()

	for _, kg := range []float64{0, -1, -82.4} {
		_, err := svc.AddEntry(context.Background(), userID, kg, time.Now())
		assert.ErrorIs(t, err, service.ErrWeightValidation)
	}
}

func TestListEntriesNewestFirst(t *testing.T) {
	svc := service.NewWeightService(newFakeWeightRepo())
	userID := primitive.NewObjectID()
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	for i, kg := range []float64{84.0, 83.2, 82.4} {
		_, err := svc.AddEntry(context.Background(), userID, kg, base.AddDate(0, 0, i))
		require.NoError(t, err)
	}

	entries, err := svc.ListEntries(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 82.4, entries[0].WeightKg)
	assert.Equal(t, 84.0, entries[2].WeightKg)
}

func TestDeleteEntryScopedToOwner(t *testing.T) {
	svc := service.NewWeightService(newFakeWeightRepo())
	userID := primitive.NewObjectID()
	entry, err := svc.AddEntry(context.Background(), userID, 82.4, time.Now())
	require.NoError(t, err)

	err = svc.DeleteEntry(context.Background(), entry.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, service.ErrWeightNotFound)

	err = svc.DeleteEntry(context.Background(), entry.ID, userID)
	assert.NoError(t, err)

	entries, err := svc.ListEntries(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeleteEntryMissingReturnsNotFound(t *testing.T) {
	svc := service.NewWeightService(newFakeWeightRepo())

	err := svc.DeleteEntry(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())

	assert.ErrorIs(t, err, service.ErrWeightNotFound)
}
