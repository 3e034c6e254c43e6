package record

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-copilot-backend/internal/domain"
	"job-copilot-backend/internal/repository/memory"
)

func TestApplicationRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return an empty collection for a new user", func(t *testing.T) {
		repo := NewApplicationRepository(memory.NewRecordStore())
		apps, err := repo.List(ctx, "u1")
		require.NoError(t, err)
		assert.NotNil(t, apps)
		assert.Empty(t, apps)
	})

	t.Run("Should mirror writes to the legacy key", func(t *testing.T) {
		store := memory.NewRecordStore()
		repo := NewApplicationRepository(store)
		require.NoError(t, repo.ReplaceAll(ctx, "u1", []domain.Application{{ID: "a"}}))

		var legacy []domain.Application
		found, err := store.Load(ctx, "u1", domain.RecordJobApplications, &legacy)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "a", legacy[0].ID)
	})

	t.Run("Should migrate legacy records forward", func(t *testing.T) {
		store := memory.NewRecordStore()
		require.NoError(t, store.Save(ctx, "u1", domain.RecordJobApplications, []domain.Application{{ID: "old"}}))

		repo := NewApplicationRepository(store)
		apps, err := repo.List(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, apps, 1)
		assert.Equal(t, "old", apps[0].ID)

		var current []domain.Application
		found, err := store.Load(ctx, "u1", domain.RecordMyApplications, &current)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, apps, current)
	})

	t.Run("Should prefer the authoritative key when both exist", func(t *testing.T) {
		store := memory.NewRecordStore()
		require.NoError(t, store.Save(ctx, "u1", domain.RecordJobApplications, []domain.Application{{ID: "old"}}))
		require.NoError(t, store.Save(ctx, "u1", domain.RecordMyApplications, []domain.Application{{ID: "new"}}))

		apps, err := NewApplicationRepository(store).List(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, apps, 1)
		assert.Equal(t, "new", apps[0].ID)
	})
}

func TestProfileRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(memory.NewRecordStore())

	_, err := repo.Get(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p := &domain.Profile{Personal: domain.PersonalInfo{Name: "Jane Doe"}, Skills: []string{"Go"}}
	require.NoError(t, repo.Save(ctx, "u1", p))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Personal.Name)
	assert.Equal(t, []string{"Go"}, got.Skills)
}

func TestSessionRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewAutofillSessionRepository(memory.NewRecordStore(), time.Hour)

	_, err := repo.Get(ctx, "u1", "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	s := &domain.AutofillSession{ID: "s1", PageTitle: "Apply", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Save(ctx, "u1", s))

	got, err := repo.Get(ctx, "u1", "s1")
	require.NoError(t, err)
	assert.Equal(t, "Apply", got.PageTitle)
	assert.True(t, now.Equal(got.CreatedAt))

	_, err = repo.Get(ctx, "u2", "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

type ttlSpyStore struct {
	domain.RecordStore
	ttls map[string]time.Duration
}

func (s *ttlSpyStore) SaveFor(ctx context.Context, userID, key string, value any, ttl time.Duration) error {
	s.ttls[key] = ttl
	return s.RecordStore.SaveFor(ctx, userID, key, value, ttl)
}

func TestSessionRepoExpiry(t *testing.T) {
	ctx := context.Background()
	spy := &ttlSpyStore{RecordStore: memory.NewRecordStore(), ttls: map[string]time.Duration{}}
	repo := NewAutofillSessionRepository(spy, 6*time.Hour)

	require.NoError(t, repo.Save(ctx, "u1", &domain.AutofillSession{ID: "s1"}))
	assert.Equal(t, 6*time.Hour, spy.ttls[domain.RecordAutofillSessionNS+"s1"])

	t.Run("Should forget a session once its ttl lapses", func(t *testing.T) {
		short := NewAutofillSessionRepository(memory.NewRecordStore(), 20*time.Millisecond)
		require.NoError(t, short.Save(ctx, "u1", &domain.AutofillSession{ID: "s2"}))

		_, err := short.Get(ctx, "u1", "s2")
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			_, err := short.Get(ctx, "u1", "s2")
			return errors.Is(err, domain.ErrSessionNotFound)
		}, time.Second, 10*time.Millisecond)
	})
}
