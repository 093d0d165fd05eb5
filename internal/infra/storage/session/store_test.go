package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

func newSession() *domain.Session {
	exp := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	return &domain.Session{
		ID:             "sess-1",
		Token:          "tok",
		Theme:          domain.ThemeDark,
		TokenExpiresAt: &exp,
		CreatedAt:      time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2024, 6, 10, 10, 5, 0, 0, time.UTC),
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, time.Hour)
	ctx := context.Background()

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Save(ctx, newSession()))
	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+"sess-1"))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, domain.ThemeDark, got.Theme)
	require.NotNil(t, got.TokenExpiresAt)
	assert.True(t, got.TokenExpiresAt.Equal(time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)))

	require.NoError(t, store.Delete(ctx, "sess-1"))
	_, err = store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_Expiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newSession()))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_CorruptedValue(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, mr.Set(keyPrefix+"broken", "{not json"))

	_, err := NewRedisStore(client, time.Hour).Get(context.Background(), "broken")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	_, err = NewRedisStore(client, time.Hour).Get(context.Background(), "sess-1")
	assert.ErrorIs(t, err, ErrStorage)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	current := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }
	ctx := context.Background()

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	s := newSession()
	require.NoError(t, store.Save(ctx, s))

	// Изменение исходного объекта не влияет на сохранённую копию
	s.Theme = domain.ThemeLight

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, got.Theme)

	current = current.Add(time.Hour)
	_, err = store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Save(ctx, s))
	require.NoError(t, store.Delete(ctx, "sess-1"))
	_, err = store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
