package session

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, idleTimeout, maxAge time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, idleTimeout, maxAge), mr
}

func TestCreateAndGet(t *testing.T) {
	store, mr := newTestStore(t, time.Minute, time.Hour)
	ctx := t.Context()

	sess, err := store.Create(ctx, 42, "donor")
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(42), got.UserID)
	assert.Equal(t, "donor", got.Role)

	// the key carries the absolute TTL backstop
	ttl := mr.TTL(sessionKeyPrefix + sess.ID)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestGetUnknownSession(t *testing.T) {
	store, _ := newTestStore(t, time.Minute, time.Hour)

	_, err := store.Get(t.Context(), "no-such-session")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(t.Context(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTouchStampsActivity(t *testing.T) {
	store, _ := newTestStore(t, time.Minute, time.Hour)
	ctx := t.Context()

	sess, err := store.Create(ctx, 1, "seeker")
	require.NoError(t, err)
	created := sess.LastActivity

	time.Sleep(10 * time.Millisecond)
	touched, err := store.Touch(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, touched.LastActivity.After(created))
}

func TestTouchExpiresIdleSession(t *testing.T) {
	store, mr := newTestStore(t, 30*time.Millisecond, time.Hour)
	ctx := t.Context()

	sess, err := store.Create(ctx, 1, "donor")
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)
	_, err = store.Touch(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrExpired)

	// the expired session was destroyed, not just rejected
	assert.False(t, mr.Exists(sessionKeyPrefix+sess.ID))
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTouchKeepsActiveSessionAlive(t *testing.T) {
	store, _ := newTestStore(t, 80*time.Millisecond, time.Hour)
	ctx := t.Context()

	sess, err := store.Create(ctx, 1, "donor")
	require.NoError(t, err)

	// repeated activity inside the idle window keeps the session going
	// well past a single window
	for i := 0; i < 4; i++ {
		time.Sleep(40 * time.Millisecond)
		_, err = store.Touch(ctx, sess.ID)
		require.NoError(t, err)
	}
}

func TestMaxAgeBackstop(t *testing.T) {
	store, mr := newTestStore(t, time.Hour, time.Minute)
	ctx := t.Context()

	sess, err := store.Create(ctx, 1, "donor")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDestroy(t *testing.T) {
	store, _ := newTestStore(t, time.Minute, time.Hour)
	ctx := t.Context()

	sess, err := store.Create(ctx, 1, "admin")
	require.NoError(t, err)

	require.NoError(t, store.Destroy(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
