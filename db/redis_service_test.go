package db

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisService) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := InitializeRedisClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisService(client, time.Hour, zap.NewNop())
}

func TestRedisService_RoundTrip(t *testing.T) {
	mr, s := newTestRedis(t)
	ctx := context.Background()

	got, err := s.GetSelection(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	require.NoError(t, s.SetSelection(ctx, "abc", "1A"))
	got, err = s.GetSelection(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "1A", got)

	assert.Equal(t, time.Hour, mr.TTL("session:abc:selection"))
}

func TestRedisService_Expires(t *testing.T) {
	mr, s := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, s.SetSelection(ctx, "abc", "1B"))
	mr.FastForward(2 * time.Hour)

	got, err := s.GetSelection(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestRedisService_SessionsAreIndependent(t *testing.T) {
	_, s := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, s.SetSelection(ctx, "one", "1A"))
	require.NoError(t, s.SetSelection(ctx, "two", "1B"))

	got, err := s.GetSelection(ctx, "one")
	require.NoError(t, err)
	assert.Equal(t, "1A", got)
}

func TestRedisService_Unavailable(t *testing.T) {
	mr, s := newTestRedis(t)
	mr.Close()

	_, err := s.GetSelection(context.Background(), "abc")
	assert.Error(t, err)
}

func TestInitializeRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := InitializeRedisClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore(time.Hour)
	ctx := context.Background()

	got, err := m.GetSelection(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	require.NoError(t, m.SetSelection(ctx, "abc", "1A"))
	got, _ = m.GetSelection(ctx, "abc")
	assert.Equal(t, "1A", got)

	assert.Error(t, m.SetSelection(ctx, "", "1A"))
}

func TestMemoryStore_Expires(t *testing.T) {
	m := NewMemoryStore(time.Hour)
	clock := time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }
	ctx := context.Background()

	require.NoError(t, m.SetSelection(ctx, "old", "1A"))
	clock = clock.Add(59 * time.Minute)
	got, err := m.GetSelection(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, "1A", got)

	clock = clock.Add(2 * time.Minute)
	got, err = m.GetSelection(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestMemoryStore_SweepsExpiredOnWrite(t *testing.T) {
	m := NewMemoryStore(time.Minute)
	clock := time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, m.SetSelection(ctx, id, "1A"))
	}
	require.Equal(t, 3, m.Len())

	clock = clock.Add(2 * time.Minute)
	require.NoError(t, m.SetSelection(ctx, "d", "1B"))
	assert.Equal(t, 1, m.Len())
}
