package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sneakerscr/storefront-backend/pkg/enums"
)

type fakeKV struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (f *fakeKV) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = value.(string)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
		delete(f.ttls, key)
	}
	return nil
}

func (f *fakeKV) CartKey(sessionID string) string {
	return "sf:cart:" + sessionID
}

func sampleLines() []Line {
	return []Line{{
		ID:        "line-1",
		ProductID: uuid.New(),
		Name:      "air-zoom",
		Price:     decimal.NewFromFloat(79.99),
		Image:     "https://cdn.example.com/air-zoom.jpg",
		Kind:      enums.ProductKindPhysical,
		Quantity:  2,
		AddedAt:   time.Now().UTC().Truncate(time.Second),
	}}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	kv := newFakeKV()
	store, err := NewRedisStore(kv, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	lines := sampleLines()
	require.NoError(t, store.Save(ctx, "session-1", lines))
	assert.Equal(t, time.Hour, kv.ttls["sf:cart:session-1"])

	loaded, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, lines[0].ID, loaded[0].ID)
	assert.True(t, loaded[0].Price.Equal(lines[0].Price))
	assert.Equal(t, lines[0].Quantity, loaded[0].Quantity)
}

func TestRedisStoreMissingCartIsEmpty(t *testing.T) {
	store, err := NewRedisStore(newFakeKV(), time.Hour)
	require.NoError(t, err)

	lines, err := store.Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestRedisStoreSaveEmptyClears(t *testing.T) {
	kv := newFakeKV()
	store, err := NewRedisStore(kv, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-1", sampleLines()))
	require.NoError(t, store.Save(ctx, "session-1", nil))
	_, ok := kv.data["sf:cart:session-1"]
	assert.False(t, ok)
}

func TestRedisStoreClear(t *testing.T) {
	kv := newFakeKV()
	store, err := NewRedisStore(kv, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-1", sampleLines()))
	require.NoError(t, store.Clear(ctx, "session-1"))

	lines, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}
