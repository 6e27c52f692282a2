package keyvalue

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis answers the commands a RedisBucket sends from memory.
type fakeRedis struct {
	mu     sync.Mutex
	data   map[string]string
	ttls   map[string]time.Duration
	closed bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}

	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data[key] = string(value.([]byte))
	f.ttls[key] = expiration

	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			n++
		}
	}

	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func newBadgerBucket(t *testing.T) *BadgerBucket {
	t.Helper()

	bucket, err := NewBadgerBucket(BadgerOptions{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = bucket.Close() })

	return bucket
}

// redisAddr returns the address of a live Redis server, skipping the test
// when REDIS_ADDR is not set.
func redisAddr(t *testing.T) string {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("Skipping Redis test: REDIS_ADDR is not set")
	}

	return addr
}

func testBucket(t *testing.T, bucket Bucket) {
	ctx := context.Background()

	_, err := bucket.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, bucket.Put(ctx, "k", []byte("first"), 0))
	require.NoError(t, bucket.Put(ctx, "k", []byte("second"), time.Hour))

	data, err := bucket.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)

	require.NoError(t, bucket.Delete(ctx, "k"))
	_, err = bucket.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting twice is fine
	assert.NoError(t, bucket.Delete(ctx, "k"))
}

func TestBuckets(t *testing.T) {
	t.Parallel()

	t.Run("redis", func(t *testing.T) {
		t.Parallel()
		testBucket(t, newRedisBucket(newFakeRedis(), "test:"))
	})

	t.Run("badger", func(t *testing.T) {
		t.Parallel()
		testBucket(t, newBadgerBucket(t))
	})

	t.Run("live redis", func(t *testing.T) {
		t.Parallel()

		bucket, err := NewRedisBucket(context.Background(), RedisOptions{
			Addr:   redisAddr(t),
			Prefix: "artemis-test:" + uuid.NewString() + ":",
		})
		require.NoError(t, err)
		defer bucket.Close()

		testBucket(t, bucket)
	})
}

func TestRedisBucketPrefix(t *testing.T) {
	t.Parallel()

	client := newFakeRedis()
	bucket := newRedisBucket(client, "mail:")

	require.NoError(t, bucket.Put(context.Background(), "1", []byte("x"), time.Minute))

	assert.Equal(t, map[string]string{"mail:1": "x"}, client.data)
	assert.Equal(t, time.Minute, client.ttls["mail:1"])

	require.NoError(t, bucket.Close())
	assert.True(t, client.closed)
}

func TestBadgerBucketExpiry(t *testing.T) {
	t.Parallel()

	bucket := newBadgerBucket(t)
	ctx := context.Background()

	require.NoError(t, bucket.Put(ctx, "short", []byte("x"), time.Second))
	require.NoError(t, bucket.Put(ctx, "long", []byte("y"), 0))

	time.Sleep(1100 * time.Millisecond)

	_, err := bucket.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)

	data, err := bucket.Get(ctx, "long")
	require.NoError(t, err)
	assert.Equal(t, []byte("y"), data)
}
