package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artemis/config"
	"artemis/keyvalue"
	"artemis/value"
)

func TestParse(t *testing.T) {
	t.Parallel()

	c, err := config.Parse([]byte(`
logging:
  level: debug
  development: true
mapping:
  tag: bson
  coercion: [safe_number, text_number]
keyvalue:
  driver: redis
  prefix: "mail:"
  ttl: 90m
  redis:
    addr: cache:6379
    db: 2
graph:
  url: ws://graph:8182/gremlin
`))
	require.NoError(t, err)

	assert.Equal(t, config.Logging{Level: "debug", Development: true}, c.Logging)
	assert.Equal(t, "bson", c.Mapping.Tag)
	assert.Equal(t, config.KeyValue{
		Driver: config.DriverRedis,
		Prefix: "mail:",
		TTL:    90 * time.Minute,
		Redis:  config.Redis{Addr: "cache:6379", DB: 2},
	}, c.KeyValue)
	assert.Equal(t, "ws://graph:8182/gremlin", c.Graph.URL)

	categories, err := c.Mapping.Categories()
	require.NoError(t, err)
	assert.Equal(t, value.CategorySafeNumber|value.CategoryTextNumber, categories)
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	c, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)

	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, "column", c.Mapping.Tag)
	assert.Equal(t, config.DriverBadger, c.KeyValue.Driver)
	assert.True(t, c.KeyValue.Badger.InMemory)

	categories, err := c.Mapping.Categories()
	require.NoError(t, err)
	assert.Equal(t, value.CategoryAll, categories)
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{"level", "logging: {level: loud}"},
		{"coercion", "mapping: {coercion: [telepathy]}"},
		{"driver", "keyvalue: {driver: etcd}"},
		{"ttl", "keyvalue: {ttl: -1s}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}

	_, err := config.Parse([]byte("logging: [not, a, map]"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "artemis.yaml")
	data, err := config.Marshal(config.Default())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOpenBadger(t *testing.T) {
	t.Parallel()

	bucket, err := config.Default().KeyValue.Open(context.Background())
	require.NoError(t, err)
	defer bucket.Close()

	assert.IsType(t, &keyvalue.BadgerBucket{}, bucket)
}
