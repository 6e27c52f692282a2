// Package config loads the YAML configuration of the artemis command and of
// programs embedding the converter.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"artemis/keyvalue"
	"artemis/mapping"
	"artemis/value"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Logging  Logging  `yaml:"logging"`
	Mapping  Mapping  `yaml:"mapping"`
	KeyValue KeyValue `yaml:"keyvalue"`
	Graph    Graph    `yaml:"graph"`
}

type Logging struct {
	Level       string   `yaml:"level"`
	Development bool     `yaml:"development"`
	OutputPaths []string `yaml:"output_paths,omitempty"`
}

type Mapping struct {
	Tag      string   `yaml:"tag"`
	Coercion []string `yaml:"coercion,omitempty"` // conversion category names, all when empty
}

type KeyValue struct {
	Driver string        `yaml:"driver"` // redis or badger
	Prefix string        `yaml:"prefix,omitempty"`
	TTL    time.Duration `yaml:"ttl,omitempty"`
	Redis  Redis         `yaml:"redis"`
	Badger Badger        `yaml:"badger"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	DB       int    `yaml:"db,omitempty"`
	Password string `yaml:"password,omitempty"`
}

type Badger struct {
	Path     string `yaml:"path,omitempty"`
	InMemory bool   `yaml:"in_memory,omitempty"`
}

type Graph struct {
	URL string `yaml:"url"`
}

const (
	DriverRedis  = "redis"
	DriverBadger = "badger"
)

var levels = []string{"debug", "info", "warn", "error"}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var c Config
	applyDefaults(&c)

	return &c
}

// Load loads and parses a YAML configuration file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config and validates it.
func Parse(data []byte) (*Config, error) {
	var c Config

	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func applyDefaults(c *Config) {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Mapping.Tag == "" {
		c.Mapping.Tag = mapping.DefaultTag
	}

	if c.KeyValue.Driver == "" {
		c.KeyValue.Driver = DriverBadger
	}

	if c.KeyValue.Driver == DriverBadger && c.KeyValue.Badger.Path == "" {
		c.KeyValue.Badger.InMemory = true
	}

	if c.KeyValue.Redis.Addr == "" {
		c.KeyValue.Redis.Addr = "localhost:6379"
	}

	if c.Graph.URL == "" {
		c.Graph.URL = "ws://localhost:8182/gremlin"
	}
}

func (c *Config) Validate() error {
	if !slices.Contains(levels, c.Logging.Level) {
		return fmt.Errorf("%w: logging.level %q is not one of %v", ErrInvalidConfig, c.Logging.Level, levels)
	}

	if _, err := c.Mapping.Categories(); err != nil {
		return fmt.Errorf("%w: mapping.coercion: %w", ErrInvalidConfig, err)
	}

	switch c.KeyValue.Driver {
	case DriverRedis, DriverBadger:
	default:
		return fmt.Errorf("%w: keyvalue.driver %q is neither %s nor %s",
			ErrInvalidConfig, c.KeyValue.Driver, DriverRedis, DriverBadger)
	}

	if c.KeyValue.TTL < 0 {
		return fmt.Errorf("%w: keyvalue.ttl is negative", ErrInvalidConfig)
	}

	return nil
}

// Categories returns the conversion categories plain fields may use.
func (m Mapping) Categories() (value.CategoryEnum, error) {
	if len(m.Coercion) == 0 {
		return value.CategoryAll, nil
	}

	return value.ParseCategories(m.Coercion)
}

// Open opens the configured bucket.
func (k KeyValue) Open(ctx context.Context) (keyvalue.Bucket, error) {
	if k.Driver == DriverRedis {
		bucket, err := keyvalue.NewRedisBucket(ctx, keyvalue.RedisOptions{
			Addr:     k.Redis.Addr,
			Password: k.Redis.Password,
			DB:       k.Redis.DB,
			Prefix:   k.Prefix,
		})
		if err != nil {
			return nil, err
		}

		return bucket, nil
	}

	bucket, err := keyvalue.NewBadgerBucket(keyvalue.BadgerOptions{Path: k.Badger.Path, InMemory: k.Badger.InMemory})
	if err != nil {
		return nil, err
	}

	return bucket, nil
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}
