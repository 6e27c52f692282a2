package keyvalue

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"artemis/convert"
	"artemis/document"
	"artemis/value"
)

// entityValueName names the single node holding the value of a raw Entity.
const entityValueName = "value"

// Template stores mapped entities in a Bucket. Entities are keyed by their id
// field and kept as BSON documents.
type Template struct {
	bucket    Bucket
	converter *convert.EntityConverter
	logger    *zap.Logger
}

type TemplateOption func(*Template)

func WithLogger(logger *zap.Logger) TemplateOption {
	return func(t *Template) {
		t.logger = logger
	}
}

func NewTemplate(bucket Bucket, converter *convert.EntityConverter, opts ...TemplateOption) *Template {
	t := &Template{bucket: bucket, converter: converter, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Put stores entity under its id.
func (t *Template) Put(ctx context.Context, entity any, ttl time.Duration) error {
	id, err := t.converter.ID(entity)
	if err != nil {
		return err
	}

	key, err := keyOf(id)
	if err != nil {
		return err
	}

	docs, err := t.converter.ToDocuments(entity)
	if err != nil {
		return err
	}

	data, err := document.Marshal(docs)
	if err != nil {
		return err
	}

	t.logger.Debug("put entity", zap.String("key", key), zap.Int("size", len(data)))

	return t.bucket.Put(ctx, key, data, ttl)
}

// Get loads the entity stored under key into target, a non-nil pointer.
func (t *Template) Get(ctx context.Context, key any, target any) error {
	docs, err := t.load(ctx, key)
	if err != nil {
		return err
	}

	return t.converter.Decode(docs, target)
}

// Delete removes whatever is stored under key.
func (t *Template) Delete(ctx context.Context, key any) error {
	k, err := keyOf(key)
	if err != nil {
		return err
	}

	t.logger.Debug("delete entity", zap.String("key", k))

	return t.bucket.Delete(ctx, k)
}

// PutEntity stores a raw key/value pair.
func (t *Template) PutEntity(ctx context.Context, entity Entity, ttl time.Duration) error {
	key, err := keyOf(entity.Key())
	if err != nil {
		return err
	}

	data, err := document.Marshal([]document.Document{document.Of(entityValueName, entity.Value())})
	if err != nil {
		return err
	}

	return t.bucket.Put(ctx, key, data, ttl)
}

// GetEntity loads a raw key/value pair stored with PutEntity.
func (t *Template) GetEntity(ctx context.Context, key any) (Entity, error) {
	docs, err := t.load(ctx, key)
	if err != nil {
		return Entity{}, err
	}

	doc, ok := document.Find(docs, entityValueName)
	if !ok {
		return Entity{}, fmt.Errorf("%w: %v holds no value", ErrInvalidEntity, key)
	}

	return NewEntity(key, doc.Value.Get())
}

func (t *Template) load(ctx context.Context, key any) ([]document.Document, error) {
	k, err := keyOf(key)
	if err != nil {
		return nil, err
	}

	data, err := t.bucket.Get(ctx, k)
	if err != nil {
		return nil, err
	}

	return document.Unmarshal(data)
}

func keyOf(key any) (string, error) {
	v := value.Of(key)
	if v.IsNil() {
		return "", fmt.Errorf("%w: key is required", ErrInvalidEntity)
	}

	k, err := value.As[string](v)
	if err != nil {
		return "", fmt.Errorf("%w: key %v: %w", ErrInvalidEntity, key, err)
	}

	return k, nil
}
