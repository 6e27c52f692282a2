package convert

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"artemis/document"
	"artemis/mapping"
	"artemis/value"
)

// EntityConverter converts node lists into mapped structs and back. It is
// safe for concurrent use; every conversion only touches its own state.
type EntityConverter struct {
	registry   *mapping.Registry
	converters *mapping.Converters
	logger     *zap.Logger
	metrics    *Metrics
	coercion   value.CategoryEnum
}

type Option func(*EntityConverter)

func WithRegistry(registry *mapping.Registry) Option {
	return func(c *EntityConverter) {
		c.registry = registry
	}
}

func WithConverters(converters *mapping.Converters) Option {
	return func(c *EntityConverter) {
		c.converters = converters
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *EntityConverter) {
		c.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(c *EntityConverter) {
		c.metrics = metrics
	}
}

// WithCoercion restricts the conversions applied to plain values.
func WithCoercion(allowed value.CategoryEnum) Option {
	return func(c *EntityConverter) {
		c.coercion = allowed
	}
}

func NewEntityConverter(opts ...Option) *EntityConverter {
	c := &EntityConverter{coercion: value.CategoryAll}
	for _, opt := range opts {
		opt(c)
	}

	if c.registry == nil {
		c.registry = mapping.NewRegistry()
	}

	if c.converters == nil {
		c.converters = mapping.NewConverters()
	}

	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	return c
}

// ToEntity builds a value of type t from docs. For every mapped field the
// first node with the field name is used; fields without a node are skipped
// unless they are embedded structs or sub-entities. Any field error aborts
// the conversion.
func (c *EntityConverter) ToEntity(t reflect.Type, docs []document.Document) (reflect.Value, error) {
	meta, err := c.registry.Metadata(t)
	if err != nil {
		return reflect.Value{}, err
	}

	instance := meta.New()

	for _, field := range meta.Fields {
		var doc *document.Document
		if found, ok := document.Find(docs, field.Name); ok {
			doc = &found
		}

		if doc == nil && field.Kind != mapping.FieldEmbedded && field.Kind != mapping.FieldSubEntity {
			continue
		}

		kind := Select(field)
		err := For(kind).Convert(instance, docs, doc, field, c)
		c.metrics.observe(kind, err)

		if err != nil {
			return reflect.Value{}, &FieldError{Entity: meta.Name, Field: field.GoName, Converter: kind, Err: err}
		}
	}

	return pointerTo(instance, t), nil
}

// pointerTo wraps v in as many pointers as t asks for.
func pointerTo(v reflect.Value, t reflect.Type) reflect.Value {
	if t.Kind() != reflect.Ptr {
		return v
	}

	inner := pointerTo(v, t.Elem())
	ptr := reflect.New(t.Elem())
	ptr.Elem().Set(inner)

	return ptr
}

// Decode fills target, a non-nil pointer, from docs.
func (c *EntityConverter) Decode(docs []document.Document, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: decode target must be a non-nil pointer, got %T", ErrNotAnEntity, target)
	}

	v, err := c.ToEntity(rv.Type().Elem(), docs)
	if err != nil {
		return err
	}

	rv.Elem().Set(v)
	return nil
}

// To converts docs into a T.
func To[T any](c *EntityConverter, docs []document.Document) (T, error) {
	var out T
	if err := c.Decode(docs, &out); err != nil {
		return out, err
	}

	return out, nil
}

// ToDocuments converts a mapped struct, or a pointer to one, into nodes in
// field declaration order.
func (c *EntityConverter) ToDocuments(entity any) ([]document.Document, error) {
	if entity == nil {
		return nil, fmt.Errorf("%w: nil", ErrNotAnEntity)
	}

	return c.FromEntity(reflect.ValueOf(entity))
}

// FromEntity is ToDocuments over a reflect.Value. A nil pointer has no nodes.
func (c *EntityConverter) FromEntity(entity reflect.Value) ([]document.Document, error) {
	for entity.Kind() == reflect.Ptr || entity.Kind() == reflect.Interface {
		if entity.IsNil() {
			return nil, nil
		}
		entity = entity.Elem()
	}

	if !entity.IsValid() {
		return nil, nil
	}

	meta, err := c.registry.Metadata(entity.Type())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAnEntity, err)
	}

	var docs []document.Document
	for _, field := range meta.Fields {
		kind := Select(field)

		encoded, err := For(kind).Encode(entity, field, c)
		if err != nil {
			return nil, &FieldError{Entity: meta.Name, Field: field.GoName, Converter: kind, Err: err}
		}

		docs = append(docs, encoded...)
	}

	return docs, nil
}

// ID returns the value of the id field of entity.
func (c *EntityConverter) ID(entity any) (any, error) {
	rv := reflect.Indirect(reflect.ValueOf(entity))
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: nil", ErrNotAnEntity)
	}

	meta, err := c.registry.Metadata(rv.Type())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAnEntity, err)
	}

	id, ok := meta.ID()
	if !ok {
		return nil, fmt.Errorf("%w: %s has no id field", mapping.ErrNotMappable, meta.Name)
	}

	return id.Read(rv).Interface(), nil
}

// Metadata exposes the compiled metadata of t.
func (c *EntityConverter) Metadata(t reflect.Type) (*mapping.EntityMetadata, error) {
	return c.registry.Metadata(t)
}

func (c *EntityConverter) Converters() *mapping.Converters {
	return c.converters
}

func (c *EntityConverter) Coerce(raw any, t reflect.Type) (reflect.Value, error) {
	return value.CoerceValue(raw, t, c.coercion)
}

func (c *EntityConverter) MapFallback(field *mapping.FieldMapping, err error) {
	c.metrics.mapFallback()
	c.logger.Warn("cannot instantiate declared map, using a builtin map",
		zap.String("field", field.GoName),
		zap.Stringer("type", field.Type),
		zap.Error(err),
	)
}
