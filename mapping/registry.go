package mapping

import (
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Registry compiles and caches EntityMetadata per struct type. It is safe for
// concurrent use; concurrent first lookups of one type compile it once.
type Registry struct {
	tag   string
	cache sync.Map // reflect.Type -> *EntityMetadata
	group singleflight.Group
}

type RegistryOption func(*Registry)

// WithTag changes the struct tag key read for column definitions.
func WithTag(tag string) RegistryOption {
	return func(r *Registry) {
		if tag != "" {
			r.tag = tag
		}
	}
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{tag: DefaultTag}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Metadata returns the metadata of t, or of the struct t points to.
func (r *Registry) Metadata(t reflect.Type) (*EntityMetadata, error) {
	t = indirect(t)
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrNotMappable)
	}

	if cached, ok := r.cache.Load(t); ok {
		return cached.(*EntityMetadata), nil
	}

	res, err, _ := r.group.Do(flightKey(t), func() (any, error) {
		if cached, ok := r.cache.Load(t); ok {
			return cached, nil
		}

		meta, err := compile(t, r.tag)
		if err != nil {
			return nil, err
		}

		actual, _ := r.cache.LoadOrStore(t, meta)
		return actual, nil
	})
	if err != nil {
		return nil, err
	}

	meta := res.(*EntityMetadata)
	if meta.Type != t {
		// two distinct types share a name, e.g. types local to functions
		meta, err = compile(t, r.tag)
		if err != nil {
			return nil, err
		}

		actual, _ := r.cache.LoadOrStore(t, meta)
		meta = actual.(*EntityMetadata)
	}

	return meta, nil
}

// Tag returns the struct tag key the registry reads.
func (r *Registry) Tag() string {
	return r.tag
}

func flightKey(t reflect.Type) string {
	return t.PkgPath() + "|" + t.String()
}
