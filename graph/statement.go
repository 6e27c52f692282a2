package graph

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/jinzhu/copier"
)

var (
	ErrInvalidBinding  = errors.New("invalid binding")
	ErrNonUniqueResult = errors.New("more than one result")
)

// Executor runs a query with named parameters.
type Executor interface {
	Execute(ctx context.Context, query string, params map[string]any) ([]any, error)
}

// PreparedStatement is a query with parameters bound by name. It is not safe
// for concurrent use.
type PreparedStatement struct {
	executor Executor
	query    string
	params   map[string]any
	err      error
}

func Prepare(executor Executor, query string) *PreparedStatement {
	return &PreparedStatement{executor: executor, query: query, params: make(map[string]any)}
}

// Bind sets the parameter name. An empty name or a nil value makes every
// following execution fail with ErrInvalidBinding.
func (s *PreparedStatement) Bind(name string, v any) *PreparedStatement {
	switch {
	case name == "":
		s.err = errors.Join(s.err, fmt.Errorf("%w: name is required", ErrInvalidBinding))
	case v == nil:
		s.err = errors.Join(s.err, fmt.Errorf("%w: value of %q is required", ErrInvalidBinding, name))
	default:
		s.params[name] = v
	}

	return s
}

// Params returns a copy of the bound parameters.
func (s *PreparedStatement) Params() map[string]any {
	return maps.Clone(s.params)
}

// Result runs the query. The executor receives a deep copy of the parameters.
func (s *PreparedStatement) Result(ctx context.Context) ([]any, error) {
	if s.err != nil {
		return nil, s.err
	}

	params := make(map[string]any, len(s.params))
	if err := copier.CopyWithOption(&params, s.params, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("copy parameters: %w", err)
	}

	return s.executor.Execute(ctx, s.query, params)
}

// SingleResult runs the query and returns its only result. It reports false
// when there is none and fails with ErrNonUniqueResult when there are more.
func (s *PreparedStatement) SingleResult(ctx context.Context) (any, bool, error) {
	results, err := s.Result(ctx)
	if err != nil {
		return nil, false, err
	}

	switch len(results) {
	case 0:
		return nil, false, nil
	case 1:
		return results[0], true, nil
	default:
		return nil, false, fmt.Errorf("%w in the gremlin query: %s", ErrNonUniqueResult, s.query)
	}
}
