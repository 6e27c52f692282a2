package graph

import (
	"context"
	"fmt"

	gremlingo "github.com/apache/tinkerpop/gremlin-go/v3/driver"
	"go.uber.org/zap"
)

type submitFunc func(query string, params map[string]any) ([]any, error)

// GremlinExecutor submits script queries to a Gremlin server.
type GremlinExecutor struct {
	submit submitFunc
	close  func()
	logger *zap.Logger
}

// NewGremlinExecutor connects to the Gremlin server at url, for example
// ws://localhost:8182/gremlin.
func NewGremlinExecutor(url string, logger *zap.Logger) (*GremlinExecutor, error) {
	client, err := gremlingo.NewClient(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Gremlin server: %w", err)
	}

	submit := func(query string, params map[string]any) ([]any, error) {
		rs, err := client.Submit(query, params)
		if err != nil {
			return nil, err
		}

		results, err := rs.All()
		if err != nil {
			return nil, err
		}

		out := make([]any, 0, len(results))
		for _, r := range results {
			out = append(out, r.GetInterface())
		}

		return out, nil
	}

	return newGremlinExecutor(submit, client.Close, logger), nil
}

func newGremlinExecutor(submit submitFunc, closeFn func(), logger *zap.Logger) *GremlinExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &GremlinExecutor{submit: submit, close: closeFn, logger: logger}
}

// Execute submits the query. Cancelling ctx abandons the wait for results.
func (e *GremlinExecutor) Execute(ctx context.Context, query string, params map[string]any) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type outcome struct {
		results []any
		err     error
	}

	done := make(chan outcome, 1)
	go func() {
		results, err := e.submit(query, params)
		done <- outcome{results, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-done:
		if o.err != nil {
			e.logger.Error("gremlin query failed", zap.String("query", query), zap.Error(o.err))
			return nil, fmt.Errorf("gremlin query %q: %w", query, o.err)
		}

		e.logger.Debug("gremlin query", zap.String("query", query), zap.Int("results", len(o.results)))
		return o.results, nil
	}
}

func (e *GremlinExecutor) Close() {
	if e.close != nil {
		e.close()
	}
}
