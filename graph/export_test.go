package graph

// NewTestGremlinExecutor builds an executor over a fake server.
func NewTestGremlinExecutor(submit func(query string, params map[string]any) ([]any, error)) *GremlinExecutor {
	return newGremlinExecutor(submit, nil, nil)
}
