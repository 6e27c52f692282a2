package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"go.uber.org/zap"

	"artemis/config"
	"artemis/document"
	"artemis/graph"
	"artemis/internal/inspect"
	"artemis/keyvalue"
)

var errDiagnostics = errors.New("inspection found errors")

func inspectAction(w io.Writer, tag string, strict bool, patterns []string) error {
	report, err := inspect.NewInspector(tag).Load(patterns...)
	if err != nil {
		return err
	}

	if err := report.Write(w); err != nil {
		return err
	}

	if strict && report.Diagnostics.HasErrors() {
		return fmt.Errorf("%w: %w", errDiagnostics, report.Diagnostics.Err())
	}

	return nil
}

type kvActions struct {
	bucket keyvalue.Bucket
}

func withBucket(ctx context.Context, cfg *config.Config, fn func(*kvActions) error) error {
	bucket, err := cfg.KeyValue.Open(ctx)
	if err != nil {
		return err
	}
	defer bucket.Close()

	return fn(&kvActions{bucket: bucket})
}

func (a *kvActions) get(ctx context.Context, w io.Writer, key string) error {
	data, err := a.bucket.Get(ctx, key)
	if err != nil {
		return err
	}

	docs, err := document.Unmarshal(data)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, document.Dump(docs))
	return err
}

func (a *kvActions) delete(ctx context.Context, w io.Writer, key string) error {
	if err := a.bucket.Delete(ctx, key); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "deleted %s\n", key)
	return err
}

func graphQueryAction(
	ctx context.Context, w io.Writer, url string, logger *zap.Logger, script string, binds map[string]string,
) error {
	exec, err := graph.NewGremlinExecutor(url, logger)
	if err != nil {
		return err
	}
	defer exec.Close()

	return runStatement(ctx, w, exec, script, binds)
}

func runStatement(ctx context.Context, w io.Writer, exec graph.Executor, script string, binds map[string]string) error {
	stmt := graph.Prepare(exec, script)
	for _, name := range slices.Sorted(maps.Keys(binds)) {
		stmt.Bind(name, binds[name])
	}

	results, err := stmt.Result(ctx)
	if err != nil {
		return err
	}

	for _, r := range results {
		if _, err := fmt.Fprintln(w, r); err != nil {
			return err
		}
	}

	return nil
}
