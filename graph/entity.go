package graph

import (
	"errors"
	"fmt"
	"reflect"

	"artemis/convert"
	"artemis/document"
)

var ErrUnsupportedResult = errors.New("unsupported graph result")

// ToEntities converts vertex property maps, as returned by valueMap or
// elementMap steps, into entities. Single-element property lists are
// unwrapped to their element.
func ToEntities[T any](conv *convert.EntityConverter, results []any) ([]T, error) {
	out := make([]T, 0, len(results))

	for i, result := range results {
		docs, err := toDocuments(result)
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}

		entity, err := convert.To[T](conv, docs)
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}

		out = append(out, entity)
	}

	return out, nil
}

func toDocuments(result any) ([]document.Document, error) {
	if docs, ok := result.([]document.Document); ok {
		return docs, nil
	}

	if reflect.ValueOf(result).Kind() != reflect.Map {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedResult, result)
	}

	docs, err := document.FromAnyMap(result)
	if err != nil {
		return nil, err
	}

	for i, doc := range docs {
		if list, ok := doc.Value.Get().([]any); ok && len(list) == 1 {
			docs[i] = document.Of(doc.Name, list[0])
		}
	}

	return docs, nil
}
