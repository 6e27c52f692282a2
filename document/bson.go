package document

import (
	"fmt"
	"reflect"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"artemis/value"
)

// FromBSON turns a BSON document into nodes. Nested documents become node
// lists, arrays made only of documents become lists of lists, bson.M values
// stay mapping-shaped.
func FromBSON(d bson.D) []Document {
	docs := make([]Document, 0, len(d))
	for _, e := range d {
		docs = append(docs, Of(e.Key, fromBSONValue(e.Value)))
	}

	return docs
}

func fromBSONValue(raw any) any {
	switch v := raw.(type) {
	case primitive.D:
		return FromBSON(v)
	case primitive.A:
		return fromBSONArray(v)
	case []any:
		return fromBSONArray(v)
	default:
		return raw
	}
}

func fromBSONArray(a []any) any {
	allDocs := len(a) > 0
	for _, elem := range a {
		if _, ok := elem.(primitive.D); !ok {
			allDocs = false
			break
		}
	}

	if allDocs {
		lists := make([][]Document, 0, len(a))
		for _, elem := range a {
			lists = append(lists, FromBSON(elem.(primitive.D)))
		}

		return lists
	}

	out := make([]any, 0, len(a))
	for _, elem := range a {
		out = append(out, fromBSONValue(elem))
	}

	return out
}

// ToBSON is the inverse of FromBSON.
func ToBSON(docs []Document) bson.D {
	d := make(bson.D, 0, len(docs))
	for _, doc := range docs {
		d = append(d, bson.E{Key: doc.Name, Value: toBSONValue(doc.Value.Get())})
	}

	return d
}

func toBSONValue(raw any) any {
	switch v := raw.(type) {
	case value.Value:
		return toBSONValue(v.Get())
	case Document:
		return bson.D{{Key: v.Name, Value: toBSONValue(v.Value.Get())}}
	case *Document:
		if v == nil {
			return nil
		}
		return toBSONValue(*v)
	case []Document:
		return ToBSON(v)
	case [][]Document:
		a := make(bson.A, 0, len(v))
		for _, inner := range v {
			a = append(a, ToBSON(inner))
		}
		return a
	case []any:
		a := make(bson.A, 0, len(v))
		for _, elem := range v {
			a = append(a, toBSONValue(elem))
		}
		return a
	case map[string]any:
		m := make(bson.M, len(v))
		for key, elem := range v {
			m[key] = toBSONValue(elem)
		}
		return m
	default:
		return raw
	}
}

// Marshal encodes nodes as a BSON document.
func Marshal(docs []Document) ([]byte, error) {
	data, err := bson.Marshal(ToBSON(docs))
	if err != nil {
		return nil, fmt.Errorf("marshal documents: %w", err)
	}

	return data, nil
}

// Unmarshal decodes a BSON document into nodes.
func Unmarshal(data []byte) ([]Document, error) {
	var d bson.D
	if err := bson.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal documents: %w", err)
	}

	return FromBSON(d), nil
}

// FromMap turns a property map (as returned by graph drivers) into nodes
// ordered by key. Values are kept as they are, nested maps stay mapping-shaped.
func FromMap(m map[string]any) []Document {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	docs := make([]Document, 0, len(m))
	for _, key := range keys {
		docs = append(docs, Of(key, m[key]))
	}

	return docs
}

// FromAnyMap is FromMap for maps whose keys are not statically strings. Keys
// are formatted with fmt.
func FromAnyMap(m any) ([]Document, error) {
	rv := reflect.ValueOf(m)
	if rv.Kind() != reflect.Map {
		return nil, shapeError(m, ShapeMap)
	}

	props := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		props[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
	}

	return FromMap(props), nil
}
