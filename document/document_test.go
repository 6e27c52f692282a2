package document_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"artemis/document"
	"artemis/value"
)

func ExampleShapeOf() {
	fmt.Println(document.ShapeOf("text"))
	fmt.Println(document.ShapeOf(document.Of("a", 1)))
	fmt.Println(document.ShapeOf([]document.Document{document.Of("a", 1)}))
	fmt.Println(document.ShapeOf([][]document.Document{{document.Of("a", 1)}}))
	fmt.Println(document.ShapeOf(map[string]any{"a": 1}))
	fmt.Println(document.ShapeOf(bson.M{"a": 1}))
	fmt.Println(document.ShapeOf([]any{document.Of("a", 1), document.Of("b", 2)}))
	fmt.Println(document.ShapeOf(value.Of([]any{[]document.Document{}})))
	// Output:
	// ShapeScalar
	// ShapeDocument
	// ShapeList
	// ShapeListOfLists
	// ShapeMap
	// ShapeMap
	// ShapeList
	// ShapeListOfLists
}

func TestFind(t *testing.T) {
	t.Parallel()

	docs := []document.Document{
		document.Of("name", "first"),
		document.Of("age", 10),
		document.Of("name", "second"),
	}

	doc, ok := document.Find(docs, "name")
	require.True(t, ok)
	assert.Equal(t, "first", doc.Value.Get())

	_, ok = document.Find(docs, "missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"name", "age", "name"}, document.Names(docs))
}

func TestAsList(t *testing.T) {
	t.Parallel()

	a, b := document.Of("a", 1), document.Of("b", 2)

	tests := []struct {
		name    string
		raw     any
		want    []document.Document
		wantErr bool
	}{
		{name: "typed list", raw: []document.Document{a, b}, want: []document.Document{a, b}},
		{name: "untyped list", raw: []any{a, &b}, want: []document.Document{a, b}},
		{name: "wrapped", raw: value.Of([]document.Document{a}), want: []document.Document{a}},
		{name: "nil", raw: nil, want: nil},
		{name: "scalar", raw: "text", wantErr: true},
		{name: "mixed", raw: []any{a, "text"}, wantErr: true},
		{name: "single node", raw: a, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := document.AsList(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, document.ErrUnsupportedShape)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAsLists(t *testing.T) {
	t.Parallel()

	a, b := document.Of("a", 1), document.Of("b", 2)

	got, err := document.AsLists([]any{[]document.Document{a}, []any{b}})
	require.NoError(t, err)
	assert.Equal(t, [][]document.Document{{a}, {b}}, got)

	_, err = document.AsLists([]any{[]document.Document{a}, 5})
	assert.ErrorIs(t, err, document.ErrUnsupportedShape)

	_, err = document.AsLists(42)
	assert.ErrorIs(t, err, document.ErrUnsupportedShape)
}

func TestAsMap(t *testing.T) {
	t.Parallel()

	got, err := document.AsMap(bson.M{"a": "b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "b"}, got)

	got, err = document.AsMap(map[string]int{"n": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"n": 1}, got)

	_, err = document.AsMap(map[int]string{1: "a"})
	assert.ErrorIs(t, err, document.ErrUnsupportedShape)

	_, err = document.AsMap([]document.Document{})
	assert.ErrorIs(t, err, document.ErrUnsupportedShape)
}

func TestAsDocument(t *testing.T) {
	t.Parallel()

	doc, err := document.AsDocument(value.Of(document.Of("a", 1)))
	require.NoError(t, err)
	assert.Equal(t, "a", doc.Name)

	_, err = document.AsDocument((*document.Document)(nil))
	assert.ErrorIs(t, err, document.ErrUnsupportedShape)
}

func TestFromBSON(t *testing.T) {
	t.Parallel()

	d := bson.D{
		{Key: "subject", Value: "hello"},
		{Key: "sender", Value: bson.D{{Key: "email", Value: "a@b.c"}}},
		{Key: "parts", Value: bson.A{
			bson.D{{Key: "size", Value: int32(1)}},
			bson.D{{Key: "size", Value: int32(2)}},
		}},
		{Key: "tags", Value: bson.A{"x", "y"}},
		{Key: "headers", Value: bson.M{"k": "v"}},
	}

	docs := document.FromBSON(d)
	require.Len(t, docs, 5)

	assert.Equal(t, document.ShapeScalar, document.ShapeOf(docs[0].Value))
	assert.Equal(t, document.ShapeList, document.ShapeOf(docs[1].Value))
	assert.Equal(t, document.ShapeListOfLists, document.ShapeOf(docs[2].Value))
	assert.Equal(t, document.ShapeScalar, document.ShapeOf(docs[3].Value))
	assert.Equal(t, document.ShapeMap, document.ShapeOf(docs[4].Value))

	parts, err := document.AsLists(docs[2].Value)
	require.NoError(t, err)
	assert.Equal(t, [][]document.Document{
		{document.Of("size", int32(1))},
		{document.Of("size", int32(2))},
	}, parts)

	assert.Equal(t, d, document.ToBSON(docs))
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	docs := []document.Document{
		document.Of("_id", "mail-1"),
		document.Of("attachments", []document.Document{
			document.Of("a", []document.Document{document.Of("revpos", int32(1))}),
		}),
		document.Of("parts", [][]document.Document{
			{document.Of("size", int32(1))},
		}),
	}

	data, err := document.Marshal(docs)
	require.NoError(t, err)

	got, err := document.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, docs, got)

	_, err = document.Unmarshal([]byte{1, 2})
	assert.Error(t, err)
}

func TestFromMap(t *testing.T) {
	t.Parallel()

	docs := document.FromMap(map[string]any{"b": 2, "a": 1})
	assert.Equal(t, []document.Document{document.Of("a", 1), document.Of("b", 2)}, docs)

	docs, err := document.FromAnyMap(map[any]any{"name": "v", 3: "three"})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "name"}, document.Names(docs))

	_, err = document.FromAnyMap("nope")
	assert.ErrorIs(t, err, document.ErrUnsupportedShape)
}

func TestDump(t *testing.T) {
	t.Parallel()

	out := document.Dump([]document.Document{document.Of("a", 1)})
	assert.Contains(t, out, "Name: (string) (len=1) \"a\"")
	assert.Contains(t, out, "(int) 1")
	assert.NotContains(t, out, "a=1")
}

func TestToPlain(t *testing.T) {
	t.Parallel()

	raw := []document.Document{
		document.Of("name", "a"),
		document.Of("name", "shadowed"),
		document.Of("nested", []document.Document{document.Of("k", 1)}),
		document.Of("rows", [][]document.Document{{document.Of("n", 1)}, {document.Of("n", 2)}}),
		document.Of("tags", []any{"x", document.Of("y", true)}),
	}

	assert.Equal(t, map[string]any{
		"name":   "a",
		"nested": map[string]any{"k": 1},
		"rows":   []any{map[string]any{"n": 1}, map[string]any{"n": 2}},
		"tags":   []any{"x", map[string]any{"y": true}},
	}, document.ToPlain(raw))

	assert.Equal(t, 5, document.ToPlain(value.Of(5)))
}
