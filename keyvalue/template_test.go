package keyvalue_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artemis/convert"
	"artemis/internal/testmodel"
	"artemis/keyvalue"
	"artemis/mapping"
)

func newTemplate(t *testing.T) *keyvalue.Template {
	t.Helper()

	bucket, err := keyvalue.NewBadgerBucket(keyvalue.BadgerOptions{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = bucket.Close() })

	return keyvalue.NewTemplate(bucket, convert.NewEntityConverter())
}

func ExampleEntity() {
	e, _ := keyvalue.NewEntity(int64(10), "42")

	key, _ := keyvalue.KeyAs[string](e)
	answer, _ := keyvalue.ValueAs[int](e)

	fmt.Println(e)
	fmt.Printf("%q %d\n", key, answer)
	// Output:
	// Entity{key=10, value=42}
	// "10" 42
}

func TestNewEntity(t *testing.T) {
	t.Parallel()

	_, err := keyvalue.NewEntity(nil, "v")
	assert.ErrorIs(t, err, keyvalue.ErrInvalidEntity)

	_, err = keyvalue.NewEntity("k", nil)
	assert.ErrorIs(t, err, keyvalue.ErrInvalidEntity)

	a, err := keyvalue.NewEntity("k", []int{1})
	require.NoError(t, err)
	b, err := keyvalue.NewEntity("k", []int{1})
	require.NoError(t, err)
	c, err := keyvalue.NewEntity("k", []int{2})
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	_, err = keyvalue.ValueAs[int](a)
	assert.Error(t, err)
}

func TestTemplateEntities(t *testing.T) {
	t.Parallel()

	tmpl := newTemplate(t)
	ctx := context.Background()

	mail := testmodel.Mail{
		ID:      "m-1",
		Subject: "hello",
		Attachments: map[string]testmodel.Attachment{
			"notes.txt": {ContentType: "text/plain", Revpos: 2, Digest: "md5-x", Length: 11, Stub: true},
		},
	}

	require.NoError(t, tmpl.Put(ctx, &mail, time.Hour))

	var got testmodel.Mail
	require.NoError(t, tmpl.Get(ctx, "m-1", &got))
	assert.Equal(t, mail, got)

	require.NoError(t, tmpl.Delete(ctx, "m-1"))
	err := tmpl.Get(ctx, "m-1", &got)
	assert.ErrorIs(t, err, keyvalue.ErrNotFound)
}

func TestTemplateNumericKeys(t *testing.T) {
	t.Parallel()

	tmpl := newTemplate(t)
	ctx := context.Background()

	order := testmodel.Order{ID: 77, Status: testmodel.StatusPending, TotalCents: 10}
	require.NoError(t, tmpl.Put(ctx, order, 0))

	got := &testmodel.Order{}
	require.NoError(t, tmpl.Get(ctx, "77", got))
	assert.Equal(t, order.Status, got.Status)
	assert.Equal(t, order.TotalCents, got.TotalCents)
}

func TestTemplateErrors(t *testing.T) {
	t.Parallel()

	tmpl := newTemplate(t)
	ctx := context.Background()

	type keyless struct {
		mapping.Entity

		Name string `column:"name"`
	}

	err := tmpl.Put(ctx, keyless{Name: "x"}, 0)
	assert.ErrorIs(t, err, mapping.ErrNotMappable)

	err = tmpl.Put(ctx, 12, 0)
	assert.ErrorIs(t, err, convert.ErrNotAnEntity)

	err = tmpl.Delete(ctx, nil)
	assert.ErrorIs(t, err, keyvalue.ErrInvalidEntity)
}

func TestTemplateRawEntities(t *testing.T) {
	t.Parallel()

	tmpl := newTemplate(t)
	ctx := context.Background()

	e, err := keyvalue.NewEntity(int64(5), 42)
	require.NoError(t, err)
	require.NoError(t, tmpl.PutEntity(ctx, e, 0))

	got, err := tmpl.GetEntity(ctx, 5)
	require.NoError(t, err)

	n, err := keyvalue.ValueAs[int](got)
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	assert.Equal(t, 5, got.Key())

	_, err = tmpl.GetEntity(ctx, "absent")
	assert.ErrorIs(t, err, keyvalue.ErrNotFound)
}
