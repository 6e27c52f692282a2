package value

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type status string

type level int8

type color int

func (c color) String() string {
	switch c {
	case 1:
		return "red"
	default:
		return "unknown"
	}
}

func mustDecimal(s string) primitive.Decimal128 {
	d, err := primitive.ParseDecimal128(s)
	if err != nil {
		panic(err)
	}

	return d
}

func TestCoerce(t *testing.T) {
	t.Parallel()

	moment := time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	five := 5

	tests := []struct {
		name   string
		raw    any
		target reflect.Type
		want   any
	}{
		{"nil to int", nil, reflect.TypeFor[int](), 0},
		{"bson null to string", primitive.Null{}, reflect.TypeFor[string](), ""},
		{"identity", "abc", reflect.TypeFor[string](), "abc"},
		{"int32 widened to int64", int32(42), reflect.TypeFor[int64](), int64(42)},
		{"int64 narrowed to int", int64(42), reflect.TypeFor[int](), 42},
		{"float to int truncates", 3.9, reflect.TypeFor[int](), 3},
		{"string to int", " 12 ", reflect.TypeFor[int](), 12},
		{"integral float text to int", "12.0", reflect.TypeFor[int](), 12},
		{"string to float32", "1.5", reflect.TypeFor[float32](), float32(1.5)},
		{"int to string", 17, reflect.TypeFor[string](), "17"},
		{"float to string", 2.25, reflect.TypeFor[string](), "2.25"},
		{"bool to int", true, reflect.TypeFor[int](), 1},
		{"int to bool", int64(0), reflect.TypeFor[bool](), false},
		{"textual bool", "off", reflect.TypeFor[bool](), false},
		{"string to time", "2024-05-17T10:30:00Z", reflect.TypeFor[time.Time](), moment},
		{"unix seconds to time", moment.Unix(), reflect.TypeFor[time.Time](), moment},
		{"bson datetime to time", primitive.NewDateTimeFromTime(moment), reflect.TypeFor[time.Time](), moment},
		{"time to string", moment, reflect.TypeFor[string](), "2024-05-17T10:30:00Z"},
		{"string to duration", "1m30s", reflect.TypeFor[time.Duration](), 90 * time.Second},
		{"seconds to duration", 1.5, reflect.TypeFor[time.Duration](), 1500 * time.Millisecond},
		{"nanoseconds to duration", int64(10), reflect.TypeFor[time.Duration](), time.Duration(10)},
		{"string to uuid", id.String(), reflect.TypeFor[uuid.UUID](), id},
		{"bson binary to uuid", primitive.Binary{Subtype: 4, Data: id[:]}, reflect.TypeFor[uuid.UUID](), id},
		{"uuid to string", id, reflect.TypeFor[string](), id.String()},
		{"string to named string", "active", reflect.TypeFor[status](), status("active")},
		{"int to named int", int32(3), reflect.TypeFor[level](), level(3)},
		{"enum to string uses Stringer", color(1), reflect.TypeFor[string](), "red"},
		{"object id to string", primitive.ObjectID{0x01}, reflect.TypeFor[string](), "010000000000000000000000"},
		{"decimal to float", mustDecimal("25.5"), reflect.TypeFor[float64](), 25.5},
		{"value to pointer", 5, reflect.TypeFor[*int](), &five},
		{"pointer to value", &five, reflect.TypeFor[int64](), int64(5)},
		{"bson array to slice", bson.A{int32(1), "2", 3.0}, reflect.TypeFor[[]int](), []int{1, 2, 3}},
		{"bson document to map", bson.D{{Key: "a", Value: int32(1)}}, reflect.TypeFor[map[string]int64](), map[string]int64{"a": 1}},
		{"bson map to map", bson.M{"a": "1"}, reflect.TypeFor[map[string]int](), map[string]int{"a": 1}},
		{"string to bytes", "raw", reflect.TypeFor[[]byte](), []byte("raw")},
		{"anything to any", int32(9), reflect.TypeFor[any](), int32(9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Coerce(tt.raw, tt.target, CategoryAll)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     any
		target  reflect.Type
		allowed CategoryEnum
		wantErr error
	}{
		{"overflow int8", 300, reflect.TypeFor[int8](), CategoryAll, ErrOverflow},
		{"negative to uint", -1, reflect.TypeFor[uint](), CategoryAll, ErrOverflow},
		{"huge float to int64", math.MaxFloat64, reflect.TypeFor[int64](), CategoryAll, ErrOverflow},
		{"text number too wide", "70000", reflect.TypeFor[int16](), CategoryAll, ErrOverflow},
		{"not a number", "abc", reflect.TypeFor[int](), CategoryAll, ErrUnsupportedConversion},
		{"not a boolean", "maybe", reflect.TypeFor[bool](), CategoryAll, ErrUnsupportedConversion},
		{"struct target", 1, reflect.TypeFor[struct{ A int }](), CategoryAll, ErrUnsupportedConversion},
		{"category not allowed", "12", reflect.TypeFor[int](), CategorySafeNumber, ErrUnsupportedConversion},
		{"narrowing not safe", int64(1), reflect.TypeFor[int8](), CategorySafeNumber, ErrUnsupportedConversion},
		{"map with int keys", map[int]string{1: "a"}, reflect.TypeFor[map[string]string](), CategoryAll, ErrUnsupportedConversion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Coerce(tt.raw, tt.target, tt.allowed)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCoerceValueKeepsExactType(t *testing.T) {
	t.Parallel()

	res, err := CoerceValue(int32(1), reflect.TypeFor[any](), CategoryAll)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[any](), res.Type())
	assert.Equal(t, int32(1), res.Interface())
}

func TestValue(t *testing.T) {
	t.Parallel()

	v := Of(Of(int64(10)))
	assert.Equal(t, int64(10), v.Get())
	assert.False(t, v.IsNil())
	assert.True(t, Of(nil).IsNil())
	assert.True(t, Of((*int)(nil)).IsNil())

	n, err := As[uint16](v)
	require.NoError(t, err)
	assert.Equal(t, uint16(10), n)

	s, err := v.To(reflect.TypeFor[string]())
	require.NoError(t, err)
	assert.Equal(t, "10", s)

	_, err = v.ToWith(reflect.TypeFor[string](), CategorySafeNumber)
	assert.ErrorIs(t, err, ErrUnsupportedConversion)
}

func TestParseCategories(t *testing.T) {
	t.Parallel()

	got, err := ParseCategories([]string{"safe_number", " Text_Number "})
	require.NoError(t, err)
	assert.Equal(t, CategorySafeNumber|CategoryTextNumber, got)

	_, err = ParseCategories([]string{"bogus"})
	assert.Error(t, err)
}

func TestCategoryAllows(t *testing.T) {
	t.Parallel()

	assert.True(t, CategorySafeNumber.Allows(ConversionPair{KindInt32, KindInt64}))
	assert.False(t, CategorySafeNumber.Allows(ConversionPair{KindInt64, KindInt32}))
	assert.True(t, CategoryUnsafeNumber.Allows(ConversionPair{KindInt64, KindInt32}))
	assert.True(t, CategoryNone.Allows(ConversionPair{KindTime, KindTime}))
	assert.False(t, CategoryNone.Allows(ConversionPair{KindPrimitiveEnum, KindPrimitiveEnum}))
}
