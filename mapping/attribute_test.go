package mapping_test

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artemis/internal/testmodel"
	"artemis/mapping"
)

type moreThanError interface {
	error
	More()
}

func empty()                          { panic("not implemented") }
func wrong(int) (string, error, bool) { panic("not implemented") }

func full(int) (string, bool, error)          { panic("not implemented") }
func customError(int) (string, moreThanError) { panic("not implemented") }

func ExampleParseConverterFunc() {
	desc, err := mapping.ParseConverterFunc(full)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	desc, err = mapping.ParseConverterFunc(strconv.Itoa)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	desc, err = mapping.ParseConverterFunc(strconv.Atoi)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	desc, err = mapping.ParseConverterFunc(customError)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	_, err = mapping.ParseConverterFunc(empty)
	fmt.Println(err)

	_, err = mapping.ParseConverterFunc(wrong)
	fmt.Println(err)

	_, err = mapping.ParseConverterFunc(42)
	fmt.Println(err)

	// Output:
	// <nil> mapping_test full int string true true
	// <nil> strconv Itoa int string false false
	// <nil> strconv Atoi string int false true
	// <nil> mapping_test customError int string false true
	// provided function is not a recognizable converter function
	// provided function is not a recognizable converter function
	// provided converter is not a function
}

func TestConverterFuncs(t *testing.T) {
	t.Parallel()

	conv, err := mapping.NewConverterFuncs(testmodel.MoneyToColumn, testmodel.MoneyFromColumn)
	require.NoError(t, err)

	column, err := conv.ToDatabaseColumn(testmodel.Money(1234))
	require.NoError(t, err)
	assert.Equal(t, "12.34", column)

	attribute, err := conv.ToEntityAttribute("7.5")
	require.NoError(t, err)
	assert.Equal(t, testmodel.Money(750), attribute)

	// arguments are coerced to the parameter type
	attribute, err = conv.ToEntityAttribute(int32(3))
	require.NoError(t, err)
	assert.Equal(t, testmodel.Money(300), attribute)

	_, err = conv.ToEntityAttribute("abc")
	assert.Error(t, err)
}

func TestConverterFuncsRejected(t *testing.T) {
	t.Parallel()

	toColumn := func(b bool) string { return strconv.FormatBool(b) }
	toAttribute := func(s string) (bool, bool) {
		b, err := strconv.ParseBool(s)
		return b, err == nil
	}

	conv, err := mapping.NewConverterFuncs(toColumn, toAttribute)
	require.NoError(t, err)

	_, err = conv.ToEntityAttribute("perhaps")
	assert.ErrorIs(t, err, mapping.ErrConversionRejected)

	_, err = mapping.NewConverterFuncs(strconv.Itoa, strconv.FormatBool)
	assert.ErrorIs(t, err, mapping.ErrConverterMismatch)

	_, err = mapping.NewConverterFuncs(strconv.Itoa, "nope")
	assert.ErrorIs(t, err, mapping.ErrConverterNotAFunc)
}

type constant struct{}

func (constant) ToDatabaseColumn(any) (any, error)  { return "column", nil }
func (constant) ToEntityAttribute(any) (any, error) { return nil, errors.New("read only") }

func TestConverters(t *testing.T) {
	t.Parallel()

	convs := mapping.NewConverters()
	require.NoError(t, convs.Register("b", constant{}))
	require.NoError(t, convs.Register("a", constant{}))

	err := convs.Register("a", constant{})
	assert.ErrorIs(t, err, mapping.ErrDuplicateConverter)
	assert.Error(t, convs.Register("", constant{}))
	assert.Panics(t, func() { convs.MustRegister("a", constant{}) })

	conv, ok := convs.Lookup("a")
	require.True(t, ok)
	column, err := conv.ToDatabaseColumn(1)
	require.NoError(t, err)
	assert.Equal(t, "column", column)

	_, ok = convs.Lookup("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b"}, convs.Names())
	assert.Equal(t, []string{"money"}, testmodel.Converters().Names())
}
