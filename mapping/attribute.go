package mapping

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"slices"
	"strings"
	"sync"

	"artemis/utils"
	"artemis/value"
)

var (
	ErrIsNotAConverterFunc = errors.New("provided function is not a recognizable converter function")
	ErrConverterNotAFunc   = errors.New("provided converter is not a function")
	ErrDoublePointer       = errors.New("converter function does not support double pointers")
	ErrConverterMismatch   = errors.New("converter functions are not inverse of each other")
	ErrConversionRejected  = errors.New("converter function rejected the value")
)

// AttributeConverter transforms a field value to its stored column form and
// back.
type AttributeConverter interface {
	ToDatabaseColumn(attribute any) (any, error)
	ToEntityAttribute(column any) (any, error)
}

// Converters maps converter names to AttributeConverter instances. It is
// filled at startup and safe for concurrent reads afterwards.
type Converters struct {
	mu     sync.RWMutex
	byName map[string]AttributeConverter
}

func NewConverters() *Converters {
	return &Converters{byName: make(map[string]AttributeConverter)}
}

// Register adds conv under name. A name can be registered once.
func (c *Converters) Register(name string, conv AttributeConverter) error {
	if name == "" || conv == nil {
		return fmt.Errorf("register attribute converter: empty name or nil converter")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.byName == nil {
		c.byName = make(map[string]AttributeConverter)
	}

	if _, exists := c.byName[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateConverter, name)
	}

	c.byName[name] = conv
	return nil
}

// MustRegister is Register panicking on error, meant for init functions.
func (c *Converters) MustRegister(name string, conv AttributeConverter) {
	if err := c.Register(name, conv); err != nil {
		panic(err)
	}
}

func (c *Converters) Lookup(name string) (AttributeConverter, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	conv, ok := c.byName[name]
	return conv, ok
}

// Names lists registered converter names in sorted order.
func (c *Converters) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// ConverterFunc describes a plain function used as one direction of an
// attribute converter.
type ConverterFunc struct {
	Src, Dst     reflect.Type
	PackageAlias string
	Name         string
	HasBool      bool
	HasErr       bool

	fn reflect.Value
}

// ParseConverterFunc inspects fn and describes it when it has a supported
// shape:
//   - func(src Type) (dst Type)
//   - func(src Type) (dst Type, bool)
//   - func(src Type) (dst Type, error)
//   - func(src Type) (dst Type, bool, error)
func ParseConverterFunc(fn any) (ConverterFunc, error) {
	fnVal := reflect.ValueOf(fn)
	if !fnVal.IsValid() || fnVal.Kind() != reflect.Func {
		return ConverterFunc{}, ErrConverterNotAFunc
	}

	fnType := fnVal.Type()
	if fnType.NumIn() != 1 || fnType.NumOut() == 0 {
		return ConverterFunc{}, ErrIsNotAConverterFunc
	}

	src := fnType.In(0)
	if src.Kind() == reflect.Ptr && src.Elem().Kind() == reflect.Ptr {
		return ConverterFunc{}, ErrDoublePointer
	}

	dst := fnType.Out(0)
	if dst.Kind() == reflect.Ptr && dst.Elem().Kind() == reflect.Ptr {
		return ConverterFunc{}, ErrDoublePointer
	}

	fnPC := runtime.FuncForPC(fnVal.Pointer())
	alias, name := utils.Unpack2(strings.SplitN(fnPC.Name(), ".", 2))

	desc := ConverterFunc{
		Src:          src,
		Dst:          dst,
		Name:         name,
		PackageAlias: utils.Second(path.Split(alias)),
		fn:           fnVal,
	}

	switch fnType.NumOut() {
	default:
		return ConverterFunc{}, ErrIsNotAConverterFunc

	case 1:
		return desc, nil

	case 2:
		last := fnType.Out(1)

		switch {
		default:
			return ConverterFunc{}, ErrIsNotAConverterFunc
		case last.Kind() == reflect.Bool:
			desc.HasBool = true
		case isError(last):
			desc.HasErr = true
		}
		return desc, nil

	case 3:
		tbool, terr := fnType.Out(1), fnType.Out(2)
		if tbool.Kind() != reflect.Bool || !isError(terr) {
			return ConverterFunc{}, ErrIsNotAConverterFunc
		}

		desc.HasBool = true
		desc.HasErr = true
		return desc, nil
	}
}

// Call coerces in to the parameter type and runs the function.
func (f ConverterFunc) Call(in any) (any, error) {
	arg, err := value.CoerceValue(in, f.Src, value.CategoryAll)
	if err != nil {
		return nil, fmt.Errorf("%s argument: %w", f.Name, err)
	}

	out := f.fn.Call([]reflect.Value{arg})

	if f.HasErr {
		if errVal := out[len(out)-1]; !errVal.IsNil() {
			return nil, errVal.Interface().(error)
		}
	}

	if f.HasBool && !out[1].Bool() {
		return nil, fmt.Errorf("%w: %s(%v)", ErrConversionRejected, f.Name, in)
	}

	return out[0].Interface(), nil
}

type funcConverter struct {
	toColumn, toAttribute ConverterFunc
}

// NewConverterFuncs builds an AttributeConverter from two plain functions:
// one turning the field value into its column form and its inverse.
func NewConverterFuncs(toColumn, toAttribute any) (AttributeConverter, error) {
	column, err := ParseConverterFunc(toColumn)
	if err != nil {
		return nil, fmt.Errorf("to column: %w", err)
	}

	attribute, err := ParseConverterFunc(toAttribute)
	if err != nil {
		return nil, fmt.Errorf("to attribute: %w", err)
	}

	if column.Src != attribute.Dst || column.Dst != attribute.Src {
		return nil, fmt.Errorf("%w: %s -> %s and %s -> %s",
			ErrConverterMismatch, column.Src, column.Dst, attribute.Src, attribute.Dst)
	}

	return funcConverter{toColumn: column, toAttribute: attribute}, nil
}

func (c funcConverter) ToDatabaseColumn(attribute any) (any, error) {
	return c.toColumn.Call(attribute)
}

func (c funcConverter) ToEntityAttribute(column any) (any, error) {
	return c.toAttribute.Call(column)
}

func isError(t reflect.Type) bool {
	if t == nil {
		return false
	}

	terr := reflect.TypeOf((*error)(nil)).Elem()

	return t.Implements(terr)
}
