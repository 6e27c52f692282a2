package value

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"artemis/utils"
)

var (
	ErrUnsupportedConversion = errors.New("unsupported conversion")
	ErrOverflow              = errors.New("value out of range")
)

var (
	bytesType    = reflect.TypeFor[[]byte]()
	objectIDType = reflect.TypeFor[primitive.ObjectID]()
	stringerType = reflect.TypeFor[fmt.Stringer]()
)

// Coerce converts raw into the target type, using only the conversions the
// allowed categories permit.
func Coerce(raw any, target reflect.Type, allowed CategoryEnum) (any, error) {
	res, err := CoerceValue(raw, target, allowed)
	if err != nil {
		return nil, err
	}

	return res.Interface(), nil
}

// CoerceValue is Coerce returning a reflect.Value whose type is exactly target.
func CoerceValue(raw any, target reflect.Type, allowed CategoryEnum) (reflect.Value, error) {
	if target == nil {
		return reflect.Value{}, fmt.Errorf("%w: nil target type", ErrUnsupportedConversion)
	}

	if v, ok := raw.(Value); ok {
		raw = v.raw
	}

	switch raw.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return reflect.Zero(target), nil
	}

	src := reflect.ValueOf(raw)
	if src.Type() == target {
		return src, nil
	}

	if src.Type().AssignableTo(target) {
		out := reflect.New(target).Elem()
		out.Set(src)

		return out, nil
	}

	if target.Kind() == reflect.Ptr {
		if src.Kind() == reflect.Ptr && src.IsNil() {
			return reflect.Zero(target), nil
		}

		elem, err := CoerceValue(raw, target.Elem(), allowed)
		if err != nil {
			return reflect.Value{}, err
		}

		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(elem)

		return ptr, nil
	}

	if src.Kind() == reflect.Ptr {
		if src.IsNil() {
			return reflect.Zero(target), nil
		}

		return CoerceValue(src.Elem().Interface(), target, allowed)
	}

	if out, ok, err := coerceDriverNative(raw, target); ok {
		return out, err
	}

	raw = normalize(raw)
	src = reflect.ValueOf(raw)
	if src.Type().AssignableTo(target) {
		out := reflect.New(target).Elem()
		out.Set(src)

		return out, nil
	}

	if FromReflectType(target) == 0 {
		switch target.Kind() {
		case reflect.Map:
			return coerceMap(src, target, allowed)
		case reflect.Slice, reflect.Array:
			return coerceSequence(src, target, allowed)
		}
	}

	return coerceScalar(src, target, allowed)
}

// coerceDriverNative covers targets that BSON represents with dedicated types.
func coerceDriverNative(raw any, target reflect.Type) (reflect.Value, bool, error) {
	switch target {
	case timeType:
		switch v := raw.(type) {
		case primitive.DateTime:
			return reflect.ValueOf(v.Time().UTC()), true, nil
		case primitive.Timestamp:
			return reflect.ValueOf(time.Unix(int64(v.T), 0).UTC()), true, nil
		}

	case uuidType:
		var data []byte
		switch v := raw.(type) {
		case []byte:
			data = v
		case primitive.Binary:
			data = v.Data
		default:
			return reflect.Value{}, false, nil
		}

		id, err := uuid.FromBytes(data)
		if err != nil {
			return reflect.Value{}, true, fmt.Errorf("%w: %w", ErrUnsupportedConversion, err)
		}

		return reflect.ValueOf(id), true, nil

	case bytesType:
		switch v := raw.(type) {
		case string:
			return reflect.ValueOf([]byte(v)), true, nil
		case primitive.Binary:
			return reflect.ValueOf(v.Data), true, nil
		case uuid.UUID:
			return reflect.ValueOf(v[:]), true, nil
		}

	case objectIDType:
		if v, ok := raw.(string); ok {
			id, err := primitive.ObjectIDFromHex(v)
			if err != nil {
				return reflect.Value{}, true, fmt.Errorf("%w: %w", ErrUnsupportedConversion, err)
			}

			return reflect.ValueOf(id), true, nil
		}
	}

	if target.Kind() == reflect.String {
		var s string
		switch v := raw.(type) {
		case primitive.ObjectID:
			s = v.Hex()
		case primitive.Decimal128:
			s = v.String()
		case primitive.Symbol:
			s = string(v)
		case []byte:
			s = string(v)
		default:
			return reflect.Value{}, false, nil
		}

		out := reflect.New(target).Elem()
		out.SetString(s)

		return out, true, nil
	}

	return reflect.Value{}, false, nil
}

// normalize replaces BSON wrapper types by the plain Go values they stand for.
func normalize(raw any) any {
	switch v := raw.(type) {
	case primitive.DateTime:
		return v.Time().UTC()
	case primitive.Timestamp:
		return time.Unix(int64(v.T), 0).UTC()
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return raw
		}
		return f
	case primitive.Symbol:
		return string(v)
	case primitive.ObjectID:
		return v.Hex()
	case primitive.Binary:
		return v.Data
	default:
		return raw
	}
}

func coerceMap(src reflect.Value, target reflect.Type, allowed CategoryEnum) (reflect.Value, error) {
	if target.Key().Kind() != reflect.String {
		return reflect.Value{}, unsupported(src.Type(), target)
	}

	out := reflect.MakeMap(target)
	put := func(key string, raw any) error {
		elem, err := CoerceValue(raw, target.Elem(), allowed)
		if err != nil {
			return fmt.Errorf("map entry %q: %w", key, err)
		}

		out.SetMapIndex(reflect.ValueOf(key).Convert(target.Key()), elem)
		return nil
	}

	if d, ok := src.Interface().(primitive.D); ok {
		for _, e := range d {
			if err := put(e.Key, e.Value); err != nil {
				return reflect.Value{}, err
			}
		}

		return out, nil
	}

	if src.Kind() != reflect.Map || src.Type().Key().Kind() != reflect.String {
		return reflect.Value{}, unsupported(src.Type(), target)
	}

	iter := src.MapRange()
	for iter.Next() {
		if err := put(iter.Key().String(), iter.Value().Interface()); err != nil {
			return reflect.Value{}, err
		}
	}

	return out, nil
}

func coerceSequence(src reflect.Value, target reflect.Type, allowed CategoryEnum) (reflect.Value, error) {
	if src.Kind() != reflect.Slice && src.Kind() != reflect.Array {
		return reflect.Value{}, unsupported(src.Type(), target)
	}

	var out reflect.Value
	if target.Kind() == reflect.Array {
		if src.Len() > target.Len() {
			return reflect.Value{}, fmt.Errorf("%w: %d elements do not fit into %s", ErrOverflow, src.Len(), target)
		}
		out = reflect.New(target).Elem()
	} else {
		out = reflect.MakeSlice(target, src.Len(), src.Len())
	}

	for i := 0; i < src.Len(); i++ {
		elem, err := CoerceValue(src.Index(i).Interface(), target.Elem(), allowed)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
		}

		out.Index(i).Set(elem)
	}

	return out, nil
}

func coerceScalar(src reflect.Value, target reflect.Type, allowed CategoryEnum) (reflect.Value, error) {
	srcKind := FromReflectType(src.Type())
	dstKind := FromReflectType(target)
	if srcKind == 0 || dstKind == 0 {
		return reflect.Value{}, unsupported(src.Type(), target)
	}

	pair := ConversionPair{srcKind, dstKind}
	if !allowed.Allows(pair) {
		return reflect.Value{}, fmt.Errorf("%w: %s to %s is not allowed", ErrUnsupportedConversion, srcKind, dstKind)
	}

	out := reflect.New(target).Elem()

	from, to := srcKind, dstKind
	if from == KindPrimitiveEnum {
		if underlyingKind(target) == KindString && src.Type().Implements(stringerType) {
			out.SetString(src.Interface().(fmt.Stringer).String())
			return out, nil
		}

		from = underlyingKind(src.Type())
	}

	if to == KindPrimitiveEnum {
		to = underlyingKind(target)
	}

	var err error
	switch {
	case to.IsNumber():
		err = toNumber(src, from, out)
	case to == KindBool:
		err = toBool(src, from, out)
	case to == KindString:
		err = toString(src, from, out)
	case to == KindTime:
		err = toTime(src, from, out)
	case to == KindDuration:
		err = toDuration(src, from, out)
	case to == KindUUID:
		err = toUUID(src, from, out)
	default:
		err = unsupported(src.Type(), target)
	}

	if err != nil {
		return reflect.Value{}, err
	}

	return out, nil
}

func toNumber(src reflect.Value, from KindEnum, out reflect.Value) error {
	switch {
	case from.IsSigned():
		return assignInt(out, src.Int())
	case from.IsUnsigned():
		return assignUint(out, src.Uint())
	case from.IsFloat():
		return assignFloat(out, src.Float())
	case from == KindBool:
		if src.Bool() {
			return assignInt(out, 1)
		}
		return assignInt(out, 0)
	case from == KindString:
		return parseNumber(strings.TrimSpace(src.String()), out)
	case from == KindTime:
		return assignInt(out, src.Interface().(time.Time).Unix())
	case from == KindDuration:
		d := time.Duration(src.Int())
		if out.Kind() == reflect.Float32 || out.Kind() == reflect.Float64 {
			return assignFloat(out, d.Seconds())
		}
		return assignInt(out, int64(d))
	}

	return unsupported(src.Type(), out.Type())
}

func assignInt(out reflect.Value, n int64) error {
	switch out.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if out.OverflowInt(n) {
			return overflow(n, out.Type())
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n < 0 || out.OverflowUint(uint64(n)) {
			return overflow(n, out.Type())
		}
		out.SetUint(uint64(n))
	case reflect.Float32, reflect.Float64:
		out.SetFloat(float64(n))
	default:
		return unsupported(reflect.TypeFor[int64](), out.Type())
	}

	return nil
}

func assignUint(out reflect.Value, n uint64) error {
	switch out.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n > math.MaxInt64 || out.OverflowInt(int64(n)) {
			return overflow(n, out.Type())
		}
		out.SetInt(int64(n))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if out.OverflowUint(n) {
			return overflow(n, out.Type())
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		out.SetFloat(float64(n))
	default:
		return unsupported(reflect.TypeFor[uint64](), out.Type())
	}

	return nil
}

const (
	minInt64Float = -(1 << 63)
	maxInt64Float = 1 << 63
	maxUintFloat  = 1 << 64
)

func assignFloat(out reflect.Value, f float64) error {
	if math.IsNaN(f) && out.Kind() != reflect.Float32 && out.Kind() != reflect.Float64 {
		return overflow(f, out.Type())
	}

	switch out.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !utils.IsInRange(minInt64Float, f, math.Nextafter(maxInt64Float, 0)) || out.OverflowInt(int64(f)) {
			return overflow(f, out.Type())
		}
		out.SetInt(int64(f))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !utils.IsInRange(0, f, math.Nextafter(maxUintFloat, 0)) || out.OverflowUint(uint64(f)) {
			return overflow(f, out.Type())
		}
		out.SetUint(uint64(f))
	case reflect.Float32, reflect.Float64:
		if out.OverflowFloat(f) {
			return overflow(f, out.Type())
		}
		out.SetFloat(f)
	default:
		return unsupported(reflect.TypeFor[float64](), out.Type())
	}

	return nil
}

func parseNumber(s string, out reflect.Value) error {
	bits := out.Type().Bits()

	switch out.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, bits)
		if err == nil {
			out.SetInt(n)
			return nil
		}

		// "3.0" is accepted for integers as long as it is integral
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil && f == math.Trunc(f) {
			return assignFloat(out, f)
		}

		return parseError(s, out.Type(), err)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, bits)
		if err == nil {
			out.SetUint(n)
			return nil
		}

		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil && f == math.Trunc(f) {
			return assignFloat(out, f)
		}

		return parseError(s, out.Type(), err)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, bits)
		if err != nil {
			return parseError(s, out.Type(), err)
		}
		out.SetFloat(f)
		return nil
	}

	return unsupported(reflect.TypeFor[string](), out.Type())
}

func toBool(src reflect.Value, from KindEnum, out reflect.Value) error {
	switch {
	case from == KindBool:
		out.SetBool(src.Bool())
	case from.IsSigned():
		out.SetBool(src.Int() != 0)
	case from.IsUnsigned():
		out.SetBool(src.Uint() != 0)
	case from == KindString:
		b, err := parseBool(src.String())
		if err != nil {
			return err
		}
		out.SetBool(b)
	default:
		return unsupported(src.Type(), out.Type())
	}

	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "y", "t", "1":
		return true, nil
	case "false", "no", "off", "n", "f", "0":
		return false, nil
	}

	return false, fmt.Errorf("%w: %q is not a boolean", ErrUnsupportedConversion, s)
}

func toString(src reflect.Value, from KindEnum, out reflect.Value) error {
	var s string

	switch {
	case from == KindString:
		s = src.String()
	case from.IsSigned():
		s = strconv.FormatInt(src.Int(), 10)
	case from.IsUnsigned():
		s = strconv.FormatUint(src.Uint(), 10)
	case from.IsFloat():
		s = strconv.FormatFloat(src.Float(), 'g', -1, from.Bits())
	case from == KindBool:
		s = strconv.FormatBool(src.Bool())
	case from == KindTime:
		s = src.Interface().(time.Time).Format(time.RFC3339Nano)
	case from == KindDuration:
		s = time.Duration(src.Int()).String()
	case from == KindUUID:
		s = src.Interface().(uuid.UUID).String()
	default:
		return unsupported(src.Type(), out.Type())
	}

	out.SetString(s)
	return nil
}

func toTime(src reflect.Value, from KindEnum, out reflect.Value) error {
	var t time.Time

	switch {
	case from == KindString:
		parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(src.String()))
		if err != nil {
			return parseError(src.String(), out.Type(), err)
		}
		t = parsed
	case from.IsSigned():
		t = time.Unix(src.Int(), 0).UTC()
	case from.IsUnsigned():
		if src.Uint() > math.MaxInt64 {
			return overflow(src.Uint(), out.Type())
		}
		t = time.Unix(int64(src.Uint()), 0).UTC()
	default:
		return unsupported(src.Type(), out.Type())
	}

	out.Set(reflect.ValueOf(t))
	return nil
}

func toDuration(src reflect.Value, from KindEnum, out reflect.Value) error {
	switch {
	case from == KindString:
		d, err := time.ParseDuration(strings.TrimSpace(src.String()))
		if err != nil {
			return parseError(src.String(), out.Type(), err)
		}
		out.SetInt(int64(d))
	case from.IsSigned():
		out.SetInt(src.Int())
	case from.IsUnsigned():
		if src.Uint() > math.MaxInt64 {
			return overflow(src.Uint(), out.Type())
		}
		out.SetInt(int64(src.Uint()))
	case from.IsFloat():
		ns := src.Float() * float64(time.Second)
		if !utils.IsInRange(minInt64Float, ns, math.Nextafter(maxInt64Float, 0)) {
			return overflow(src.Float(), out.Type())
		}
		out.SetInt(int64(ns))
	default:
		return unsupported(src.Type(), out.Type())
	}

	return nil
}

func toUUID(src reflect.Value, from KindEnum, out reflect.Value) error {
	if from != KindString {
		return unsupported(src.Type(), out.Type())
	}

	id, err := uuid.Parse(strings.TrimSpace(src.String()))
	if err != nil {
		return parseError(src.String(), out.Type(), err)
	}

	out.Set(reflect.ValueOf(id))
	return nil
}

func unsupported(src, dst reflect.Type) error {
	return fmt.Errorf("%w: %s to %s", ErrUnsupportedConversion, src, dst)
}

func overflow(v any, dst reflect.Type) error {
	return fmt.Errorf("%w: %v does not fit into %s", ErrOverflow, v, dst)
}

func parseError(s string, dst reflect.Type, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("%w: %q does not fit into %s", ErrOverflow, s, dst)
	}

	return fmt.Errorf("%w: parse %q as %s: %w", ErrUnsupportedConversion, s, dst, err)
}
