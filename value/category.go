package value

import (
	"fmt"
	"strings"
)

// CategoryEnum is a bit set of conversion families a coercion may use.
type CategoryEnum int

type ConversionPair struct {
	From, To KindEnum
}

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int, uint, float without precision loss
	CategoryUnsafeNumber                          // int, uint, float with precision loss
	CategoryTextNumber                            // int, uint, float <-> string: textual number representation
	CategoryNumericBool                           // int <-> bool: 0, 1 representation of boolean values
	CategoryTextualBool                           // string <-> bool: yes, no, on, off, true, false representation of boolean values
	CategoryDatetime                              // string(RFC3339Nano) <-> time.Time: textual date and time representation
	CategoryTimestamp                             // int(Unix seconds) <-> time.Time: Unix timestamp representation
	CategoryDuration                              // string(2h45m) <-> time.Duration: textual duration representation
	CategoryNanoseconds                           // int(nanoseconds) <-> time.Duration: numerical (integer) duration representation
	CategorySeconds                               // float(seconds) <-> time.Duration: numerical (floating-point) duration representation
	CategoryEnumString                            // string <-> enum: textual representation of a named string or integer type
	CategoryEnumNumber                            // int <-> enum: numeric representation of a named integer type
	CategoryIdentifier                            // string <-> uuid.UUID: textual identifier representation

	CategoryAll  CategoryEnum = (1 << iota) - 1 // all categories combined
	CategoryNone CategoryEnum = 0               // no categories selected
)

var categoryNames = map[string]CategoryEnum{
	"safe_number":   CategorySafeNumber,
	"unsafe_number": CategoryUnsafeNumber,
	"text_number":   CategoryTextNumber,
	"numeric_bool":  CategoryNumericBool,
	"textual_bool":  CategoryTextualBool,
	"datetime":      CategoryDatetime,
	"timestamp":     CategoryTimestamp,
	"duration":      CategoryDuration,
	"nanoseconds":   CategoryNanoseconds,
	"seconds":       CategorySeconds,
	"enum_string":   CategoryEnumString,
	"enum_number":   CategoryEnumNumber,
	"identifier":    CategoryIdentifier,
	"all":           CategoryAll,
}

// ParseCategories folds category names (as used in configuration files) into one set.
func ParseCategories(names []string) (CategoryEnum, error) {
	var res CategoryEnum
	for _, name := range names {
		category, ok := categoryNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return CategoryNone, fmt.Errorf("unknown conversion category %q", name)
		}

		res |= category
	}

	return res, nil
}

// pairCategories records, for each conversion pair, which categories permit it.
var pairCategories map[ConversionPair]CategoryEnum

func register(category CategoryEnum, pairs ...ConversionPair) {
	for _, pair := range pairs {
		pairCategories[pair] |= category
	}
}

func init() {
	pairCategories = make(map[ConversionPair]CategoryEnum)

	for pair := range safeNumberConversionPairs() {
		register(CategorySafeNumber, pair)
	}

	for fromKind := KindEnum(1); int(fromKind) < KindTotal; fromKind++ {
		if !fromKind.IsNumber() {
			continue
		}

		for toKind := KindEnum(1); int(toKind) < KindTotal; toKind++ {
			pair := ConversionPair{fromKind, toKind}
			if !toKind.IsNumber() || pairCategories[pair]&CategorySafeNumber != 0 {
				continue
			}

			register(CategoryUnsafeNumber, pair)
		}

		register(CategoryTextNumber, ConversionPair{fromKind, KindString}, ConversionPair{KindString, fromKind})
	}

	for kind := KindEnum(1); int(kind) < KindTotal; kind++ {
		if !kind.IsInteger() {
			continue
		}

		register(CategoryNumericBool, ConversionPair{kind, KindBool}, ConversionPair{KindBool, kind})
		register(CategoryTimestamp, ConversionPair{kind, KindTime}, ConversionPair{KindTime, kind})
		register(CategoryEnumNumber, ConversionPair{kind, KindPrimitiveEnum}, ConversionPair{KindPrimitiveEnum, kind})

		if kind != KindUint64 {
			register(CategoryNanoseconds, ConversionPair{kind, KindDuration}, ConversionPair{KindDuration, kind})
		}
	}

	register(CategoryTextualBool, ConversionPair{KindString, KindBool}, ConversionPair{KindBool, KindString})
	register(CategoryDatetime, ConversionPair{KindString, KindTime}, ConversionPair{KindTime, KindString})
	register(CategoryDuration, ConversionPair{KindString, KindDuration}, ConversionPair{KindDuration, KindString})
	register(CategorySeconds,
		ConversionPair{KindFloat32, KindDuration}, ConversionPair{KindFloat64, KindDuration},
		ConversionPair{KindDuration, KindFloat32}, ConversionPair{KindDuration, KindFloat64},
	)
	register(CategoryEnumString,
		ConversionPair{KindString, KindPrimitiveEnum},
		ConversionPair{KindPrimitiveEnum, KindString},
		ConversionPair{KindPrimitiveEnum, KindPrimitiveEnum},
	)
	register(CategoryIdentifier, ConversionPair{KindString, KindUUID}, ConversionPair{KindUUID, KindString})
}

// Allows reports whether any category in allowed permits the pair.
func (c CategoryEnum) Allows(pair ConversionPair) bool {
	if pair.From == pair.To && pair.From != KindPrimitiveEnum {
		return true
	}

	return pairCategories[pair]&c != 0
}

func safeNumberConversionPairs() map[ConversionPair]struct{} {
	return map[ConversionPair]struct{}{
		{KindInt, KindInt}:   {}, // int can be any wide from 32 upto 64
		{KindInt, KindInt64}: {},

		{KindInt8, KindInt}:     {}, // int8 can be safely converted to any signed int
		{KindInt8, KindInt16}:   {},
		{KindInt8, KindInt32}:   {},
		{KindInt8, KindInt64}:   {},
		{KindInt8, KindFloat32}: {},
		{KindInt8, KindFloat64}: {},

		{KindInt16, KindInt}:     {},
		{KindInt16, KindInt32}:   {},
		{KindInt16, KindInt64}:   {},
		{KindInt16, KindFloat32}: {},
		{KindInt16, KindFloat64}: {},

		{KindInt32, KindInt}:     {},
		{KindInt32, KindInt64}:   {},
		{KindInt32, KindFloat64}: {}, // int32 is wider than float32 mantissa

		{KindUint, KindUint}:   {},
		{KindUint, KindUint64}: {},

		{KindUint8, KindUint}:    {},
		{KindUint8, KindUint16}:  {},
		{KindUint8, KindUint32}:  {},
		{KindUint8, KindUint64}:  {},
		{KindUint8, KindInt}:     {},
		{KindUint8, KindInt16}:   {},
		{KindUint8, KindInt32}:   {},
		{KindUint8, KindInt64}:   {},
		{KindUint8, KindFloat32}: {},
		{KindUint8, KindFloat64}: {},

		{KindUint16, KindUint}:    {},
		{KindUint16, KindUint32}:  {},
		{KindUint16, KindUint64}:  {},
		{KindUint16, KindInt}:     {},
		{KindUint16, KindInt32}:   {},
		{KindUint16, KindInt64}:   {},
		{KindUint16, KindFloat32}: {},
		{KindUint16, KindFloat64}: {},

		{KindUint32, KindUint64}:  {},
		{KindUint32, KindInt64}:   {}, // only int64 is wide enough to hold uint32
		{KindUint32, KindFloat64}: {},

		{KindFloat32, KindFloat64}: {},
	}
}
