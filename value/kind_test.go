package value_test

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"

	"artemis/value"
)

func Example() {
	type IntEnum int
	type StringEnum string
	type Empty struct{}

	fmt.Println(value.FromReflectType(reflect.TypeOf(int(0))))
	fmt.Println(value.FromReflectType(reflect.TypeOf("")))
	fmt.Println(value.FromReflectType(reflect.TypeOf(IntEnum(0))))
	fmt.Println(value.FromReflectType(reflect.TypeOf(StringEnum(""))))
	fmt.Println(value.FromReflectType(reflect.TypeOf(time.Duration(0))))
	fmt.Println(value.FromReflectType(reflect.TypeOf(time.Time{})))
	fmt.Println(value.FromReflectType(reflect.TypeOf(uuid.UUID{})))
	fmt.Println(value.FromReflectType(reflect.TypeOf(Empty{})))
	// Output:
	// KindInt
	// KindString
	// KindPrimitiveEnum
	// KindPrimitiveEnum
	// KindDuration
	// KindTime
	// KindUUID
	// KindEnum(0)
}

func ExampleAs() {
	revpos, _ := value.As[int](value.Of(int32(7)))
	length, _ := value.As[int64](value.Of("1024"))
	stub, _ := value.As[bool](value.Of("yes"))

	fmt.Println(revpos, length, stub)
	// Output:
	// 7 1024 true
}
