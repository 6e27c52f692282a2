package collection

import (
	"reflect"
	"sync"
)

//go:generate go tool stringer -type=StrategyEnum -trimprefix=Strategy -output=strategy_string.go

// StrategyEnum selects which implementation realizes a declared map interface.
type StrategyEnum int

const (
	_ StrategyEnum = iota

	StrategyGeneral
	StrategySorted
	StrategyConcurrent
)

type family struct {
	general, sorted, concurrent func() any
}

var (
	familiesMu sync.RWMutex
	families   = make(map[reflect.Type]family)
)

// Register makes the Map, SortedMap and ConcurrentMap interfaces over V
// constructible by reflection. Registering the same type twice is harmless.
func Register[V any]() {
	familiesMu.Lock()
	defer familiesMu.Unlock()

	families[reflect.TypeFor[V]()] = family{
		general:    func() any { return NewHashMap[V]() },
		sorted:     func() any { return NewTreeMap[V]() },
		concurrent: func() any { return NewSyncMap[V]() },
	}
}

// IsRegistered reports whether Register was called for valueType.
func IsRegistered(valueType reflect.Type) bool {
	familiesMu.RLock()
	defer familiesMu.RUnlock()

	_, ok := families[valueType]
	return ok
}

// New returns a fresh container for values of type valueType. It reports
// false when valueType was never registered.
func New(valueType reflect.Type, strategy StrategyEnum) (any, bool) {
	familiesMu.RLock()
	f, ok := families[valueType]
	familiesMu.RUnlock()

	if !ok {
		return nil, false
	}

	switch strategy {
	case StrategySorted:
		return f.sorted(), true
	case StrategyConcurrent:
		return f.concurrent(), true
	default:
		return f.general(), true
	}
}

// StrategyOf picks the implementation a declared type asks for: sort order
// wins over concurrency safety.
func StrategyOf(declared reflect.Type) StrategyEnum {
	_, hasKeys := declared.MethodByName("Keys")
	_, hasFirst := declared.MethodByName("First")
	if hasKeys && hasFirst {
		return StrategySorted
	}

	if _, ok := declared.MethodByName("LoadOrStore"); ok {
		return StrategyConcurrent
	}

	return StrategyGeneral
}

// ValueTypeOf reports the value type of a container type, recognized by its
// Get(string) (V, bool) and Put(string, V) methods.
func ValueTypeOf(t reflect.Type) (reflect.Type, bool) {
	get, ok := t.MethodByName("Get")
	if !ok {
		return nil, false
	}

	put, ok := t.MethodByName("Put")
	if !ok {
		return nil, false
	}

	// method types of concrete types carry the receiver as first argument
	shift := 1
	if t.Kind() == reflect.Interface {
		shift = 0
	}

	stringType := reflect.TypeFor[string]()
	getType, putType := get.Type, put.Type

	if getType.NumIn() != 1+shift || getType.In(shift) != stringType ||
		getType.NumOut() != 2 || getType.Out(1).Kind() != reflect.Bool {
		return nil, false
	}

	if putType.NumIn() != 2+shift || putType.In(shift) != stringType ||
		putType.In(shift+1) != getType.Out(0) {
		return nil, false
	}

	return getType.Out(0), true
}
