// Package collection provides string-keyed map containers that mapped
// entities can declare instead of builtin maps:
//   - Map, the general contract, implemented by HashMap
//   - SortedMap, iterated in key order, implemented by TreeMap
//   - ConcurrentMap, safe for concurrent use, implemented by SyncMap
//
// A field declared with one of the interfaces is realized by the matching
// implementation once its value type has been registered with Register.
package collection
