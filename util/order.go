package util

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// OrderedMap is a map supporting iteration ordered by the key.
//
// Inserting an existing key is rejected unless overrides were allowed, so that
// two registrations under one name are reported instead of silently merged.
type OrderedMap[K constraints.Ordered, V any] struct {
	data           map[K]V
	allowOverrides bool
}

// OrderedMapEntry is an accessor into a single (key, value) pair of the map.
type OrderedMapEntry[K constraints.Ordered, V any] struct {
	Key   K
	Value V
}

// NewOrderedMap instantiates an empty OrderedMap.
func NewOrderedMap[K constraints.Ordered, V any]() OrderedMap[K, V] {
	return OrderedMap[K, V]{data: map[K]V{}}
}

// NewOrderedMapFrom shallow-copies `raw` into a new OrderedMap.
func NewOrderedMapFrom[K constraints.Ordered, V any](raw map[K]V) OrderedMap[K, V] {
	result := OrderedMap[K, V]{data: make(map[K]V, len(raw))}
	for k, v := range raw {
		result.data[k] = v
	}
	return result
}

// AllowOverrides makes Insert replace existing values.
func (m *OrderedMap[K, V]) AllowOverrides() {
	m.allowOverrides = true
}

// Insert adds a (key, value) pair. It reports false if the key exists and
// overrides are not allowed; the map is left unchanged in that case.
func (m *OrderedMap[K, V]) Insert(key K, value V) bool {
	if _, ok := m.data[key]; ok && !m.allowOverrides {
		return false
	}
	m.data[key] = value
	return true
}

// Lookup performs a lookup of the key, similar to `v, ok := m[k]`.
func (m *OrderedMap[K, V]) Lookup(key K) (V, bool) {
	val, ok := m.data[key]
	return val, ok
}

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.data)
}

// Keys returns the ordered list of map keys.
func (m *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Values returns the values of entries ordered by their keys.
func (m *OrderedMap[K, V]) Values() []V {
	result := make([]V, 0, len(m.data))
	for _, k := range m.Keys() {
		result = append(result, m.data[k])
	}
	return result
}

// Entries returns the list of entries ordered by keys.
func (m *OrderedMap[K, V]) Entries() []OrderedMapEntry[K, V] {
	result := make([]OrderedMapEntry[K, V], 0, len(m.data))
	for _, k := range m.Keys() {
		result = append(result, OrderedMapEntry[K, V]{Key: k, Value: m.data[k]})
	}
	return result
}

// OrderedEntries returns the entries of a conventional map ordered by key.
func OrderedEntries[K constraints.Ordered, V any](m map[K]V) []OrderedMapEntry[K, V] {
	tmp := NewOrderedMapFrom(m)
	return tmp.Entries()
}
