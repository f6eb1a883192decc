package util

import "sync"

// OncePer memoizes one value per key. The first caller for a key computes the
// value; every later caller gets the stored value without recomputing it.
type OncePer[K comparable, V any] struct {
	values sync.Map
	lock   sync.Mutex
}

// Once returns the value stored for `key`, computing it with `value` if needed.
func (once *OncePer[K, V]) Once(key K, value func() V) V {
	if v, ok := once.values.Load(key); ok {
		return v.(V)
	}

	once.lock.Lock()
	defer once.lock.Unlock()

	if v, ok := once.values.Load(key); ok {
		return v.(V)
	}

	v := value()
	once.values.Store(key, v)
	return v
}

// Peek returns the value stored for `key` without computing it.
func (once *OncePer[K, V]) Peek(key K) (V, bool) {
	v, ok := once.values.Load(key)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

// Range calls fn for every stored value, in no particular order.
func (once *OncePer[K, V]) Range(fn func(K, V)) {
	once.values.Range(func(k, v interface{}) bool {
		fn(k.(K), v.(V))
		return true
	})
}
