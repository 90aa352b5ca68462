// Package collection provides generic, functional-style helpers for slices.
//
// Usage:
//
//	rings := collection.Filter(products, func(p models.Product) bool { return p.Category == models.Rings })
//	names := collection.Map(rings, func(p models.Product) string { return p.Name })
//	byCat := collection.CountBy(products, func(p models.Product) string { return string(p.Category) })
package collection

// Map transforms each element of slice s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns elements of s for which fn returns true, in order.
// The result is never nil so it encodes as an empty JSON array.
func Filter[T any](s []T, fn func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// First returns the first element matching fn, or (zero, false).
func First[T any](s []T, fn func(T) bool) (T, bool) {
	for _, v := range s {
		if fn(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// CountBy counts elements of s per key returned by fn.
func CountBy[T any, K comparable](s []T, fn func(T) K) map[K]int {
	out := make(map[K]int)
	for _, v := range s {
		out[fn(v)]++
	}
	return out
}
