// Package table provides pure helpers for regrouping nested map structures.
//
// Experiment tooling ends up with a lot of "table" shaped data, e.g. parameter
// name -> job name -> value. These helpers shuffle such tables along a
// different axis without touching the values themselves.
package table

import (
	"maps"
	"slices"
)

// Set is an unordered collection of unique values.
type Set[T comparable] map[T]struct{}

// NewSet creates a [Set] containing the provided values.
func NewSet[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s.Add(v)
	}

	return s
}

// Add inserts a value into the set.
func (s Set[T]) Add(v T) {
	s[v] = struct{}{}
}

// Has reports whether the set contains the value.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]

	return ok
}

// Slice returns the set's values in unspecified order.
func (s Set[T]) Slice() []T {
	return slices.Collect(maps.Keys(s))
}

// Flip inverts the outer and inner keys of a two-level table, so that
// t[k1][k2] == Flip(t)[k2][k1] for every entry.
//
// No collision can occur: k1 is unique per outer iteration, so each (k2, k1)
// slot is written at most once.
func Flip[K1, K2 comparable, V any](t map[K1]map[K2]V) map[K2]map[K1]V {
	ret := map[K2]map[K1]V{}
	for k1, inner := range t {
		for k2, v := range inner {
			if ret[k2] == nil {
				ret[k2] = map[K1]V{}
			}

			ret[k2][k1] = v
		}
	}

	return ret
}

// Invert maps each value back to the set of keys whose slice contained it.
func Invert[K, V comparable](t map[K][]V) map[V]Set[K] {
	ret := map[V]Set[K]{}
	for k, vs := range t {
		for _, v := range vs {
			if ret[v] == nil {
				ret[v] = Set[K]{}
			}

			ret[v].Add(k)
		}
	}

	return ret
}

// Reorder regroups a three-level table by permuting each (k1, k2, v) triple
// per order, which selects the new (outer key, inner key, set element).
// Duplicate elements arriving via different routes collapse into one set
// entry.
func Reorder[K1, K2, V comparable](t map[K1]map[K2][]V, order [3]int) map[any]map[any]Set[any] {
	ret := map[any]map[any]Set[any]{}
	for k1, inner := range t {
		for k2, vs := range inner {
			for _, v := range vs {
				fields := [3]any{k1, k2, v}

				outer := fields[order[0]]
				if ret[outer] == nil {
					ret[outer] = map[any]Set[any]{}
				}

				acc := ret[outer][fields[order[1]]]
				if acc == nil {
					acc = Set[any]{}
					ret[outer][fields[order[1]]] = acc
				}

				acc.Add(fields[order[2]])
			}
		}
	}

	return ret
}

// Merge returns a new map containing the entries of l overlaid with the
// entries of r. On key conflict, r wins.
func Merge[K comparable, V any](l, r map[K]V) map[K]V {
	ret := make(map[K]V, len(l)+len(r))
	for k, v := range l {
		ret[k] = v
	}
	for k, v := range r {
		ret[k] = v
	}

	return ret
}

// DictBy builds a map with the provided key set, where each value is the
// result of applying f to its key.
func DictBy[K comparable, V any](keys []K, f func(K) V) map[K]V {
	ret := make(map[K]V, len(keys))
	for _, k := range keys {
		ret[k] = f(k)
	}

	return ret
}

// NChunks splits items into n strided slices that together cover the input.
// Chunk i holds items[i], items[i+n], items[i+2n], and so on.
func NChunks[T any](items []T, n int) [][]T {
	ret := make([][]T, n)
	for i := range n {
		for j := i; j < len(items); j += n {
			ret[i] = append(ret[i], items[j])
		}
	}

	return ret
}

// ChunksBelowLimit splits items into the smallest number of strided chunks
// such that each chunk holds at most limit items.
func ChunksBelowLimit[T any](items []T, limit int) [][]T {
	return NChunks(items, len(items)/limit+1)
}
