// Package expand implements cartesian-product expansion of parameter maps
// whose values are either a single scalar or a list of scalars.
package expand

import (
	"iter"
	"maps"
	"slices"
)

// Value is a scalar-or-list parameter value. The zero value is an empty list,
// which expands to zero combinations.
type Value struct {
	items  []any
	scalar bool
}

// Scalar creates a [Value] holding a single bare value.
func Scalar(v any) Value {
	return Value{items: []any{v}, scalar: true}
}

// List creates a [Value] holding an ordered sequence of values.
func List(vs ...any) Value {
	return Value{items: vs}
}

// IsScalar reports whether the value was a bare scalar rather than a list.
func (v Value) IsScalar() bool {
	return v.scalar
}

// Items returns the value as a sequence. A scalar is a one-element sequence.
func (v Value) Items() []any {
	return v.items
}

// UnmarshalYAML decodes a YAML node into the union: a sequence node becomes
// the list arm, any other node the scalar arm.
func (v *Value) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any

	err := unmarshal(&raw)
	if err != nil {
		return err
	}

	if items, ok := raw.([]any); ok {
		*v = List(items...)

		return nil
	}

	*v = Scalar(raw)

	return nil
}

// MarshalYAML encodes the union back to its natural YAML shape.
func (v Value) MarshalYAML() (any, error) {
	if v.scalar && len(v.items) == 1 {
		return v.items[0], nil
	}

	return v.items, nil
}

// Product lazily yields one map per combination of the parameter values, in
// lexicographic key order. Each yielded map has exactly the input key set,
// with one value per key. An empty list arm yields zero combinations.
//
// The sequence is single-pass; calling Product again recomputes it from the
// input map. The input is never mutated.
func Product(m map[string]Value) iter.Seq[map[string]any] {
	keys := slices.Sorted(maps.Keys(m))

	arms := make([][]any, len(keys))
	for i, k := range keys {
		arms[i] = m[k].Items()
	}

	return func(yield func(map[string]any) bool) {
		if Count(m) == 0 {
			return
		}

		// Odometer over the arm indices, least-significant last.
		idx := make([]int, len(keys))
		for {
			out := make(map[string]any, len(keys))
			for i, k := range keys {
				out[k] = arms[i][idx[i]]
			}

			if !yield(out) {
				return
			}

			i := len(idx) - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < len(arms[i]) {
					break
				}

				idx[i] = 0
			}

			if i < 0 {
				return
			}
		}
	}
}

// Count returns the number of combinations Product will yield, i.e. the
// product of the arm lengths.
func Count(m map[string]Value) int {
	n := 1
	for _, v := range m {
		n *= len(v.Items())
	}

	return n
}
