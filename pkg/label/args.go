package label

import (
	"iter"
	"maps"
	"slices"
)

// Windows yields overlapping windows of width n from seq, advancing one
// position at a time. It always yields at least one window, even when the
// sequence is shorter than n; the final windows may be short.
func Windows[T any](seq []T, n int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for i := range max(1, len(seq)-n+1) {
			if !yield(seq[i:min(i+n, len(seq))]) {
				return
			}
		}
	}
}

// FromArgs scans a flat argument token list into a sanitized label map.
//
// The scan runs in two passes. First, every overlapping width-2 window is
// examined: if the window head looks like a flag, its sanitized key is
// recorded, with the partner as value unless the partner itself looks like a
// flag (then the key is a standalone switch and the value is empty). Second,
// if the list has more than one token, the last token is re-examined on its
// own, recovering a trailing boolean flag that the window pass only saw as a
// partner. Keys that sanitize to the empty string are dropped.
func FromArgs(tokens []string) map[string]string {
	ret := map[string]string{}
	if len(tokens) == 0 {
		return ret
	}

	record := func(k, v string) {
		if !isFlag(k) {
			return
		}

		cleanKey := Key(k)
		if cleanKey == "" {
			return
		}

		if isFlag(v) {
			ret[cleanKey] = ""
		} else {
			ret[cleanKey] = Value(v)
		}
	}

	for w := range Windows(tokens, 2) {
		if len(w) < 2 {
			continue
		}

		record(w[0], w[1])
	}

	// A final boolean flag only ever appears as a window partner, so the
	// window pass never records it. Re-examine it with an absent partner.
	if len(tokens) > 1 {
		record(tokens[len(tokens)-1], "")
	}

	return ret
}

// ExpandArgs converts a label-style map back into a flat argument list, in
// lexicographic key order. A nil value marks a solo flag: the key is emitted
// without a partner.
func ExpandArgs(items map[string]*string) []string {
	var ret []string
	for _, k := range slices.Sorted(maps.Keys(items)) {
		ret = append(ret, k)
		if items[k] != nil {
			ret = append(ret, *items[k])
		}
	}

	return ret
}

// isFlag reports whether the token looks like a command-line flag, i.e. it
// is non-empty and starts with a dash.
func isFlag(k string) bool {
	return k != "" && k[0] == '-'
}
