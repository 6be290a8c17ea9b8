package label_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slingproj/sling/pkg/label"
)

func TestWindows(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		seq      []string
		expected [][]string
		n        int
	}{
		"overlapping pairs": {
			seq:      []string{"a", "b", "c"},
			n:        2,
			expected: [][]string{{"a", "b"}, {"b", "c"}},
		},
		"sequence shorter than window": {
			seq:      []string{"a"},
			n:        2,
			expected: [][]string{{"a"}},
		},
		"empty sequence yields one empty window": {
			seq:      []string{},
			n:        2,
			expected: [][]string{{}},
		},
		"window of three": {
			seq:      []string{"a", "b", "c", "d"},
			n:        3,
			expected: [][]string{{"a", "b", "c"}, {"b", "c", "d"}},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var got [][]string
			for w := range label.Windows(tc.seq, tc.n) {
				got = append(got, w)
			}

			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestFromArgs(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		expected map[string]string
		tokens   []string
	}{
		"empty token list": {
			tokens:   nil,
			expected: map[string]string{},
		},
		"flag with value and trailing boolean flag": {
			tokens:   []string{"--foo", "bar", "--flag"},
			expected: map[string]string{"foo": "bar", "flag": ""},
		},
		"two boolean flags": {
			tokens:   []string{"--dry-run", "--verbose"},
			expected: map[string]string{"dry-run": "", "verbose": ""},
		},
		"single non-flag token": {
			tokens:   []string{"orphan"},
			expected: map[string]string{},
		},
		"single flag token": {
			tokens:   []string{"--solo"},
			expected: map[string]string{},
		},
		"values are sanitized": {
			tokens:   []string{"--Learning.Rate", "0.01"},
			expected: map[string]string{"learningrate": "001"},
		},
		"key cleaning to empty is dropped": {
			tokens:   []string{"---", "value", "--ok", "v"},
			expected: map[string]string{"ok": "v"},
		},
		"positional values between flags are skipped as keys": {
			tokens:   []string{"pos", "--a", "1", "--b", "2"},
			expected: map[string]string{"a": "1", "b": "2"},
		},
		"digit-leading key gains prefix": {
			tokens:   []string{"--1shot", "on", "--done"},
			expected: map[string]string{"k1shot": "on", "done": ""},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, label.FromArgs(tc.tokens))
		})
	}
}

func TestExpandArgs(t *testing.T) {
	t.Parallel()

	val := "v"

	tcs := map[string]struct {
		items    map[string]*string
		expected []string
	}{
		"nil map": {
			items:    nil,
			expected: nil,
		},
		"key with value": {
			items:    map[string]*string{"--a": &val},
			expected: []string{"--a", "v"},
		},
		"solo flag has no partner": {
			items:    map[string]*string{"--flag": nil},
			expected: []string{"--flag"},
		},
		"keys emitted in sorted order": {
			items:    map[string]*string{"--b": nil, "--a": &val},
			expected: []string{"--a", "v", "--b"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, label.ExpandArgs(tc.items))
		})
	}
}
