// Package yaml wraps goccy/go-yaml with the encoder/decoder settings used
// throughout the repo.
package yaml

import (
	"io"

	"github.com/goccy/go-yaml"
)

type Decoder struct {
	d *yaml.Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		d: yaml.NewDecoder(r, yaml.Strict()),
	}
}

func (d *Decoder) Decode(v any) error {
	return d.d.Decode(v) //nolint:wrapcheck // Return the original error.
}
