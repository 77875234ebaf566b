// Package codec centralizes element encoding for snapshots.
//
// Snapshots record the codec name in their header, so changing the codec of
// an existing stream is a breaking change: bytes written by one codec may
// not decode with another.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
//
// Self-describing formats store the codec name in their header and use this
// to pick the decoder.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	case "sonnet":
		return Sonnet{}, true
	default:
		return nil, false
	}
}

// Names returns the names of the built-in codecs.
func Names() []string { return []string{"json", "go-json", "sonnet"} }

// MustMarshal is a helper for internal tests/benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
