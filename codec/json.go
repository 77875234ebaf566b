package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// JSON works for typical structs, maps and slices. Channels, funcs and
// complex numbers are not supported.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used when none is configured.
//
// NOTE: This affects newly written snapshots only. Existing snapshots store
// the codec name in their header and are decoded with that codec.
var Default Codec = GoJSON{}
