package codec

import gojson "github.com/goccy/go-json"

// GoJSON is the default snapshot codec. It writes plain JSON through
// github.com/goccy/go-json, so its records decode with JSON and Sonnet too.
type GoJSON struct{}

func (GoJSON) Marshal(v any) ([]byte, error) { return gojson.Marshal(v) }

func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

// Name returns "go-json".
func (GoJSON) Name() string { return "go-json" }
