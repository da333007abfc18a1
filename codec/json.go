package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Float coordinates round-trip exactly; NaN and Inf are rejected by the
// encoder.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// IndentJSON is JSON with two-space indentation, for reports read by humans.
type IndentJSON struct{}

// Marshal encodes the value to indented JSON.
func (IndentJSON) Marshal(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }

// Unmarshal decodes the JSON data into v.
func (IndentJSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json-indent").
func (IndentJSON) Name() string { return "json-indent" }
