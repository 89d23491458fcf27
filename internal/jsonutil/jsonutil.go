// Package jsonutil provides small helpers for decoding and writing the JSON
// bodies exchanged with the generation endpoint.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// DecodeObject unmarshals data as a JSON object. Arrays, scalars and
// malformed input are rejected.
func DecodeObject(data []byte, context string) (map[string]interface{}, error) {
	var obj map[string]interface{}
	if err := UnmarshalWithContext(data, &obj, context); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("%s: expected JSON object", context)
	}
	return obj, nil
}

// GetString safely extracts a string value from a decoded object.
// Returns the value if it's a string, otherwise returns empty string.
func GetString(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
