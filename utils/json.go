package utils

import "encoding/json"

// MarshalJSON wraps json.Marshal so callers don't import encoding/json directly
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// UnmarshalJSON wraps json.Unmarshal
func UnmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
