package api

import (
	"encoding/json"
	"strings"
)

// MessageFields are the error body fields probed for a user-facing message,
// in order.
var MessageFields = []string{"message", "error", "detail", "msg"}

// ExtractMessage returns the first non-empty string found under one of
// MessageFields in a JSON object body, or fallback.
func ExtractMessage(body []byte, fallback string) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return fallback
	}
	for _, field := range MessageFields {
		raw, ok := obj[field]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return fallback
}
