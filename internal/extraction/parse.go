// internal/extraction/parse.go
package extraction

import (
	"encoding/json"
	"strings"

	"isabella-notion/internal/models"
)

// ParseStringArray parses an entire raw model reply as a JSON array of
// strings. Returns false when the text is not valid JSON or not a sequence.
func ParseStringArray(raw string) ([]string, bool) {
	var value interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &value); err != nil {
		return nil, false
	}
	return models.StringsFromValue(value)
}

// ObjectSpan locates the first '{' through the last '}' in a raw reply,
// which strips any prose the model wrapped around its JSON. The heuristic
// can mis-extract when multiple JSON-looking fragments appear in the prose;
// that limitation is accepted rather than guessing at a fix.
func ObjectSpan(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// ParseObject extracts the brace span from a raw reply and parses it as a
// JSON object. Returns false when no span exists or the span is not a valid
// JSON object, in which case the caller substitutes its whole fallback.
func ParseObject(raw string) (map[string]interface{}, bool) {
	span, ok := ObjectSpan(raw)
	if !ok {
		// No braces at all; try the raw text in case the model returned a
		// bare object without decoration.
		span = raw
	}

	var value map[string]interface{}
	if err := json.Unmarshal([]byte(span), &value); err != nil {
		return nil, false
	}
	return value, true
}
