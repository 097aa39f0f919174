package helpers

import (
	"encoding/json"
	"strings"
)

// SensitiveKeys are masked by MaskJSON, compared case-insensitively.
var SensitiveKeys = []string{"password", "email", "token"}

const maskedValue = "***"

// MaskJSON returns body with the values of SensitiveKeys replaced at any depth,
// truncated to limit characters. Non-JSON input is never echoed back.
func MaskJSON(body []byte, limit int) string {
	if len(strings.TrimSpace(string(body))) == 0 {
		return "[empty]"
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return "[unreadable json]"
	}
	b, err := json.Marshal(maskValue(v))
	if err != nil {
		return "[unreadable json]"
	}
	out := string(b)
	if limit > 0 && len(out) > limit {
		out = out[:limit] + "..."
	}
	return out
}

func maskValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, val := range x {
			if isSensitive(k) {
				x[k] = maskedValue
				continue
			}
			x[k] = maskValue(val)
		}
		return x
	case []any:
		for i, item := range x {
			x[i] = maskValue(item)
		}
		return x
	}
	return v
}

func isSensitive(key string) bool {
	for _, s := range SensitiveKeys {
		if strings.EqualFold(key, s) {
			return true
		}
	}
	return false
}
