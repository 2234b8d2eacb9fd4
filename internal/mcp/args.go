package mcp

import (
	"encoding/json"
	"math"
	"strings"
)

// RequireArg applies RequireString to args[key]. Missing and non-string
// values count as empty.
func RequireArg(args map[string]any, key, label string) (string, error) {
	value, _ := args[key].(string)
	return RequireString(value, label)
}

// OptionalString returns the trimmed string at key; ok is false when it is
// missing, not a string, or blank.
func OptionalString(args map[string]any, key string) (string, bool) {
	value, _ := args[key].(string)
	value = strings.TrimSpace(value)
	return value, value != ""
}

// OptionalInt returns the integer at key. A missing or null value yields
// ok=false; anything that is not a whole number within int32 range is a
// ValidationError.
func OptionalInt(args map[string]any, key string) (int, bool, error) {
	raw, present := args[key]
	if !present || raw == nil {
		return 0, false, nil
	}
	var value int64
	switch v := raw.(type) {
	case int:
		value = int64(v)
	case int64:
		value = v
	case float64:
		if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
			return 0, false, NewValidationError("%s must be an integer", key)
		}
		value = int64(v)
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return 0, false, NewValidationError("%s must be an integer", key)
		}
		value = parsed
	default:
		return 0, false, NewValidationError("%s must be an integer", key)
	}
	if value < math.MinInt32 || value > math.MaxInt32 {
		return 0, false, NewValidationError("%s must be an integer", key)
	}
	return int(value), true, nil
}

// IntArg is OptionalInt with a fallback for the missing case.
func IntArg(args map[string]any, key string, fallback int) (int, error) {
	value, ok, err := OptionalInt(args, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return fallback, nil
	}
	return value, nil
}

// OptionalBool returns nil when key is missing or null.
func OptionalBool(args map[string]any, key string) (*bool, error) {
	raw, present := args[key]
	if !present || raw == nil {
		return nil, nil
	}
	value, ok := raw.(bool)
	if !ok {
		return nil, NewValidationError("%s must be a boolean", key)
	}
	return &value, nil
}

// RequireTenant validates the tenant_id argument shared by every
// tenant-scoped tool.
func RequireTenant(args map[string]any) (string, error) {
	return RequireArg(args, "tenant_id", "Tenant ID")
}
