package redact

import (
	"regexp"
	"strings"
)

const placeholder = "[REDACTED]"

var (
	// Bearer headers and JWTs embedded in free text.
	tokenPattern = regexp.MustCompile(`(?i)(bearer\s+)[a-z0-9\-._~+/]+=*|eyJ[a-zA-Z0-9_\-]+\.[a-zA-Z0-9_\-]+\.[a-zA-Z0-9_\-]+`)

	sensitiveKeys = []string{"password", "token", "secret", "apikey", "api_key", "credential"}
)

type Redactor struct{}

func New() *Redactor {
	return &Redactor{}
}

func (r *Redactor) RedactString(input string) string {
	return tokenPattern.ReplaceAllStringFunc(input, func(match string) string {
		if strings.HasPrefix(strings.ToLower(match), "bearer") {
			return match[:len("bearer ")] + placeholder
		}
		return placeholder
	})
}

func (r *Redactor) RedactMap(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	output := map[string]any{}
	for k, v := range input {
		if isSensitiveKey(k) {
			output[k] = placeholder
			continue
		}
		output[k] = r.RedactValue(v)
	}
	return output
}

func (r *Redactor) RedactValue(input any) any {
	switch v := input.(type) {
	case string:
		return r.RedactString(v)
	case map[string]any:
		return r.RedactMap(v)
	case []any:
		redacted := make([]any, 0, len(v))
		for _, item := range v {
			redacted = append(redacted, r.RedactValue(item))
		}
		return redacted
	default:
		return input
	}
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, marker := range sensitiveKeys {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
