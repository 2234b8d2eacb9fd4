package mcp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"k8s.io/klog/v2"

	"duplocloud-mcp/internal/duplo"
)

const successText = `{"status":"success"}`

// ErrorPayload is the serialized form of every tool failure.
type ErrorPayload struct {
	Error    string `json:"error"`
	Code     int    `json:"code"`
	Response string `json:"response,omitempty"`
}

// Normalize turns a tool outcome into the text returned to the caller and
// reports whether it is an error. Errors are matched in order: *duplo.Error,
// *ValidationError, anything else.
func Normalize(tool string, data any, err error) (string, bool) {
	if err != nil {
		return encodePayload(classifyError(tool, err)), true
	}
	return encodeData(data), false
}

func classifyError(tool string, err error) ErrorPayload {
	var domainErr *duplo.Error
	if errors.As(err, &domainErr) {
		klog.ErrorS(err, "duplo error", "tool", tool, "code", domainErr.Code)
		return ErrorPayload{Error: domainErr.Message, Code: domainErr.Code, Response: responseText(domainErr.Response)}
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		klog.ErrorS(err, "validation error", "tool", tool)
		return ErrorPayload{Error: validationErr.Message, Code: http.StatusBadRequest}
	}
	klog.ErrorS(err, "unexpected error", "tool", tool, "detail", fmt.Sprintf("%+v", err))
	return ErrorPayload{Error: "Unexpected error: " + err.Error(), Code: http.StatusInternalServerError}
}

func responseText(response any) string {
	switch v := response.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	}
	if text, err := marshalJSON(jsonSafe(response)); err == nil {
		return text
	}
	return fmt.Sprint(response)
}

func encodePayload(payload ErrorPayload) string {
	text, err := marshalJSON(payload)
	if err != nil {
		return fmt.Sprintf(`{"error":%q,"code":%d}`, payload.Error, payload.Code)
	}
	return text
}

func encodeData(data any) string {
	if data == nil {
		return successText
	}
	if !isStructured(data) {
		return fmt.Sprint(data)
	}
	if text, err := marshalJSON(data); err == nil {
		return text
	}
	text, err := marshalJSON(jsonSafe(data))
	if err != nil {
		return fmt.Sprint(data)
	}
	return text
}

func isStructured(data any) bool {
	rv := reflect.ValueOf(data)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	}
	return false
}

// jsonSafe rebuilds maps and slices, replacing values JSON cannot encode
// with their string form.
func jsonSafe(value any) any {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = jsonSafe(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes())
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = jsonSafe(rv.Index(i).Interface())
		}
		return out
	}
	if _, err := json.Marshal(value); err != nil {
		return fmt.Sprint(value)
	}
	return value
}

func marshalJSON(value any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
