// Package mcputils decodes loosely typed MCP tool arguments into structs.
package mcputils

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// ArgumentGetter is satisfied by mcp.CallToolRequest.
type ArgumentGetter interface {
	GetArguments() map[string]interface{}
}

// CoerceBindArguments binds tool arguments to target using the json tags.
// Clients often send every parameter as a string, so JSON-encoded arrays,
// booleans and numbers inside strings are decoded first and a plain string
// bound to a slice is split on commas.
func CoerceBindArguments[T any](request ArgumentGetter, target *T) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			jsonStringHook,
			mapstructure.StringToSliceHookFunc(","),
		),
		Result:  target,
		TagName: "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(request.GetArguments())
}

// jsonStringHook decodes a JSON literal held in a string when the target
// kind calls for it. Anything that fails to parse is passed through.
func jsonStringHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}

	raw := strings.TrimSpace(data.(string))
	if raw == "" {
		return data, nil
	}

	kind := to.Kind()
	if kind == reflect.Ptr {
		kind = to.Elem().Kind()
	}

	switch {
	case kind == reflect.Slice:
		if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
			return data, nil
		}
		slicePtr := reflect.New(to)
		if to.Kind() == reflect.Ptr {
			slicePtr = reflect.New(to.Elem())
		}
		if err := json.Unmarshal([]byte(raw), slicePtr.Interface()); err == nil {
			return slicePtr.Elem().Interface(), nil
		}

	case kind == reflect.Map || kind == reflect.Struct:
		if !strings.HasPrefix(raw, "{") || !strings.HasSuffix(raw, "}") {
			return data, nil
		}
		var result interface{}
		if err := json.Unmarshal([]byte(raw), &result); err == nil {
			return result, nil
		}

	case kind == reflect.Bool:
		if raw == "true" || raw == "false" {
			return raw == "true", nil
		}

	case kind >= reflect.Int && kind <= reflect.Float64:
		var n json.Number
		if err := json.Unmarshal([]byte(raw), &n); err == nil {
			return n, nil
		}
	}

	return data, nil
}
