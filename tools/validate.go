package tools

import (
	"fmt"
	"reflect"
	"strings"
)

// OptionNotAllowedError reports a value outside a fixed allow-list.
type OptionNotAllowedError struct {
	Value   string
	Allowed []string
}

func (e *OptionNotAllowedError) Error() string {
	return fmt.Sprintf("value %q is not in the allowed options [%s]", e.Value, strings.Join(e.Allowed, ", "))
}

// ValidateOption checks that the trimmed value is among allowed and returns
// the value unchanged. It fails with *OptionNotAllowedError otherwise.
func ValidateOption(value string, allowed []string) (string, error) {
	trimmed := strings.TrimSpace(value)
	for _, option := range allowed {
		if trimmed == option {
			return value, nil
		}
	}
	return "", &OptionNotAllowedError{Value: value, Allowed: allowed}
}

// Kind names the value shapes ValidateType can check for.
type Kind string

const (
	KindArray  Kind = "array"
	KindObject Kind = "object"
	KindString Kind = "string"
	KindNumber Kind = "number"
	KindBool   Kind = "boolean"
)

// TypeError reports a value whose shape does not match the expected kind.
type TypeError struct {
	Expected Kind
	Message  string
}

func (e *TypeError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("value is not of the expected kind %s", e.Expected)
}

// ValidateType checks that value matches the expected kind and fails with a
// *TypeError carrying message otherwise. A nil value never matches.
func ValidateType(value interface{}, expected Kind, message string) error {
	if value != nil && matchesKind(reflect.ValueOf(value), expected) {
		return nil
	}
	return &TypeError{Expected: expected, Message: message}
}

func matchesKind(v reflect.Value, expected Kind) bool {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}

	switch expected {
	case KindArray:
		return v.Kind() == reflect.Slice || v.Kind() == reflect.Array
	case KindObject:
		return v.Kind() == reflect.Map || v.Kind() == reflect.Struct
	case KindString:
		return v.Kind() == reflect.String
	case KindNumber:
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return true
		}
		return false
	case KindBool:
		return v.Kind() == reflect.Bool
	default:
		return false
	}
}
