package coerce

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrCoercion = errors.New("failed to coerce value")
)

var (
	DefaultTrue  = []string{"1", "yes", "true", "on"}  // DefaultTrue are the values considered "true" by [Bool], and can be changed.
	DefaultFalse = []string{"0", "no", "false", "off"} // DefaultFalse are the values considered "false" by [Bool], and can be changed.
)

// Kind identifies the strategy of a [Coercion].
type Kind int

const (
	KindNone Kind = iota // KindNone passes values through unchanged.
	KindString
	KindInt
	KindFloat
	KindBool
	KindDuration
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDuration:
		return "duration"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Func is a custom conversion used with [With].
type Func func(val any) (any, error)

// Coercion is a strategy for converting a value.
type Coercion struct {
	kind Kind
	fn   Func
}

// Str converts values to a string, using [fmt.Stringer] if it's implemented.
func Str() Coercion {
	return Coercion{kind: KindString, fn: toString}
}

// Int converts values to an int.
func Int() Coercion {
	return Coercion{kind: KindInt, fn: toInt}
}

// Float converts values to a float64.
func Float() Coercion {
	return Coercion{kind: KindFloat, fn: toFloat}
}

// Bool converts values to a bool, using [DefaultTrue] and [DefaultFalse] for strings.
// Values with a Truthy() bool method, like a flag value, are also understood.
func Bool() Coercion {
	return Coercion{kind: KindBool, fn: toBool}
}

// Duration converts values to a [time.Duration] with [time.ParseDuration].
func Duration() Coercion {
	return Coercion{kind: KindDuration, fn: toDuration}
}

// With creates a custom [Coercion].
// Errors returned by fn are not wrapped.
//
// Passing a nil function will panic.
func With(fn Func) Coercion {
	if fn == nil {
		panic("nil coercion function")
	}
	return Coercion{kind: KindCustom, fn: fn}
}

func (c Coercion) Kind() Kind {
	return c.kind
}

// IsSet is false for the zero value [Coercion].
func (c Coercion) IsSet() bool {
	return c.fn != nil
}

// Apply converts val using this strategy.
func (c Coercion) Apply(val any) (any, error) {
	if c.fn == nil {
		return val, nil
	}
	return c.fn(val)
}

func coercionErr(kind Kind, val any, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %v (%T) to %s: %v", ErrCoercion, val, val, kind, cause)
	}
	return fmt.Errorf("%w: %v (%T) to %s", ErrCoercion, val, val, kind)
}

func toString(val any) (any, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return fmt.Sprint(v), nil
	}
}

func toInt(val any) (any, error) {
	switch v := val.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case string:
		ival, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, coercionErr(KindInt, val, err)
		}
		return ival, nil
	default:
		return nil, coercionErr(KindInt, val, nil)
	}
}

func toFloat(val any) (any, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		fval, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, coercionErr(KindFloat, val, err)
		}
		return fval, nil
	default:
		return nil, coercionErr(KindFloat, val, nil)
	}
}

type truthy interface {
	Truthy() bool
}

func toBool(val any) (any, error) {
	switch v := val.(type) {
	case bool:
		return v, nil
	case truthy:
		return v.Truthy(), nil
	case string:
		sval := strings.ToLower(strings.TrimSpace(v))
		for _, t := range DefaultTrue {
			if sval == strings.ToLower(t) {
				return true, nil
			}
		}
		for _, f := range DefaultFalse {
			if sval == strings.ToLower(f) {
				return false, nil
			}
		}
		return nil, coercionErr(KindBool, val, nil)
	default:
		return nil, coercionErr(KindBool, val, nil)
	}
}

func toDuration(val any) (any, error) {
	switch v := val.(type) {
	case time.Duration:
		return v, nil
	case string:
		dval, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return nil, coercionErr(KindDuration, val, err)
		}
		return dval, nil
	default:
		return nil, coercionErr(KindDuration, val, nil)
	}
}
