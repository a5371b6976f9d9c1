package coerce

import (
	"errors"
	"fmt"
)

var (
	ErrArgType    = errors.New("unexpected argument type")
	ErrMissingArg = errors.New("missing argument")
)

// Get returns the named argument as a T.
// An error wrapping [ErrMissingArg] is returned if the argument is absent or nil, and [ErrArgType] if it's not a T.
func Get[T any](kwargs map[string]any, name string) (T, error) {
	var mt T
	val, ok := kwargs[name]
	if !ok || val == nil {
		return mt, fmt.Errorf("%w: '%s'", ErrMissingArg, name)
	}
	typed, ok := val.(T)
	if !ok {
		return mt, fmt.Errorf("%w: '%s' expected %T, but got %T", ErrArgType, name, mt, val)
	}
	return typed, nil
}

// Binding stores an argument from a map into some target.
type Binding func(kwargs map[string]any) error

// To creates a [Binding] that requires the named argument to be a T, and stores it in target.
// The target cannot be a nil pointer.
func To[T any](name string, target *T) Binding {
	if target == nil {
		return func(_ map[string]any) error {
			return fmt.Errorf("target for argument '%s' is nil pointer", name)
		}
	}
	return func(kwargs map[string]any) error {
		val, err := Get[T](kwargs, name)
		if err != nil {
			return err
		}
		*target = val
		return nil
	}
}

// Optional is like [To], but an absent or nil argument leaves target untouched.
func Optional[T any](name string, target *T) Binding {
	bind := To(name, target)
	return func(kwargs map[string]any) error {
		if val, ok := kwargs[name]; !ok || val == nil {
			return nil
		}
		return bind(kwargs)
	}
}

// Bind applies every [Binding], and joins all resulting errors.
// Nil bindings are skipped.
func Bind(kwargs map[string]any, bindings ...Binding) error {
	var errs []error
	for _, binding := range bindings {
		if binding == nil {
			continue
		}
		if err := binding(kwargs); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
