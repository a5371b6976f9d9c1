package coerce

import (
	"maps"
	"slices"
)

// Target is an operation whose arguments and result can be coerced with [Wrap].
type Target func(args []any, kwargs map[string]any) (any, error)

// Signature declares the coercion for each argument of a [Target].
// Any zero value [Coercion] leaves its value unchanged.
type Signature struct {
	Positional []Coercion          // Positional is applied by position, and the last entry covers any extra arguments.
	Keyword    map[string]Coercion // Keyword is applied by argument name.
	Wildcard   Coercion            // Wildcard is applied to keyword arguments that have no entry in Keyword.
	Return     Coercion            // Return is applied to the result of the Target.
}

func (s Signature) positional(i int) Coercion {
	if len(s.Positional) == 0 {
		return Coercion{}
	}
	if i >= len(s.Positional) {
		return s.Positional[len(s.Positional)-1]
	}
	return s.Positional[i]
}

func (s Signature) keyword(name string) Coercion {
	if c, ok := s.Keyword[name]; ok && c.IsSet() {
		return c
	}
	return s.Wildcard
}

// Wrap returns a [Target] that coerces arguments with sig before calling target, and coerces the result after.
// The first coercion error is returned unmodified, and target is not called.
// Positional arguments are coerced first, then keyword arguments in name order.
// Errors from target are returned as-is, and the result is not coerced in that case.
//
// The caller's args slice and kwargs map are not modified.
// Passing a nil target will panic.
func Wrap(target Target, sig Signature) Target {
	if target == nil {
		panic("nil target")
	}
	return func(args []any, kwargs map[string]any) (any, error) {
		var (
			coercedArgs   []any
			coercedKwargs map[string]any
		)
		if args != nil {
			coercedArgs = make([]any, len(args))
		}
		for i, arg := range args {
			val, err := sig.positional(i).Apply(arg)
			if err != nil {
				return nil, err
			}
			coercedArgs[i] = val
		}
		if kwargs != nil {
			coercedKwargs = make(map[string]any, len(kwargs))
		}
		for _, name := range slices.Sorted(maps.Keys(kwargs)) {
			val, err := sig.keyword(name).Apply(kwargs[name])
			if err != nil {
				return nil, err
			}
			coercedKwargs[name] = val
		}
		result, err := target(coercedArgs, coercedKwargs)
		if err != nil {
			return result, err
		}
		return sig.Return.Apply(result)
	}
}
