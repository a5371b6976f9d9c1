package command

import (
	"github.com/saylorsolutions/cmdargs/coerce"
	"github.com/saylorsolutions/cmdargs/flags"
)

// Args are the resolved arguments given to a [Handler], keyed by parameter name.
type Args map[string]any

// Flags returns the extracted flags, or nil if the command doesn't declare [FlagsParam].
func (a Args) Flags() flags.Flags {
	found, _ := a[FlagsParam].(flags.Flags)
	return found
}

// Extra returns the leftover tokens, or nil if the command doesn't declare [ExtraParam].
func (a Args) Extra() []string {
	extra, _ := a[ExtraParam].([]string)
	return extra
}

// String returns the named argument if it's a string, and an empty string otherwise.
func (a Args) String(name string) string {
	val, _ := a[name].(string)
	return val
}

// Int returns the named argument if it's an int.
func (a Args) Int(name string) (int, error) {
	return coerce.Get[int](a, name)
}

// Bind applies each [coerce.Binding] to these arguments.
func (a Args) Bind(bindings ...coerce.Binding) error {
	return coerce.Bind(a, bindings...)
}
