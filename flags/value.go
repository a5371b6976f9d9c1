package flags

import (
	"maps"
	"slices"
	"strconv"
)

// Value is the value of a single flag, which is either a boolean or a string.
type Value struct {
	text   string
	isBool bool
	state  bool
}

// BoolValue creates a boolean [Value].
func BoolValue(state bool) Value {
	return Value{isBool: true, state: state}
}

// TextValue creates a string [Value].
func TextValue(text string) Value {
	return Value{text: text}
}

// IsBool reports whether the flag was given without a string value.
func (v Value) IsBool() bool {
	return v.isBool
}

// Text returns the string value of the flag, and false if this is a boolean [Value].
func (v Value) Text() (string, bool) {
	if v.isBool {
		return "", false
	}
	return v.text, true
}

// Truthy is true for a bare flag, and for any string value.
// A delimited flag with an empty value is the only way to get a false [Value] from the lexer.
func (v Value) Truthy() bool {
	if v.isBool {
		return v.state
	}
	return true
}

func (v Value) String() string {
	if v.isBool {
		return strconv.FormatBool(v.state)
	}
	return v.text
}

// Flags maps flag names to their values.
type Flags map[string]Value

// Has reports whether the named flag was given in any form.
func (f Flags) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// Enabled reports whether the named flag was given and is [Value.Truthy].
func (f Flags) Enabled(name string) bool {
	val, ok := f[name]
	return ok && val.Truthy()
}

// Text returns the string value of the named flag.
// False is returned if the flag is missing or boolean.
func (f Flags) Text(name string) (string, bool) {
	val, ok := f[name]
	if !ok {
		return "", false
	}
	return val.Text()
}

// Names returns the flag names in sorted order.
func (f Flags) Names() []string {
	if len(f) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(f))
}
