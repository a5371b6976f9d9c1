package command

import (
	"fmt"
	"github.com/saylorsolutions/cmdargs/coerce"
	"github.com/saylorsolutions/cmdargs/flags"
	"github.com/saylorsolutions/cmdargs/slots"
	"regexp"
	"strings"
)

const (
	FlagsParam = "flags" // FlagsParam is the reserved parameter name that enables flag extraction, and receives the [flags.Flags].
	ExtraParam = "extra" // ExtraParam is the reserved parameter name that receives leftover tokens as a []string.
)

var keyCleansePattern = regexp.MustCompile(`\s`)

func cleanseKey(key string) string {
	return keyCleansePattern.ReplaceAllString(strings.ToLower(key), "")
}

// Param declares a named parameter of a [Command].
type Param struct {
	Name string

	// Patterns qualify a token for this parameter, and are matched at the start of the token.
	// Empty strings are disabled entries.
	Patterns []string

	// Default is used when no token matches.
	Default any

	// Coerce is applied to the value when it's not nil, including a non-nil Default.
	Coerce coerce.Coercion
}

// Handler is the operation behind a [Command].
type Handler func(args Args) (any, error)

// Invocation is the outcome of running a [Command].
type Invocation struct {
	Command  string
	Args     Args
	Flags    flags.Flags // Flags is nil unless the command declares [FlagsParam].
	Leftover []string    // Leftover holds the tokens that no parameter claimed.
	Result   any
}

// Command is a handler with an ordered, precompiled parameter table.
// Commands are safe for concurrent use once they're registered.
type Command struct {
	name        string
	usage       string
	handler     Handler
	params      []Param
	patternSets []slots.PatternSet
	defaults    []any
	withFlags   bool
	withExtra   bool
	lexer       flags.Lexer
	lexerSet    bool
	returns     coerce.Coercion
}

// New creates a [Command] from the handler and its parameter table.
// Every problem with the parameters is reported in the returned error, which matches [ErrInvalidParam] when parameters are at fault.
func New(name string, handler Handler, params ...Param) (*Command, error) {
	var (
		errs = new(errorList)
		cmd  = &Command{
			name:    cleanseKey(name),
			handler: handler,
			lexer:   flags.DefaultLexer(),
		}
		seen = map[string]bool{}
	)
	if len(cmd.name) == 0 {
		errs.AddString("%w: empty command name", ErrInvalidCommand)
	}
	if handler == nil {
		errs.AddString("%w: '%s' has a nil handler", ErrInvalidCommand, cmd.name)
	}
	for i, param := range params {
		if len(param.Name) == 0 {
			errs.AddString("%w: parameter %d has no name", ErrInvalidParam, i)
			continue
		}
		if seen[param.Name] {
			errs.AddString("%w: duplicate parameter '%s'", ErrInvalidParam, param.Name)
			continue
		}
		seen[param.Name] = true
		switch param.Name {
		case FlagsParam, ExtraParam:
			if len(param.Patterns) > 0 {
				errs.AddString("%w: reserved parameter '%s' cannot have patterns", ErrInvalidParam, param.Name)
				continue
			}
			if param.Name == FlagsParam {
				cmd.withFlags = true
			} else {
				cmd.withExtra = true
			}
			continue
		}
		set, err := slots.Compile(param.Patterns...)
		if err != nil {
			errs.AddString("%w: '%s': %w", ErrInvalidParam, param.Name, err)
			continue
		}
		cmd.params = append(cmd.params, param)
		cmd.patternSets = append(cmd.patternSets, set)
		cmd.defaults = append(cmd.defaults, param.Default)
	}
	if err := errs.Result(); err != nil {
		return nil, err
	}
	return cmd, nil
}

// MustNew is like [New], but panics on error.
func MustNew(name string, handler Handler, params ...Param) *Command {
	cmd, err := New(name, handler, params...)
	if err != nil {
		panic(err)
	}
	return cmd
}

// Usage sets a short description of the [Command] for help output.
func (c *Command) Usage(format string, args ...any) *Command {
	c.usage = fmt.Sprintf(format, args...)
	return c
}

// Returns sets the coercion applied to the handler's result.
func (c *Command) Returns(coercion coerce.Coercion) *Command {
	c.returns = coercion
	return c
}

// Lexer sets the [flags.Lexer] used when the command declares [FlagsParam].
// A [Registry] will not override a lexer set this way.
// Setters are not safe to call once the command is in use.
func (c *Command) Lexer(lexer flags.Lexer) *Command {
	c.lexer = lexer
	c.lexerSet = true
	return c
}

func (c *Command) Name() string {
	return c.name
}

// Synopsis describes the accepted parameters, like "roll <count> <sides> [-flags] [extra...]".
func (c *Command) Synopsis() string {
	return c.synopsis(c.lexer)
}

func (c *Command) synopsis(lexer flags.Lexer) string {
	var buf strings.Builder
	buf.WriteString(c.name)
	for _, param := range c.params {
		if param.Default == nil {
			_, _ = fmt.Fprintf(&buf, " <%s>", param.Name)
		} else {
			_, _ = fmt.Fprintf(&buf, " [%s=%v]", param.Name, param.Default)
		}
	}
	if c.withFlags {
		prefix := lexer.Prefix
		if len(prefix) == 0 {
			prefix = flags.DefaultPrefix
		}
		_, _ = fmt.Fprintf(&buf, " [%sflags]", prefix)
	}
	if c.withExtra {
		buf.WriteString(" [extra...]")
	}
	return buf.String()
}

func (c *Command) target() coerce.Target {
	return coerce.Wrap(func(_ []any, kwargs map[string]any) (any, error) {
		return c.handler(kwargs)
	}, coerce.Signature{Return: c.returns})
}

// Invoke classifies tokens into the command's parameters and calls the handler.
// The tokens slice is not modified.
//
// Errors from flag extraction, coercion, and the handler are returned as-is.
// The [Invocation] is still returned when the handler fails, so leftovers can be reported.
func (c *Command) Invoke(tokens []string) (*Invocation, error) {
	return c.invoke(tokens, c.lexer)
}

func (c *Command) invoke(tokens []string, lexer flags.Lexer) (*Invocation, error) {
	var extractor slots.Extractor
	if c.withFlags {
		extractor = lexer
	}
	classified, err := slots.Classify(tokens, c.patternSets, c.defaults, extractor)
	if err != nil {
		return nil, err
	}
	args := make(Args, len(c.params)+2)
	for i, param := range c.params {
		val := classified.Values[i]
		if val != nil && param.Coerce.IsSet() {
			val, err = param.Coerce.Apply(val)
			if err != nil {
				return nil, err
			}
		}
		args[param.Name] = val
	}
	if c.withFlags {
		args[FlagsParam] = classified.Flags
	}
	if c.withExtra {
		args[ExtraParam] = classified.Leftover
	}
	inv := &Invocation{
		Command:  c.name,
		Args:     args,
		Flags:    classified.Flags,
		Leftover: classified.Leftover,
	}
	inv.Result, err = c.target()(nil, args)
	return inv, err
}

// InvokeResolved calls the handler with args that are already resolved, skipping flag extraction, classification, and parameter coercion.
// This is intended for programmatic re-invocation.
// The [Command.Returns] coercion still applies.
func (c *Command) InvokeResolved(args Args) (*Invocation, error) {
	if args == nil {
		args = Args{}
	}
	inv := &Invocation{
		Command:  c.name,
		Args:     args,
		Flags:    args.Flags(),
		Leftover: args.Extra(),
	}
	var err error
	inv.Result, err = c.target()(nil, args)
	return inv, err
}
