/*
Package command binds a free-form command line to a handler with named, typed parameters.

A [Command] is registered once with an ordered table of [Param].
Each parameter has a set of patterns, a default, and an optional [coerce.Coercion].
At registration the patterns are compiled and the slot table is fixed, so nothing is compiled or inspected per call.

When a command is invoked with tokens, this happens in order:

 1. If a parameter named [FlagsParam] is declared, flags are extracted with the command's [flags.Lexer].
 2. The remaining tokens are classified into the parameters in declaration order (see package slots).
 3. Each non-nil value is passed through its parameter's coercion.
 4. The handler is called, and its result is passed through the [Command.Returns] coercion.

Tokens that no parameter claims are reported in [Invocation.Leftover], and are also given to the handler if [ExtraParam] is declared.
The caller's token slice is never modified.

# Parameter order matters

Earlier parameters claim tokens first.
If two parameters could match the same token, then the first one declared gets it, and the second falls back to its default.
Declare the most specific patterns first.

# Registry

A [Registry] maps case-insensitive command names and aliases to commands, and dispatches whole lines.
Unknown commands produce an [UnknownCommandError] with a suggestion when one is close enough.
*/
package command
