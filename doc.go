/*
Package cmdargs turns loosely structured command lines into named arguments for a handler.

Flags are pulled out of the tokens first, then each remaining token is claimed by the first parameter whose patterns match it, regardless of position.
Anything unclaimed is kept as leftover rather than being treated as an error.

  - [github.com/saylorsolutions/cmdargs/flags] extracts prefixed flags, including quoted values that span tokens.
  - [github.com/saylorsolutions/cmdargs/slots] assigns tokens to parameters by regular expression.
  - [github.com/saylorsolutions/cmdargs/coerce] converts argument values and wraps handlers with coercion rules.
  - [github.com/saylorsolutions/cmdargs/command] binds all of that to named commands in a registry.
  - [github.com/saylorsolutions/cmdargs/shell] runs a registry as an interactive line loop.
*/
package cmdargs
