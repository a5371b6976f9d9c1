/*
Package coerce converts raw values (usually token strings) into the types that a command expects.

A [Coercion] is a tagged strategy chosen when a command is registered, rather than an arbitrary function discovered at call time.
The built-in strategies are [Str], [Int], [Float], [Bool], and [Duration], and [With] allows a custom function.
The zero value [Coercion] passes values through unchanged.

# Wrapping a target

[Wrap] applies a [Signature] to every call of a [Target]:

  - Each positional argument uses the strategy at the same position.
    If there are more arguments than strategies, then the last strategy is reused for the rest.
  - Each keyword argument uses its own strategy, or the [Signature.Wildcard] strategy if it has none.
  - The [Signature.Return] strategy is applied to the result.

Errors from a strategy are returned exactly as they were produced, and the target is not called.

# Reading arguments

Handlers receive arguments as a map[string]any.
[Get] and [Bind] make it easy to pull typed values out of that map without a chain of type assertions.

	var (
		count int
		label string
	)
	if err := coerce.Bind(args,
		coerce.To("count", &count),
		coerce.Optional("label", &label),
	); err != nil {
		return nil, err
	}
*/
package coerce
