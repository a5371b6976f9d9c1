/*
Package flags lexes prefixed flags out of a whitespace-delimited token stream.

Three flag forms are understood, shown here with the default [Lexer] characters:

	-verbose             bare flag, value true
	-name:bob            delimited flag, value "bob"
	-name:               delimited flag with no value, value false
	-msg:'hello world'   quoted flag, the value spans tokens until one ends with the quote

Flags are removed from the stream, and everything else is returned in its original order.
The input slice is never modified, so a caller that wants "consume in place" semantics just reassigns it.

	found, tokens, err := flags.DefaultLexer().Extract(tokens)

# Unterminated quotes

A quoted value that never sees a closing quote absorbs the rest of the stream.
By default those tokens are dropped and the flag isn't recorded at all.
Set [Lexer.Strict] to get an [ErrUnterminatedQuote] instead.

This is not a shell lexer. There's no nesting of quotes and no escape sequences.
*/
package flags
