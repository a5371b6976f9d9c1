package flags

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultPrefix    = "-" // DefaultPrefix marks the start of a flag token.
	DefaultDelimiter = ":" // DefaultDelimiter separates a flag name from its value.
	DefaultQuote     = "'" // DefaultQuote opens and closes a value that spans tokens.
)

var (
	ErrUnterminatedQuote = errors.New("unterminated quoted flag value")
)

// Lexer extracts flags from a token stream.
// Empty fields fall back to the package defaults, so the zero value is usable.
type Lexer struct {
	Prefix    string
	Delimiter string
	Quote     string

	// Strict makes an unterminated quoted value an error instead of silently absorbing the rest of the stream.
	Strict bool
}

// DefaultLexer returns a [Lexer] with [DefaultPrefix], [DefaultDelimiter], and [DefaultQuote].
func DefaultLexer() Lexer {
	return Lexer{
		Prefix:    DefaultPrefix,
		Delimiter: DefaultDelimiter,
		Quote:     DefaultQuote,
	}
}

func (l Lexer) withDefaults() Lexer {
	if len(l.Prefix) == 0 {
		l.Prefix = DefaultPrefix
	}
	if len(l.Delimiter) == 0 {
		l.Delimiter = DefaultDelimiter
	}
	if len(l.Quote) == 0 {
		l.Quote = DefaultQuote
	}
	return l
}

// Extract makes a single pass over tokens, returning the flags found and the tokens that are not part of any flag.
// The tokens slice is not modified.
//
// An error is only possible in [Lexer.Strict] mode.
// In that case the flags found before the unterminated value are still returned.
func (l Lexer) Extract(tokens []string) (Flags, []string, error) {
	l = l.withDefaults()
	var (
		found     = Flags{}
		remaining = make([]string, 0, len(tokens))
		opener    = l.Delimiter + l.Quote
		inValue   bool
		name      string
		buffer    []string
	)
	for _, token := range tokens {
		if !inValue && strings.HasPrefix(token, l.Prefix) {
			body := token[len(l.Prefix):]
			if key, rest, ok := strings.Cut(body, opener); ok {
				// The opening token may also close the value, so it falls through.
				name, token, inValue = key, rest, true
			} else if key, rest, ok := strings.Cut(body, l.Delimiter); ok {
				if len(rest) == 0 {
					found[key] = BoolValue(false)
				} else {
					found[key] = TextValue(rest)
				}
				continue
			} else {
				found[body] = BoolValue(true)
				continue
			}
		}
		if inValue {
			if strings.HasSuffix(token, l.Quote) {
				buffer = append(buffer, token[:len(token)-len(l.Quote)])
				found[name] = TextValue(strings.Join(buffer, " "))
				inValue, name, buffer = false, "", nil
				continue
			}
			buffer = append(buffer, token)
			continue
		}
		remaining = append(remaining, token)
	}
	if inValue && l.Strict {
		return found, remaining, fmt.Errorf("%w: flag '%s' opened with %s", ErrUnterminatedQuote, name, opener)
	}
	return found, remaining, nil
}

// ExtractString splits line on whitespace and passes the tokens to [Lexer.Extract].
func (l Lexer) ExtractString(line string) (Flags, []string, error) {
	return l.Extract(strings.Fields(line))
}

// Option overrides a setting of the [DefaultLexer] used by [Extract].
type Option func(l *Lexer)

func WithPrefix(prefix string) Option {
	return func(l *Lexer) {
		l.Prefix = prefix
	}
}

func WithDelimiter(delimiter string) Option {
	return func(l *Lexer) {
		l.Delimiter = delimiter
	}
}

func WithQuote(quote string) Option {
	return func(l *Lexer) {
		l.Quote = quote
	}
}

// Strict turns an unterminated quoted value into an [ErrUnterminatedQuote].
func Strict() Option {
	return func(l *Lexer) {
		l.Strict = true
	}
}

// Extract is a shortcut for [Lexer.Extract] using the [DefaultLexer] with any options applied.
func Extract(tokens []string, opts ...Option) (Flags, []string, error) {
	l := DefaultLexer()
	for _, opt := range opts {
		opt(&l)
	}
	return l.Extract(tokens)
}
