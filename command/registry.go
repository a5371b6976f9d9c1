package command

import (
	"fmt"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/saylorsolutions/cmdargs/flags"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
)

// maxSuggestionDistance is the largest edit distance that still produces a suggestion when no name contains the typed key as a subsequence.
const maxSuggestionDistance = 2

// Registry maps command names and aliases to a [Command].
// It's safe for concurrent use.
type Registry struct {
	mux      sync.RWMutex
	commands map[string]*Command
	aliases  map[string]*Command
	logger   *slog.Logger
	lexer    *flags.Lexer
}

// RegistryOption configures a [Registry].
type RegistryOption func(r *Registry)

// WithLogger sets the logger used for dispatch diagnostics.
// Dispatch logs are discarded by default.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithLexer sets the [flags.Lexer] used to dispatch every [Command] that hasn't set its own with [Command.Lexer].
// The command itself is not changed, so it may be shared with other registries.
func WithLexer(lexer flags.Lexer) RegistryOption {
	return func(r *Registry) {
		r.lexer = &lexer
	}
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		commands: map[string]*Command{},
		aliases:  map[string]*Command{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a [Command] with optional aliases.
// Names and aliases are cleansed to remove whitespace and normalize to lower-case.
// Registering a name or alias that's already taken returns an [ErrDuplicateCommand].
func (r *Registry) Register(cmd *Command, aliases ...string) error {
	if cmd == nil {
		return fmt.Errorf("%w: nil command", ErrInvalidCommand)
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	keys := []string{cmd.name}
	for _, alias := range aliases {
		alias = cleanseKey(alias)
		if len(alias) == 0 || slices.Contains(keys, alias) {
			continue
		}
		keys = append(keys, alias)
	}
	for _, key := range keys {
		if r.has(key) {
			return fmt.Errorf("%w: '%s' is already registered", ErrDuplicateCommand, key)
		}
	}
	r.commands[cmd.name] = cmd
	for _, alias := range keys[1:] {
		r.aliases[alias] = cmd
	}
	return nil
}

// MustRegister is like [Registry.Register], but panics on error.
func (r *Registry) MustRegister(cmd *Command, aliases ...string) *Registry {
	if err := r.Register(cmd, aliases...); err != nil {
		panic(err)
	}
	return r
}

// lexerFor is the lexer used when cmd is dispatched through this registry.
func (r *Registry) lexerFor(cmd *Command) flags.Lexer {
	if r.lexer != nil && !cmd.lexerSet {
		return *r.lexer
	}
	return cmd.lexer
}

func (r *Registry) has(key string) bool {
	if _, ok := r.commands[key]; ok {
		return true
	}
	_, ok := r.aliases[key]
	return ok
}

// Lookup finds a [Command] by name or alias, case-insensitive.
func (r *Registry) Lookup(key string) (*Command, bool) {
	key = cleanseKey(key)
	r.mux.RLock()
	defer r.mux.RUnlock()
	if cmd, ok := r.commands[key]; ok {
		return cmd, true
	}
	cmd, ok := r.aliases[key]
	return cmd, ok
}

// Keys returns all registered names and aliases, sorted.
func (r *Registry) Keys() []string {
	r.mux.RLock()
	defer r.mux.RUnlock()
	keys := make([]string, 0, len(r.commands)+len(r.aliases))
	for key := range r.commands {
		keys = append(keys, key)
	}
	for key := range r.aliases {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Suggest returns the registered name or alias closest to key, or an empty string if nothing is close.
func (r *Registry) Suggest(key string) string {
	key = cleanseKey(key)
	if len(key) == 0 {
		return ""
	}
	candidates := r.Keys()
	ranks := fuzzy.RankFindFold(key, candidates)
	if len(ranks) > 0 {
		// Candidates are sorted, so equal distances resolve alphabetically.
		sort.Stable(ranks)
		return ranks[0].Target
	}
	var (
		best     string
		bestDist = maxSuggestionDistance + 1
	)
	for _, candidate := range candidates {
		dist := fuzzy.LevenshteinDistance(key, candidate)
		if dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best
}

// Dispatch splits line on whitespace and dispatches the tokens with [Registry.DispatchTokens].
func (r *Registry) Dispatch(line string) (*Invocation, error) {
	return r.DispatchTokens(strings.Fields(line))
}

// DispatchTokens uses the first token to find a [Command], and invokes it with the rest.
// An [UnknownCommandError] is returned if the command isn't registered.
func (r *Registry) DispatchTokens(tokens []string) (*Invocation, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no command given", ErrUnknownCommand)
	}
	cmd, ok := r.Lookup(tokens[0])
	if !ok {
		err := &UnknownCommandError{Key: tokens[0], Suggestion: r.Suggest(tokens[0])}
		r.logger.Debug("Unknown command", "key", err.Key, "suggestion", err.Suggestion)
		return nil, err
	}
	inv, err := cmd.invoke(tokens[1:], r.lexerFor(cmd))
	if err != nil {
		r.logger.Debug("Command failed", "command", cmd.name, "error", err)
		return inv, err
	}
	r.logger.Debug("Command dispatched", "command", cmd.name, "flags", len(inv.Flags), "leftover", len(inv.Leftover))
	return inv, nil
}

// Usages returns usage information for every registered [Command], sorted by name.
func (r *Registry) Usages() string {
	r.mux.RLock()
	defer r.mux.RUnlock()
	var (
		buf      strings.Builder
		names    = make([]string, 0, len(r.commands))
		aliases  = map[string][]string{}
		keyCol   = map[string]string{}
		synopses = map[string]string{}
		keyLen   int
		synLen   int
	)
	for alias, cmd := range r.aliases {
		aliases[cmd.name] = append(aliases[cmd.name], alias)
	}
	for name, cmd := range r.commands {
		names = append(names, name)
		cmdAliases := aliases[name]
		slices.Sort(cmdAliases)
		keyCol[name] = strings.Join(append([]string{name}, cmdAliases...), ", ")
		synopses[name] = cmd.synopsis(r.lexerFor(cmd))
		keyLen = max(keyLen, len(keyCol[name]))
		synLen = max(synLen, len(synopses[name]))
	}
	slices.Sort(names)
	fmtStr := fmt.Sprintf("  %%-%ds   %%-%ds   %%s", keyLen, synLen)
	for _, name := range names {
		line := fmt.Sprintf(fmtStr, keyCol[name], synopses[name], r.commands[name].usage)
		buf.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	return buf.String()
}
