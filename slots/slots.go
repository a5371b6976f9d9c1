// Package slots assigns tokens from an unordered token pool to an ordered list of named slots.
//
// Each slot has a [PatternSet], and the slots claim tokens in declaration order.
// For each slot, the remaining pool is scanned in its original order and the first token that any pattern matches at its start is taken.
// If nothing matches, the slot's default is used and no token is consumed.
// This means an earlier slot always wins a token that a later slot could also match.
//
// Tokens that no slot claims are returned as leftovers, in their original relative order.
package slots

import (
	"errors"
	"fmt"
	"github.com/saylorsolutions/cmdargs/flags"
	"regexp"
	"slices"
)

var (
	ErrSlotMismatch = errors.New("pattern sets and defaults differ in length")
)

// PatternSet is the ordered set of patterns that qualify a token for a slot.
// Nil entries are disabled, and are skipped when matching.
type PatternSet []*regexp.Regexp

// Compile creates a [PatternSet] from pattern strings.
// An empty string produces a disabled entry.
func Compile(patterns ...string) (PatternSet, error) {
	set := make(PatternSet, len(patterns))
	for i, pattern := range patterns {
		if len(pattern) == 0 {
			continue
		}
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
		set[i] = compiled
	}
	return set, nil
}

// MustCompile is like [Compile], but panics if a pattern doesn't compile.
func MustCompile(patterns ...string) PatternSet {
	set, err := Compile(patterns...)
	if err != nil {
		panic(err)
	}
	return set
}

// Matches reports whether any enabled pattern matches at the start of token.
func (s PatternSet) Matches(token string) bool {
	for _, pattern := range s {
		if pattern == nil {
			continue
		}
		if loc := pattern.FindStringIndex(token); loc != nil && loc[0] == 0 {
			return true
		}
	}
	return false
}

// Slot is a named destination for exactly one classified or default value.
type Slot struct {
	Name     string
	Patterns PatternSet
	Default  any
}

// Extractor pulls flags out of a token stream before slots are classified.
// [flags.Lexer] satisfies this interface.
type Extractor interface {
	Extract(tokens []string) (flags.Flags, []string, error)
}

// Result is the outcome of classification.
type Result struct {
	Values   []any       // Values has one entry per slot, in slot order.
	Matched  []bool      // Matched is true at a slot index when a token was taken rather than the default.
	Flags    flags.Flags // Flags is nil if no [Extractor] was used.
	Leftover []string    // Leftover holds the tokens that nothing claimed.
}

// Classify assigns tokens to slots.
// The patternSets and defaults must have the same length, and this function panics with an [ErrSlotMismatch] otherwise.
//
// If extractor is not nil, then it's run over tokens first, so flag values can never be captured by a slot.
// The only error returned is one from the extractor.
// The tokens slice is never modified.
func Classify(tokens []string, patternSets []PatternSet, defaults []any, extractor Extractor) (Result, error) {
	if len(patternSets) != len(defaults) {
		panic(fmt.Errorf("%w: %d pattern sets, %d defaults", ErrSlotMismatch, len(patternSets), len(defaults)))
	}
	var (
		result = Result{
			Values:  make([]any, len(patternSets)),
			Matched: make([]bool, len(patternSets)),
		}
		pool = slices.Clone(tokens)
	)
	if extractor != nil {
		found, remaining, err := extractor.Extract(pool)
		if err != nil {
			return Result{}, err
		}
		result.Flags = found
		pool = remaining
	}
	for i, set := range patternSets {
		idx := slices.IndexFunc(pool, set.Matches)
		if idx < 0 {
			result.Values[i] = defaults[i]
			continue
		}
		result.Values[i] = pool[idx]
		result.Matched[i] = true
		pool = slices.Delete(pool, idx, idx+1)
	}
	if pool == nil {
		pool = []string{}
	}
	result.Leftover = pool
	return result, nil
}

// ClassifySlots is like [Classify], but takes a single list of [Slot] so the length precondition can't be violated.
func ClassifySlots(tokens []string, slotList []Slot, extractor Extractor) (Result, error) {
	patternSets := make([]PatternSet, len(slotList))
	defaults := make([]any, len(slotList))
	for i, slot := range slotList {
		patternSets[i] = slot.Patterns
		defaults[i] = slot.Default
	}
	return Classify(tokens, patternSets, defaults, extractor)
}

// Named returns the result values keyed by slot name.
// The slotList should be the one used to produce this [Result].
func (r Result) Named(slotList []Slot) map[string]any {
	named := make(map[string]any, len(slotList))
	for i, slot := range slotList {
		if i >= len(r.Values) {
			break
		}
		named[slot.Name] = r.Values[i]
	}
	return named
}
