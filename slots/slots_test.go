package slots

import (
	"github.com/google/go-cmp/cmp"
	"github.com/saylorsolutions/cmdargs/flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestClassify_SlotOrderDeterminesOutput(t *testing.T) {
	result, err := Classify(
		[]string{"red", "3"},
		[]PatternSet{MustCompile(`\d+`), MustCompile(`[a-z]+`)},
		[]any{nil, nil},
		nil,
	)
	require.NoError(t, err)
	if diff := cmp.Diff([]any{"3", "red"}, result.Values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, result.Leftover)
	assert.Nil(t, result.Flags, "No extractor means no flag mapping")
	assert.Equal(t, []bool{true, true}, result.Matched)
}

func TestClassify_WithFlags(t *testing.T) {
	result, err := Classify(
		[]string{"-x:1", "red"},
		[]PatternSet{MustCompile(`[a-z]+`)},
		[]any{nil},
		flags.DefaultLexer(),
	)
	require.NoError(t, err)
	assert.Equal(t, flags.Flags{"x": flags.TextValue("1")}, result.Flags)
	assert.Equal(t, []any{"red"}, result.Values)
	assert.Empty(t, result.Leftover)
}

func TestClassify_FlagValuesAreNeverSlotted(t *testing.T) {
	result, err := Classify(
		[]string{"-msg:'blue", "sky'", "green"},
		[]PatternSet{MustCompile(`[a-z]+`), MustCompile(`[a-z]+`)},
		[]any{"none", "none"},
		flags.DefaultLexer(),
	)
	require.NoError(t, err)
	assert.Equal(t, []any{"green", "none"}, result.Values)
	assert.Equal(t, []bool{true, false}, result.Matched)
	text, _ := result.Flags.Text("msg")
	assert.Equal(t, "blue sky", text)
}

func TestClassify_ExtractorError(t *testing.T) {
	lexer := flags.DefaultLexer()
	lexer.Strict = true
	_, err := Classify([]string{"-m:'open"}, []PatternSet{MustCompile(`x`)}, []any{nil}, lexer)
	assert.ErrorIs(t, err, flags.ErrUnterminatedQuote)
}

func TestClassify_Properties(t *testing.T) {
	tests := map[string]struct {
		tokens    []string
		sets      []PatternSet
		defaults  []any
		values    []any
		leftovers []string
	}{
		"One value per slot": {
			tokens:    []string{"a"},
			sets:      []PatternSet{MustCompile(`a`), MustCompile(`b`), MustCompile(`c`)},
			defaults:  []any{1, 2, 3},
			values:    []any{"a", 2, 3},
			leftovers: []string{},
		},
		"No slots": {
			tokens:    []string{"a", "b"},
			sets:      nil,
			defaults:  nil,
			values:    []any{},
			leftovers: []string{"a", "b"},
		},
		"Position does not matter": {
			tokens:    []string{"x", "y", "42"},
			sets:      []PatternSet{MustCompile(`\d+`)},
			defaults:  []any{nil},
			values:    []any{"42"},
			leftovers: []string{"x", "y"},
		},
		"Earlier slot claims a shared token": {
			tokens:    []string{"7"},
			sets:      []PatternSet{MustCompile(`\d`), MustCompile(`\d+`)},
			defaults:  []any{"first", "second"},
			values:    []any{"7", "second"},
			leftovers: []string{},
		},
		"First matching token in pool order": {
			tokens:    []string{"b1", "a2", "a1"},
			sets:      []PatternSet{MustCompile(`a`)},
			defaults:  []any{nil},
			values:    []any{"a2"},
			leftovers: []string{"b1", "a1"},
		},
		"Match is anchored at token start": {
			tokens:    []string{"x9"},
			sets:      []PatternSet{MustCompile(`\d`)},
			defaults:  []any{"default"},
			values:    []any{"default"},
			leftovers: []string{"x9"},
		},
		"Any pattern in the set qualifies": {
			tokens:    []string{"on", "5"},
			sets:      []PatternSet{MustCompile(`yes`, `on`), MustCompile(`\d`)},
			defaults:  []any{nil, nil},
			values:    []any{"on", "5"},
			leftovers: []string{},
		},
		"Disabled patterns are skipped": {
			tokens:    []string{"abc"},
			sets:      []PatternSet{{nil}, MustCompile("", `a`)},
			defaults:  []any{"d0", "d1"},
			values:    []any{"d0", "abc"},
			leftovers: []string{},
		},
		"Each token claimed once": {
			tokens:    []string{"1"},
			sets:      []PatternSet{MustCompile(`\d`), MustCompile(`\d`)},
			defaults:  []any{nil, "fallback"},
			values:    []any{"1", "fallback"},
			leftovers: []string{},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			result, err := Classify(tc.tokens, tc.sets, tc.defaults, nil)
			require.NoError(t, err)
			require.Len(t, result.Values, len(tc.sets))
			if diff := cmp.Diff(tc.values, result.Values); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.leftovers, result.Leftover); diff != "" {
				t.Errorf("leftover mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassify_LeftoversYieldOnlyDefaults(t *testing.T) {
	var (
		sets     = []PatternSet{MustCompile(`\d+`), MustCompile(`[a-z]+`)}
		defaults = []any{"n", "w"}
	)
	first, err := Classify([]string{"12", "word", "ABC", "!"}, sets, defaults, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC", "!"}, first.Leftover)

	second, err := Classify(first.Leftover, sets, defaults, nil)
	require.NoError(t, err)
	assert.Equal(t, defaults, second.Values)
	assert.Equal(t, []bool{false, false}, second.Matched)
	assert.Equal(t, first.Leftover, second.Leftover)
}

func TestClassify_DoesNotMutateTokens(t *testing.T) {
	tokens := []string{"-v", "a", "1"}
	_, err := Classify(tokens, []PatternSet{MustCompile(`\d`)}, []any{nil}, flags.DefaultLexer())
	require.NoError(t, err)
	assert.Equal(t, []string{"-v", "a", "1"}, tokens)
}

func TestClassify_MismatchPanics(t *testing.T) {
	assert.PanicsWithError(t, "pattern sets and defaults differ in length: 2 pattern sets, 1 defaults", func() {
		_, _ = Classify(nil, []PatternSet{nil, nil}, []any{nil}, nil)
	})
	defer func() {
		r := recover()
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrSlotMismatch)
	}()
	_, _ = Classify(nil, nil, []any{1}, nil)
}

func TestCompile(t *testing.T) {
	set, err := Compile(`\d+`, "", `[a-z]`)
	require.NoError(t, err)
	require.Len(t, set, 3)
	assert.Nil(t, set[1])
	assert.True(t, set.Matches("12"))
	assert.True(t, set.Matches("q"))
	assert.False(t, set.Matches("Q"))

	_, err = Compile(`(`)
	assert.Error(t, err)
	assert.Panics(t, func() {
		MustCompile(`[`)
	})
	assert.False(t, PatternSet(nil).Matches("anything"))
}

func TestClassifySlots(t *testing.T) {
	slotList := []Slot{
		{Name: "count", Patterns: MustCompile(`\d+$`), Default: "1"},
		{Name: "sides", Patterns: MustCompile(`d\d+$`), Default: "d6"},
	}
	result, err := ClassifySlots([]string{"d20", "extra", "3"}, slotList, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"count": "3", "sides": "d20"}, result.Named(slotList))
	assert.Equal(t, []string{"extra"}, result.Leftover)
}
