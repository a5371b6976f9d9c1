package command

import (
	"fmt"
	"github.com/saylorsolutions/cmdargs/coerce"
	"strings"
)

func ExampleRegistry_Dispatch() {
	repeat := MustNew("repeat", func(args Args) (any, error) {
		var (
			word  string
			times int
		)
		if err := args.Bind(coerce.To("word", &word), coerce.To("times", &times)); err != nil {
			return nil, err
		}
		sep := " "
		if text, ok := args.Flags().Text("sep"); ok {
			sep = text
		}
		words := make([]string, times)
		for i := range words {
			words[i] = word
		}
		return strings.Join(words, sep), nil
	},
		// Numbers are claimed first, so they're never mistaken for the word.
		Param{Name: "times", Patterns: []string{`\d+$`}, Default: 2, Coerce: coerce.Int()},
		Param{Name: "word", Patterns: []string{`\S+`}, Default: "hello"},
		Param{Name: FlagsParam},
	).Usage("Repeats a word")

	registry := NewRegistry()
	registry.MustRegister(repeat, "rep")

	for _, line := range []string{"repeat", "rep 3 hi", "REP bye -sep:, 2 trailing"} {
		inv, err := registry.Dispatch(line)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("%s %v\n", inv.Result, inv.Leftover)
	}

	_, err := registry.Dispatch("repaet")
	fmt.Println(err)

	// Output:
	// hello hello []
	// hi hi hi []
	// bye,bye [trailing]
	// unknown command: repaet (did you mean 'repeat'?)
}
