package flags

import (
	"fmt"
)

func ExampleLexer_Extract() {
	tokens := []string{"roll", "-sides:20", "-msg:'for", "the", "win'", "-loud", "-quiet:"}
	found, tokens, err := DefaultLexer().Extract(tokens)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, name := range found.Names() {
		fmt.Printf("%s=%s\n", name, found[name])
	}
	fmt.Println(tokens)

	// Output:
	// loud=true
	// msg=for the win
	// quiet=false
	// sides=20
	// [roll]
}
