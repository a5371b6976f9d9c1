package main

import (
	"fmt"
	"github.com/saylorsolutions/cmdargs/coerce"
	"github.com/saylorsolutions/cmdargs/command"
	"github.com/saylorsolutions/cmdargs/flags"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// maxCount limits how many dice or words a single command can produce.
const maxCount = 1000

// sidesCoercion reads dice notation like "d20" as 20.
var sidesCoercion = coerce.With(func(val any) (any, error) {
	s, ok := val.(string)
	if !ok {
		return nil, fmt.Errorf("%w: sides must be text like d6, got %T", coerce.ErrCoercion, val)
	}
	sides, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(s), "d"))
	if err != nil || sides < 1 {
		return nil, fmt.Errorf("%w: invalid die '%s'", coerce.ErrCoercion, s)
	}
	return sides, nil
})

func rollCommand() *command.Command {
	return command.MustNew("roll", func(args command.Args) (any, error) {
		var (
			count, sides int
			fl           = args.Flags()
			seed         = uint64(time.Now().UnixNano())
		)
		if err := args.Bind(coerce.To("count", &count), coerce.To("sides", &sides)); err != nil {
			return nil, err
		}
		if count < 1 || count > maxCount {
			return nil, fmt.Errorf("count must be between 1 and %d, got %d", maxCount, count)
		}
		if text, ok := fl.Text("seed"); ok {
			parsed, err := strconv.ParseUint(text, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid seed '%s': %w", text, err)
			}
			seed = parsed
		}
		rng := rand.New(rand.NewPCG(seed, seed))
		var (
			total int
			rolls = make([]string, count)
		)
		for i := range rolls {
			roll := rng.IntN(sides) + 1
			total += roll
			rolls[i] = strconv.Itoa(roll)
		}
		if fl.Enabled("v") || fl.Enabled("verbose") {
			return fmt.Sprintf("%s = %d", strings.Join(rolls, " + "), total), nil
		}
		return total, nil
	},
		command.Param{Name: "count", Patterns: []string{`\d+$`}, Default: 1, Coerce: coerce.Int()},
		command.Param{Name: "sides", Patterns: []string{`d\d+$`, `D\d+$`}, Default: "d6", Coerce: sidesCoercion},
		command.Param{Name: command.FlagsParam},
	).Usage("Rolls dice, like 'roll 2 d20 -v -seed:42'")
}

func echoCommand() *command.Command {
	return command.MustNew("echo", func(args command.Args) (any, error) {
		var (
			fl  = args.Flags()
			sep = " "
		)
		if text, ok := fl.Text("sep"); ok {
			sep = text
		}
		msg := strings.Join(args.Extra(), sep)
		if text, ok := fl.Text("msg"); ok {
			msg = strings.TrimSpace(text + sep + msg)
		}
		if fl.Enabled("upper") {
			msg = strings.ToUpper(msg)
		}
		return msg, nil
	},
		command.Param{Name: command.FlagsParam},
		command.Param{Name: command.ExtraParam},
	).Usage("Prints its arguments, like \"echo -msg:'hello there' -upper\"")
}

func repeatCommand() *command.Command {
	return command.MustNew("repeat", func(args command.Args) (any, error) {
		var (
			word  string
			times int
		)
		if err := args.Bind(coerce.To("word", &word), coerce.To("times", &times)); err != nil {
			return nil, err
		}
		if times < 0 || times > maxCount {
			return nil, fmt.Errorf("times must be between 0 and %d, got %d", maxCount, times)
		}
		words := make([]string, times)
		for i := range words {
			words[i] = word
		}
		return strings.Join(words, " "), nil
	},
		command.Param{Name: "times", Patterns: []string{`\d+$`}, Default: 2, Coerce: coerce.Int()},
		command.Param{Name: "word", Patterns: []string{`\S+`}, Coerce: coerce.Str()},
	).Usage("Repeats a word")
}

func flagsCommand() *command.Command {
	return command.MustNew("flags", func(args command.Args) (any, error) {
		var (
			fl    = args.Flags()
			lines []string
		)
		for _, name := range fl.Names() {
			lines = append(lines, fmt.Sprintf("%s=%s", name, describeValue(fl[name])))
		}
		if extra := args.Extra(); len(extra) > 0 {
			lines = append(lines, "extra: "+strings.Join(extra, " "))
		}
		if len(lines) == 0 {
			return "no flags", nil
		}
		return strings.Join(lines, "\n"), nil
	},
		command.Param{Name: command.FlagsParam},
		command.Param{Name: command.ExtraParam},
	).Usage("Shows how flags are extracted")
}

func describeValue(val flags.Value) string {
	if text, ok := val.Text(); ok {
		return strconv.Quote(text)
	}
	return val.String()
}

func newRegistry(logger *slog.Logger, lexer flags.Lexer) *command.Registry {
	return command.NewRegistry(command.WithLogger(logger), command.WithLexer(lexer)).
		MustRegister(rollCommand(), "dice").
		MustRegister(echoCommand(), "say").
		MustRegister(repeatCommand()).
		MustRegister(flagsCommand(), "inspect")
}
