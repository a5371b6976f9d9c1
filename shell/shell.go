// Package shell provides an interactive line loop over a [command.Registry].
package shell

import (
	"bufio"
	"context"
	"errors"
	"github.com/saylorsolutions/cmdargs/command"
	"golang.org/x/term"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
)

const (
	HelpCommand = "help"  // HelpCommand prints the usage of every registered command.
	UseCommand  = "$use"  // UseCommand pushes a command prefix, so following lines don't need to repeat it.
	BackCommand = "$back" // BackCommand pops the last prefix pushed with UseCommand.
)

var (
	DefaultPrompt       = "> "
	DefaultQuitCommands = []string{"quit", "exit"}
)

type Option func(s *Shell)

// WithInput sets where lines are read from. Defaults to stdin.
func WithInput(in io.Reader) Option {
	return func(s *Shell) {
		if in != nil {
			s.in = in
		}
	}
}

func WithPrinter(printer *Printer) Option {
	return func(s *Shell) {
		if printer != nil {
			s.printer = printer
		}
	}
}

func WithPrompt(prompt string) Option {
	return func(s *Shell) {
		s.prompt = prompt
	}
}

// WithQuitCommands sets the lines that end the loop, compared case-insensitive.
func WithQuitCommands(cmds ...string) Option {
	return func(s *Shell) {
		s.quit = nil
		for _, cmd := range cmds {
			if cmd = strings.ToLower(strings.TrimSpace(cmd)); len(cmd) > 0 {
				s.quit = append(s.quit, cmd)
			}
		}
	}
}

// WithReportExtra enables reporting tokens that no parameter claimed.
func WithReportExtra(report bool) Option {
	return func(s *Shell) {
		s.reportExtra = report
	}
}

// WithInteractive forces the prompt and banner on or off.
// By default, they're only shown when the input is a terminal.
func WithInteractive(interactive bool) Option {
	return func(s *Shell) {
		s.interactive = &interactive
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Shell reads lines and dispatches them to a [command.Registry].
type Shell struct {
	registry    *command.Registry
	in          io.Reader
	printer     *Printer
	prompt      string
	quit        []string
	reportExtra bool
	interactive *bool
	logger      *slog.Logger
	stack       [][]string
}

// New creates a [Shell] over the registry.
// Passing a nil registry will panic.
func New(registry *command.Registry, opts ...Option) *Shell {
	if registry == nil {
		panic("nil registry")
	}
	s := &Shell{
		registry:    registry,
		in:          os.Stdin,
		printer:     NewPrinter(),
		prompt:      DefaultPrompt,
		quit:        DefaultQuitCommands,
		reportExtra: true,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Shell) isInteractive() bool {
	if s.interactive != nil {
		return *s.interactive
	}
	f, ok := s.in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (s *Shell) prefix() []string {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// Run reads and executes lines until a quit command, the end of input, or ctx is done.
// The context's error is returned if it ended the loop.
//
// Input is read in a separate goroutine, which stays blocked on a read after ctx is done until the input yields a line or closes.
func (s *Shell) Run(ctx context.Context) error {
	var (
		lines   = make(chan string)
		readErr = make(chan error, 1)
		scanner = bufio.NewScanner(s.in)
		prompt  = s.isInteractive()
	)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()
	if prompt {
		s.printer.Printf("Enter %s for usage, or %s to exit.\n", HelpCommand, strings.Join(s.quit, " or "))
	}
	for {
		if prompt {
			if pre := s.prefix(); len(pre) > 0 {
				s.printer.Printf("%s %s", strings.Join(pre, " "), s.prompt)
			} else {
				s.printer.Printf("%s", s.prompt)
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return ctx.Err()
				}
			}
			if s.Exec(line) {
				return nil
			}
		}
	}
}

// Exec handles a single line, and returns true if the line is a quit command.
// Blank lines are ignored.
func (s *Shell) Exec(line string) (quit bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false
	}
	s.logger.Debug("Read line", "tokens", len(tokens))
	first := strings.ToLower(tokens[0])
	switch {
	case len(tokens) == 1 && slices.Contains(s.quit, first):
		return true
	case len(tokens) == 1 && first == HelpCommand:
		s.printer.Printf("Commands:\n%s", s.registry.Usages())
		return false
	case first == UseCommand:
		if len(tokens) == 1 {
			s.printer.Println("Usage:", UseCommand, "<command> [args...]")
			return false
		}
		next := append(slices.Clone(s.prefix()), tokens[1:]...)
		s.stack = append(s.stack, next)
		s.printer.Printf("Using '%s'\n", strings.Join(next, " "))
		return false
	case first == BackCommand:
		if len(s.stack) == 0 {
			s.printer.Println("Already at root command")
			return false
		}
		s.stack = s.stack[:len(s.stack)-1]
		return false
	}
	s.dispatch(append(slices.Clone(s.prefix()), tokens...))
	return false
}

func (s *Shell) dispatch(tokens []string) {
	inv, err := s.registry.DispatchTokens(tokens)
	if err != nil {
		var unknown *command.UnknownCommandError
		if errors.As(err, &unknown) {
			s.printer.Println(unknown.Error())
			return
		}
		s.printer.Println("Error:", err)
	}
	if inv == nil {
		return
	}
	if err == nil && inv.Result != nil {
		s.printer.Result(inv.Result)
	}
	if _, consumed := inv.Args[command.ExtraParam]; consumed {
		return
	}
	if s.reportExtra && len(inv.Leftover) > 0 {
		s.printer.Println("extra arguments ignored:", strings.Join(inv.Leftover, " "))
	}
}
