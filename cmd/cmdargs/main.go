// Command cmdargs is an interactive shell that demonstrates flag extraction and pattern-based argument binding.
//
// Pass a command line as arguments to run it once, or nothing to start the shell.
//
//	cmdargs roll 3 d20 -v
//	cmdargs --strict --log-level debug
package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/saylorsolutions/cmdargs/command"
	"github.com/saylorsolutions/cmdargs/config"
	"github.com/saylorsolutions/cmdargs/logging"
	"github.com/saylorsolutions/cmdargs/shell"
	flag "github.com/spf13/pflag"
	"io"
	"os"
	"strings"
	"syscall"
)

func main() {
	ctx, cancel := signalExitCtx(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := config.Flags("cmdargs")
	fs.SetOutput(stderr)
	// Everything after the first command token belongs to the command.
	fs.SetInterspersed(false)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: cmdargs [options] [command [args...]]\n\nOptions:\n%s", fs.FlagUsages())
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	cfg, err := config.Load(fs)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Error loading configuration:", err)
		return 1
	}
	logger, closer, err := logging.New(cfg.Log, stderr)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Error creating logger:", err)
		return 1
	}
	defer func() {
		if err := closer.Close(); err != nil {
			_, _ = fmt.Fprintln(stderr, "Error closing log file:", err)
		}
	}()
	registry := newRegistry(logger, cfg.FlagLexer())

	if fs.NArg() > 0 {
		return runOnce(registry, fs.Args(), cfg.Shell.ReportExtra, stdout, stderr)
	}

	sh := shell.New(registry,
		shell.WithInput(stdin),
		shell.WithPrinter(shell.NewPrinterTo(stdout, stderr)),
		shell.WithPrompt(cfg.Shell.Prompt),
		shell.WithQuitCommands(cfg.Shell.QuitCommands...),
		shell.WithReportExtra(cfg.Shell.ReportExtra),
		shell.WithLogger(logger),
	)
	logger.Debug("Starting shell", "commands", len(registry.Keys()))
	if err := sh.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Shell stopped", "error", err)
		return 1
	}
	return 0
}

func runOnce(registry *command.Registry, tokens []string, reportExtra bool, stdout, stderr io.Writer) int {
	inv, err := registry.DispatchTokens(tokens)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	if inv.Result != nil {
		_, _ = fmt.Fprintln(stdout, inv.Result)
	}
	if _, consumed := inv.Args[command.ExtraParam]; reportExtra && !consumed && len(inv.Leftover) > 0 {
		_, _ = fmt.Fprintln(stderr, "extra arguments ignored:", strings.Join(inv.Leftover, " "))
	}
	return 0
}
