// Package config loads settings for the cmdargs shell.
//
// Values are layered from lowest to highest precedence: built-in defaults, an optional YAML file, CMDARGS_ environment variables, and flags that were explicitly set.
// Environment variables use a double underscore to separate sections, so CMDARGS_LEXER__STRICT sets lexer.strict.
package config

import (
	"errors"
	"fmt"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/saylorsolutions/cmdargs/flags"
	flag "github.com/spf13/pflag"
	"strings"
)

const (
	EnvPrefix    = "CMDARGS_"
	ConfigFlag   = "config"
	keyDelimiter = "."
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

type Config struct {
	Lexer LexerConfig `koanf:"lexer"`
	Shell ShellConfig `koanf:"shell"`
	Log   LogConfig   `koanf:"log"`
}

type LexerConfig struct {
	Prefix    string `koanf:"prefix"`
	Delimiter string `koanf:"delimiter"`
	Quote     string `koanf:"quote"`
	Strict    bool   `koanf:"strict"`
}

type ShellConfig struct {
	Prompt       string   `koanf:"prompt"`
	QuitCommands []string `koanf:"quit_commands"`
	ReportExtra  bool     `koanf:"report_extra"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // Level is one of debug, info, warn, or error.
	Format string `koanf:"format"` // Format is one of auto, text, or json.
	File   string `koanf:"file"`   // File additionally receives JSON logs when set.
}

// Default returns the configuration used when nothing else is specified.
func Default() Config {
	return Config{
		Lexer: LexerConfig{
			Prefix:    flags.DefaultPrefix,
			Delimiter: flags.DefaultDelimiter,
			Quote:     flags.DefaultQuote,
		},
		Shell: ShellConfig{
			Prompt:       "> ",
			QuitCommands: []string{"quit", "exit"},
			ReportExtra:  true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

func defaultMap() map[string]any {
	def := Default()
	return map[string]any{
		"lexer.prefix":        def.Lexer.Prefix,
		"lexer.delimiter":     def.Lexer.Delimiter,
		"lexer.quote":         def.Lexer.Quote,
		"lexer.strict":        def.Lexer.Strict,
		"shell.prompt":        def.Shell.Prompt,
		"shell.quit_commands": def.Shell.QuitCommands,
		"shell.report_extra":  def.Shell.ReportExtra,
		"log.level":           def.Log.Level,
		"log.format":          def.Log.Format,
		"log.file":            def.Log.File,
	}
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"lexer-prefix":    "lexer.prefix",
	"lexer-delimiter": "lexer.delimiter",
	"lexer-quote":     "lexer.quote",
	"strict":          "lexer.strict",
	"prompt":          "shell.prompt",
	"quit":            "shell.quit_commands",
	"report-extra":    "shell.report_extra",
	"log-level":       "log.level",
	"log-format":      "log.format",
	"log-file":        "log.file",
}

// Flags creates a flag set that can override every configuration value, along with the --config file flag.
// Flag defaults match [Default], but only flags that are explicitly set take part in [Load].
func Flags(name string) *flag.FlagSet {
	def := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringP(ConfigFlag, "c", "", "YAML configuration file")
	fs.String("lexer-prefix", def.Lexer.Prefix, "Prefix that marks a flag token")
	fs.String("lexer-delimiter", def.Lexer.Delimiter, "Separates a flag name from its value")
	fs.String("lexer-quote", def.Lexer.Quote, "Quote character for multi-token flag values")
	fs.Bool("strict", def.Lexer.Strict, "Reject unterminated quoted flag values")
	fs.String("prompt", def.Shell.Prompt, "Interactive prompt")
	fs.StringSlice("quit", def.Shell.QuitCommands, "Commands that exit the shell")
	fs.Bool("report-extra", def.Shell.ReportExtra, "Report arguments that no parameter claimed")
	fs.String("log-level", def.Log.Level, "Log level: debug, info, warn, error")
	fs.String("log-format", def.Log.Format, "Log format: auto, text, json")
	fs.String("log-file", def.Log.File, "Also write JSON logs to this file")
	return fs
}

// Load builds a [Config] from defaults, the file named by the --config flag, the environment, and explicitly set flags, in that order.
// The flag set may be nil, and is expected to come from [Flags].
func Load(fs *flag.FlagSet) (Config, error) {
	var cfgFile string
	if fs != nil {
		if f := fs.Lookup(ConfigFlag); f != nil {
			cfgFile = f.Value.String()
		}
	}
	return LoadFile(cfgFile, fs)
}

// LoadFile is like [Load], but the configuration file is given explicitly.
// An empty cfgFile skips the file layer.
func LoadFile(cfgFile string, fs *flag.FlagSet) (Config, error) {
	var (
		cfg Config
		k   = koanf.New(keyDelimiter)
	)
	if err := k.Load(confmap.Provider(defaultMap(), keyDelimiter), nil); err != nil {
		return cfg, fmt.Errorf("failed to load defaults: %w", err)
	}
	if len(cfgFile) > 0 {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}
	if err := k.Load(env.ProviderWithValue(EnvPrefix, keyDelimiter, envKey), nil); err != nil {
		return cfg, fmt.Errorf("failed to load env vars: %w", err)
	}
	if fs != nil {
		if err := k.Load(posflag.ProviderWithFlag(fs, keyDelimiter, k, func(f *flag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(fs, f)
		}), nil); err != nil {
			return cfg, fmt.Errorf("failed to load flags: %w", err)
		}
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// envKey transforms CMDARGS_SHELL__QUIT_COMMANDS to shell.quit_commands.
// List values are comma separated.
func envKey(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", keyDelimiter)
	if key == "shell.quit_commands" {
		var cmds []string
		for _, cmd := range strings.Split(value, ",") {
			if cmd = strings.TrimSpace(cmd); len(cmd) > 0 {
				cmds = append(cmds, cmd)
			}
		}
		return key, cmds
	}
	return key, value
}

// Validate checks that the lexer characters are usable, and that the log settings are recognized.
func (c Config) Validate() error {
	var errs []error
	lexerVals := []struct {
		name, val string
	}{
		{"prefix", c.Lexer.Prefix},
		{"delimiter", c.Lexer.Delimiter},
		{"quote", c.Lexer.Quote},
	}
	for _, lv := range lexerVals {
		switch {
		case len(lv.val) == 0:
			errs = append(errs, fmt.Errorf("%w: lexer %s is empty", ErrInvalidConfig, lv.name))
		case strings.ContainsAny(lv.val, " \t\r\n"):
			errs = append(errs, fmt.Errorf("%w: lexer %s '%s' contains whitespace", ErrInvalidConfig, lv.name, lv.val))
		}
	}
	if len(c.Lexer.Prefix) > 0 && c.Lexer.Prefix == c.Lexer.Delimiter {
		errs = append(errs, fmt.Errorf("%w: lexer prefix and delimiter are both '%s'", ErrInvalidConfig, c.Lexer.Prefix))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "auto", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: unknown log format '%s'", ErrInvalidConfig, c.Log.Format))
	}
	return errors.Join(errs...)
}

// FlagLexer returns the [flags.Lexer] described by this configuration.
func (c Config) FlagLexer() flags.Lexer {
	return flags.Lexer{
		Prefix:    c.Lexer.Prefix,
		Delimiter: c.Lexer.Delimiter,
		Quote:     c.Lexer.Quote,
		Strict:    c.Lexer.Strict,
	}
}
