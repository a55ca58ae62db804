package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// FormatAuto is the default --log-format. It resolves to [FormatText] when
// the log writer is a terminal and to [FormatLogfmt] otherwise.
const FormatAuto = "auto"

// Flags holds the flag names registered by [Config.RegisterFlags].
type Flags struct {
	Level  string
	Format string
}

// NewConfig creates a new [Config] using these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Config holds the log level and format chosen on the command line.
type Config struct {
	Level  string
	Format string
	Flags  Flags
}

// NewConfig returns a [Config] with the default "log-level" and "log-format"
// flag names.
func NewConfig() *Config {
	return Flags{Level: "log-level", Format: "log-format"}.NewConfig()
}

// RegisterFlags adds the log level and format flags to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, c.Flags.Level, string(LevelInfo),
		fmt.Sprintf("log level, one of: %s", GetAllLevelStrings()))
	flags.StringVar(&c.Format, c.Flags.Format, FormatAuto,
		fmt.Sprintf("log format, one of: %s", formatChoices()))
}

// RegisterCompletions completes the log flags registered on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	for name, values := range map[string][]string{
		c.Flags.Level:  GetAllLevelStrings(),
		c.Flags.Format: formatChoices(),
	} {
		err := cmd.RegisterFlagCompletionFunc(name,
			cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", name, err)
		}
	}

	return nil
}

// NewHandler creates a [slog.Handler] writing to w. An empty or
// [FormatAuto] format is resolved against w first.
func (c *Config) NewHandler(w io.Writer) (slog.Handler, error) {
	format := c.Format
	if format == "" || strings.EqualFold(format, FormatAuto) {
		format = string(detectFormat(w))
	}

	return NewHandlerFromStrings(w, c.Level, format)
}

// NewLogger is like [Config.NewHandler] but returns a ready [slog.Logger].
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	h, err := c.NewHandler(w)
	if err != nil {
		return nil, err
	}

	return slog.New(h), nil
}

func detectFormat(w io.Writer) Format {
	f, ok := w.(*os.File)
	if ok && term.IsTerminal(int(f.Fd())) {
		return FormatText
	}

	return FormatLogfmt
}

func formatChoices() []string {
	return slices.Concat([]string{FormatAuto}, GetAllFormatStrings())
}
