package schemamerge

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// drafts maps --draft values to metaschema drafts.
var drafts = map[int]*jsonschema.Draft{
	4:    jsonschema.Draft4,
	6:    jsonschema.Draft6,
	7:    jsonschema.Draft7,
	2019: jsonschema.Draft2019,
	2020: jsonschema.Draft2020,
}

// Flags holds CLI flag names for merge configuration, allowing callers to
// customize flag names while keeping sensible defaults.
type Flags struct {
	FileName string
	Indent   string
	Validate string
	Draft    string
}

// Config holds CLI flag values for merge configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewMerger] to create a [Merger].
type Config struct {
	Flags    Flags
	FileName string
	Indent   int
	Draft    int
	Validate bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		FileName: "file-name",
		Indent:   "indent",
		Validate: "validate",
		Draft:    "draft",
	}

	return &Config{Flags: f}
}

// RegisterFlags adds merge flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.FileName, c.Flags.FileName, "f", DefaultFileName,
		"name of the schema fragment files to merge")
	flags.IntVar(&c.Indent, c.Flags.Indent, 2,
		"JSON indentation spaces")
	flags.BoolVar(&c.Validate, c.Flags.Validate, false,
		"check the merged schema against its metaschema")
	flags.IntVar(&c.Draft, c.Flags.Draft, 7,
		"JSON Schema draft used by --validate when the result has no $schema")
}

// RegisterCompletions registers shell completions for merge flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Draft,
		cobra.FixedCompletions([]string{"4", "6", "7", "2019", "2020"}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Draft, err)
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.FileName, c.Flags.Indent} {
		regErr := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if regErr != nil {
			return fmt.Errorf("registering %s completion: %w", flag, regErr)
		}
	}

	return nil
}

// NewMerger creates a [Merger] using this [Config].
func (c *Config) NewMerger(extra ...Option) (*Merger, error) {
	if c.Indent < 0 {
		return nil, fmt.Errorf("%w: --%s must not be negative", ErrInvalidOption, c.Flags.Indent)
	}

	opts := []Option{WithIndent(c.Indent)}

	if c.FileName != "" {
		opts = append(opts, WithFileName(c.FileName))
	}

	if c.Validate {
		draft, ok := drafts[c.Draft]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported --%s %d", ErrInvalidOption, c.Flags.Draft, c.Draft)
		}

		opts = append(opts, WithValidation(draft))
	}

	return New(append(opts, extra...)...), nil
}
