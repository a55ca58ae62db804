// Package main provides the CLI entry point for schemamerge, a tool that
// merges JSON Schema fragments found in a directory tree into one schema.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/schemamerge/fragment"
	"go.jacobcolvin.com/schemamerge/log"
	"go.jacobcolvin.com/schemamerge/profile"
	"go.jacobcolvin.com/schemamerge/schemamerge"
	"go.jacobcolvin.com/schemamerge/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	logCfg := log.NewConfig()
	mergeCfg := schemamerge.NewConfig()
	profileCfg := profile.NewConfig()
	profiler := profileCfg.NewProfiler()

	var logger *slog.Logger

	rootCmd := &cobra.Command{
		Use:   "schemamerge [flags] <output-file> <input-dir>",
		Short: "Merge JSON Schema fragments into one schema",
		Long: `schemamerge finds every schema fragment named by --file-name below
<input-dir>, merges them into a single schema, and writes the result to
<output-file>. The merged schema accepts what each fragment accepts, so
constraints that differ between fragments are widened or dropped.

Merging fails on conflicting metadata (for example two different titles for
the same property) and on constructs such as anyOf or $ref that cannot be
merged soundly.`,
		Version:       version.String(),
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error

			logger, err = logCfg.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}

			return profiler.Start() //nolint:wrapcheck // Already wrapped by Start.
		},
		RunE: profiled(profiler, func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), mergeCfg, logger, args[0], args[1])
		}),
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profileCfg.RegisterFlags(rootCmd.PersistentFlags())
	mergeCfg.RegisterFlags(rootCmd.Flags())

	for _, register := range []func(*cobra.Command) error{
		logCfg.RegisterCompletions,
		profileCfg.RegisterCompletions,
		mergeCfg.RegisterCompletions,
	} {
		completionErr := register(rootCmd)
		if completionErr != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
		}
	}

	inferCmd := newInferCmd()
	inferCmd.RunE = profiled(profiler, inferCmd.RunE)

	rootCmd.AddCommand(inferCmd)

	return rootCmd
}

// profiled stops the profiler once fn returns. Cobra skips post-run hooks
// when RunE fails, so profiles are flushed here instead.
func profiled(
	profiler *profile.Profiler,
	fn func(*cobra.Command, []string) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)

		stopErr := profiler.Stop()
		if stopErr != nil {
			return errors.Join(err, stopErr)
		}

		return err
	}
}

func newInferCmd() *cobra.Command {
	var indent int

	cmd := &cobra.Command{
		Use:   "infer [flags] <file> [file2 ...]",
		Short: "Infer a schema fragment from sample YAML or JSON documents",
		Long: `infer derives a fragment from each sample document, merges the fragments,
and prints the result. Comments above keys become descriptions.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfer(cmd.OutOrStdout(), indent, args)
		},
	}

	cmd.Flags().IntVar(&indent, "indent", 2, "JSON indentation spaces")

	return cmd
}

func run(ctx context.Context, cfg *schemamerge.Config, logger *slog.Logger, output, inputDir string) error {
	m, err := cfg.NewMerger(schemamerge.WithLogger(logger))
	if err != nil {
		return err //nolint:wrapcheck // Already carries ErrInvalidOption.
	}

	err = m.AddDir(ctx, inputDir)
	if err != nil {
		return err //nolint:wrapcheck // Already names the failing file.
	}

	return m.WriteFile(output) //nolint:wrapcheck // Already carries ErrWriteOutput.
}

func runInfer(w io.Writer, indent int, paths []string) error {
	m := schemamerge.New(schemamerge.WithIndent(indent))

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %w", schemamerge.ErrReadInput, err)
		}

		s, err := fragment.Infer(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		n, err := fragment.Node(s)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		err = m.Add(n)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	out, err := m.Result()
	if err != nil {
		return err //nolint:wrapcheck // Already wrapped by Result.
	}

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("%w: %w", schemamerge.ErrWriteOutput, err)
	}

	return nil
}
