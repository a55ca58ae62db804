package log_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/schemamerge/log"
	"go.jacobcolvin.com/schemamerge/schemamerge"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  log.Level
		err   error
	}{
		"error":            {input: "error", want: log.LevelError},
		"warn":             {input: "warn", want: log.LevelWarn},
		"warning alias":    {input: "Warning", want: log.LevelWarn},
		"info":             {input: "info", want: log.LevelInfo},
		"debug upper case": {input: "DEBUG", want: log.LevelDebug},
		"trace":            {input: "trace", err: log.ErrUnknownLogLevel},
		"empty":            {input: "", err: log.ErrUnknownLogLevel},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := log.ParseLevel(tc.input)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  log.Format
		err   error
	}{
		"json":       {input: "json", want: log.FormatJSON},
		"logfmt":     {input: "LogFmt", want: log.FormatLogfmt},
		"text":       {input: "text", want: log.FormatText},
		"auto":       {input: "auto", err: log.ErrUnknownLogFormat},
		"yaml":       {input: "yaml", err: log.ErrUnknownLogFormat},
		"whitespace": {input: " json", err: log.ErrUnknownLogFormat},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := log.ParseFormat(tc.input)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level log.Level
		want  slog.Level
	}{
		"error":   {level: log.LevelError, want: slog.LevelError},
		"warn":    {level: log.LevelWarn, want: slog.LevelWarn},
		"info":    {level: log.LevelInfo, want: slog.LevelInfo},
		"debug":   {level: log.LevelDebug, want: slog.LevelDebug},
		"unknown": {level: log.Level("loud"), want: slog.LevelInfo},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.level.SlogLevel())
		})
	}
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		check  func(t *testing.T, out string)
		format log.Format
	}{
		"json": {
			format: log.FormatJSON,
			check: func(t *testing.T, out string) {
				t.Helper()

				var entry map[string]any

				require.NoError(t, json.Unmarshal([]byte(out), &entry))
				assert.Equal(t, "merging from file", entry["msg"])
				assert.Equal(t, "INFO", entry["level"])
				assert.Equal(t, "a/ConfigurationSchema.json", entry["path"])
				assert.Contains(t, entry, "source")
			},
		},
		"logfmt": {
			format: log.FormatLogfmt,
			check: func(t *testing.T, out string) {
				t.Helper()

				assert.Contains(t, out, "level=INFO")
				assert.Contains(t, out, `msg="merging from file"`)
				assert.Contains(t, out, "path=a/ConfigurationSchema.json")
			},
		},
		"text": {
			format: log.FormatText,
			check: func(t *testing.T, out string) {
				t.Helper()

				assert.Contains(t, out, "INFO")
				assert.Contains(t, out, "merging from file")
				assert.Contains(t, out, "path=a/ConfigurationSchema.json")
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			logger := slog.New(log.NewHandler(&buf, log.LevelInfo, tc.format))
			logger.Info("merging from file", slog.String("path", "a/ConfigurationSchema.json"))

			tc.check(t, buf.String())
		})
	}
}

func TestNewHandlerFromStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level  string
		format string
		err    error
	}{
		"valid":          {level: "debug", format: "json"},
		"unknown level":  {level: "verbose", format: "json", err: log.ErrUnknownLogLevel},
		"unknown format": {level: "info", format: "xml", err: log.ErrUnknownLogFormat},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			h, err := log.NewHandlerFromStrings(&buf, tc.level, tc.format)
			if tc.err != nil {
				require.ErrorIs(t, err, log.ErrInvalidArgument)
				require.ErrorIs(t, err, tc.err)
				assert.Nil(t, h)

				return
			}

			require.NoError(t, err)
			slog.New(h).Debug("discovered fragment")
			assert.Contains(t, buf.String(), `"msg":"discovered fragment"`)
		})
	}
}

func TestConfigFlags(t *testing.T) {
	t.Parallel()

	cfg := log.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	require.NoError(t, flags.Parse(nil))
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, log.FormatAuto, cfg.Format)

	custom := log.Flags{Level: "verbosity", Format: "output"}.NewConfig()
	customFlags := pflag.NewFlagSet("custom", pflag.ContinueOnError)
	custom.RegisterFlags(customFlags)

	require.NoError(t, customFlags.Parse([]string{"--verbosity", "warn", "--output", "json"}))
	assert.Equal(t, "warn", custom.Level)
	assert.Equal(t, "json", custom.Format)
	assert.Nil(t, customFlags.Lookup("log-level"))
}

func TestConfigRegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := log.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())
	require.NoError(t, cfg.RegisterCompletions(cmd))

	tcs := map[string]struct {
		flag string
		want []string
	}{
		"level":  {flag: "log-level", want: log.GetAllLevelStrings()},
		"format": {flag: "log-format", want: append([]string{log.FormatAuto}, log.GetAllFormatStrings()...)},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fn, ok := cmd.GetFlagCompletionFunc(tc.flag)
			require.True(t, ok)

			got, directive := fn(cmd, nil, "")
			assert.Equal(t, tc.want, got)
			assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
		})
	}
}

func TestConfigAutoFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		format string
		want   string
	}{
		"auto on a buffer is logfmt": {format: log.FormatAuto, want: `msg="wrote merged schema"`},
		"unset is logfmt":            {format: "", want: `msg="wrote merged schema"`},
		"explicit json":              {format: "json", want: `"msg":"wrote merged schema"`},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := &log.Config{Level: "info", Format: tc.format}

			var buf bytes.Buffer

			logger, err := cfg.NewLogger(&buf)
			require.NoError(t, err)

			logger.Info("wrote merged schema")
			assert.Contains(t, buf.String(), tc.want)
		})
	}
}

func TestMergerLogging(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	fragment := filepath.Join(root, "a", schemamerge.DefaultFileName)
	output := filepath.Join(root, "schema.json")

	require.NoError(t, os.MkdirAll(filepath.Dir(fragment), 0o755))
	require.NoError(t, os.WriteFile(fragment, []byte(`{"type": "string"}`), 0o644))

	tcs := map[string]struct {
		level string
		want  []string
		skip  []string
	}{
		"debug": {
			level: "debug",
			want: []string{
				`level=DEBUG`,
				`msg="discovered fragment" path=` + fragment,
				`msg="merging from file" path=` + fragment,
				`msg="wrote merged schema" path=`,
			},
		},
		"info": {
			level: "info",
			want: []string{
				`msg="merging from file" path=` + fragment,
				`msg="wrote merged schema" path=`,
			},
			skip: []string{"discovered fragment"},
		},
		"error": {
			level: "error",
			skip:  []string{"merging from file", "wrote merged schema"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := &log.Config{Level: tc.level, Format: string(log.FormatLogfmt)}

			var buf bytes.Buffer

			logger, err := cfg.NewLogger(&buf)
			require.NoError(t, err)

			m := schemamerge.New(schemamerge.WithLogger(logger))
			require.NoError(t, m.AddDir(t.Context(), root))
			require.NoError(t, m.WriteFile(strings.TrimSuffix(output, ".json")+"-"+name+".json"))

			out := buf.String()
			for _, want := range tc.want {
				assert.Contains(t, out, want)
			}

			for _, skip := range tc.skip {
				assert.NotContains(t, out, skip)
			}

			if tc.level == "error" {
				assert.Empty(t, out)
			}
		})
	}
}
