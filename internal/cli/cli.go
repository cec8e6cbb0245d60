// Package cli implements the bnfplay command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"bnfplay/internal/bnf"
	"bnfplay/internal/envconfig"
	"bnfplay/internal/nfa"
)

type app struct {
	log *slog.Logger
}

func NewCLI() *cobra.Command {
	a := &app{log: slog.Default()}

	rootCmd := &cobra.Command{
		Use:   "bnfplay",
		Short: "Compile BNF grammars and match text against them",
		// main prints errors itself
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Disable usage printing on errors
			cmd.SilenceUsage = true

			level, _ := cmd.Flags().GetString("log-level")
			format, _ := cmd.Flags().GetString("log-format")
			if !cmd.Flags().Changed("log-level") && envconfig.Debug {
				level = "debug"
			}
			if !cmd.Flags().Changed("log-format") {
				format = envconfig.LogFormat
			}
			a.log = newLogger(level, format, cmd.ErrOrStderr())
			slog.SetDefault(a.log)
			return nil
		},
	}

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(
		a.matchCmd(),
		a.searchCmd(),
		a.dotCmd(),
		a.checkCmd(),
		a.serveCmd(),
	)
	return rootCmd
}

// newLogger builds the process logger. Level names follow slog.Level, so
// "DEBUG", "warn" and "info+2" are all accepted; anything else falls back to
// info with a warning.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	levelErr := level.UnmarshalText([]byte(levelStr))
	if levelErr != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(outW, opts)
	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, opts)
	}

	logger := slog.New(handler)
	if levelErr != nil {
		logger.Warn("unknown log level, using info", "log-level", levelStr)
	}
	return logger
}

// loadProgram compiles the grammar file at path and narrows it to rule when
// rule is not empty.
func (a *app) loadProgram(path, rule string) (*nfa.Program, error) {
	g, err := bnf.ParseFile(path)
	if err != nil {
		return nil, err
	}
	p, err := nfa.NewCompiler(a.log).Compile(g)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if rule == "" {
		return p, nil
	}
	return p.SubProgram(rule)
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("rule", "r", "", "Match against a single top-level rule")
	cmd.Flags().StringP("input", "i", "", "Text to match")
	cmd.Flags().StringP("input-file", "f", "", "Read the text to match from a file")
	cmd.MarkFlagsMutuallyExclusive("input", "input-file")
}

var errNoInput = errors.New("one of --input or --input-file is required")

func readInput(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("input-file"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	if !cmd.Flags().Changed("input") {
		return "", errNoInput
	}
	input, _ := cmd.Flags().GetString("input")
	return input, nil
}
