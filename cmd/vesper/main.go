package main

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vesper-lang/vesper/internal/cli/config"
	"github.com/vesper-lang/vesper/internal/cli/demo"
	"github.com/vesper-lang/vesper/internal/cli/session"
	"github.com/vesper-lang/vesper/internal/cli/ui"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

var (
	cfg  *config.Config
	sess *session.Session

	flagNoColor bool
	flagOutput  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vesper",
		Short: "Vesper scripting language resolution tooling",
		Long: `Vesper is a statically typed scripting language. This tool inspects the
compiler's resolution core: identity hashes, the conversion cost ladder,
and the conversion the engine picks between two type spellings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("no-color") {
				cfg.NoColor = flagNoColor
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = flagOutput
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			sess = session.New(cfg.LogLevel)
			sess.Logger.Debug("session started", zap.String("command", cmd.Name()))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if sess != nil {
				sess.Close()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&flagOutput, "output", "", "Output format: text or json")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(costsCmd)

	if err := rootCmd.Execute(); err != nil {
		noColor := flagNoColor || (cfg != nil && cfg.NoColor)
		ui.RenderError(os.Stderr, err, noColor)
		os.Exit(1)
	}
}

// printJSON writes v to stdout as indented JSON, the shape scripts consume
// when --output json is set.
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// suggestSpelling prints a did-you-mean line when err wraps an unknown
// type spelling. The error itself is rendered by the caller.
func suggestSpelling(err error) {
	var unknown *demo.UnknownTypeError
	if errors.As(err, &unknown) {
		noColor := flagNoColor || (cfg != nil && cfg.NoColor)
		ui.DidYouMean(os.Stderr, ui.FindSimilar(unknown.Name, unknown.Known), noColor)
	}
}
