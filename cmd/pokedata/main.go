// Command pokedata serves and reports the creature-stats dashboard.
//
// Usage:
//
//	pokedata serve --config pokedata.toml
//	pokedata report --gen 1 --format text
//	pokedata chart category_comparison --format png --out comparison.png
//	pokedata generations
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/spektr-org/pokedata/config"
	"github.com/spektr-org/pokedata/dashboard"
	"github.com/spektr-org/pokedata/dataset"
	"github.com/spektr-org/pokedata/engine"
	"github.com/spektr-org/pokedata/observability"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("pokedata failed")
		os.Exit(1)
	}
}

// app carries the persistent flags and what they resolve to.
type app struct {
	configPath string
	dataPath   string
	logLevel   string

	cfg    config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "pokedata",
		Short:         "Creature stats dashboard",
		Long:          "Loads the creature CSV and computes the dashboard panels per generation.",
		SilenceUsage:  true,
		SilenceErrors: true, // main logs the error
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.SetErr(os.Stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "TOML config file")
	root.PersistentFlags().StringVar(&a.dataPath, "data", "", "CSV dataset path (overrides config)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "trace, debug, info, warn, error or disabled")

	root.AddCommand(
		newServeCmd(a),
		newReportCmd(a),
		newChartCmd(a),
		newGenerationsCmd(a),
		newVersionCmd(),
	)
	return root
}

// init resolves config: defaults, then the file, then env, then flags.
func (a *app) init() error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if a.dataPath != "" {
		cfg.DataPath = a.dataPath
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := observability.InitLogger("pokedata", cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// load reads the dataset. A load error is fatal for every data command.
func (a *app) load() (engine.RecordView, error) {
	creatures, err := dataset.Load(a.cfg.DataPath)
	if err != nil {
		return nil, err
	}
	view := dataset.View(creatures)
	a.logger.Info().
		Str("path", a.cfg.DataPath).
		Int("rows", view.Len()).
		Int("generations", len(dashboard.Generations(view))).
		Msg("dataset loaded")
	return view, nil
}

func (a *app) limits() dashboard.Option {
	return dashboard.WithLimits(a.cfg.Limits)
}

func newGenerationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generations",
		Short: "Print the generation filter options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.load()
			if err != nil {
				return err
			}
			for _, opt := range dashboard.Options(view) {
				fmt.Fprintln(cmd.OutOrStdout(), opt)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "pokedata %s\n", version)
			return nil
		},
	}
}
