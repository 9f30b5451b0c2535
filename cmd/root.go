package cmd

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/jsphweid/fretdex/config"
	"github.com/jsphweid/fretdex/logging"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/tuning"
	"github.com/spf13/cobra"
)

var (
	debug      bool
	tuningName string
	windowMs   float64
	maxStretch int
	weights    []float64
)

var rootCmd = &cobra.Command{
	Use:   "fretdex",
	Short: "Guitar tablature from note lists",
	Long: `fretdex turns transcribed notes (MIDI files or JSON note lists) into
six-string guitar tablature, choosing a playable string and fret for every note.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		err := godotenv.Load()
		logging.Init(nil, debug)
		if err != nil {
			slog.Debug("no .env file, using environment", "err", err)
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&debug, "debug", false, "log at debug level")
	flags.StringVar(&tuningName, "tuning", "", "tuning name (default Standard)")
	flags.Float64Var(&windowMs, "window-ms", 0, "chord grouping window in milliseconds (default 50)")
	flags.IntVar(&maxStretch, "max-stretch", 0, "widest comfortable fret span (default 4)")
	flags.Float64SliceVar(&weights, "weights", nil, "cost weights span,movement,string")
}

// loadConfig layers changed flags over FRETDEX_* variables over defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("tuning") {
		cfg.Tuning = tuningName
	}
	if flags.Changed("window-ms") {
		cfg.GroupingWindow = windowMs / 1000
	}
	if flags.Changed("max-stretch") {
		cfg.MaxStretch = maxStretch
	}
	if flags.Changed("weights") {
		if len(weights) != 3 {
			return cfg, config.ErrInvalidConfig
		}
		cfg.Weights.Span, cfg.Weights.Movement, cfg.Weights.String = weights[0], weights[1], weights[2]
	}
	return cfg, cfg.Validate()
}

func labels(cfg config.Config) [model.NumStrings]string {
	var res [model.NumStrings]string
	tun, err := tuning.Lookup(cfg.Tuning, cfg.FretRange)
	if err != nil {
		return res
	}
	for i, s := range tun.Strings {
		res[i] = s.Label
	}
	return res
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
