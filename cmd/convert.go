package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jsphweid/fretdex/config"
	"github.com/jsphweid/fretdex/constants"
	"github.com/jsphweid/fretdex/convert"
	"github.com/jsphweid/fretdex/tab"
	"github.com/jsphweid/fretdex/util"
	"github.com/spf13/cobra"
)

var (
	outDir  string
	perLine int
)

func init() {
	convertCmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default $OUTPUT_PATH or ./out)")
	convertCmd.Flags().IntVar(&perLine, "per-line", tab.DefaultPerLine, "chords per line in the text tab")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <file>...",
	Short: "Converts MIDI or JSON note files to tab",
	Long: `Converts each MIDI or JSON note file to <name>.tab.json and <name>.tab.txt
in the output directory.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		cobra.CheckErr(err)
		if outDir == "" {
			outDir = constants.GetOutputDir()
		}
		cobra.CheckErr(util.EnsureOutputDir(outDir))

		var failed int
		for i, path := range args {
			slog.Info("converting", "file", path, "n", i+1, "of", len(args))
			if err := ConvertFile(path, outDir, cfg); err != nil {
				slog.Error("skipping file", "file", path, "err", err)
				failed++
			}
		}
		if failed > 0 {
			cobra.CheckErr(fmt.Errorf("%d of %d files failed", failed, len(args)))
		}
	},
}

// ConvertFile writes the JSON and text tab of path into dir.
func ConvertFile(path string, dir string, cfg config.Config) error {
	events, err := loadEvents(path)
	if err != nil {
		return err
	}
	res, err := convert.Convert(events, cfg)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	name := baseName(path)
	if err := os.WriteFile(filepath.Join(dir, name+".tab.json"), data, 0666); err != nil {
		return err
	}
	text := tab.Render(res.Tab, labels(cfg), perLine)
	if err := os.WriteFile(filepath.Join(dir, name+".tab.txt"), []byte(text), 0666); err != nil {
		return err
	}

	slog.Info("wrote tab",
		"file", name,
		"chords", res.Stats.Chords,
		"notes", res.Stats.Notes,
		"dropped", res.Stats.Dropped,
		"skipped", res.Stats.Skipped,
	)
	return nil
}
