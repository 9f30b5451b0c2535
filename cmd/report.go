package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jsphweid/fretdex/config"
	"github.com/jsphweid/fretdex/constants"
	"github.com/jsphweid/fretdex/convert"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [dir] [maxNum]",
	Short: "Creates a report",
	Long:  `Converts every MIDI file under dir (default $MEDIA_PATH) and reports aggregate tab statistics.`,
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		dir := constants.GetMediaDir()
		if len(args) > 0 {
			dir = args[0]
		}
		var maxNum int
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			cobra.CheckErr(err)
			maxNum = n
		}
		cfg, err := loadConfig(cmd)
		cobra.CheckErr(err)

		r, err := report(dir, maxNum, cfg)
		cobra.CheckErr(err)
		fmt.Printf("files: %v (failed %v)\n", r.files, r.failed)
		fmt.Printf("chords: %v\n", r.totals.Chords)
		fmt.Printf("notes: %v\n", r.totals.Notes)
		fmt.Printf("dropped notes: %v\n", r.totals.Dropped)
		fmt.Printf("skipped events: %v\n", r.totals.Skipped)
		fmt.Printf("fret range: %v-%v\n", r.totals.MinFret, r.totals.MaxFret)
		fmt.Printf("files using all strings: %v\n", r.allStrings)
	},
}

type tabReport struct {
	files      int
	failed     int
	allStrings int
	totals     model.Stats
}

func (r *tabReport) add(s model.Stats) {
	if r.totals.Notes == 0 {
		r.totals.MinFret, r.totals.MaxFret = s.MinFret, s.MaxFret
	} else if s.Notes > 0 {
		r.totals.MinFret = util.Min(r.totals.MinFret, s.MinFret)
		r.totals.MaxFret = util.Max(r.totals.MaxFret, s.MaxFret)
	}
	r.totals.Chords += s.Chords
	r.totals.Notes += s.Notes
	r.totals.Dropped += s.Dropped
	r.totals.Skipped += s.Skipped
	r.totals.StringsUsed = util.Max(r.totals.StringsUsed, s.StringsUsed)
	if s.StringsUsed == model.NumStrings {
		r.allStrings++
	}
}

func report(dir string, maxNum int, cfg config.Config) (tabReport, error) {
	var r tabReport
	paths, err := util.GatherAllMidiPaths(dir, maxNum)
	if err != nil {
		return r, err
	}
	for i, path := range paths {
		slog.Info("processing", "n", i+1, "of", len(paths), "file", path)
		r.files++
		events, err := loadEvents(path)
		if err != nil {
			slog.Warn("skipping file", "file", path, "err", err)
			r.failed++
			continue
		}
		res, err := convert.Convert(events, cfg)
		if err != nil {
			return r, err
		}
		r.add(res.Stats)
	}
	return r, nil
}
