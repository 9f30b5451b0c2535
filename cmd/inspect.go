package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jsphweid/fretdex/config"
	"github.com/jsphweid/fretdex/convert"
	"github.com/jsphweid/fretdex/midi"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/tab"
	"github.com/jsphweid/fretdex/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Shows how a file is fingered",
	Long:  `Prints a MIDI summary, the string and fret chosen for every chord, and the tab.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		cobra.CheckErr(err)
		cobra.CheckErr(inspect(os.Stdout, args[0], cfg))
	},
}

func pitchList(notes []model.ChordNote) string {
	var names []string
	for _, n := range notes {
		names = append(names, midi.NoteName(n.Pitch))
	}
	return strings.Join(names, " ")
}

func inspect(w io.Writer, path string, cfg config.Config) error {
	if util.IsMidiPath(path) {
		s, err := midi.ReadMidiFile(path)
		if err != nil {
			return err
		}
		a := midi.Analyze(s)
		fmt.Fprintf(w, "duration: %.2fs, tempo changes: %v, notes: %v\n", a.Duration, a.TempoChanges, a.TotalNotes)
		if a.TotalNotes > 0 {
			fmt.Fprintf(w, "pitch range: %v-%v\n", midi.NoteName(a.Pitches.Min), midi.NoteName(a.Pitches.Max))
		}
		for _, c := range a.Channels {
			fmt.Fprintf(w, "  channel %v: %v notes, %v-%v\n", c.Channel+1, c.NoteCount,
				midi.NoteName(c.Pitches.Min), midi.NoteName(c.Pitches.Max))
		}
	}

	events, err := loadEvents(path)
	if err != nil {
		return err
	}
	results, err := convert.Results(events, cfg)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Fprintf(w, "%8.3fs  %v  cost %.2f (span %v, center %.1f)  %v\n",
			r.Time, r.Assignment, r.Cost.Total, r.Cost.Span, r.Hand.CenterFret, pitchList(r.Kept))
		if len(r.Dropped) > 0 {
			fmt.Fprintf(w, "           dropped: %v\n", pitchList(r.Dropped))
		}
	}

	seq := tab.Build(results)
	fmt.Fprintln(w)
	fmt.Fprint(w, tab.Render(seq, labels(cfg), tab.DefaultPerLine))
	return nil
}
