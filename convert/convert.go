// Package convert runs the whole note-to-tab pipeline: group notes into
// chords, pick string and fret for each chord, build the tab.
package convert

import (
	"log/slog"

	"github.com/jsphweid/fretdex/chord"
	"github.com/jsphweid/fretdex/config"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/solver"
	"github.com/jsphweid/fretdex/tab"
)

// Convert maps events to a tab sequence. The only error is an invalid
// cfg; notes that cannot be played or are malformed are counted in the
// stats instead.
func Convert(events []model.NoteEvent, cfg config.Config) (model.Result, error) {
	opts, err := cfg.SolverOptions()
	if err != nil {
		return model.Result{}, err
	}

	chords, skipped := chord.Group(events, cfg.GroupingWindow)
	results := opts.Solve(chords)
	seq := tab.Build(results)

	stats := tab.ComputeStats(seq)
	stats.Skipped = skipped
	for _, r := range results {
		stats.Dropped += len(r.Dropped)
	}

	slog.Debug("convert: done",
		"events", len(events),
		"chords", len(chords),
		"entries", len(seq),
		"dropped", stats.Dropped,
		"skipped", stats.Skipped,
	)
	if stats.Dropped > 0 || stats.Skipped > 0 {
		slog.Warn("convert: notes left out of tab", "dropped", stats.Dropped, "skipped", stats.Skipped)
	}

	return model.Result{Tab: seq, Stats: stats}, nil
}

// Results exposes the per-chord solver output behind Convert, for
// diagnostics.
func Results(events []model.NoteEvent, cfg config.Config) ([]solver.Result, error) {
	opts, err := cfg.SolverOptions()
	if err != nil {
		return nil, err
	}
	chords, _ := chord.Group(events, cfg.GroupingWindow)
	return opts.Solve(chords), nil
}
