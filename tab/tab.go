package tab

import (
	"sort"

	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/solver"
	"github.com/jsphweid/fretdex/util"
)

func entry(r solver.Result) model.TabEntry {
	e := model.TabEntry{
		Time:      r.Time,
		Strings:   r.Assignment,
		NoteCount: len(r.Kept),
		Dropped:   len(r.Dropped),
	}
	for _, n := range r.Kept {
		e.Duration = util.Max(e.Duration, n.Duration)
	}
	return e
}

// Build turns solver results into tab entries ordered by time. Chords that
// lost every note produce no entry.
func Build(results []solver.Result) model.TabSequence {
	res := make(model.TabSequence, 0, len(results))
	for _, r := range results {
		if len(r.Kept) == 0 {
			continue
		}
		res = append(res, entry(r))
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Time < res[j].Time
	})
	return res
}

// ComputeStats derives the aggregate view of seq. Dropped and Skipped are
// not visible in seq and are left for the caller.
func ComputeStats(seq model.TabSequence) model.Stats {
	var s model.Stats
	var used [model.NumStrings]bool
	first := true
	for _, e := range seq {
		s.Chords++
		for str, fret := range e.Strings {
			if fret == model.Unplayed {
				continue
			}
			s.Notes++
			used[str] = true
			if first {
				s.MinFret, s.MaxFret = fret, fret
				first = false
			}
			s.MinFret = util.Min(s.MinFret, fret)
			s.MaxFret = util.Max(s.MaxFret, fret)
		}
	}
	for _, u := range used {
		if u {
			s.StringsUsed++
		}
	}
	return s
}
