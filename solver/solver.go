// Package solver picks a string and fret for every note of every chord.
//
// Chords are solved in time order. Each chord is an exhaustive
// branch-and-bound search over string-unique assignments, scored by Cost
// against the hand position the previous chord left behind. Notes that
// cannot be placed are dropped, never fatal.
package solver

import (
	"sort"

	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/tuning"
)

// costs closer than this are ties
const epsilon = 1e-9

type Options struct {
	Tuning         tuning.Tuning
	MaxStretch     int
	StretchPenalty float64
	Weights        Weights
	InitialCenter  float64
}

type Result struct {
	Time       float64
	Assignment model.Assignment
	Kept       []model.ChordNote
	Dropped    []model.ChordNote
	Cost       Breakdown
	Hand       model.HandPosition
}

type search struct {
	opts  Options
	prev  model.HandPosition
	cands [][]model.Candidate

	current  model.Assignment
	best     model.Assignment
	bestCost Breakdown
	found    bool
}

func usedStrings(a model.Assignment) []int {
	var res []int
	for str, f := range a {
		if f != model.Unplayed {
			res = append(res, str)
		}
	}
	return res
}

func compareInts(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

// better orders assignments by cost, then by the strings they use in
// ascending order, then by fret per string.
func better(a model.Assignment, ac Breakdown, b model.Assignment, bc Breakdown) bool {
	if ac.Total < bc.Total-epsilon {
		return true
	}
	if ac.Total > bc.Total+epsilon {
		return false
	}
	if c := compareInts(usedStrings(a), usedStrings(b)); c != 0 {
		return c < 0
	}
	return compareInts(a[:], b[:]) < 0
}

func (s *search) run(i int) {
	if i == len(s.cands) {
		cost := s.opts.Cost(s.current, s.prev)
		if !s.found || better(s.current, cost, s.best, s.bestCost) {
			s.best = s.current
			s.bestCost = cost
			s.found = true
		}
		return
	}
	for _, c := range s.cands[i] {
		if s.current[c.String] != model.Unplayed {
			continue
		}
		s.current[c.String] = c.Fret
		if !s.found || s.opts.lowerBound(s.current) <= s.bestCost.Total+epsilon {
			s.run(i + 1)
		}
		s.current[c.String] = model.Unplayed
	}
}

func (o Options) assign(notes []model.ChordNote, prev model.HandPosition) (model.Assignment, Breakdown, bool) {
	if len(notes) > model.NumStrings {
		return model.Assignment{}, Breakdown{}, false
	}
	s := search{
		opts:    o,
		prev:    prev,
		current: model.EmptyAssignment(),
	}
	for _, n := range notes {
		s.cands = append(s.cands, Candidates(o.Tuning, n.Pitch))
	}
	s.run(0)
	return s.best, s.bestCost, s.found
}

// lowestPriority is the index of the quietest note, the lowest pitch among
// equally quiet ones.
func lowestPriority(notes []model.ChordNote) int {
	idx := 0
	for i, n := range notes {
		lo := notes[idx]
		if n.Velocity < lo.Velocity || (n.Velocity == lo.Velocity && n.Pitch < lo.Pitch) {
			idx = i
		}
	}
	return idx
}

// SolveChord assigns c given the hand position left by the previous chord.
// Pitches no string can reach are dropped first. While the rest still has no
// string-unique assignment, the lowest priority note is dropped.
func (o Options) SolveChord(c model.Chord, prev model.HandPosition) Result {
	res := Result{Time: c.Time, Hand: prev}

	for _, n := range c.Notes {
		if len(Candidates(o.Tuning, n.Pitch)) == 0 {
			res.Dropped = append(res.Dropped, n)
		} else {
			res.Kept = append(res.Kept, n)
		}
	}

	for len(res.Kept) > 0 {
		if a, cost, ok := o.assign(res.Kept, prev); ok {
			res.Assignment = a
			res.Cost = cost
			res.Hand = model.HandPosition{CenterFret: cost.Center}
			return res
		}
		idx := lowestPriority(res.Kept)
		res.Dropped = append(res.Dropped, res.Kept[idx])
		res.Kept = append(res.Kept[:idx:idx], res.Kept[idx+1:]...)
	}

	res.Assignment = model.EmptyAssignment()
	return res
}

// Solve runs SolveChord over chords in time order, threading the hand
// position from each chord into the next.
func (o Options) Solve(chords []model.Chord) []Result {
	sorted := make([]model.Chord, len(chords))
	copy(sorted, chords)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})

	hand := model.HandPosition{CenterFret: o.InitialCenter}
	res := make([]Result, 0, len(sorted))
	for _, c := range sorted {
		r := o.SolveChord(c, hand)
		hand = r.Hand
		res = append(res, r)
	}
	return res
}

// PitchAt returns the pitch sounded on str by a, false when the string is
// not played.
func (o Options) PitchAt(a model.Assignment, str int) (model.Pitch, bool) {
	if a[str] == model.Unplayed {
		return 0, false
	}
	return o.Tuning.PitchFor(str, a[str]), true
}
