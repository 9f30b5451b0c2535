package solver

import (
	"testing"

	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/tuning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOptions(t *testing.T) Options {
	tun, err := tuning.Lookup("Standard", model.FretRange{Min: 0, Max: 24})
	require.NoError(t, err)
	return Options{
		Tuning:         tun,
		MaxStretch:     4,
		StretchPenalty: 10,
		Weights:        Weights{Span: 1.0, Movement: 1.5, String: 0.5},
	}
}

func chordOf(time float64, pitches ...model.Pitch) model.Chord {
	c := model.Chord{Time: time}
	for _, p := range pitches {
		c.Notes = append(c.Notes, model.ChordNote{Pitch: p, Velocity: 80, Duration: 0.5})
	}
	return c
}

func assertValid(t *testing.T, o Options, r Result) {
	t.Helper()
	var pitches []model.Pitch
	for str := 0; str < model.NumStrings; str++ {
		fret := r.Assignment[str]
		if fret == model.Unplayed {
			continue
		}
		assert.True(t, fret >= 0 && fret <= 24, "fret %d out of range", fret)
		p, ok := o.PitchAt(r.Assignment, str)
		require.True(t, ok)
		pitches = append(pitches, p)
	}
	// every kept pitch is sounded by exactly one string
	assert.Len(t, pitches, len(r.Kept))
	for _, n := range r.Kept {
		assert.Contains(t, pitches, n.Pitch)
	}
}

func TestCandidatesForMiddleC(t *testing.T) {
	o := defaultOptions(t)
	cands := Candidates(o.Tuning, 60)

	assert.Equal(t, []model.Candidate{
		{Pitch: 60, String: 1, Fret: 1},
		{Pitch: 60, String: 2, Fret: 5},
		{Pitch: 60, String: 3, Fret: 10},
		{Pitch: 60, String: 4, Fret: 15},
		{Pitch: 60, String: 5, Fret: 20},
	}, cands)
	for _, c := range cands {
		assert.Equal(t, c.Pitch, o.Tuning.PitchFor(c.String, c.Fret))
	}
}

func TestSingleNote(t *testing.T) {
	o := defaultOptions(t)
	r := o.SolveChord(chordOf(0, 60), model.HandPosition{})

	assertValid(t, o, r)
	assert.Equal(t, 1, r.Assignment.Used())
	assert.Equal(t, 1, r.Assignment[1])
	assert.Empty(t, r.Dropped)
}

func TestCMajorTriad(t *testing.T) {
	o := defaultOptions(t)
	r := o.SolveChord(chordOf(0, 60, 64, 67), model.HandPosition{})

	assertValid(t, o, r)
	assert.Equal(t, 3, r.Assignment.Used())
	assert.LessOrEqual(t, r.Cost.Span, 4)
	assert.Equal(t, model.Assignment{3, 5, 5, -1, -1, -1}, r.Assignment)
}

func TestOpenChordUsesOpenStrings(t *testing.T) {
	o := defaultOptions(t)
	// E minor, all open strings
	r := o.SolveChord(chordOf(0, 40, 45, 50, 55, 59, 64), model.HandPosition{})

	assertValid(t, o, r)
	assert.Equal(t, model.Assignment{0, 0, 0, 0, 0, 0}, r.Assignment)
	assert.Equal(t, 0.0, r.Hand.CenterFret)
}

func TestHandMovementInfluencesChoice(t *testing.T) {
	o := defaultOptions(t)

	low := model.Assignment{-1, -1, 2, -1, -1, -1}
	high := model.Assignment{-1, -1, -1, -1, 12, -1}
	near := model.HandPosition{CenterFret: 2}
	assert.Greater(t, o.Cost(high, near).Total, o.Cost(low, near).Total)

	results := o.Solve([]model.Chord{chordOf(0, 57), chordOf(1, 57)})
	require.Len(t, results, 2)
	assert.Equal(t, low, results[0].Assignment)
	assert.Equal(t, low, results[1].Assignment)

	// the same A3 after a note only playable at fret 24 stays up the neck
	results = o.Solve([]model.Chord{chordOf(0, 88), chordOf(1, 57)})
	require.Len(t, results, 2)
	assert.Equal(t, 24.0, results[0].Hand.CenterFret)
	assert.Equal(t, model.Assignment{-1, -1, -1, -1, -1, 17}, results[1].Assignment)

	fromLow := o.SolveChord(chordOf(1, 57), model.HandPosition{CenterFret: 0})
	fromHigh := o.SolveChord(chordOf(1, 57), model.HandPosition{CenterFret: 24})
	assert.NotEqual(t, fromLow.Assignment, fromHigh.Assignment)
}

func TestUnreachablePitchIsDropped(t *testing.T) {
	o := defaultOptions(t)
	r := o.SolveChord(chordOf(0, 20, 60, 64), model.HandPosition{})

	assertValid(t, o, r)
	require.Len(t, r.Dropped, 1)
	assert.Equal(t, model.Pitch(20), r.Dropped[0].Pitch)
	assert.Equal(t, 2, r.Assignment.Used())
}

func TestChordOfOnlyUnreachablePitches(t *testing.T) {
	o := defaultOptions(t)
	prev := model.HandPosition{CenterFret: 7}
	r := o.SolveChord(chordOf(0, 20, 120), prev)

	assert.Len(t, r.Dropped, 2)
	assert.Empty(t, r.Kept)
	assert.Equal(t, model.EmptyAssignment(), r.Assignment)
	assert.Equal(t, prev, r.Hand)
}

func TestSevenNotesDropsQuietest(t *testing.T) {
	o := defaultOptions(t)
	c := chordOf(0, 40, 45, 50, 55, 59, 64, 69)
	c.Notes[6].Velocity = 10
	r := o.SolveChord(c, model.HandPosition{})

	assertValid(t, o, r)
	require.Len(t, r.Dropped, 1)
	assert.Equal(t, model.Pitch(69), r.Dropped[0].Pitch)
	assert.Equal(t, 6, r.Assignment.Used())
}

func TestStringConflictDropPolicy(t *testing.T) {
	o := defaultOptions(t)

	// 87 and 88 are both only reachable on the high e string
	r := o.SolveChord(chordOf(0, 88, 87), model.HandPosition{})
	require.Len(t, r.Dropped, 1)
	assert.Equal(t, model.Pitch(87), r.Dropped[0].Pitch, "equal velocity drops the lower pitch")
	assertValid(t, o, r)

	c := chordOf(0, 88, 87)
	c.Notes[0].Velocity = 20
	r = o.SolveChord(c, model.HandPosition{})
	require.Len(t, r.Dropped, 1)
	assert.Equal(t, model.Pitch(88), r.Dropped[0].Pitch, "quieter note goes first")
}

func TestExtremeStretchIsPenalizedNotForbidden(t *testing.T) {
	o := defaultOptions(t)
	// 41 only on low E fret 1, 88 only on high e fret 24
	r := o.SolveChord(chordOf(0, 41, 88), model.HandPosition{})

	assertValid(t, o, r)
	assert.Empty(t, r.Dropped)
	assert.Equal(t, 23, r.Cost.Span)
	assert.Greater(t, r.Cost.Total, 23.0*10)
}

func TestTiesPreferLowestStrings(t *testing.T) {
	o := defaultOptions(t)
	o.Weights = Weights{}

	r := o.SolveChord(chordOf(0, 60), model.HandPosition{})
	assert.Equal(t, model.Assignment{-1, 1, -1, -1, -1, -1}, r.Assignment)

	r = o.SolveChord(chordOf(0, 64, 69), model.HandPosition{})
	assert.Equal(t, model.Assignment{0, 10, -1, -1, -1, -1}, r.Assignment)
}

func TestSolveIsDeterministic(t *testing.T) {
	o := defaultOptions(t)
	chords := []model.Chord{
		chordOf(0, 60, 64, 67),
		chordOf(0.5, 62, 65, 69),
		chordOf(1.0, 43, 47, 50, 55, 59, 67),
		chordOf(1.5, 20, 76),
		chordOf(2.0, 57),
	}
	first := o.Solve(chords)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, o.Solve(chords))
	}
}

func TestSolveSortsByTime(t *testing.T) {
	o := defaultOptions(t)
	results := o.Solve([]model.Chord{chordOf(2, 60), chordOf(1, 64), chordOf(0, 67)})
	require.Len(t, results, 3)
	assert.Equal(t, []float64{0, 1, 2}, []float64{results[0].Time, results[1].Time, results[2].Time})
}
