package chord

import (
	"fmt"
	"testing"

	"github.com/jsphweid/fretdex/model"
	"github.com/stretchr/testify/assert"
)

func note(pitch model.Pitch, onset float64, velocity uint8) model.NoteEvent {
	return model.NoteEvent{Pitch: pitch, Onset: onset, Offset: onset + 0.5, Velocity: velocity}
}

func keys(chords []model.Chord) []string {
	var res []string
	for _, c := range chords {
		res = append(res, fmt.Sprintf("%.3f:%s", c.Time, CreateChordKey(c.Pitches())))
	}
	return res
}

func TestCreateChordKeyDoesNotMutate(t *testing.T) {
	notes := []model.Pitch{67, 60, 64}
	assert.Equal(t, "60-64-67", CreateChordKey(notes))
	assert.Equal(t, []model.Pitch{67, 60, 64}, notes)
}

func TestGroupEmpty(t *testing.T) {
	chords, skipped := Group(nil, 0.05)
	assert.Empty(t, chords)
	assert.Zero(t, skipped)
}

func TestGroupsWithinWindowOfAnchor(t *testing.T) {
	events := []model.NoteEvent{
		note(64, 0.02, 80),
		note(60, 0.0, 80),
		note(67, 0.04, 80),
		// 0.07 is more than 50ms after the anchor at 0.0
		note(72, 0.07, 80),
		note(76, 0.10, 80),
		note(48, 1.0, 80),
	}
	chords, skipped := Group(events, 0.05)

	assert := assert.New(t)
	assert.Zero(skipped)
	assert.Equal([]string{"0.000:60-64-67", "0.070:72-76", "1.000:48"}, keys(chords))
	assert.Equal([]model.Pitch{60, 64, 67}, chords[0].Pitches())
}

func TestAnchorDoesNotSlide(t *testing.T) {
	// each event is within 50ms of the previous one but not of the anchor
	events := []model.NoteEvent{note(60, 0.0, 80), note(62, 0.04, 80), note(64, 0.08, 80)}
	chords, _ := Group(events, 0.05)
	assert.Equal(t, []string{"0.000:60-62", "0.080:64"}, keys(chords))
}

func TestOverlappingButLateOnsetsAreNotMerged(t *testing.T) {
	long := model.NoteEvent{Pitch: 40, Onset: 0, Offset: 4, Velocity: 90}
	chords, _ := Group([]model.NoteEvent{long, note(64, 1.0, 80)}, 0.05)
	assert.Len(t, chords, 2)
}

func TestDuplicatePitchesCollapse(t *testing.T) {
	events := []model.NoteEvent{
		note(60, 0.0, 40),
		{Pitch: 60, Onset: 0.01, Offset: 2.0, Velocity: 100},
		note(64, 0.0, 80),
	}
	chords, _ := Group(events, 0.05)

	assert := assert.New(t)
	assert.Len(chords, 1)
	assert.Len(chords[0].Notes, 2)
	assert.Equal(model.ChordNote{Pitch: 60, Velocity: 100, Duration: 1.99}, roundDuration(chords[0].Notes[0]))
}

func roundDuration(n model.ChordNote) model.ChordNote {
	n.Duration = float64(int(n.Duration*1000+0.5)) / 1000
	return n
}

func TestTiesBrokenByPitch(t *testing.T) {
	events := []model.NoteEvent{note(67, 0, 80), note(60, 0, 80), note(64, 0, 80)}
	chords, _ := Group(events, 0.05)
	assert.Equal(t, []model.Pitch{60, 64, 67}, chords[0].Pitches())
}

func TestInvalidEventsAreSkipped(t *testing.T) {
	events := []model.NoteEvent{
		note(60, 0, 80),
		{Pitch: 62, Onset: 1.0, Offset: 1.0, Velocity: 80},
		{Pitch: 64, Onset: -0.5, Offset: 0.2, Velocity: 80},
		{Pitch: 200, Onset: 2.0, Offset: 2.5, Velocity: 80},
		{Pitch: 65, Onset: 3.0, Offset: 3.5, Velocity: 128},
	}
	chords, skipped := Group(events, 0.05)
	assert.Equal(t, 4, skipped)
	assert.Equal(t, []string{"0.000:60"}, keys(chords))
}

func TestRegroupingFlattenedChordsIsIdempotent(t *testing.T) {
	events := []model.NoteEvent{
		note(60, 0.0, 80), note(64, 0.03, 70), note(67, 0.049, 60),
		note(62, 0.051, 80), note(65, 0.09, 80),
		note(40, 0.5, 100), note(52, 0.52, 90),
		note(45, 2.0, 30),
	}
	first, _ := Group(events, 0.05)
	second, skipped := Group(Flatten(first), 0.05)

	assert.Zero(t, skipped)
	assert.Equal(t, keys(first), keys(second))
}
