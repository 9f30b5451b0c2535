package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/fretdex/model"
)

// CreateChordKey returns a canonical "a-b-c" key of the sorted pitches. The
// input slice is not modified.
func CreateChordKey(notes []model.Pitch) string {
	sorted := make([]model.Pitch, len(notes))
	copy(sorted, notes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	var res string
	for i, note := range sorted {
		res += fmt.Sprintf("%v", note)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}

func sortEvents(events []model.NoteEvent) []model.NoteEvent {
	sorted := make([]model.NoteEvent, len(events))
	copy(sorted, events)
	// ties on onset go to the lower pitch
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Onset != sorted[j].Onset {
			return sorted[i].Onset < sorted[j].Onset
		}
		return sorted[i].Pitch < sorted[j].Pitch
	})
	return sorted
}

func addNote(c *model.Chord, evt model.NoteEvent) {
	for i, n := range c.Notes {
		if n.Pitch == evt.Pitch {
			// doubled note, keep the strongest and longest
			if evt.Velocity > n.Velocity {
				c.Notes[i].Velocity = evt.Velocity
			}
			if evt.Duration() > n.Duration {
				c.Notes[i].Duration = evt.Duration()
			}
			return
		}
	}
	c.Notes = append(c.Notes, model.ChordNote{
		Pitch:    evt.Pitch,
		Velocity: evt.Velocity,
		Duration: evt.Duration(),
	})
}

// Group partitions events into chords by onset. An event joins the current
// chord when its onset is within window seconds of the chord's first onset,
// otherwise it starts a new chord. Invalid events are left out and counted.
// The input is not trusted to be sorted.
func Group(events []model.NoteEvent, window float64) ([]model.Chord, int) {
	var chords []model.Chord
	var skipped int

	var current *model.Chord
	for _, evt := range sortEvents(events) {
		if !evt.Valid() {
			skipped++
			continue
		}
		if current == nil || evt.Onset-current.Time > window {
			chords = append(chords, model.Chord{Time: evt.Onset})
			current = &chords[len(chords)-1]
		}
		addNote(current, evt)
	}

	return chords, skipped
}

// Flatten expands chords back into note events, each placed at its chord's
// time.
func Flatten(chords []model.Chord) []model.NoteEvent {
	var res []model.NoteEvent
	for _, c := range chords {
		for _, n := range c.Notes {
			res = append(res, model.NoteEvent{
				Pitch:    n.Pitch,
				Onset:    c.Time,
				Offset:   c.Time + n.Duration,
				Velocity: n.Velocity,
			})
		}
	}
	return res
}
