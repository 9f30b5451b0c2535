package model

// Pitch is a MIDI note number, 0-127.
type Pitch = uint8

type NoteEvent struct {
	Pitch    Pitch   `json:"pitch"`
	Onset    float64 `json:"onset"`
	Offset   float64 `json:"offset"`
	Velocity uint8   `json:"velocity"`
}

// Valid reports whether the event satisfies offset > onset >= 0 and
// stays inside the 7-bit MIDI ranges.
func (n NoteEvent) Valid() bool {
	return n.Onset >= 0 && n.Offset > n.Onset && n.Pitch <= 127 && n.Velocity <= 127
}

func (n NoteEvent) Duration() float64 {
	return n.Offset - n.Onset
}
