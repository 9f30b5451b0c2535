package model

type ChordNote struct {
	Pitch    Pitch
	Velocity uint8
	Duration float64
}

type Chord struct {
	Time float64

	// ordered as encountered, no duplicate pitches
	Notes []ChordNote
}

func (c Chord) Pitches() []Pitch {
	res := make([]Pitch, 0, len(c.Notes))
	for _, n := range c.Notes {
		res = append(res, n.Pitch)
	}
	return res
}
