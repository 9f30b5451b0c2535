package model

const NumStrings = 6

// Unplayed marks a string that does not sound in a chord.
const Unplayed = -1

type FretRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r FretRange) Contains(fret int) bool {
	return fret >= r.Min && fret <= r.Max
}

type Candidate struct {
	Pitch  Pitch
	String int
	Fret   int
}

// Assignment holds one fret per string index, Unplayed for unused strings.
type Assignment [NumStrings]int

func EmptyAssignment() Assignment {
	var a Assignment
	for i := range a {
		a[i] = Unplayed
	}
	return a
}

func (a Assignment) Used() int {
	var n int
	for _, f := range a {
		if f != Unplayed {
			n++
		}
	}
	return n
}

type HandPosition struct {
	CenterFret float64
}
