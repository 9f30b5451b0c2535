package solver

import (
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/tuning"
)

// Candidates lists every (string, fret) that sounds pitch, by ascending
// string index.
func Candidates(t tuning.Tuning, pitch model.Pitch) []model.Candidate {
	var res []model.Candidate
	for str := 0; str < model.NumStrings; str++ {
		if fret, ok := t.FretFor(pitch, str); ok {
			res = append(res, model.Candidate{Pitch: pitch, String: str, Fret: fret})
		}
	}
	return res
}
