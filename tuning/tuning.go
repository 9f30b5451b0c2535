// Package tuning describes the instrument: which pitch each string sounds
// when open and how far up the neck it can be fretted.
package tuning

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jsphweid/fretdex/model"
)

var ErrUnknownTuning = errors.New("unknown tuning")

type StringSpec struct {
	Index     int         `json:"index"`
	OpenPitch model.Pitch `json:"open_pitch"`
	Label     string      `json:"label"`
}

// Tuning lists strings in display order, high e at index 0 and low E at
// index 5.
type Tuning struct {
	Name    string
	Strings [model.NumStrings]StringSpec
	Frets   model.FretRange
}

var presets = map[string][model.NumStrings]StringSpec{
	"Standard": {
		{Index: 0, OpenPitch: 64, Label: "e"},
		{Index: 1, OpenPitch: 59, Label: "B"},
		{Index: 2, OpenPitch: 55, Label: "G"},
		{Index: 3, OpenPitch: 50, Label: "D"},
		{Index: 4, OpenPitch: 45, Label: "A"},
		{Index: 5, OpenPitch: 40, Label: "E"},
	},
}

func Names() []string {
	res := make([]string, 0, len(presets))
	for name := range presets {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Lookup returns the named tuning restricted to the given fret range.
func Lookup(name string, frets model.FretRange) (Tuning, error) {
	strings, ok := presets[name]
	if !ok {
		return Tuning{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownTuning, name, Names())
	}
	return Tuning{Name: name, Strings: strings, Frets: frets}, nil
}

func (t Tuning) OpenPitch(str int) model.Pitch {
	return t.Strings[str].OpenPitch
}

func (t Tuning) PitchFor(str int, fret int) model.Pitch {
	return model.Pitch(int(t.Strings[str].OpenPitch) + fret)
}

// FretFor is the inverse of PitchFor. It reports false when the pitch is
// below the open string or above the highest fret.
func (t Tuning) FretFor(pitch model.Pitch, str int) (int, bool) {
	fret := int(pitch) - int(t.Strings[str].OpenPitch)
	if fret < 0 || !t.Frets.Contains(fret) {
		return 0, false
	}
	return fret, true
}

func (t Tuning) Lowest() model.Pitch {
	lowest := t.Strings[0].OpenPitch
	for _, s := range t.Strings {
		if s.OpenPitch < lowest {
			lowest = s.OpenPitch
		}
	}
	return lowest
}
