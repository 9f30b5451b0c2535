package tuning

import (
	"testing"

	"github.com/jsphweid/fretdex/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullNeck = model.FretRange{Min: 0, Max: 24}

func TestStandardTuningIsHighToLow(t *testing.T) {
	tun, err := Lookup("Standard", fullNeck)
	require.NoError(t, err)

	assert := assert.New(t)
	expected := []model.Pitch{64, 59, 55, 50, 45, 40}
	for i, p := range expected {
		assert.Equal(i, tun.Strings[i].Index)
		assert.Equal(p, tun.OpenPitch(i))
	}
	for i := 1; i < model.NumStrings; i++ {
		assert.Less(tun.OpenPitch(i), tun.OpenPitch(i-1))
	}
	assert.Equal(model.Pitch(40), tun.Lowest())
}

func TestUnknownTuning(t *testing.T) {
	_, err := Lookup("Open G", fullNeck)
	assert.ErrorIs(t, err, ErrUnknownTuning)
}

func TestFretForIsInverseOfPitchFor(t *testing.T) {
	tun, err := Lookup("Standard", fullNeck)
	require.NoError(t, err)

	for str := 0; str < model.NumStrings; str++ {
		for fret := 0; fret <= 24; fret++ {
			got, ok := tun.FretFor(tun.PitchFor(str, fret), str)
			assert.True(t, ok)
			assert.Equal(t, fret, got)
		}
	}
}

func TestFretForUnreachable(t *testing.T) {
	tun, err := Lookup("Standard", fullNeck)
	require.NoError(t, err)

	cases := []struct {
		name  string
		pitch model.Pitch
		str   int
	}{
		{"below open low E", 39, 5},
		{"below open high e", 63, 0},
		{"above fret 24 on high e", 89, 0},
		{"far below everything", 20, 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, ok := tun.FretFor(c.pitch, c.str)
			assert.False(t, ok)
		})
	}
}

func TestFretForRespectsNarrowRange(t *testing.T) {
	tun, err := Lookup("Standard", model.FretRange{Min: 0, Max: 12})
	require.NoError(t, err)

	_, ok := tun.FretFor(64+13, 0)
	assert.False(t, ok)
	fret, ok := tun.FretFor(64+12, 0)
	assert.True(t, ok)
	assert.Equal(t, 12, fret)
}
