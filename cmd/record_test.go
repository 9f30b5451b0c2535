package cmd

import (
	"testing"
	"time"

	"github.com/jsphweid/fretdex/config"
	"github.com/jsphweid/fretdex/convert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakeCollectsNotes(t *testing.T) {
	tk := newTake()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tk.noteOn(60, 90, start)
	tk.noteOn(64, 80, start.Add(10*time.Millisecond))
	assert.False(t, tk.noteOff(67, start.Add(20*time.Millisecond)), "never pressed")
	assert.True(t, tk.noteOff(60, start.Add(500*time.Millisecond)))
	assert.True(t, tk.noteOff(64, start.Add(500*time.Millisecond)))

	events := tk.snapshot()
	require.Len(t, events, 2)
	assert.Equal(t, 0.0, events[0].Onset)
	assert.InDelta(t, 0.5, events[0].Offset, 1e-9)
	assert.InDelta(t, 0.01, events[1].Onset, 1e-9)

	res, err := convert.Convert(events, config.Default())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.Chords)
	assert.Equal(t, 2, res.Stats.Notes)
}
