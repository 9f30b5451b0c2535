package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/fretdex/midi"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/util"
)

// loadEvents reads a MIDI file, or a JSON array of note events as produced
// by a transcription step.
func loadEvents(path string) ([]model.NoteEvent, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dat, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var events []model.NoteEvent
		if err := json.Unmarshal(dat, &events); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return events, nil
	}
	if !util.IsMidiPath(path) {
		return nil, fmt.Errorf("%s: expected .mid, .midi or .json", path)
	}
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return nil, err
	}
	return midi.NoteEvents(s), nil
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
