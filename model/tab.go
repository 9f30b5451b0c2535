package model

type TabEntry struct {
	Time      float64         `json:"time"`
	Strings   [NumStrings]int `json:"strings"`
	Duration  float64         `json:"duration"`
	NoteCount int             `json:"note_count"`
	Dropped   int             `json:"dropped,omitempty"`
}

type TabSequence = []TabEntry

type Stats struct {
	Chords      int `json:"chords"`
	Notes       int `json:"notes"`
	StringsUsed int `json:"strings_used"`
	MinFret     int `json:"min_fret"`
	MaxFret     int `json:"max_fret"`
	Dropped     int `json:"dropped"`
	Skipped     int `json:"skipped"`
}

type Result struct {
	Tab   TabSequence `json:"tab"`
	Stats Stats       `json:"stats"`
}
