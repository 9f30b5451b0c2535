package tab

import (
	"fmt"
	"strings"

	"github.com/jsphweid/fretdex/model"
)

const DefaultPerLine = 8

func cell(fret int, width int) string {
	if fret == model.Unplayed {
		return strings.Repeat("-", width+1)
	}
	s := fmt.Sprintf("%d", fret)
	return "-" + s + strings.Repeat("-", width-len(s))
}

func columnWidth(e model.TabEntry) int {
	width := 1
	for _, fret := range e.Strings {
		if fret >= 10 {
			width = 2
		}
	}
	return width
}

// Render draws seq as plain-text tablature, perLine chords per system with
// labels naming strings 0 to 5 from top to bottom.
func Render(seq model.TabSequence, labels [model.NumStrings]string, perLine int) string {
	if perLine <= 0 {
		perLine = DefaultPerLine
	}
	var b strings.Builder
	for start := 0; start < len(seq); start += perLine {
		end := start + perLine
		if end > len(seq) {
			end = len(seq)
		}
		if start > 0 {
			b.WriteString("\n")
		}
		for str := 0; str < model.NumStrings; str++ {
			b.WriteString(labels[str])
			b.WriteString("|")
			for _, e := range seq[start:end] {
				b.WriteString(cell(e.Strings[str], columnWidth(e)))
			}
			b.WriteString("-|\n")
		}
	}
	return b.String()
}
