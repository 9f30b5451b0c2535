package midi

import (
	"fmt"
	"sort"

	"github.com/jsphweid/fretdex/constants"
	"github.com/jsphweid/fretdex/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func NoteName(pitch model.Pitch) string {
	return fmt.Sprintf("%s%d", noteNames[pitch%12], int(pitch)/12-1)
}

type noteKey struct {
	channel uint8
	key     uint8
}

type openNote struct {
	onset    int64
	velocity uint8
}

type channelNote struct {
	channel uint8
	note    model.NoteEvent
}

type scan struct {
	notes        []channelNote
	tempoChanges int
	end          int64
}

func micros(us int64) float64 {
	return float64(us) / 1e6
}

func scanSMF(s *smf.SMF) scan {
	var res scan
	for _, track := range s.Tracks {
		pressed := make(map[noteKey][]openNote)
		var absTicks int64
		var last int64
		release := func(k noteKey, at int64) {
			open := pressed[k]
			if len(open) == 0 {
				return
			}
			// first on, first off
			n := open[0]
			pressed[k] = open[1:]
			res.notes = append(res.notes, channelNote{
				channel: k.channel,
				note: model.NoteEvent{
					Pitch:    k.key,
					Onset:    micros(n.onset),
					Offset:   micros(at),
					Velocity: n.velocity,
				},
			})
		}

		for _, event := range track {
			absTicks += int64(event.Delta)
			absTime := s.TimeAt(absTicks)
			last = absTime

			var channel, key, velocity uint8
			var bpm float64
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				k := noteKey{channel, key}
				if velocity == 0 {
					release(k, absTime)
				} else {
					pressed[k] = append(pressed[k], openNote{onset: absTime, velocity: velocity})
				}
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				release(noteKey{channel, key}, absTime)
			case event.Message.GetMetaTempo(&bpm):
				res.tempoChanges++
			}
		}

		// notes still held when the track ends stop there
		for k := range pressed {
			for len(pressed[k]) > 0 {
				release(k, last)
			}
		}
		if last > res.end {
			res.end = last
		}
	}

	sort.SliceStable(res.notes, func(i, j int) bool {
		a, b := res.notes[i].note, res.notes[j].note
		if a.Onset != b.Onset {
			return a.Onset < b.Onset
		}
		return a.Pitch < b.Pitch
	})
	return res
}

// NoteEvents flattens every track of s into note events in seconds, leaving
// out the drum channel.
func NoteEvents(s *smf.SMF) []model.NoteEvent {
	var res []model.NoteEvent
	for _, cn := range scanSMF(s).notes {
		if cn.channel == constants.DrumChannel {
			continue
		}
		res = append(res, cn.note)
	}
	return res
}

type PitchRange struct {
	Min model.Pitch `json:"min"`
	Max model.Pitch `json:"max"`
}

type ChannelInfo struct {
	Channel   uint8      `json:"channel"`
	NoteCount int        `json:"note_count"`
	Pitches   PitchRange `json:"pitch_range"`
}

type Analysis struct {
	Duration     float64       `json:"duration"`
	TempoChanges int           `json:"tempo_changes"`
	Channels     []ChannelInfo `json:"channels"`
	TotalNotes   int           `json:"total_notes"`
	Pitches      PitchRange    `json:"pitch_range"`
}

func widen(r *PitchRange, p model.Pitch, first bool) {
	if first || p < r.Min {
		r.Min = p
	}
	if first || p > r.Max {
		r.Max = p
	}
}

// Analyze summarizes the pitched content of s. The drum channel is left
// out.
func Analyze(s *smf.SMF) Analysis {
	sc := scanSMF(s)
	res := Analysis{Duration: micros(sc.end), TempoChanges: sc.tempoChanges}

	byChannel := make(map[uint8]*ChannelInfo)
	for _, cn := range sc.notes {
		if cn.channel == constants.DrumChannel {
			continue
		}
		info, ok := byChannel[cn.channel]
		if !ok {
			info = &ChannelInfo{Channel: cn.channel}
			byChannel[cn.channel] = info
		}
		widen(&info.Pitches, cn.note.Pitch, info.NoteCount == 0)
		widen(&res.Pitches, cn.note.Pitch, res.TotalNotes == 0)
		info.NoteCount++
		res.TotalNotes++
	}

	for _, info := range byChannel {
		res.Channels = append(res.Channels, *info)
	}
	sort.Slice(res.Channels, func(i, j int) bool {
		return res.Channels[i].Channel < res.Channels[j].Channel
	})
	return res
}
