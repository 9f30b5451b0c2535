package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/jsphweid/fretdex/config"
	"github.com/jsphweid/fretdex/constants"
	"github.com/jsphweid/fretdex/convert"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/tab"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
)

var (
	inPort      int
	quietPeriod time.Duration
)

func init() {
	recordCmd.Flags().IntVar(&inPort, "port", 0, "MIDI input port number")
	recordCmd.Flags().DurationVar(&quietPeriod, "quiet", constants.DefaultQuietPeriod, "silence before the take is tabbed")
	rootCmd.AddCommand(recordCmd)
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Records a take from a MIDI input",
	Long: `Records notes from a MIDI input port. Whenever playing pauses for the quiet
period, the whole take so far is converted and its tab printed.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		cobra.CheckErr(err)
		cobra.CheckErr(record(cmd.Context(), cfg))
	},
}

type take struct {
	mu      sync.Mutex
	id      string
	start   time.Time
	pressed map[uint8]model.NoteEvent
	events  []model.NoteEvent
}

func newTake() *take {
	return &take{id: uuid.New().String(), pressed: make(map[uint8]model.NoteEvent)}
}

func (t *take) since(now time.Time) float64 {
	if t.start.IsZero() {
		t.start = now
	}
	return now.Sub(t.start).Seconds()
}

func (t *take) noteOn(key, velocity uint8, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pressed[key] = model.NoteEvent{Pitch: key, Onset: t.since(now), Velocity: velocity}
}

func (t *take) noteOff(key uint8, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	evt, ok := t.pressed[key]
	if !ok {
		return false
	}
	delete(t.pressed, key)
	evt.Offset = t.since(now)
	t.events = append(t.events, evt)
	return true
}

func (t *take) snapshot() []model.NoteEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	res := make([]model.NoteEvent, len(t.events))
	copy(res, t.events)
	return res
}

func printTake(t *take, cfg config.Config) {
	events := t.snapshot()
	res, err := convert.Convert(events, cfg)
	if err != nil {
		slog.Error("could not tab take", "take", t.id, "err", err)
		return
	}
	fmt.Printf("take %v: %v chords, %v notes, %v dropped\n",
		t.id, res.Stats.Chords, res.Stats.Notes, res.Stats.Dropped)
	fmt.Print(tab.Render(res.Tab, labels(cfg), tab.DefaultPerLine))
}

func record(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt)
	defer stopSignals()

	defer midi.CloseDriver()
	in, err := midi.InPort(inPort)
	if err != nil {
		return fmt.Errorf("can't find MIDI input %v: %w", inPort, err)
	}

	t := newTake()
	debounced := debounce.New(quietPeriod)

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, key, vel uint8
		now := time.Now()
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			t.noteOn(key, vel, now)
		case msg.GetNoteEnd(&ch, &key):
			if t.noteOff(key, now) {
				debounced(func() { printTake(t, cfg) })
			}
		}
	})
	if err != nil {
		return fmt.Errorf("listening to %v: %w", in, err)
	}
	slog.Info("recording", "take", t.id, "port", in.String(), "quiet", quietPeriod)

	<-ctx.Done()
	stop()
	printTake(t, cfg)
	return nil
}
