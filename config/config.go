// Package config holds every knob of a tab conversion. Values are plain
// data passed to each call, so conversions with different settings can run
// side by side.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/jsphweid/fretdex/constants"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/solver"
	"github.com/jsphweid/fretdex/tuning"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Tuning string `json:"tuning"`

	// seconds
	GroupingWindow float64 `json:"grouping_window"`

	MaxStretch     int             `json:"max_stretch"`
	StretchPenalty float64         `json:"stretch_penalty"`
	Weights        solver.Weights  `json:"weights"`
	FretRange      model.FretRange `json:"fret_range"`
	InitialCenter  float64         `json:"initial_center"`
}

func Default() Config {
	return Config{
		Tuning:         constants.DefaultTuning,
		GroupingWindow: constants.DefaultGroupingWindow,
		MaxStretch:     constants.DefaultMaxStretch,
		StretchPenalty: constants.DefaultStretchPenalty,
		Weights: solver.Weights{
			Span:     constants.DefaultSpanWeight,
			Movement: constants.DefaultMovementWeight,
			String:   constants.DefaultStringWeight,
		},
		FretRange: model.FretRange{Min: constants.MinFret, Max: constants.MaxFret},
	}
}

func parseFloat(key string, dst *float64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, v)
	}
	*dst = f
	return nil
}

func parseInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, v)
	}
	*dst = i
	return nil
}

// FromEnv starts from Default and applies any FRETDEX_* variables that are
// set.
func FromEnv() (Config, error) {
	c := Default()
	if v := os.Getenv("FRETDEX_TUNING"); v != "" {
		c.Tuning = v
	}

	if os.Getenv("FRETDEX_WINDOW_MS") != "" {
		var windowMs float64
		if err := parseFloat("FRETDEX_WINDOW_MS", &windowMs); err != nil {
			return c, err
		}
		c.GroupingWindow = windowMs / 1000
	}

	parsers := []error{
		parseInt("FRETDEX_MAX_STRETCH", &c.MaxStretch),
		parseFloat("FRETDEX_STRETCH_PENALTY", &c.StretchPenalty),
		parseFloat("FRETDEX_SPAN_WEIGHT", &c.Weights.Span),
		parseFloat("FRETDEX_MOVEMENT_WEIGHT", &c.Weights.Movement),
		parseFloat("FRETDEX_STRING_WEIGHT", &c.Weights.String),
		parseInt("FRETDEX_MIN_FRET", &c.FretRange.Min),
		parseInt("FRETDEX_MAX_FRET", &c.FretRange.Max),
	}
	for _, err := range parsers {
		if err != nil {
			return c, err
		}
	}
	return c, nil
}

func (c Config) Validate() error {
	if _, err := tuning.Lookup(c.Tuning, c.FretRange); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch {
	case c.GroupingWindow < 0:
		return fmt.Errorf("%w: grouping window must not be negative", ErrInvalidConfig)
	case c.MaxStretch < 0:
		return fmt.Errorf("%w: max stretch must not be negative", ErrInvalidConfig)
	case c.StretchPenalty < 0:
		return fmt.Errorf("%w: stretch penalty must not be negative", ErrInvalidConfig)
	case c.Weights.Span < 0 || c.Weights.Movement < 0 || c.Weights.String < 0:
		return fmt.Errorf("%w: cost weights must not be negative, got %+v", ErrInvalidConfig, c.Weights)
	case c.FretRange.Min < constants.MinFret || c.FretRange.Max > constants.MaxFret || c.FretRange.Min > c.FretRange.Max:
		return fmt.Errorf("%w: fret range %d-%d outside %d-%d", ErrInvalidConfig,
			c.FretRange.Min, c.FretRange.Max, constants.MinFret, constants.MaxFret)
	}
	return nil
}

// SolverOptions validates c and resolves the tuning.
func (c Config) SolverOptions() (solver.Options, error) {
	if err := c.Validate(); err != nil {
		return solver.Options{}, err
	}
	tun, err := tuning.Lookup(c.Tuning, c.FretRange)
	if err != nil {
		return solver.Options{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return solver.Options{
		Tuning:         tun,
		MaxStretch:     c.MaxStretch,
		StretchPenalty: c.StretchPenalty,
		Weights:        c.Weights,
		InitialCenter:  c.InitialCenter,
	}, nil
}
