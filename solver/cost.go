package solver

import (
	"math"

	"github.com/jsphweid/fretdex/model"
)

type Weights struct {
	Span     float64 `json:"span"`
	Movement float64 `json:"movement"`
	String   float64 `json:"string"`
}

type Breakdown struct {
	Span         int
	Center       float64
	Movement     float64
	OuterStrings int
	Total        float64
}

func isOuter(str int) bool {
	return str == 0 || str == model.NumStrings-1
}

// fretted returns the span and mean of the non-open frets. ok is false when
// nothing is fretted.
func fretted(a model.Assignment) (span int, center float64, ok bool) {
	lo, hi := math.MaxInt, math.MinInt
	var sum, n int
	for _, f := range a {
		if f == model.Unplayed || f == 0 {
			continue
		}
		if f < lo {
			lo = f
		}
		if f > hi {
			hi = f
		}
		sum += f
		n++
	}
	if n == 0 {
		return 0, 0, false
	}
	return hi - lo, float64(sum) / float64(n), true
}

func outerStrings(a model.Assignment) int {
	var n int
	for str, f := range a {
		if f != model.Unplayed && isOuter(str) {
			n++
		}
	}
	return n
}

// CenterFret is the mean fretted position of a. Open strings do not move the
// hand, so an assignment with nothing fretted keeps prev.
func CenterFret(a model.Assignment, prev model.HandPosition) float64 {
	if _, center, ok := fretted(a); ok {
		return center
	}
	return prev.CenterFret
}

func (o Options) spanCost(span int) float64 {
	cost := float64(span)
	if over := span - o.MaxStretch; over > 0 {
		cost += o.StretchPenalty * float64(over)
	}
	return cost
}

// Cost scores a complete assignment against the hand position left by the
// previous chord.
func (o Options) Cost(a model.Assignment, prev model.HandPosition) Breakdown {
	span, _, _ := fretted(a)
	center := CenterFret(a, prev)
	b := Breakdown{
		Span:         span,
		Center:       center,
		Movement:     math.Abs(center - prev.CenterFret),
		OuterStrings: outerStrings(a),
	}
	b.Total = o.Weights.Span*o.spanCost(b.Span) +
		o.Weights.Movement*b.Movement +
		o.Weights.String*float64(b.OuterStrings)
	return b
}

// lowerBound never exceeds the cost of any completion of a partial
// assignment: span and outer string use only grow as strings are added.
func (o Options) lowerBound(partial model.Assignment) float64 {
	span, _, _ := fretted(partial)
	return o.Weights.Span*o.spanCost(span) + o.Weights.String*float64(outerStrings(partial))
}
