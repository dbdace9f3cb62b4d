package goals

import (
	"math"
	"time"
)

// ComputeProgress returns the percentage (0-100) of the distance from the start
// value to the target value covered by the current value.
// A zero-width goal (start == target) is binary: 100 when current hits the target, 0 otherwise.
func ComputeProgress(g Goal) float64 {
	start, target, current := g.StartValue, g.TargetValue, g.CurrentValue

	if start == target {
		if current == target {
			return 100
		}
		return 0
	}

	var progress float64
	if target < start {
		switch {
		case current <= target:
			return 100
		case current >= start:
			return 0
		}
		progress = ratio(start, current, start, target)
	} else {
		switch {
		case current >= target:
			return 100
		case current <= start:
			return 0
		}
		progress = ratio(current, start, target, start)
	}

	// float rounding can push a value just outside the range
	if math.IsNaN(progress) || progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// ratio is (a-b)/(c-d) as a percentage. Differences of values far apart in
// the float64 range overflow, those are taken on halved operands.
func ratio(a, b, c, d float64) float64 {
	num, den := a-b, c-d
	if math.IsInf(num, 0) || math.IsInf(den, 0) {
		num, den = a/2-b/2, c/2-d/2
	}
	return num / den * 100
}

// Progress is the dashboard view of a single goal.
type Progress struct {
	Goal          Goal      `json:"goal"`
	Percentage    float64   `json:"percentage"`
	RemainingDays int       `json:"remainingDays"`
	Direction     Direction `json:"direction"`
	Label         string    `json:"label"`
	Unit          string    `json:"unit"`
}

// NewProgress builds the progress view of g as seen at now.
func NewProgress(g Goal, now time.Time) Progress {
	return Progress{
		Goal:          g,
		Percentage:    ComputeProgress(g),
		RemainingDays: RemainingDaysAt(now, g.TargetDate),
		Direction:     g.Direction(),
		Label:         g.Metric.Label(),
		Unit:          g.Metric.Unit(),
	}
}
