package goals

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInvalidGoal = errors.New("invalid goal")

// Goal is a user's commitment to move one body metric from StartValue
// to TargetValue between StartDate and TargetDate.
type Goal struct {
	ID           int       `json:"id,omitempty"`
	Owner        string    `json:"owner"`
	Metric       Metric    `json:"metric"`
	StartValue   float64   `json:"startValue"`
	TargetValue  float64   `json:"targetValue"`
	CurrentValue float64   `json:"currentValue"`
	StartDate    time.Time `json:"startDate"`
	TargetDate   time.Time `json:"targetDate"`
	Status       Status    `json:"status"`
}

// Status can be one of:
//   - active
//   - completed
//   - abandoned
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

var AllStatuses = []Status{StatusActive, StatusCompleted, StatusAbandoned}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusAbandoned:
		return true
	default:
		return false
	}
}

// Direction of travel, inferred from start and target values.
type Direction string

const (
	DirectionIncreasing Direction = "increasing"
	DirectionDecreasing Direction = "decreasing"
	DirectionNone       Direction = "none"
)

func (g Goal) Direction() Direction {
	switch {
	case g.TargetValue > g.StartValue:
		return DirectionIncreasing
	case g.TargetValue < g.StartValue:
		return DirectionDecreasing
	default:
		return DirectionNone
	}
}

// Validate rejects goals the engine is not meant to see: non-finite values,
// unknown metrics or statuses, a missing owner or target date.
func (g Goal) Validate() error {
	if g.Owner == "" {
		return fmt.Errorf("%w: owner empty", ErrInvalidGoal)
	}
	if !g.Metric.IsValid() {
		return fmt.Errorf("%w: unknown metric [%s]", ErrInvalidGoal, g.Metric)
	}
	if g.Status != "" && !g.Status.IsValid() {
		return fmt.Errorf("%w: unknown status [%s]", ErrInvalidGoal, g.Status)
	}
	values := []struct {
		name  string
		value float64
	}{
		{"start value", g.StartValue},
		{"target value", g.TargetValue},
		{"current value", g.CurrentValue},
	}
	for _, v := range values {
		if !IsFinite(v.value) {
			return fmt.Errorf("%w: %s not finite", ErrInvalidGoal, v.name)
		}
	}
	if g.TargetDate.IsZero() {
		return fmt.Errorf("%w: target date empty", ErrInvalidGoal)
	}
	if !g.StartDate.IsZero() && CalendarDate(g.TargetDate).Before(CalendarDate(g.StartDate)) {
		return fmt.Errorf("%w: target date before start date", ErrInvalidGoal)
	}
	return nil
}

func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
