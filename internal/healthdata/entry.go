package healthdata

import (
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/goals"
)

var ErrInvalidEntry = errors.New("invalid health entry")

// Entry is one dated set of measurements. Only the measured values are set.
type Entry struct {
	ID          int       `json:"id,omitempty"`
	Owner       string    `json:"owner"`
	Weight      *float64  `json:"weight,omitempty"`
	Height      *float64  `json:"height,omitempty"`
	BMI         *float64  `json:"bmi,omitempty"`
	BodyFat     *float64  `json:"bodyFat,omitempty"`
	WaterIntake *float64  `json:"waterIntake,omitempty"`
	RecordedAt  time.Time `json:"recordedAt"`
}

func (e Entry) Validate() error {
	if e.Owner == "" {
		return fmt.Errorf("%w: owner empty", ErrInvalidEntry)
	}
	values := []struct {
		name  string
		value *float64
	}{
		{"weight", e.Weight},
		{"height", e.Height},
		{"bmi", e.BMI},
		{"body fat", e.BodyFat},
		{"water intake", e.WaterIntake},
	}
	measured := false
	for _, v := range values {
		if v.value == nil {
			continue
		}
		measured = true
		if !goals.IsFinite(*v.value) || *v.value < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidEntry, v.name)
		}
	}
	if !measured {
		return fmt.Errorf("%w: no measurements", ErrInvalidEntry)
	}
	return nil
}

// Observations maps the measured values of e to the goal metrics they feed.
// Height has no goal metric and is left out.
func (e Entry) Observations() map[goals.Metric]float64 {
	observations := make(map[goals.Metric]float64)
	if e.Weight != nil {
		observations[goals.MetricWeight] = *e.Weight
	}
	if e.BMI != nil {
		observations[goals.MetricBMI] = *e.BMI
	}
	if e.BodyFat != nil {
		observations[goals.MetricBodyFat] = *e.BodyFat
	}
	if e.WaterIntake != nil {
		observations[goals.MetricWaterIntake] = *e.WaterIntake
	}
	return observations
}
