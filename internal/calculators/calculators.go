package calculators

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

var ErrInvalidInput = errors.New("invalid input")

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

func (s Sex) IsValid() bool {
	return s == SexMale || s == SexFemale
}

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

var activityFactors = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// metValues are metabolic equivalents of common activities.
var metValues = map[string]float64{
	"walking":           3.5,
	"hiking":            6.0,
	"running":           9.8,
	"cycling":           7.5,
	"swimming":          6.0,
	"rowing":            7.0,
	"strength_training": 5.0,
	"hiit":              8.0,
	"yoga":              2.5,
	"dancing":           5.5,
}

const (
	waterMlPerKg             = 35
	waterMlPerExerciseMinute = 12
)

// BMI expects height in centimeters and weight in kilograms.
func BMI(weightKg, heightCm float64) (float64, error) {
	if !positive(weightKg) || !positive(heightCm) {
		return 0, fmt.Errorf("%w: height and weight must be positive", ErrInvalidInput)
	}
	// sanity checks to avoid garbage input
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, fmt.Errorf("%w: height/weight out of plausible range", ErrInvalidInput)
	}

	h := heightCm / 100.0
	return weightKg / (h * h), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}

// BMR is the basal metabolic rate in kcal/day, Mifflin-St Jeor equation.
func BMR(sex Sex, weightKg, heightCm float64, age int) (float64, error) {
	if !sex.IsValid() {
		return 0, fmt.Errorf("%w: unknown sex [%s]", ErrInvalidInput, sex)
	}
	if !positive(weightKg) || !positive(heightCm) {
		return 0, fmt.Errorf("%w: height and weight must be positive", ErrInvalidInput)
	}
	if age <= 0 || age > 130 {
		return 0, fmt.Errorf("%w: age out of range", ErrInvalidInput)
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == SexMale {
		return bmr + 5, nil
	}
	return bmr - 161, nil
}

// TDEE is the total daily energy expenditure for the given BMR and activity level.
func TDEE(bmr float64, level ActivityLevel) (float64, error) {
	if !positive(bmr) {
		return 0, fmt.Errorf("%w: bmr must be positive", ErrInvalidInput)
	}
	factor, ok := activityFactors[level]
	if !ok {
		return 0, fmt.Errorf("%w: unknown activity level [%s]", ErrInvalidInput, level)
	}
	return bmr * factor, nil
}

// BodyFat estimates body fat percentage with the US Navy method.
// hipCm is only used for females.
func BodyFat(sex Sex, heightCm, waistCm, neckCm, hipCm float64) (float64, error) {
	if !sex.IsValid() {
		return 0, fmt.Errorf("%w: unknown sex [%s]", ErrInvalidInput, sex)
	}
	if !positive(heightCm) || !positive(waistCm) || !positive(neckCm) {
		return 0, fmt.Errorf("%w: height, waist and neck must be positive", ErrInvalidInput)
	}

	var bodyFat float64
	if sex == SexMale {
		if waistCm <= neckCm {
			return 0, fmt.Errorf("%w: waist must be larger than neck", ErrInvalidInput)
		}
		bodyFat = 495/(1.0324-0.19077*math.Log10(waistCm-neckCm)+0.15456*math.Log10(heightCm)) - 450
	} else {
		if !positive(hipCm) {
			return 0, fmt.Errorf("%w: hip must be positive", ErrInvalidInput)
		}
		if waistCm+hipCm <= neckCm {
			return 0, fmt.Errorf("%w: waist and hip must be larger than neck", ErrInvalidInput)
		}
		bodyFat = 495/(1.29579-0.35004*math.Log10(waistCm+hipCm-neckCm)+0.22100*math.Log10(heightCm)) - 450
	}

	if bodyFat < 0 || math.IsNaN(bodyFat) || math.IsInf(bodyFat, 0) {
		return 0, fmt.Errorf("%w: measurements out of plausible range", ErrInvalidInput)
	}
	return bodyFat, nil
}

// WaterIntake is the recommended daily water intake in milliliters.
func WaterIntake(weightKg float64, exerciseMinutes int) (float64, error) {
	if !positive(weightKg) {
		return 0, fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	if exerciseMinutes < 0 {
		return 0, fmt.Errorf("%w: exercise minutes negative", ErrInvalidInput)
	}
	return weightKg*waterMlPerKg + float64(exerciseMinutes)*waterMlPerExerciseMinute, nil
}

// CaloriesBurned estimates burned kcal as MET * kg * hours.
func CaloriesBurned(activity string, weightKg float64, duration time.Duration) (float64, error) {
	met, ok := metValues[activity]
	if !ok {
		return 0, fmt.Errorf("%w: unknown activity [%s]", ErrInvalidInput, activity)
	}
	if !positive(weightKg) {
		return 0, fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	return met * weightKg * duration.Hours(), nil
}

// Activities lists the activities known to CaloriesBurned, sorted.
func Activities() []string {
	activities := make([]string, 0, len(metValues))
	for a := range metValues {
		activities = append(activities, a)
	}
	sort.Strings(activities)
	return activities
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
