package calculators

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

type Result struct {
	Value    float64 `json:"value"`
	Unit     string  `json:"unit"`
	Category string  `json:"category,omitempty"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/bmi", handler.HandleBMI).Methods("GET", "OPTIONS")
	r.HandleFunc("/bmr", handler.HandleBMR).Methods("GET", "OPTIONS")
	r.HandleFunc("/tdee", handler.HandleTDEE).Methods("GET", "OPTIONS")
	r.HandleFunc("/bodyfat", handler.HandleBodyFat).Methods("GET", "OPTIONS")
	r.HandleFunc("/water", handler.HandleWaterIntake).Methods("GET", "OPTIONS")
	r.HandleFunc("/calories", handler.HandleCaloriesBurned).Methods("GET", "OPTIONS")
	r.HandleFunc("/activities", handler.HandleActivities).Methods("GET", "OPTIONS")
}

func (handler *Handler) HandleBMI(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculators.bmi")
	defer span.End()

	q := r.URL.Query()
	weight, err := floatParam(q, "weight")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	height, err := floatParam(q, "height")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bmi, err := BMI(weight, height)
	writeResult(w, Result{Value: bmi, Category: BMICategory(bmi)}, err)
}

func (handler *Handler) HandleBMR(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculators.bmr")
	defer span.End()

	bmr, err := bmrFromQuery(r.URL.Query())
	writeResult(w, Result{Value: bmr, Unit: "kcal/day"}, err)
}

func (handler *Handler) HandleTDEE(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculators.tdee")
	defer span.End()

	q := r.URL.Query()
	bmr, err := bmrFromQuery(q)
	if err != nil {
		writeResult(w, Result{}, err)
		return
	}
	tdee, err := TDEE(bmr, ActivityLevel(q.Get("activity")))
	writeResult(w, Result{Value: tdee, Unit: "kcal/day"}, err)
}

func (handler *Handler) HandleBodyFat(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculators.bodyfat")
	defer span.End()

	q := r.URL.Query()
	sex := Sex(q.Get("sex"))
	var measures [3]float64
	for i, name := range []string{"height", "waist", "neck"} {
		v, err := floatParam(q, name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		measures[i] = v
	}
	var hip float64
	if sex == SexFemale {
		v, err := floatParam(q, "hip")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		hip = v
	}

	bodyFat, err := BodyFat(sex, measures[0], measures[1], measures[2], hip)
	writeResult(w, Result{Value: bodyFat, Unit: "%"}, err)
}

func (handler *Handler) HandleWaterIntake(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculators.water")
	defer span.End()

	q := r.URL.Query()
	weight, err := floatParam(q, "weight")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	exerciseMinutes := 0
	if s := q.Get("exercise_minutes"); s != "" {
		exerciseMinutes, err = strconv.Atoi(s)
		if err != nil {
			http.Error(w, "error, parameter <exercise_minutes> NaN", http.StatusBadRequest)
			return
		}
	}

	water, err := WaterIntake(weight, exerciseMinutes)
	writeResult(w, Result{Value: water, Unit: "ml/day"}, err)
}

func (handler *Handler) HandleCaloriesBurned(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculators.calories")
	defer span.End()

	q := r.URL.Query()
	weight, err := floatParam(q, "weight")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	minutes, err := strconv.Atoi(q.Get("minutes"))
	if err != nil {
		http.Error(w, "error, parameter <minutes> NaN", http.StatusBadRequest)
		return
	}

	calories, err := CaloriesBurned(q.Get("activity"), weight, time.Duration(minutes)*time.Minute)
	writeResult(w, Result{Value: calories, Unit: "kcal"}, err)
}

func (handler *Handler) HandleActivities(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, Activities(), http.StatusOK)
}

func bmrFromQuery(q url.Values) (float64, error) {
	weight, err := floatParam(q, "weight")
	if err != nil {
		return 0, err
	}
	height, err := floatParam(q, "height")
	if err != nil {
		return 0, err
	}
	age, err := strconv.Atoi(q.Get("age"))
	if err != nil {
		return 0, fmt.Errorf("%w: parameter <age> NaN", ErrInvalidInput)
	}
	return BMR(Sex(q.Get("sex")), weight, height, age)
}

func floatParam(q url.Values, name string) (float64, error) {
	s := q.Get(name)
	if s == "" {
		return 0, fmt.Errorf("%w: parameter <%s> missing", ErrInvalidInput, name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parameter <%s> NaN", ErrInvalidInput, name)
	}
	return v, nil
}

func writeResult(w http.ResponseWriter, result Result, err error) {
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("calculator: %s", err)
		http.Error(w, "calculation failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, result, http.StatusOK)
}
