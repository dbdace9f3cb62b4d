package goals

// Evaluation is the outcome of feeding a newly observed value to a goal.
// It is a recommendation only; applying it is up to the caller.
type Evaluation struct {
	NewCurrentValue   float64 `json:"newCurrentValue"`
	RecommendedStatus Status  `json:"recommendedStatus"`
}

// Completes reports whether the evaluation recommends completing the goal.
func (e Evaluation) Completes() bool {
	return e.RecommendedStatus == StatusCompleted
}

// EvaluateObservation sets the observed value as the goal's new current value and
// recommends StatusCompleted once the value reached or passed the target in the
// goal's direction. Otherwise the goal's status is left as is.
func EvaluateObservation(g Goal, observed float64) Evaluation {
	eval := Evaluation{
		NewCurrentValue:   observed,
		RecommendedStatus: g.Status,
	}
	if eval.RecommendedStatus == "" {
		eval.RecommendedStatus = StatusActive
	}

	if TargetReached(g, observed) {
		eval.RecommendedStatus = StatusCompleted
	}
	return eval
}

// TargetReached reports whether value reached or passed the target of g.
// Zero-width goals are reached only by hitting the target exactly.
func TargetReached(g Goal, value float64) bool {
	switch g.Direction() {
	case DirectionIncreasing:
		return value >= g.TargetValue
	case DirectionDecreasing:
		return value <= g.TargetValue
	default:
		return value == g.TargetValue
	}
}
