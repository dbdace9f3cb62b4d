package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/cache"
	"github.com/2beens/fittrack/internal/goals"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=repo_mocks_test.go -package=tracker_test

var ErrNoActiveGoal = errors.New("no active goal for metric")

type goalsRepo interface {
	Add(ctx context.Context, goal goals.Goal) (*goals.Goal, error)
	Get(ctx context.Context, id int) (*goals.Goal, error)
	GetActive(ctx context.Context, owner string, metric goals.Metric) (*goals.Goal, error)
	List(ctx context.Context, params ListParams) ([]goals.Goal, error)
	UpdateProgress(ctx context.Context, id int, currentValue float64, status goals.Status) error
	UpdateStatus(ctx context.Context, id int, status goals.Status) error
	Delete(ctx context.Context, id int) error
}

// ObservationResult tells what happened to the active goal after a new measurement.
type ObservationResult struct {
	Goal       goals.Goal       `json:"goal"`
	Evaluation goals.Evaluation `json:"evaluation"`
	Completed  bool             `json:"completed"`
	Progress   float64          `json:"progress"`
}

type Service struct {
	repo    goalsRepo
	cache   *cache.GoalsCache
	metrics *metrics.Manager
	now     func() time.Time
}

type ServiceOption func(*Service)

// WithClock overrides the time source used for start dates and remaining days.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(
	repo goalsRepo,
	goalsCache *cache.GoalsCache,
	metricsManager *metrics.Manager,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		repo:    repo,
		cache:   goalsCache,
		metrics: metricsManager,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new active goal. The current value starts at the start value
// and the start date defaults to today.
func (s *Service) Create(ctx context.Context, goal goals.Goal) (_ *goals.Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	goal.ID = 0
	goal.Status = goals.StatusActive
	goal.CurrentValue = goal.StartValue
	if goal.StartDate.IsZero() {
		// goal dates are UTC calendar dates
		goal.StartDate = s.now().UTC()
	}
	goal.StartDate = goals.CalendarDate(goal.StartDate)
	goal.TargetDate = goals.CalendarDate(goal.TargetDate)

	if err := goal.Validate(); err != nil {
		return nil, err
	}

	added, err := s.repo.Add(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("add goal: %w", err)
	}
	s.cache.InvalidateOwner(added.Owner)
	s.metrics.CounterGoalsCreated.WithLabelValues(added.Metric.String()).Inc()

	log.Debugf("goal %d created for [%s]: %s %v -> %v", added.ID, added.Owner, added.Metric, added.StartValue, added.TargetValue)
	return added, nil
}

func (s *Service) Get(ctx context.Context, id int) (_ *goals.Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	goal, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get goal %d: %w", id, err)
	}
	return goal, nil
}

// List returns goals of owner, optionally filtered by status.
func (s *Service) List(ctx context.Context, owner string, status goals.Status) (_ []goals.Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if status != "" && !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status [%s]", goals.ErrInvalidGoal, status)
	}

	if cached, found := s.cache.Get(owner, status); found {
		span.SetAttributes(attribute.Bool("cache-hit", true))
		return cached, nil
	}

	list, err := s.repo.List(ctx, ListParams{Owner: owner, Status: status})
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	s.cache.Set(owner, status, list)
	return list, nil
}

func (s *Service) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	goal, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get goal %d: %w", id, err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete goal %d: %w", id, err)
	}
	s.cache.InvalidateOwner(goal.Owner)
	return nil
}

// SetStatus applies an externally requested status change (abandon, restart, manual completion).
// Any transition between the three states is allowed.
func (s *Service) SetStatus(ctx context.Context, id int, status goals.Status) (_ *goals.Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.setstatus")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("status", status.String()))

	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status [%s]", goals.ErrInvalidGoal, status)
	}

	goal, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get goal %d: %w", id, err)
	}
	if goal.Status == status {
		return goal, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update goal %d status: %w", id, err)
	}
	s.cache.InvalidateOwner(goal.Owner)

	log.Debugf("goal %d status: %s -> %s", id, goal.Status, status)
	goal.Status = status
	return goal, nil
}

// Observe feeds a newly measured value of metric to the owner's active goal,
// stores the new current value and completes the goal when the target is reached.
func (s *Service) Observe(ctx context.Context, owner string, metric goals.Metric, value float64) (_ *ObservationResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.observe")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner", owner))
	span.SetAttributes(attribute.String("metric", metric.String()))

	if !metric.IsValid() {
		return nil, fmt.Errorf("%w: unknown metric [%s]", goals.ErrInvalidGoal, metric)
	}
	if !goals.IsFinite(value) {
		return nil, fmt.Errorf("%w: observed value not finite", goals.ErrInvalidGoal)
	}

	goal, err := s.repo.GetActive(ctx, owner, metric)
	if err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			return nil, ErrNoActiveGoal
		}
		return nil, fmt.Errorf("get active goal: %w", err)
	}

	eval := goals.EvaluateObservation(*goal, value)
	if err := s.repo.UpdateProgress(ctx, goal.ID, eval.NewCurrentValue, eval.RecommendedStatus); err != nil {
		return nil, fmt.Errorf("update goal %d progress: %w", goal.ID, err)
	}
	s.cache.InvalidateOwner(owner)
	s.metrics.CounterObservations.WithLabelValues(metric.String()).Inc()

	goal.CurrentValue = eval.NewCurrentValue
	goal.Status = eval.RecommendedStatus
	if eval.Completes() {
		s.metrics.CounterGoalsCompleted.WithLabelValues(metric.String()).Inc()
		log.Infof("goal %d of [%s] completed: %s reached %v", goal.ID, owner, metric, value)
	}

	return &ObservationResult{
		Goal:       *goal,
		Evaluation: eval,
		Completed:  eval.Completes(),
		Progress:   goals.ComputeProgress(*goal),
	}, nil
}

func (s *Service) Progress(ctx context.Context, id int) (_ *goals.Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	goal, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get goal %d: %w", id, err)
	}
	progress := goals.NewProgress(*goal, s.now())
	return &progress, nil
}

// ListProgress is the dashboard view of all goals of owner.
func (s *Service) ListProgress(ctx context.Context, owner string, status goals.Status) ([]goals.Progress, error) {
	list, err := s.List(ctx, owner, status)
	if err != nil {
		return nil, err
	}
	now := s.now()
	progressList := make([]goals.Progress, 0, len(list))
	for _, g := range list {
		progressList = append(progressList, goals.NewProgress(g, now))
	}
	return progressList, nil
}
