package healthdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/calculators"
	"github.com/2beens/fittrack/internal/goals"
	"github.com/2beens/fittrack/internal/goals/tracker"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=healthdata_test

type entriesRepo interface {
	Add(ctx context.Context, entry Entry) (*Entry, error)
	Get(ctx context.Context, id int) (*Entry, error)
	List(ctx context.Context, params ListParams) ([]Entry, int, error)
	Delete(ctx context.Context, id int) error
}

type goalObserver interface {
	Observe(ctx context.Context, owner string, metric goals.Metric, value float64) (*tracker.ObservationResult, error)
}

// AddResult is the stored entry together with the goals its values moved.
type AddResult struct {
	Entry       Entry                       `json:"entry"`
	GoalUpdates []tracker.ObservationResult `json:"goalUpdates"`
}

type Service struct {
	repo     entriesRepo
	observer goalObserver
	metrics  *metrics.Manager
	now      func() time.Time
}

func NewService(repo entriesRepo, observer goalObserver, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:     repo,
		observer: observer,
		metrics:  metricsManager,
		now:      time.Now,
	}
}

// Add stores the entry and feeds its values to the owner's active goals.
// BMI is derived from weight and height when not given.
func (s *Service) Add(ctx context.Context, entry Entry) (_ *AddResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.healthdata.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner", entry.Owner))

	entry.ID = 0
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = s.now()
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if entry.BMI == nil && entry.Weight != nil && entry.Height != nil {
		bmi, err := calculators.BMI(*entry.Weight, *entry.Height)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidEntry, err)
		}
		entry.BMI = &bmi
	}

	added, err := s.repo.Add(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("add entry: %w", err)
	}
	s.metrics.CounterHealthEntries.Inc()

	result := &AddResult{
		Entry:       *added,
		GoalUpdates: make([]tracker.ObservationResult, 0),
	}
	observations := added.Observations()
	for _, metric := range goals.AllMetrics {
		value, ok := observations[metric]
		if !ok {
			continue
		}
		update, err := s.observer.Observe(ctx, added.Owner, metric, value)
		if err != nil {
			if !errors.Is(err, tracker.ErrNoActiveGoal) {
				// the entry is stored already, a failed goal update does not undo it
				log.Errorf("entry %d: observe %s for [%s]: %s", added.ID, metric, added.Owner, err)
			}
			continue
		}
		result.GoalUpdates = append(result.GoalUpdates, *update)
	}
	span.SetAttributes(attribute.Int("goal-updates", len(result.GoalUpdates)))

	return result, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Entry, error) {
	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get entry %d: %w", id, err)
	}
	return entry, nil
}

func (s *Service) List(ctx context.Context, params ListParams) ([]Entry, int, error) {
	if params.Owner == "" {
		return nil, -1, fmt.Errorf("%w: owner empty", ErrInvalidEntry)
	}
	if params.From != nil && params.To != nil && params.To.Before(*params.From) {
		return nil, -1, fmt.Errorf("%w: <to> before <from>", ErrInvalidEntry)
	}
	return s.repo.List(ctx, params)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	return nil
}
