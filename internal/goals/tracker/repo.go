package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fittrack/internal/goals"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrGoalNotFound     = errors.New("goal not found")
	ErrActiveGoalExists = errors.New("active goal for this metric already exists")
)

type ListParams struct {
	Owner  string
	Status goals.Status // empty for all
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const goalColumns = `id, owner, metric, start_value, target_value, current_value, start_date, target_date, status`

func (r *Repo) Add(ctx context.Context, goal goals.Goal) (_ *goals.Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner", goal.Owner))
	span.SetAttributes(attribute.String("metric", goal.Metric.String()))

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO goal
				(owner, metric, start_value, target_value, current_value, start_date, target_date, status)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id;`,
		goal.Owner, goal.Metric, goal.StartValue, goal.TargetValue, goal.CurrentValue,
		goal.StartDate, goal.TargetDate, goal.Status,
	).Scan(&goal.ID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrActiveGoalExists
		}
		if pkg.IsCheckViolationError(err) {
			return nil, fmt.Errorf("%w: %s", goals.ErrInvalidGoal, err)
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("goal.id", goal.ID))
	return &goal, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *goals.Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	row := r.db.QueryRow(ctx, `SELECT `+goalColumns+` FROM goal WHERE id = $1;`, id)
	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

// GetActive returns the active goal of owner for metric, if any.
func (r *Repo) GetActive(ctx context.Context, owner string, metric goals.Metric) (_ *goals.Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.getactive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner", owner))
	span.SetAttributes(attribute.String("metric", metric.String()))

	row := r.db.QueryRow(
		ctx,
		`SELECT `+goalColumns+` FROM goal WHERE owner = $1 AND metric = $2 AND status = 'active';`,
		owner, metric,
	)
	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []goals.Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner", params.Owner))
	span.SetAttributes(attribute.String("status", params.Status.String()))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+goalColumns+`
			FROM goal
			WHERE owner = $1
				AND ($2::text = '' OR status = $2)
			ORDER BY target_date ASC, id ASC;`,
		params.Owner, params.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	list := make([]goals.Goal, 0)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		list = append(list, *goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return list, nil
}

// UpdateProgress stores a newly observed current value together with the (possibly new) status.
func (r *Repo) UpdateProgress(ctx context.Context, id int, currentValue float64, status goals.Status) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.updateprogress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))
	span.SetAttributes(attribute.String("status", status.String()))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE goal SET current_value = $1, status = $2, updated_at = now() WHERE id = $3;`,
		currentValue, status, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *Repo) UpdateStatus(ctx context.Context, id int, status goals.Status) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.updatestatus")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))
	span.SetAttributes(attribute.String("status", status.String()))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE goal SET status = $1, updated_at = now() WHERE id = $2;`,
		status, id,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrActiveGoalExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM goal WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func scanGoal(row pgx.Row) (*goals.Goal, error) {
	goal := &goals.Goal{}
	if err := row.Scan(
		&goal.ID, &goal.Owner, &goal.Metric,
		&goal.StartValue, &goal.TargetValue, &goal.CurrentValue,
		&goal.StartDate, &goal.TargetDate, &goal.Status,
	); err != nil {
		return nil, err
	}
	return goal, nil
}
