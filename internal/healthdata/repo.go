package healthdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrEntryNotFound = errors.New("health entry not found")

type ListParams struct {
	Owner string
	From  *time.Time
	To    *time.Time
	Page  int
	Size  int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const entryColumns = `id, owner, weight, height, bmi, body_fat, water_intake, recorded_at`

func (r *Repo) Add(ctx context.Context, entry Entry) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.healthdata.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner", entry.Owner))

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO health_entry
				(owner, weight, height, bmi, body_fat, water_intake, recorded_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id;`,
		entry.Owner, entry.Weight, entry.Height, entry.BMI, entry.BodyFat, entry.WaterIntake,
		entry.RecordedAt,
	).Scan(&entry.ID)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("entry.id", entry.ID))
	return &entry, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.healthdata.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	row := r.db.QueryRow(ctx, `SELECT `+entryColumns+` FROM health_entry WHERE id = $1;`, id)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// List returns a page of the owner's entries, newest first, and the total count.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Entry, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.healthdata.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner", params.Owner))
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	countAll, err := r.Count(ctx, params)
	if err != nil {
		return nil, -1, err
	}
	span.SetAttributes(attribute.Int("count_all", countAll))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+entryColumns+`
			FROM health_entry
			WHERE owner = $1
				AND ($2::timestamptz IS NULL OR recorded_at >= $2)
				AND ($3::timestamptz IS NULL OR recorded_at <= $3)
			ORDER BY recorded_at DESC, id DESC
			LIMIT $4
			OFFSET $5;`,
		params.Owner, params.From, params.To,
		params.Size, (params.Page-1)*params.Size,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	entries := make([]Entry, 0, params.Size)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, -1, fmt.Errorf("scan: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	return entries, countAll, nil
}

func (r *Repo) Count(ctx context.Context, params ListParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.healthdata.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	if err := r.db.QueryRow(
		ctx,
		`
			SELECT COUNT(*) FROM health_entry
			WHERE owner = $1
				AND ($2::timestamptz IS NULL OR recorded_at >= $2)
				AND ($3::timestamptz IS NULL OR recorded_at <= $3);`,
		params.Owner, params.From, params.To,
	).Scan(&count); err != nil {
		return -1, err
	}
	return count, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.healthdata.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM health_entry WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func scanEntry(row pgx.Row) (*Entry, error) {
	entry := &Entry{}
	if err := row.Scan(
		&entry.ID, &entry.Owner,
		&entry.Weight, &entry.Height, &entry.BMI, &entry.BodyFat, &entry.WaterIntake,
		&entry.RecordedAt,
	); err != nil {
		return nil, err
	}
	return entry, nil
}
