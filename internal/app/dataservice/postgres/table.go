package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/campushub/portal/internal/app/models"
	"github.com/campushub/portal/internal/observability/metrics"
)

// DB is the subset of pgxpool.Pool the store needs; pgxmock satisfies it in
// tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// table binds the generic collection contract to one Postgres table. Row
// scanning goes through the record's db struct tags; values renders a record
// into its column map, and prepare fills server-assigned fields (id,
// created_at) on insert.
type table[R any] struct {
	db      DB
	name    string
	columns []string
	values  func(R) map[string]any
	prepare func(R) R
}

// observe records the elapsed time of one statement against the table.
func (t *table[R]) observe(ctx context.Context, op string, start time.Time) {
	metrics.Get().DBQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("table", t.name), attribute.String("op", op)))
}

func (t *table[R]) List(ctx context.Context) ([]R, error) {
	defer t.observe(ctx, "list", time.Now())

	query, args, err := psql.Select(t.columns...).From(t.name).OrderBy("created_at", "id").ToSql()
	if err != nil {
		return nil, errors.Wrapf(err, "build %s list query", t.name)
	}

	rows, err := t.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", t.name)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[R])
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s rows", t.name)
	}
	if items == nil {
		items = []R{}
	}
	return items, nil
}

func (t *table[R]) Create(ctx context.Context, rec R) (R, error) {
	defer t.observe(ctx, "insert", time.Now())

	rec = t.prepare(rec)

	query, args, err := psql.Insert(t.name).SetMap(t.values(rec)).ToSql()
	if err != nil {
		return rec, errors.Wrapf(err, "build %s insert", t.name)
	}
	if _, err := t.db.Exec(ctx, query, args...); err != nil {
		return rec, errors.Wrapf(err, "insert into %s", t.name)
	}
	return rec, nil
}

func (t *table[R]) Update(ctx context.Context, id uuid.UUID, rec R) (R, error) {
	defer t.observe(ctx, "update", time.Now())

	set := t.values(rec)
	delete(set, "id")
	delete(set, "created_at")

	query, args, err := psql.Update(t.name).SetMap(set).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return rec, errors.Wrapf(err, "build %s update", t.name)
	}
	tag, err := t.db.Exec(ctx, query, args...)
	if err != nil {
		return rec, errors.Wrapf(err, "update %s", t.name)
	}
	if tag.RowsAffected() == 0 {
		return rec, models.ErrNotFound
	}
	return rec, nil
}

func (t *table[R]) Delete(ctx context.Context, id uuid.UUID) error {
	defer t.observe(ctx, "delete", time.Now())

	query, args, err := psql.Delete(t.name).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return errors.Wrapf(err, "build %s delete", t.name)
	}
	tag, err := t.db.Exec(ctx, query, args...)
	if err != nil {
		return errors.Wrapf(err, "delete from %s", t.name)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
