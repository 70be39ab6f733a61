package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/escolafm/portal-backend/internal/schedule"
)

type Repository interface {
	// Create inserts a booking. The unique index on
	// (date, period, class_slot, resource_id) is the authoritative
	// mutual-exclusion check; a violation surfaces as ErrSlotTaken.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	Delete(ctx context.Context, id string) error

	// ListAll returns every booking with owner display data joined.
	ListAll(ctx context.Context) ([]*Booking, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*Booking, error)
	ListDay(ctx context.Context, date time.Time, period schedule.Period) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("date", "period", "class_slot", "resource_id", "user_id").
		Values(b.Date.Format(DateLayout), b.Period, b.ClassSlot, b.ResourceID, b.OwnerID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			// Lost a race with a concurrent actor; a normal outcome.
			return ErrSlotTaken
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := r.selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var b Booking
	if err := row.Scan(
		&b.ID, &b.Date, &b.Period, &b.ClassSlot,
		&b.ResourceID, &b.ResourceName,
		&b.OwnerID, &b.OwnerName, &b.OwnerRole,
		&b.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListAll(ctx context.Context) ([]*Booking, error) {
	query, args, err := r.selectBookings().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) ListRange(ctx context.Context, from, to time.Time) ([]*Booking, error) {
	query, args, err := r.selectBookings().
		Where(squirrel.GtOrEq{"b.date": from.Format(DateLayout)}).
		Where(squirrel.LtOrEq{"b.date": to.Format(DateLayout)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) ListDay(ctx context.Context, date time.Time, period schedule.Period) ([]*Booking, error) {
	query, args, err := r.selectBookings().
		Where(squirrel.Eq{"b.date": date.Format(DateLayout)}).
		Where(squirrel.Eq{"b.period": period}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) selectBookings() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(
		"b.id", "b.date", "b.period", "b.class_slot",
		"b.resource_id", "r.name",
		"b.user_id", "u.name", "u.role",
		"b.created_at",
	).
		From("public.bookings b").
		Join("public.resources r ON b.resource_id = r.id").
		Join("public.users u ON b.user_id = u.id").
		OrderBy("b.date ASC", "b.period ASC", "b.class_slot ASC", "b.created_at ASC")
}

func (r *pgxRepository) queryBookings(ctx context.Context, query string, args []interface{}) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.Date, &b.Period, &b.ClassSlot,
			&b.ResourceID, &b.ResourceName,
			&b.OwnerID, &b.OwnerName, &b.OwnerRole,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, nil
}
