package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/triplog/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Tx and
// pgxmock pools. Accepting it instead of *pgxpool.Pool lets integration tests
// pass a transaction that is rolled back after each test, and unit tests
// pass a mock.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

const tripColumns = `id, start_time, end_time, events, summary, start_location, notes, created_at`

// pgTripRepo is the Postgres implementation of TripRepo. Events are stored
// as a JSONB array in the trip row so a replace is a single-row write.
type pgTripRepo struct {
	db  db
	now func() time.Time
}

// NewPostgresTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx or a pgxmock pool.
func NewPostgresTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db, now: time.Now}
}

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip, err := stamp(trip, r.now())
	if err != nil {
		return domain.Trip{}, storageErr("repo.TripRepo.Create", err)
	}
	if err := insertTrip(ctx, r.db, trip); err != nil {
		return domain.Trip{}, storageErr("repo.TripRepo.Create", err)
	}
	return trip, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	result, err := scanTrip(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return domain.Trip{}, storageErr("repo.TripRepo.GetByID", err)
	}
	return result, nil
}

// List returns all trips ordered by created_at descending (most recent first).
func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, storageErr("repo.TripRepo.List", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, storageErr("repo.TripRepo.List: scan", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("repo.TripRepo.List: rows", err)
	}

	return trips, nil
}

// Replace overwrites every stored field of a trip in one UPDATE.
func (r *pgTripRepo) Replace(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET start_time     = $2,
		    end_time       = $3,
		    events         = $4,
		    summary        = $5,
		    start_location = $6,
		    notes          = $7
		WHERE id = $1
		RETURNING ` + tripColumns

	args, err := tripArgs(trip)
	if err != nil {
		return domain.Trip{}, storageErr("repo.TripRepo.Replace", err)
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		return domain.Trip{}, storageErr("repo.TripRepo.Replace", err)
	}
	return result, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM trips WHERE id = $1`

	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return storageErr("repo.TripRepo.Delete", err)
	}
	if tag.RowsAffected() == 0 {
		return storageErr("repo.TripRepo.Delete", domain.ErrNotFound)
	}
	return nil
}

// ReplaceAll truncates the table and inserts trips inside one transaction.
func (r *pgTripRepo) ReplaceAll(ctx context.Context, trips []domain.Trip) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return storageErr("repo.TripRepo.ReplaceAll: begin", err)
	}
	// Rollback after Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM trips`); err != nil {
		return storageErr("repo.TripRepo.ReplaceAll: clear", err)
	}
	now := r.now()
	for _, t := range trips {
		t, err := stamp(t, now)
		if err != nil {
			return storageErr("repo.TripRepo.ReplaceAll", err)
		}
		if err := insertTrip(ctx, tx, t); err != nil {
			return storageErr("repo.TripRepo.ReplaceAll: insert", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return storageErr("repo.TripRepo.ReplaceAll: commit", err)
	}
	return nil
}

// DeleteAll removes every trip row.
func (r *pgTripRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM trips`); err != nil {
		return storageErr("repo.TripRepo.DeleteAll", err)
	}
	return nil
}

// execer is the write half of db, satisfied by both the pool and a pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertTrip(ctx context.Context, e execer, trip domain.Trip) error {
	const q = `
		INSERT INTO trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	args, err := tripArgs(trip)
	if err != nil {
		return err
	}
	_, err = e.Exec(ctx, q, append(args, trip.CreatedAt)...)
	return err
}

// tripArgs maps a trip onto positional arguments $1..$7 in tripColumns
// order. Events are encoded to JSON here rather than by the driver so the
// stored shape matches the export format exactly.
func tripArgs(trip domain.Trip) ([]any, error) {
	events, err := json.Marshal(trip.Events)
	if err != nil {
		return nil, err
	}
	return []any{
		trip.ID,
		trip.StartTime,
		trip.EndTime,
		events,
		trip.Summary,
		trip.StartLocation,
		trip.Notes,
	}, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t      domain.Trip
		events []byte
	)

	err := s.Scan(&t.ID, &t.StartTime, &t.EndTime, &events, &t.Summary, &t.StartLocation, &t.Notes, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	if err := json.Unmarshal(events, &t.Events); err != nil {
		return domain.Trip{}, err
	}
	// TIMESTAMPTZ keeps microseconds while the events column keeps the full
	// timestamp, so the bounds are taken from the events themselves.
	if n := len(t.Events); n > 0 {
		t.StartTime = t.Events[0].Time
		t.EndTime = t.Events[n-1].Time
	}
	return t, nil
}
