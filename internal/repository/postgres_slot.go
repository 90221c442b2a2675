package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/locvowork/hr_dashboard/internal/repository/builder"
)

const slotTable = "bookmark_slots"

const createSlotTable = `
	CREATE TABLE IF NOT EXISTS bookmark_slots (
		name       TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)
`

// PostgresSlot stores the slot as one row of bookmark_slots.
type PostgresSlot struct {
	db   *sql.DB
	name string
	now  func() time.Time
}

// NewPostgresSlot creates a slot stored in db under name.
func NewPostgresSlot(db *sql.DB, name string) *PostgresSlot {
	return &PostgresSlot{db: db, name: name, now: func() time.Time { return time.Now().UTC() }}
}

// EnsureSchema creates the backing table when missing.
func (s *PostgresSlot) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createSlotTable); err != nil {
		return fmt.Errorf("failed to create %s: %w", slotTable, err)
	}
	return nil
}

func (s *PostgresSlot) Name() string { return s.name }

func (s *PostgresSlot) Read(ctx context.Context) ([]byte, error) {
	query, args := builder.NewSQLBuilder().
		Select("payload").
		From(slotTable).
		Where("name = ?", s.name).
		Build()

	var payload string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", s.name, err)
	}
	if payload == "" {
		return nil, nil
	}
	return []byte(payload), nil
}

// Update runs the read-modify-write in one transaction holding the slot row lock.
// The row is seeded empty first so that concurrent first writers also contend on the lock.
func (s *PostgresSlot) Update(ctx context.Context, fn func([]byte) ([]byte, error)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	seed, args := builder.NewSQLBuilder().
		Insert(slotTable, "name", "payload", "updated_at").
		Values(s.name, "", s.now()).
		OnConflict([]string{"name"}).
		Build()
	if _, err := tx.ExecContext(ctx, seed, args...); err != nil {
		return fmt.Errorf("failed to seed slot %s: %w", s.name, err)
	}

	lock, args := builder.NewSQLBuilder().
		Select("payload").
		From(slotTable).
		Where("name = ?", s.name).
		ForUpdate().
		Build()
	var payload string
	if err := tx.QueryRowContext(ctx, lock, args...).Scan(&payload); err != nil {
		return fmt.Errorf("failed to lock slot %s: %w", s.name, err)
	}

	var current []byte
	if payload != "" {
		current = []byte(payload)
	}
	next, err := fn(current)
	if err != nil {
		return err
	}

	upsert, args := builder.NewSQLBuilder().
		Insert(slotTable, "name", "payload", "updated_at").
		Values(s.name, string(next), s.now()).
		OnConflict([]string{"name"}, "payload", "updated_at").
		Build()
	if _, err := tx.ExecContext(ctx, upsert, args...); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", s.name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit slot %s: %w", s.name, err)
	}
	return nil
}
