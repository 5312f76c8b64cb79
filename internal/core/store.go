package core

// store.go is the PostgreSQL implementation of Store. Registrations keep the
// original document shape: one row per team with the member list as JSONB.
// Team-name uniqueness is enforced by the database (unique index on
// lower(team_name)), not just by the admission pre-check, so concurrent
// duplicate submissions cannot both land.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS registrations (
	id             UUID PRIMARY KEY,
	event          TEXT NOT NULL,
	team_name      TEXT NOT NULL,
	team_size      INTEGER NOT NULL,
	members        JSONB NOT NULL,
	transaction_id TEXT NOT NULL,
	payment_image  TEXT NOT NULL,
	submitted_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS registrations_team_name_lower_key
	ON registrations (lower(team_name));
`

const insertSQL = `
INSERT INTO registrations (id, event, team_name, team_size, members, transaction_id, payment_image, submitted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const selectColumns = `id, event, team_name, team_size, members, transaction_id, payment_image, submitted_at`

// slotLockKey is the advisory lock serializing reserved-slot inserts.
const slotLockKey = int64(0x7265677376) // "regsv"

// uniqueViolation is the Postgres error code for unique constraint breaches.
const uniqueViolation = "23505"

// PostgresStore is the production Store, backed by a pgx connection pool.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore wraps a connection pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate ensures the registrations table and its indexes exist. Idempotent;
// runs at startup.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createSchemaSQL); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, reg *Registration) error {
	return s.insert(ctx, s.db, reg)
}

// InsertReserved takes an advisory transaction lock, recounts the reserved
// slots, and inserts in the same transaction. Two concurrent registrations
// racing for the last slot serialize here instead of both landing.
func (s *PostgresStore) InsertReserved(ctx context.Context, reg *Registration, college string, limit int) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning slot transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, slotLockKey); err != nil {
		return fmt.Errorf("acquiring slot lock: %w", err)
	}

	var count int
	err = tx.QueryRow(ctx,
		`SELECT count(*) FROM registrations WHERE members->0->>'clg' = $1`, college,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("counting reserved slots: %w", err)
	}
	if count >= limit {
		return ErrSlotsFilled
	}

	if err := s.insert(ctx, tx, reg); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing registration: %w", err)
	}
	return nil
}

// execer is the subset of pgx shared by pools and transactions.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (s *PostgresStore) insert(ctx context.Context, db execer, reg *Registration) error {
	members, err := json.Marshal(reg.Members)
	if err != nil {
		return fmt.Errorf("encoding members: %w", err)
	}

	_, err = db.Exec(ctx, insertSQL,
		reg.ID, reg.Event, reg.TeamName, reg.TeamSize, members,
		reg.TransactionID, reg.PaymentImage, reg.SubmittedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", ErrTeamExists, reg.TeamName)
		}
		return fmt.Errorf("inserting registration: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id uuid.UUID) (*Registration, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM registrations WHERE id = $1`, id)

	reg, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: registration %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("loading registration: %w", err)
	}
	return reg, nil
}

func (s *PostgresStore) TeamNameExists(ctx context.Context, teamName string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE lower(team_name) = lower($1))`,
		teamName,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking team name: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) CountByLeaderCollege(ctx context.Context, college string) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		`SELECT count(*) FROM registrations WHERE members->0->>'clg' = $1`, college,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting leader affiliations: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]Registration, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+selectColumns+` FROM registrations ORDER BY submitted_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing registrations: %w", err)
	}
	defer rows.Close()

	var regs []Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning registration: %w", err)
		}
		regs = append(regs, *reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing registrations: %w", err)
	}
	return regs, nil
}

// scanRegistration reads one row into a Registration, decoding the JSONB
// member list.
func scanRegistration(row pgx.Row) (*Registration, error) {
	var reg Registration
	var members []byte

	err := row.Scan(&reg.ID, &reg.Event, &reg.TeamName, &reg.TeamSize,
		&members, &reg.TransactionID, &reg.PaymentImage, &reg.SubmittedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(members, &reg.Members); err != nil {
		return nil, fmt.Errorf("decoding members: %w", err)
	}
	return &reg, nil
}
