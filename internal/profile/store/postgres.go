package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"linguadir/internal/discovery"
	"linguadir/internal/profile/models"
	id "linguadir/pkg/domain"
	"linguadir/pkg/platform/sentinel"
)

// Postgres persists profiles as a JSONB document per row. A handful of
// columns are derived from the document on every write so lookups, the random
// sample, and the review queue stay in SQL.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
    id            UUID PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    doc           JSONB NOT NULL,
    version       BIGINT NOT NULL,
    active        BOOLEAN NOT NULL,
    rating        DOUBLE PRECISION,
    pending_certs BOOLEAN NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS profiles_discovery_idx ON profiles (active, rating);
CREATE INDEX IF NOT EXISTS profiles_pending_idx ON profiles (pending_certs) WHERE pending_certs;
`

// Migrate creates the profiles table when it does not exist yet.
func (s *Postgres) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate profiles schema: %w", err)
	}
	return nil
}

func (s *Postgres) Create(ctx context.Context, p *models.Profile) error {
	p.Version = 1
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO profiles (id, email, doc, version, active, rating, pending_certs, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID.String(), strings.ToLower(p.Email), doc, p.Version,
		p.Active, p.Rating, len(p.PendingCertifications()) > 0, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, profileID id.ProfileID) (*models.Profile, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT doc, version FROM profiles WHERE id = $1`, profileID.String())
	return scanProfile(row)
}

func (s *Postgres) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT doc, version FROM profiles WHERE email = $1`, strings.ToLower(email))
	return scanProfile(row)
}

func (s *Postgres) Save(ctx context.Context, p *models.Profile) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE profiles
		SET doc = $1, version = version + 1, active = $2, rating = $3,
		    pending_certs = $4, updated_at = $5
		WHERE id = $6 AND version = $7`,
		doc, p.Active, p.Rating, len(p.PendingCertifications()) > 0,
		p.UpdatedAt, p.ID.String(), p.Version,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := s.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM profiles WHERE id = $1)`, p.ID.String(),
		).Scan(&exists); err != nil {
			return fmt.Errorf("check profile existence: %w", err)
		}
		if !exists {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrConflict
	}
	p.Version++

	// The doc column still carries the pre-bump version; the version column is
	// authoritative and overwrites it on read.
	return nil
}

func (s *Postgres) Sample(ctx context.Context, limit int) ([]*models.Profile, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT doc, version FROM profiles
		WHERE active AND rating > $1
		ORDER BY random()
		LIMIT $2`,
		discovery.MinRating, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sample profiles: %w", err)
	}
	defer rows.Close()
	return scanProfiles(rows)
}

func (s *Postgres) ListWithPendingCertifications(ctx context.Context) ([]*models.Profile, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT doc, version FROM profiles
		WHERE pending_certs
		ORDER BY updated_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list pending certifications: %w", err)
	}
	defer rows.Close()
	return scanProfiles(rows)
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var doc []byte
	var version int64
	if err := row.Scan(&doc, &version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	var p models.Profile
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	p.Version = version
	return &p, nil
}

func scanProfiles(rows pgx.Rows) ([]*models.Profile, error) {
	var out []*models.Profile
	for rows.Next() {
		var doc []byte
		var version int64
		if err := rows.Scan(&doc, &version); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		var p models.Profile
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
		p.Version = version
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return out, nil
}
