// internal/repository/postgres/admin_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"elizatrader-service/internal/domain/admin"
	xerrors "elizatrader-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByIdentifier looks up an identity by its normalized identifier.
// Callers are responsible for lower-casing and trimming the input; storage
// holds identifiers in the same canonical form.
func (r *AdminRepository) FindByIdentifier(ctx context.Context, identifier string) (*admin.Identity, error) {
	query := `
		SELECT id, identifier, password_hash, role, created_at, last_login_at
		FROM admin_identities
		WHERE identifier = $1
	`

	var a admin.Identity
	err := r.db.QueryRow(ctx, query, identifier).Scan(
		&a.ID, &a.Identifier, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.LastLoginAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find identity: %v", xerrors.ErrStorageUnavailable, err)
	}

	return &a, nil
}

func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	query := `UPDATE admin_identities SET last_login_at = NOW() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("%w: update last login: %v", xerrors.ErrStorageUnavailable, err)
	}
	return nil
}

// Upsert provisions an identity from configuration at startup.
func (r *AdminRepository) Upsert(ctx context.Context, identifier, passwordHash, role string) error {
	query := `
		INSERT INTO admin_identities (identifier, password_hash, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (identifier)
		DO UPDATE SET password_hash = EXCLUDED.password_hash, role = EXCLUDED.role
	`

	if _, err := r.db.Exec(ctx, query, identifier, passwordHash, role); err != nil {
		return fmt.Errorf("%w: upsert identity: %v", xerrors.ErrStorageUnavailable, err)
	}
	return nil
}

var _ admin.Repository = (*AdminRepository)(nil)

