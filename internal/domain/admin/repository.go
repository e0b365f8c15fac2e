// internal/domain/admin/repository.go
package admin

import "context"

// Repository is the credential store behind the login endpoint.
type Repository interface {
	// FindByIdentifier looks up an identity by its normalized identifier.
	FindByIdentifier(ctx context.Context, identifier string) (*Identity, error)

	// UpdateLastLogin stamps last_login_at. Best-effort from the caller's
	// point of view: a failure here must not fail the login.
	UpdateLastLogin(ctx context.Context, id int64) error

	// Upsert provisions an identity, updating the stored hash if the
	// identifier already exists. Used for startup seeding from config.
	Upsert(ctx context.Context, identifier, passwordHash, role string) error
}
