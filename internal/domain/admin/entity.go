// internal/domain/admin/entity.go
package admin

import "time"

// Identity is the single privileged account permitted to mutate post data.
// The identifier is stored lower-cased and trimmed; login input is normalized
// the same way before lookup.
type Identity struct {
	ID           int64      `json:"id" db:"id"`
	Identifier   string     `json:"identifier" db:"identifier"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         string     `json:"role" db:"role"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"`
}
