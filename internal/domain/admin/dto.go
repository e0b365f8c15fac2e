// internal/domain/admin/dto.go
package admin

import "time"

// LoginRequest represents admin login credentials.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`

	// Filled in by the handler, not the caller
	IPAddress string `json:"-"`
}

// LoginResponse represents successful login data.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserInfo  `json:"user"`
}

// UserInfo represents the minimal identity payload returned to the client.
type UserInfo struct {
	Identifier string `json:"identifier"`
	Role       string `json:"role"`
}
