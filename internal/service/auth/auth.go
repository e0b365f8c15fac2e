// internal/service/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"elizatrader-service/internal/domain/admin"
	xerrors "elizatrader-service/internal/pkg/errors"
	"elizatrader-service/internal/pkg/jwt"
	"elizatrader-service/internal/pkg/ratelimit"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	adminRepo   admin.Repository
	jwtManager  *jwt.Manager
	rateLimiter *ratelimit.Limiter
	logger      *zap.Logger
}

func NewAuthService(
	adminRepo admin.Repository,
	jwtManager *jwt.Manager,
	rateLimiter *ratelimit.Limiter,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		adminRepo:   adminRepo,
		jwtManager:  jwtManager,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// NormalizeIdentifier canonicalizes a login identifier. The same form is
// used for storage seeding and login lookup.
func NormalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// Login authenticates the admin with identifier/password and issues a
// session token. Unknown identifier and wrong password produce the same
// ErrInvalidCredentials; a storage outage is surfaced as such and never
// mistaken for bad credentials.
func (s *AuthService) Login(ctx context.Context, req *admin.LoginRequest) (*admin.LoginResponse, error) {
	if strings.TrimSpace(req.Identifier) == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: identifier and password are required", xerrors.ErrInvalidInput)
	}

	identifier := NormalizeIdentifier(req.Identifier)

	// Server-side attempt limiting. Fail open when redis is down: losing
	// the limiter should not take logins with it.
	if s.rateLimiter != nil {
		allowed, _, err := s.rateLimiter.CheckLoginAttempt(ctx, req.IPAddress, identifier)
		if err != nil {
			s.logger.Warn("rate limiter unavailable", zap.Error(err))
		} else if !allowed {
			return nil, xerrors.ErrRateLimited
		}
	}

	identity, err := s.adminRepo.FindByIdentifier(ctx, identifier)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(req.Password)); err != nil {
		return nil, xerrors.ErrInvalidCredentials
	}

	// Observability write, not a correctness requirement: the login
	// succeeds even if the stamp fails.
	if err := s.adminRepo.UpdateLastLogin(ctx, identity.ID); err != nil {
		s.logger.Error("failed to update last login", zap.Error(err))
	}

	if s.rateLimiter != nil {
		if err := s.rateLimiter.ResetLoginAttempts(ctx, req.IPAddress, identifier); err != nil {
			s.logger.Warn("failed to reset login attempts", zap.Error(err))
		}
	}

	token, jti, err := s.jwtManager.Generator.Generate(identity.Identifier, identity.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("admin logged in",
		zap.String("identifier", identity.Identifier),
		zap.String("jti", jti),
	)

	return &admin.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.jwtManager.Generator.Ttl),
		User: admin.UserInfo{
			Identifier: identity.Identifier,
			Role:       identity.Role,
		},
	}, nil
}

// ValidateToken verifies a bearer token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*jwt.Claims, error) {
	claims, err := s.jwtManager.Verifier.Verify(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrUnauthorized, err)
	}
	return claims, nil
}

// SeedIdentities provisions the configured admin identities at startup.
// Identifiers are normalized before storage so that login lookups and the
// stored form always agree.
func (s *AuthService) SeedIdentities(ctx context.Context, identifiers []string, passwordHash string) error {
	if passwordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is not configured")
	}

	for _, raw := range identifiers {
		identifier := NormalizeIdentifier(raw)
		if identifier == "" {
			continue
		}
		if err := s.adminRepo.Upsert(ctx, identifier, passwordHash, "admin"); err != nil {
			return fmt.Errorf("failed to seed identity %q: %w", identifier, err)
		}
	}
	return nil
}
