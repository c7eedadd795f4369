package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mybabyhq/site-server-go/internal/config"
	"github.com/mybabyhq/site-server-go/internal/model"
	"github.com/mybabyhq/site-server-go/internal/repository"
	"github.com/mybabyhq/site-server-go/internal/util"
)

// AuthService verifies admin credentials and manages admin sessions.
type AuthService struct {
	sessionRepo   repository.AdminSessionRepository
	adminUsername string
	adminPassword string
	passwordHash  string
	sessionTTL    time.Duration
}

func NewAuthService(sessionRepo repository.AdminSessionRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		sessionRepo:   sessionRepo,
		adminUsername: cfg.AdminUsername,
		adminPassword: cfg.AdminPassword,
		passwordHash:  cfg.AdminPasswordHash,
		sessionTTL:    config.AdminSessionTTL,
	}
}

// VerifyCredentials returns false on any mismatch and never errors for
// legitimate mismatched input. The configured hash takes precedence over a
// plaintext password; the dev default applies only when neither is set
// (config.Validate refuses that combination in production).
func (s *AuthService) VerifyCredentials(username, password string) bool {
	if username != s.adminUsername {
		return false
	}

	if s.passwordHash != "" {
		ok, err := util.VerifyPassword(s.passwordHash, password)
		if err != nil {
			log.Error().Err(err).Msg("password hash verification failed")
			return false
		}
		return ok
	}

	expected := s.adminPassword
	if expected == "" {
		expected = config.DevFallbackPassword
	}
	return util.ConstantTimeEqual(password, expected)
}

// Login verifies credentials and, on success, creates a session and returns
// its raw token. An empty token with nil error means invalid credentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if !s.VerifyCredentials(username, password) {
		return "", nil
	}

	token, err := util.GenerateToken()
	if err != nil {
		return "", err
	}

	_, err = s.sessionRepo.Create(ctx, model.CreateAdminSessionParams{
		TokenHash: util.HashToken(token),
		ExpiresAt: time.Now().Add(s.sessionTTL),
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.DeleteByTokenHash(ctx, util.HashToken(token))
}
