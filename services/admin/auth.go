package admin

import (
	"context"
	"strings"
	"time"

	"infinitewash/models"
	"infinitewash/services/apperror"
	"infinitewash/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 12 * time.Hour

// Login checks the admin credentials and issues a signed dashboard token.
func (s *DefaultAdminService) Login(ctx context.Context, email, password string) (*models.AdminSession, error) {
	creds := s.Credentials
	if creds.JWTSecret == "" || creds.PasswordHash == "" || creds.Email == "" {
		return nil, apperror.NewConfiguration("Admin login is not configured", nil)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email != strings.ToLower(creds.Email) {
		s.logger().Warn("admin login rejected", zap.String("email", email))
		return nil, apperror.NewUnauthorized("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		s.logger().Warn("admin login rejected", zap.String("email", email))
		return nil, apperror.NewUnauthorized("Invalid email or password")
	}

	ttl := creds.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	token, err := utils.GenerateToken(creds.JWTSecret, email, email, models.RoleAdmin, ttl)
	if err != nil {
		return nil, apperror.NewConfiguration("Admin login is not configured", err)
	}
	s.logger().Info("admin logged in", zap.String("email", email))
	return &models.AdminSession{Token: token, Email: email, ExpiresAt: s.now().Add(ttl)}, nil
}
