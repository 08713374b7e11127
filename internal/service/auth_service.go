package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"studiodesk/internal/model"
	"studiodesk/internal/repository"
	"studiodesk/pkg/util"
)

const licenseCacheKey = "studiodesk:license:valid"

// AuthService handles registration, login and the studio license
// check. The license lookup result is cached so login does not hit the
// comparison on every request.
type AuthService struct {
	userRepo   *repository.UserRepository
	rdb        *redis.Client
	jwtSecret  string
	licenseKey string
	logger     *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, rdb *redis.Client, jwtSecret, licenseKey string, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		rdb:        rdb,
		jwtSecret:  jwtSecret,
		licenseKey: licenseKey,
		logger:     logger,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string, role model.UserRole) (int, error) {
	hash, err := util.HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.userRepo.Create(ctx, &model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("User registered", zap.Int("user_id", id), zap.String("role", string(role)))
	return id, nil
}

// Login checks the license, verifies credentials and returns a signed
// token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if err := s.checkLicense(ctx); err != nil {
		return "", err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrInvalidCredentials
		}
		return "", err
	}

	if !util.CheckPassword(password, user.PasswordHash) {
		return "", model.ErrInvalidCredentials
	}

	return util.GenerateJWT(user.ID, string(user.Role), s.jwtSecret)
}

// checkLicense validates the configured studio key. An empty key
// disables the check. The positive result is cached for a day.
func (s *AuthService) checkLicense(ctx context.Context) error {
	if s.licenseKey == "" {
		return nil
	}

	if s.rdb != nil {
		if ok, err := s.rdb.Get(ctx, licenseCacheKey).Result(); err == nil && ok == "1" {
			return nil
		}
	}

	if !validLicenseKey(s.licenseKey) {
		return model.ErrLicenseInvalid
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, licenseCacheKey, "1", 24*time.Hour).Err(); err != nil {
			s.logger.Warn("Failed to cache license check", zap.Error(err))
		}
	}
	return nil
}

// validLicenseKey accepts keys of the form SDK-XXXX-XXXX-XXXX.
func validLicenseKey(key string) bool {
	if len(key) != 18 {
		return false
	}
	if key[:4] != "SDK-" || key[8] != '-' || key[13] != '-' {
		return false
	}
	for i, c := range key {
		if i < 4 || i == 8 || i == 13 {
			continue
		}
		isDigit := c >= '0' && c <= '9'
		isUpper := c >= 'A' && c <= 'Z'
		if !isDigit && !isUpper {
			return false
		}
	}
	return true
}
