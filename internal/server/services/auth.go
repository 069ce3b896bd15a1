package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/freelancehub/internal/common"
	"github.com/dmitrijs2005/freelancehub/internal/logging"
	"github.com/dmitrijs2005/freelancehub/internal/server/auth"
	"github.com/dmitrijs2005/freelancehub/internal/server/config"
	"github.com/dmitrijs2005/freelancehub/internal/server/models"
)

// Directory is the lookup the auth service resolves mobile numbers with.
type Directory interface {
	FindByMobile(ctx context.Context, mobile string) (*models.UserRecord, error)
	MobileExists(ctx context.Context, mobile string) (bool, string, error)
}

type LoginResult struct {
	User  *models.UserRecord
	Token string
}

type AuthService struct {
	directory                   Directory
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	logger                      logging.Logger
}

func NewAuthService(d Directory, cfg *config.Config, logger logging.Logger) *AuthService {
	return &AuthService{
		directory:                   d,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		logger:                      logger.With("module", "auth"),
	}
}

// Login resolves the mobile number and issues a session token.
//
// The password is accepted and deliberately not verified: any password,
// including an empty one, logs in a known mobile number.
func (s *AuthService) Login(ctx context.Context, mobile, password string) (*LoginResult, error) {
	if mobile == "" {
		return nil, fmt.Errorf("%w: mobile number is required", common.ErrorValidation)
	}

	u, err := s.directory.FindByMobile(ctx, mobile)
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(u.UserID(), u.UserType, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info(ctx, "login", "userId", u.UserID(), "userType", u.UserType)
	return &LoginResult{User: u, Token: token}, nil
}

// CheckMobile reports whether the number is registered and by which user type.
func (s *AuthService) CheckMobile(ctx context.Context, mobile string) (bool, string, error) {
	if mobile == "" {
		return false, "", fmt.Errorf("%w: mobile number is required", common.ErrorValidation)
	}
	return s.directory.MobileExists(ctx, mobile)
}
