// Package services contains application services for the freelancehub CLI.
// This file defines the authentication service: online login with an offline
// fallback to the last cached session, mobile checks and liveness probes.
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/freelancehub/internal/client/client"
	"github.com/dmitrijs2005/freelancehub/internal/client/models"
	"github.com/dmitrijs2005/freelancehub/internal/client/repositories/metadata"
)

const sessionKey = "session"

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - OnlineLogin: authenticate against the server and cache the session.
//   - OfflineLogin: restore the cached session for the same mobile number.
//   - CheckMobile: ask the server whether a number is registered.
//   - Ping: check server liveness.
//   - Logout: drop the cached session and every cached response.
type AuthService interface {
	OnlineLogin(ctx context.Context, mobile string, password []byte) (*models.Session, error)
	OfflineLogin(ctx context.Context, mobile string) (*models.Session, error)
	CheckMobile(ctx context.Context, mobile string) (bool, string, error)
	Ping(ctx context.Context) error
	Logout(ctx context.Context) error
}

type authService struct {
	client client.Client
	cache  metadata.Repository
}

func NewAuthService(c client.Client, cache metadata.Repository) AuthService {
	return &authService{client: c, cache: cache}
}

func (a *authService) OnlineLogin(ctx context.Context, mobile string, password []byte) (*models.Session, error) {
	s, err := a.client.Login(ctx, mobile, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	if err := a.cache.Set(ctx, sessionKey, data); err != nil {
		return nil, fmt.Errorf("offline data saving error: %w", err)
	}
	return s, nil
}

// OfflineLogin returns client.ErrLocalDataNotAvailable when nothing is cached
// for mobile.
func (a *authService) OfflineLogin(ctx context.Context, mobile string) (*models.Session, error) {
	data, err := a.cache.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, client.ErrLocalDataNotAvailable
	}

	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", client.ErrLocalDataNotAvailable, err)
	}
	if s.User.MobileNumber != mobile {
		return nil, client.ErrLocalDataNotAvailable
	}
	return &s, nil
}

func (a *authService) CheckMobile(ctx context.Context, mobile string) (bool, string, error) {
	return a.client.CheckMobile(ctx, mobile)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Health(ctx)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.cache.Clear(ctx)
}
