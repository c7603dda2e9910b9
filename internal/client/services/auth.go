// Package services contains application services for the GigLine client.
// Each service is a thin, typed wrapper over the generic API client: the
// endpoints map 1:1 to the backend's REST resources.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gigline/internal/client/client"
	"github.com/dmitrijs2005/gigline/internal/client/models"
)

// AuthService defines account and session operations.
//
// Contract:
//   - Register: create a new account.
//   - Login: authenticate and persist the returned token pair.
//   - Logout: notify the server (best effort) and clear local credentials.
//   - Me: fetch the authenticated profile.
//   - Ping: check backend liveness.
type AuthService interface {
	Register(ctx context.Context, email, password string, role models.Role) error
	Login(ctx context.Context, email, password string) (*models.Account, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.Account, error)
	Ping(ctx context.Context) error
	IsAuthenticated() bool
}

type authService struct {
	client client.Client
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

func (a *authService) Register(ctx context.Context, email, password string, role models.Role) error {
	body := map[string]any{"email": email, "password": password, "role": role}
	cfg := &client.RequestConfig{Body: body, NoAuth: true}

	if _, err := a.client.Post(ctx, "/auth/register/", cfg, nil); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

// Login authenticates against the backend and saves the returned token pair
// so subsequent requests go out authorized.
func (a *authService) Login(ctx context.Context, email, password string) (*models.Account, error) {
	body := map[string]string{"email": email, "password": password}
	cfg := &client.RequestConfig{Body: body, NoAuth: true}

	var auth models.AuthResponse
	if _, err := a.client.Post(ctx, "/auth/login/", cfg, &auth); err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	a.client.SaveTokens(ctx, auth.Token, auth.RefreshToken)
	return auth.User, nil
}

// Logout tells the server to invalidate the session and clears local
// credentials. The local clear happens even when the server call fails:
// a dead session on the backend must not keep the client logged in.
func (a *authService) Logout(ctx context.Context) error {
	_, err := a.client.Post(ctx, "/auth/logout/", nil, nil)
	a.client.ClearTokens(ctx)
	if err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	return nil
}

func (a *authService) Me(ctx context.Context) (*models.Account, error) {
	var account models.Account
	if _, err := a.client.Get(ctx, "/auth/me/", nil, &account); err != nil {
		return nil, fmt.Errorf("profile error: %w", err)
	}
	return &account, nil
}

// Ping probes backend liveness through the unauthenticated health endpoint.
func (a *authService) Ping(ctx context.Context) error {
	if _, err := a.client.Get(ctx, "/health/", &client.RequestConfig{NoAuth: true}, nil); err != nil {
		return err
	}
	return nil
}

func (a *authService) IsAuthenticated() bool {
	return a.client.IsAuthenticated()
}
