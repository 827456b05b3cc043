package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/velora/storefront/internal/infrastructure/commerce"
	"github.com/velora/storefront/internal/infrastructure/store"
)

// Upstream is the auth surface of the commerce client
type Upstream interface {
	Login(ctx context.Context, in commerce.LoginInput) (commerce.AuthResult, error)
	Register(ctx context.Context, in commerce.RegisterInput) (commerce.AuthResult, error)
	VerifyEmail(ctx context.Context, userID, code string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}

// AuthStates persists a session's upstream credentials
type AuthStates interface {
	Load(ctx context.Context, sessionID string) (*store.AuthState, error)
	Save(ctx context.Context, sessionID string, state *store.AuthState) error
	Clear(ctx context.Context, sessionID string) error
}

// Service proxies account operations to the commerce service and binds
// the returned access token to the gateway session. No password or
// credential ever persists here, only the upstream token.
type Service struct {
	upstream Upstream
	states   AuthStates
	logger   *zap.Logger
}

// NewService creates an auth proxy service
func NewService(upstream Upstream, states AuthStates, logger *zap.Logger) *Service {
	return &Service{
		upstream: upstream,
		states:   states,
		logger:   logger.Named("auth"),
	}
}

// Login signs the session in upstream and stores the access token
func (s *Service) Login(ctx context.Context, sessionID string, in commerce.LoginInput) (*store.AuthState, error) {
	result, err := s.upstream.Login(ctx, in)
	if err != nil {
		return nil, err
	}

	state := &store.AuthState{
		AccessToken: result.AccessToken,
		UserID:      result.User.ID,
		Name:        result.User.Name,
		Email:       result.User.Email,
		Role:        result.User.Role,
	}
	if err := s.states.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Register creates an upstream account. The account needs email
// verification before it can sign in, so no session state is written.
func (s *Service) Register(ctx context.Context, in commerce.RegisterInput) (commerce.AuthResult, error) {
	return s.upstream.Register(ctx, in)
}

// VerifyEmail confirms an account's email address upstream
func (s *Service) VerifyEmail(ctx context.Context, userID, code string) error {
	return s.upstream.VerifyEmail(ctx, userID, code)
}

// ResetPassword sets a new password using an emailed reset token
func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	return s.upstream.ResetPassword(ctx, resetToken, newPassword)
}

// Current returns the session's signed-in account, nil when anonymous
func (s *Service) Current(ctx context.Context, sessionID string) (*store.AuthState, error) {
	return s.states.Load(ctx, sessionID)
}

// Logout drops the session's upstream credentials
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.states.Clear(ctx, sessionID)
}
