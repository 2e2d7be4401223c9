package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/freshmart/supermarket-service/internal/auth"
	"github.com/freshmart/supermarket-service/internal/config"
	"github.com/freshmart/supermarket-service/internal/domain"
	"github.com/freshmart/supermarket-service/internal/events"
	"github.com/freshmart/supermarket-service/internal/identity"
	"github.com/freshmart/supermarket-service/internal/repository"
	apperrors "github.com/freshmart/supermarket-service/pkg/util"
)

// ErrUnresolvableIdentity is returned when no usable local username can be
// derived from the provider attributes. The handshake aborts: no account,
// no token, no redirect.
var ErrUnresolvableIdentity = errors.New("unresolvable external identity")

// OnboardingService provisions local accounts for externally authenticated
// identities and issues their first token.
type OnboardingService struct {
	users        repository.UserRepository
	tokenMgr     *auth.TokenManager
	states       StateStore
	dispatcher   events.Dispatcher
	bcryptCost   int
	callbackPath string
}

// StateStore persists short-lived OAuth state nonces across the redirect
// round-trip.
type StateStore interface {
	Put(ctx context.Context, state string, ttl time.Duration) error
	Consume(ctx context.Context, state string) (bool, error)
}

// NewOnboardingService builds the service.
func NewOnboardingService(
	authCfg config.AuthConfig,
	oauthCfg config.OAuthConfig,
	users repository.UserRepository,
	tokenMgr *auth.TokenManager,
	states StateStore,
	dispatcher events.Dispatcher,
) *OnboardingService {
	return &OnboardingService{
		users:        users,
		tokenMgr:     tokenMgr,
		states:       states,
		dispatcher:   dispatcher,
		bcryptCost:   authCfg.BcryptCost,
		callbackPath: oauthCfg.CallbackPath,
	}
}

// OnboardResult captures the outcome of a completed handshake.
type OnboardResult struct {
	Username  string
	Role      domain.Role
	Token     string
	ExpiresAt time.Time
	Created   bool
}

// Onboard runs the single-pass provisioning flow for verified provider
// attributes: derive a username, reuse or create the local account, then
// issue a token for the account's stored role.
func (s *OnboardingService) Onboard(ctx context.Context, provider string, attrs identity.Attributes) (*OnboardResult, error) {
	username, err := DeriveUsername(attrs)
	if err != nil {
		return nil, apperrors.NewUnresolvableIdentity(err.Error())
	}

	email := attrs.Get("email")
	if email == "" {
		email = fmt.Sprintf("%s@users.noreply.local", username)
	}

	// The placeholder secret is random and never usable for direct login;
	// only its hash is stored.
	placeholderHash, err := auth.HashPassword(uuid.NewString(), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	candidate := &domain.User{
		Name:         username,
		Email:        email,
		PasswordHash: placeholderHash,
		Role:         domain.RoleCustomer,
	}
	account, created, err := s.users.CreateIfAbsent(ctx, candidate)
	if err != nil {
		return nil, err
	}

	token, exp, err := s.tokenMgr.Issue(account.Name, account.Role)
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventUserOnboarded, account.Name, events.UserOnboardedPayload{
			UserID:   account.ID,
			Provider: provider,
			Role:     account.Role,
			Created:  created,
		}))
	}

	return &OnboardResult{
		Username:  account.Name,
		Role:      account.Role,
		Token:     token,
		ExpiresAt: exp,
		Created:   created,
	}, nil
}

// CallbackLocation builds the redirect target with token and username as
// percent-encoded query parameters.
func (s *OnboardingService) CallbackLocation(result *OnboardResult) string {
	query := url.Values{}
	query.Set("token", result.Token)
	query.Set("username", result.Username)
	return s.callbackPath + "?" + query.Encode()
}

// NewState mints and stores a handshake state nonce.
func (s *OnboardingService) NewState(ctx context.Context, ttl time.Duration) (string, error) {
	state := uuid.NewString()
	if err := s.states.Put(ctx, state, ttl); err != nil {
		return "", err
	}
	return state, nil
}

// ConsumeState validates and invalidates a returned state nonce.
func (s *OnboardingService) ConsumeState(ctx context.Context, state string) error {
	ok, err := s.states.Consume(ctx, state)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewUnauthorized("unknown or expired oauth state")
	}
	return nil
}

// DeriveUsername picks a local username from provider attributes with an
// ordered fallback chain: login, then display name, then the local part of
// the email. Purely numeric candidates are unusable at every tier; some
// providers surface numeric IDs as the login handle.
func DeriveUsername(attrs identity.Attributes) (string, error) {
	if login := attrs.Get("login"); usable(login) {
		return login, nil
	}
	if name := attrs.Get("name"); usable(name) {
		return name, nil
	}
	if email := attrs.Get("email"); email != "" {
		local := email
		for i, r := range email {
			if r == '@' {
				local = email[:i]
				break
			}
		}
		if usable(local) {
			return local, nil
		}
	}
	return "", ErrUnresolvableIdentity
}

func usable(candidate string) bool {
	if candidate == "" {
		return false
	}
	return !numeric(candidate)
}

func numeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
