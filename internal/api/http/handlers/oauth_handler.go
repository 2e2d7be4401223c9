package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/freshmart/supermarket-service/internal/identity"
	"github.com/freshmart/supermarket-service/internal/service"
	apperrors "github.com/freshmart/supermarket-service/pkg/util"
)

// OAuthHandler drives the GitHub handshake and first-login onboarding.
type OAuthHandler struct {
	provider   identity.Provider
	onboarding *service.OnboardingService
	stateTTL   time.Duration
}

// NewOAuthHandler constructs handler.
func NewOAuthHandler(provider identity.Provider, onboarding *service.OnboardingService, stateTTL time.Duration) *OAuthHandler {
	return &OAuthHandler{provider: provider, onboarding: onboarding, stateTTL: stateTTL}
}

// Authorize handles GET /oauth2/authorize/github: mints a state nonce and
// redirects the caller to the provider.
func (h *OAuthHandler) Authorize(c *fiber.Ctx) error {
	state, err := h.onboarding.NewState(c.Context(), h.stateTTL)
	if err != nil {
		return err
	}
	return c.Redirect(h.provider.AuthCodeURL(state), fiber.StatusFound)
}

// Callback handles GET /login/oauth2/code/github: validates state, exchanges
// the code, onboards the identity and redirects with token and username.
func (h *OAuthHandler) Callback(c *fiber.Ctx) error {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		return apperrors.NewValidationError("state and code required", nil)
	}

	if err := h.onboarding.ConsumeState(c.Context(), state); err != nil {
		return err
	}

	attrs, err := h.provider.FetchIdentity(c.Context(), code)
	if err != nil {
		return apperrors.NewUnauthorized("identity provider handshake failed")
	}

	result, err := h.onboarding.Onboard(c.Context(), "github", attrs)
	if err != nil {
		return err
	}

	return c.Redirect(h.onboarding.CallbackLocation(result), fiber.StatusFound)
}
