package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/freshmart/supermarket-service/internal/domain"
	"github.com/freshmart/supermarket-service/internal/repository"
)

// Gate is the per-request authentication step. It runs before routing and
// resolves a principal from the bearer token when one is present and valid.
// It never rejects a request itself: a missing, malformed, tampered or
// expired token simply leaves the request unauthenticated, and the
// authorization policy downstream decides whether that matters.
//
// Role changes on a stored account do not invalidate tokens issued before
// the change; the staleness window is bounded by the token TTL.
type Gate struct {
	tokens    *TokenManager
	users     repository.UserRepository
	skipPaths []string
}

// NewGate constructs the gate with its exempt path list.
func NewGate(tokens *TokenManager, users repository.UserRepository, skipPaths []string) *Gate {
	return &Gate{tokens: tokens, users: users, skipPaths: skipPaths}
}

// Skip reports whether the path bypasses authentication entirely.
func (g *Gate) Skip(path string) bool {
	for _, p := range g.skipPaths {
		if path == p {
			return true
		}
		// Prefix entries cover static assets and provider handshake trees.
		if p != "/" && strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// Handle extracts, verifies and resolves the bearer token.
func (g *Gate) Handle(c *fiber.Ctx) error {
	if g.Skip(c.Path()) {
		return c.Next()
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return c.Next()
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return c.Next()
	}

	if _, attached := PrincipalFromContext(c); attached {
		return c.Next()
	}

	claims, err := g.tokens.Parse(parts[1])
	if err != nil {
		// Tampered or corrupt tokens are treated as absent authentication.
		return c.Next()
	}
	if claims.Expired(time.Now()) {
		return c.Next()
	}

	role, ok := g.resolveRole(c, claims)
	if !ok {
		return c.Next()
	}

	AttachPrincipal(c, NewPrincipal(claims.Subject, role))
	return c.Next()
}

// resolveRole prefers the role claim embedded in the token; a blank claim
// falls back to the credential store record for the subject.
func (g *Gate) resolveRole(c *fiber.Ctx, claims *Claims) (domain.Role, bool) {
	if strings.TrimSpace(claims.Role) != "" {
		role, err := domain.ParseRole(claims.Role)
		if err != nil {
			return "", false
		}
		return role, true
	}

	user, err := g.users.GetByName(c.Context(), claims.Subject)
	if err != nil {
		return "", false
	}
	return user.Role, true
}
