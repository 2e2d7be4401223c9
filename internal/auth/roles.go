package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freshmart/supermarket-service/internal/domain"
	apperrors "github.com/freshmart/supermarket-service/pkg/util"
)

// RequireRoles enforces the authorization policy for an operation. A request
// with no principal is rejected as unauthenticated; a principal whose role
// is outside the allowed set is rejected as forbidden. An empty set admits
// any authenticated principal.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAuthenticated admits any principal regardless of role.
func RequireAuthenticated() fiber.Handler {
	return RequireRoles()
}
