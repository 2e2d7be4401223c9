package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freshmart/supermarket-service/internal/domain"
)

const principalKey = "auth_principal"

// Principal is the authenticated caller for the remainder of a request.
// It is created per request by the gate and never persisted.
type Principal struct {
	Username    string
	Role        domain.Role
	Authorities []string
}

// NewPrincipal derives authorities 1:1 from the granted role.
func NewPrincipal(username string, role domain.Role) *Principal {
	return &Principal{
		Username:    username,
		Role:        role,
		Authorities: []string{"ROLE_" + string(role)},
	}
}

// HasAuthority reports whether the principal carries the given authority.
func (p *Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// AttachPrincipal binds the principal to the request context.
func AttachPrincipal(c *fiber.Ctx, p *Principal) {
	c.Locals(principalKey, p)
}

// PrincipalFromContext retrieves the authenticated entity, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
