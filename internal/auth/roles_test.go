package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/supermarket-service/internal/domain"
	apperrors "github.com/freshmart/supermarket-service/pkg/util"
)

// newPolicyApp builds an app where the test injects the principal directly,
// isolating the authorization policy from the gate.
func newPolicyApp(principal *Principal, allowed ...domain.Role) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) (err error) {
		defer func() {
			if err != nil {
				de := apperrors.ToDomainError(err)
				c.Status(de.HTTPStatus)
				_ = c.JSON(fiber.Map{"error": fiber.Map{"code": de.Code}})
				err = nil
			}
		}()
		if principal != nil {
			AttachPrincipal(c, principal)
		}
		return c.Next()
	})
	app.Get("/guarded", RequireRoles(allowed...), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error.Code
}

func TestRequireRolesDeniesInsufficientRoleAsForbidden(t *testing.T) {
	app := newPolicyApp(NewPrincipal("carol", domain.RoleCustomer), domain.RoleSeller, domain.RoleAdmin)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))
}

func TestRequireRolesDeniesMissingPrincipalAsUnauthenticated(t *testing.T) {
	app := newPolicyApp(nil, domain.RoleSeller, domain.RoleAdmin)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

func TestRequireRolesAdmitsMemberOfSet(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleSeller, domain.RoleAdmin} {
		app := newPolicyApp(NewPrincipal("bob", role), domain.RoleSeller, domain.RoleAdmin)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "role %s", role)
	}
}

func TestRequireAuthenticatedAdmitsAnyRole(t *testing.T) {
	app := newPolicyApp(NewPrincipal("carol", domain.RoleCustomer))
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPrincipalAuthorities(t *testing.T) {
	principal := NewPrincipal("bob", domain.RoleSeller)
	assert.True(t, principal.HasAuthority("ROLE_SELLER"))
	assert.False(t, principal.HasAuthority("ROLE_ADMIN"))
}
