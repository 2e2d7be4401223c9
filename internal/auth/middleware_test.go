package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/supermarket-service/internal/domain"
)

type stubUserRepo struct {
	byName map[string]*domain.User
}

func (s *stubUserRepo) Create(context.Context, *domain.User) error { return nil }
func (s *stubUserRepo) CreateIfAbsent(context.Context, *domain.User) (*domain.User, bool, error) {
	return nil, false, pgx.ErrNoRows
}
func (s *stubUserRepo) Update(context.Context, *domain.User) error { return nil }
func (s *stubUserRepo) Delete(context.Context, int64) error        { return nil }
func (s *stubUserRepo) GetByID(context.Context, int64) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (s *stubUserRepo) GetByName(_ context.Context, name string) (*domain.User, error) {
	if user, ok := s.byName[name]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}
func (s *stubUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (s *stubUserRepo) List(context.Context) ([]*domain.User, error) { return nil, nil }
func (s *stubUserRepo) ListByRole(context.Context, domain.Role) ([]*domain.User, error) {
	return nil, nil
}

var gateSkipPaths = []string{"/", "/api/users/login", "/oauth2"}

func newGateApp(gate *Gate) (*fiber.App, *struct {
	principal *Principal
	attached  bool
}) {
	captured := &struct {
		principal *Principal
		attached  bool
	}{}
	app := fiber.New()
	app.Use(gate.Handle)
	probe := func(c *fiber.Ctx) error {
		captured.principal, captured.attached = PrincipalFromContext(c)
		return c.SendStatus(http.StatusOK)
	}
	app.Get("/api/probe", probe)
	app.Get("/api/users/login", probe)
	app.Get("/oauth2/authorize/github", probe)
	return app, captured
}

func TestGateNoHeaderProceedsUnauthenticated(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute)
	gate := NewGate(tm, &stubUserRepo{}, gateSkipPaths)
	app, captured := newGateApp(gate)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/probe", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, captured.attached)
}

func TestGateAttachesPrincipalFromTokenRole(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute)
	gate := NewGate(tm, &stubUserRepo{}, gateSkipPaths)
	app, captured := newGateApp(gate)

	token, _, err := tm.Issue("alice", domain.RoleSeller)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/probe", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.True(t, captured.attached)
	assert.Equal(t, "alice", captured.principal.Username)
	assert.Equal(t, domain.RoleSeller, captured.principal.Role)
	assert.Equal(t, []string{"ROLE_SELLER"}, captured.principal.Authorities)
}

func TestGateTamperedSignatureAttachesNothing(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute)
	foreign := NewTokenManager("another-secret-key-also-32-bytes!!!", 15*time.Minute)
	gate := NewGate(tm, &stubUserRepo{}, gateSkipPaths)
	app, captured := newGateApp(gate)

	token, _, err := foreign.Issue("alice", domain.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/probe", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	// The gate is permissive; rejection is authorization's job.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, captured.attached)
}

func TestGateExpiredTokenAttachesNothing(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute)
	gate := NewGate(tm, &stubUserRepo{}, gateSkipPaths)
	app, captured := newGateApp(gate)

	issued := time.Now().Add(-time.Hour)
	claims := &Claims{
		Role: string(domain.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(15 * time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/probe", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, captured.attached)
}

func TestGateBlankRoleClaimFallsBackToStore(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute)
	repo := &stubUserRepo{byName: map[string]*domain.User{
		"alice": {ID: 1, Name: "alice", Role: domain.RoleAdmin},
	}}
	gate := NewGate(tm, repo, gateSkipPaths)
	app, captured := newGateApp(gate)

	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "alice",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/probe", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	_, err = app.Test(req)
	require.NoError(t, err)

	require.True(t, captured.attached)
	assert.Equal(t, domain.RoleAdmin, captured.principal.Role)
}

func TestGateBlankRoleUnknownSubjectStaysUnauthenticated(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute)
	gate := NewGate(tm, &stubUserRepo{}, gateSkipPaths)
	app, captured := newGateApp(gate)

	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "ghost",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/probe", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	_, err = app.Test(req)
	require.NoError(t, err)
	assert.False(t, captured.attached)
}

func TestGateSkipPaths(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute)
	gate := NewGate(tm, &stubUserRepo{}, gateSkipPaths)

	assert.True(t, gate.Skip("/"))
	assert.True(t, gate.Skip("/api/users/login"))
	assert.True(t, gate.Skip("/oauth2"))
	assert.True(t, gate.Skip("/oauth2/authorize/github"))
	assert.False(t, gate.Skip("/api/stores"))
	assert.False(t, gate.Skip("/api/users/loginx"))
}

func TestGateSkipPathIgnoresToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute)
	gate := NewGate(tm, &stubUserRepo{}, gateSkipPaths)
	app, captured := newGateApp(gate)

	token, _, err := tm.Issue("alice", domain.RoleSeller)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users/login", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, captured.attached)
}
