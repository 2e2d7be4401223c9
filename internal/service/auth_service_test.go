package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/supermarket-service/internal/config"
	"github.com/freshmart/supermarket-service/internal/domain"
	apperrors "github.com/freshmart/supermarket-service/pkg/util"
)

func newAuthFixture(repo *memUserRepo) *AuthService {
	return NewAuthService(config.AuthConfig{
		JWTSecret:             onboardingTestSecret,
		AccessTokenTTLMinutes: 15,
		BcryptCost:            4,
	}, repo, nil)
}

func TestRegisterIssuesTokenWithStoredRole(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthFixture(repo)

	user, token, exp, err := svc.Register(context.Background(), "bob", "bob@example.com", "hunter2", "SELLER")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSeller, user.Role)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.TokenManager().Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Subject)
	assert.Equal(t, string(domain.RoleSeller), claims.Role)
}

func TestRegisterDefaultsToCustomer(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthFixture(repo)

	user, _, _, err := svc.Register(context.Background(), "carol", "carol@example.com", "hunter2", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role)
}

func TestRegisterRejectsDuplicateName(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthFixture(repo)

	_, _, _, err := svc.Register(context.Background(), "bob", "bob@example.com", "hunter2", "")
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), "bob", "other@example.com", "hunter2", "")
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestRegisterNeverStoresPlaintext(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthFixture(repo)

	_, _, _, err := svc.Register(context.Background(), "bob", "bob@example.com", "hunter2", "")
	require.NoError(t, err)

	account, err := repo.GetByName(context.Background(), "bob")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", account.PasswordHash)
	assert.NotEmpty(t, account.PasswordHash)
}

func TestLoginSucceedsWithCorrectPassword(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthFixture(repo)

	_, _, _, err := svc.Register(context.Background(), "bob", "bob@example.com", "hunter2", "SELLER")
	require.NoError(t, err)

	user, token, _, err := svc.Login(context.Background(), "bob", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Name)

	claims, err := svc.TokenManager().Parse(token)
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleSeller), claims.Role)
}

func TestLoginFailsClosed(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthFixture(repo)

	_, _, _, err := svc.Register(context.Background(), "bob", "bob@example.com", "hunter2", "")
	require.NoError(t, err)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "bob", "hunter3"},
		{"unknown user", "ghost", "hunter2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := svc.Login(context.Background(), tc.username, tc.password)
			require.Error(t, err)
			var domainErr *apperrors.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
		})
	}
}
