package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/freshmart/supermarket-service/internal/config"
)

const (
	defaultUserAPIURL = "https://api.github.com/user"
	defaultTimeout    = 10 * time.Second
)

// GithubProvider exchanges an authorization code with GitHub and fetches the
// authenticated user's attributes.
type GithubProvider struct {
	oauth      *oauth2.Config
	userAPIURL string
}

// NewGithubProvider builds the provider from OAuth configuration.
func NewGithubProvider(cfg config.OAuthConfig) *GithubProvider {
	return &GithubProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.GithubClientID,
			ClientSecret: cfg.GithubClientSecret,
			RedirectURL:  cfg.GithubRedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		userAPIURL: defaultUserAPIURL,
	}
}

// NewGithubProviderWithURL overrides the user API endpoint (for testing).
func NewGithubProviderWithURL(cfg config.OAuthConfig, userAPIURL string) *GithubProvider {
	p := NewGithubProvider(cfg)
	p.userAPIURL = userAPIURL
	return p
}

// AuthCodeURL returns the provider authorization URL for the given state.
func (p *GithubProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

// FetchIdentity exchanges the code and loads the user's profile attributes.
func (p *GithubProvider) FetchIdentity(ctx context.Context, code string) (Attributes, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	client := p.oauth.Client(ctx, token)
	client.Timeout = defaultTimeout

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userAPIURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch user profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch user profile: unexpected status %d", resp.StatusCode)
	}

	var profile struct {
		Login string `json:"login"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode user profile: %w", err)
	}

	return Attributes{
		"login": profile.Login,
		"name":  profile.Name,
		"email": profile.Email,
	}, nil
}
