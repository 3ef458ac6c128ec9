package strava

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// ExpiryMargin is how close to expiry a token may get before it is treated
// as already expired and refreshed ahead of use.
const ExpiryMargin = 90 * time.Second

// Token is the full OAuth state for the integration. TokenManager replaces
// it wholesale on every refresh; readers never see a partial update.
type Token struct {
	AccessToken   string
	RefreshToken  string
	ExpiresAt     time.Time // zero when the provider didn't report one
	LastRefreshAt time.Time
}

// TokenManager owns the current token pair and refreshes it on demand via
// the provider's OAuth endpoint. It is safe for concurrent use.
type TokenManager struct {
	cfg       *oauth2.Config
	onRefresh func(Token) error

	mu  sync.Mutex
	tok Token
}

// NewTokenManager creates a manager seeded with the given token state.
// onRefresh, if non-nil, is invoked with the complete new state after every
// successful refresh so callers can persist the rotated refresh token.
func NewTokenManager(cfg *oauth2.Config, seed Token, onRefresh func(Token) error) *TokenManager {
	return &TokenManager{
		cfg:       cfg,
		tok:       seed,
		onRefresh: onRefresh,
	}
}

// Current returns a snapshot of the token state without refreshing.
func (m *TokenManager) Current() Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tok
}

// EnsureAccessToken returns an access token that is valid for at least
// ExpiryMargin. The common case is a plain in-memory read; a refresh happens
// only when the token is missing, expired, or about to expire.
func (m *TokenManager) EnsureAccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tok.AccessToken != "" {
		// A token with no known expiry is used as-is: the 401 retry path
		// catches the case where it has silently gone stale.
		if m.tok.ExpiresAt.IsZero() || time.Until(m.tok.ExpiresAt) > ExpiryMargin {
			return m.tok.AccessToken, nil
		}
	}

	return m.refreshLocked(ctx)
}

// ForceRefresh discards the current access token and refreshes regardless of
// expiry. Used by the HTTP client after a 401.
func (m *TokenManager) ForceRefresh(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshLocked(ctx)
}

func (m *TokenManager) refreshLocked(ctx context.Context) (string, error) {
	if m.tok.RefreshToken == "" {
		return "", &AuthConfigError{Reason: "no refresh token available"}
	}
	if m.cfg.ClientID == "" || m.cfg.ClientSecret == "" {
		return "", &AuthConfigError{Reason: "client id/secret missing"}
	}

	// Hand oauth2 a token that is already expired so its source performs the
	// refresh grant unconditionally.
	src := m.cfg.TokenSource(ctx, &oauth2.Token{
		RefreshToken: m.tok.RefreshToken,
		Expiry:       time.Now().Add(-time.Minute),
	})

	fresh, err := src.Token()
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			status := 0
			if re.Response != nil {
				status = re.Response.StatusCode
			}
			return "", &TokenRefreshError{Status: status, Body: string(re.Body)}
		}
		return "", &UpstreamError{Err: err}
	}

	next := Token{
		AccessToken:   fresh.AccessToken,
		RefreshToken:  fresh.RefreshToken,
		ExpiresAt:     fresh.Expiry,
		LastRefreshAt: time.Now(),
	}
	if next.RefreshToken == "" {
		// Provider didn't rotate; keep using the one we sent.
		next.RefreshToken = m.tok.RefreshToken
	}
	m.tok = next

	if m.onRefresh != nil {
		if err := m.onRefresh(next); err != nil {
			return "", err
		}
	}

	return next.AccessToken, nil
}
