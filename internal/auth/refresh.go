package auth

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"athlete-monitor/internal/store"
)

// RefreshBuffer is how long before expiry a token is treated as stale
const RefreshBuffer = 60 * time.Second

// TokenSource refreshes tokens as needed and hands every new token to
// onRefresh so it survives restarts
type TokenSource struct {
	config    *oauth2.Config
	token     *oauth2.Token
	onRefresh func(*oauth2.Token) error
	mu        sync.Mutex
}

// NewTokenSource creates a TokenSource starting from token
func NewTokenSource(cfg *oauth2.Config, token *oauth2.Token, onRefresh func(*oauth2.Token) error) *TokenSource {
	return &TokenSource{
		config:    cfg,
		token:     token,
		onRefresh: onRefresh,
	}
}

// StoredTokenSource builds a TokenSource from the persisted login and
// writes refreshed tokens back to the database
func StoredTokenSource(cfg *oauth2.Config, db *store.DB, stored *store.Auth) *TokenSource {
	token := &oauth2.Token{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
		Expiry:       stored.ExpiresAt,
		TokenType:    "Bearer",
	}
	return NewTokenSource(cfg, token, func(t *oauth2.Token) error {
		logrus.WithField("expires_at", t.Expiry).Debug("persisting refreshed strava token")
		return db.UpdateTokens(t.AccessToken, t.RefreshToken, t.Expiry)
	})
}

// Token returns a valid token, refreshing if necessary
func (ts *TokenSource) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if time.Until(ts.token.Expiry) > RefreshBuffer {
		return ts.token, nil
	}

	newToken, err := ts.config.TokenSource(context.Background(), ts.token).Token()
	if err != nil {
		return nil, err
	}

	if ts.onRefresh != nil && newToken.AccessToken != ts.token.AccessToken {
		if err := ts.onRefresh(newToken); err != nil {
			return nil, err
		}
	}

	ts.token = newToken
	return newToken, nil
}

// IsExpired reports whether the current token is within RefreshBuffer of expiry
func (ts *TokenSource) IsExpired() bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return time.Until(ts.token.Expiry) <= RefreshBuffer
}
