package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotydw/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// NewSpotifyTokenSource returns a client-credentials token source whose tokens are cached at cachePath.
//
// A cached token is reused until it expires. An empty tokenURL targets the Spotify accounts service
// and an empty cachePath disables caching. A cache that cannot be written is logged to logger and
// the fresh token is still returned.
func NewSpotifyTokenSource(ctx context.Context, clientID, clientSecret, tokenURL, cachePath string, logger *log.Logger) (oauth2.TokenSource, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client id and secret are required", shared.ErrMissingCredentials)
	}
	if tokenURL == "" {
		tokenURL = spotifyTokenURL
	}

	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	src := cfg.TokenSource(ctx)
	if cachePath == "" {
		return oauth2.ReuseTokenSource(nil, src), nil
	}

	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	cached, _ := LoadToken(cachePath)
	return oauth2.ReuseTokenSource(cached, &cachingTokenSource{path: cachePath, src: src, logger: logger}), nil
}

// cachingTokenSource persists every freshly fetched token.
type cachingTokenSource struct {
	path   string
	src    oauth2.TokenSource
	logger *log.Logger
}

func (c *cachingTokenSource) Token() (*oauth2.Token, error) {
	token, err := c.src.Token()
	if err != nil {
		return nil, err
	}
	if err := SaveToken(c.path, token); err != nil {
		c.logger.Warn("spotify token not cached", "path", c.path, "error", err)
	}
	return token, nil
}

// LoadToken reads a token previously written by [SaveToken].
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token cache: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token cache: %w", err)
	}
	return &token, nil
}

// SaveToken writes token as JSON, readable only by the current user.
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token cache: %w", err)
	}
	return nil
}
