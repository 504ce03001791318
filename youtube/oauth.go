package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"shorts-analyzer/shared/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuth device-flow fallback for environments without an API key. The
// token is persisted so subsequent runs skip the browser dance.

func oauthHTTPClient(ctx context.Context, cfg *config.YouTubeConfig) (*http.Client, error) {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       []string{"https://www.googleapis.com/auth/youtube.readonly"},
		Endpoint:     google.Endpoint,
	}

	token, err := loadOrRequestToken(ctx, oauthCfg, cfg.TokenFile)
	if err != nil {
		return nil, err
	}

	source := &persistingTokenSource{
		config:    oauthCfg,
		token:     token,
		tokenFile: cfg.TokenFile,
	}
	return oauth2.NewClient(ctx, source), nil
}

// loadOrRequestToken prefers a stored token: one with a refresh token is
// usable even when expired, since the token source refreshes it on
// demand. Only when nothing usable is on disk does it run the device
// authorization flow.
func loadOrRequestToken(ctx context.Context, oauthCfg *oauth2.Config, tokenFile string) (*oauth2.Token, error) {
	if tok, err := tokenFromFile(tokenFile); err == nil {
		if tok.RefreshToken != "" || tok.Valid() {
			return tok, nil
		}
	}

	tok, err := requestTokenViaDeviceFlow(ctx, oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("device authorization failed: %w (ensure the OAuth client is of type 'TVs and Limited Input devices' and the YouTube Data API v3 is enabled)", err)
	}
	if err := saveToken(tokenFile, tok); err != nil {
		log.Printf("Warning: failed to save OAuth token: %v", err)
	}
	return tok, nil
}

func requestTokenViaDeviceFlow(ctx context.Context, oauthCfg *oauth2.Config) (*oauth2.Token, error) {
	resp, err := oauthCfg.DeviceAuth(ctx, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, fmt.Errorf("unable to start device authorization: %w", err)
	}

	fmt.Printf("\nAuthorization required:\n")
	fmt.Printf("1. Visit %s in your browser.\n", resp.VerificationURI)
	fmt.Printf("2. Enter this code when prompted: %s\n", resp.UserCode)
	fmt.Printf("Waiting for authorization... (Ctrl+C to cancel)\n\n")

	tok, err := oauthCfg.DeviceAccessToken(ctx, resp, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, fmt.Errorf("device authorization did not complete: %w", err)
	}
	return tok, nil
}

// persistingTokenSource refreshes tokens on demand and writes refreshed
// tokens back to disk so they survive restarts.
type persistingTokenSource struct {
	config    *oauth2.Config
	token     *oauth2.Token
	tokenFile string
	mu        sync.Mutex
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newToken, err := s.config.TokenSource(context.Background(), s.token).Token()
	if err != nil {
		return nil, err
	}
	if newToken.AccessToken != s.token.AccessToken {
		log.Println("OAuth token refreshed, saving to file")
		s.token = newToken
		if err := saveToken(s.tokenFile, newToken); err != nil {
			log.Printf("Warning: failed to save refreshed token: %v", err)
		}
	}
	return newToken, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

func saveToken(path string, token *oauth2.Token) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("unable to create token directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to store oauth token: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode oauth token: %w", err)
	}
	return nil
}
