// Package provider builds the identity provider's authorization URL for the
// implicit id_token flow and decodes the returned token for display.
package provider

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	// DefaultAuthURL is Google's OAuth 2.0 authorization endpoint.
	DefaultAuthURL = "https://accounts.google.com/o/oauth2/v2/auth"

	// DefaultPrompt forces account selection without a full consent screen.
	DefaultPrompt = "select_account"
)

// DefaultScopes are requested when the config names none.
var DefaultScopes = []string{"openid", "email", "profile"}

// ErrMissingClientID is returned by Build when no client ID is configured.
var ErrMissingClientID = errors.New("provider client ID is not configured")

// Config describes the identity provider client.
type Config struct {
	AuthURL  string
	ClientID string
	Scopes   []string
	Prompt   string
}

// AuthRequest is an authorization URL together with the values the caller
// needs to check the response.
type AuthRequest struct {
	URL   string
	Nonce string
	State string
}

// Build returns the authorization URL that redirects to callbackURL with an
// id_token. A fresh nonce and state are generated for every call.
func Build(cfg Config, callbackURL string) (AuthRequest, error) {
	if strings.TrimSpace(cfg.ClientID) == "" {
		return AuthRequest{}, ErrMissingClientID
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if _, err := url.ParseRequestURI(cfg.AuthURL); err != nil {
		return AuthRequest{}, fmt.Errorf("invalid provider auth URL %q: %w", cfg.AuthURL, err)
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = DefaultScopes
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}

	nonce := uuid.NewString()
	state := nonce + "_" + uuid.NewString()

	oc := &oauth2.Config{
		ClientID:    cfg.ClientID,
		Endpoint:    oauth2.Endpoint{AuthURL: cfg.AuthURL},
		RedirectURL: callbackURL,
		Scopes:      cfg.Scopes,
	}

	authURL := oc.AuthCodeURL(state,
		oauth2.SetAuthURLParam("response_type", "id_token"),
		oauth2.SetAuthURLParam("nonce", nonce),
		oauth2.SetAuthURLParam("prompt", cfg.Prompt),
	)

	return AuthRequest{URL: authURL, Nonce: nonce, State: state}, nil
}
