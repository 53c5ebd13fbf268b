package provider

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNonceMismatch is returned by CheckNonce when the token was not issued
// for this sign-in.
var ErrNonceMismatch = errors.New("id_token nonce does not match the sign-in request")

// Identity holds the display claims of an id_token.
type Identity struct {
	Subject   string    `json:"sub"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	Picture   string    `json:"picture,omitempty"`
	Issuer    string    `json:"iss,omitempty"`
	Nonce     string    `json:"-"`
	ExpiresAt time.Time `json:"exp"`
}

type idTokenClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Nonce   string `json:"nonce"`
	jwt.RegisteredClaims
}

// DecodeIdentity reads the claims of idToken WITHOUT verifying its signature.
// The result is only fit for display; the token must be verified by whoever
// relies on it.
func DecodeIdentity(idToken string) (Identity, error) {
	claims := &idTokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return Identity{}, fmt.Errorf("failed to decode id_token: %w", err)
	}

	id := Identity{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
		Issuer:  claims.Issuer,
		Nonce:   claims.Nonce,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

// CheckNonce compares the token's nonce with the one sent in the request.
func CheckNonce(id Identity, expected string) error {
	if expected == "" || id.Nonce != expected {
		return ErrNonceMismatch
	}
	return nil
}
