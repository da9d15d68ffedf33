// Package google mints delegated access tokens from a service-account key
// and performs authenticated probe requests against Google APIs.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
)

// TokenMinter obtains an access token acting as subject for scopes.
type TokenMinter interface {
	Token(ctx context.Context, subject string, scopes []string) (string, error)
}

// KeyFileMinter mints tokens with domain-wide delegation from a JSON key
// file on disk. The file is read on every call because it only exists for
// part of the run.
type KeyFileMinter struct {
	KeyFile string
}

// Token implements TokenMinter.
func (m KeyFileMinter) Token(ctx context.Context, subject string, scopes []string) (string, error) {
	data, err := os.ReadFile(m.KeyFile)
	if err != nil {
		return "", fmt.Errorf("read key file: %w", err)
	}

	cfg, err := googleoauth.JWTConfigFromJSON(data, scopes...)
	if err != nil {
		return "", fmt.Errorf("parse key file: %w", err)
	}
	cfg.Subject = subject

	tok, err := cfg.TokenSource(ctx).Token()
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// IsUnauthorized reports whether err is the token endpoint refusing the
// grant, which is how a scope missing from the delegation shows up.
func IsUnauthorized(err error) bool {
	var retrieveErr *oauth2.RetrieveError
	return errors.As(err, &retrieveErr)
}

var _ TokenMinter = KeyFileMinter{}
