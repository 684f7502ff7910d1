package auth

import (
	"context"
	"os"
	"strings"
)

// TokenSource supplies the credential used to open upstream connections. An
// empty token is not an error: callers treat it as "feature disabled" and skip
// the connection attempt.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource always returns the same token.
type StaticTokenSource string

func (s StaticTokenSource) Token(context.Context) (string, error) {
	return strings.TrimSpace(string(s)), nil
}

// EnvTokenSource reads the token from an environment variable on every call so
// a rotated credential is picked up without a restart.
type EnvTokenSource string

func (e EnvTokenSource) Token(context.Context) (string, error) {
	return strings.TrimSpace(os.Getenv(string(e))), nil
}
