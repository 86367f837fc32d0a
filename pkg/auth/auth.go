// Package auth allows for authenticating playpub against some external identity provider
package auth

import (
	"context"

	"golang.org/x/oauth2"
)

// Authenticator knows how to obtain tokens from credentials.
//
// Implementations fetch a first token eagerly, so that invalid or revoked
// credentials are reported by TokenSource, before any API call is attempted.
type Authenticator interface {
	TokenSource(ctx context.Context) (oauth2.TokenSource, error)
}
