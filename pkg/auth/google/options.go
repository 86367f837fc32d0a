package google

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Option is a functor to pass optional parameters to the google authenticator
type Option func(*Auth)

// Email sets the service account identity. It is required by .p12 keys.
func Email(email string) Option {
	return func(g *Auth) {
		g.email = email
	}
}

// KeyFile sets the path to the service account key, either a .p12 or a JSON key
func KeyFile(keyFile string) Option {
	return func(g *Auth) {
		g.keyFile = keyFile
	}
}

// Scopes overrides the authorization scopes requested
func Scopes(scopes ...string) Option {
	return func(g *Auth) {
		if len(scopes) > 0 {
			g.scopes = scopes
		}
	}
}

// TokenURL overrides the token endpoint of the identity provider
func TokenURL(tokenURL string) Option {
	return func(g *Auth) {
		g.tokenURL = tokenURL
	}
}

// Fs sets the file system where the key file is located
func Fs(fs afero.Fs) Option {
	return func(g *Auth) {
		if fs != nil {
			g.fs = fs
		}
	}
}

// Logger specifies a logger for this authenticator
func Logger(logger *zap.Logger) Option {
	return func(g *Auth) {
		if logger != nil {
			g.l = logger
		}
	}
}
