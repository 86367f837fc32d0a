// Package google authenticates Google service accounts.
package google

import (
	"bytes"
	"context"
	"encoding/pem"
	"fmt"
	"time"

	"github.com/oneconcern/playpub/pkg/auth"
	"github.com/oneconcern/playpub/pkg/auth/status"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/crypto/pkcs12"
	"golang.org/x/oauth2"
	goauth "golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

const (
	timeout = 60 * time.Second

	// AndroidPublisherScope is the authorization scope of the Google Play Developer API
	AndroidPublisherScope = "https://www.googleapis.com/auth/androidpublisher"

	// p12Password is the well-known password protecting the .p12 keys issued by Google
	p12Password = "notasecret"
)

var _ auth.Authenticator = Auth{}

// Auth implements Authenticator for google service account credentials
type Auth struct {
	email    string
	keyFile  string
	scopes   []string
	tokenURL string
	fs       afero.Fs
	l        *zap.Logger
}

// New returns a new instance of google Auth, requesting the androidpublisher scope by default
func New(opts ...Option) Auth {
	g := Auth{
		scopes: []string{AndroidPublisherScope},
		fs:     afero.NewOsFs(),
		l:      zap.NewNop(),
	}
	for _, apply := range opts {
		apply(&g)
	}
	return g
}

// TokenSource builds a token source from some service account key.
//
// A first token is fetched before returning: invalid keys, unknown identities
// or revoked credentials fail here with status.ErrAuthentication.
func (g Auth) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	cfg, err := g.jwtConfig()
	if err != nil {
		return nil, err
	}
	if g.tokenURL != "" {
		cfg.TokenURL = g.tokenURL
	}
	logger := g.l.With(zap.String("email", cfg.Email), zap.Strings("scopes", cfg.Scopes))

	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	tok, err := cfg.TokenSource(fetchCtx).Token()
	if err != nil {
		logger.Debug("authentication failed", zap.Error(err))
		return nil, status.ErrAuthentication.Wrap(err)
	}
	logger.Debug("authenticated", zap.Time("expiry", tok.Expiry))

	return oauth2.ReuseTokenSource(tok, cfg.TokenSource(ctx)), nil
}

func (g Auth) jwtConfig() (*jwt.Config, error) {
	if g.keyFile == "" {
		return nil, status.ErrInvalidCredentials.Wrap(fmt.Errorf("no key file specified"))
	}
	data, err := afero.ReadFile(g.fs, g.keyFile)
	if err != nil {
		return nil, status.ErrInvalidCredentials.Wrap(fmt.Errorf("could not read key file %s: %w", g.keyFile, err))
	}

	if isJSON(data) {
		var cfg *jwt.Config
		cfg, err = goauth.JWTConfigFromJSON(data, g.scopes...)
		if err != nil {
			return nil, status.ErrInvalidCredentials.Wrap(fmt.Errorf("invalid JSON key %s: %w", g.keyFile, err))
		}
		if g.email != "" && g.email != cfg.Email {
			g.l.Warn("the service account email does not match the JSON key: using the key",
				zap.String("email", g.email),
				zap.String("key_email", cfg.Email),
			)
		}
		return cfg, nil
	}

	if g.email == "" {
		return nil, status.ErrMissingIdentity
	}
	key, err := p12PrivateKey(data)
	if err != nil {
		return nil, status.ErrInvalidCredentials.Wrap(fmt.Errorf("invalid p12 key %s: %w", g.keyFile, err))
	}
	return &jwt.Config{
		Email:      g.email,
		PrivateKey: key,
		Scopes:     g.scopes,
		TokenURL:   goauth.JWTTokenURL,
	}, nil
}

func isJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// p12PrivateKey extracts the PEM-encoded private key from a .p12 key
func p12PrivateKey(data []byte) ([]byte, error) {
	blocks, err := pkcs12.ToPEM(data, p12Password)
	if err != nil {
		return nil, err
	}
	for _, block := range blocks {
		if block.Type == "PRIVATE KEY" {
			return pem.EncodeToMemory(block), nil
		}
	}
	return nil, fmt.Errorf("no private key found")
}
