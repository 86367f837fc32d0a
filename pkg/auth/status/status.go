// Package status declares error constants returned by the various
// implementations of the Authenticator interface.
//
// NOTE: such constants are located in a separate package to avoid
// creating undue cyclical dependencies between pkg/auth and one
// of its implementions.
package status

import "github.com/oneconcern/playpub/pkg/errors"

var (
	// Sentinel errors returned by implementations of interfaces defined by auth

	// ErrInvalidCredentials indicates that the key file could not be read or parsed
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingIdentity indicates that a key requires a service account identity, which was not provided
	ErrMissingIdentity = errors.New("a service account email is required with this key")

	// ErrAuthentication indicates that the identity provider rejected the credentials
	ErrAuthentication = errors.New("could not authenticate service account")
)
