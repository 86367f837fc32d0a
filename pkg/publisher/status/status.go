// Package status declares error constants returned by the publisher
// and by implementations of its EditsService interface.
//
// NOTE: such constants are located in a separate package to avoid
// creating undue cyclical dependencies between pkg/publisher and one
// of its implementions.
package status

import (
	authstatus "github.com/oneconcern/playpub/pkg/auth/status"
	"github.com/oneconcern/playpub/pkg/errors"
)

var (
	// ErrInvalidInput indicates some locally detected problem with user input. No remote call has been made.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTrackUpdate indicates that a track update payload does not pass local validation
	ErrInvalidTrackUpdate = errors.New("invalid track update")

	// ErrAuthorizationExpired indicates that the session credentials have been revoked or have expired
	ErrAuthorizationExpired = errors.New("the credentials have been revoked or expired, please re-run the application to re-authorize")

	// ErrNotFound indicates that the publishing API did not find the target resource, e.g. an unknown package
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates that the publishing API forbids access to the target resource
	ErrForbidden = errors.New("forbidden")

	// ErrPublisherAPI indicates any other publishing API error
	ErrPublisherAPI = errors.New("publisher API error")
)

// Kind classifies errors into the broad categories reported to users
type Kind uint8

const (
	// KindNone is the kind of a nil error
	KindNone Kind = iota
	// KindValidation is a local input validation error
	KindValidation
	// KindAuthorization covers authentication failures and revoked or expired credentials
	KindAuthorization
	// KindRemote is any other error, usually coming from the publishing API or its transport
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	default:
		return "remote"
	}
}

// KindOf tells which kind of error err is
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidTrackUpdate):
		return KindValidation
	case errors.Is(err, ErrAuthorizationExpired),
		errors.Is(err, authstatus.ErrAuthentication),
		errors.Is(err, authstatus.ErrInvalidCredentials),
		errors.Is(err, authstatus.ErrMissingIdentity):
		return KindAuthorization
	default:
		return KindRemote
	}
}
