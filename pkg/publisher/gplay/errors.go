package gplay

import (
	"net/http"

	"github.com/oneconcern/playpub/pkg/errors"
	"github.com/oneconcern/playpub/pkg/publisher/status"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

func apiErrors(err *googleapi.Error, cause error) error {
	switch err.Code {
	case http.StatusUnauthorized:
		return status.ErrAuthorizationExpired.Wrap(cause)
	case http.StatusForbidden:
		return status.ErrForbidden.Wrap(cause)
	case http.StatusNotFound:
		return status.ErrNotFound.Wrap(cause)
	default:
		return status.ErrPublisherAPI.Wrap(cause)
	}
}

// toSentinelErrors returns sentinel errors defined by the status package
func toSentinelErrors(err error) error {
	if err == nil {
		return nil
	}

	// a token could not be refreshed: the credentials are revoked or expired
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return status.ErrAuthorizationExpired.Wrap(err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErrors(apiErr, err)
	}

	// anything else, including transport errors, timeouts and cancellations
	return status.ErrPublisherAPI.Wrap(err)
}
