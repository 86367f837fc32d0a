package status

import (
	"context"
	"fmt"
	"testing"

	authstatus "github.com/oneconcern/playpub/pkg/auth/status"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	for _, toPin := range []struct {
		name string
		err  error
		kind Kind
	}{
		{name: "nil", err: nil, kind: KindNone},
		{name: "invalid input", err: ErrInvalidInput.Wrap(fmt.Errorf("bad json")), kind: KindValidation},
		{name: "invalid track update", err: fmt.Errorf("update: %w", ErrInvalidTrackUpdate), kind: KindValidation},
		{name: "expired", err: fmt.Errorf("insert edit: %w", ErrAuthorizationExpired.Wrap(fmt.Errorf("401"))), kind: KindAuthorization},
		{name: "authentication", err: authstatus.ErrAuthentication.Wrap(fmt.Errorf("invalid_grant")), kind: KindAuthorization},
		{name: "key file", err: authstatus.ErrInvalidCredentials, kind: KindAuthorization},
		{name: "identity", err: authstatus.ErrMissingIdentity, kind: KindAuthorization},
		{name: "api", err: ErrPublisherAPI.Wrap(fmt.Errorf("quota exceeded")), kind: KindRemote},
		{name: "not found", err: ErrNotFound, kind: KindRemote},
		{name: "deadline", err: context.DeadlineExceeded, kind: KindRemote},
	} {
		testCase := toPin
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.kind, KindOf(testCase.err))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "authorization", KindAuthorization.String())
	assert.Equal(t, "remote", KindRemote.String())
	assert.Equal(t, "none", KindNone.String())
}
