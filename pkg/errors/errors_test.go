package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	e1 := New("cause1")
	e2 := New("cause2").Wrap(e1)
	e := New("dummy").Wrap(e2)
	e3 := e.Unwrap()
	assert.True(t, Is(e, e1))
	assert.True(t, Is(e, e2))
	assert.True(t, e3 == e2)
}

func TestWrapKeepsSentinel(t *testing.T) {
	sentinel := New("sentinel")
	cause := fmt.Errorf("root cause")

	wrapped := sentinel.Wrap(cause)
	require.NoError(t, sentinel.Unwrap(), "wrapping must not mutate the sentinel")

	assert.True(t, Is(wrapped, sentinel))
	assert.True(t, Is(fmt.Errorf("context: %w", wrapped), sentinel))
	assert.True(t, Is(wrapped, cause))
	assert.False(t, Is(wrapped, New("sentinel")))
	assert.Equal(t, "sentinel: root cause", wrapped.Error())
	assert.Equal(t, "sentinel", sentinel.Error())

	rewrapped := wrapped.Wrap(fmt.Errorf("other"))
	assert.True(t, Is(rewrapped, sentinel))
}

type typedErr struct{ code int }

func (e typedErr) Error() string { return fmt.Sprintf("code %d", e.code) }

func TestAs(t *testing.T) {
	err := New("api").Wrap(typedErr{code: 401})

	var target typedErr
	require.True(t, As(err, &target))
	assert.Equal(t, 401, target.code)
}
