package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRFTokenLifecycle(t *testing.T) {
	m := NewCSRFManager("csrf-secret")
	sess := &Session{ID: "s1"}

	token, err := m.EnsureToken(sess)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	again, err := m.EnsureToken(sess)
	require.NoError(t, err)
	assert.Equal(t, token, again, "token is stable within a session")

	assert.NoError(t, m.VerifyToken(sess, token))
	assert.ErrorIs(t, m.VerifyToken(sess, "bogus"), ErrCSRFTokenMismatch)
	assert.ErrorIs(t, m.VerifyToken(sess, ""), ErrCSRFTokenMissing)
	assert.ErrorIs(t, m.VerifyToken(&Session{ID: "s2"}, token), ErrCSRFTokenMissing)
}

func TestCSRFRequiresSession(t *testing.T) {
	m := NewCSRFManager("csrf-secret")
	_, err := m.EnsureToken(nil)
	assert.ErrorIs(t, err, ErrSessionMissing)
	assert.ErrorIs(t, m.VerifyToken(nil, "x"), ErrCSRFTokenMissing)
}
