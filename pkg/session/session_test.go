package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	m := New("test-secret", time.Hour)

	token, err := m.Issue("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestVerify_Expired(t *testing.T) {
	m := New("test-secret", -time.Minute)

	token, err := m.Issue("admin")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_Tampered(t *testing.T) {
	m := New("test-secret", time.Hour)

	token, err := m.Issue("admin")
	require.NoError(t, err)

	_, err = m.Verify(token + "x")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_WrongSecret(t *testing.T) {
	issued, err := New("secret-a", time.Hour).Issue("admin")
	require.NoError(t, err)

	_, err = New("secret-b", time.Hour).Verify(issued)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_Garbage(t *testing.T) {
	m := New("test-secret", time.Hour)

	_, err := m.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_EmptySubject(t *testing.T) {
	m := New("test-secret", time.Hour)

	token, err := m.Issue("")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
