package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	issuer, err := NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	claims := NewClaims("teacher@example.com", UserTypeInstructor)
	raw, err := issuer.Issue(claims)
	require.NoError(t, err)

	got, err := issuer.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "teacher@example.com", got.Subject)
	assert.Equal(t, UserTypeInstructor, got.UserType)
}

func TestVerifyCustomerClaims(t *testing.T) {
	issuer, err := NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	claims := NewClaims("123456", UserTypeCustomer)
	claims.CustomerID = "123456"
	claims.InstructorID = "654321"

	raw, err := issuer.Issue(claims)
	require.NoError(t, err)

	got, err := issuer.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, UserTypeCustomer, got.UserType)
	assert.Equal(t, "123456", got.CustomerID)
	assert.Equal(t, "654321", got.InstructorID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer, err := NewIssuer("secret-a", time.Hour)
	require.NoError(t, err)
	other, err := NewIssuer("secret-b", time.Hour)
	require.NoError(t, err)

	raw, err := issuer.Issue(NewClaims("user@example.com", UserTypeUser))
	require.NoError(t, err)

	_, err = other.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	issuer, err := NewIssuer("test-secret", time.Nanosecond)
	require.NoError(t, err)

	raw, err := issuer.Issue(NewClaims("user@example.com", UserTypeUser))
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = issuer.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer, err := NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := issuer.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestNewIssuerGeneratesSecret(t *testing.T) {
	issuer, err := NewIssuer("", time.Hour)
	require.NoError(t, err)

	raw, err := issuer.Issue(NewClaims("user@example.com", UserTypeUser))
	require.NoError(t, err)

	_, err = issuer.Verify(raw)
	assert.NoError(t, err)
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotContains(t, hash, "correct horse")

	assert.True(t, VerifyPassword("correct horse battery staple", hash))
	assert.False(t, VerifyPassword("wrong password", hash))
	assert.False(t, VerifyPassword("", hash))
	assert.False(t, VerifyPassword("correct horse battery staple", "not-a-hash"))
}

func TestHashPasswordSalted(t *testing.T) {
	a, err := HashPassword("same-password")
	require.NoError(t, err)
	b, err := HashPassword("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
