package tokens_test

import (
	"testing"
	"time"

	"github.com/SscSPs/bizbooks_backend/internal/utils/tokens"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "tokens-test-secret"

func TestIssueAndParse(t *testing.T) {
	signed, err := tokens.IssueOwnerToken("owner-1", secret, "bizbooks", time.Hour, time.Now())
	require.NoError(t, err)

	owner, err := tokens.ParseOwnerToken(signed, secret, "bizbooks")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", owner)

	owner, err = tokens.ParseOwnerToken(signed, secret, "")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", owner)
}

func TestIssueOwnerToken_RequiresOwner(t *testing.T) {
	_, err := tokens.IssueOwnerToken("", secret, "", time.Hour, time.Now())
	assert.ErrorIs(t, err, tokens.ErrMissingOwner)
}

func TestParseOwnerToken_Rejects(t *testing.T) {
	expired, err := tokens.IssueOwnerToken("owner-1", secret, "bizbooks", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = tokens.ParseOwnerToken(expired, secret, "bizbooks")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	valid, err := tokens.IssueOwnerToken("owner-1", secret, "bizbooks", time.Hour, time.Now())
	require.NoError(t, err)
	_, err = tokens.ParseOwnerToken(valid, "other-secret", "bizbooks")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = tokens.ParseOwnerToken(valid, secret, "someone-else")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{Subject: "owner-1"}).SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = tokens.ParseOwnerToken(hs512, secret, "")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}
