package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateMemberJWT(t *testing.T) {
	token, err := GenerateMemberJWT("member-1", "asha")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateMemberJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "member-1", claims.MemberID)
	assert.Equal(t, "asha", claims.Nickname)
	assert.Equal(t, "member-1", claims.Subject)
}

func TestValidateMemberJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateMemberJWT("not.a.token")
	assert.Error(t, err)
}

func TestValidateMemberJWTRejectsWrongKey(t *testing.T) {
	claims := MemberClaims{MemberID: "member-1"}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = ValidateMemberJWT(signed)
	assert.Error(t, err)
}

func TestValidateMemberJWTRejectsUnsignedToken(t *testing.T) {
	claims := MemberClaims{MemberID: "member-1"}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateMemberJWT(signed)
	assert.Error(t, err)
}
