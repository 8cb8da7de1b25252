package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	id := primitive.NewObjectID().Hex()

	token, err := m.Generate(id, RoleStudent)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, RoleStudent, claims.Role)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-one", time.Hour).Generate("user", RoleRecruiter)
	require.NoError(t, err)

	_, err = NewManager("secret-two", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.Generate("user", RoleAdmin)
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsUnexpectedSigningMethod(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	claims := &Claims{
		UserID: primitive.NewObjectID().Hex(),
		Role:   RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Validate(unsigned)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, err := m.Validate("")
	assert.Error(t, err)

	_, err = m.Validate("not.a.token")
	assert.Error(t, err)
}
