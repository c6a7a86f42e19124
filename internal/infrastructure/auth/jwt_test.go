package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uservo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
)

func TestJWTService_GenerateVerify(t *testing.T) {
	svc := NewJWTService("secret", "ticketdesk")

	token, err := svc.Generate(7, "carol@x.com", uservo.RoleHelpDesk, time.Minute)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "carol@x.com", claims.Email)
	assert.Equal(t, uservo.RoleHelpDesk, claims.Role)
}

func TestJWTService_Verify_Rejects(t *testing.T) {
	svc := NewJWTService("secret", "ticketdesk")

	expired, err := svc.Generate(7, "carol@x.com", uservo.RoleUser, -time.Minute)
	require.NoError(t, err)

	otherKey, err := NewJWTService("other", "ticketdesk").Generate(7, "carol@x.com", uservo.RoleUser, time.Minute)
	require.NoError(t, err)

	otherIssuer, err := NewJWTService("secret", "elsewhere").Generate(7, "carol@x.com", uservo.RoleUser, time.Minute)
	require.NoError(t, err)

	badRole, err := svc.Generate(7, "carol@x.com", uservo.Role("Root"), time.Minute)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 7, Email: "carol@x.com", Role: uservo.RoleUser})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"expired":      expired,
		"wrong key":    otherKey,
		"wrong issuer": otherIssuer,
		"invalid role": badRole,
		"alg none":     unsigned,
		"garbage":      "not-a-token",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Verify(token)
			assert.Error(t, err)
		})
	}
}
