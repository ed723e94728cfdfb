package session

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutil "github.com/trezcool/registrar/tests"
)

func signToken(t *testing.T, claims TokenClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestStore_Claims(t *testing.T) {
	store, _ := newTestStore(t, testutil.NewKVStore())

	_, err := store.Claims()
	assert.Equal(t, ErrNoToken, err)

	now := time.Now().UTC()
	want := TokenClaims{
		StandardClaims: jwt.StandardClaims{
			Audience:  "registrar",
			Issuer:    "registrar-api",
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(time.Hour).Unix(),
		},
		UserID:   7,
		Username: "admin",
		Type:     "access",
	}
	store.SetAccessToken(ctx, signToken(t, want))

	got, err := store.Claims()
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	store.SetAccessToken(ctx, "not-a-jwt")
	_, err = store.Claims()
	assert.Error(t, err)
}

func TestTokenClaims_ExpiresIn(t *testing.T) {
	now := time.Unix(1600000000, 0)
	tests := []struct {
		name      string
		expiresAt int64
		want      time.Duration
	}{
		{name: "unknown", expiresAt: 0, want: 0},
		{name: "expired", expiresAt: now.Add(-time.Minute).Unix(), want: 0},
		{name: "valid", expiresAt: now.Add(time.Hour).Unix(), want: time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := TokenClaims{StandardClaims: jwt.StandardClaims{ExpiresAt: tt.expiresAt}}
			assert.Equal(t, tt.want, c.ExpiresIn(now))
		})
	}
}
