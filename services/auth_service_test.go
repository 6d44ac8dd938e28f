package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/akinalp/mblog/models"
	"github.com/akinalp/mblog/pkg"
)

func newTestAuth(t *testing.T, env *testEnv) *authService {
	t.Helper()
	svc := NewAuthService(env.users, "test-secret", 60).(*authService)
	svc.cost = bcrypt.MinCost
	return svc
}

func TestAuthServiceRegister(t *testing.T) {
	env := newTestEnv(t)
	auth := newTestAuth(t, env)
	ctx := context.Background()

	user, err := auth.Register(ctx, &models.RegisterRequest{UserName: "alice", Password: "pw123"})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "alice", user.NickName)
	require.Equal(t, models.GenderSecret, user.Gender)
	require.NotEqual(t, "pw123", user.PasswordHash)

	_, err = auth.Register(ctx, &models.RegisterRequest{UserName: "alice", Password: "other"})
	require.ErrorIs(t, err, pkg.ErrAlreadyExists)

	_, err = auth.Register(ctx, &models.RegisterRequest{UserName: "a b", Password: "pw123"})
	require.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestAuthServiceLogin(t *testing.T) {
	env := newTestEnv(t)
	auth := newTestAuth(t, env)
	ctx := context.Background()

	registered, err := auth.Register(ctx, &models.RegisterRequest{UserName: "alice", Password: "pw123"})
	require.NoError(t, err)

	res, err := auth.Login(ctx, &models.LoginRequest{UserName: "alice", Password: "pw123"})
	require.NoError(t, err)
	require.Equal(t, registered.ID, res.User.ID)

	claims, err := auth.ValidateAccessToken(res.Token)
	require.NoError(t, err)
	require.Equal(t, registered.ID, claims.UserID)
	require.Equal(t, "alice", claims.UserName)

	_, err = auth.Login(ctx, &models.LoginRequest{UserName: "alice", Password: "wrong"})
	require.ErrorIs(t, err, pkg.ErrUnauthorized)

	_, err = auth.Login(ctx, &models.LoginRequest{UserName: "ghost", Password: "pw123"})
	require.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestAuthServiceValidateAccessToken(t *testing.T) {
	env := newTestEnv(t)
	auth := newTestAuth(t, env)

	_, err := auth.ValidateAccessToken("not-a-token")
	require.ErrorIs(t, err, pkg.ErrUnauthorized)

	other := NewAuthService(env.users, "other-secret", 60).(*authService)
	foreign, err := other.issueToken(&models.User{ID: 1, UserName: "alice"})
	require.NoError(t, err)
	_, err = auth.ValidateAccessToken(foreign)
	require.ErrorIs(t, err, pkg.ErrUnauthorized)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.TokenClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			Issuer:    tokenIssuer,
		},
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = auth.ValidateAccessToken(signed)
	require.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestAuthServiceChangePassword(t *testing.T) {
	env := newTestEnv(t)
	auth := newTestAuth(t, env)
	ctx := context.Background()

	user, err := auth.Register(ctx, &models.RegisterRequest{UserName: "alice", Password: "pw123"})
	require.NoError(t, err)

	err = auth.ChangePassword(ctx, user.ID, &models.ChangePasswordRequest{Password: "bad", NewPassword: "new123"})
	require.ErrorIs(t, err, pkg.ErrUnauthorized)

	err = auth.ChangePassword(ctx, user.ID, &models.ChangePasswordRequest{Password: "pw123", NewPassword: "pw123"})
	require.ErrorIs(t, err, pkg.ErrBadRequest)

	require.NoError(t, auth.ChangePassword(ctx, user.ID, &models.ChangePasswordRequest{Password: "pw123", NewPassword: "new123"}))

	_, err = auth.Login(ctx, &models.LoginRequest{UserName: "alice", Password: "new123"})
	require.NoError(t, err)
}
