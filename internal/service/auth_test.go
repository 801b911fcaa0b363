package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	appdb "github.com/packnbake/storefront/internal/db"
	"github.com/packnbake/storefront/internal/models"
)

func seedDirectory(t *testing.T, env *testEnv) {
	t.Helper()
	require.NoError(t, appdb.Seed(env.DB, env.IDs))
}

func TestLoginSeededAdmin(t *testing.T) {
	env := newTestEnv(t)
	seedDirectory(t, env)
	ctx := context.Background()

	res, err := env.Auth.Login(ctx, "admin@packnbake.com", "admin123")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, res.User.Role)
	require.Equal(t, "admin@packnbake.com", res.User.Email)
	require.NotEmpty(t, res.AccessToken)
	require.NotEmpty(t, res.RefreshToken)

	_, err = env.Auth.Login(ctx, "admin@packnbake.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.Auth.Login(ctx, "nobody@example.com", "admin123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterNewUser(t *testing.T) {
	env := newTestEnv(t)
	seedDirectory(t, env)
	ctx := context.Background()

	res, err := env.Auth.Register(ctx, "New Baker", "baker@example.com", "secret99")
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, res.User.Role)
	require.Equal(t, "baker@example.com", res.User.Email)
	require.NotEmpty(t, res.User.ID)

	// The identity is durable: the same credentials log in later.
	again, err := env.Auth.Login(ctx, "baker@example.com", "secret99")
	require.NoError(t, err)
	require.Equal(t, res.User.ID, again.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	seedDirectory(t, env)

	_, err := env.Auth.Register(context.Background(), "Impostor", "admin@packnbake.com", "whatever")
	require.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterNeverGrantsAdmin(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.Auth.Register(context.Background(), "Sneaky", "sneaky@example.com", "pw123456")
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, res.User.Role)
}

func TestRefreshRotation(t *testing.T) {
	env := newTestEnv(t)
	seedDirectory(t, env)
	ctx := context.Background()

	res, err := env.Auth.Login(ctx, "user@example.com", "user123")
	require.NoError(t, err)

	rotated, err := env.Auth.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, res.RefreshToken, rotated.RefreshToken)
	require.Equal(t, res.User.ID, rotated.User.ID)

	// The old token was revoked by the rotation.
	_, err = env.Auth.Refresh(ctx, res.RefreshToken)
	require.Error(t, err)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	seedDirectory(t, env)
	ctx := context.Background()

	res, err := env.Auth.Login(ctx, "user@example.com", "user123")
	require.NoError(t, err)

	require.NoError(t, env.Auth.Logout(ctx, res.RefreshToken))

	_, err = env.Auth.Refresh(ctx, res.RefreshToken)
	require.Error(t, err)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	seedDirectory(t, env)
	ctx := context.Background()

	res, err := env.Auth.Login(ctx, "user@example.com", "user123")
	require.NoError(t, err)

	user, err := env.Auth.Me(ctx, res.User.ID)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", user.Email)
	require.Equal(t, models.RoleUser, user.Role)
}
