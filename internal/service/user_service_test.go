package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhil8824/ration-shop/internal/auth"
	"github.com/nikhil8824/ration-shop/internal/config"
	"github.com/nikhil8824/ration-shop/internal/datamodels/user"
	"github.com/nikhil8824/ration-shop/internal/repository/mysql"
)

func newUserService(t *testing.T) (*UserService, *config.JWTConfig) {
	db := newTestDB(t)
	jwtCfg := &config.JWTConfig{Secret: "test-secret"}
	return NewUserService(mysql.NewUserRepository(db), jwtCfg), jwtCfg
}

func TestRegisterAndLogin(t *testing.T) {
	svc, jwtCfg := newUserService(t)

	u, err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Nikhil",
		Email:    "nikhil@example.com",
		Password: "secret123",
		Phone:    "9876543210",
	})
	require.NoError(t, err)
	assert.Equal(t, user.RoleCustomer, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "secret123", u.Password, "password must be stored hashed")

	token, logged, err := svc.Login(context.Background(), "nikhil@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	claims, err := auth.ParseToken(jwtCfg, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, user.RoleCustomer, claims.Role)
}

func TestLoginRejectsBadCredentialsAndDuplicates(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.Register(context.Background(), &RegisterInput{
		Name: "A", Email: "a@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &RegisterInput{
		Name: "B", Email: "a@example.com", Password: "other456",
	})
	require.ErrorIs(t, err, ErrEmailTaken)

	_, _, err = svc.Login(context.Background(), "a@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "missing@example.com", "x")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDeactivatedUserCannotLogin(t *testing.T) {
	svc, _ := newUserService(t)

	u, err := svc.Register(context.Background(), &RegisterInput{
		Name: "C", Email: "c@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.SetActive(context.Background(), u.ID, false)
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "c@example.com", "secret123")
	require.ErrorIs(t, err, ErrUserDisabled)
}

func TestUserStats(t *testing.T) {
	svc, _ := newUserService(t)

	for _, email := range []string{"u1@example.com", "u2@example.com", "u3@example.com"} {
		_, err := svc.Register(context.Background(), &RegisterInput{Name: "U", Email: email, Password: "secret123"})
		require.NoError(t, err)
	}
	u, err := svc.repo.GetByEmail(context.Background(), "u3@example.com")
	require.NoError(t, err)
	u.Role = user.RoleAdmin
	require.NoError(t, svc.repo.Update(context.Background(), u))
	_, err = svc.SetActive(context.Background(), u.ID, false)
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.ActiveUsers)
	assert.Equal(t, int64(2), stats.TotalCustomers)
	assert.Equal(t, int64(1), stats.TotalAdmins)
}
