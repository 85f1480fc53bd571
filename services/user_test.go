package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disasterreport/model"
	"disasterreport/repository"
)

func signup(t *testing.T, svc *UserService, mobile, name string) *model.User {
	t.Helper()
	u, err := svc.Signup(context.Background(), SignupInput{
		MobileNumber: mobile,
		Name:         name,
		Email:        name + "@example.com",
		Password:     "pw-" + name,
		Mpin:         "1234",
	})
	require.NoError(t, err)
	return u
}

func TestSignup(t *testing.T) {
	svc := NewUserService(repository.NewMemoryUserRepository(), nil)

	u := signup(t, svc, "9000000001", "alice")
	assert.Zero(t, u.WalletAmount)
	assert.Equal(t, HashPassword("pw-alice"), u.PasswordHash)
	assert.True(t, CheckMpin(u.MpinHash, "1234"))

	_, err := svc.Signup(context.Background(), SignupInput{MobileNumber: "9000000001", Name: "eve", Mpin: "0000"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repository.NewMemoryUserRepository(), nil)
	signup(t, svc, "9000000001", "alice")
	signup(t, svc, "9000000002", "bob")
	signup(t, svc, "9000000003", "carol")

	res, err := svc.Login(ctx, "9000000002", "1234")
	require.NoError(t, err)
	assert.Equal(t, model.PublicUser{MobileNumber: "9000000002", Name: "bob", Email: "bob@example.com"}, res.User)
	assert.Equal(t, []model.Contact{
		{MobileNumber: "9000000001", Name: "alice"},
		{MobileNumber: "9000000003", Name: "carol"},
	}, res.Contacts)
	assert.Empty(t, res.AccessToken)

	_, err = svc.Login(ctx, "9000000002", "9999")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, "9000000099", "1234")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLoginIssuesAccessToken(t *testing.T) {
	secret := []byte("test-secret")
	tokens := &TokenIssuer{
		Secret:  secret,
		TTL:     time.Minute,
		IsAdmin: func(m string) bool { return m == "9000000001" },
	}
	svc := NewUserService(repository.NewMemoryUserRepository(), tokens)
	signup(t, svc, "9000000001", "alice")

	res, err := svc.Login(context.Background(), "9000000001", "1234")
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)

	claims := &model.AccessClaims{}
	_, err = jwt.ParseWithClaims(res.AccessToken, claims, func(*jwt.Token) (interface{}, error) { return secret, nil })
	require.NoError(t, err)
	assert.Equal(t, "9000000001", claims.MobileNumber)
	assert.Equal(t, RoleAdmin, claims.Role)
}
