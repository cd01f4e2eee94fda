package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quotely/internal/config"
	"quotely/internal/domain"
	"quotely/internal/service"
	"quotely/mocks"
)

var testJWT = config.JWTConfig{
	Secret:            "test-secret-at-least-32-characters!!",
	AccessTokenExpiry: time.Hour,
	Issuer:            "quotely-test",
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := service.HashPassword(password)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Email:        "owner@shop.in",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
}

func TestAuthService_Login_IssuesValidToken(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWT)
	user := activeUser(t, "correct-horse")

	repo.On("GetByEmail", mock.Anything, "owner@shop.in").Return(user, nil)

	res, err := svc.Login(context.Background(), service.LoginInput{Email: "owner@shop.in", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Same(t, user, res.User)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, time.Minute)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.ID, claims.TenantID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "quotely-test", claims.Issuer)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWT)

	repo.On("GetByEmail", mock.Anything, "owner@shop.in").Return(activeUser(t, "correct-horse"), nil)

	_, err := svc.Login(context.Background(), service.LoginInput{Email: "owner@shop.in", Password: "battery-staple"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWT)

	repo.On("GetByEmail", mock.Anything, "nobody@shop.in").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{Email: "nobody@shop.in", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_Inactive(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWT)
	user := activeUser(t, "correct-horse")
	user.IsActive = false

	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{Email: user.Email, Password: "correct-horse"})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthService_ValidateToken_WrongIssuer(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWT)

	claims := jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Audience:  jwt.ClaimStrings{"access"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWT.Secret))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWT)

	claims := jwt.RegisteredClaims{
		Issuer:    testJWT.Issuer,
		Audience:  jwt.ClaimStrings{"access"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWT.Secret))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	svc := service.NewAuthService(new(mocks.MockUserRepo), testJWT)

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
