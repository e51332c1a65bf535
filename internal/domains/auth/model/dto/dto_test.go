package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resto/infras/jwt"
	"resto/internal/domains/auth/model/dto"
	"resto/shared/constant"
)

func TestRegisterRequest_ToUserModel(t *testing.T) {
	fullName := "John Doe"
	req := dto.RegisterRequest{
		Email:    "john@example.com",
		Password: "plaintext",
		FullName: &fullName,
	}

	user := req.ToUserModel("system", "$2a$10$hashed")

	assert.NotEmpty(t, user.ID, "expected ID to be generated")
	assert.Equal(t, req.Email, user.Email)
	assert.Equal(t, "$2a$10$hashed", user.Password, "expected the hash, not the plaintext")
	assert.Equal(t, &fullName, user.FullName)
	assert.Equal(t, constant.RoleCustomer, user.Role)
	assert.True(t, user.Active)
	assert.Equal(t, "system", user.CreatedBy)
	assert.False(t, user.CreatedAt.IsZero(), "expected CreatedAt to be set")
}

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}
