package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/infras/jwt"
	"hotel/internal/domains/auth/model/dto"
	userDto "hotel/internal/domains/user/model/dto"
	"hotel/shared/constant"
)

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
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestRegisterRequest_ToModels(t *testing.T) {
	req := dto.RegisterRequest{
		Email:    "guest@example.com",
		Password: "password123",
		ProfileRequest: userDto.ProfileRequest{
			Name:      "Guest",
			BirthDate: "1990-05-17",
			IDCard:    "ID-001",
			Phone:     "555-0100",
		},
	}

	user := req.ToUserModel(constant.ContextGuest, "hashed")
	customer := req.ToCustomerModel(constant.ContextGuest, user.ID)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, constant.RoleCustomer, user.Role)
	assert.Equal(t, "hashed", user.Password)
	assert.True(t, user.Active)
	assert.Zero(t, user.Cancellations)

	assert.Equal(t, user.ID, customer.UserID)
	assert.Equal(t, "guest@example.com", customer.Email)
	assert.Equal(t, "ID-001", customer.IDCard)
	require.NotNil(t, customer.BirthDate)
	assert.Equal(t, 1990, customer.BirthDate.Year())
	assert.Equal(t, constant.ContextGuest, customer.CreatedBy)
}

func TestRegisterRequest_ToCustomerModelWithoutBirthDate(t *testing.T) {
	req := dto.RegisterRequest{
		Email:          "guest@example.com",
		ProfileRequest: userDto.ProfileRequest{Name: "Guest", IDCard: "ID-002", Phone: "555-0101"},
	}

	customer := req.ToCustomerModel(constant.ContextGuest, "user-1")

	assert.Nil(t, customer.BirthDate)
}
