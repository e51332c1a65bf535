package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resto/config"
	"resto/infras/jwt"
	jwtMocks "resto/infras/jwt/mocks"
	"resto/infras/otel/mocks"
	"resto/internal/domains/auth/model/dto"
	"resto/internal/domains/auth/service"
	userMocks "resto/internal/domains/user/mocks"
	userModel "resto/internal/domains/user/model"
	"resto/shared/constant"
	"resto/shared/failure"
	gModel "resto/shared/model"
	"resto/shared/timezone"
)

// "password" hashed with bcrypt cost 10.
const hashedPassword = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func stringPtr(s string) *string {
	return &s
}

func newAuthService(t *testing.T) (service.Auth, *userMocks.MockUser, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mockOtel, mockJWT)

	return svc, mockUserRepo, mockJWT
}

func validUser() userModel.User {
	return userModel.User{
		ID:       "user-id-123",
		Email:    "test@example.com",
		Password: hashedPassword,
		FullName: stringPtr("Test User"),
		Role:     constant.RoleCustomer,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}
}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "password123",
		FullName: stringPtr("New User"),
	}

	t.Run("successful registration", func(t *testing.T) {
		svc, mockUserRepo, _ := newAuthService(t)

		mockUserRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)
		mockUserRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				assert.Equal(t, req.Email, user.Email)
				assert.Equal(t, constant.RoleCustomer, user.Role)
				assert.True(t, user.Active)
				assert.NotEqual(t, req.Password, user.Password)

				return nil
			})

		err := svc.Register(context.Background(), req)

		assert.NoError(t, err)
	})

	t.Run("email already registered", func(t *testing.T) {
		svc, mockUserRepo, _ := newAuthService(t)

		mockUserRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := svc.Register(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		svc, mockUserRepo, _ := newAuthService(t)

		mockUserRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, errors.New("database error"))

		err := svc.Register(context.Background(), req)

		assert.Error(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	req := dto.LoginRequest{
		Email:    "test@example.com",
		Password: "password",
	}

	t.Run("successful login", func(t *testing.T) {
		svc, mockUserRepo, mockJWT := newAuthService(t)

		user := validUser()

		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)
		mockJWT.EXPECT().
			GenerateTokenPair(user.ID, user.Email, user.Role).
			Return(&jwt.TokenPair{
				AccessToken:  "access-token",
				RefreshToken: "refresh-token",
				ExpiresIn:    900,
			}, nil)
		mockUserRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.Login(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "access-token", res.AccessToken)
		assert.Equal(t, "refresh-token", res.RefreshToken)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, mockUserRepo, _ := newAuthService(t)

		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, nil)

		_, err := svc.Login(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, mockUserRepo, _ := newAuthService(t)

		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(validUser(), nil)

		badReq := req
		badReq.Password = "wrong-password"

		_, err := svc.Login(context.Background(), badReq)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("deactivated account", func(t *testing.T) {
		svc, mockUserRepo, _ := newAuthService(t)

		user := validUser()
		user.Active = false

		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		_, err := svc.Login(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("successful refresh", func(t *testing.T) {
		svc, _, mockJWT := newAuthService(t)

		mockJWT.EXPECT().
			RefreshTokens("old-refresh-token").
			Return(&jwt.TokenPair{
				AccessToken:  "new-access-token",
				RefreshToken: "new-refresh-token",
			}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "old-refresh-token"})

		require.NoError(t, err)
		assert.Equal(t, "new-access-token", res.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		svc, _, mockJWT := newAuthService(t)

		mockJWT.EXPECT().
			RefreshTokens("bad-token").
			Return(nil, errors.New("token expired"))

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad-token"})

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	req := dto.ChangePasswordRequest{
		CurrentPassword: "password",
		NewPassword:     "new-password-123",
	}

	t.Run("successful change", func(t *testing.T) {
		svc, mockUserRepo, _ := newAuthService(t)

		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(validUser(), nil)
		mockUserRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.ChangePassword(context.Background(), req, "user-id-123")

		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		svc, mockUserRepo, _ := newAuthService(t)

		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(validUser(), nil)

		badReq := req
		badReq.CurrentPassword = "not-the-password"

		err := svc.ChangePassword(context.Background(), badReq, "user-id-123")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestAuthService_Profile(t *testing.T) {
	t.Run("successful lookup", func(t *testing.T) {
		svc, mockUserRepo, _ := newAuthService(t)

		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(validUser(), nil)

		res, err := svc.Profile(context.Background(), "user-id-123")

		require.NoError(t, err)
		assert.Equal(t, "test@example.com", res.Email)
		assert.Equal(t, constant.RoleCustomer, res.Role)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, mockUserRepo, _ := newAuthService(t)

		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, nil)

		_, err := svc.Profile(context.Background(), "missing-id")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
