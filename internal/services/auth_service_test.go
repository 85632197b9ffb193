package services

import (
	"context"
	"testing"
	"time"

	"github.com/sazehapp/sazeh-api/internal/config"
	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/sazehapp/sazeh-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	repository.UserRepository
	mockFindByEmail func(ctx context.Context, email string) (*models.User, error)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.mockFindByEmail(ctx, email)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)
	assert.True(t, VerifyPassword("s3cret-password", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestAuthService_Login(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	mockRepo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{
				ID:                1,
				Email:             email,
				EncryptedPassword: hash,
				Role:              models.RoleAdmin,
			}, nil
		},
	}
	service := NewAuthService(mockRepo, testConfig())

	result, err := service.Login(context.Background(), "admin@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "admin@example.com", result.User.Email)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	mockRepo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, EncryptedPassword: hash}, nil
		},
	}
	service := NewAuthService(mockRepo, testConfig())

	result, err := service.Login(context.Background(), "admin@example.com", "battery-staple")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	mockRepo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	service := NewAuthService(mockRepo, testConfig())

	result, err := service.Login(context.Background(), "nobody@example.com", "whatever")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_Login_SuspendedUser(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	suspended := time.Now()

	mockRepo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{
				ID:                1,
				Email:             email,
				EncryptedPassword: hash,
				SuspendedAt:       &suspended,
			}, nil
		},
	}
	service := NewAuthService(mockRepo, testConfig())

	result, err := service.Login(context.Background(), "admin@example.com", "correct-horse")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInactiveUser)
}
