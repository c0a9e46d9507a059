package service

import (
	"context"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"aidfind/internal/auth"
	"aidfind/internal/errors"
	"aidfind/internal/model"
)

func newAdminService(adminRepo *MockAdminRepository, userRepo *MockUserRepository, requestRepo *MockAidRequestRepository) AdminService {
	return NewAdminService(adminRepo, userRepo, requestRepo, auth.NewJWTService("test-secret"), newFakeCache())
}

func TestAdminService_Signup(t *testing.T) {
	t.Run("successful signup", func(t *testing.T) {
		mockAdminRepo := new(MockAdminRepository)
		mockAdminRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Admin")).Return(nil)

		svc := newAdminService(mockAdminRepo, new(MockUserRepository), new(MockAidRequestRepository))
		admin, token, err := svc.Signup(context.Background(), "backoffice", "password123")

		assert.NoError(t, err)
		assert.NotNil(t, admin)
		assert.NotEmpty(t, token)
		assert.Equal(t, "backoffice", admin.Username)
		mockAdminRepo.AssertExpectations(t)
	})

	t.Run("duplicate username", func(t *testing.T) {
		mockAdminRepo := new(MockAdminRepository)
		mockAdminRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Admin")).
			Return(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

		svc := newAdminService(mockAdminRepo, new(MockUserRepository), new(MockAidRequestRepository))
		admin, token, err := svc.Signup(context.Background(), "backoffice", "password123")

		assert.Equal(t, errors.ErrUsernameTaken, err)
		assert.Nil(t, admin)
		assert.Empty(t, token)
		mockAdminRepo.AssertExpectations(t)
	})
}

func TestAdminService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)

	t.Run("successful login carries admin claims", func(t *testing.T) {
		mockAdminRepo := new(MockAdminRepository)
		mockAdminRepo.On("FindByUsername", mock.Anything, "backoffice").Return(&model.Admin{
			ID:           uuid.New(),
			Username:     "backoffice",
			PasswordHash: string(hashedPassword),
		}, nil)

		jwtService := auth.NewJWTService("test-secret")
		svc := NewAdminService(mockAdminRepo, new(MockUserRepository), new(MockAidRequestRepository), jwtService, newFakeCache())

		admin, token, err := svc.Login(context.Background(), "backoffice", "password123")

		assert.NoError(t, err)
		assert.NotNil(t, admin)

		claims, err := jwtService.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, claims.Role)
		assert.Equal(t, "backoffice", claims.Username)
		mockAdminRepo.AssertExpectations(t)
	})

	t.Run("unknown username", func(t *testing.T) {
		mockAdminRepo := new(MockAdminRepository)
		mockAdminRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		svc := newAdminService(mockAdminRepo, new(MockUserRepository), new(MockAidRequestRepository))
		admin, token, err := svc.Login(context.Background(), "ghost", "password123")

		assert.Equal(t, errors.ErrInvalidCredentials, err)
		assert.Nil(t, admin)
		assert.Empty(t, token)
		mockAdminRepo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockAdminRepo := new(MockAdminRepository)
		mockAdminRepo.On("FindByUsername", mock.Anything, "backoffice").Return(&model.Admin{
			Username:     "backoffice",
			PasswordHash: string(hashedPassword),
		}, nil)

		svc := newAdminService(mockAdminRepo, new(MockUserRepository), new(MockAidRequestRepository))
		admin, token, err := svc.Login(context.Background(), "backoffice", "wrong")

		assert.Equal(t, errors.ErrInvalidCredentials, err)
		assert.Nil(t, admin)
		assert.Empty(t, token)
		mockAdminRepo.AssertExpectations(t)
	})
}

func TestAdminService_DeleteUser(t *testing.T) {
	userID := uuid.New()

	t.Run("deletes member and cascades", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
			ID:   userID,
			Role: model.RoleSeeker,
		}, nil)
		mockUserRepo.On("DeleteWithRequests", mock.Anything, userID).Return(nil)

		svc := newAdminService(new(MockAdminRepository), mockUserRepo, new(MockAidRequestRepository))
		err := svc.DeleteUser(context.Background(), userID)

		assert.NoError(t, err)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("cascade invalidates the pending listing", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
			ID:   userID,
			Role: model.RoleSeeker,
		}, nil)
		mockUserRepo.On("DeleteWithRequests", mock.Anything, userID).Return(nil)

		// The deleted seeker's pending requests must not keep serving from
		// the cached public listing.
		fc := newFakeCache()
		_ = fc.Set(context.Background(), pendingCacheKey, []byte("stale"), pendingCacheTTL)

		svc := NewAdminService(new(MockAdminRepository), mockUserRepo, new(MockAidRequestRepository),
			auth.NewJWTService("test-secret"), fc)
		err := svc.DeleteUser(context.Background(), userID)

		assert.NoError(t, err)
		assert.False(t, fc.has(pendingCacheKey))
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		svc := newAdminService(new(MockAdminRepository), mockUserRepo, new(MockAidRequestRepository))
		err := svc.DeleteUser(context.Background(), userID)

		assert.Equal(t, errors.ErrUserNotFound, err)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("admin identities are untouchable", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
			ID:   userID,
			Role: model.RoleAdmin,
		}, nil)

		svc := newAdminService(new(MockAdminRepository), mockUserRepo, new(MockAidRequestRepository))
		err := svc.DeleteUser(context.Background(), userID)

		assert.Equal(t, errors.ErrAdminUndeletable, err)
		mockUserRepo.AssertNotCalled(t, "DeleteWithRequests", mock.Anything, mock.Anything)
		mockUserRepo.AssertExpectations(t)
	})
}

func TestAdminService_Listings(t *testing.T) {
	t.Run("list users", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("ListMembers", mock.Anything).Return([]model.User{
			{Name: "Asha", Role: model.RoleSeeker},
			{Name: "Meera", Role: model.RoleDonor},
		}, nil)

		svc := newAdminService(new(MockAdminRepository), mockUserRepo, new(MockAidRequestRepository))
		users, err := svc.ListUsers(context.Background())

		assert.NoError(t, err)
		assert.Len(t, users, 2)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("list requests", func(t *testing.T) {
		mockRequestRepo := new(MockAidRequestRepository)
		mockRequestRepo.On("ListAll", mock.Anything).Return([]model.AidRequest{
			{Status: model.StatusPending},
			{Status: model.StatusFulfilled},
		}, nil)

		svc := newAdminService(new(MockAdminRepository), new(MockUserRepository), mockRequestRepo)
		requests, err := svc.ListRequests(context.Background())

		assert.NoError(t, err)
		assert.Len(t, requests, 2)
		mockRequestRepo.AssertExpectations(t)
	})
}
