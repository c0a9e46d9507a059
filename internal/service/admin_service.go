package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"aidfind/internal/auth"
	"aidfind/internal/errors"
	"aidfind/internal/model"
	"aidfind/internal/repository"
)

// AdminService handles back-office authentication and operations.
type AdminService interface {
	Signup(ctx context.Context, username, password string) (*model.Admin, string, error)
	Login(ctx context.Context, username, password string) (*model.Admin, string, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ListRequests(ctx context.Context) ([]model.AidRequest, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type adminService struct {
	adminRepo   repository.AdminRepository
	userRepo    repository.UserRepository
	requestRepo repository.AidRequestRepository
	jwtService  *auth.JWTService
	cache       Cache
}

// NewAdminService creates a new admin service.
func NewAdminService(
	adminRepo repository.AdminRepository,
	userRepo repository.UserRepository,
	requestRepo repository.AidRequestRepository,
	jwtService *auth.JWTService,
	cache Cache,
) AdminService {
	return &adminService{
		adminRepo:   adminRepo,
		userRepo:    userRepo,
		requestRepo: requestRepo,
		jwtService:  jwtService,
		cache:       cache,
	}
}

// Signup creates a new admin and returns it with a signed token. Duplicate
// usernames fail on the unique index, not a preceding lookup.
func (s *adminService) Signup(ctx context.Context, username, password string) (*model.Admin, string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	admin := &model.Admin{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, "", errors.ErrUsernameTaken
		}
		return nil, "", fmt.Errorf("create admin: %w", err)
	}

	token, err := s.jwtService.GenerateAdminToken(admin.ID, admin.Username)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return admin, token, nil
}

// Login authenticates an admin and returns it with a signed token.
func (s *adminService) Login(ctx context.Context, username, password string) (*model.Admin, string, error) {
	admin, err := s.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", errors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateAdminToken(admin.ID, admin.Username)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return admin, token, nil
}

// ListUsers returns all members. Password hashes never serialize.
func (s *adminService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ListRequests returns every aid request with both parties attached.
func (s *adminService) ListRequests(ctx context.Context) ([]model.AidRequest, error) {
	requests, err := s.requestRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}

// DeleteUser removes a member and cascades to every aid request they authored.
// Admin identities cannot be deleted through this path.
func (s *adminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if user.Role == model.RoleAdmin {
		return errors.ErrAdminUndeletable
	}

	if err := s.userRepo.DeleteWithRequests(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	// The cascade may have removed pending requests from the public listing.
	_ = s.cache.Delete(ctx, pendingCacheKey)
	return nil
}
