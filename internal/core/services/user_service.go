package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"bookshelf/internal/adapters/persistence/models"
	"bookshelf/internal/adapters/persistence/repositories"
	"bookshelf/internal/core/domain"
	"bookshelf/internal/pkg/password"
)

// UserService handles user accounts
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents a new account
type CreateUserInput struct {
	Username string
	Password string
	Role     domain.Role
}

// Create creates a user. An empty role means member.
func (s *UserService) Create(ctx context.Context, input *CreateUserInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if len(username) < 3 || len(username) > 50 {
		return nil, fmt.Errorf("%w: username must be 3 to 50 characters", domain.ErrInvalidInput)
	}
	if !password.ValidatePassword(input.Password) {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, password.MinLength)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleMember
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: username %q is taken", domain.ErrDuplicateEntry, username)
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Password: hashedPassword,
		Role:     string(role),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Printf("✅ User created: %s (%s)", user.Username, user.Role)
	return user.ToDomain(), nil
}

// GetByID gets a user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToDomain(), nil
}

// List lists users with pagination
func (s *UserService) List(ctx context.Context, actor *domain.Actor, page, limit int) ([]*domain.User, int64, error) {
	if err := domain.Authorize(actor, domain.CapManageUsers); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	rows, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	users := make([]*domain.User, len(rows))
	for i, row := range rows {
		users[i] = row.ToDomain()
	}
	return users, total, nil
}
