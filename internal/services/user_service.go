package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"supplies-service/internal/access"
	"supplies-service/internal/models"
	"supplies-service/internal/repository"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already in use")
	ErrSingleAdmin        = errors.New("an admin account already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
)

// UserService manages accounts and departments. All mutations are admin-only
// per the policy table.
type UserService struct {
	users  repository.UserRepositoryInterface
	policy *access.Policy
	audit  *AuditRecorder
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepositoryInterface, policy *access.Policy, audit *AuditRecorder) *UserService {
	return &UserService{users: users, policy: policy, audit: audit}
}

// CreateUserInput represents input for creating a user account
type CreateUserInput struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Role       string `json:"role" binding:"required"`
	Department string `json:"department" binding:"required"`
}

// UpdateUserInput patches an account. Nil fields are left unchanged.
type UpdateUserInput struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Role       *string `json:"role,omitempty"`
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty"`
}

func validRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleManager, models.RoleEmployee:
		return true
	}
	return false
}

// CreateUser creates an account with a bcrypt-hashed password. At most one
// ADMIN account may exist.
func (s *UserService) CreateUser(ctx context.Context, id access.Identity, input CreateUserInput) (*models.User, error) {
	decision := s.policy.CheckAccess(id, access.FeatureUsers, access.ActionCreate, "")
	if !decision.Allowed {
		return nil, ErrForbidden
	}

	if !validRole(input.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, input.Role)
	}

	if input.Role == models.RoleAdmin {
		count, err := s.users.CountByRole(ctx, models.RoleAdmin)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSingleAdmin
		}
	}

	if _, err := s.users.GetUserByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		Department:   input.Department,
		Status:       models.UserStatusActive,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.audit.Record(ctx, models.AuditActionCreate, models.EntityUser, user.ID, id.ID,
		fmt.Sprintf("Created user %s", user.Email),
		map[string]interface{}{"role": user.Role, "department": user.Department})

	return user, nil
}

// GetUser retrieves an account.
func (s *UserService) GetUser(ctx context.Context, id access.Identity, userID uuid.UUID) (*models.User, error) {
	decision := s.policy.CheckAccess(id, access.FeatureUsers, access.ActionView, "")
	if !decision.Allowed {
		return nil, ErrForbidden
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers retrieves all accounts, admins first.
func (s *UserService) ListUsers(ctx context.Context, id access.Identity) ([]models.User, error) {
	decision := s.policy.CheckAccess(id, access.FeatureUsers, access.ActionView, "")
	if !decision.Allowed {
		return nil, ErrForbidden
	}
	return s.users.ListUsers(ctx)
}

// UpdateUser patches an account. Promoting to ADMIN honors the single-admin
// invariant.
func (s *UserService) UpdateUser(ctx context.Context, id access.Identity, userID uuid.UUID, patch UpdateUserInput) (*models.User, error) {
	decision := s.policy.CheckAccess(id, access.FeatureUsers, access.ActionEdit, "")
	if !decision.Allowed {
		return nil, ErrForbidden
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if patch.Role != nil && *patch.Role != user.Role {
		if !validRole(*patch.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, *patch.Role)
		}
		if *patch.Role == models.RoleAdmin {
			count, err := s.users.CountByRole(ctx, models.RoleAdmin)
			if err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, ErrSingleAdmin
			}
		}
		user.Role = *patch.Role
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Department != nil {
		user.Department = *patch.Department
	}
	if patch.Status != nil {
		if *patch.Status != models.UserStatusActive && *patch.Status != models.UserStatusInactive {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *patch.Status)
		}
		user.Status = *patch.Status
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, models.AuditActionUpdate, models.EntityUser, user.ID, id.ID,
		fmt.Sprintf("Updated user %s", user.Email),
		map[string]interface{}{"role": user.Role, "status": user.Status})

	return user, nil
}

// DeleteUser removes an account. Callers cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, id access.Identity, userID uuid.UUID) error {
	decision := s.policy.CheckAccess(id, access.FeatureUsers, access.ActionDelete, "")
	if !decision.Allowed {
		return ErrForbidden
	}
	if userID == id.ID {
		return fmt.Errorf("%w: cannot delete own account", ErrInvalidInput)
	}

	if err := s.users.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.audit.Record(ctx, models.AuditActionDelete, models.EntityUser, userID, id.ID, "Deleted user", nil)
	return nil
}

// Authenticate verifies credentials at the session boundary. Inactive accounts
// are rejected even with a correct password. Updates LastSignInAt on success.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, ErrUserInactive
	}

	now := time.Now()
	user.LastSignInAt = &now
	if err := s.users.UpdateUser(ctx, user); err != nil {
		// Sign-in timestamp is advisory; login still succeeds.
		logrus.WithError(err).WithField("userId", user.ID).Warn("Failed to record sign-in time")
	}

	return user, nil
}

// ListDepartments retrieves all departments.
func (s *UserService) ListDepartments(ctx context.Context, id access.Identity) ([]models.Department, error) {
	decision := s.policy.CheckAccess(id, access.FeatureDepartments, access.ActionView, "")
	if !decision.Allowed {
		return nil, ErrForbidden
	}
	return s.users.ListDepartments(ctx)
}

// CreateDepartment creates a department.
func (s *UserService) CreateDepartment(ctx context.Context, id access.Identity, name, description string) (*models.Department, error) {
	decision := s.policy.CheckAccess(id, access.FeatureDepartments, access.ActionCreate, "")
	if !decision.Allowed {
		return nil, ErrForbidden
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	dept := &models.Department{Name: name, Description: description}
	if err := s.users.CreateDepartment(ctx, dept); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, models.AuditActionCreate, models.EntityDepartment, dept.ID, id.ID,
		fmt.Sprintf("Created department %q", dept.Name), nil)

	return dept, nil
}
