package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
)

// UserService is the admin-facing account management. Passwords are hashed
// here; plaintext never reaches the repository.
type UserService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	audit  ports.AuditLogger
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, audit ports.AuditLogger, logger zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, audit: audit, logger: logger}
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.FindByEmail(ctx, email)
}

func (s *UserService) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.users.ExistsByUsername(ctx, username)
}

func (s *UserService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.users.ExistsByEmail(ctx, email)
}

func (s *UserService) List(ctx context.Context, filter ports.UserFilter, page ports.PageRequest) ([]domain.User, int64, error) {
	return s.users.List(ctx, filter, page.Normalize())
}

func (s *UserService) Create(ctx context.Context, username, email, password, roleName string, status domain.UserStatus, actor string) (*domain.User, error) {
	if taken, err := s.users.ExistsByUsername(ctx, username); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrUserExists
	}
	if taken, err := s.users.ExistsByEmail(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrUserExists
	}

	role, err := s.roles.FindByName(ctx, domain.NormalizeRole(roleName))
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if status == "" {
		status = domain.UserActive
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.ActionCreateUser, map[string]any{
		"userId":   user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.RoleName(),
	})
	return user, nil
}

// Update replaces the mutable fields. An empty password leaves the current
// hash untouched.
func (s *UserService) Update(ctx context.Context, id int64, username, email, password, roleName string, status domain.UserStatus, actor string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldUsername := user.Username
	oldEmail := user.Email

	user.Username = username
	user.Email = email
	user.Status = status
	if roleName != "" {
		role, err := s.roles.FindByName(ctx, domain.NormalizeRole(roleName))
		if err != nil {
			return nil, err
		}
		user.Role = role
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.ActionUpdateUser, map[string]any{
		"userId":      user.ID,
		"oldUsername": oldUsername,
		"newUsername": user.Username,
		"oldEmail":    oldEmail,
		"newEmail":    user.Email,
	})
	return user, nil
}

// Delete removes the account and detaches it from the audit trail: entries
// that referenced it keep a nil actor afterwards, the entries themselves
// are never removed.
func (s *UserService) Delete(ctx context.Context, id int64, actor string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// Recorded before the delete so the actor lookup still resolves.
	s.audit.Record(ctx, actor, domain.ActionDeleteUser, map[string]any{
		"userId":   user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.DetachActor(ctx, user.ID)
	return nil
}
