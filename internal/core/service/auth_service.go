package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
)

// AuthService implements login, password changes, and the one-time admin
// bootstrap.
type AuthService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	codec  ports.TokenCodec
	audit  ports.AuditLogger
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, codec ports.TokenCodec, audit ports.AuditLogger, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, roles: roles, codec: codec, audit: audit, logger: logger}
}

// Login verifies credentials and issues a bearer token. Every failure mode —
// unknown username, wrong password, disabled account, internal fault — is
// coerced into ErrInvalidCredentials so the response does not leak which.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Error().Err(err).Msg("login lookup failed")
		}
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.Enabled() {
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.Username, user.RoleName())
	if err != nil {
		s.logger.Error().Err(err).Msg("token issue failed")
		return "", nil, domain.ErrInvalidCredentials
	}

	s.logger.Info().Str("username", user.Username).Str("role", user.RoleName()).Msg("user logged in")
	return token, user, nil
}

// CurrentUser resolves the authenticated principal back to a full user
// record. Tokens outlive user deletion, so a miss here is a real case.
func (s *AuthService) CurrentUser(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

// ChangePassword re-hashes and persists the new password after verifying the
// old one.
func (s *AuthService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrInvalidOldPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.audit.Record(ctx, username, domain.ActionChangePassword, map[string]any{
		"userId":   user.ID,
		"username": username,
	})
	return nil
}

// SetupAdmin is the unauthenticated one-time bootstrap. It fails once any
// user holds the ADMIN role, system-wide. The check-then-insert is not atomic
// under concurrent bootstraps; the unique indexes on username/email close the
// duplicate-account half of that race.
func (s *AuthService) SetupAdmin(ctx context.Context, username, email, password string) (*domain.User, error) {
	if taken, err := s.users.ExistsByUsername(ctx, username); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrAdminExists
	}
	if taken, err := s.users.ExistsByEmail(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrAdminExists
	}
	if exists, err := s.users.AnyWithRole(ctx, domain.RoleAdmin); err != nil {
		return nil, err
	} else if exists {
		return nil, domain.ErrAdminExists
	}

	adminRole, err := s.ensureRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	// The default secondary role must exist so user management can assign it.
	if _, err := s.ensureRole(ctx, domain.RoleTeacher); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	admin := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         adminRole,
		Status:       domain.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.SystemActor, domain.ActionSetupAdmin, map[string]any{
		"userId":   admin.ID,
		"username": admin.Username,
		"email":    admin.Email,
		"role":     domain.RoleAdmin,
	})
	s.logger.Info().Str("username", username).Msg("admin bootstrap completed")
	return admin, nil
}

// ensureRole is an idempotent get-or-create.
func (s *AuthService) ensureRole(ctx context.Context, name string) (*domain.Role, error) {
	name = domain.NormalizeRole(name)
	role, err := s.roles.FindByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, domain.ErrRoleNotFound) {
		return nil, err
	}
	role = &domain.Role{Name: name}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}
