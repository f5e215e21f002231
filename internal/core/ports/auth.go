package ports

import (
	"context"

	"github.com/studentregistry/registry-api/internal/core/domain"
)

// UserRepository is the persistence port for login accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// AnyWithRole reports whether at least one user holds the given role.
	AnyWithRole(ctx context.Context, roleName string) (bool, error)
	List(ctx context.Context, filter UserFilter, page PageRequest) ([]domain.User, int64, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

// RoleRepository is the persistence port for roles.
type RoleRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
	Create(ctx context.Context, role *domain.Role) error
	Delete(ctx context.Context, id int64) error
}

// UserFilter narrows user listings; zero values mean "no filter".
type UserFilter struct {
	Status   domain.UserStatus
	RoleName string
}

// TokenCodec issues and validates the stateless bearer tokens. Parse methods
// fail with domain.ErrInvalidToken on bad signature or structure; only
// Validate checks expiry and subject binding.
type TokenCodec interface {
	Issue(subject, role string) (string, error)
	ParseSubject(token string) (string, error)
	ParseRole(token string) (string, error)
	Validate(token, expectedSubject string) bool
}

// AuthService implements login, principal resolution, password changes, and
// the one-time admin bootstrap.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	CurrentUser(ctx context.Context, username string) (*domain.User, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
	SetupAdmin(ctx context.Context, username, email, password string) (*domain.User, error)
}
