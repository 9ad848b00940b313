package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"go-admin-panel/domain"
	"go-admin-panel/pkg/log"
)

// RoleRepository covers the role operations the seeder needs.
type RoleRepository interface {
	FindOne(ctx context.Context, filter *domain.RoleFilter, option *domain.FindOneOption) (*domain.Role, error)
	Create(ctx context.Context, role *domain.Role) error
	ReplacePermissions(ctx context.Context, role *domain.Role, permissions []*domain.Permission) error
}

// PermissionRepository covers the permission operations the seeder needs.
type PermissionRepository interface {
	FindOne(ctx context.Context, filter *domain.PermissionFilter, option *domain.FindOneOption) (*domain.Permission, error)
	FindMany(ctx context.Context, filter *domain.PermissionFilter, option *domain.FindManyOption) ([]*domain.Permission, error)
	Create(ctx context.Context, permission *domain.Permission) error
}

// UserRepository covers the user operations the seeder needs.
type UserRepository interface {
	FindOne(ctx context.Context, filter *domain.UserFilter, option *domain.FindOneOption) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

type Hasher interface {
	Hash(plain string) (string, error)
}

// AdminAccount describes the optional first staff account created on boot.
// Empty Email disables the seeding.
type AdminAccount struct {
	Name     string
	Email    string
	Password string
}

const SuperAdminRoleName = "super-admin"

type defaultPermission struct {
	Name    string
	Menu    string
	Feature string
	Route   string
	Alias   string
}

// defaultPermissions is the baseline capability set the panel ships with.
// Seeding only ever inserts missing rows, so operators can rename or disable
// entries without them coming back on the next boot.
func defaultPermissions() []defaultPermission {
	return []defaultPermission{
		{Name: "users.view", Menu: "Users", Feature: "users", Route: "/users", Alias: "View users"},
		{Name: "users.create", Menu: "Users", Feature: "users", Route: "/users", Alias: "Create users"},
		{Name: "users.update", Menu: "Users", Feature: "users", Route: "/users", Alias: "Update users"},
		{Name: "users.delete", Menu: "Users", Feature: "users", Route: "/users", Alias: "Delete users"},
		{Name: "menus.view", Menu: "Menus", Feature: "menus", Route: "/menus", Alias: "View menus"},
		{Name: "menus.create", Menu: "Menus", Feature: "menus", Route: "/menus", Alias: "Create menus"},
		{Name: "menus.update", Menu: "Menus", Feature: "menus", Route: "/menus", Alias: "Update menus"},
		{Name: "menus.delete", Menu: "Menus", Feature: "menus", Route: "/menus", Alias: "Delete menus"},
		{Name: "roles.view", Menu: "Roles", Feature: "roles", Route: "/roles", Alias: "View roles"},
		{Name: "roles.create", Menu: "Roles", Feature: "roles", Route: "/roles", Alias: "Create roles"},
		{Name: "roles.update", Menu: "Roles", Feature: "roles", Route: "/roles", Alias: "Update roles"},
		{Name: "roles.delete", Menu: "Roles", Feature: "roles", Route: "/roles", Alias: "Delete roles"},
		{Name: "permissions.view", Menu: "Permissions", Feature: "permissions", Route: "/permissions", Alias: "View permissions"},
		{Name: "permissions.create", Menu: "Permissions", Feature: "permissions", Route: "/permissions", Alias: "Create permissions"},
		{Name: "permissions.update", Menu: "Permissions", Feature: "permissions", Route: "/permissions", Alias: "Update permissions"},
		{Name: "permissions.delete", Menu: "Permissions", Feature: "permissions", Route: "/permissions", Alias: "Delete permissions"},
		{Name: "activities.view", Menu: "Activity Log", Feature: "activities", Route: "/activities", Alias: "View activity log"},
	}
}

// Seeder creates the baseline data the panel cannot run without: the default
// permission set, the super-admin role holding all of them, and (optionally)
// a first staff account. Every step is idempotent.
type Seeder struct {
	roleRepo       RoleRepository
	permissionRepo PermissionRepository
	userRepo       UserRepository
	hasher         Hasher
	logger         log.Logger
}

func NewSeeder(
	roleRepo RoleRepository,
	permissionRepo PermissionRepository,
	userRepo UserRepository,
	hasher Hasher,
	logger log.Logger,
) *Seeder {
	return &Seeder{
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		userRepo:       userRepo,
		hasher:         hasher,
		logger:         logger,
	}
}

func (s *Seeder) Seed(ctx context.Context, admin AdminAccount) error {
	if err := s.seedPermissions(ctx); err != nil {
		return fmt.Errorf("seed permissions: %w", err)
	}
	if err := s.seedSuperAdminRole(ctx); err != nil {
		return fmt.Errorf("seed super-admin role: %w", err)
	}
	if admin.Email != "" {
		if err := s.seedAdminUser(ctx, admin); err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}
	}
	return nil
}

func (s *Seeder) seedPermissions(ctx context.Context) error {
	created := 0
	for _, dp := range defaultPermissions() {
		name := dp.Name
		existing, err := s.permissionRepo.FindOne(ctx, &domain.PermissionFilter{
			NameEq:         &name,
			IncludeDeleted: true,
		}, nil)
		if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
			return err
		}
		if existing != nil {
			continue
		}

		permission := &domain.Permission{
			Name:      dp.Name,
			GuardName: domain.DefaultGuardName,
			Menu:      dp.Menu,
			Feature:   dp.Feature,
			Route:     dp.Route,
			Alias:     dp.Alias,
			Status:    true,
		}
		if err := s.permissionRepo.Create(ctx, permission); err != nil {
			return err
		}
		created++
	}

	if created > 0 {
		s.logger.Info("Seeded default permissions", log.Int("created", created))
	}
	return nil
}

// seedSuperAdminRole creates the role once and, on creation, attaches every
// live permission. An existing role is left untouched so a trimmed-down
// permission set survives restarts.
func (s *Seeder) seedSuperAdminRole(ctx context.Context) error {
	name := SuperAdminRoleName
	existing, err := s.roleRepo.FindOne(ctx, &domain.RoleFilter{
		NameEq:         &name,
		IncludeDeleted: true,
	}, nil)
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return nil
	}

	role := &domain.Role{
		Name: SuperAdminRoleName,
		Description: domain.TranslatedString{
			"en": "Full access to every panel feature",
			"id": "Akses penuh ke semua fitur panel",
		},
		Status: true,
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return err
	}

	permissions, err := s.permissionRepo.FindMany(ctx, &domain.PermissionFilter{}, nil)
	if err != nil {
		return err
	}
	if err := s.roleRepo.ReplacePermissions(ctx, role, permissions); err != nil {
		return err
	}

	s.logger.Info("Seeded super-admin role",
		log.String("role", SuperAdminRoleName),
		log.Int("permissions", len(permissions)),
	)
	return nil
}

func (s *Seeder) seedAdminUser(ctx context.Context, admin AdminAccount) error {
	email := admin.Email
	existing, err := s.userRepo.FindOne(ctx, &domain.UserFilter{
		EmailEq:        &email,
		IncludeDeleted: true,
	}, nil)
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return nil
	}

	hashed, err := s.hasher.Hash(admin.Password)
	if err != nil {
		return err
	}

	name := admin.Name
	if name == "" {
		name = "Administrator"
	}

	user := &domain.User{
		Name:     name,
		Email:    admin.Email,
		Password: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Seeded default admin account", log.String("user_id", user.ID))
	return nil
}
