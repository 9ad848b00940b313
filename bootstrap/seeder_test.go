package bootstrap

import (
	"context"
	"testing"

	"go-admin-panel/domain"
	"go-admin-panel/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seedRoleRepo struct {
	roles    map[string]*domain.Role
	replaced map[string][]*domain.Permission
}

func newSeedRoleRepo(roles ...*domain.Role) *seedRoleRepo {
	repo := &seedRoleRepo{roles: map[string]*domain.Role{}, replaced: map[string][]*domain.Permission{}}
	for _, r := range roles {
		repo.roles[r.Name] = r
	}
	return repo
}

func (f *seedRoleRepo) FindOne(ctx context.Context, filter *domain.RoleFilter, option *domain.FindOneOption) (*domain.Role, error) {
	if filter.NameEq != nil {
		if r, ok := f.roles[*filter.NameEq]; ok {
			return r, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (f *seedRoleRepo) Create(ctx context.Context, role *domain.Role) error {
	if role.ID == "" {
		role.ID = "r-" + role.Name
	}
	f.roles[role.Name] = role
	return nil
}

func (f *seedRoleRepo) ReplacePermissions(ctx context.Context, role *domain.Role, permissions []*domain.Permission) error {
	f.replaced[role.Name] = permissions
	role.Permissions = permissions
	return nil
}

type seedPermissionRepo struct {
	permissions map[string]*domain.Permission
}

func newSeedPermissionRepo(permissions ...*domain.Permission) *seedPermissionRepo {
	repo := &seedPermissionRepo{permissions: map[string]*domain.Permission{}}
	for _, p := range permissions {
		repo.permissions[p.Name] = p
	}
	return repo
}

func (f *seedPermissionRepo) FindOne(ctx context.Context, filter *domain.PermissionFilter, option *domain.FindOneOption) (*domain.Permission, error) {
	if filter.NameEq != nil {
		if p, ok := f.permissions[*filter.NameEq]; ok {
			return p, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (f *seedPermissionRepo) FindMany(ctx context.Context, filter *domain.PermissionFilter, option *domain.FindManyOption) ([]*domain.Permission, error) {
	var out []*domain.Permission
	for _, p := range f.permissions {
		out = append(out, p)
	}
	return out, nil
}

func (f *seedPermissionRepo) Create(ctx context.Context, permission *domain.Permission) error {
	if permission.ID == "" {
		permission.ID = "p-" + permission.Name
	}
	f.permissions[permission.Name] = permission
	return nil
}

type seedUserRepo struct {
	users map[string]*domain.User
}

func newSeedUserRepo(users ...*domain.User) *seedUserRepo {
	repo := &seedUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		repo.users[u.Email] = u
	}
	return repo
}

func (f *seedUserRepo) FindOne(ctx context.Context, filter *domain.UserFilter, option *domain.FindOneOption) (*domain.User, error) {
	if filter.EmailEq != nil {
		if u, ok := f.users[*filter.EmailEq]; ok {
			return u, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (f *seedUserRepo) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = "u-" + user.Email
	}
	f.users[user.Email] = user
	return nil
}

type seedHasher struct{}

func (seedHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func newTestSeeder(roles *seedRoleRepo, permissions *seedPermissionRepo, users *seedUserRepo) *Seeder {
	return NewSeeder(roles, permissions, users, seedHasher{}, log.MustNewDevelopmentLogger())
}

func TestSeedCreatesBaselineData(t *testing.T) {
	roles := newSeedRoleRepo()
	permissions := newSeedPermissionRepo()
	users := newSeedUserRepo()
	seeder := newTestSeeder(roles, permissions, users)

	err := seeder.Seed(context.Background(), AdminAccount{
		Name:     "Root",
		Email:    "root@example.com",
		Password: "changeme",
	})
	require.NoError(t, err)

	assert.Len(t, permissions.permissions, len(defaultPermissions()))

	role, ok := roles.roles[SuperAdminRoleName]
	require.True(t, ok)
	assert.True(t, role.Status)
	assert.Len(t, roles.replaced[SuperAdminRoleName], len(defaultPermissions()))

	admin, ok := users.users["root@example.com"]
	require.True(t, ok)
	assert.Equal(t, "Root", admin.Name)
	assert.Equal(t, "hashed:changeme", admin.Password)
}

func TestSeedIsIdempotent(t *testing.T) {
	roles := newSeedRoleRepo()
	permissions := newSeedPermissionRepo()
	users := newSeedUserRepo()
	seeder := newTestSeeder(roles, permissions, users)

	admin := AdminAccount{Email: "root@example.com", Password: "changeme"}
	require.NoError(t, seeder.Seed(context.Background(), admin))

	firstRole := roles.roles[SuperAdminRoleName]
	firstAdmin := users.users["root@example.com"]

	require.NoError(t, seeder.Seed(context.Background(), admin))
	assert.Len(t, permissions.permissions, len(defaultPermissions()))
	assert.Same(t, firstRole, roles.roles[SuperAdminRoleName])
	assert.Same(t, firstAdmin, users.users["root@example.com"])
}

func TestSeedSkipsAdminWhenNotConfigured(t *testing.T) {
	users := newSeedUserRepo()
	seeder := newTestSeeder(newSeedRoleRepo(), newSeedPermissionRepo(), users)

	require.NoError(t, seeder.Seed(context.Background(), AdminAccount{}))
	assert.Empty(t, users.users)
}

func TestSeedDoesNotReattachPermissionsToExistingRole(t *testing.T) {
	existing := &domain.Role{SQLModel: domain.SQLModel{ID: "r-1"}, Name: SuperAdminRoleName, Status: true}
	roles := newSeedRoleRepo(existing)
	seeder := newTestSeeder(roles, newSeedPermissionRepo(), newSeedUserRepo())

	require.NoError(t, seeder.Seed(context.Background(), AdminAccount{}))
	_, replaced := roles.replaced[SuperAdminRoleName]
	assert.False(t, replaced)
}

func TestSeedDefaultsAdminName(t *testing.T) {
	users := newSeedUserRepo()
	seeder := newTestSeeder(newSeedRoleRepo(), newSeedPermissionRepo(), users)

	require.NoError(t, seeder.Seed(context.Background(), AdminAccount{
		Email:    "root@example.com",
		Password: "changeme",
	}))
	assert.Equal(t, "Administrator", users.users["root@example.com"].Name)
}
