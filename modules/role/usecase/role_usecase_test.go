package usecase

import (
	"context"
	"testing"

	"go-admin-panel/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoleRepo struct {
	roles map[string]*domain.Role

	gotOption  *domain.FindPageOption
	replaced   map[string][]*domain.Permission
	hardDelete []string
}

func newFakeRoleRepo(roles ...*domain.Role) *fakeRoleRepo {
	repo := &fakeRoleRepo{roles: map[string]*domain.Role{}, replaced: map[string][]*domain.Permission{}}
	for _, r := range roles {
		repo.roles[r.ID] = r
	}
	return repo
}

func (f *fakeRoleRepo) Create(ctx context.Context, role *domain.Role) error {
	if role.ID == "" {
		role.ID = "r-new"
	}
	f.roles[role.ID] = role
	return nil
}

func (f *fakeRoleRepo) FindOne(ctx context.Context, filter *domain.RoleFilter, option *domain.FindOneOption) (*domain.Role, error) {
	for _, r := range f.roles {
		if filter.ID != nil && r.ID != *filter.ID {
			continue
		}
		if filter.IDNe != nil && r.ID == *filter.IDNe {
			continue
		}
		if filter.NameEq != nil && r.Name != *filter.NameEq {
			continue
		}
		if filter.OnlyDeleted && !r.IsTrashed() {
			continue
		}
		if !filter.OnlyDeleted && !filter.IncludeDeleted && r.IsTrashed() {
			continue
		}
		return r, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (f *fakeRoleRepo) FindMany(ctx context.Context, filter *domain.RoleFilter, option *domain.FindManyOption) ([]*domain.Role, error) {
	var out []*domain.Role
	for _, r := range f.roles {
		if filter.OnlyDeleted && !r.IsTrashed() {
			continue
		}
		if !filter.OnlyDeleted && !filter.IncludeDeleted && r.IsTrashed() {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRoleRepo) FindPage(ctx context.Context, filter *domain.RoleFilter, option *domain.FindPageOption) ([]*domain.Role, *domain.Pagination, error) {
	f.gotOption = option
	roles, _ := f.FindMany(ctx, filter, nil)
	return roles, domain.NewPagination(option.Page, option.PerPage, int64(len(roles))), nil
}

func (f *fakeRoleRepo) Update(ctx context.Context, role *domain.Role) error {
	f.roles[role.ID] = role
	return nil
}

func (f *fakeRoleRepo) ReplacePermissions(ctx context.Context, role *domain.Role, permissions []*domain.Permission) error {
	f.replaced[role.ID] = permissions
	role.Permissions = permissions
	return nil
}

func (f *fakeRoleRepo) SoftDelete(ctx context.Context, roleID string) error {
	r, ok := f.roles[roleID]
	if !ok || r.IsTrashed() {
		return domain.ErrRecordNotFound
	}
	r.DeletedAt = 1700000000000
	return nil
}

func (f *fakeRoleRepo) Restore(ctx context.Context, roleID string) error {
	r, ok := f.roles[roleID]
	if !ok || !r.IsTrashed() {
		return domain.ErrRecordNotFound
	}
	r.DeletedAt = 0
	return nil
}

func (f *fakeRoleRepo) HardDelete(ctx context.Context, roleID string) error {
	if _, ok := f.roles[roleID]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(f.roles, roleID)
	f.hardDelete = append(f.hardDelete, roleID)
	return nil
}

type fakePermissionResolver struct {
	permissions []*domain.Permission
	gotFilter   *domain.PermissionFilter
}

func (f *fakePermissionResolver) FindMany(ctx context.Context, filter *domain.PermissionFilter, option *domain.FindManyOption) ([]*domain.Permission, error) {
	f.gotFilter = filter
	var out []*domain.Permission
	for _, p := range f.permissions {
		for _, id := range filter.IDIn {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

type fakeRecorder struct {
	entries []*domain.ActivityEntry
}

func (f *fakeRecorder) Record(ctx context.Context, entry *domain.ActivityEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

type nopTx struct{}

func (nopTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func liveRole(id, name string) *domain.Role {
	return &domain.Role{
		SQLModel: domain.SQLModel{ID: id},
		Name:     name,
		Status:   true,
	}
}

func trashedRole(id, name string) *domain.Role {
	r := liveRole(id, name)
	r.DeletedAt = 1700000000000
	return r
}

func newRoleUsecase(repo *fakeRoleRepo, resolver *fakePermissionResolver, recorder *fakeRecorder) domain.RoleUsecase {
	if resolver == nil {
		resolver = &fakePermissionResolver{}
	}
	if recorder == nil {
		recorder = &fakeRecorder{}
	}
	return NewRoleUsecase(repo, resolver, recorder, nopTx{})
}

func TestRoleListSortsByNameByDefault(t *testing.T) {
	repo := newFakeRoleRepo(liveRole("r-1", "editor"))
	uc := newRoleUsecase(repo, nil, nil)

	_, _, err := uc.List(context.Background(), &domain.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"name asc"}, repo.gotOption.Sort)
}

func TestRoleCreateRecordsActivity(t *testing.T) {
	repo := newFakeRoleRepo()
	recorder := &fakeRecorder{}
	uc := newRoleUsecase(repo, nil, recorder)

	role, err := uc.Create(context.Background(), &domain.RoleCreateRequest{Name: "editor"})
	require.NoError(t, err)
	assert.True(t, role.Status)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, domain.EventCreated, recorder.entries[0].Event)
	assert.Equal(t, domain.RoleSubjectType, recorder.entries[0].SubjectType)
}

func TestRoleCreateNameConflictCountsTrashed(t *testing.T) {
	repo := newFakeRoleRepo(trashedRole("r-1", "editor"))
	uc := newRoleUsecase(repo, nil, nil)

	_, err := uc.Create(context.Background(), &domain.RoleCreateRequest{Name: "editor"})
	require.Error(t, err)

	var detailed *domain.DetailedError
	require.ErrorAs(t, err, &detailed)
	assert.Equal(t, 422, detailed.StatusCode())
}

func TestRoleUpdateAllowsKeepingOwnName(t *testing.T) {
	repo := newFakeRoleRepo(liveRole("r-1", "editor"))
	uc := newRoleUsecase(repo, nil, nil)

	role, err := uc.Update(context.Background(), "r-1", &domain.RoleUpdateRequest{Name: "editor"})
	require.NoError(t, err)
	assert.Equal(t, "editor", role.Name)
}

func TestRoleUpdateRejectsTakenName(t *testing.T) {
	repo := newFakeRoleRepo(liveRole("r-1", "editor"), liveRole("r-2", "viewer"))
	uc := newRoleUsecase(repo, nil, nil)

	_, err := uc.Update(context.Background(), "r-1", &domain.RoleUpdateRequest{Name: "viewer"})
	require.Error(t, err)
}

func TestRoleAssignPermissionsDropsUnknownIDs(t *testing.T) {
	repo := newFakeRoleRepo(liveRole("r-1", "editor"))
	resolver := &fakePermissionResolver{permissions: []*domain.Permission{
		{SQLModel: domain.SQLModel{ID: "p-1"}, Name: "users.view"},
		{SQLModel: domain.SQLModel{ID: "p-2"}, Name: "users.create"},
	}}
	recorder := &fakeRecorder{}
	uc := newRoleUsecase(repo, resolver, recorder)

	role, err := uc.AssignPermissions(context.Background(), "r-1", &domain.AssignPermissionsRequest{
		PermissionIDs: []string{"p-1", "ghost"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"p-1", "ghost"}, resolver.gotFilter.IDIn)
	require.Len(t, role.Permissions, 1)
	assert.Equal(t, "p-1", role.Permissions[0].ID)
	assert.Len(t, repo.replaced["r-1"], 1)
	// Assignment replaces the set; it does not write an audit entry.
	assert.Empty(t, recorder.entries)
}

func TestRoleAssignPermissionsReplacesExistingSet(t *testing.T) {
	role := liveRole("r-1", "editor")
	role.Permissions = []*domain.Permission{{SQLModel: domain.SQLModel{ID: "p-old"}}}
	repo := newFakeRoleRepo(role)
	resolver := &fakePermissionResolver{permissions: []*domain.Permission{
		{SQLModel: domain.SQLModel{ID: "p-new"}},
	}}
	uc := newRoleUsecase(repo, resolver, nil)

	updated, err := uc.AssignPermissions(context.Background(), "r-1", &domain.AssignPermissionsRequest{
		PermissionIDs: []string{"p-new"},
	})
	require.NoError(t, err)
	require.Len(t, updated.Permissions, 1)
	assert.Equal(t, "p-new", updated.Permissions[0].ID)
}

func TestRoleDeleteThenRestore(t *testing.T) {
	repo := newFakeRoleRepo(liveRole("r-1", "editor"))
	uc := newRoleUsecase(repo, nil, nil)

	require.NoError(t, uc.Delete(context.Background(), "r-1"))
	assert.True(t, repo.roles["r-1"].IsTrashed())

	role, err := uc.Restore(context.Background(), "r-1")
	require.NoError(t, err)
	assert.False(t, role.IsTrashed())
}

func TestRoleRestoreLiveRoleFails(t *testing.T) {
	uc := newRoleUsecase(newFakeRoleRepo(liveRole("r-1", "editor")), nil, nil)

	_, err := uc.Restore(context.Background(), "r-1")
	assert.ErrorIs(t, err, domain.ErrRoleNotTrashed)
}

func TestRoleForceDeleteDetachesPermissionsFirst(t *testing.T) {
	role := trashedRole("r-1", "editor")
	role.Permissions = []*domain.Permission{{SQLModel: domain.SQLModel{ID: "p-1"}}}
	repo := newFakeRoleRepo(role)
	recorder := &fakeRecorder{}
	uc := newRoleUsecase(repo, nil, recorder)

	require.NoError(t, uc.ForceDelete(context.Background(), "r-1"))

	detached, ok := repo.replaced["r-1"]
	require.True(t, ok)
	assert.Nil(t, detached)
	assert.Equal(t, []string{"r-1"}, repo.hardDelete)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, domain.EventForceDelete, recorder.entries[0].Event)
}

func TestRoleForceDeleteLiveRoleFails(t *testing.T) {
	uc := newRoleUsecase(newFakeRoleRepo(liveRole("r-1", "editor")), nil, nil)

	err := uc.ForceDelete(context.Background(), "r-1")
	assert.ErrorIs(t, err, domain.ErrRoleNotTrashed)
}
