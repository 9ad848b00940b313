package usecase

import (
	"context"
	"testing"

	"go-admin-panel/common"
	"go-admin-panel/domain"
	"go-admin-panel/pkg/cache"
	"go-admin-panel/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePermissionRepo struct {
	permissions map[string]*domain.Permission

	findManyCalls int
	gotOption     *domain.FindPageOption
	hardDelete    []string
}

func newFakePermissionRepo(permissions ...*domain.Permission) *fakePermissionRepo {
	repo := &fakePermissionRepo{permissions: map[string]*domain.Permission{}}
	for _, p := range permissions {
		repo.permissions[p.ID] = p
	}
	return repo
}

func (f *fakePermissionRepo) Create(ctx context.Context, permission *domain.Permission) error {
	if permission.ID == "" {
		permission.ID = "p-new"
	}
	f.permissions[permission.ID] = permission
	return nil
}

func (f *fakePermissionRepo) FindOne(ctx context.Context, filter *domain.PermissionFilter, option *domain.FindOneOption) (*domain.Permission, error) {
	for _, p := range f.permissions {
		if filter.ID != nil && p.ID != *filter.ID {
			continue
		}
		if filter.IDNe != nil && p.ID == *filter.IDNe {
			continue
		}
		if filter.NameEq != nil && p.Name != *filter.NameEq {
			continue
		}
		if filter.OnlyDeleted && !p.IsTrashed() {
			continue
		}
		if !filter.OnlyDeleted && !filter.IncludeDeleted && p.IsTrashed() {
			continue
		}
		return p, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (f *fakePermissionRepo) FindMany(ctx context.Context, filter *domain.PermissionFilter, option *domain.FindManyOption) ([]*domain.Permission, error) {
	f.findManyCalls++
	var out []*domain.Permission
	for _, p := range f.permissions {
		if filter.OnlyDeleted && !p.IsTrashed() {
			continue
		}
		if !filter.OnlyDeleted && !filter.IncludeDeleted && p.IsTrashed() {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePermissionRepo) FindPage(ctx context.Context, filter *domain.PermissionFilter, option *domain.FindPageOption) ([]*domain.Permission, *domain.Pagination, error) {
	f.gotOption = option
	permissions, _ := f.FindMany(ctx, filter, nil)
	return permissions, domain.NewPagination(option.Page, option.PerPage, int64(len(permissions))), nil
}

func (f *fakePermissionRepo) Update(ctx context.Context, permission *domain.Permission) error {
	f.permissions[permission.ID] = permission
	return nil
}

func (f *fakePermissionRepo) SoftDelete(ctx context.Context, permissionID string) error {
	p, ok := f.permissions[permissionID]
	if !ok || p.IsTrashed() {
		return domain.ErrRecordNotFound
	}
	p.DeletedAt = 1700000000000
	return nil
}

func (f *fakePermissionRepo) Restore(ctx context.Context, permissionID string) error {
	p, ok := f.permissions[permissionID]
	if !ok || !p.IsTrashed() {
		return domain.ErrRecordNotFound
	}
	p.DeletedAt = 0
	return nil
}

func (f *fakePermissionRepo) HardDelete(ctx context.Context, permissionID string) error {
	if _, ok := f.permissions[permissionID]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(f.permissions, permissionID)
	f.hardDelete = append(f.hardDelete, permissionID)
	return nil
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

func permissionFixture(id, name, feature string) *domain.Permission {
	return &domain.Permission{
		SQLModel:  domain.SQLModel{ID: id},
		Name:      name,
		GuardName: domain.DefaultGuardName,
		Feature:   feature,
		Status:    true,
	}
}

func testCache(t *testing.T) cache.Client {
	t.Helper()
	adapter := common.NewLoggerAdapter(log.MustNewDevelopmentLogger())
	return cache.NewMemoryCache(&cache.Config{}, adapter)
}

func newPermissionUsecase(t *testing.T, repo *fakePermissionRepo, recorder *fakeRecorder) domain.PermissionUsecase {
	t.Helper()
	if recorder == nil {
		recorder = &fakeRecorder{}
	}
	return NewPermissionUsecase(repo, recorder, nopTx{}, testCache(t), log.MustNewDevelopmentLogger())
}

func TestPermissionListSortsByNameByDefault(t *testing.T) {
	repo := newFakePermissionRepo(permissionFixture("p-1", "users.view", "users"))
	uc := newPermissionUsecase(t, repo, nil)

	_, _, err := uc.List(context.Background(), &domain.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"name asc"}, repo.gotOption.Sort)
}

func TestPermissionGroupedByFeature(t *testing.T) {
	repo := newFakePermissionRepo(
		permissionFixture("p-1", "users.view", "users"),
		permissionFixture("p-2", "users.create", "users"),
		permissionFixture("p-3", "menus.view", "menus"),
	)
	uc := newPermissionUsecase(t, repo, nil)

	grouped, err := uc.GroupedByFeature(context.Background())
	require.NoError(t, err)
	assert.Len(t, grouped["users"], 2)
	assert.Len(t, grouped["menus"], 1)
}

func TestPermissionGroupedByFeatureServesFromCache(t *testing.T) {
	repo := newFakePermissionRepo(permissionFixture("p-1", "users.view", "users"))
	uc := newPermissionUsecase(t, repo, nil)

	_, err := uc.GroupedByFeature(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, repo.findManyCalls)

	// Second read hits the cache.
	_, err = uc.GroupedByFeature(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findManyCalls)
}

func TestPermissionMutationInvalidatesGroupedCache(t *testing.T) {
	repo := newFakePermissionRepo(permissionFixture("p-1", "users.view", "users"))
	uc := newPermissionUsecase(t, repo, nil)

	_, err := uc.GroupedByFeature(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, repo.findManyCalls)

	_, err = uc.Create(context.Background(), &domain.PermissionCreateRequest{
		Name:    "users.delete",
		Feature: "users",
	})
	require.NoError(t, err)

	grouped, err := uc.GroupedByFeature(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.findManyCalls)
	assert.Len(t, grouped["users"], 2)
}

func TestPermissionCreateDefaults(t *testing.T) {
	repo := newFakePermissionRepo()
	recorder := &fakeRecorder{}
	uc := newPermissionUsecase(t, repo, recorder)

	permission, err := uc.Create(context.Background(), &domain.PermissionCreateRequest{
		Name:    "users.view",
		Menu:    "Users",
		Feature: "users",
		Route:   "/users",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGuardName, permission.GuardName)
	assert.True(t, permission.Status)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, domain.EventCreated, recorder.entries[0].Event)
	assert.Equal(t, domain.PermissionSubjectType, recorder.entries[0].SubjectType)
}

func TestPermissionCreateNameConflictCountsTrashed(t *testing.T) {
	trashed := permissionFixture("p-1", "users.view", "users")
	trashed.DeletedAt = 1700000000000
	repo := newFakePermissionRepo(trashed)
	uc := newPermissionUsecase(t, repo, nil)

	_, err := uc.Create(context.Background(), &domain.PermissionCreateRequest{Name: "users.view"})
	require.Error(t, err)

	var detailed *domain.DetailedError
	require.ErrorAs(t, err, &detailed)
	assert.Equal(t, 422, detailed.StatusCode())
}

func TestPermissionUpdateAllowsKeepingOwnName(t *testing.T) {
	repo := newFakePermissionRepo(permissionFixture("p-1", "users.view", "users"))
	uc := newPermissionUsecase(t, repo, nil)

	permission, err := uc.Update(context.Background(), "p-1", &domain.PermissionUpdateRequest{
		Name:    "users.view",
		Feature: "accounts",
	})
	require.NoError(t, err)
	assert.Equal(t, "accounts", permission.Feature)
}

func TestPermissionToggleStatus(t *testing.T) {
	repo := newFakePermissionRepo(permissionFixture("p-1", "users.view", "users"))
	uc := newPermissionUsecase(t, repo, nil)

	permission, err := uc.ToggleStatus(context.Background(), "p-1")
	require.NoError(t, err)
	assert.False(t, permission.Status)
}

func TestPermissionRestoreAndForceDeleteGuards(t *testing.T) {
	live := permissionFixture("p-1", "users.view", "users")
	trashed := permissionFixture("p-2", "users.create", "users")
	trashed.DeletedAt = 1700000000000
	repo := newFakePermissionRepo(live, trashed)
	uc := newPermissionUsecase(t, repo, nil)

	_, err := uc.Restore(context.Background(), "p-1")
	assert.ErrorIs(t, err, domain.ErrPermissionNotTrashed)

	restored, err := uc.Restore(context.Background(), "p-2")
	require.NoError(t, err)
	assert.False(t, restored.IsTrashed())

	err = uc.ForceDelete(context.Background(), "p-1")
	assert.ErrorIs(t, err, domain.ErrPermissionNotTrashed)
}
