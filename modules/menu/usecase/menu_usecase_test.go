package usecase

import (
	"context"
	"testing"

	"go-admin-panel/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLocales = []string{"en", "id"}

type fakeMenuRepo struct {
	menus map[string]*domain.Menu

	gotFilter  *domain.MenuFilter
	gotOption  *domain.FindPageOption
	hardDelete []string
}

func newFakeMenuRepo(menus ...*domain.Menu) *fakeMenuRepo {
	repo := &fakeMenuRepo{menus: map[string]*domain.Menu{}}
	for _, m := range menus {
		repo.menus[m.ID] = m
	}
	return repo
}

func (f *fakeMenuRepo) Create(ctx context.Context, menu *domain.Menu) error {
	if menu.ID == "" {
		menu.ID = "m-new"
	}
	f.menus[menu.ID] = menu
	return nil
}

func (f *fakeMenuRepo) FindByID(ctx context.Context, menuID string, option *domain.FindOneOption) (*domain.Menu, error) {
	if m, ok := f.menus[menuID]; ok {
		return m, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (f *fakeMenuRepo) FindOne(ctx context.Context, filter *domain.MenuFilter, option *domain.FindOneOption) (*domain.Menu, error) {
	for _, m := range f.menus {
		if filter.ID != nil && m.ID != *filter.ID {
			continue
		}
		if filter.OnlyDeleted && !m.IsTrashed() {
			continue
		}
		if !filter.OnlyDeleted && !filter.IncludeDeleted && m.IsTrashed() {
			continue
		}
		return m, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (f *fakeMenuRepo) FindMany(ctx context.Context, filter *domain.MenuFilter, option *domain.FindManyOption) ([]*domain.Menu, error) {
	var out []*domain.Menu
	for _, m := range f.menus {
		if filter.OnlyDeleted && !m.IsTrashed() {
			continue
		}
		if !filter.OnlyDeleted && !filter.IncludeDeleted && m.IsTrashed() {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMenuRepo) FindPage(ctx context.Context, filter *domain.MenuFilter, option *domain.FindPageOption) ([]*domain.Menu, *domain.Pagination, error) {
	f.gotFilter = filter
	f.gotOption = option
	menus, _ := f.FindMany(ctx, filter, nil)
	return menus, domain.NewPagination(option.Page, option.PerPage, int64(len(menus))), nil
}

func (f *fakeMenuRepo) Update(ctx context.Context, menu *domain.Menu) error {
	f.menus[menu.ID] = menu
	return nil
}

func (f *fakeMenuRepo) SoftDelete(ctx context.Context, menuID string) error {
	m, ok := f.menus[menuID]
	if !ok || m.IsTrashed() {
		return domain.ErrRecordNotFound
	}
	m.DeletedAt = 1700000000000
	return nil
}

func (f *fakeMenuRepo) Restore(ctx context.Context, menuID string) error {
	m, ok := f.menus[menuID]
	if !ok || !m.IsTrashed() {
		return domain.ErrRecordNotFound
	}
	m.DeletedAt = 0
	return nil
}

func (f *fakeMenuRepo) HardDelete(ctx context.Context, menuID string) error {
	if _, ok := f.menus[menuID]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(f.menus, menuID)
	f.hardDelete = append(f.hardDelete, menuID)
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

func liveMenu(id string) *domain.Menu {
	return &domain.Menu{
		SQLModel:    domain.SQLModel{ID: id},
		Name:        domain.TranslatedString{"en": "Dashboard", "id": "Dasbor"},
		Description: domain.TranslatedString{"en": "Landing", "id": "Utama"},
		Route:       "/dashboard",
		Icon:        "home",
		Order:       1,
		Status:      true,
	}
}

func trashedMenu(id string) *domain.Menu {
	m := liveMenu(id)
	m.DeletedAt = 1700000000000
	return m
}

func TestMenuListUsesOrderColumnByDefault(t *testing.T) {
	repo := newFakeMenuRepo(liveMenu("m-1"))
	uc := NewMenuUsecase(repo, &fakeRecorder{}, nopTx{}, testLocales)

	_, _, err := uc.List(context.Background(), &domain.ListQuery{})
	require.NoError(t, err)

	assert.Equal(t, []string{"menu_order asc"}, repo.gotOption.Sort)
}

func TestMenuListExcludesTrashed(t *testing.T) {
	repo := newFakeMenuRepo(liveMenu("m-1"), trashedMenu("m-2"))
	uc := NewMenuUsecase(repo, &fakeRecorder{}, nopTx{}, testLocales)

	menus, _, err := uc.List(context.Background(), &domain.ListQuery{})
	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.Equal(t, "m-1", menus[0].ID)
}

func TestMenuCreateDefaultsStatusAndRecordsTranslations(t *testing.T) {
	repo := newFakeMenuRepo()
	recorder := &fakeRecorder{}
	uc := NewMenuUsecase(repo, recorder, nopTx{}, testLocales)

	menu, err := uc.Create(context.Background(), &domain.MenuCreateRequest{
		Name:        domain.TranslatedString{"en": "Reports", "id": "Laporan"},
		Description: domain.TranslatedString{"en": "Report pages", "id": "Halaman laporan"},
		Route:       "/reports",
		Icon:        "chart",
		Order:       2,
	})
	require.NoError(t, err)
	assert.True(t, menu.Status)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	assert.Equal(t, domain.EventCreated, entry.Event)
	assert.Equal(t, domain.MenuSubjectType, entry.SubjectType)
	assert.Equal(t, menu.Name, entry.ExtraAttributes["name"])
	assert.Equal(t, menu.Description, entry.ExtraAttributes["description"])
}

func TestMenuCreateHonorsExplicitStatus(t *testing.T) {
	uc := NewMenuUsecase(newFakeMenuRepo(), &fakeRecorder{}, nopTx{}, testLocales)

	disabled := false
	menu, err := uc.Create(context.Background(), &domain.MenuCreateRequest{
		Name:        domain.TranslatedString{"en": "Hidden", "id": "Tersembunyi"},
		Description: domain.TranslatedString{"en": "x", "id": "y"},
		Route:       "/hidden",
		Icon:        "eye-off",
		Order:       9,
		Status:      &disabled,
	})
	require.NoError(t, err)
	assert.False(t, menu.Status)
}

func TestMenuCreateRejectsMissingTranslation(t *testing.T) {
	recorder := &fakeRecorder{}
	uc := NewMenuUsecase(newFakeMenuRepo(), recorder, nopTx{}, testLocales)

	_, err := uc.Create(context.Background(), &domain.MenuCreateRequest{
		Name:        domain.TranslatedString{"en": "Only english"},
		Description: domain.TranslatedString{"en": "x", "id": "y"},
		Route:       "/x",
		Icon:        "x",
		Order:       1,
	})
	require.Error(t, err)
	assert.Empty(t, recorder.entries)
}

func TestMenuUpdateRecordsOldAndNewTranslations(t *testing.T) {
	repo := newFakeMenuRepo(liveMenu("m-1"))
	recorder := &fakeRecorder{}
	uc := NewMenuUsecase(repo, recorder, nopTx{}, testLocales)

	_, err := uc.Update(context.Background(), "m-1", &domain.MenuUpdateRequest{
		Name:        domain.TranslatedString{"en": "Home", "id": "Beranda"},
		Description: domain.TranslatedString{"en": "Landing", "id": "Utama"},
		Route:       "/home",
		Icon:        "home",
		Order:       1,
	})
	require.NoError(t, err)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	assert.Equal(t, domain.EventUpdated, entry.Event)
	assert.Equal(t, "/dashboard", entry.Old["route"])
	assert.Equal(t, "/home", entry.New["route"])
	assert.Equal(t, domain.TranslatedString{"en": "Dashboard", "id": "Dasbor"}, entry.ExtraOld["name"])
	assert.Equal(t, domain.TranslatedString{"en": "Home", "id": "Beranda"}, entry.ExtraAttributes["name"])
}

func TestMenuUpdateNotFound(t *testing.T) {
	uc := NewMenuUsecase(newFakeMenuRepo(), &fakeRecorder{}, nopTx{}, testLocales)

	_, err := uc.Update(context.Background(), "missing", &domain.MenuUpdateRequest{
		Name:        domain.TranslatedString{"en": "x", "id": "y"},
		Description: domain.TranslatedString{"en": "x", "id": "y"},
		Route:       "/x",
		Icon:        "x",
		Order:       1,
	})
	assert.ErrorIs(t, err, domain.ErrMenuNotFound)
}

func TestMenuToggleStatusFlipsTwice(t *testing.T) {
	repo := newFakeMenuRepo(liveMenu("m-1"))
	uc := NewMenuUsecase(repo, &fakeRecorder{}, nopTx{}, testLocales)

	menu, err := uc.ToggleStatus(context.Background(), "m-1")
	require.NoError(t, err)
	assert.False(t, menu.Status)

	menu, err = uc.ToggleStatus(context.Background(), "m-1")
	require.NoError(t, err)
	assert.True(t, menu.Status)
}

func TestMenuDeleteRecordsOldState(t *testing.T) {
	repo := newFakeMenuRepo(liveMenu("m-1"))
	recorder := &fakeRecorder{}
	uc := NewMenuUsecase(repo, recorder, nopTx{}, testLocales)

	require.NoError(t, uc.Delete(context.Background(), "m-1"))
	assert.True(t, repo.menus["m-1"].IsTrashed())

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	assert.Equal(t, domain.EventDeleted, entry.Event)
	assert.Equal(t, "/dashboard", entry.Old["route"])
	assert.NotEmpty(t, entry.ExtraOld)
}

func TestMenuDeleteTrashedMenuNotFound(t *testing.T) {
	uc := NewMenuUsecase(newFakeMenuRepo(trashedMenu("m-1")), &fakeRecorder{}, nopTx{}, testLocales)

	err := uc.Delete(context.Background(), "m-1")
	assert.ErrorIs(t, err, domain.ErrMenuNotFound)
}

func TestMenuRestoreOnlyTrashed(t *testing.T) {
	repo := newFakeMenuRepo(trashedMenu("m-1"), liveMenu("m-2"))
	recorder := &fakeRecorder{}
	uc := NewMenuUsecase(repo, recorder, nopTx{}, testLocales)

	menu, err := uc.Restore(context.Background(), "m-1")
	require.NoError(t, err)
	assert.False(t, menu.IsTrashed())
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, domain.EventRestored, recorder.entries[0].Event)

	_, err = uc.Restore(context.Background(), "m-2")
	assert.ErrorIs(t, err, domain.ErrMenuNotTrashed)
}

func TestMenuForceDeleteOnlyTrashed(t *testing.T) {
	repo := newFakeMenuRepo(trashedMenu("m-1"), liveMenu("m-2"))
	recorder := &fakeRecorder{}
	uc := NewMenuUsecase(repo, recorder, nopTx{}, testLocales)

	require.NoError(t, uc.ForceDelete(context.Background(), "m-1"))
	assert.Equal(t, []string{"m-1"}, repo.hardDelete)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, domain.EventForceDelete, recorder.entries[0].Event)

	err := uc.ForceDelete(context.Background(), "m-2")
	assert.ErrorIs(t, err, domain.ErrMenuNotTrashed)
}
