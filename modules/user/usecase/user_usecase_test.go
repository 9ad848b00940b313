package usecase

import (
	"context"
	"testing"

	"go-admin-panel/domain"
	"go-admin-panel/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[string]*domain.User

	gotOption  *domain.FindPageOption
	hardDelete []string
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = "u-new"
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, userID string, option *domain.FindOneOption) (*domain.User, error) {
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (f *fakeUserRepo) FindOne(ctx context.Context, filter *domain.UserFilter, option *domain.FindOneOption) (*domain.User, error) {
	for _, u := range f.users {
		if filter.ID != nil && u.ID != *filter.ID {
			continue
		}
		if filter.IDNe != nil && u.ID == *filter.IDNe {
			continue
		}
		if filter.EmailEq != nil && u.Email != *filter.EmailEq {
			continue
		}
		if filter.OnlyDeleted && !u.IsTrashed() {
			continue
		}
		if !filter.OnlyDeleted && !filter.IncludeDeleted && u.IsTrashed() {
			continue
		}
		return u, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (f *fakeUserRepo) FindMany(ctx context.Context, filter *domain.UserFilter, option *domain.FindManyOption) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range f.users {
		if filter.OnlyDeleted && !u.IsTrashed() {
			continue
		}
		if !filter.OnlyDeleted && !filter.IncludeDeleted && u.IsTrashed() {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) FindPage(ctx context.Context, filter *domain.UserFilter, option *domain.FindPageOption) ([]*domain.User, *domain.Pagination, error) {
	f.gotOption = option
	users, _ := f.FindMany(ctx, filter, nil)
	return users, domain.NewPagination(option.Page, option.PerPage, int64(len(users))), nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) SoftDelete(ctx context.Context, userID string) error {
	u, ok := f.users[userID]
	if !ok || u.IsTrashed() {
		return domain.ErrRecordNotFound
	}
	u.DeletedAt = 1700000000000
	return nil
}

func (f *fakeUserRepo) Restore(ctx context.Context, userID string) error {
	u, ok := f.users[userID]
	if !ok || !u.IsTrashed() {
		return domain.ErrRecordNotFound
	}
	u.DeletedAt = 0
	return nil
}

func (f *fakeUserRepo) HardDelete(ctx context.Context, userID string) error {
	if _, ok := f.users[userID]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(f.users, userID)
	f.hardDelete = append(f.hardDelete, userID)
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

type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (fakeHasher) Compare(hashed, plain string) error { return nil }

type fakeNotifier struct {
	welcomes     []string
	updated      []string
	deactivated  []string
	lastPassword string
}

func (f *fakeNotifier) WelcomeWithTemporaryPassword(ctx context.Context, user *domain.User, temporaryPassword string) {
	f.welcomes = append(f.welcomes, user.Email)
	f.lastPassword = temporaryPassword
}

func (f *fakeNotifier) DetailsUpdated(ctx context.Context, user *domain.User) {
	f.updated = append(f.updated, user.Email)
}

func (f *fakeNotifier) AccountDeactivated(ctx context.Context, user *domain.User) {
	f.deactivated = append(f.deactivated, user.Email)
}

func liveUser(id, email string) *domain.User {
	return &domain.User{
		SQLModel: domain.SQLModel{ID: id},
		Name:     "User " + id,
		Email:    email,
		Password: "hash",
	}
}

func trashedUser(id, email string) *domain.User {
	u := liveUser(id, email)
	u.DeletedAt = 1700000000000
	return u
}

func newUserUsecase(repo *fakeUserRepo, recorder *fakeRecorder, notifier *fakeNotifier) domain.UserUsecase {
	if recorder == nil {
		recorder = &fakeRecorder{}
	}
	if notifier == nil {
		notifier = &fakeNotifier{}
	}
	return NewUserUsecase(repo, recorder, nopTx{}, fakeHasher{}, notifier)
}

func TestUserListNewestFirstByDefault(t *testing.T) {
	repo := newFakeUserRepo(liveUser("u-1", "a@example.com"))
	uc := newUserUsecase(repo, nil, nil)

	_, _, err := uc.List(context.Background(), &domain.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"created_at desc"}, repo.gotOption.Sort)
}

func TestUserCreateIssuesTemporaryPassword(t *testing.T) {
	repo := newFakeUserRepo()
	recorder := &fakeRecorder{}
	notifier := &fakeNotifier{}
	uc := newUserUsecase(repo, recorder, notifier)

	user, err := uc.Create(context.Background(), &domain.UserCreateRequest{
		Name:  "Alice",
		Email: "alice@example.com",
	})
	require.NoError(t, err)

	// The stored credential is the hash, never the plain value.
	assert.Len(t, notifier.lastPassword, utils.TemporaryPasswordLength)
	assert.Equal(t, "hashed:"+notifier.lastPassword, user.Password)
	assert.Equal(t, []string{"alice@example.com"}, notifier.welcomes)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	assert.Equal(t, domain.EventCreated, entry.Event)
	assert.Equal(t, domain.UserAuditFields, entry.AllowList)
	// The password is outside the audit allow-list.
	assert.NotContains(t, entry.AllowList, "password")
}

func TestUserCreateEmailConflictCountsTrashed(t *testing.T) {
	repo := newFakeUserRepo(trashedUser("u-1", "alice@example.com"))
	notifier := &fakeNotifier{}
	uc := newUserUsecase(repo, nil, notifier)

	_, err := uc.Create(context.Background(), &domain.UserCreateRequest{
		Name:  "Alice again",
		Email: "alice@example.com",
	})
	require.Error(t, err)

	var detailed *domain.DetailedError
	require.ErrorAs(t, err, &detailed)
	assert.Equal(t, 422, detailed.StatusCode())
	assert.Empty(t, notifier.welcomes)
}

func TestUserUpdateNotifiesOnRealChangeOnly(t *testing.T) {
	repo := newFakeUserRepo(liveUser("u-1", "alice@example.com"))
	notifier := &fakeNotifier{}
	uc := newUserUsecase(repo, nil, notifier)

	_, err := uc.Update(context.Background(), "u-1", &domain.UserUpdateRequest{
		Name:  "Alice Renamed",
		Email: "alice@example.com",
	})
	require.NoError(t, err)
	assert.Len(t, notifier.updated, 1)

	// A save that changes nothing stays silent.
	_, err = uc.Update(context.Background(), "u-1", &domain.UserUpdateRequest{
		Name:  "Alice Renamed",
		Email: "alice@example.com",
	})
	require.NoError(t, err)
	assert.Len(t, notifier.updated, 1)
}

func TestUserUpdateNoOpRecordsNoActivity(t *testing.T) {
	user := liveUser("u-1", "alice@example.com")
	repo := newFakeUserRepo(user)
	recorder := &fakeRecorder{}
	uc := newUserUsecase(repo, recorder, nil)

	_, err := uc.Update(context.Background(), "u-1", &domain.UserUpdateRequest{
		Name:  user.Name,
		Email: user.Email,
	})
	require.NoError(t, err)

	// The entry reaches the recorder, which drops it as a no-op; here the fake
	// keeps it, so assert the diff is empty instead.
	require.Len(t, recorder.entries, 1)
	changed, _ := domain.DiffSnapshots(recorder.entries[0].Old, recorder.entries[0].New, domain.UserAuditFields)
	assert.Empty(t, changed)
}

func TestUserUpdateAllowsKeepingOwnEmail(t *testing.T) {
	repo := newFakeUserRepo(liveUser("u-1", "alice@example.com"))
	uc := newUserUsecase(repo, nil, nil)

	user, err := uc.Update(context.Background(), "u-1", &domain.UserUpdateRequest{
		Name:  "Alice",
		Email: "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestUserUpdateRejectsTakenEmail(t *testing.T) {
	repo := newFakeUserRepo(liveUser("u-1", "alice@example.com"), liveUser("u-2", "bob@example.com"))
	uc := newUserUsecase(repo, nil, nil)

	_, err := uc.Update(context.Background(), "u-1", &domain.UserUpdateRequest{
		Name:  "Alice",
		Email: "bob@example.com",
	})
	require.Error(t, err)
}

func TestUserDeleteNotifiesDeactivation(t *testing.T) {
	repo := newFakeUserRepo(liveUser("u-1", "alice@example.com"))
	recorder := &fakeRecorder{}
	notifier := &fakeNotifier{}
	uc := newUserUsecase(repo, recorder, notifier)

	require.NoError(t, uc.Delete(context.Background(), "u-1"))
	assert.True(t, repo.users["u-1"].IsTrashed())
	assert.Equal(t, []string{"alice@example.com"}, notifier.deactivated)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, domain.EventDeleted, recorder.entries[0].Event)
}

func TestUserFindByIDSkipsTrashed(t *testing.T) {
	repo := newFakeUserRepo(trashedUser("u-1", "alice@example.com"))
	uc := newUserUsecase(repo, nil, nil)

	_, err := uc.FindByID(context.Background(), "u-1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRestoreAndForceDeleteGuards(t *testing.T) {
	repo := newFakeUserRepo(trashedUser("u-1", "a@example.com"), liveUser("u-2", "b@example.com"))
	uc := newUserUsecase(repo, nil, nil)

	user, err := uc.Restore(context.Background(), "u-1")
	require.NoError(t, err)
	assert.False(t, user.IsTrashed())

	_, err = uc.Restore(context.Background(), "u-2")
	assert.ErrorIs(t, err, domain.ErrUserNotTrashed)

	err = uc.ForceDelete(context.Background(), "u-2")
	assert.ErrorIs(t, err, domain.ErrUserNotTrashed)
}

func TestUserForceDeletePurgesRow(t *testing.T) {
	repo := newFakeUserRepo(trashedUser("u-1", "a@example.com"))
	recorder := &fakeRecorder{}
	uc := newUserUsecase(repo, recorder, nil)

	require.NoError(t, uc.ForceDelete(context.Background(), "u-1"))
	assert.Equal(t, []string{"u-1"}, repo.hardDelete)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, domain.EventForceDelete, recorder.entries[0].Event)
}
