package usecase

import (
	"context"
	"errors"

	"go-admin-panel/domain"
	"go-admin-panel/pkg/utils"
)

var userSortPolicy = domain.SortPolicy{
	Fields: map[string]string{
		"id":         "id",
		"name":       "name",
		"email":      "email",
		"created_at": "created_at",
	},
	DefaultField:     "created_at",
	DefaultDirection: domain.SortDesc,
}

type Hasher interface {
	Hash(plain string) (string, error)
	Compare(hashed, plain string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, userID string, option *domain.FindOneOption) (*domain.User, error)
	FindOne(ctx context.Context, filter *domain.UserFilter, option *domain.FindOneOption) (*domain.User, error)
	FindMany(ctx context.Context, filter *domain.UserFilter, option *domain.FindManyOption) ([]*domain.User, error)
	FindPage(ctx context.Context, filter *domain.UserFilter, option *domain.FindPageOption) ([]*domain.User, *domain.Pagination, error)
	Update(ctx context.Context, user *domain.User) error
	SoftDelete(ctx context.Context, userID string) error
	Restore(ctx context.Context, userID string) error
	HardDelete(ctx context.Context, userID string) error
}

type userUsecase struct {
	repo     UserRepository
	recorder domain.ActivityRecorder
	tx       domain.TxManager
	hasher   Hasher
	notifier domain.UserNotifier
}

func NewUserUsecase(
	repo UserRepository,
	recorder domain.ActivityRecorder,
	tx domain.TxManager,
	hasher Hasher,
	notifier domain.UserNotifier,

) domain.UserUsecase {
	return &userUsecase{
		repo:     repo,
		recorder: recorder,
		tx:       tx,
		hasher:   hasher,
		notifier: notifier,
	}
}

func (u *userUsecase) List(ctx context.Context, query *domain.ListQuery) ([]*domain.User, *domain.Pagination, error) {
	query.Normalize(userSortPolicy)

	filter := &domain.UserFilter{}
	if query.Search != "" {
		filter.SearchTerm = &query.Search
	}

	return u.repo.FindPage(ctx, filter, query.PageOption(userSortPolicy))
}

func (u *userUsecase) ListTrashed(ctx context.Context) ([]*domain.User, error) {
	return u.repo.FindMany(ctx, &domain.UserFilter{OnlyDeleted: true}, &domain.FindManyOption{
		Sort: []string{"deleted_at desc"},
	})
}

func (u *userUsecase) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	return u.findLive(ctx, userID)
}

// Create issues a random temporary credential, stores its hash and delivers
// the plain value to the new user out-of-band. The credential never appears
// in any response or audit entry.
func (u *userUsecase) Create(ctx context.Context, req *domain.UserCreateRequest) (*domain.User, error) {
	if err := u.checkEmailUnique(ctx, req.Email, nil); err != nil {
		return nil, err
	}

	temporaryPassword, err := utils.TemporaryPassword()
	if err != nil {
		return nil, domain.ErrInternalServerError.WithWrap(err)
	}
	hashed, err := u.hasher.Hash(temporaryPassword)
	if err != nil {
		return nil, domain.ErrPasswordHashFailed.WithWrap(err)
	}

	user := &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.Create(ctx, user); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventCreated,
			SubjectType: domain.UserSubjectType,
			SubjectID:   user.ID,
			New:         user.AuditAttributes(),
			AllowList:   domain.UserAuditFields,
		})
	})
	if err != nil {
		return nil, err
	}

	u.notifier.WelcomeWithTemporaryPassword(ctx, user, temporaryPassword)
	return user, nil
}

func (u *userUsecase) Update(ctx context.Context, userID string, req *domain.UserUpdateRequest) (*domain.User, error) {
	user, err := u.findLive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := u.checkEmailUnique(ctx, req.Email, &userID); err != nil {
		return nil, err
	}

	oldAttrs := user.AuditAttributes()

	user.Name = req.Name
	user.Email = req.Email

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.Update(ctx, user); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventUpdated,
			SubjectType: domain.UserSubjectType,
			SubjectID:   user.ID,
			Old:         oldAttrs,
			New:         user.AuditAttributes(),
			AllowList:   domain.UserAuditFields,
		})
	})
	if err != nil {
		return nil, err
	}

	// Only a real change warrants a notification; a no-op save stays silent.
	if changed, _ := domain.DiffSnapshots(oldAttrs, user.AuditAttributes(), domain.UserAuditFields); len(changed) > 0 {
		u.notifier.DetailsUpdated(ctx, user)
	}
	return user, nil
}

func (u *userUsecase) Delete(ctx context.Context, userID string) error {
	user, err := u.findLive(ctx, userID)
	if err != nil {
		return err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.SoftDelete(ctx, user.ID); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventDeleted,
			SubjectType: domain.UserSubjectType,
			SubjectID:   user.ID,
			Old:         user.AuditAttributes(),
			AllowList:   domain.UserAuditFields,
		})
	})
	if err != nil {
		return err
	}

	u.notifier.AccountDeactivated(ctx, user)
	return nil
}

func (u *userUsecase) Restore(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.findTrashed(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.Restore(ctx, user.ID); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventRestored,
			SubjectType: domain.UserSubjectType,
			SubjectID:   user.ID,
			New:         user.AuditAttributes(),
			AllowList:   domain.UserAuditFields,
		})
	})
	if err != nil {
		return nil, err
	}
	user.DeletedAt = 0
	return user, nil
}

func (u *userUsecase) ForceDelete(ctx context.Context, userID string) error {
	user, err := u.findTrashed(ctx, userID)
	if err != nil {
		return err
	}

	return u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.HardDelete(ctx, user.ID); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventForceDelete,
			SubjectType: domain.UserSubjectType,
			SubjectID:   user.ID,
			Old:         user.AuditAttributes(),
			AllowList:   domain.UserAuditFields,
		})
	})
}

// checkEmailUnique counts soft-deleted rows as conflicts: a trashed account
// keeps its email reserved until it is restored or purged.
func (u *userUsecase) checkEmailUnique(ctx context.Context, email string, excludeID *string) error {
	filter := &domain.UserFilter{
		EmailEq:        &email,
		IncludeDeleted: true,
	}
	if excludeID != nil {
		filter.IDNe = excludeID
	}

	existing, err := u.repo.FindOne(ctx, filter, nil)
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return domain.UniqueConflict("email", email)
	}
	return nil
}

func (u *userUsecase) findLive(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.repo.FindOne(ctx, &domain.UserFilter{ID: &userID}, nil)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (u *userUsecase) findTrashed(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.repo.FindOne(ctx, &domain.UserFilter{ID: &userID, OnlyDeleted: true}, nil)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrUserNotTrashed
		}
		return nil, err
	}
	return user, nil
}
