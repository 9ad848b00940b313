package usecase

import (
	"context"
	"errors"
	"time"

	"go-admin-panel/domain"
	"go-admin-panel/pkg/cache"
	"go-admin-panel/pkg/log"

	"github.com/samber/lo"
)

var permissionSortPolicy = domain.SortPolicy{
	Fields: map[string]string{
		"name":       "name",
		"menu":       "menu",
		"feature":    "feature",
		"route":      "route",
		"created_at": "created_at",
	},
	DefaultField:     "name",
	DefaultDirection: domain.SortAsc,
}

const (
	groupedCacheKey = "permissions:grouped_by_feature"
	groupedCacheTTL = 10 * time.Minute
)

type PermissionRepository interface {
	Create(ctx context.Context, permission *domain.Permission) error
	FindOne(ctx context.Context, filter *domain.PermissionFilter, option *domain.FindOneOption) (*domain.Permission, error)
	FindMany(ctx context.Context, filter *domain.PermissionFilter, option *domain.FindManyOption) ([]*domain.Permission, error)
	FindPage(ctx context.Context, filter *domain.PermissionFilter, option *domain.FindPageOption) ([]*domain.Permission, *domain.Pagination, error)
	Update(ctx context.Context, permission *domain.Permission) error
	SoftDelete(ctx context.Context, permissionID string) error
	Restore(ctx context.Context, permissionID string) error
	HardDelete(ctx context.Context, permissionID string) error
}

type permissionUsecase struct {
	repo     PermissionRepository
	recorder domain.ActivityRecorder
	tx       domain.TxManager
	cache    cache.Client
	logger   log.Logger
}

func NewPermissionUsecase(
	repo PermissionRepository,
	recorder domain.ActivityRecorder,
	tx domain.TxManager,
	cacheClient cache.Client,
	logger log.Logger,

) domain.PermissionUsecase {
	return &permissionUsecase{
		repo:     repo,
		recorder: recorder,
		tx:       tx,
		cache:    cacheClient,
		logger:   logger,
	}
}

func (u *permissionUsecase) List(ctx context.Context, query *domain.ListQuery) ([]*domain.Permission, *domain.Pagination, error) {
	query.Normalize(permissionSortPolicy)

	filter := &domain.PermissionFilter{}
	if query.Search != "" {
		filter.SearchTerm = &query.Search
	}

	return u.repo.FindPage(ctx, filter, query.PageOption(permissionSortPolicy))
}

func (u *permissionUsecase) ListTrashed(ctx context.Context) ([]*domain.Permission, error) {
	return u.repo.FindMany(ctx, &domain.PermissionFilter{OnlyDeleted: true}, &domain.FindManyOption{
		Sort: []string{"deleted_at desc"},
	})
}

// GroupedByFeature buckets every live permission under its feature label. The
// result feeds the role assignment page, so it is cached and invalidated on
// any permission mutation.
func (u *permissionUsecase) GroupedByFeature(ctx context.Context) (map[string][]*domain.Permission, error) {
	var grouped map[string][]*domain.Permission
	if err := cache.GetJSON(u.cache, ctx, groupedCacheKey, &grouped); err == nil && grouped != nil {
		return grouped, nil
	}

	permissions, err := u.repo.FindMany(ctx, &domain.PermissionFilter{}, &domain.FindManyOption{
		Sort: []string{"feature asc", "name asc"},
	})
	if err != nil {
		return nil, err
	}

	grouped = lo.GroupBy(permissions, func(p *domain.Permission) string {
		return p.Feature
	})

	if err := cache.SetJSON(u.cache, ctx, groupedCacheKey, grouped, groupedCacheTTL); err != nil {
		u.logger.Warn("failed to cache grouped permissions", log.Error(err))
	}
	return grouped, nil
}

func (u *permissionUsecase) Create(ctx context.Context, req *domain.PermissionCreateRequest) (*domain.Permission, error) {
	if err := u.checkNameUnique(ctx, req.Name, nil); err != nil {
		return nil, err
	}

	permission := &domain.Permission{
		Name:      req.Name,
		GuardName: domain.DefaultGuardName,
		Menu:      req.Menu,
		Feature:   req.Feature,
		Route:     req.Route,
		Alias:     req.Alias,
		Status:    true,
	}

	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.Create(ctx, permission); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventCreated,
			SubjectType: domain.PermissionSubjectType,
			SubjectID:   permission.ID,
			New:         permission.AuditAttributes(),
			AllowList:   domain.PermissionAuditFields,
		})
	})
	if err != nil {
		return nil, err
	}

	u.invalidateGrouped(ctx)
	return permission, nil
}

func (u *permissionUsecase) Update(ctx context.Context, permissionID string, req *domain.PermissionUpdateRequest) (*domain.Permission, error) {
	permission, err := u.findLive(ctx, permissionID)
	if err != nil {
		return nil, err
	}
	if err := u.checkNameUnique(ctx, req.Name, &permissionID); err != nil {
		return nil, err
	}

	oldAttrs := permission.AuditAttributes()

	permission.Name = req.Name
	permission.Menu = req.Menu
	permission.Feature = req.Feature
	permission.Route = req.Route
	permission.Alias = req.Alias

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.Update(ctx, permission); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventUpdated,
			SubjectType: domain.PermissionSubjectType,
			SubjectID:   permission.ID,
			Old:         oldAttrs,
			New:         permission.AuditAttributes(),
			AllowList:   domain.PermissionAuditFields,
		})
	})
	if err != nil {
		return nil, err
	}

	u.invalidateGrouped(ctx)
	return permission, nil
}

func (u *permissionUsecase) ToggleStatus(ctx context.Context, permissionID string) (*domain.Permission, error) {
	permission, err := u.findLive(ctx, permissionID)
	if err != nil {
		return nil, err
	}

	oldAttrs := permission.AuditAttributes()
	permission.Status = !permission.Status

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.Update(ctx, permission); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventUpdated,
			SubjectType: domain.PermissionSubjectType,
			SubjectID:   permission.ID,
			Old:         oldAttrs,
			New:         permission.AuditAttributes(),
			AllowList:   domain.PermissionAuditFields,
		})
	})
	if err != nil {
		return nil, err
	}

	u.invalidateGrouped(ctx)
	return permission, nil
}

func (u *permissionUsecase) Delete(ctx context.Context, permissionID string) error {
	permission, err := u.findLive(ctx, permissionID)
	if err != nil {
		return err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.SoftDelete(ctx, permission.ID); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventDeleted,
			SubjectType: domain.PermissionSubjectType,
			SubjectID:   permission.ID,
			Old:         permission.AuditAttributes(),
			AllowList:   domain.PermissionAuditFields,
		})
	})
	if err != nil {
		return err
	}

	u.invalidateGrouped(ctx)
	return nil
}

func (u *permissionUsecase) Restore(ctx context.Context, permissionID string) (*domain.Permission, error) {
	permission, err := u.findTrashed(ctx, permissionID)
	if err != nil {
		return nil, err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.Restore(ctx, permission.ID); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventRestored,
			SubjectType: domain.PermissionSubjectType,
			SubjectID:   permission.ID,
			New:         permission.AuditAttributes(),
			AllowList:   domain.PermissionAuditFields,
		})
	})
	if err != nil {
		return nil, err
	}

	permission.DeletedAt = 0
	u.invalidateGrouped(ctx)
	return permission, nil
}

func (u *permissionUsecase) ForceDelete(ctx context.Context, permissionID string) error {
	permission, err := u.findTrashed(ctx, permissionID)
	if err != nil {
		return err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.HardDelete(ctx, permission.ID); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventForceDelete,
			SubjectType: domain.PermissionSubjectType,
			SubjectID:   permission.ID,
			Old:         permission.AuditAttributes(),
			AllowList:   domain.PermissionAuditFields,
		})
	})
	if err != nil {
		return err
	}

	u.invalidateGrouped(ctx)
	return nil
}

// checkNameUnique counts soft-deleted rows as conflicts: a trashed permission
// keeps its name reserved until it is restored or purged.
func (u *permissionUsecase) checkNameUnique(ctx context.Context, name string, excludeID *string) error {
	filter := &domain.PermissionFilter{
		NameEq:         &name,
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
		return domain.UniqueConflict("name", name)
	}
	return nil
}

func (u *permissionUsecase) invalidateGrouped(ctx context.Context) {
	if err := u.cache.Delete(ctx, groupedCacheKey); err != nil {
		u.logger.Warn("failed to invalidate grouped permissions cache", log.Error(err))
	}
}

func (u *permissionUsecase) findLive(ctx context.Context, permissionID string) (*domain.Permission, error) {
	permission, err := u.repo.FindOne(ctx, &domain.PermissionFilter{ID: &permissionID}, nil)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrPermissionNotFound
		}
		return nil, err
	}
	return permission, nil
}

func (u *permissionUsecase) findTrashed(ctx context.Context, permissionID string) (*domain.Permission, error) {
	permission, err := u.repo.FindOne(ctx, &domain.PermissionFilter{ID: &permissionID, OnlyDeleted: true}, nil)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrPermissionNotTrashed
		}
		return nil, err
	}
	return permission, nil
}
