package usecase

import (
	"context"
	"errors"

	"go-admin-panel/domain"
)

var menuSortPolicy = domain.SortPolicy{
	Fields: map[string]string{
		"order":      "menu_order",
		"route":      "route",
		"status":     "status",
		"created_at": "created_at",
	},
	DefaultField:     "order",
	DefaultDirection: domain.SortAsc,
}

type MenuRepository interface {
	Create(ctx context.Context, menu *domain.Menu) error
	FindByID(ctx context.Context, menuID string, option *domain.FindOneOption) (*domain.Menu, error)
	FindOne(ctx context.Context, filter *domain.MenuFilter, option *domain.FindOneOption) (*domain.Menu, error)
	FindMany(ctx context.Context, filter *domain.MenuFilter, option *domain.FindManyOption) ([]*domain.Menu, error)
	FindPage(ctx context.Context, filter *domain.MenuFilter, option *domain.FindPageOption) ([]*domain.Menu, *domain.Pagination, error)
	Update(ctx context.Context, menu *domain.Menu) error
	SoftDelete(ctx context.Context, menuID string) error
	Restore(ctx context.Context, menuID string) error
	HardDelete(ctx context.Context, menuID string) error
}

type menuUsecase struct {
	repo     MenuRepository
	recorder domain.ActivityRecorder
	tx       domain.TxManager
	locales  []string
}

func NewMenuUsecase(repo MenuRepository, recorder domain.ActivityRecorder, tx domain.TxManager, locales []string) domain.MenuUsecase {
	return &menuUsecase{repo: repo, recorder: recorder, tx: tx, locales: locales}
}

func (u *menuUsecase) List(ctx context.Context, query *domain.ListQuery) ([]*domain.Menu, *domain.Pagination, error) {
	query.Normalize(menuSortPolicy)

	filter := &domain.MenuFilter{}
	if query.Search != "" {
		filter.SearchTerm = &query.Search
	}

	return u.repo.FindPage(ctx, filter, query.PageOption(menuSortPolicy))
}

func (u *menuUsecase) ListTrashed(ctx context.Context) ([]*domain.Menu, error) {
	return u.repo.FindMany(ctx, &domain.MenuFilter{OnlyDeleted: true}, &domain.FindManyOption{
		Sort: []string{"deleted_at desc"},
	})
}

func (u *menuUsecase) Create(ctx context.Context, req *domain.MenuCreateRequest) (*domain.Menu, error) {
	menu := &domain.Menu{
		Name:        req.Name,
		Description: req.Description,
		Route:       req.Route,
		Icon:        req.Icon,
		Order:       req.Order,
		Status:      true,
	}
	if req.Status != nil {
		menu.Status = *req.Status
	}
	if err := menu.Validate(u.locales); err != nil {
		return nil, err
	}

	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.Create(ctx, menu); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:           domain.EventCreated,
			SubjectType:     domain.MenuSubjectType,
			SubjectID:       menu.ID,
			New:             menu.AuditAttributes(),
			AllowList:       domain.MenuAuditFields,
			ExtraAttributes: menu.AuditTranslations(),
		})
	})
	if err != nil {
		return nil, err
	}
	return menu, nil
}

func (u *menuUsecase) Update(ctx context.Context, menuID string, req *domain.MenuUpdateRequest) (*domain.Menu, error) {
	menu, err := u.findLive(ctx, menuID)
	if err != nil {
		return nil, err
	}

	oldAttrs := menu.AuditAttributes()
	oldTranslations := menu.AuditTranslations()

	menu.Name = req.Name
	menu.Description = req.Description
	menu.Route = req.Route
	menu.Icon = req.Icon
	menu.Order = req.Order
	if err := menu.Validate(u.locales); err != nil {
		return nil, err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.Update(ctx, menu); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:           domain.EventUpdated,
			SubjectType:     domain.MenuSubjectType,
			SubjectID:       menu.ID,
			Old:             oldAttrs,
			New:             menu.AuditAttributes(),
			AllowList:       domain.MenuAuditFields,
			ExtraAttributes: menu.AuditTranslations(),
			ExtraOld:        oldTranslations,
		})
	})
	if err != nil {
		return nil, err
	}
	return menu, nil
}

func (u *menuUsecase) ToggleStatus(ctx context.Context, menuID string) (*domain.Menu, error) {
	menu, err := u.findLive(ctx, menuID)
	if err != nil {
		return nil, err
	}

	oldAttrs := menu.AuditAttributes()
	menu.Status = !menu.Status

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.Update(ctx, menu); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventUpdated,
			SubjectType: domain.MenuSubjectType,
			SubjectID:   menu.ID,
			Old:         oldAttrs,
			New:         menu.AuditAttributes(),
			AllowList:   domain.MenuAuditFields,
		})
	})
	if err != nil {
		return nil, err
	}
	return menu, nil
}

func (u *menuUsecase) Delete(ctx context.Context, menuID string) error {
	menu, err := u.findLive(ctx, menuID)
	if err != nil {
		return err
	}

	return u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.SoftDelete(ctx, menu.ID); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventDeleted,
			SubjectType: domain.MenuSubjectType,
			SubjectID:   menu.ID,
			Old:         menu.AuditAttributes(),
			AllowList:   domain.MenuAuditFields,
			ExtraOld:    menu.AuditTranslations(),
		})
	})
}

func (u *menuUsecase) Restore(ctx context.Context, menuID string) (*domain.Menu, error) {
	menu, err := u.findTrashed(ctx, menuID)
	if err != nil {
		return nil, err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.Restore(ctx, menu.ID); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:           domain.EventRestored,
			SubjectType:     domain.MenuSubjectType,
			SubjectID:       menu.ID,
			New:             menu.AuditAttributes(),
			AllowList:       domain.MenuAuditFields,
			ExtraAttributes: menu.AuditTranslations(),
		})
	})
	if err != nil {
		return nil, err
	}
	menu.DeletedAt = 0
	return menu, nil
}

func (u *menuUsecase) ForceDelete(ctx context.Context, menuID string) error {
	menu, err := u.findTrashed(ctx, menuID)
	if err != nil {
		return err
	}

	return u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.HardDelete(ctx, menu.ID); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventForceDelete,
			SubjectType: domain.MenuSubjectType,
			SubjectID:   menu.ID,
			Old:         menu.AuditAttributes(),
			AllowList:   domain.MenuAuditFields,
			ExtraOld:    menu.AuditTranslations(),
		})
	})
}

func (u *menuUsecase) findLive(ctx context.Context, menuID string) (*domain.Menu, error) {
	menu, err := u.repo.FindOne(ctx, &domain.MenuFilter{ID: &menuID}, nil)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrMenuNotFound
		}
		return nil, err
	}
	return menu, nil
}

func (u *menuUsecase) findTrashed(ctx context.Context, menuID string) (*domain.Menu, error) {
	menu, err := u.repo.FindOne(ctx, &domain.MenuFilter{ID: &menuID, OnlyDeleted: true}, nil)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrMenuNotTrashed
		}
		return nil, err
	}
	return menu, nil
}
