package repository

import (
	"context"

	"go-admin-panel/database"
	"go-admin-panel/domain"

	"gorm.io/gorm"
)

type MenuRepository struct {
	sqlHandler *database.SQLHandler[domain.Menu, domain.MenuFilter]
}

// NewMenuRepository wires the menu table. The searchable set expands the
// translatable name and description columns into one expression per locale.
func NewMenuRepository(db *gorm.DB, locales []string) *MenuRepository {
	searchable := map[string]string{
		"route": "route",
	}
	for alias, expr := range database.TranslatableSearchFields("name", locales) {
		searchable[alias] = expr
	}
	for alias, expr := range database.TranslatableSearchFields("description", locales) {
		searchable[alias] = expr
	}

	sqlHandler := database.NewSQLHandler[domain.Menu](db, newApplyFilter(searchable))
	return &MenuRepository{
		sqlHandler: sqlHandler,
	}
}

func newApplyFilter(searchable map[string]string) func(*gorm.DB, *domain.MenuFilter) *gorm.DB {
	return func(qb *gorm.DB, filter *domain.MenuFilter) *gorm.DB {
		if filter == nil {
			return qb
		}

		if filter.ID != nil {
			qb = qb.Where("id = ?", *filter.ID)
		}
		if filter.Status != nil {
			qb = qb.Where("status = ?", *filter.Status)
		}
		if filter.SearchTerm != nil && *filter.SearchTerm != "" {
			qb = database.ApplySearch(qb, *filter.SearchTerm, nil, searchable)
		}
		if filter.OnlyDeleted {
			qb = qb.Where("deleted_at > 0")
		} else if !filter.IncludeDeleted {
			qb = qb.Where("deleted_at = 0")
		}

		return qb
	}
}

func (r *MenuRepository) Create(ctx context.Context, menu *domain.Menu) error {
	return r.sqlHandler.Create(ctx, menu)
}

func (r *MenuRepository) FindByID(ctx context.Context, menuID string, option *domain.FindOneOption) (*domain.Menu, error) {
	return r.sqlHandler.FindByID(ctx, menuID, option)
}

func (r *MenuRepository) FindOne(ctx context.Context, filter *domain.MenuFilter, option *domain.FindOneOption) (*domain.Menu, error) {
	return r.sqlHandler.FindOne(ctx, filter, option)
}

func (r *MenuRepository) FindMany(ctx context.Context, filter *domain.MenuFilter, option *domain.FindManyOption) ([]*domain.Menu, error) {
	return r.sqlHandler.FindMany(ctx, filter, option)
}

func (r *MenuRepository) FindPage(ctx context.Context, filter *domain.MenuFilter, option *domain.FindPageOption) ([]*domain.Menu, *domain.Pagination, error) {
	return r.sqlHandler.FindPage(ctx, filter, option)
}

func (r *MenuRepository) Update(ctx context.Context, menu *domain.Menu) error {
	return r.sqlHandler.Update(ctx, menu)
}

func (r *MenuRepository) SoftDelete(ctx context.Context, menuID string) error {
	return r.sqlHandler.SoftDeleteByID(ctx, menuID)
}

func (r *MenuRepository) Restore(ctx context.Context, menuID string) error {
	return r.sqlHandler.RestoreByID(ctx, menuID)
}

func (r *MenuRepository) HardDelete(ctx context.Context, menuID string) error {
	return r.sqlHandler.HardDeleteByID(ctx, menuID)
}

func (r *MenuRepository) Count(ctx context.Context, filter *domain.MenuFilter) (int64, error) {
	return r.sqlHandler.Count(ctx, filter)
}
