package repository

import (
	"context"

	"go-admin-panel/database"
	"go-admin-panel/domain"

	"gorm.io/gorm"
)

type PermissionRepository struct {
	sqlHandler *database.SQLHandler[domain.Permission, domain.PermissionFilter]
}

func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	sqlHandler := database.NewSQLHandler[domain.Permission](db, applyFilter)
	return &PermissionRepository{
		sqlHandler: sqlHandler,
	}
}

var searchableFields = map[string]string{
	"name":    "name",
	"menu":    "menu",
	"feature": "feature",
	"route":   "route",
	"alias":   "alias",
}

func applyFilter(qb *gorm.DB, filter *domain.PermissionFilter) *gorm.DB {
	if filter == nil {
		return qb
	}

	if filter.ID != nil {
		qb = qb.Where("id = ?", *filter.ID)
	}
	if filter.IDNe != nil {
		qb = qb.Where("id != ?", *filter.IDNe)
	}
	if len(filter.IDIn) > 0 {
		qb = qb.Where("id IN (?)", filter.IDIn)
	}
	if filter.NameEq != nil {
		qb = qb.Where("name = ?", *filter.NameEq)
	}
	if filter.Status != nil {
		qb = qb.Where("status = ?", *filter.Status)
	}
	if filter.SearchTerm != nil && *filter.SearchTerm != "" {
		qb = database.ApplySearch(qb, *filter.SearchTerm, nil, searchableFields)
	}
	if filter.OnlyDeleted {
		qb = qb.Where("deleted_at > 0")
	} else if !filter.IncludeDeleted {
		qb = qb.Where("deleted_at = 0")
	}

	return qb
}

func (r *PermissionRepository) Create(ctx context.Context, permission *domain.Permission) error {
	return r.sqlHandler.Create(ctx, permission)
}

func (r *PermissionRepository) FindByID(ctx context.Context, permissionID string, option *domain.FindOneOption) (*domain.Permission, error) {
	return r.sqlHandler.FindByID(ctx, permissionID, option)
}

func (r *PermissionRepository) FindOne(ctx context.Context, filter *domain.PermissionFilter, option *domain.FindOneOption) (*domain.Permission, error) {
	return r.sqlHandler.FindOne(ctx, filter, option)
}

func (r *PermissionRepository) FindMany(ctx context.Context, filter *domain.PermissionFilter, option *domain.FindManyOption) ([]*domain.Permission, error) {
	return r.sqlHandler.FindMany(ctx, filter, option)
}

func (r *PermissionRepository) FindPage(ctx context.Context, filter *domain.PermissionFilter, option *domain.FindPageOption) ([]*domain.Permission, *domain.Pagination, error) {
	return r.sqlHandler.FindPage(ctx, filter, option)
}

func (r *PermissionRepository) Update(ctx context.Context, permission *domain.Permission) error {
	return r.sqlHandler.Update(ctx, permission)
}

func (r *PermissionRepository) SoftDelete(ctx context.Context, permissionID string) error {
	return r.sqlHandler.SoftDeleteByID(ctx, permissionID)
}

func (r *PermissionRepository) Restore(ctx context.Context, permissionID string) error {
	return r.sqlHandler.RestoreByID(ctx, permissionID)
}

func (r *PermissionRepository) HardDelete(ctx context.Context, permissionID string) error {
	return r.sqlHandler.HardDeleteByID(ctx, permissionID)
}

func (r *PermissionRepository) Count(ctx context.Context, filter *domain.PermissionFilter) (int64, error) {
	return r.sqlHandler.Count(ctx, filter)
}
