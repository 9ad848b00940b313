package repository

import (
	"context"

	"go-admin-panel/database"
	"go-admin-panel/domain"

	"gorm.io/gorm"
)

type RoleRepository struct {
	db         *gorm.DB
	sqlHandler *database.SQLHandler[domain.Role, domain.RoleFilter]
}

func NewRoleRepository(db *gorm.DB, locales []string) *RoleRepository {
	searchable := map[string]string{
		"name": "name",
	}
	for alias, expr := range database.TranslatableSearchFields("description", locales) {
		searchable[alias] = expr
	}

	sqlHandler := database.NewSQLHandler[domain.Role](db, newApplyFilter(searchable))
	return &RoleRepository{
		db:         db,
		sqlHandler: sqlHandler,
	}
}

func newApplyFilter(searchable map[string]string) func(*gorm.DB, *domain.RoleFilter) *gorm.DB {
	return func(qb *gorm.DB, filter *domain.RoleFilter) *gorm.DB {
		if filter == nil {
			return qb
		}

		if filter.ID != nil {
			qb = qb.Where("id = ?", *filter.ID)
		}
		if filter.IDNe != nil {
			qb = qb.Where("id != ?", *filter.IDNe)
		}
		if filter.NameEq != nil {
			qb = qb.Where("name = ?", *filter.NameEq)
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

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) error {
	return r.sqlHandler.Create(ctx, role)
}

func (r *RoleRepository) FindByID(ctx context.Context, roleID string, option *domain.FindOneOption) (*domain.Role, error) {
	return r.sqlHandler.FindByID(ctx, roleID, option)
}

func (r *RoleRepository) FindOne(ctx context.Context, filter *domain.RoleFilter, option *domain.FindOneOption) (*domain.Role, error) {
	return r.sqlHandler.FindOne(ctx, filter, option)
}

func (r *RoleRepository) FindMany(ctx context.Context, filter *domain.RoleFilter, option *domain.FindManyOption) ([]*domain.Role, error) {
	return r.sqlHandler.FindMany(ctx, filter, option)
}

func (r *RoleRepository) FindPage(ctx context.Context, filter *domain.RoleFilter, option *domain.FindPageOption) ([]*domain.Role, *domain.Pagination, error) {
	return r.sqlHandler.FindPage(ctx, filter, option)
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	// Omit the association so a plain save never touches the permission set
	return r.dbFor(ctx).WithContext(ctx).Omit("Permissions").Save(role).Error
}

// ReplacePermissions swaps the role's entire permission set for the given one.
func (r *RoleRepository) ReplacePermissions(ctx context.Context, role *domain.Role, permissions []*domain.Permission) error {
	if err := r.dbFor(ctx).WithContext(ctx).Model(role).Association("Permissions").Replace(permissions); err != nil {
		return err
	}
	role.Permissions = permissions
	return nil
}

func (r *RoleRepository) SoftDelete(ctx context.Context, roleID string) error {
	return r.sqlHandler.SoftDeleteByID(ctx, roleID)
}

func (r *RoleRepository) Restore(ctx context.Context, roleID string) error {
	return r.sqlHandler.RestoreByID(ctx, roleID)
}

func (r *RoleRepository) HardDelete(ctx context.Context, roleID string) error {
	return r.sqlHandler.HardDeleteByID(ctx, roleID)
}

func (r *RoleRepository) Count(ctx context.Context, filter *domain.RoleFilter) (int64, error) {
	return r.sqlHandler.Count(ctx, filter)
}

func (r *RoleRepository) dbFor(ctx context.Context) *gorm.DB {
	if tx := database.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}
