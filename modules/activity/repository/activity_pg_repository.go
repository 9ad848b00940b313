package repository

import (
	"context"

	"go-admin-panel/database"
	"go-admin-panel/domain"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	sqlHandler *database.SQLHandler[domain.Activity, domain.ActivityFilter]
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	sqlHandler := database.NewSQLHandler[domain.Activity](db, applyFilter)
	return &ActivityRepository{
		sqlHandler: sqlHandler,
	}
}

// The causer join carries its own alias so the subject tables never collide
// with the users table when an activity row points at a user record.
var searchableFields = map[string]string{
	"causer_name": "causers.name",
}

func applyFilter(qb *gorm.DB, filter *domain.ActivityFilter) *gorm.DB {
	if filter == nil {
		return qb
	}

	if filter.LogName != nil {
		qb = qb.Where("activities.log_name = ?", *filter.LogName)
	}
	if filter.SubjectType != nil {
		qb = qb.Where("activities.subject_type = ?", *filter.SubjectType)
	}
	if filter.SubjectID != nil {
		qb = qb.Where("activities.subject_id = ?", *filter.SubjectID)
	}
	if filter.CauserID != nil {
		qb = qb.Where("activities.causer_id = ?", *filter.CauserID)
	}
	if filter.CreatedAtGte > 0 {
		qb = qb.Where("activities.created_at >= ?", filter.CreatedAtGte)
	}
	if filter.CreatedAtLt > 0 {
		qb = qb.Where("activities.created_at < ?", filter.CreatedAtLt)
	}
	if filter.SearchTerm != nil && *filter.SearchTerm != "" {
		qb = qb.Joins("LEFT JOIN users AS causers ON causers.id = activities.causer_id")
		qb = database.ApplySearch(qb, *filter.SearchTerm, nil, searchableFields)
	}

	return qb
}

func (r *ActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	return r.sqlHandler.Create(ctx, activity)
}

func (r *ActivityRepository) FindPage(ctx context.Context, filter *domain.ActivityFilter, option *domain.FindPageOption) ([]*domain.Activity, *domain.Pagination, error) {
	return r.sqlHandler.FindPage(ctx, filter, option)
}

func (r *ActivityRepository) Count(ctx context.Context, filter *domain.ActivityFilter) (int64, error) {
	return r.sqlHandler.Count(ctx, filter)
}
