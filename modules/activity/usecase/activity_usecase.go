package usecase

import (
	"context"
	"time"

	"go-admin-panel/domain"
)

var activitySortPolicy = domain.SortPolicy{
	Fields: map[string]string{
		"created_at": "activities.created_at",
	},
	DefaultField:     "created_at",
	DefaultDirection: domain.SortDesc,
}

type ActivityRepository interface {
	FindPage(ctx context.Context, filter *domain.ActivityFilter, option *domain.FindPageOption) ([]*domain.Activity, *domain.Pagination, error)
}

type activityUsecase struct {
	repo ActivityRepository
	loc  *time.Location
}

func NewActivityUsecase(repo ActivityRepository, loc *time.Location) domain.ActivityUsecase {
	if loc == nil {
		loc = time.UTC
	}
	return &activityUsecase{repo: repo, loc: loc}
}

func (u *activityUsecase) List(ctx context.Context, query *domain.ActivityListQuery) ([]*domain.Activity, *domain.Pagination, error) {
	query.Normalize(activitySortPolicy)
	if err := query.DateRange.Validate(); err != nil {
		return nil, nil, err
	}

	startMilli, endMilli := query.DateRange.Bounds(u.loc)
	filter := &domain.ActivityFilter{
		CreatedAtGte: startMilli,
		CreatedAtLt:  endMilli,
	}
	if query.Search != "" {
		filter.SearchTerm = &query.Search
	}

	option := query.PageOption(activitySortPolicy)
	option.Preloads = []string{"Causer"}

	return u.repo.FindPage(ctx, filter, option)
}
