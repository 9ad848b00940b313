package usecase

import (
	"context"
	"testing"
	"time"

	"go-admin-panel/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeActivityRepo struct {
	gotFilter *domain.ActivityFilter
	gotOption *domain.FindPageOption
	result    []*domain.Activity
}

func (f *fakeActivityRepo) FindPage(ctx context.Context, filter *domain.ActivityFilter, option *domain.FindPageOption) ([]*domain.Activity, *domain.Pagination, error) {
	f.gotFilter = filter
	f.gotOption = option
	return f.result, domain.NewPagination(option.Page, option.PerPage, int64(len(f.result))), nil
}

func TestActivityListDefaultsToNewestFirst(t *testing.T) {
	repo := &fakeActivityRepo{}
	uc := NewActivityUsecase(repo, time.UTC)

	_, _, err := uc.List(context.Background(), &domain.ActivityListQuery{})
	require.NoError(t, err)

	require.NotNil(t, repo.gotOption)
	assert.Equal(t, []string{"activities.created_at desc"}, repo.gotOption.Sort)
	assert.Equal(t, []string{"Causer"}, repo.gotOption.Preloads)
	assert.Equal(t, 1, repo.gotOption.Page)
	assert.Equal(t, domain.DefaultPageSize, repo.gotOption.PerPage)
}

func TestActivityListDateRangeBounds(t *testing.T) {
	repo := &fakeActivityRepo{}
	uc := NewActivityUsecase(repo, time.UTC)

	query := &domain.ActivityListQuery{
		DateRange: domain.DateRange{StartDate: "2026-05-01", EndDate: "2026-05-02"},
	}
	_, _, err := uc.List(context.Background(), query)
	require.NoError(t, err)

	wantStart := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	wantEnd := time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, wantStart, repo.gotFilter.CreatedAtGte)
	assert.Equal(t, wantEnd, repo.gotFilter.CreatedAtLt)
}

func TestActivityListRejectsInvertedRange(t *testing.T) {
	repo := &fakeActivityRepo{}
	uc := NewActivityUsecase(repo, time.UTC)

	_, _, err := uc.List(context.Background(), &domain.ActivityListQuery{
		DateRange: domain.DateRange{StartDate: "2026-05-02", EndDate: "2026-05-01"},
	})
	require.Error(t, err)
	assert.Nil(t, repo.gotFilter)
}

func TestActivityListPassesSearchTerm(t *testing.T) {
	repo := &fakeActivityRepo{}
	uc := NewActivityUsecase(repo, nil)

	query := &domain.ActivityListQuery{}
	query.Search = "alice"
	_, _, err := uc.List(context.Background(), query)
	require.NoError(t, err)

	require.NotNil(t, repo.gotFilter.SearchTerm)
	assert.Equal(t, "alice", *repo.gotFilter.SearchTerm)
}
