package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSortPolicy = SortPolicy{
	Fields: map[string]string{
		"name":       "name",
		"created_at": "created_at",
		"order":      "menu_order",
	},
	DefaultField:     "name",
	DefaultDirection: SortAsc,
}

func TestListQueryNormalizeDefaults(t *testing.T) {
	q := ListQuery{}
	q.Normalize(testSortPolicy)

	assert.Equal(t, "name", q.Sort)
	assert.Equal(t, SortAsc, q.Direction)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageSize, q.PerPage)
}

func TestListQueryNormalizeUnknownSortResetsDirection(t *testing.T) {
	// An unknown alias must fall back to both the default field and the
	// default direction, even when the requested direction was valid.
	q := ListQuery{Sort: "nonexistent", Direction: SortDesc, Page: 3, PerPage: 20}
	q.Normalize(testSortPolicy)

	assert.Equal(t, "name", q.Sort)
	assert.Equal(t, SortAsc, q.Direction)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 20, q.PerPage)
}

func TestListQueryNormalizeKeepsValidSort(t *testing.T) {
	q := ListQuery{Sort: "created_at", Direction: SortDesc}
	q.Normalize(testSortPolicy)

	assert.Equal(t, "created_at", q.Sort)
	assert.Equal(t, SortDesc, q.Direction)
}

func TestListQueryNormalizeInvalidDirection(t *testing.T) {
	q := ListQuery{Sort: "created_at", Direction: "sideways"}
	q.Normalize(testSortPolicy)

	assert.Equal(t, "created_at", q.Sort)
	assert.Equal(t, SortAsc, q.Direction)
}

func TestListQueryNormalizeClampsPageWindow(t *testing.T) {
	q := ListQuery{Page: -2, PerPage: 37}
	q.Normalize(testSortPolicy)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageSize, q.PerPage)
}

func TestListQueryOrderClauseUsesColumnAlias(t *testing.T) {
	q := ListQuery{Sort: "order", Direction: SortDesc}
	q.Normalize(testSortPolicy)

	assert.Equal(t, "menu_order desc", q.OrderClause(testSortPolicy))
}

func TestDateRangeValidate(t *testing.T) {
	assert.NoError(t, DateRange{}.Validate())
	assert.NoError(t, DateRange{StartDate: "2026-01-01"}.Validate())
	assert.NoError(t, DateRange{StartDate: "2026-01-01", EndDate: "2026-01-01"}.Validate())
	assert.NoError(t, DateRange{StartDate: "2026-01-01", EndDate: "2026-02-01"}.Validate())

	err := DateRange{StartDate: "2026-02-01", EndDate: "2026-01-01"}.Validate()
	require.Error(t, err)
}

func TestDateRangeBoundsInclusiveEndDay(t *testing.T) {
	r := DateRange{StartDate: "2026-03-10", EndDate: "2026-03-10"}
	start, end := r.Bounds(time.UTC)

	wantStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC).UnixMilli()
	wantEnd := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, wantStart, start)
	assert.Equal(t, wantEnd, end)
}

func TestDateRangeBoundsOpenEnds(t *testing.T) {
	start, end := DateRange{}.Bounds(time.UTC)
	assert.Zero(t, start)
	assert.Zero(t, end)

	start, end = DateRange{StartDate: "2026-03-10"}.Bounds(time.UTC)
	assert.NotZero(t, start)
	assert.Zero(t, end)
}

func TestDateRangeBoundsRespectsLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	start, _ := DateRange{StartDate: "2026-03-10"}.Bounds(loc)
	utcStart, _ := DateRange{StartDate: "2026-03-10"}.Bounds(time.UTC)
	// Jakarta is UTC+7, so midnight there comes seven hours earlier.
	assert.Equal(t, utcStart-7*time.Hour.Milliseconds(), start)
}
