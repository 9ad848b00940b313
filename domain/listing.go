package domain

import (
	"fmt"
	"time"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// PageSizes is the enumerated set of accepted per-page values.
var PageSizes = []int{10, 20, 30, 40, 50}

const DefaultPageSize = 10

// ListQuery carries the shared listing parameters: search, sort, direction and
// page window. Values are normalized against a SortPolicy before any query
// runs; the normalized struct is echoed back to the caller so the exact query
// that produced a page can be reconstructed.
type ListQuery struct {
	Search    string `json:"search" form:"search"`
	Sort      string `json:"sort" form:"sort"`
	Direction string `json:"direction" form:"direction" binding:"omitempty,sort_direction"`
	Page      int    `json:"page" form:"page" binding:"omitempty,min=1"`
	PerPage   int    `json:"per_page" form:"per_page" binding:"omitempty,page_size"`
}

// SortPolicy restricts sortable fields for one entity. Fields maps the
// caller-facing alias to the database column; anything outside the map falls
// back to the default field and direction, never an error.
type SortPolicy struct {
	Fields           map[string]string
	DefaultField     string
	DefaultDirection string
}

// Normalize resolves the query against the policy in place. Unknown sort
// aliases silently substitute the default field AND default direction so a
// stale or hand-edited query string stays idempotent. Page and per-page are
// clamped to their documented defaults.
func (q *ListQuery) Normalize(policy SortPolicy) {
	if _, ok := policy.Fields[q.Sort]; !ok {
		q.Sort = policy.DefaultField
		q.Direction = policy.DefaultDirection
	}
	if q.Direction != SortAsc && q.Direction != SortDesc {
		q.Direction = policy.DefaultDirection
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if !validPageSize(q.PerPage) {
		q.PerPage = DefaultPageSize
	}
}

// OrderClause renders the normalized sort as a SQL order expression. Must be
// called after Normalize; the alias is guaranteed to be inside the policy.
func (q ListQuery) OrderClause(policy SortPolicy) string {
	column, ok := policy.Fields[q.Sort]
	if !ok {
		column = policy.Fields[policy.DefaultField]
	}
	return fmt.Sprintf("%s %s", column, q.Direction)
}

// PageOption converts the normalized query into a page window.
func (q ListQuery) PageOption(policy SortPolicy) *FindPageOption {
	return &FindPageOption{
		Sort:    []string{q.OrderClause(policy)},
		Page:    q.Page,
		PerPage: q.PerPage,
	}
}

func validPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

const dateOnlyLayout = "2006-01-02"

// DateRange bounds a time-ordered listing by calendar day, inclusive on both
// ends. The end bound covers the entire end day regardless of time-of-day.
type DateRange struct {
	StartDate string `json:"start_date" form:"start_date" binding:"omitempty,date_only"`
	EndDate   string `json:"end_date" form:"end_date" binding:"omitempty,date_only"`
}

// Validate rejects ranges where the end day precedes the start day. It must
// run before any query does.
func (r DateRange) Validate() error {
	if r.StartDate == "" || r.EndDate == "" {
		return nil
	}
	start, err := time.Parse(dateOnlyLayout, r.StartDate)
	if err != nil {
		return ErrBadRequest.WithErrorf("start_date must be formatted as %s", dateOnlyLayout)
	}
	end, err := time.Parse(dateOnlyLayout, r.EndDate)
	if err != nil {
		return ErrBadRequest.WithErrorf("end_date must be formatted as %s", dateOnlyLayout)
	}
	if end.Before(start) {
		return ErrBadRequest.WithError("end_date must be on or after start_date")
	}
	return nil
}

// Bounds returns the inclusive range as Unix-millisecond bounds. The returned
// end bound is exclusive (start of the day after EndDate) so callers can use a
// plain `< end` comparison. A zero value means the bound is open.
func (r DateRange) Bounds(loc *time.Location) (startMilli, endMilli int64) {
	if r.StartDate != "" {
		if start, err := time.ParseInLocation(dateOnlyLayout, r.StartDate, loc); err == nil {
			startMilli = start.UnixMilli()
		}
	}
	if r.EndDate != "" {
		if end, err := time.ParseInLocation(dateOnlyLayout, r.EndDate, loc); err == nil {
			endMilli = end.AddDate(0, 0, 1).UnixMilli()
		}
	}
	return startMilli, endMilli
}
