package domain

import (
	"context"
	"net/http"
	"reflect"
)

/********************************
*      Activity log errors      *
********************************/
var ErrActivityQueryFailed = &DetailedError{
	IDField:         "ACTIVITY_QUERY_FAILED",
	StatusDescField: http.StatusText(http.StatusInternalServerError),
	ErrorField:      "Failed to query the activity log",
	StatusCodeField: http.StatusInternalServerError,
}

/****************************************
*     Activity entities and types       *
****************************************/

// Audit event names, mirrored in each entry's description.
const (
	EventCreated     = "created"
	EventUpdated     = "updated"
	EventDeleted     = "deleted"
	EventRestored    = "restored"
	EventForceDelete = "force_deleted"
)

const DefaultLogName = "default"

// Activity is one append-only audit entry: who (causer) did what (event,
// description) to which record (subject), with the captured attribute diff in
// Properties. Entries are never updated or deleted by the application.
type Activity struct {
	ID          string `json:"id" gorm:"type:varchar(36);primary_key;default:gen_random_uuid()"`
	LogName     string `json:"log_name" gorm:"type:varchar(100);not null;index"`
	Description string `json:"description" gorm:"type:varchar(255);not null"`
	Event       string `json:"event" gorm:"type:varchar(50);not null"`
	SubjectType string `json:"subject_type" gorm:"type:varchar(100);not null;index:idx_activities_subject"`
	SubjectID   string `json:"subject_id" gorm:"type:varchar(36);not null;index:idx_activities_subject"`
	CauserType  *string `json:"causer_type" gorm:"type:varchar(100)"`
	CauserID    *string `json:"causer_id" gorm:"type:varchar(36);index"`
	Properties  JSONB  `json:"properties" gorm:"type:jsonb"`
	CreatedAt   int64  `json:"created_at" gorm:"autoCreateTime:milli;index"`

	Causer *User `json:"causer,omitempty" gorm:"foreignKey:CauserID;references:ID"`
}

func (Activity) TableName() string {
	return "activities"
}

// Snapshot is a flat attribute capture of an entity at one point in time.
type Snapshot map[string]any

// Pick returns a copy of the snapshot restricted to the allow-listed fields.
func (s Snapshot) Pick(allow []string) Snapshot {
	out := Snapshot{}
	for _, field := range allow {
		if v, ok := s[field]; ok {
			out[field] = v
		}
	}
	return out
}

// Merge overlays other on top of the snapshot, returning the receiver.
func (s Snapshot) Merge(other Snapshot) Snapshot {
	for k, v := range other {
		s[k] = v
	}
	return s
}

// DiffSnapshots compares two allow-listed snapshots and returns the dirty
// fields only: attributes whose value differs between old and new. Unchanged
// fields produce no output on either side.
func DiffSnapshots(old, new Snapshot, allow []string) (changedNew, changedOld Snapshot) {
	changedNew, changedOld = Snapshot{}, Snapshot{}
	for _, field := range allow {
		oldVal, newVal := old[field], new[field]
		if !reflect.DeepEqual(oldVal, newVal) {
			changedNew[field] = newVal
			changedOld[field] = oldVal
		}
	}
	return changedNew, changedOld
}

// ActivityEntry is the input of the audit recorder: one mutation's net effect.
// The recorder filters Old/New through AllowList, keeps dirty fields only for
// updates, and drops the entry entirely when an update changed nothing.
type ActivityEntry struct {
	LogName     string
	Event       string
	Description string
	SubjectType string
	SubjectID   string
	Causer      *User
	Old         Snapshot
	New         Snapshot
	AllowList   []string

	// ExtraAttributes and ExtraOld are merged into the recorded attributes
	// and old-state payloads after the dirty filter runs. Menu uses this for
	// its translatable fields, which the generic capture does not track.
	ExtraAttributes Snapshot
	ExtraOld        Snapshot
}

// ActivityRecorder persists one audit entry per mutation. Implementations must
// honor the dirty-only rule and never emit an entry for a no-op change.
type ActivityRecorder interface {
	Record(ctx context.Context, entry *ActivityEntry) error
}

type ActivityFilter struct {
	LogName      *string `json:"log_name" form:"log_name"`
	SubjectType  *string `json:"subject_type" form:"subject_type"`
	SubjectID    *string `json:"subject_id" form:"subject_id"`
	CauserID     *string `json:"causer_id" form:"causer_id"`
	SearchTerm   *string `json:"search_term" form:"search_term"`
	CreatedAtGte int64   `json:"created_at_gte" form:"created_at_gte"`
	CreatedAtLt  int64   `json:"created_at_lt" form:"created_at_lt"`
}

/*************************************************
*     Activity usecase interfaces and types      *
*************************************************/

type ActivityListQuery struct {
	ListQuery
	DateRange
}

type ActivityUsecase interface {
	List(ctx context.Context, query *ActivityListQuery) ([]*Activity, *Pagination, error)
}
