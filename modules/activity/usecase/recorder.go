package usecase

import (
	"context"

	"go-admin-panel/domain"
)

type ActivityWriter interface {
	Create(ctx context.Context, activity *domain.Activity) error
}

type activityRecorder struct {
	repo ActivityWriter
}

// NewActivityRecorder builds the audit sink every mutating usecase writes
// through. Update entries keep dirty fields only; an update that changed
// nothing records nothing.
func NewActivityRecorder(repo ActivityWriter) domain.ActivityRecorder {
	return &activityRecorder{repo: repo}
}

func (r *activityRecorder) Record(ctx context.Context, entry *domain.ActivityEntry) error {
	properties := domain.JSONB{}

	switch entry.Event {
	case domain.EventUpdated:
		changedNew, changedOld := domain.DiffSnapshots(entry.Old, entry.New, entry.AllowList)
		if len(changedNew) == 0 {
			// no-op save: nothing to audit
			return nil
		}
		properties["attributes"] = map[string]any(changedNew.Merge(entry.ExtraAttributes))
		properties["old"] = map[string]any(changedOld.Merge(entry.ExtraOld))
	case domain.EventDeleted, domain.EventForceDelete:
		properties["old"] = map[string]any(entry.Old.Pick(entry.AllowList).Merge(entry.ExtraOld))
	default:
		// created, restored and custom events capture the full allow-listed state
		properties["attributes"] = map[string]any(entry.New.Pick(entry.AllowList).Merge(entry.ExtraAttributes))
	}

	logName := entry.LogName
	if logName == "" {
		logName = domain.DefaultLogName
	}
	description := entry.Description
	if description == "" {
		description = entry.Event
	}

	activity := &domain.Activity{
		LogName:     logName,
		Description: description,
		Event:       entry.Event,
		SubjectType: entry.SubjectType,
		SubjectID:   entry.SubjectID,
		Properties:  properties,
	}

	causer := entry.Causer
	if causer == nil {
		causer = domain.CauserFromContext(ctx)
	}
	if causer != nil {
		causerType := domain.UserSubjectType
		causerID := causer.ID
		activity.CauserType = &causerType
		activity.CauserID = &causerID
	}

	return r.repo.Create(ctx, activity)
}
