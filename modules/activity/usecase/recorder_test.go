package usecase

import (
	"context"
	"testing"

	"go-admin-panel/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeActivityWriter struct {
	created []*domain.Activity
	err     error
}

func (f *fakeActivityWriter) Create(ctx context.Context, activity *domain.Activity) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, activity)
	return nil
}

func TestRecordCreatedCapturesAllowListedAttributes(t *testing.T) {
	writer := &fakeActivityWriter{}
	recorder := NewActivityRecorder(writer)

	err := recorder.Record(context.Background(), &domain.ActivityEntry{
		Event:       domain.EventCreated,
		SubjectType: domain.UserSubjectType,
		SubjectID:   "u-1",
		New:         domain.Snapshot{"name": "Alice", "email": "alice@example.com", "password": "hash"},
		AllowList:   []string{"name", "email"},
	})
	require.NoError(t, err)
	require.Len(t, writer.created, 1)

	activity := writer.created[0]
	assert.Equal(t, domain.DefaultLogName, activity.LogName)
	assert.Equal(t, domain.EventCreated, activity.Event)
	assert.Equal(t, domain.EventCreated, activity.Description)
	assert.Equal(t, domain.UserSubjectType, activity.SubjectType)
	assert.Equal(t, "u-1", activity.SubjectID)

	attrs, ok := activity.Properties["attributes"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"name": "Alice", "email": "alice@example.com"}, attrs)
	assert.NotContains(t, activity.Properties, "old")
}

func TestRecordUpdatedKeepsDirtyFieldsOnly(t *testing.T) {
	writer := &fakeActivityWriter{}
	recorder := NewActivityRecorder(writer)

	err := recorder.Record(context.Background(), &domain.ActivityEntry{
		Event:       domain.EventUpdated,
		SubjectType: domain.UserSubjectType,
		SubjectID:   "u-1",
		Old:         domain.Snapshot{"name": "Alice", "email": "alice@example.com"},
		New:         domain.Snapshot{"name": "Alice", "email": "alice@corp.example"},
		AllowList:   []string{"name", "email"},
	})
	require.NoError(t, err)
	require.Len(t, writer.created, 1)

	activity := writer.created[0]
	attrs := activity.Properties["attributes"].(map[string]any)
	old := activity.Properties["old"].(map[string]any)
	assert.Equal(t, map[string]any{"email": "alice@corp.example"}, attrs)
	assert.Equal(t, map[string]any{"email": "alice@example.com"}, old)
}

func TestRecordUpdatedNoOpRecordsNothing(t *testing.T) {
	writer := &fakeActivityWriter{}
	recorder := NewActivityRecorder(writer)

	err := recorder.Record(context.Background(), &domain.ActivityEntry{
		Event:       domain.EventUpdated,
		SubjectType: domain.UserSubjectType,
		SubjectID:   "u-1",
		Old:         domain.Snapshot{"name": "Alice"},
		New:         domain.Snapshot{"name": "Alice"},
		AllowList:   []string{"name"},
	})
	require.NoError(t, err)
	assert.Empty(t, writer.created)
}

func TestRecordUpdatedMergesExtrasAfterDirtyFilter(t *testing.T) {
	writer := &fakeActivityWriter{}
	recorder := NewActivityRecorder(writer)

	err := recorder.Record(context.Background(), &domain.ActivityEntry{
		Event:       domain.EventUpdated,
		SubjectType: domain.MenuSubjectType,
		SubjectID:   "m-1",
		Old:         domain.Snapshot{"route": "/a"},
		New:         domain.Snapshot{"route": "/b"},
		AllowList:   []string{"route"},
		ExtraAttributes: domain.Snapshot{
			"name": domain.TranslatedString{"en": "New"},
		},
		ExtraOld: domain.Snapshot{
			"name": domain.TranslatedString{"en": "Old"},
		},
	})
	require.NoError(t, err)
	require.Len(t, writer.created, 1)

	attrs := writer.created[0].Properties["attributes"].(map[string]any)
	old := writer.created[0].Properties["old"].(map[string]any)
	assert.Equal(t, "/b", attrs["route"])
	assert.Equal(t, domain.TranslatedString{"en": "New"}, attrs["name"])
	assert.Equal(t, "/a", old["route"])
	assert.Equal(t, domain.TranslatedString{"en": "Old"}, old["name"])
}

func TestRecordDeletedCapturesOldState(t *testing.T) {
	writer := &fakeActivityWriter{}
	recorder := NewActivityRecorder(writer)

	err := recorder.Record(context.Background(), &domain.ActivityEntry{
		Event:       domain.EventDeleted,
		SubjectType: domain.RoleSubjectType,
		SubjectID:   "r-1",
		Old:         domain.Snapshot{"name": "editor", "status": true},
		AllowList:   []string{"name", "status"},
	})
	require.NoError(t, err)
	require.Len(t, writer.created, 1)

	old := writer.created[0].Properties["old"].(map[string]any)
	assert.Equal(t, map[string]any{"name": "editor", "status": true}, old)
	assert.NotContains(t, writer.created[0].Properties, "attributes")
}

func TestRecordCauserFromContext(t *testing.T) {
	writer := &fakeActivityWriter{}
	recorder := NewActivityRecorder(writer)

	actor := &domain.User{SQLModel: domain.SQLModel{ID: "admin-1"}}
	ctx := domain.WithCauser(context.Background(), actor)

	err := recorder.Record(ctx, &domain.ActivityEntry{
		Event:       domain.EventCreated,
		SubjectType: domain.UserSubjectType,
		SubjectID:   "u-2",
		New:         domain.Snapshot{"name": "Bob"},
		AllowList:   []string{"name"},
	})
	require.NoError(t, err)
	require.Len(t, writer.created, 1)

	activity := writer.created[0]
	require.NotNil(t, activity.CauserID)
	require.NotNil(t, activity.CauserType)
	assert.Equal(t, "admin-1", *activity.CauserID)
	assert.Equal(t, domain.UserSubjectType, *activity.CauserType)
}

func TestRecordExplicitCauserWinsOverContext(t *testing.T) {
	writer := &fakeActivityWriter{}
	recorder := NewActivityRecorder(writer)

	ctx := domain.WithCauser(context.Background(), &domain.User{SQLModel: domain.SQLModel{ID: "ctx-user"}})

	err := recorder.Record(ctx, &domain.ActivityEntry{
		Event:       domain.EventCreated,
		SubjectType: domain.UserSubjectType,
		SubjectID:   "u-3",
		Causer:      &domain.User{SQLModel: domain.SQLModel{ID: "explicit-user"}},
		New:         domain.Snapshot{"name": "Carol"},
		AllowList:   []string{"name"},
	})
	require.NoError(t, err)
	assert.Equal(t, "explicit-user", *writer.created[0].CauserID)
}

func TestRecordSystemActionHasNoCauser(t *testing.T) {
	writer := &fakeActivityWriter{}
	recorder := NewActivityRecorder(writer)

	err := recorder.Record(context.Background(), &domain.ActivityEntry{
		Event:       domain.EventCreated,
		SubjectType: domain.UserSubjectType,
		SubjectID:   "u-4",
		New:         domain.Snapshot{"name": "Dave"},
		AllowList:   []string{"name"},
	})
	require.NoError(t, err)
	assert.Nil(t, writer.created[0].CauserID)
	assert.Nil(t, writer.created[0].CauserType)
}

func TestRecordCustomLogNameAndDescription(t *testing.T) {
	writer := &fakeActivityWriter{}
	recorder := NewActivityRecorder(writer)

	err := recorder.Record(context.Background(), &domain.ActivityEntry{
		LogName:     "security",
		Event:       domain.EventDeleted,
		Description: "account purged by admin",
		SubjectType: domain.UserSubjectType,
		SubjectID:   "u-5",
		Old:         domain.Snapshot{"name": "Eve"},
		AllowList:   []string{"name"},
	})
	require.NoError(t, err)
	assert.Equal(t, "security", writer.created[0].LogName)
	assert.Equal(t, "account purged by admin", writer.created[0].Description)
}
