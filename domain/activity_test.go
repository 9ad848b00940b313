package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotPick(t *testing.T) {
	s := Snapshot{"name": "a", "email": "a@b.c", "password": "secret"}

	picked := s.Pick([]string{"name", "email", "missing"})
	assert.Equal(t, Snapshot{"name": "a", "email": "a@b.c"}, picked)
	// The original is untouched.
	assert.Len(t, s, 3)
}

func TestSnapshotMerge(t *testing.T) {
	s := Snapshot{"route": "/users", "status": true}
	merged := s.Merge(Snapshot{"status": false, "icon": "user"})

	assert.Equal(t, Snapshot{"route": "/users", "status": false, "icon": "user"}, merged)
}

func TestDiffSnapshotsDirtyOnly(t *testing.T) {
	old := Snapshot{"name": "Alice", "email": "alice@example.com", "status": true}
	new := Snapshot{"name": "Alice", "email": "alice@corp.example", "status": true}

	changedNew, changedOld := DiffSnapshots(old, new, []string{"name", "email", "status"})

	assert.Equal(t, Snapshot{"email": "alice@corp.example"}, changedNew)
	assert.Equal(t, Snapshot{"email": "alice@example.com"}, changedOld)
}

func TestDiffSnapshotsNoChange(t *testing.T) {
	s := Snapshot{"name": "Alice", "status": true}

	changedNew, changedOld := DiffSnapshots(s, Snapshot{"name": "Alice", "status": true}, []string{"name", "status"})
	assert.Empty(t, changedNew)
	assert.Empty(t, changedOld)
}

func TestDiffSnapshotsIgnoresFieldsOutsideAllowList(t *testing.T) {
	old := Snapshot{"name": "Alice", "password": "old-hash"}
	new := Snapshot{"name": "Alice", "password": "new-hash"}

	changedNew, _ := DiffSnapshots(old, new, []string{"name"})
	assert.Empty(t, changedNew)
}

func TestDiffSnapshotsComparesNestedValues(t *testing.T) {
	old := Snapshot{"description": TranslatedString{"en": "old"}}
	new := Snapshot{"description": TranslatedString{"en": "new"}}

	changedNew, changedOld := DiffSnapshots(old, new, []string{"description"})
	assert.Equal(t, TranslatedString{"en": "new"}, changedNew["description"])
	assert.Equal(t, TranslatedString{"en": "old"}, changedOld["description"])
}
