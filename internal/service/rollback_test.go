package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pagesmith/internal/domain"
	"pagesmith/internal/domain/models"
)

func seedVersion(store *fakeStore, id, projectID, code string) {
	store.versions[id] = &models.Version{
		ID:        id,
		ProjectID: projectID,
		Code:      code,
		CreatedAt: time.Now(),
	}
}

func TestRollback_Success(t *testing.T) {
	store, _, projects, versions, convs := newTestEnv()
	store.addUser("u1", 10)
	store.addProject("p1", "u1", "<html>v2</html>")
	seedVersion(store, "v1", "p1", "<html>v1</html>")
	seedVersion(store, "v2", "p1", "<html>v2</html>")
	ptr := "v2"
	store.projects["p1"].CurrentVersionID = &ptr

	svc := NewRollbackService(projects, versions, convs, fakeTxManager{}, testLogger())

	if err := svc.Rollback(context.Background(), "p1", "u1", "v1"); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}

	project := store.projects["p1"]
	if project.CurrentVersionID == nil || *project.CurrentVersionID != "v1" {
		t.Errorf("pointer = %v, want v1", project.CurrentVersionID)
	}
	if project.CurrentCode == nil || *project.CurrentCode != "<html>v1</html>" {
		t.Errorf("document = %v, want v1 snapshot", project.CurrentCode)
	}

	// A pointer move, not a history edit.
	if got := store.versionCount("p1"); got != 2 {
		t.Errorf("versions = %d, want 2 (unchanged)", got)
	}

	// One audit entry logged.
	if got := store.entryCount("p1"); got != 1 {
		t.Errorf("conversation entries = %d, want 1", got)
	}
}

func TestRollback_VersionFromOtherProject(t *testing.T) {
	store, _, projects, versions, convs := newTestEnv()
	store.addUser("u1", 10)
	store.addProject("p1", "u1", "<html>p1</html>")
	store.addProject("p2", "u1", "<html>p2</html>")
	seedVersion(store, "v-other", "p2", "<html>p2 v1</html>")

	svc := NewRollbackService(projects, versions, convs, fakeTxManager{}, testLogger())

	err := svc.Rollback(context.Background(), "p1", "u1", "v-other")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// No state change on the target project.
	if store.projects["p1"].CurrentVersionID != nil {
		t.Errorf("pointer moved on failed rollback")
	}
	if got := store.entryCount("p1"); got != 0 {
		t.Errorf("conversation entries = %d, want 0", got)
	}
}

func TestRollback_ProjectNotOwned(t *testing.T) {
	store, _, projects, versions, convs := newTestEnv()
	store.addUser("u1", 10)
	store.addProject("p1", "u2", "<html></html>")
	seedVersion(store, "v1", "p1", "<html>v1</html>")

	svc := NewRollbackService(projects, versions, convs, fakeTxManager{}, testLogger())

	err := svc.Rollback(context.Background(), "p1", "u1", "v1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRollback_ToCurrentVersionStillLogs(t *testing.T) {
	store, _, projects, versions, convs := newTestEnv()
	store.addUser("u1", 10)
	store.addProject("p1", "u1", "<html>v1</html>")
	seedVersion(store, "v1", "p1", "<html>v1</html>")
	ptr := "v1"
	store.projects["p1"].CurrentVersionID = &ptr

	svc := NewRollbackService(projects, versions, convs, fakeTxManager{}, testLogger())

	if err := svc.Rollback(context.Background(), "p1", "u1", "v1"); err != nil {
		t.Fatalf("idempotent rollback failed: %v", err)
	}
	if got := store.entryCount("p1"); got != 1 {
		t.Errorf("conversation entries = %d, want 1 (rollback still logs)", got)
	}
}
