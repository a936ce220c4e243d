package testsupport

import (
	"context"
	"testing"

	"slate/internal/config"
	"slate/internal/takes"
)

// MustOpenStore opens a takes.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *takes.Store {
	t.Helper()

	store, err := takes.Open(cfg)
	if err != nil {
		t.Fatalf("takes.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewProject lazily creates the default test project.
func NewProject(t testing.TB, store *takes.Store) *takes.Project {
	t.Helper()

	project, err := store.EnsureProject(context.Background(), takes.ProjectDefaults{
		Name:        "Test Production",
		Description: "Fixture project",
	})
	if err != nil {
		t.Fatalf("store.EnsureProject: %v", err)
	}
	return project
}

// NewTake registers a take for tests using the provided store.
func NewTake(t testing.TB, store *takes.Store, fileName, filePath string) *takes.Take {
	t.Helper()

	project := NewProject(t, store)
	take, err := store.NewTake(context.Background(), project.ID, fileName, filePath)
	if err != nil {
		t.Fatalf("store.NewTake: %v", err)
	}
	return take
}
