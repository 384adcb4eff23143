package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// Persister writes project snapshots to durable storage.
type Persister interface {
	Save(ctx context.Context, p Project) error
	Delete(ctx context.Context, id string) error
}

// RecordPersister stores projects in the PocketBase projects collection.
type RecordPersister struct {
	app core.App
}

// NewRecordPersister returns a Persister backed by app.
func NewRecordPersister(app core.App) *RecordPersister {
	return &RecordPersister{app: app}
}

func (r *RecordPersister) Save(ctx context.Context, p Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return SaveProject(r.app, p)
}

func (r *RecordPersister) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return DeleteProject(r.app, id)
}

// Workspace holds the current snapshot of each open project. Mutations are
// applied locally first and then persisted; when the write fails the previous
// snapshot is put back so readers never observe state that was not stored.
type Workspace struct {
	mu        sync.Mutex
	persister Persister
	projects  map[string]Project
	now       func() time.Time
}

// NewWorkspace returns an empty workspace writing through persister.
func NewWorkspace(persister Persister) *Workspace {
	return &Workspace{
		persister: persister,
		projects:  make(map[string]Project),
		now:       time.Now,
	}
}

// Open makes p the current snapshot for its id.
func (w *Workspace) Open(p Project) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.projects[p.ID] = p.Clone()
}

// Snapshot returns a copy of the current snapshot for id.
func (w *Workspace) Snapshot(id string) (Project, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.projects[id]
	if !ok {
		return Project{}, false
	}
	return p.Clone(), true
}

// Apply runs cmds against the current snapshot of id, stamps updatedAt and
// persists the result. On a validation or persist failure the snapshot is
// left as it was and the error is returned.
func (w *Workspace) Apply(ctx context.Context, id string, cmds ...Command) (Project, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	prev, ok := w.projects[id]
	if !ok {
		return Project{}, ErrProjectNotFound
	}

	next := ApplyCommands(prev, cmds...)
	next.UpdatedAt = w.now().UnixMilli()
	if err := ValidateProject(next); err != nil {
		return Project{}, err
	}

	w.projects[id] = next
	if err := w.persister.Save(ctx, next); err != nil {
		w.projects[id] = prev
		log.Printf("workspace: rolled back project %s: %v", id, err)
		return Project{}, fmt.Errorf("persist project %s: %w", id, err)
	}
	return next.Clone(), nil
}

// Delete drops id locally, then from storage. The snapshot is restored if
// the storage delete fails.
func (w *Workspace) Delete(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	prev, had := w.projects[id]
	delete(w.projects, id)
	if err := w.persister.Delete(ctx, id); err != nil {
		if had {
			w.projects[id] = prev
		}
		log.Printf("workspace: delete of project %s rolled back: %v", id, err)
		return err
	}
	return nil
}
