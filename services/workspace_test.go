package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePersister records writes and fails on demand.
type fakePersister struct {
	saved   []Project
	deleted []string
	err     error
}

func (f *fakePersister) Save(_ context.Context, p Project) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, p)
	return nil
}

func (f *fakePersister) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestWorkspace(fp *fakePersister) *Workspace {
	ws := NewWorkspace(fp)
	ws.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	return ws
}

func TestWorkspace_ApplyPersists(t *testing.T) {
	fp := &fakePersister{}
	ws := newTestWorkspace(fp)
	p := sampleProject()
	ws.Open(p)

	next, err := ws.Apply(context.Background(), p.ID, SetInfo{Name: strPtr("尾牙")})
	require.NoError(t, err)
	assert.Equal(t, "尾牙", next.Name)
	assert.Equal(t, int64(1_700_000_000_000), next.UpdatedAt)

	require.Len(t, fp.saved, 1)
	assert.Equal(t, "尾牙", fp.saved[0].Name)

	snap, ok := ws.Snapshot(p.ID)
	require.True(t, ok)
	assert.Equal(t, next, snap)
}

func TestWorkspace_ApplyRollsBackOnPersistFailure(t *testing.T) {
	boom := errors.New("disk full")
	fp := &fakePersister{err: boom}
	ws := newTestWorkspace(fp)
	p := sampleProject()
	ws.Open(p)

	_, err := ws.Apply(context.Background(), p.ID, RemoveItem{ItemID: "mic"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))

	snap, ok := ws.Snapshot(p.ID)
	require.True(t, ok)
	assert.Equal(t, p, snap)
}

func TestWorkspace_ApplyRejectsInvalidResult(t *testing.T) {
	fp := &fakePersister{}
	ws := newTestWorkspace(fp)
	p := sampleProject()
	ws.Open(p)

	_, err := ws.Apply(context.Background(), p.ID, AddCharge{Charge: PeriodCharge{ID: "x", Type: "percent"}})
	assert.True(t, errors.Is(err, ErrInvalidProject))
	assert.Empty(t, fp.saved)

	snap, _ := ws.Snapshot(p.ID)
	assert.Equal(t, p, snap)
}

func TestWorkspace_ApplyUnknownProject(t *testing.T) {
	ws := newTestWorkspace(&fakePersister{})
	_, err := ws.Apply(context.Background(), "missing", SetInfo{})
	assert.True(t, errors.Is(err, ErrProjectNotFound))
}

func TestWorkspace_SnapshotIsCopy(t *testing.T) {
	ws := newTestWorkspace(&fakePersister{})
	p := sampleProject()
	ws.Open(p)

	snap, _ := ws.Snapshot(p.ID)
	snap.Items[0].Name = "changed"

	again, _ := ws.Snapshot(p.ID)
	assert.Equal(t, "染色燈", again.Items[0].Name)
}

func TestWorkspace_Delete(t *testing.T) {
	fp := &fakePersister{}
	ws := newTestWorkspace(fp)
	p := sampleProject()
	ws.Open(p)

	require.NoError(t, ws.Delete(context.Background(), p.ID))
	assert.Equal(t, []string{p.ID}, fp.deleted)
	_, ok := ws.Snapshot(p.ID)
	assert.False(t, ok)
}

func TestWorkspace_DeleteRestoresOnFailure(t *testing.T) {
	fp := &fakePersister{err: ErrProjectNotFound}
	ws := newTestWorkspace(fp)
	p := sampleProject()
	ws.Open(p)

	err := ws.Delete(context.Background(), p.ID)
	assert.True(t, errors.Is(err, ErrProjectNotFound))
	snap, ok := ws.Snapshot(p.ID)
	require.True(t, ok)
	assert.Equal(t, p, snap)
}

func TestRecordPersister_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rp := NewRecordPersister(nil)
	assert.ErrorIs(t, rp.Save(ctx, sampleProject()), context.Canceled)
	assert.ErrorIs(t, rp.Delete(ctx, "x"), context.Canceled)
}
