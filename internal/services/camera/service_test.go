package camera

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/models"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/store"
)

type fakeBroadcaster struct {
	events []models.CameraStatusEvent
}

func (f *fakeBroadcaster) BroadcastCameraStatus(ev models.CameraStatusEvent) {
	f.events = append(f.events, ev)
}

func newTestService(t *testing.T) (*Service, *fakeBroadcaster) {
	t.Helper()

	st, err := store.Open("file:" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, st.Init(context.Background()))
	t.Cleanup(func() { st.Close() })

	broadcaster := &fakeBroadcaster{}
	return New(st, broadcaster), broadcaster
}

func TestAdd_RequiresName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Add(context.Background(), models.CameraRequest{Location: "Lobby"})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestAdd_StartsActive(t *testing.T) {
	svc, _ := newTestService(t)

	cam, err := svc.Add(context.Background(), models.CameraRequest{
		Name:     "Entrance",
		Location: "Lobby",
		RTSPUrl:  "rtsp://example/1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CameraStatusActive, cam.Status)
	assert.NotZero(t, cam.ID)
}

func TestToggle_FlipsStatusAndBroadcasts(t *testing.T) {
	svc, broadcaster := newTestService(t)
	ctx := context.Background()

	cam, err := svc.Add(ctx, models.CameraRequest{Name: "Entrance"})
	require.NoError(t, err)

	toggled, err := svc.Toggle(ctx, cam.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CameraStatusInactive, toggled.Status)

	toggled, err = svc.Toggle(ctx, cam.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CameraStatusActive, toggled.Status)

	require.Len(t, broadcaster.events, 2)
	assert.Equal(t, "inactive", broadcaster.events[0].Status)
	assert.Equal(t, "active", broadcaster.events[1].Status)
}

func TestToggle_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Toggle(context.Background(), 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRemove(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cam, err := svc.Add(ctx, models.CameraRequest{Name: "Entrance"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, cam.ID))
	_, err = svc.Get(ctx, cam.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, svc.Remove(ctx, cam.ID), store.ErrNotFound)
}

func TestList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, models.CameraRequest{Name: "A"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, models.CameraRequest{Name: "B"})
	require.NoError(t, err)

	cameras, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, cameras, 2)
	assert.Equal(t, "A", cameras[0].Name)
	assert.Equal(t, "B", cameras[1].Name)
}
