package alerts

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/metrics"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/models"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/store"
)

type fakeBroadcaster struct {
	events []models.AlertAcknowledgedEvent
}

func (f *fakeBroadcaster) BroadcastAlertAcknowledged(ev models.AlertAcknowledgedEvent) {
	f.events = append(f.events, ev)
}

func newTestCoordinator(t *testing.T) (*Coordinator, *store.Store, *fakeBroadcaster) {
	t.Helper()

	st, err := store.Open("file:" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, st.Init(context.Background()))
	t.Cleanup(func() { st.Close() })

	broadcaster := &fakeBroadcaster{}
	return NewCoordinator(st, broadcaster, metrics.New()), st, broadcaster
}

func createAlert(t *testing.T, st *store.Store, class string) models.Alert {
	t.Helper()
	alert, err := st.CreateAlert(context.Background(), store.NewAlert{
		CameraID:    1,
		CameraName:  "Entrance",
		Location:    "Lobby",
		ObjectClass: class,
		Confidence:  0.8,
		Severity:    models.SeverityHigh,
		Message:     models.AlertMessage(class, models.SeverityHigh),
		CreatedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)
	return alert
}

func TestAcknowledge_Success(t *testing.T) {
	coord, st, broadcaster := newTestCoordinator(t)
	alert := createAlert(t, st, "pistol")

	acked, err := coord.Acknowledge(context.Background(), alert.ID, "Jordan")
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusAcknowledged, acked.Status)
	require.NotNil(t, acked.AcknowledgedBy)
	assert.Equal(t, "Jordan", *acked.AcknowledgedBy)

	require.Len(t, broadcaster.events, 1)
	assert.Equal(t, alert.ID, broadcaster.events[0].AlertID)
	assert.Equal(t, "Jordan", broadcaster.events[0].AcknowledgedBy)
}

func TestAcknowledge_DefaultsAdminName(t *testing.T) {
	coord, st, _ := newTestCoordinator(t)
	alert := createAlert(t, st, "pistol")

	acked, err := coord.Acknowledge(context.Background(), alert.ID, "")
	require.NoError(t, err)
	require.NotNil(t, acked.AcknowledgedBy)
	assert.Equal(t, DefaultAdminName, *acked.AcknowledgedBy)
}

func TestAcknowledge_AlreadyAcknowledged(t *testing.T) {
	coord, st, broadcaster := newTestCoordinator(t)
	alert := createAlert(t, st, "pistol")

	_, err := coord.Acknowledge(context.Background(), alert.ID, "Jordan")
	require.NoError(t, err)

	again, err := coord.Acknowledge(context.Background(), alert.ID, "Casey")
	assert.ErrorIs(t, err, store.ErrAlreadyAcknowledged)
	require.NotNil(t, again.AcknowledgedBy)
	assert.Equal(t, "Jordan", *again.AcknowledgedBy)

	// No second broadcast for the losing acknowledgement
	assert.Len(t, broadcaster.events, 1)
}

func TestAcknowledge_NotFound(t *testing.T) {
	coord, _, broadcaster := newTestCoordinator(t)

	_, err := coord.Acknowledge(context.Background(), 404, "Jordan")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Empty(t, broadcaster.events)
}

func TestList_PendingOnly(t *testing.T) {
	coord, st, _ := newTestCoordinator(t)
	first := createAlert(t, st, "pistol")
	second := createAlert(t, st, "knife")

	_, err := coord.Acknowledge(context.Background(), first.ID, "Jordan")
	require.NoError(t, err)

	pending, err := coord.List(context.Background(), true, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)

	all, err := coord.List(context.Background(), false, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
