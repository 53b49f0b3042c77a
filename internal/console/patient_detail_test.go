package console_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicops/clinic-console/internal/clinic"
	"github.com/clinicops/clinic-console/internal/console"
)

func newDetail(fx *fixture) *console.PatientDetailController {
	return console.NewPatientDetailController(
		fx.patients,
		console.NewHistoryController(fx.appointments, fx.notifier, nil),
		console.NewPreconditionsController(fx.preconditions, fx.notifier, nil),
		console.NewFilesController(fx.files, fx.notifier, nil),
		nil,
	)
}

func TestDetailOpenLoadsHeaderAndHistory(t *testing.T) {
	fx := newFixture(t)
	p := seedPatient(fx, "Alice", "Martinez")
	fx.backend.AddAppointment(clinic.Appointment{
		PatientID: p.ID, Date: "2026-01-10", StartTime: "09:00:00.123456", EndTime: "09:30:00", Status: clinic.StatusCompleted,
	})
	fx.backend.AddAppointment(clinic.Appointment{
		PatientID: p.ID, Date: "2026-03-05", StartTime: "11:00:00", EndTime: "11:30:00", Status: clinic.StatusBooked,
	})

	ctrl := newDetail(fx)
	require.NoError(t, ctrl.Open(context.Background(), p.ID))

	require.NotNil(t, ctrl.Patient())
	assert.Equal(t, "Alice Martinez", ctrl.Patient().FullName())
	assert.Equal(t, console.TabHistory, ctrl.Tab())

	entries := ctrl.History.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "2026-03-05", entries[0].Date, "newest first")
	assert.Equal(t, "09:00:00", entries[1].StartTime, "fractional seconds trimmed")
}

func TestDetailTabsLoadLazilyAndOnce(t *testing.T) {
	fx := newFixture(t)
	p := seedPatient(fx, "Alice", "Martinez")
	ctrl := newDetail(fx)
	ctx := context.Background()
	require.NoError(t, ctrl.Open(ctx, p.ID))

	assert.Equal(t, 0, fx.backend.Count("GET /patients/{id}/preconditions"))
	require.NoError(t, ctrl.SelectTab(ctx, console.TabPreconditions))
	assert.Equal(t, console.TabPreconditions, ctrl.Tab())
	assert.Equal(t, 1, fx.backend.Count("GET /patients/{id}/preconditions"))

	require.NoError(t, ctrl.SelectTab(ctx, console.TabFiles))
	require.NoError(t, ctrl.SelectTab(ctx, console.TabPreconditions))
	assert.Equal(t, 1, fx.backend.Count("GET /patients/{id}/preconditions"), "revisits reuse the loaded data")
	assert.Equal(t, 1, fx.backend.Count("GET /patients/{id}/files"))
}

func TestDetailOpenUnknownPatient(t *testing.T) {
	fx := newFixture(t)
	ctrl := newDetail(fx)
	err := ctrl.Open(context.Background(), "ghost")
	require.Error(t, err)
	assert.Nil(t, ctrl.Patient())
}

func TestHistorySetStatus(t *testing.T) {
	fx := newFixture(t)
	p := seedPatient(fx, "Alice", "Martinez")
	a := fx.backend.AddAppointment(clinic.Appointment{
		PatientID: p.ID, Date: "2026-01-10", StartTime: "09:00:00", EndTime: "09:30:00", Status: clinic.StatusNoShow,
	})

	ctrl := console.NewHistoryController(fx.appointments, fx.notifier, nil)
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx, p.ID))

	// No-show back to completed: corrections go in any direction.
	require.NoError(t, ctrl.SetStatus(ctx, a.ID, clinic.StatusCompleted))
	entries := ctrl.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, clinic.StatusCompleted, entries[0].Status)
}

func TestHistorySetStatusFailureNotifies(t *testing.T) {
	fx := newFixture(t)
	p := seedPatient(fx, "Alice", "Martinez")
	a := fx.backend.AddAppointment(clinic.Appointment{
		PatientID: p.ID, Date: "2026-01-10", StartTime: "09:00:00", EndTime: "09:30:00", Status: clinic.StatusBooked,
	})
	ctrl := console.NewHistoryController(fx.appointments, fx.notifier, nil)
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx, p.ID))

	fx.backend.FailNext(1, 500, `{"detail":"storage offline"}`)
	require.Error(t, ctrl.SetStatus(ctx, a.ID, clinic.StatusCompleted))
	assert.Equal(t, clinic.StatusBooked, ctrl.Entries()[0].Status, "local state keeps the old status")
	require.Len(t, fx.notifier.Active(), 1)
}

func TestPreconditionsAddValidation(t *testing.T) {
	fx := newFixture(t)
	p := seedPatient(fx, "Alice", "Martinez")
	ctrl := console.NewPreconditionsController(fx.preconditions, fx.notifier, nil)
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx, p.ID))

	err := ctrl.Add(ctx, clinic.PreconditionRequest{})
	require.ErrorIs(t, err, console.ErrInvalidForm)
	assert.Equal(t, "condition name is required", ctrl.Errors().Get(console.FieldConditionName))
	assert.Equal(t, "date is required", ctrl.Errors().Get(console.FieldConditionDate))

	err = ctrl.Add(ctx, clinic.PreconditionRequest{Name: "Asthma", Date: "10.01.2020"})
	require.ErrorIs(t, err, console.ErrInvalidForm)
	assert.Equal(t, "date must be YYYY-MM-DD", ctrl.Errors().Get(console.FieldConditionDate))
}

func TestPreconditionsLifecycle(t *testing.T) {
	fx := newFixture(t)
	p := seedPatient(fx, "Alice", "Martinez")
	ctrl := console.NewPreconditionsController(fx.preconditions, fx.notifier, nil)
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx, p.ID))

	require.NoError(t, ctrl.Add(ctx, clinic.PreconditionRequest{Name: "Asthma", Date: "2020-01-10"}))
	entries := ctrl.Entries()
	require.Len(t, entries, 1)
	id := entries[0].ID

	require.NoError(t, ctrl.Update(ctx, id, clinic.PreconditionRequest{Name: "Asthma", Date: "2020-01-10", Note: "mild"}))
	assert.Equal(t, "mild", ctrl.Entries()[0].Note)

	require.NoError(t, ctrl.Remove(ctx, id))
	assert.Empty(t, ctrl.Entries())
}

func TestFilesLifecycle(t *testing.T) {
	fx := newFixture(t)
	p := seedPatient(fx, "Alice", "Martinez")
	ctrl := console.NewFilesController(fx.files, fx.notifier, nil)
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx, p.ID))

	uploaded, err := ctrl.Upload(ctx, "xray.png", "left shoulder", strings.NewReader("pngbytes"))
	require.NoError(t, err)
	require.Len(t, ctrl.Entries(), 1)

	require.NoError(t, ctrl.SetDescription(ctx, uploaded.ID, "right shoulder"))
	assert.Equal(t, "right shoulder", ctrl.Entries()[0].Description)

	content, err := ctrl.Download(ctx, uploaded.ID)
	require.NoError(t, err)
	assert.Equal(t, "pngbytes", string(content.Data))

	require.NoError(t, ctrl.Remove(ctx, uploaded.ID))
	assert.Empty(t, ctrl.Entries())
}

func TestFilesUploadNeedsName(t *testing.T) {
	fx := newFixture(t)
	p := seedPatient(fx, "Alice", "Martinez")
	ctrl := console.NewFilesController(fx.files, fx.notifier, nil)
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx, p.ID))

	_, err := ctrl.Upload(ctx, "  ", "", strings.NewReader("x"))
	require.ErrorIs(t, err, console.ErrInvalidForm)
	assert.Equal(t, 0, fx.backend.Count("POST /patients/{id}/files"))
}
