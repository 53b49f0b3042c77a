package clinic_test

import (
	"context"
	"errors"
	"testing"

	"github.com/clinicops/clinic-console/internal/api"
	"github.com/clinicops/clinic-console/internal/clinic"
)

func TestAppointmentService_CreateNormalizesTimes(t *testing.T) {
	srv, client := newBackend(t)
	svc := clinic.NewAppointmentService(client, nil)
	patient := srv.AddPatient(clinic.Patient{FirstName: "Jane", LastName: "Doe", Phone: "12345678"})

	created, err := svc.Create(context.Background(), clinic.AppointmentRequest{
		PatientID: patient.ID,
		Date:      "2026-09-01",
		StartTime: "09:00",
		EndTime:   "09:30:00.000000",
		TypeID:    "type-1",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.StartTime != "09:00:00" {
		t.Fatalf("start_time = %s, want 09:00:00", created.StartTime)
	}
	if created.EndTime != "09:30:00" {
		t.Fatalf("end_time = %s, want 09:30:00", created.EndTime)
	}
	if created.Status != clinic.StatusBooked {
		t.Fatalf("status = %s, want Booked", created.Status)
	}
}

func TestAppointmentService_CreateConflictSurfacesDetail(t *testing.T) {
	srv, client := newBackend(t)
	svc := clinic.NewAppointmentService(client, nil)
	srv.AddAppointment(clinic.Appointment{
		PatientID: "p-1", Date: "2026-09-01", StartTime: "09:00:00", EndTime: "09:30:00",
	})

	_, err := svc.Create(context.Background(), clinic.AppointmentRequest{
		PatientID: "p-2",
		Date:      "2026-09-01",
		StartTime: "09:00:00",
		EndTime:   "09:30:00",
		TypeID:    "type-1",
	})
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *api.Error", err)
	}
	if apiErr.Status != 409 {
		t.Fatalf("status = %d, want 409", apiErr.Status)
	}
	if apiErr.Message != "time slot already booked" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestAppointmentService_UpdateStatusAnyToAny(t *testing.T) {
	srv, client := newBackend(t)
	svc := clinic.NewAppointmentService(client, nil)
	appt := srv.AddAppointment(clinic.Appointment{
		PatientID: "p-1", Date: "2026-09-01", StartTime: "09:00:00", EndTime: "09:30:00",
		Status: clinic.StatusCompleted,
	})

	// No transition guard: Completed may go straight back to Booked.
	updated, err := svc.UpdateStatus(context.Background(), appt.ID, clinic.StatusBooked)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if updated.Status != clinic.StatusBooked {
		t.Fatalf("status = %s, want Booked", updated.Status)
	}
}

func TestAppointmentService_ListByPatient(t *testing.T) {
	srv, client := newBackend(t)
	svc := clinic.NewAppointmentService(client, nil)
	srv.AddAppointment(clinic.Appointment{PatientID: "p-1", Date: "2026-09-02", StartTime: "10:00:00", EndTime: "10:30:00"})
	srv.AddAppointment(clinic.Appointment{PatientID: "p-1", Date: "2026-09-01", StartTime: "09:00:00", EndTime: "09:30:00"})
	srv.AddAppointment(clinic.Appointment{PatientID: "p-2", Date: "2026-09-01", StartTime: "11:00:00", EndTime: "11:30:00"})

	history, err := svc.ListByPatient(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("ListByPatient() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(history))
	}
	if history[0].Date != "2026-09-01" {
		t.Fatalf("history not date-ordered: %+v", history)
	}
}

func TestAppointmentService_Delete(t *testing.T) {
	srv, client := newBackend(t)
	svc := clinic.NewAppointmentService(client, nil)
	appt := srv.AddAppointment(clinic.Appointment{PatientID: "p-1", Date: "2026-09-01", StartTime: "09:00:00", EndTime: "09:30:00"})

	if err := svc.Delete(context.Background(), appt.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(context.Background(), appt.ID); err == nil {
		t.Fatal("expected not-found after delete")
	}
}

func TestAppointmentTypeService_AvailableSlots(t *testing.T) {
	srv, client := newBackend(t)
	svc := clinic.NewAppointmentTypeService(client, nil)
	typ := srv.AddType(clinic.AppointmentType{Name: "Consultation", DurationMinutes: 30})
	srv.SetSlots(typ.ID, "2026-09-01", []clinic.TimeSlot{
		{StartTime: "09:00:00.000000", EndTime: "09:30:00.000000"},
		{StartTime: "09:30:00", EndTime: "10:00:00"},
	})

	slots, err := svc.AvailableSlots(context.Background(), typ.ID, "2026-09-01")
	if err != nil {
		t.Fatalf("AvailableSlots() error = %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("len(slots) = %d, want 2", len(slots))
	}
	if slots[0].StartTime != "09:00:00" {
		t.Fatalf("fractional seconds not trimmed: %s", slots[0].StartTime)
	}
}

func TestAppointmentTypeService_CRUD(t *testing.T) {
	_, client := newBackend(t)
	svc := clinic.NewAppointmentTypeService(client, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, clinic.AppointmentTypeRequest{Name: "Emergency", DurationMinutes: 60})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, clinic.AppointmentTypeRequest{Name: "Emergency", DurationMinutes: 45})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.DurationMinutes != 45 {
		t.Fatalf("duration = %d, want 45", updated.DurationMinutes)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("len(types) = %d, want 1", len(all))
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}
