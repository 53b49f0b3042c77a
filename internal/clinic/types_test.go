package clinic_test

import (
	"context"
	"testing"
	"time"

	"github.com/clinicops/clinic-console/internal/clinic"
)

func TestPatientAge(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		dob  string
		want int
	}{
		{"birthday passed this year", "1990-04-12", 36},
		{"birthday later this year", "1990-12-01", 35},
		{"birthday today", "2000-08-26", 26},
		{"born this year", "2026-01-01", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := clinic.Patient{DateOfBirth: tt.dob}
			got, err := p.Age(now)
			if err != nil {
				t.Fatalf("Age() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("Age() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPatientAge_BadDate(t *testing.T) {
	p := clinic.Patient{DateOfBirth: "12/04/1990"}
	if _, err := p.Age(time.Now()); err == nil {
		t.Fatal("expected parse error for non-ISO date")
	}
}

func TestTrimClock(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"09:00:00", "09:00:00"},
		{"09:00:00.000000", "09:00:00"},
		{"09:00", "09:00:00"},
		{" 14:30:15.5 ", "14:30:15"},
	}
	for _, tt := range tests {
		if got := clinic.TrimClock(tt.in); got != tt.want {
			t.Fatalf("TrimClock(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseGender(t *testing.T) {
	if g, err := clinic.ParseGender(" Female "); err != nil || g != clinic.GenderFemale {
		t.Fatalf("ParseGender = %v, %v", g, err)
	}
	if _, err := clinic.ParseGender("unknown"); err == nil {
		t.Fatal("expected error for unknown gender")
	}
}

func TestParseAppointmentStatus(t *testing.T) {
	if s, err := clinic.ParseAppointmentStatus("no show"); err != nil || s != clinic.StatusNoShow {
		t.Fatalf("ParseAppointmentStatus = %v, %v", s, err)
	}
	if _, err := clinic.ParseAppointmentStatus("Rescheduled"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestWeatherService_ByLocation(t *testing.T) {
	_, client := newBackend(t)
	svc := clinic.NewWeatherService(client, 0, nil)

	weather, err := svc.ByLocation(context.Background(), "Springfield")
	if err != nil {
		t.Fatalf("ByLocation() error = %v", err)
	}
	if weather.Location != "Springfield" {
		t.Fatalf("location = %s", weather.Location)
	}
}

func TestWeatherService_Health(t *testing.T) {
	_, client := newBackend(t)
	svc := clinic.NewWeatherService(client, time.Second, nil)

	if err := svc.Health(context.Background()); err != nil {
		t.Fatalf("Health() error = %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	srv, client := newBackend(t)
	svc := clinic.NewAuthService(client, nil)

	session, err := svc.Login(context.Background(), "admin@clinic.test", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected token")
	}
	if session.OwnerID != "owner-1" {
		t.Fatalf("owner_id = %s", session.OwnerID)
	}
	if session.ExpiresAt.Year() != 2100 {
		t.Fatalf("expiry year = %d, want 2100 (from token exp claim)", session.ExpiresAt.Year())
	}
	if session.Expired(time.Now()) {
		t.Fatal("session should not be expired")
	}

	// The token now rides on every request.
	if _, err := clinic.NewPatientService(client, nil).List(context.Background(), 0, 10); err != nil {
		t.Fatalf("List() after login error = %v", err)
	}
	if srv.Count("POST /auth/login") != 1 {
		t.Fatalf("login calls = %d, want 1", srv.Count("POST /auth/login"))
	}
}

func TestAuthService_LoginRejected(t *testing.T) {
	_, client := newBackend(t)
	svc := clinic.NewAuthService(client, nil)

	if _, err := svc.Login(context.Background(), "", ""); err == nil {
		t.Fatal("expected error for empty credentials")
	}
}
