package clinic_test

import (
	"context"
	"testing"
	"time"

	"github.com/clinicops/clinic-console/internal/cache"
	"github.com/clinicops/clinic-console/internal/clinic"
)

func TestSettingsService_CachesByOwner(t *testing.T) {
	srv, client := newBackend(t)
	memCache := cache.NewMemory[clinic.Settings](time.Minute, nil)
	svc := clinic.NewSettingsService(client, memCache, nil)
	ctx := context.Background()

	first, err := svc.Get(ctx, "owner-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if first.ClinicName != "Test Clinic" {
		t.Fatalf("clinic_name = %s", first.ClinicName)
	}

	if _, err := svc.Get(ctx, "owner-1"); err != nil {
		t.Fatalf("second Get() error = %v", err)
	}
	if got := srv.Count("GET /settings"); got != 1 {
		t.Fatalf("backend settings calls = %d, want 1 (second read served from cache)", got)
	}

	// A different owner key is a cache miss by construction.
	if _, err := svc.Get(ctx, "owner-2"); err != nil {
		t.Fatalf("Get() for other owner error = %v", err)
	}
	if got := srv.Count("GET /settings"); got != 2 {
		t.Fatalf("backend settings calls = %d, want 2", got)
	}
}

func TestSettingsService_TTLExpiryRefetches(t *testing.T) {
	srv, client := newBackend(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	memCache := cache.NewMemory[clinic.Settings](5*time.Minute, func() time.Time { return now })
	svc := clinic.NewSettingsService(client, memCache, nil)
	ctx := context.Background()

	if _, err := svc.Get(ctx, "owner-1"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	now = now.Add(6 * time.Minute)
	if _, err := svc.Get(ctx, "owner-1"); err != nil {
		t.Fatalf("Get() after expiry error = %v", err)
	}
	if got := srv.Count("GET /settings"); got != 2 {
		t.Fatalf("backend settings calls = %d, want 2 after TTL expiry", got)
	}
}

func TestSettingsService_RefreshBypassesCache(t *testing.T) {
	srv, client := newBackend(t)
	memCache := cache.NewMemory[clinic.Settings](time.Minute, nil)
	svc := clinic.NewSettingsService(client, memCache, nil)
	ctx := context.Background()

	if _, err := svc.Get(ctx, "owner-1"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	srv.SetSettings(clinic.Settings{OwnerID: "owner-1", ClinicName: "Renamed Clinic"})

	refreshed, err := svc.Refresh(ctx, "owner-1")
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if refreshed.ClinicName != "Renamed Clinic" {
		t.Fatalf("clinic_name = %s, want Renamed Clinic", refreshed.ClinicName)
	}

	// The refreshed value replaced the cached copy.
	again, err := svc.Get(ctx, "owner-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if again.ClinicName != "Renamed Clinic" {
		t.Fatalf("cached clinic_name = %s, want Renamed Clinic", again.ClinicName)
	}
}

func TestSettingsService_UpdateRecaches(t *testing.T) {
	srv, client := newBackend(t)
	memCache := cache.NewMemory[clinic.Settings](time.Minute, nil)
	svc := clinic.NewSettingsService(client, memCache, nil)
	ctx := context.Background()

	updated, err := svc.Update(ctx, "owner-1", clinic.SettingsRequest{ClinicName: "New Name"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ClinicName != "New Name" {
		t.Fatalf("clinic_name = %s", updated.ClinicName)
	}

	if _, err := svc.Get(ctx, "owner-1"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got := srv.Count("GET /settings"); got != 0 {
		t.Fatalf("backend settings reads = %d, want 0 (update populated the cache)", got)
	}
}

func TestSettingsService_InvalidateForcesRefetch(t *testing.T) {
	srv, client := newBackend(t)
	memCache := cache.NewMemory[clinic.Settings](time.Minute, nil)
	svc := clinic.NewSettingsService(client, memCache, nil)
	ctx := context.Background()

	if _, err := svc.Get(ctx, "owner-1"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	svc.Invalidate(ctx, "owner-1")
	if _, err := svc.Get(ctx, "owner-1"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got := srv.Count("GET /settings"); got != 2 {
		t.Fatalf("backend settings calls = %d, want 2", got)
	}
}

func TestSettingsService_NilCacheAlwaysFetches(t *testing.T) {
	srv, client := newBackend(t)
	svc := clinic.NewSettingsService(client, nil, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Get(ctx, "owner-1"); err != nil {
			t.Fatalf("Get() error = %v", err)
		}
	}
	if got := srv.Count("GET /settings"); got != 3 {
		t.Fatalf("backend settings calls = %d, want 3", got)
	}
}

func TestSettingsService_FieldValues(t *testing.T) {
	_, client := newBackend(t)
	svc := clinic.NewSettingsService(client, nil, nil)

	values, err := svc.FieldValues(context.Background(), "theme_variant")
	if err != nil {
		t.Fatalf("FieldValues() error = %v", err)
	}
	if len(values) != 2 || values[0] != "light" {
		t.Fatalf("values = %v", values)
	}
}
