package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/clinicops/clinic-console/internal/api"
	"github.com/clinicops/clinic-console/internal/cache"
	"github.com/clinicops/clinic-console/internal/clinic"
	"github.com/clinicops/clinic-console/internal/config"
	"github.com/clinicops/clinic-console/internal/console"
	"github.com/clinicops/clinic-console/internal/dashboard"
	"github.com/clinicops/clinic-console/internal/search"
	"github.com/clinicops/clinic-console/pkg/logging"
)

func main() {
	// Load .env file if present (for local development)
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic-console",
		"env", cfg.Env,
		"api_base_url", cfg.APIBaseURL,
	)

	registry := prometheus.NewRegistry()
	client, err := api.New(api.Config{
		BaseURL: cfg.APIBaseURL,
		Token:   cfg.APIToken,
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
		Metrics: api.NewMetrics(registry),
	})
	if err != nil {
		logger.Error("failed to build API client", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	ownerID := cfg.OwnerID

	// Password login wins over a static token; it also tells us who
	// owns the settings cache.
	if cfg.LoginEmail != "" && cfg.LoginPassword != "" {
		auth := clinic.NewAuthService(client, logger)
		session, err := auth.Login(ctx, cfg.LoginEmail, cfg.LoginPassword)
		if err != nil {
			logger.Error("login failed", "email", cfg.LoginEmail, "error", err)
			os.Exit(1)
		}
		ownerID = session.OwnerID
		logger.Info("logged in", "owner_id", session.OwnerID, "expires_at", session.ExpiresAt)
	}

	settingsCache := newSettingsCache(cfg, logger)

	patients := clinic.NewPatientService(client, logger)
	appointments := clinic.NewAppointmentService(client, logger)
	settings := clinic.NewSettingsService(client, settingsCache, logger)
	weather := clinic.NewWeatherService(client, cfg.HealthTimeout, logger)

	board := console.NewDashboardController(dashboard.New(dashboard.Config{
		Appointments: appointments,
		Patients:     patients,
		Settings:     settings,
		Weather:      weather,
		Location:     cfg.WeatherLocation,
		OwnerID:      ownerID,
		Logger:       logger,
	}), weather, logger)

	board.Refresh(ctx)
	state := board.State()
	if !state.Healthy {
		logger.Error("backend unreachable", "api_base_url", cfg.APIBaseURL)
		os.Exit(1)
	}
	if state.Err != "" {
		logger.Error("dashboard load failed", "error", state.Err)
		os.Exit(1)
	}

	printDashboard(state.Snapshot)

	// A first page of the roster, through the same pipeline the list
	// screen drives.
	pipeline := search.NewPipeline(search.PipelineConfig{
		Fetch:      patients.Search,
		Quiescence: cfg.SearchDebounce,
		PageSize:   cfg.DefaultPageSize,
		Logger:     logger,
	})
	defer pipeline.Stop()
	pipeline.Refresh(ctx)
	printRoster(pipeline.Snapshot())
}

func newSettingsCache(cfg *config.Config, logger *logging.Logger) cache.Cache[clinic.Settings] {
	if cfg.RedisAddr == "" {
		return cache.NewMemory[clinic.Settings](cfg.SettingsCacheTTL, nil)
	}
	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	logger.Info("using redis settings cache", "addr", cfg.RedisAddr)
	return cache.NewRedis[clinic.Settings](redis.NewClient(opts), "settings", cfg.SettingsCacheTTL)
}

func printRoster(snap search.Snapshot) {
	if snap.Err != "" {
		fmt.Printf("Roster unavailable: %s\n", snap.Err)
		return
	}
	fmt.Printf("Roster page %d of %d (%d patients)\n", snap.Page, snap.TotalPages, snap.Total)
	for _, p := range snap.Items {
		fmt.Printf("  %s  %s\n", p.FullName(), p.Phone)
	}
}

func printDashboard(snap *dashboard.Snapshot) {
	fmt.Printf("Schedule for %s\n", snap.Date)
	for _, entry := range snap.Schedule {
		if entry.Free {
			fmt.Printf("  %s - %s  (free)\n", entry.Start, entry.End)
			continue
		}
		title := entry.Appointment.Title
		if title == "" {
			title = "appointment"
		}
		fmt.Printf("  %s - %s  %s [%s]\n", entry.Start, entry.End, title, entry.Appointment.Status)
	}
	if snap.Summary != nil {
		fmt.Printf("Patients: %d total, %d new this month, %d upcoming bookings\n",
			snap.Summary.TotalPatients, snap.Summary.NewThisMonth, snap.Summary.UpcomingBookings)
	}
	if snap.Weather != nil {
		fmt.Printf("Weather in %s: %.1f°C, %s\n",
			snap.Weather.Location, snap.Weather.TempCelsius, snap.Weather.Condition)
	}
}
