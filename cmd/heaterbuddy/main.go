// @title        HeaterBuddy API
// @version      1.0
// @description  Heater control backend: setpoint, power, sensor readings, weather and event log.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"heaterbuddy/internal/config"
	"heaterbuddy/internal/handlers"
	"heaterbuddy/internal/logger"
	"heaterbuddy/internal/metrics"
	"heaterbuddy/internal/repository"
	"heaterbuddy/internal/repository/db"
	"heaterbuddy/internal/server"
	"heaterbuddy/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to config file (default configs/config.yml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	rec, err := metrics.New(cfg.Metrics)
	if err != nil {
		log.Warnw("statsd disabled", "addr", cfg.Metrics.Addr, "err", err)
	}
	defer func() { _ = metrics.Close(rec) }()

	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, serviceDeps(cfg, rec))
	apiHandler := handlers.NewHandler(services, log, handlers.Options{RequireAuth: cfg.Auth.Enabled})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Heater.Simulate {
		go services.Simulator.Run(ctx, cfg.Heater.SimTick)
	} else {
		log.Infow("simulator disabled, expecting readings on /api/heater/reading")
	}

	srv := server.New(cfg.Server.Port, apiHandler.InitRoutes())
	go func() {
		log.Infow("http_listening", "addr", srv.Addr(), "auth", cfg.Auth.Enabled)
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()

	waitForShutdown(cancel, srv, log)
}

func serviceDeps(cfg config.Config, rec metrics.Recorder) service.Deps {
	return service.Deps{
		Limits: service.Limits{
			MinF:           cfg.Heater.MinF,
			MaxF:           cfg.Heater.MaxF,
			DefaultTargetF: cfg.Heater.DefaultTargetF,
		},
		Thermal: service.ThermalModel{
			AmbientF: cfg.Heater.AmbientF,
			WarmRate: cfg.Heater.WarmRate,
			CoolRate: cfg.Heater.CoolRate,
		},
		Weather: service.WeatherSettings{
			URL:    cfg.Weather.URL,
			APIKey: cfg.Weather.APIKey,
			City:   cfg.Weather.City,
			TTL:    cfg.Weather.TTL,
		},
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Metrics:    rec,
		SigningKey: cfg.Auth.SigningKey,
		TokenTTL:   cfg.Auth.TokenTTL,
	}
}

// waitForShutdown blocks until SIGINT/SIGTERM, then stops the simulator and
// drains in-flight requests.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
