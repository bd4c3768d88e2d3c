package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"heaterbuddy/internal/config"
	"heaterbuddy/internal/logger"
	"heaterbuddy/internal/metrics"
	"heaterbuddy/internal/panel"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default configs/config.yml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	pcfg, err := panelConfig(cfg.Panel)
	if err != nil {
		log.Fatalw("invalid panel config", "err", err)
	}

	rec, err := metrics.New(cfg.Metrics)
	if err != nil {
		log.Warnw("statsd disabled", "addr", cfg.Metrics.Addr, "err", err)
	}
	defer func() { _ = metrics.Close(rec) }()

	client := panel.NewClient(cfg.Panel.BaseURL, cfg.Panel.Token, &http.Client{Timeout: cfg.Panel.RequestTimeout})
	p := panel.New(pcfg, client, panel.NewTerminal(os.Stdout), log, rec)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	synced := make(chan struct{})
	go func() {
		defer close(synced)
		if err := p.Run(ctx); err != nil {
			log.Errorw("panel_sync_failed", "err", err)
			stop()
		}
	}()

	fmt.Fprintln(os.Stderr, panel.CommandHelp)
	if err := panel.RunCommands(ctx, os.Stdin, p, os.Stderr); err != nil && ctx.Err() == nil {
		log.Errorw("panel_input_failed", "err", err)
	}
	stop()
	<-synced
	p.Close()
}

func panelConfig(c config.PanelConfig) (panel.Config, error) {
	ordering, err := panel.ParseOrdering(c.Ordering)
	if err != nil {
		return panel.Config{}, err
	}
	if c.Slider.Step != 1 {
		fmt.Fprintf(os.Stderr, "panel.slider.step %d ignored; the slider always moves by 1\n", c.Slider.Step)
	}
	return panel.Config{
		Bounds:          panel.NewSliderBounds(c.Slider.Min, c.Slider.Max),
		InitialTarget:   c.Slider.Value,
		HeaterInterval:  c.HeaterInterval,
		WeatherInterval: c.WeatherInterval,
		RequestTimeout:  c.RequestTimeout,
		ShowWeather:     c.ShowWeather,
		LegacySensor:    c.LegacySensor,
		Ordering:        ordering,
	}, nil
}
