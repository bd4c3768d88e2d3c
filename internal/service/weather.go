package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"heaterbuddy/internal/models"
)

// WeatherSettings selects the OpenWeatherMap endpoint and cache lifetime.
type WeatherSettings struct {
	URL    string
	APIKey string
	City   string
	TTL    time.Duration
}

const weatherNotConfigured = "weather not configured"

// ErrWeatherUpstream wraps any failure talking to the weather provider.
var ErrWeatherUpstream = errors.New("weather upstream failed")

// WeatherService proxies current conditions in imperial units and caches
// them for TTL. A stale value is served when a refresh fails.
type WeatherService struct {
	client   *http.Client
	settings WeatherSettings
	now      func() time.Time

	mu        sync.Mutex
	cached    *models.Weather
	expiresAt time.Time
}

func NewWeatherService(client *http.Client, settings WeatherSettings) *WeatherService {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WeatherService{client: client, settings: settings, now: time.Now}
}

func (s *WeatherService) configured() bool {
	return s.settings.URL != "" && s.settings.APIKey != "" && s.settings.City != ""
}

// Current returns the outdoor conditions. Without configuration it returns a
// null temperature and no error.
func (s *WeatherService) Current(ctx context.Context) (models.Weather, error) {
	if !s.configured() {
		return models.Weather{Desc: weatherNotConfigured}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.now().Before(s.expiresAt) {
		return *s.cached, nil
	}

	w, err := s.fetch(ctx)
	if err != nil {
		if s.cached != nil {
			return *s.cached, nil
		}
		return models.Weather{}, err
	}
	s.cached = &w
	s.expiresAt = s.now().Add(s.settings.TTL)
	return w, nil
}

type owmResponse struct {
	Main struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

func (s *WeatherService) fetch(ctx context.Context) (models.Weather, error) {
	q := url.Values{
		"q":     {s.settings.City},
		"units": {"imperial"},
		"appid": {s.settings.APIKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.settings.URL+"?"+q.Encode(), nil)
	if err != nil {
		return models.Weather{}, fmt.Errorf("%w: build request: %v", ErrWeatherUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return models.Weather{}, fmt.Errorf("%w: %v", ErrWeatherUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return models.Weather{}, fmt.Errorf("%w: read body: %v", ErrWeatherUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		return models.Weather{}, fmt.Errorf("%w: status %d", ErrWeatherUpstream, resp.StatusCode)
	}

	var raw owmResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.Weather{}, fmt.Errorf("%w: decode: %v", ErrWeatherUpstream, err)
	}
	w := models.Weather{Temp: raw.Main.Temp}
	if len(raw.Weather) > 0 {
		w.Desc = raw.Weather[0].Description
	}
	return w, nil
}
