package panel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"heaterbuddy/internal/models"
)

const (
	pathHeaterTemp  = "/api/heater/temp"
	pathTemperature = "/api/temperature"
	pathSetTarget   = "/api/heater/set"
	pathPowerOn     = "/api/heater/on"
	pathPowerOff    = "/api/heater/off"
	pathWeather     = "/api/weather"

	maxBodyBytes = 1 << 16
)

// ErrNullField is returned when a required payload field is null or absent.
var ErrNullField = errors.New("null field in response")

// StatusError is a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Body)
}

// Client calls the heater backend over JSON/HTTP.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a client for baseURL. token, when set, is sent as a
// Bearer credential. A nil hc gets a client with a 10 second timeout.
func NewClient(baseURL, token string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), token: token, http: hc}
}

// heaterPayload decodes with pointers so null fields can be told apart.
type heaterPayload struct {
	Current *float64 `json:"current"`
	Target  *int     `json:"target"`
	IsOn    *bool    `json:"is_on"`
}

// HeaterState reads current, target and power in one call.
func (c *Client) HeaterState(ctx context.Context) (HeaterState, error) {
	var p heaterPayload
	if _, err := c.request(ctx, http.MethodGet, pathHeaterTemp, nil, &p); err != nil {
		return HeaterState{}, err
	}
	if p.Current == nil || p.Target == nil || p.IsOn == nil {
		return HeaterState{}, fmt.Errorf("%s: %w", pathHeaterTemp, ErrNullField)
	}
	return HeaterState{Current: *p.Current, Target: *p.Target, IsOn: *p.IsOn}, nil
}

// Temperature reads the sensor-only endpoint. It returns nil when the
// backend has no reading (204 or a null temperature).
func (c *Client) Temperature(ctx context.Context) (*float64, error) {
	var r models.TemperatureReading
	code, err := c.request(ctx, http.MethodGet, pathTemperature, nil, &r)
	if err != nil {
		return nil, err
	}
	if code == http.StatusNoContent {
		return nil, nil
	}
	return r.Temperature, nil
}

// Weather reads outdoor conditions. Temp may be nil.
func (c *Client) Weather(ctx context.Context) (models.Weather, error) {
	var w models.Weather
	_, err := c.request(ctx, http.MethodGet, pathWeather, nil, &w)
	return w, err
}

// SetTarget writes a new setpoint using the canonical "target" field.
func (c *Client) SetTarget(ctx context.Context, target int) error {
	_, err := c.request(ctx, http.MethodPost, pathSetTarget, models.SetTargetRequest{Target: target}, nil)
	return err
}

// SetPower turns the heater on or off.
func (c *Client) SetPower(ctx context.Context, on bool) error {
	path := pathPowerOff
	if on {
		path = pathPowerOn
	}
	_, err := c.request(ctx, http.MethodPost, path, nil, nil)
	return err
}

// request sends payload as JSON (when non-nil) and decodes a 2xx body into
// dest (when non-nil and the body is not empty). It returns the status code.
func (c *Client) request(ctx context.Context, method, path string, payload, dest any) (int, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &StatusError{Code: resp.StatusCode, Body: truncate(data, 100)}
	}
	if dest != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, dest); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return resp.StatusCode, nil
}

func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
