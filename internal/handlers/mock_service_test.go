package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"heaterbuddy/internal/models"
	"heaterbuddy/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockHeater struct {
	setErr     error
	onErr      error
	offErr     error
	readingErr error
	targets    []int
	readings   []float64
	onCalls    int
	offCalls   int
}

func (m *mockHeater) SetTarget(ctx context.Context, targetF int) error {
	m.targets = append(m.targets, targetF)
	return m.setErr
}
func (m *mockHeater) PowerOn(ctx context.Context) error {
	m.onCalls++
	return m.onErr
}
func (m *mockHeater) PowerOff(ctx context.Context) error {
	m.offCalls++
	return m.offErr
}
func (m *mockHeater) RecordReading(ctx context.Context, currentF float64) error {
	m.readings = append(m.readings, currentF)
	return m.readingErr
}

type mockMonitoring struct {
	mu        sync.Mutex
	state     models.HeaterState
	err       error
	latest    *float64
	latestErr error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.HeaterState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.err
}

func (m *mockMonitoring) LatestTemperature(ctx context.Context) (*float64, error) {
	return m.latest, m.latestErr
}

func (m *mockMonitoring) setState(st models.HeaterState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = st
}

type mockEventLog struct {
	resp     []models.HeaterEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.HeaterEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockWeather struct {
	resp models.Weather
	err  error
}

func (m *mockWeather) Current(ctx context.Context) (models.Weather, error) {
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	return newTestRouterWith(s, Options{RequireAuth: true})
}

func newTestRouterWith(s *service.Service, opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil, opts).InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func floatPtr(v float64) *float64 { return &v }
