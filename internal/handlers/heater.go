package handlers

import (
	"errors"
	"math"
	"net/http"

	"heaterbuddy/internal/models"
	"heaterbuddy/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK        = "ok"
	statusTargetSet = "target_set"
	statusOn        = "on"
	statusOff       = "off"
	statusReading   = "reading_recorded"

	errSetTarget       = "failed to set target"
	errPowerOn         = "failed to turn heater on"
	errPowerOff        = "failed to turn heater off"
	errGetState        = "failed to load state"
	errGetTemperature  = "failed to read temperature"
	errInvalidBodyPref = "invalid body: "
	errMissingTarget   = "invalid body: target is required"
	errMissingCurrent  = "invalid body: current is required"
	errRecordReading   = "failed to record reading"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Respond with a status and include current state if available (best-effort).
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	if st, err := h.services.Monitoring.GetState(c.Request.Context()); err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// setTargetBody accepts the canonical "target" field and the older "value".
type setTargetBody struct {
	Target *int `json:"target"`
	Value  *int `json:"value"`
}

func (b setTargetBody) resolve() (int, bool) {
	switch {
	case b.Target != nil:
		return *b.Target, true
	case b.Value != nil:
		return *b.Value, true
	default:
		return 0, false
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Current, target and power
// @Tags         heater
// @Produce      json
// @Success      200  {object}  models.HeaterReading
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/heater/temp [get]
// @Security     BearerAuth
func (h *Handler) getHeaterTemp(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "heater_get_temp_failed", err)
		return
	}
	c.JSON(http.StatusOK, models.HeaterReading{
		Current: math.Round(st.CurrentF*10) / 10,
		Target:  st.TargetF,
		IsOn:    st.IsOn,
	})
}

// @Summary      Latest sensor reading
// @Description  204 with no body until the sensor has reported once.
// @Tags         heater
// @Produce      json
// @Success      200  {object}  models.TemperatureReading
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/temperature [get]
// @Security     BearerAuth
func (h *Handler) getTemperature(c *gin.Context) {
	v, err := h.services.Monitoring.LatestTemperature(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetTemperature, "temperature_read_failed", err)
		return
	}
	if v == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, models.TemperatureReading{Temperature: v})
}

// @Summary      Set target temperature
// @Tags         heater
// @Accept       json
// @Produce      json
// @Param        body  body      models.SetTargetRequest  true  "Setpoint in °F"
// @Success      200   {object}  map[string]interface{}   "status, target, state"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/heater/set [post]
// @Security     BearerAuth
func (h *Handler) setTarget(c *gin.Context) {
	var body setTargetBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	target, ok := body.resolve()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingTarget})
		return
	}

	if err := h.services.Heater.SetTarget(c.Request.Context(), target); err != nil {
		if errors.Is(err, service.ErrTargetOutOfRange) {
			if h.log != nil {
				h.log.Infow("heater_set_target_rejected", "target", target, "err", err)
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errSetTarget, "heater_set_target_failed", err, "target", target)
		return
	}
	h.respondWithStatusAndState(c, statusTargetSet, gin.H{"target": target})
}

// @Summary      Turn heater on
// @Tags         heater
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/heater/on [post]
// @Security     BearerAuth
func (h *Handler) powerOn(c *gin.Context) {
	if err := h.services.Heater.PowerOn(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errPowerOn, "heater_power_on_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusOn, gin.H{})
}

// @Summary      Turn heater off
// @Tags         heater
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/heater/off [post]
// @Security     BearerAuth
func (h *Handler) powerOff(c *gin.Context) {
	if err := h.services.Heater.PowerOff(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errPowerOff, "heater_power_off_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusOff, gin.H{})
}

// @Summary      Push a sensor reading
// @Description  Stores the current temperature reported by an external sensor.
// @Tags         heater
// @Accept       json
// @Produce      json
// @Param        body  body      models.SensorReading    true  "Reading in °F"
// @Success      200   {object}  map[string]interface{}  "status, current, state"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/heater/reading [post]
// @Security     BearerAuth
func (h *Handler) recordReading(c *gin.Context) {
	var body models.SensorReading
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if body.Current == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingCurrent})
		return
	}

	if err := h.services.Heater.RecordReading(c.Request.Context(), *body.Current); err != nil {
		if errors.Is(err, service.ErrInvalidReading) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errRecordReading, "heater_record_reading_failed", err, "current", *body.Current)
		return
	}
	h.respondWithStatusAndState(c, statusReading, gin.H{"current": *body.Current})
}

// @Summary      Full heater state
// @Tags         heater
// @Produce      json
// @Success      200  {object}  models.HeaterState
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/heater/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "heater_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}
