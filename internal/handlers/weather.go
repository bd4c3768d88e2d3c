package handlers

import (
	"net/http"

	"heaterbuddy/internal/models"

	"github.com/gin-gonic/gin"
)

const weatherUnavailable = "weather unavailable"

// @Summary      Outdoor weather
// @Description  Imperial units. temp is null when no reading is available.
// @Tags         weather
// @Produce      json
// @Success      200  {object}  models.Weather
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  models.Weather
// @Router       /api/weather [get]
// @Security     BearerAuth
func (h *Handler) getWeather(c *gin.Context) {
	w, err := h.services.Weather.Current(c.Request.Context())
	if err != nil {
		if h.log != nil {
			h.log.Warnw("weather_fetch_failed", "err", err)
		}
		c.JSON(http.StatusBadGateway, models.Weather{Desc: weatherUnavailable})
		return
	}
	c.JSON(http.StatusOK, w)
}
