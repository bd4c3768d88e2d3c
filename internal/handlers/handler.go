package handlers

import (
	_ "heaterbuddy/docs"
	"heaterbuddy/internal/logger"
	"heaterbuddy/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options tunes the HTTP surface.
type Options struct {
	// RequireAuth puts the /api group and /ws behind a Bearer token.
	RequireAuth bool
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	if h.opts.RequireAuth {
		router.GET("/ws", h.wsAuthMiddleware, h.wsConnect)
	} else {
		router.GET("/ws", h.wsConnect)
	}

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	if h.opts.RequireAuth {
		api.Use(h.userIdMiddleware)
	}
	{
		api.GET("/temperature", h.getTemperature)
		api.GET("/weather", h.getWeather)
		h.registerHeaterRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerHeaterRoutes(api *gin.RouterGroup) {
	heater := api.Group("/heater")
	{
		heater.GET("/temp", h.getHeaterTemp)
		// Body: {"target":72}; {"value":72} is accepted too.
		heater.POST("/set", h.setTarget)
		heater.POST("/on", h.powerOn)
		heater.POST("/off", h.powerOff)
		// Body: {"current":68.4}; pushed by an external sensor.
		heater.POST("/reading", h.recordReading)
		heater.GET("/state", h.getState)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	api.GET("/logs", h.getLogs)
}
