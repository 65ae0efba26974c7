package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/api/handlers"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/db"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/device"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/device/schema"
)

// Router holds the Gin engine and dependencies
type Router struct {
	engine     *gin.Engine
	controller device.Controller
	subscriber device.EventSubscriber
	validator  *schema.Validator
	database   *db.DB
	profileID  int64
}

// NewRouter creates a new API router
func NewRouter(controller device.Controller, subscriber device.EventSubscriber, validator *schema.Validator, database *db.DB, profileID int64) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine:     engine,
		controller: controller,
		subscriber: subscriber,
		validator:  validator,
		database:   database,
		profileID:  profileID,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/swagger/index.html")
	})

	// Health check at root
	healthHandler := handlers.NewHealthHandler(r.controller)
	r.engine.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Health)

		// Connection lifecycle
		connectionHandler := handlers.NewConnectionHandler(r.controller, r.database.Devices(), r.profileID)
		v1.GET("/connection", connectionHandler.GetConnection)
		v1.POST("/connection", connectionHandler.Connect)
		v1.DELETE("/connection", connectionHandler.Disconnect)

		// Lights
		lightsHandler := handlers.NewLightsHandler(r.controller, r.database.Lights(), r.validator, r.profileID)
		lights := v1.Group("/lights")
		{
			lights.GET("", lightsHandler.ListLights)
			lights.POST("/state", lightsHandler.SetAllLights)
			lights.GET("/:id", lightsHandler.GetLight)
			lights.PATCH("/:id", lightsHandler.RenameLight)
			lights.POST("/:id/state", lightsHandler.SetLightState)
		}
		v1.POST("/refresh", lightsHandler.Refresh)

		// Session event stream
		eventsHandler := handlers.NewEventsHandler(r.subscriber)
		v1.GET("/events", eventsHandler.Events)

		// Saved device endpoints
		devicesHandler := handlers.NewDevicesHandler(r.database.Devices(), r.profileID)
		devices := v1.Group("/devices")
		{
			devices.GET("", devicesHandler.ListDevices)
			devices.POST("", devicesHandler.CreateDevice)
			devices.GET("/:id", devicesHandler.GetDevice)
			devices.DELETE("/:id", devicesHandler.DeleteDevice)
		}
	}
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
