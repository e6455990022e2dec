package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ojmarte/construction-api/internal/server/handlers"
	"github.com/ojmarte/construction-api/internal/server/metrics"
)

const requestIDHeader = "X-Request-ID"

// Options carries the optional pieces of the router.
type Options struct {
	Health  *handlers.HealthHandler
	Metrics *metrics.HTTPMetrics
}

// New wires the Gin engine with required routes and middlewares.
func New(api *handlers.API, opts Options, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(securityHeadersMiddleware())
	r.Use(zapLoggerMiddleware(logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	health := opts.Health
	if health == nil {
		health = handlers.NewHealthHandler(nil)
	}
	r.GET("/healthz", health.Live)
	r.GET("/readyz", health.Ready)
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the API!")
	})

	registerRoutes(r.Group("/api"), api)

	if logger != nil {
		logger.Info("router initialized", zap.Int("routes", len(r.Routes())))
	}

	return r
}

func registerRoutes(g *gin.RouterGroup, api *handlers.API) {
	equipment := g.Group("/equipment")
	equipment.GET("", api.Equipment.List)
	equipment.POST("", api.Equipment.Create)
	equipment.GET("/:id", api.Equipment.Get)
	equipment.PUT("/:id", api.Equipment.Update)
	equipment.DELETE("/:id", api.Equipment.Delete)
	equipment.POST("/:id/price", api.Equipment.AppendEntry)
	equipment.GET("/:id/equipment-performance", api.EquipmentPerformance.ListByReference("id"))

	performance := g.Group("/equipment-performance")
	performance.GET("", api.EquipmentPerformance.List)
	performance.POST("", api.EquipmentPerformance.Create)
	performance.GET("/:id", api.EquipmentPerformance.Get)
	performance.PUT("/:id", api.EquipmentPerformance.Update)
	performance.DELETE("/:id", api.EquipmentPerformance.Delete)

	labour := g.Group("/labour")
	labour.GET("", api.LabourProfessions.List)
	labour.POST("", api.LabourProfessions.Create)
	labour.GET("/:id", api.LabourProfessions.Get)
	labour.PUT("/:id", api.LabourProfessions.Update)
	labour.DELETE("/:id", api.LabourProfessions.Delete)
	labour.POST("/:id/rate", api.LabourProfessions.AppendEntry)

	materials := g.Group("/materials")
	materials.GET("", api.Materials.List)
	materials.POST("", api.Materials.Create)
	materials.GET("/:id", api.Materials.Get)
	materials.PUT("/:id", api.Materials.Update)
	materials.DELETE("/:id", api.Materials.Delete)
	materials.POST("/:id/price", api.Materials.AppendEntry)

	yields := g.Group("/material-yields")
	yields.GET("", api.MaterialYields.List)
	yields.POST("", api.MaterialYields.Create)
	yields.GET("/by-material/:materialId", api.MaterialYields.ListByReference("materialId"))
	yields.GET("/:id", api.MaterialYields.Get)
	yields.PUT("/:id", api.MaterialYields.Update)
	yields.DELETE("/:id", api.MaterialYields.Delete)

	tools := g.Group("/tools")
	tools.GET("", api.Tools.List)
	tools.POST("", api.Tools.Create)
	tools.GET("/:id", api.Tools.Get)
	tools.PUT("/:id", api.Tools.Update)
	tools.DELETE("/:id", api.Tools.Delete)
	tools.POST("/:id/price", api.Tools.AppendEntry)

	lifespans := g.Group("/tool/lifespan")
	lifespans.GET("", api.ToolLifespans.List)
	lifespans.POST("", api.ToolLifespans.Create)
	lifespans.GET("/:toolId", api.ToolLifespans.Get)
	lifespans.PUT("/:toolId", api.ToolLifespans.Update)
	lifespans.DELETE("/:toolId", api.ToolLifespans.Delete)

	g.POST("/job", api.Jobs.Create)
	g.GET("/jobs", api.Jobs.List)
	g.GET("/job/:jobId", api.Jobs.Get)
	g.PUT("/job/:jobId", api.Jobs.Update)
	g.DELETE("/job/:jobId", api.Jobs.Delete)

	worker := g.Group("/worker")
	worker.GET("", api.WorkerProfessions.List)
	worker.POST("", api.WorkerProfessions.Create)
	worker.GET("/:id", api.WorkerProfessions.Get)
	worker.PUT("/:id", api.WorkerProfessions.Update)
	worker.DELETE("/:id", api.WorkerProfessions.Delete)
	worker.POST("/:id/rate", api.WorkerProfessions.AppendEntry)
}

// WithCORS wraps the engine with CORS handling for the given origins.
func WithCORS(h http.Handler, allowedOrigins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	})(h)
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// securityHeaders are the response headers helmet sets by default, minus the
// content security policy which only matters for HTML responses.
var securityHeaders = map[string]string{
	"Cross-Origin-Opener-Policy":        "same-origin",
	"Cross-Origin-Resource-Policy":      "same-origin",
	"Origin-Agent-Cluster":              "?1",
	"Referrer-Policy":                   "no-referrer",
	"Strict-Transport-Security":         "max-age=15552000; includeSubDomains",
	"X-Content-Type-Options":            "nosniff",
	"X-DNS-Prefetch-Control":            "off",
	"X-Download-Options":                "noopen",
	"X-Frame-Options":                   "SAMEORIGIN",
	"X-Permitted-Cross-Domain-Policies": "none",
	"X-XSS-Protection":                  "0",
}

func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		for k, v := range securityHeaders {
			h.Set(k, v)
		}
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString("request_id")))
	}
}
