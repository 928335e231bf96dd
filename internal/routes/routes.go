package routes

import (
	"time"

	"corpkit/internal/config"
	"corpkit/internal/controllers"
	"corpkit/internal/metrics"
	"corpkit/internal/store"
	"corpkit/internal/tasks"
	"corpkit/pkg/jsoncodec"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Deps are the services the router hands to its controllers.
type Deps struct {
	Store    store.CompanyStore
	Codecs   *jsoncodec.Registry
	Enqueuer tasks.Enqueuer
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
	Config   *config.Config
}

// SetupRouter initializes all controllers and API routes
func SetupRouter(deps Deps) *gin.Engine {
	companyController := controllers.CompanyController{
		Store:          deps.Store,
		Codecs:         deps.Codecs,
		Enqueuer:       deps.Enqueuer,
		Logger:         deps.Logger,
		DefaultPattern: deps.Config.DatePattern,
	}
	ipController := controllers.IPController{}

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger(deps.Logger), deps.Metrics.Middleware())

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	// Group API routes under /api/v1
	api := router.Group("/api/v1")
	{
		companies := api.Group("/companies")
		{
			companies.GET("", companyController.ListCompanies)
			companies.POST("", companyController.CreateCompany)
			companies.POST("/import", companyController.ImportCompanies)
			companies.GET("/:id", companyController.GetCompany)
			companies.PUT("/:id", companyController.ReplaceCompany)
			companies.PATCH("/:id", companyController.PatchCompany)
			companies.DELETE("/:id", companyController.DeleteCompany)
		}

		ip := api.Group("/ip")
		{
			ip.GET("/normalize", ipController.Normalize)
			ip.GET("/encode", ipController.Encode)
			ip.GET("/decode", ipController.Decode)
		}
	}

	return router
}

const requestIDHeader = "X-Request-ID"

// requestID keeps a caller supplied request id or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("request_id", c.GetString(requestIDHeader)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
