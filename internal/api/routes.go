package api

import (
	"alcyxob/tracker-app/internal/service"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Services bundles the service dependencies of the HTTP API.
type Services struct {
	Auth     service.AuthService
	Catalog  service.CatalogService
	Activity service.ActivityService
	Health   service.HealthService
	Stats    service.StatsService
	Export   service.ExportService
}

// CORSMiddleware allows the SPA origins to call the API with bearer tokens.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func SetupRoutes(router *gin.Engine, jwtSecret string, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	adminHandler := NewAdminHandler(svc.Auth)
	bookHandler := NewBookHandler(svc.Catalog)
	recordHandler := NewRecordHandler(svc.Activity)
	healthHandler := NewHealthHandler(svc.Health)
	statsHandler := NewStatsHandler(svc.Stats)
	exportHandler := NewExportHandler(svc.Export)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(jwtSecret, svc.Auth))
	{
		protected.GET("/me", authHandler.Me)

		// --- Catalog ---
		books := protected.Group("/books")
		{
			books.GET("", bookHandler.ListBooks)
			books.POST("", bookHandler.CreateBook)
			books.GET("/:bookId", bookHandler.GetBook)
			books.PUT("/:bookId", bookHandler.UpdateBook)
			books.DELETE("/:bookId", bookHandler.DeleteBook)
		}

		// --- Activity ledger ---
		records := protected.Group("/records")
		{
			records.GET("", recordHandler.ListRecords)
			records.GET("/:date", recordHandler.GetRecord)
			records.PUT("/:date", recordHandler.SaveRecord)
		}
		completion := protected.Group("/completion")
		{
			completion.GET("/chapters", recordHandler.CompletedChapters)
			completion.GET("/chapters/:chapterId", recordHandler.ChapterCompletion)
		}
		drafts := protected.Group("/drafts")
		{
			drafts.GET("/:date", recordHandler.GetDraft)
			drafts.PUT("/:date", recordHandler.SaveDraft)
			drafts.DELETE("/:date", recordHandler.ClearDraft)
		}

		// --- Body metrics ---
		health := protected.Group("/health")
		{
			health.GET("", healthHandler.ListEntries)
			health.GET("/latest", healthHandler.LatestEntry)
			health.GET("/metrics", healthHandler.BodyMetrics)
			health.PUT("/:date", healthHandler.SaveEntry)
			health.DELETE("/:entryId", healthHandler.DeleteEntry)
		}

		// --- Dashboard ---
		stats := protected.Group("/stats")
		{
			stats.GET("/monthly", statsHandler.MonthlyStats)
			stats.GET("/chart", statsHandler.ChartData)
			stats.GET("/distribution", statsHandler.TrainingDistribution)
			stats.GET("/books", statsHandler.BookProgress)
		}

		exports := protected.Group("/exports")
		{
			exports.GET("", exportHandler.ListExports)
			exports.POST("", exportHandler.CreateExport)
			exports.GET("/:exportId/url", exportHandler.GetExportURL)
			exports.DELETE("/:exportId", exportHandler.DeleteExport)
		}

		// --- Approval workflow ---
		admin := protected.Group("/admin")
		admin.Use(AdminMiddleware())
		{
			admin.GET("/users/pending", adminHandler.ListPendingUsers)
			admin.POST("/users/:userId/approve", adminHandler.ApproveUser)
			admin.POST("/users/:userId/reject", adminHandler.RejectUser)
		}
	}
}
