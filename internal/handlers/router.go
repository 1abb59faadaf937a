package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"classifieds-portal/internal/database"
	"classifieds-portal/internal/storage"
)

// NewRouter wires the full API surface onto a gin engine.
func NewRouter(db *database.GormDB, images *storage.ImageStore, log *zap.SugaredLogger,
	allowedOrigins []string, requestTimeout time.Duration) *gin.Engine {

	r := gin.Default()

	if len(allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
		}))
	}
	r.Use(RequestTimeout(requestTimeout))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	listings := NewListingHandler(db, images, log)
	taxonomy := NewTaxonomyHandler(db, log)

	api := r.Group("/api")
	{
		api.GET("/ads", listings.GetAllAds)
		api.POST("/ads", listings.CreateAd)
		api.GET("/ads/search/:query", listings.SearchAds)
		api.GET("/ads/user/:userId/:role", listings.GetUserAds)
		api.GET("/ads/:id", listings.GetAd)
		api.DELETE("/ads/:id/:userId/:role", listings.DeleteAd)
		api.POST("/ads/:id/update/:userId/:role", listings.UpdateAd)
		api.POST("/ads/:id/image/:userId/:role", listings.AttachImage)

		api.GET("/categories", taxonomy.GetCategories)
		api.POST("/categories", taxonomy.CreateCategory)
		api.PUT("/categories/:id", taxonomy.UpdateCategory)
		api.DELETE("/categories/:id", taxonomy.DeleteCategory)

		api.GET("/types", taxonomy.GetTypes)
		api.POST("/types", taxonomy.CreateType)
		api.PUT("/types/:id", taxonomy.UpdateType)
		api.DELETE("/types/:id", taxonomy.DeleteType)
	}

	return r
}
