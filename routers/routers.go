package routers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"sweetshop/gateway"
	"sweetshop/gdrive"
	"sweetshop/handlers"
	"sweetshop/mailer"
	"sweetshop/middleware"
	"sweetshop/sheetdb"
)

type Deps struct {
	Store      sheetdb.Store
	Redis      *redis.Client
	Gateway    *gateway.Client
	Mailer     *mailer.Mailer
	Uploader   gdrive.Uploader
	JWTSecret  string
	UploadsDir string
}

func SetupRouters(deps Deps) *gin.Engine {
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Authorization")
		c.Next()
	})
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil
	}

	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Legacy product images uploaded before the move to Drive.
	if deps.UploadsDir != "" {
		router.Static("/uploads", deps.UploadsDir)
	}

	// Identity is attached when present; individual groups enforce it.
	router.Use(middleware.AuthMiddleware(deps.JWTSecret))
	{
		// Catalog
		router.GET("/api/v1/products", func(c *gin.Context) {
			handlers.GetProductListHandler(c, deps.Store, deps.Redis)
		})

		// Two-phase signup
		router.POST("/api/v1/auth/send-verification", func(c *gin.Context) {
			handlers.SendVerificationHandler(c, deps.Store, deps.Mailer)
		})
		router.POST("/api/v1/auth/signup", func(c *gin.Context) {
			handlers.SignupHandler(c, deps.Store)
		})
		router.POST("/api/v1/auth/login", func(c *gin.Context) {
			handlers.LoginHandler(c, deps.Store, deps.JWTSecret)
		})

		// Two-phase password reset
		router.POST("/api/v1/auth/reset-password", func(c *gin.Context) {
			handlers.RequestPasswordResetHandler(c, deps.Store, deps.Mailer)
		})
		router.POST("/api/v1/auth/reset-password/confirm", func(c *gin.Context) {
			handlers.ConfirmPasswordResetHandler(c, deps.Store)
		})

		// Payment: create intent, then verify the callback
		router.POST("/api/v1/payment", func(c *gin.Context) {
			handlers.CreatePaymentHandler(c, deps.Gateway)
		})
		router.PUT("/api/v1/payment", func(c *gin.Context) {
			handlers.VerifyPaymentHandler(c, deps.Store, deps.Gateway, deps.Mailer)
		})

		loginRequired := router.Group("/api/v1/user")
		loginRequired.Use(middleware.CheckLoginMiddleware())
		{
			loginRequired.GET("/orders", func(c *gin.Context) {
				handlers.GetOrderListHandler(c, deps.Store)
			})
			loginRequired.GET("/role", func(c *gin.Context) {
				handlers.GetRoleHandler(c, deps.Store)
			})
		}

		adminRequired := router.Group("/api/v1/admin")
		adminRequired.Use(middleware.CheckLoginMiddleware(), middleware.CheckAdminPermissionMiddleware())
		{
			adminRequired.GET("/users", func(c *gin.Context) {
				handlers.GetUserListHandler(c, deps.Store)
			})
			adminRequired.GET("/orders", func(c *gin.Context) {
				handlers.GetAllOrdersHandler(c, deps.Store)
			})
			adminRequired.POST("/orders/status", func(c *gin.Context) {
				handlers.UpdateOrderStatusHandler(c, deps.Store)
			})
			adminRequired.POST("/invoice/email", func(c *gin.Context) {
				handlers.ResendInvoiceHandler(c, deps.Store, deps.Mailer)
			})
			adminRequired.GET("/stats", func(c *gin.Context) {
				handlers.GetStatsHandler(c, deps.Store, deps.Redis)
			})
			adminRequired.GET("/settings", func(c *gin.Context) {
				handlers.GetSettingsHandler(c, deps.Store)
			})
			adminRequired.POST("/settings", func(c *gin.Context) {
				handlers.SaveSettingsHandler(c, deps.Store)
			})
			adminRequired.POST("/products", func(c *gin.Context) {
				handlers.CreateProductHandler(c, deps.Store, deps.Uploader, deps.Redis)
			})
			adminRequired.PUT("/products/:productID", func(c *gin.Context) {
				handlers.UpdateProductHandler(c, deps.Store, deps.Uploader, deps.Redis)
			})
			adminRequired.DELETE("/products/:productID", func(c *gin.Context) {
				handlers.DeleteProductHandler(c, deps.Store, deps.Redis)
			})
		}
	}

	return router
}
