// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prodcat/catalogo-backend/internal/config"
	"github.com/prodcat/catalogo-backend/internal/handlers"
	"github.com/prodcat/catalogo-backend/internal/middleware"
	"github.com/prodcat/catalogo-backend/internal/services"
	"github.com/prodcat/catalogo-backend/internal/store"
	"github.com/prodcat/catalogo-backend/internal/utils"
)

func Initialize(db *store.Store, users *store.UserStore, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	authService := services.NewAuthService(users, cfg)
	productService := services.NewProductService(db, storageService)
	brandService := services.NewBrandService(db, storageService)
	settingsService := services.NewSettingsService(db)
	excelService := services.NewExcelService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, storageService, cfg)
	brandHandler := handlers.NewBrandHandler(brandService, storageService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	excelHandler := handlers.NewExcelHandler(excelService, cfg)
	storefrontHandler := handlers.NewStorefrontHandler(productService, brandService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	api := r.Group("/api")
	{
		// Authentication routes
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/perfil", middleware.AuthRequired(), authHandler.GetProfile)
			auth.PUT("/cambiar-password", middleware.AuthRequired(), authHandler.ChangePassword)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
		}

		// Public storefront routes
		storefront := api.Group("/store")
		{
			storefront.GET("/productos", storefrontHandler.GetProducts)
			storefront.GET("/marcas", storefrontHandler.GetBrands)
		}

		// Everything below is the authenticated admin panel
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			configuracion := admin.Group("/configuracion")
			{
				configuracion.GET("", settingsHandler.GetSettings)
				configuracion.PUT("", settingsHandler.UpdateSettings)
			}

			productos := admin.Group("/productos")
			{
				productos.GET("", productHandler.GetProducts)
				productos.GET("/:id", productHandler.GetProduct)
				productos.POST("", middleware.UploadRateLimit(), productHandler.CreateProduct)
				productos.PUT("/:id", middleware.UploadRateLimit(), productHandler.UpdateProduct)
				productos.DELETE("/:id", productHandler.DeleteProduct)
				productos.POST("/:id/imagenes", middleware.UploadRateLimit(), productHandler.AddImages)
				productos.PUT("/:id/imagenes", productHandler.ReorderImages)
				productos.DELETE("/:id/imagenes", productHandler.RemoveImage)
			}

			marcas := admin.Group("/marcas")
			{
				marcas.GET("", brandHandler.GetBrands)
				marcas.GET("/:id", brandHandler.GetBrand)
				marcas.POST("", middleware.UploadRateLimit(), brandHandler.CreateBrand)
				marcas.PUT("/:id", middleware.UploadRateLimit(), brandHandler.UpdateBrand)
				marcas.DELETE("/:id", brandHandler.DeleteBrand)
			}

			excel := admin.Group("/excel")
			{
				excel.GET("/exportar", excelHandler.Export)
				excel.POST("/importar", middleware.UploadRateLimit(), excelHandler.Import)
			}
		}
	}

	// Uploaded images are served straight from disk
	r.Static("/uploads", cfg.Storage.UploadDir)

	return r, nil
}
