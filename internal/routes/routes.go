package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/servihub/marketplace-api/internal/audit"
	"github.com/servihub/marketplace-api/internal/cache"
	"github.com/servihub/marketplace-api/internal/config"
	"github.com/servihub/marketplace-api/internal/handlers"
	infraRepo "github.com/servihub/marketplace-api/internal/infra/repository"
	"github.com/servihub/marketplace-api/internal/media"
	"github.com/servihub/marketplace-api/internal/middleware"
	ucBooking "github.com/servihub/marketplace-api/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	cacheClient *cache.Cache,
	store media.Store,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES (BOOKINGS)
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
	)

	respondToBookingUC := ucBooking.NewRespondToBooking(
		bookingRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	vendorHandler := handlers.NewVendorHandler(db, cacheClient)

	serviceHandler := handlers.NewServiceHandler(db, cfg, cacheClient, bookingRepo)
	serviceImageHandler := handlers.NewServiceImageHandler(db, store)

	bookingHandler := handlers.NewBookingHandler(
		db,
		cacheClient,
		auditDispatcher,
		createBookingUC,
		respondToBookingUC,
	)

	reviewHandler := handlers.NewReviewHandler(db, cfg, auditDispatcher)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api/v1")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/vendors", vendorHandler.Search)
		api.GET("/service/search", serviceHandler.Search)
		api.GET("/service/:id", serviceHandler.Details)
		api.GET("/service/:id/images", serviceImageHandler.List)
		api.GET("/reviews/vendor/:id", reviewHandler.ListForVendor)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/user/me", userHandler.GetMe)
			secured.PATCH("/user/profile-pic", userHandler.UpdateProfilePic)

			secured.GET("/vendors/dashboard", vendorHandler.Dashboard)

			// ------------------------------
			// CATALOG
			// ------------------------------
			secured.POST("/service/create", serviceHandler.Create)
			secured.GET("/service/my-services", serviceHandler.MyServices)
			secured.PATCH("/service/:id", serviceHandler.Update)

			secured.POST("/service/:id/images", serviceImageHandler.Add)
			secured.POST("/service/:id/images/upload", serviceImageHandler.Upload)
			secured.DELETE("/service/:id/images", serviceImageHandler.Remove)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/booking/create", bookingHandler.Create)
			secured.GET("/booking/my-bookings", bookingHandler.MyBookings)
			secured.GET("/booking/vendor-bookings", bookingHandler.VendorBookings)
			secured.PUT("/booking/:id/respond", bookingHandler.Respond)

			// ------------------------------
			// REVIEWS
			// ------------------------------
			secured.POST("/reviews", reviewHandler.Create)
		}
	}
}
