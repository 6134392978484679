package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-booking/config"
	"hotel-booking/controllers"
	"hotel-booking/middleware"
	"hotel-booking/models"
	"hotel-booking/services"
)

// SetupRouter wires the controllers onto the API surface.
func SetupRouter(
	cfg *config.Config,
	auth *services.AuthService,
	users *services.UserService,
	authCtl *controllers.AuthController,
	hotelCtl *controllers.HotelController,
	roomCtl *controllers.RoomController,
	bookingCtl *controllers.BookingController,
) *gin.Engine {
	if cfg.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	allowCredentials := true
	for _, origin := range cfg.CORSOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(auth, users)
	requireAdmin := middleware.RequireRole(models.RoleAdmin, models.RoleDeveloper)

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authCtl.Register)
			authRoutes.POST("/login", authCtl.Login)
			authRoutes.POST("/logout", authCtl.Logout)
			authRoutes.GET("/me", requireAuth, authCtl.Me)
		}

		hotels := api.Group("/hotels")
		{
			hotels.GET("", hotelCtl.SearchHotels)
			hotels.GET("/:id", hotelCtl.GetHotelByID)
			hotels.GET("/:id/rooms", roomCtl.GetRoomsByHotel)
			hotels.POST("", requireAuth, requireAdmin, hotelCtl.CreateHotel)
			hotels.PUT("/:id", requireAuth, requireAdmin, hotelCtl.UpdateHotel)
			hotels.DELETE("/:id", requireAuth, requireAdmin, hotelCtl.DeleteHotel)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("/:id", roomCtl.GetRoomByID)
			rooms.GET("/:id/availability", bookingCtl.GetFreeUnits)
			rooms.POST("", requireAuth, requireAdmin, roomCtl.CreateRoom)
			rooms.PUT("/:id", requireAuth, requireAdmin, roomCtl.UpdateRoom)
			rooms.DELETE("/:id", requireAuth, requireAdmin, roomCtl.DeleteRoom)
		}

		bookings := api.Group("/bookings", requireAuth)
		{
			bookings.GET("", bookingCtl.GetBookings)
			bookings.POST("", bookingCtl.CreateBooking)
			bookings.DELETE("/:id", bookingCtl.DeleteBooking)
		}
	}

	return r
}
