package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/controllers"
	"github.com/yeremiapane/reservation-app/middlewares"
	"github.com/yeremiapane/reservation-app/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Satu registry lock dibagi availability + booking supaya cek dan
	// commit reservasi serialized per restoran
	locks := services.NewRestaurantLocks()
	availabilitySvc := services.NewAvailabilityService(db, locks)
	bookingSvc := services.NewBookingService(db, availabilitySvc, locks)
	paymentSvc := services.NewPaymentService()

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	restaurantCtrl := controllers.NewRestaurantController(db)
	tableCtrl := controllers.NewTableController(db, bookingSvc)
	availabilityCtrl := controllers.NewAvailabilityController(availabilitySvc)
	reservationCtrl := controllers.NewReservationController(db, bookingSvc, paymentSvc)
	blockCtrl := controllers.NewBlockController(availabilitySvc)
	waitlistCtrl := controllers.NewWaitlistController(availabilitySvc)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Browsing restoran dan ketersediaan (tanpa login)
	r.GET("/restaurants", restaurantCtrl.GetAllRestaurants)
	r.GET("/restaurants/:restaurant_id", restaurantCtrl.GetRestaurantByID)
	r.GET("/restaurants/:restaurant_id/tables", tableCtrl.GetTablesByRestaurant)
	r.GET("/restaurants/:restaurant_id/availability", availabilityCtrl.GetCalendar)
	r.GET("/restaurants/:restaurant_id/availability/slot", availabilityCtrl.CheckSlot)
	r.GET("/restaurants/:restaurant_id/availability/best-table", availabilityCtrl.FindBestTable)

	// Booking customer (tanpa login, identitas dari form)
	r.POST("/restaurants/:restaurant_id/reservations", reservationCtrl.CreateReservation)
	r.GET("/reservations/code/:code", reservationCtrl.GetReservationByCode)
	r.GET("/reservations/code/:code/confirmation", reservationCtrl.DownloadConfirmation)
	r.POST("/reservations/:reservation_id/pay", reservationCtrl.PayReservation)

	// Waitlist join terbuka untuk customer
	r.POST("/restaurants/:restaurant_id/waitlist", waitlistCtrl.JoinWaitlist)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.EnhancedAuthMiddleware())

	auth.POST("/logout", userCtrl.Logout)

	// RESTAURANTS (manager/admin)
	manage := auth.Group("/")
	manage.Use(middlewares.RequireRole("manager"))
	{
		manage.POST("/restaurants", restaurantCtrl.CreateRestaurant)
		manage.POST("/restaurants/:restaurant_id/tables", tableCtrl.CreateTable)
	}

	// TABLES (staff/manager/admin)
	auth.GET("/restaurants/:restaurant_id/tables", tableCtrl.FindTablesByStatus)
	auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	auth.PATCH("/tables/:table_id", tableCtrl.UpdateTableStatus)

	// RESERVATIONS (staff/manager/admin)
	auth.GET("/restaurants/:restaurant_id/reservations", reservationCtrl.GetReservationsByRestaurant)
	auth.GET("/reservations/:reservation_id", reservationCtrl.GetReservationByID)
	auth.GET("/customers/:customer_id/reservations", reservationCtrl.GetReservationsByCustomer)
	auth.PATCH("/reservations/:reservation_id", reservationCtrl.UpdateReservationStatus)

	// BLOCKED SLOTS (staff/manager/admin)
	auth.POST("/restaurants/:restaurant_id/blocks", blockCtrl.CreateBlock)
	auth.GET("/restaurants/:restaurant_id/blocks", blockCtrl.GetBlocks)
	auth.DELETE("/blocks/:block_id", blockCtrl.DeleteBlock)

	// WAITLIST (staff/manager/admin)
	auth.GET("/restaurants/:restaurant_id/waitlist", waitlistCtrl.GetWaitlist)
	auth.POST("/waitlist/:entry_id/notify", waitlistCtrl.NotifyEntry)

	// WebSocket dashboard dengan middleware khusus
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/dashboard", controllers.DashboardHandler)
	}

	return r
}
