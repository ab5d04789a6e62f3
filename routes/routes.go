package routes

import (
	"github.com/Prasetyo-11/BookingPay/controllers"
	"github.com/Prasetyo-11/BookingPay/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(paymentController *controllers.PaymentController, bookingController *controllers.BookingController) *gin.Engine {
	router := gin.Default()

	// API version group
	api := router.Group("/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
		}

		payments := api.Group("/payments")
		{
			// The gateway posts notifications here; it does not carry a
			// Bearer token, integrity is checked by signature instead.
			payments.POST("/notification", paymentController.HandleNotification)

			payments.POST("/charge", middleware.AuthMiddleware(), paymentController.CreateCharge)
		}

		bookings := api.Group("/bookings")
		bookings.Use(middleware.AuthMiddleware())
		{
			bookings.POST("", bookingController.CreateBooking)
			bookings.GET("", bookingController.ListBookings)
			bookings.GET("/:order_id", bookingController.GetBooking)
			bookings.GET("/:order_id/receipt", bookingController.DownloadReceipt)
		}
	}

	return router
}
