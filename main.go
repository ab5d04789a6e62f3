package main

import (
	"log"

	"github.com/Prasetyo-11/BookingPay/config"
	"github.com/Prasetyo-11/BookingPay/controllers"
	"github.com/Prasetyo-11/BookingPay/gateway"
	"github.com/Prasetyo-11/BookingPay/repository"
	"github.com/Prasetyo-11/BookingPay/routes"
	"github.com/Prasetyo-11/BookingPay/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Wire the payment core: gateway client and booking store are
	// constructor-supplied collaborators
	midtransClient := gateway.NewMidtransClient(cfg.MidtransServerKey, cfg.MidtransProduction())
	bookingRepo := repository.NewBookingRepository(config.DB)

	paymentController := controllers.NewPaymentController(midtransClient, bookingRepo, cfg)
	bookingController := controllers.NewBookingController(bookingRepo)

	// Set up router
	router := routes.SetupRouter(paymentController, bookingController)

	// Add middleware
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	port := cfg.Port
	if port == "" {
		port = utils.DefaultPort
	}

	utils.LogInfo("Server starting on port %s", port)
	// Start server
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
