package utils

// Application constants
const (
	// Application name
	AppName = "BookingPay"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// Default database host
	DefaultDBHost = "localhost"

	// Default database port
	DefaultDBPort = "5432"

	// Default database name
	DefaultDBName = "bookingpay"

	// Default database user
	DefaultDBUser = "postgres"

	// Default database password
	DefaultDBPassword = "postgres"

	// JWT token expiration (24 hours)
	JWTExpiration = "24h"

	// Minimum password length
	MinPasswordLength = 8

	// Maximum password length
	MaxPasswordLength = 32

	// Largest accepted charge amount in whole currency units
	MaxChargeAmount = 1_000_000_000
)

// Error messages
const (
	// Authentication errors
	ErrInvalidCredentials = "Invalid email or password"
	ErrUserBlocked        = "Your account has been blocked"
	ErrInvalidToken       = "Invalid or expired token"
	ErrUnauthorized       = "Unauthorized access"

	// Validation errors
	ErrInvalidEmail   = "Invalid email format"
	ErrInvalidOrderID = "order_id is required"
	ErrInvalidAmount  = "amount must be a positive number"

	// Payment errors
	ErrBookingNotFound  = "Booking not found"
	ErrGatewayConfig    = "Server configuration error"
	ErrGatewayCharge    = "Failed to create gateway charge"
	ErrQRStringMissing  = "Failed to retrieve QR string from gateway"
	ErrInvalidSignature = "Invalid notification signature"
	ErrMalformedPayload = "Malformed notification payload"
	ErrStoreUnavailable = "Failed to update booking record"

	// Server errors
	ErrInternalServer = "Internal server error"
)

// Success messages
const (
	MsgLoginSuccess    = "Login successful"
	MsgRegisterSuccess = "Registration successful"
	MsgChargeCreated   = "Payment initiated successfully"
	MsgBookingCreated  = "Booking created successfully"
)
