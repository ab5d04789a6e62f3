package controllers

import (
	"math"

	"github.com/Prasetyo-11/BookingPay/models"
	"github.com/Prasetyo-11/BookingPay/repository"
	"github.com/Prasetyo-11/BookingPay/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookingController exposes booking creation and status reads. The payment
// status itself is only ever advanced by the notification flow.
type BookingController struct {
	Bookings repository.BookingRepository
}

// NewBookingController wires a BookingController.
func NewBookingController(bookings repository.BookingRepository) *BookingController {
	return &BookingController{Bookings: bookings}
}

// POST /v1/bookings
func (h *BookingController) CreateBooking(c *gin.Context) {
	utils.LogInfo("CreateBooking called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		Amount float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid booking request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. amount is required", err.Error())
		return
	}
	if !utils.ValidateAmount(req.Amount) {
		utils.LogError("Invalid amount %v in booking request for user ID: %d", req.Amount, user.ID)
		utils.BadRequest(c, utils.ErrInvalidAmount, nil)
		return
	}

	booking := &models.Booking{
		OrderID: "BK-" + uuid.New().String(),
		UserID:  user.ID,
		Amount:  int64(math.Round(req.Amount)),
		Status:  models.BookingStatusPending,
	}
	if err := h.Bookings.Create(booking); err != nil {
		utils.LogError("Failed to create booking for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create booking", err.Error())
		return
	}
	utils.LogInfo("Created booking %s for user ID: %d", booking.OrderID, user.ID)

	utils.Created(c, utils.MsgBookingCreated, gin.H{
		"order_id": booking.OrderID,
		"amount":   booking.Amount,
		"status":   booking.Status,
	})
}

// GET /v1/bookings/:order_id
func (h *BookingController) GetBooking(c *gin.Context) {
	utils.LogInfo("GetBooking called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	orderID := c.Param("order_id")
	booking, err := h.Bookings.GetByOrderID(orderID)
	if err != nil || booking.UserID != user.ID {
		utils.LogError("Booking not found for order ID: %s, user ID: %d", orderID, user.ID)
		utils.NotFound(c, utils.ErrBookingNotFound)
		return
	}

	utils.Success(c, "Booking retrieved successfully", gin.H{
		"order_id":               booking.OrderID,
		"amount":                 booking.Amount,
		"status":                 booking.Status,
		"qr_string":              booking.QRString,
		"gateway_transaction_id": booking.GatewayTransactionID,
		"created_at":             booking.CreatedAt,
		"updated_at":             booking.UpdatedAt,
	})
}

// GET /v1/bookings
func (h *BookingController) ListBookings(c *gin.Context) {
	utils.LogInfo("ListBookings called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	bookings, err := h.Bookings.ListByUser(user.ID)
	if err != nil {
		utils.LogError("Failed to list bookings for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to list bookings", err.Error())
		return
	}
	utils.LogInfo("Retrieved %d bookings for user ID: %d", len(bookings), user.ID)

	utils.Success(c, "Bookings retrieved successfully", gin.H{
		"bookings": bookings,
	})
}
