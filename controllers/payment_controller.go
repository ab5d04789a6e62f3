package controllers

import (
	"encoding/json"
	"math"

	"github.com/Prasetyo-11/BookingPay/config"
	"github.com/Prasetyo-11/BookingPay/gateway"
	"github.com/Prasetyo-11/BookingPay/models"
	"github.com/Prasetyo-11/BookingPay/repository"
	"github.com/Prasetyo-11/BookingPay/utils"
	"github.com/gin-gonic/gin"
)

// PaymentController drives the charge and notification flows against its
// injected collaborators.
type PaymentController struct {
	Gateway  gateway.Client
	Bookings repository.BookingRepository
	Config   *config.Config
}

// NewPaymentController wires a PaymentController with its collaborators.
func NewPaymentController(gw gateway.Client, bookings repository.BookingRepository, cfg *config.Config) *PaymentController {
	return &PaymentController{
		Gateway:  gw,
		Bookings: bookings,
		Config:   cfg,
	}
}

// ChargeRequest is the body of a charge creation call.
type ChargeRequest struct {
	OrderID string  `json:"order_id" binding:"required"`
	Amount  float64 `json:"amount" binding:"required"`
}

// POST /v1/payments/charge
func (h *PaymentController) CreateCharge(c *gin.Context) {
	utils.LogInfo("CreateCharge called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.AppErrorResponse(c, utils.UnauthenticatedError("User not found", nil))
		return
	}
	user := userVal.(models.User)
	utils.LogInfo("Processing charge creation for user ID: %d", user.ID)

	var req ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid charge request for user ID: %d: %v", user.ID, err)
		utils.AppErrorResponse(c, utils.InvalidArgumentError("order_id and amount are required", err))
		return
	}
	if !utils.ValidateOrderID(req.OrderID) {
		utils.LogError("Invalid order_id in charge request for user ID: %d", user.ID)
		utils.AppErrorResponse(c, utils.InvalidArgumentError(utils.ErrInvalidOrderID, nil))
		return
	}
	if !utils.ValidateAmount(req.Amount) {
		utils.LogError("Invalid amount %v in charge request for order ID: %s", req.Amount, req.OrderID)
		utils.AppErrorResponse(c, utils.InvalidArgumentError(utils.ErrInvalidAmount, nil))
		return
	}

	if h.Config.MidtransServerKey == "" {
		utils.LogError("MIDTRANS_SERVER_KEY is missing in environment variables")
		utils.AppErrorResponse(c, utils.FailedPreconditionError(utils.ErrGatewayConfig, nil))
		return
	}

	booking, err := h.Bookings.GetByOrderID(req.OrderID)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			utils.LogError("Booking not found for order ID: %s, user ID: %d", req.OrderID, user.ID)
			utils.AppErrorResponse(c, utils.NotFoundError(utils.ErrBookingNotFound, nil))
			return
		}
		utils.LogError("Failed to load booking for order ID: %s: %v", req.OrderID, err)
		utils.AppErrorResponse(c, utils.InternalError(utils.ErrStoreUnavailable, err))
		return
	}
	if booking.UserID != user.ID {
		utils.LogError("Booking %s does not belong to user ID: %d", req.OrderID, user.ID)
		utils.AppErrorResponse(c, utils.NotFoundError(utils.ErrBookingNotFound, nil))
		return
	}
	utils.LogInfo("Found booking for order ID: %s, user ID: %d", booking.OrderID, user.ID)

	if booking.Status.IsTerminal() {
		utils.LogError("Charge rejected for order ID: %s, booking already %s", booking.OrderID, booking.Status)
		utils.AppErrorResponse(c, utils.InvalidArgumentError("Payment for this booking has already been settled", nil))
		return
	}

	// Midtrans requires an integral gross amount
	grossAmount := int64(math.Round(req.Amount))
	utils.LogInfo("Calling gateway charge with order ID: %s, gross amount: %d", booking.OrderID, grossAmount)

	result, err := h.Gateway.ChargeQR(booking.OrderID, grossAmount)
	if err != nil {
		utils.LogError("Gateway charge failed for order ID: %s: %v", booking.OrderID, err)
		if appErr := utils.GetAppError(err); appErr != nil {
			utils.AppErrorResponse(c, appErr)
			return
		}
		utils.AppErrorResponse(c, utils.InternalError(utils.ErrGatewayCharge, err))
		return
	}
	utils.LogInfo("Gateway charge created for order ID: %s, transaction ID: %s", booking.OrderID, result.TransactionID)

	if err := h.Bookings.AttachCharge(booking.OrderID, result.QRString, result.TransactionID); err != nil {
		if err == repository.ErrBookingNotFound {
			utils.LogError("Booking vanished before charge persist for order ID: %s", booking.OrderID)
			utils.AppErrorResponse(c, utils.NotFoundError(utils.ErrBookingNotFound, nil))
			return
		}
		utils.LogError("Failed to persist charge for order ID: %s: %v", booking.OrderID, err)
		utils.AppErrorResponse(c, utils.InternalError(utils.ErrStoreUnavailable, err))
		return
	}
	utils.LogInfo("Charge persisted for order ID: %s", booking.OrderID)

	utils.Success(c, utils.MsgChargeCreated, gin.H{
		"order_id":       booking.OrderID,
		"qr_string":      result.QRString,
		"transaction_id": result.TransactionID,
	})
}

// POST /v1/payments/notification
//
// The gateway retries deliveries that do not answer 2xx, so every business
// outcome acknowledges success; only store unavailability answers 500.
func (h *PaymentController) HandleNotification(c *gin.Context) {
	utils.LogInfo("HandleNotification called")

	payload, err := c.GetRawData()
	if err != nil {
		utils.LogError("Failed to read notification body: %v", err)
		utils.AppErrorResponse(c, utils.MalformedError(utils.ErrMalformedPayload, err))
		return
	}

	notif, err := h.Gateway.VerifyNotification(payload)
	if err != nil {
		utils.LogError("Notification rejected: %v", err)
		if appErr := utils.GetAppError(err); appErr != nil {
			utils.AppErrorResponse(c, appErr)
			return
		}
		utils.AppErrorResponse(c, utils.MalformedError(utils.ErrMalformedPayload, err))
		return
	}
	utils.LogInfo("Transaction notification received for %s: %s (fraud: %s)",
		notif.OrderID, notif.TransactionStatus, notif.FraudStatus)

	candidate, ok := gateway.MapTransactionStatus(notif.TransactionStatus, notif.FraudStatus)
	if !ok {
		utils.LogInfo("No applicable status mapping for order ID: %s, transaction status: %s, fraud status: %s",
			notif.OrderID, notif.TransactionStatus, notif.FraudStatus)
		h.savePaymentEvent(notif, payload, false)
		utils.Success(c, "OK", nil)
		return
	}

	changed, err := h.Bookings.TransitionStatus(notif.OrderID, candidate)
	if err != nil {
		// The only failure the vendor should retry on.
		utils.LogError("Failed to update booking %s to %s: %v", notif.OrderID, candidate, err)
		utils.AppErrorResponse(c, utils.InternalError(utils.ErrStoreUnavailable, err))
		return
	}

	if changed {
		utils.LogInfo("Booking %s updated to %s", notif.OrderID, candidate)
		if candidate == models.BookingStatusPaid {
			go h.sendReceipt(notif.OrderID)
		}
	} else {
		utils.LogInfo("No status change applied for booking %s (duplicate, terminal, or unknown order)", notif.OrderID)
	}

	h.savePaymentEvent(notif, payload, changed)
	utils.Success(c, "OK", nil)
}

// savePaymentEvent records the notification for the audit trail. Best effort:
// a failed insert never turns a processed notification into a failed
// acknowledgment.
func (h *PaymentController) savePaymentEvent(notif *gateway.Notification, payload []byte, applied bool) {
	event := &models.PaymentEvent{
		OrderID:           notif.OrderID,
		TransactionID:     notif.TransactionID,
		TransactionStatus: notif.TransactionStatus,
		FraudStatus:       notif.FraudStatus,
		Applied:           applied,
		RawPayload:        json.RawMessage(payload),
	}
	if err := h.Bookings.SavePaymentEvent(event); err != nil {
		utils.LogError("Failed to save payment event for order ID: %s: %v", notif.OrderID, err)
	}
}

// sendReceipt emails a payment receipt for a booking that just became paid.
func (h *PaymentController) sendReceipt(orderID string) {
	if !utils.EmailConfigured() {
		return
	}

	booking, err := h.Bookings.GetByOrderID(orderID)
	if err != nil {
		utils.LogError("Failed to load booking %s for receipt email: %v", orderID, err)
		return
	}
	if booking.User.Email == "" {
		utils.LogDebug("No email on file for booking %s, skipping receipt", orderID)
		return
	}

	if err := utils.SendPaymentReceipt(booking.User.Email, booking.OrderID, booking.Amount); err != nil {
		utils.LogError("Failed to send receipt email for booking %s: %v", orderID, err)
		return
	}
	utils.LogInfo("Receipt email sent for booking %s", orderID)
}
