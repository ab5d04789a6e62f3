package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/Prasetyo-11/BookingPay/models"
	"github.com/Prasetyo-11/BookingPay/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// GET /v1/bookings/:order_id/receipt
//
// DownloadReceipt generates and returns a PDF payment receipt for a paid
// booking.
func (h *BookingController) DownloadReceipt(c *gin.Context) {
	utils.LogInfo("Starting receipt download process")

	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("Unauthorized receipt download attempt - no user found in context")
		utils.Unauthorized(c, "Unauthorized")
		return
	}
	user := userVal.(models.User)

	orderID := c.Param("order_id")
	booking, err := h.Bookings.GetByOrderID(orderID)
	if err != nil || booking.UserID != user.ID {
		utils.LogError("Booking not found for receipt download - Order ID: %s, User ID: %d", orderID, user.ID)
		utils.NotFound(c, utils.ErrBookingNotFound)
		return
	}

	if booking.Status != models.BookingStatusPaid {
		utils.LogError("Receipt requested for unpaid booking %s (status: %s)", orderID, booking.Status)
		utils.BadRequest(c, "Receipt is only available for paid bookings", nil)
		return
	}
	utils.LogInfo("Found paid booking for receipt generation - Order ID: %s", orderID)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "BookingPay")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Email: support@bookingpay.example")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(90, 8, "Booking ID: "+booking.OrderID)
	pdf.Cell(70, 8, "Paid At: "+booking.UpdatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	pdf.Cell(90, 8, "Transaction ID: "+booking.GatewayTransactionID)
	pdf.Cell(70, 8, "Payment Method: QRIS")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Billed To:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, booking.User.Username)
	pdf.Ln(6)
	pdf.Cell(100, 8, booking.User.Email)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(120, 8, "Description", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(120, 8, "Booking "+booking.OrderID, "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%d", booking.Amount), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(120, 10, "Total Paid:", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 10, fmt.Sprintf("%d", booking.Amount), "", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 12)
	pdf.Cell(0, 10, "Thank you for booking with BookingPay!")

	var buf bytes.Buffer
	_ = pdf.Output(&buf)
	utils.LogInfo("PDF receipt generated successfully for order ID: %s", orderID)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=receipt.pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	utils.LogInfo("Receipt download completed for order ID: %s", orderID)
}
