package models

import (
	"time"
)

// BookingStatus is the internal payment status of a booking.
type BookingStatus string

// Booking status constants. Paid and Cancelled are terminal: once a booking
// reaches one of them, no notification may move it anywhere else.
const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsTerminal reports whether the status must never be overwritten.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusPaid || s == BookingStatusCancelled
}

type Booking struct {
	ID                   uint          `gorm:"primaryKey" json:"id"`
	OrderID              string        `gorm:"uniqueIndex;not null" json:"order_id"`
	UserID               uint          `json:"user_id"`
	User                 User          `json:"-" gorm:"foreignKey:UserID"`
	Amount               int64         `json:"amount"`
	Status               BookingStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	QRString             string        `json:"qr_string,omitempty"`
	GatewayTransactionID string        `json:"gateway_transaction_id,omitempty"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}
