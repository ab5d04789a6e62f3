package repository

import (
	"errors"
	"time"

	"github.com/Prasetyo-11/BookingPay/models"
	"gorm.io/gorm"
)

// ErrBookingNotFound is returned when an order ID does not match any booking.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepository is the durable booking store consumed by the controllers.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByOrderID(orderID string) (*models.Booking, error)
	ListByUser(userID uint) ([]models.Booking, error)
	// AttachCharge records the QR string and gateway transaction ID produced
	// by a charge. Fails with ErrBookingNotFound when the booking is absent.
	AttachCharge(orderID, qrString, transactionID string) error
	// TransitionStatus moves a booking to the target status only if its
	// current status is non-terminal and differs from the target. The write
	// is a single conditional UPDATE, so concurrent notifications for the
	// same order cannot interleave. Returns whether a row actually changed.
	TransitionStatus(orderID string, to models.BookingStatus) (bool, error)
	SavePaymentEvent(event *models.PaymentEvent) error
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository returns a BookingRepository backed by the given
// database handle.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(booking *models.Booking) error {
	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}
	return r.db.Create(booking).Error
}

func (r *bookingRepository) GetByOrderID(orderID string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.Preload("User").Where("order_id = ?", orderID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) ListByUser(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) AttachCharge(orderID, qrString, transactionID string) error {
	result := r.db.Model(&models.Booking{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"qr_string":              qrString,
			"gateway_transaction_id": transactionID,
			"updated_at":             time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *bookingRepository) TransitionStatus(orderID string, to models.BookingStatus) (bool, error) {
	// Compare-and-set scoped to one row. Terminal rows and rows already at
	// the target status match nothing, so duplicate and out-of-order
	// notifications degrade to no-ops.
	result := r.db.Model(&models.Booking{}).
		Where("order_id = ? AND status NOT IN ? AND status <> ?",
			orderID,
			[]models.BookingStatus{models.BookingStatusPaid, models.BookingStatusCancelled},
			to,
		).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *bookingRepository) SavePaymentEvent(event *models.PaymentEvent) error {
	return r.db.Create(event).Error
}
