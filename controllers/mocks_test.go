package controllers

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/Prasetyo-11/BookingPay/gateway"
	"github.com/Prasetyo-11/BookingPay/models"
	"github.com/Prasetyo-11/BookingPay/repository"
	"github.com/Prasetyo-11/BookingPay/utils"
)

// mockGateway is an in-memory gateway.Client.
type mockGateway struct {
	chargeResult *gateway.ChargeResult
	chargeErr    error
	chargeCalls  int
	lastOrderID  string
	lastGross    int64
	verifyErr    error
}

func (m *mockGateway) ChargeQR(orderID string, grossAmount int64) (*gateway.ChargeResult, error) {
	m.chargeCalls++
	m.lastOrderID = orderID
	m.lastGross = grossAmount
	if m.chargeErr != nil {
		return nil, m.chargeErr
	}
	return m.chargeResult, nil
}

// VerifyNotification decodes the payload without a signature check so tests
// can post plain notification bodies.
func (m *mockGateway) VerifyNotification(payload []byte) (*gateway.Notification, error) {
	if m.verifyErr != nil {
		return nil, m.verifyErr
	}
	var n gateway.Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		return nil, utils.MalformedError(utils.ErrMalformedPayload, err)
	}
	if n.OrderID == "" || n.TransactionStatus == "" {
		return nil, utils.MalformedError(utils.ErrMalformedPayload, nil)
	}
	return &n, nil
}

// mockBookingRepo is an in-memory repository.BookingRepository with the same
// conditional-update semantics as the real one.
type mockBookingRepo struct {
	mu               sync.Mutex
	bookings         map[string]*models.Booking
	events           []*models.PaymentEvent
	attachCalls      int
	transitionWrites int
	getErr           error
	attachErr        error
	transitionErr    error
}

func newMockBookingRepo(bookings ...*models.Booking) *mockBookingRepo {
	repo := &mockBookingRepo{bookings: make(map[string]*models.Booking)}
	for _, b := range bookings {
		repo.bookings[b.OrderID] = b
	}
	return repo
}

func (m *mockBookingRepo) Create(booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}
	m.bookings[booking.OrderID] = booking
	return nil
}

func (m *mockBookingRepo) GetByOrderID(orderID string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	booking, ok := m.bookings[orderID]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (m *mockBookingRepo) ListByUser(userID uint) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) AttachCharge(orderID, qrString, transactionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attachCalls++
	if m.attachErr != nil {
		return m.attachErr
	}
	booking, ok := m.bookings[orderID]
	if !ok {
		return repository.ErrBookingNotFound
	}
	booking.QRString = qrString
	booking.GatewayTransactionID = transactionID
	booking.UpdatedAt = time.Now()
	return nil
}

func (m *mockBookingRepo) TransitionStatus(orderID string, to models.BookingStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.transitionErr != nil {
		return false, m.transitionErr
	}
	booking, ok := m.bookings[orderID]
	if !ok {
		return false, nil
	}
	if booking.Status.IsTerminal() || booking.Status == to {
		return false, nil
	}
	booking.Status = to
	booking.UpdatedAt = time.Now()
	m.transitionWrites++
	return true, nil
}

func (m *mockBookingRepo) SavePaymentEvent(event *models.PaymentEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockBookingRepo) status(orderID string) models.BookingStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[orderID].Status
}
