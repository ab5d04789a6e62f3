package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Prasetyo-11/BookingPay/config"
	"github.com/Prasetyo-11/BookingPay/gateway"
	"github.com/Prasetyo-11/BookingPay/models"
	"github.com/Prasetyo-11/BookingPay/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{MidtransServerKey: "SB-Mid-server-testkey"}
}

// newPaymentRouter builds a minimal router around the handler under test.
// When user is non-nil a stub auth middleware places it in the context, the
// same contract the real AuthMiddleware fulfills.
func newPaymentRouter(h *PaymentController, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	chargeHandlers := []gin.HandlerFunc{}
	if user != nil {
		u := *user
		chargeHandlers = append(chargeHandlers, func(c *gin.Context) { c.Set("user", u) })
	}
	chargeHandlers = append(chargeHandlers, h.CreateCharge)

	router.POST("/v1/payments/charge", chargeHandlers...)
	router.POST("/v1/payments/notification", h.HandleNotification)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func pendingBooking(orderID string, userID uint, amount int64) *models.Booking {
	return &models.Booking{
		OrderID: orderID,
		UserID:  userID,
		Amount:  amount,
		Status:  models.BookingStatusPending,
	}
}

func TestCreateCharge(t *testing.T) {
	user := &models.User{}
	user.ID = 1

	t.Run("returns QR string and transaction ID and persists them", func(t *testing.T) {
		repo := newMockBookingRepo(pendingBooking("B1", 1, 150000))
		gw := &mockGateway{chargeResult: &gateway.ChargeResult{
			QRString:      "00020101021226620014COM.GO-JEK.WWW",
			TransactionID: "T1",
		}}
		h := NewPaymentController(gw, repo, testConfig())

		w := postJSON(newPaymentRouter(h, user), "/v1/payments/charge", `{"order_id":"B1","amount":150000}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Status string `json:"status"`
			Data   struct {
				QRString      string `json:"qr_string"`
				TransactionID string `json:"transaction_id"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp.Status)
		assert.Equal(t, "00020101021226620014COM.GO-JEK.WWW", resp.Data.QRString)
		assert.Equal(t, "T1", resp.Data.TransactionID)

		assert.Equal(t, int64(150000), gw.lastGross)
		stored, err := repo.GetByOrderID("B1")
		require.NoError(t, err)
		assert.Equal(t, "00020101021226620014COM.GO-JEK.WWW", stored.QRString)
		assert.Equal(t, "T1", stored.GatewayTransactionID)
	})

	t.Run("rounds fractional amounts to whole units", func(t *testing.T) {
		repo := newMockBookingRepo(pendingBooking("B1", 1, 150000))
		gw := &mockGateway{chargeResult: &gateway.ChargeResult{QRString: "qr", TransactionID: "T1"}}
		h := NewPaymentController(gw, repo, testConfig())

		w := postJSON(newPaymentRouter(h, user), "/v1/payments/charge", `{"order_id":"B1","amount":150000.49}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(150000), gw.lastGross)
	})

	t.Run("rejects missing amount without touching the store", func(t *testing.T) {
		repo := newMockBookingRepo(pendingBooking("B1", 1, 150000))
		gw := &mockGateway{}
		h := NewPaymentController(gw, repo, testConfig())

		w := postJSON(newPaymentRouter(h, user), "/v1/payments/charge", `{"order_id":"B1"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), string(utils.KindInvalidArgument))
		assert.Equal(t, 0, gw.chargeCalls)
		assert.Equal(t, 0, repo.attachCalls)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		repo := newMockBookingRepo(pendingBooking("B1", 1, 150000))
		h := NewPaymentController(&mockGateway{}, repo, testConfig())

		w := postJSON(newPaymentRouter(h, user), "/v1/payments/charge", `{"order_id":"B1","amount":-5}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), string(utils.KindInvalidArgument))
	})

	t.Run("fails unauthenticated when no user is in context", func(t *testing.T) {
		repo := newMockBookingRepo(pendingBooking("B1", 1, 150000))
		h := NewPaymentController(&mockGateway{}, repo, testConfig())

		w := postJSON(newPaymentRouter(h, nil), "/v1/payments/charge", `{"order_id":"B1","amount":150000}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), string(utils.KindUnauthenticated))
	})

	t.Run("fails precondition when the gateway key is unconfigured", func(t *testing.T) {
		repo := newMockBookingRepo(pendingBooking("B1", 1, 150000))
		gw := &mockGateway{}
		h := NewPaymentController(gw, repo, &config.Config{})

		w := postJSON(newPaymentRouter(h, user), "/v1/payments/charge", `{"order_id":"B1","amount":150000}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), string(utils.KindFailedPrecondition))
		assert.Equal(t, 0, gw.chargeCalls)
	})

	t.Run("fails not found for an unknown booking", func(t *testing.T) {
		repo := newMockBookingRepo()
		h := NewPaymentController(&mockGateway{}, repo, testConfig())

		w := postJSON(newPaymentRouter(h, user), "/v1/payments/charge", `{"order_id":"nope","amount":150000}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), string(utils.KindNotFound))
	})

	t.Run("fails not found for another user's booking", func(t *testing.T) {
		repo := newMockBookingRepo(pendingBooking("B1", 42, 150000))
		h := NewPaymentController(&mockGateway{}, repo, testConfig())

		w := postJSON(newPaymentRouter(h, user), "/v1/payments/charge", `{"order_id":"B1","amount":150000}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("rejects a charge on a settled booking", func(t *testing.T) {
		paid := pendingBooking("B1", 1, 150000)
		paid.Status = models.BookingStatusPaid
		repo := newMockBookingRepo(paid)
		gw := &mockGateway{}
		h := NewPaymentController(gw, repo, testConfig())

		w := postJSON(newPaymentRouter(h, user), "/v1/payments/charge", `{"order_id":"B1","amount":150000}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, gw.chargeCalls)
	})

	t.Run("surfaces a gateway failure as internal with no store mutation", func(t *testing.T) {
		repo := newMockBookingRepo(pendingBooking("B1", 1, 150000))
		gw := &mockGateway{chargeErr: utils.InternalError("Midtrans error: insufficient merchant balance", nil)}
		h := NewPaymentController(gw, repo, testConfig())

		w := postJSON(newPaymentRouter(h, user), "/v1/payments/charge", `{"order_id":"B1","amount":150000}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "insufficient merchant balance")
		assert.Equal(t, 0, repo.attachCalls)

		stored, err := repo.GetByOrderID("B1")
		require.NoError(t, err)
		assert.Empty(t, stored.QRString)
	})
}

func TestHandleNotification(t *testing.T) {
	t.Run("settlement moves a pending booking to paid", func(t *testing.T) {
		repo := newMockBookingRepo(pendingBooking("B1", 1, 150000))
		h := NewPaymentController(&mockGateway{}, repo, testConfig())

		w := postJSON(newPaymentRouter(h, nil), "/v1/payments/notification",
			`{"order_id":"B1","transaction_status":"settlement"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.BookingStatusPaid, repo.status("B1"))
		assert.Equal(t, 1, repo.transitionWrites)
	})

	t.Run("duplicate delivery acknowledges success without a second write", func(t *testing.T) {
		repo := newMockBookingRepo(pendingBooking("B1", 1, 150000))
		h := NewPaymentController(&mockGateway{}, repo, testConfig())
		router := newPaymentRouter(h, nil)
		body := `{"order_id":"B1","transaction_status":"settlement"}`

		first := postJSON(router, "/v1/payments/notification", body)
		second := postJSON(router, "/v1/payments/notification", body)

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, models.BookingStatusPaid, repo.status("B1"))
		assert.Equal(t, 1, repo.transitionWrites)
	})

	t.Run("capture with challenge keeps the booking pending", func(t *testing.T) {
		repo := newMockBookingRepo(pendingBooking("B2", 1, 90000))
		h := NewPaymentController(&mockGateway{}, repo, testConfig())

		w := postJSON(newPaymentRouter(h, nil), "/v1/payments/notification",
			`{"order_id":"B2","transaction_status":"capture","fraud_status":"challenge"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.BookingStatusPending, repo.status("B2"))
		assert.Equal(t, 0, repo.transitionWrites)
	})

	t.Run("capture with accept marks the booking paid", func(t *testing.T) {
		repo := newMockBookingRepo(pendingBooking("B2", 1, 90000))
		h := NewPaymentController(&mockGateway{}, repo, testConfig())

		w := postJSON(newPaymentRouter(h, nil), "/v1/payments/notification",
			`{"order_id":"B2","transaction_status":"capture","fraud_status":"accept"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.BookingStatusPaid, repo.status("B2"))
	})

	t.Run("terminal bookings never regress", func(t *testing.T) {
		paid := pendingBooking("B1", 1, 150000)
		paid.Status = models.BookingStatusPaid
		repo := newMockBookingRepo(paid)
		h := NewPaymentController(&mockGateway{}, repo, testConfig())
		router := newPaymentRouter(h, nil)

		for _, body := range []string{
			`{"order_id":"B1","transaction_status":"pending"}`,
			`{"order_id":"B1","transaction_status":"cancel"}`,
			`{"order_id":"B1","transaction_status":"expire"}`,
			`{"order_id":"B1","transaction_status":"deny"}`,
			`{"order_id":"B1","transaction_status":"capture","fraud_status":"challenge"}`,
		} {
			w := postJSON(router, "/v1/payments/notification", body)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, models.BookingStatusPaid, repo.status("B1"))
		}
		assert.Equal(t, 0, repo.transitionWrites)
	})

	t.Run("pending after cancellation has no effect", func(t *testing.T) {
		cancelled := pendingBooking("B1", 1, 150000)
		cancelled.Status = models.BookingStatusCancelled
		repo := newMockBookingRepo(cancelled)
		h := NewPaymentController(&mockGateway{}, repo, testConfig())

		w := postJSON(newPaymentRouter(h, nil), "/v1/payments/notification",
			`{"order_id":"B1","transaction_status":"pending"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.BookingStatusCancelled, repo.status("B1"))
	})

	t.Run("expire cancels a pending booking", func(t *testing.T) {
		repo := newMockBookingRepo(pendingBooking("B3", 1, 50000))
		h := NewPaymentController(&mockGateway{}, repo, testConfig())

		w := postJSON(newPaymentRouter(h, nil), "/v1/payments/notification",
			`{"order_id":"B3","transaction_status":"expire"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.BookingStatusCancelled, repo.status("B3"))
	})

	t.Run("unmapped vendor status acknowledges success with no mutation", func(t *testing.T) {
		repo := newMockBookingRepo(pendingBooking("B1", 1, 150000))
		h := NewPaymentController(&mockGateway{}, repo, testConfig())

		w := postJSON(newPaymentRouter(h, nil), "/v1/payments/notification",
			`{"order_id":"B1","transaction_status":"refund"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.BookingStatusPending, repo.status("B1"))
		assert.Equal(t, 0, repo.transitionWrites)
	})

	t.Run("notification for an unknown order still acknowledges success", func(t *testing.T) {
		repo := newMockBookingRepo()
		h := NewPaymentController(&mockGateway{}, repo, testConfig())

		w := postJSON(newPaymentRouter(h, nil), "/v1/payments/notification",
			`{"order_id":"ghost","transaction_status":"settlement"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("signature failure is rejected without acknowledgment", func(t *testing.T) {
		repo := newMockBookingRepo(pendingBooking("B1", 1, 150000))
		gw := &mockGateway{verifyErr: utils.InvalidSignatureError(utils.ErrInvalidSignature, nil)}
		h := NewPaymentController(gw, repo, testConfig())

		w := postJSON(newPaymentRouter(h, nil), "/v1/payments/notification",
			`{"order_id":"B1","transaction_status":"settlement"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, models.BookingStatusPending, repo.status("B1"))
	})

	t.Run("malformed payload is rejected as a client error", func(t *testing.T) {
		repo := newMockBookingRepo()
		h := NewPaymentController(&mockGateway{}, repo, testConfig())

		w := postJSON(newPaymentRouter(h, nil), "/v1/payments/notification", "not json at all")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store unavailability fails the acknowledgment so the vendor retries", func(t *testing.T) {
		repo := newMockBookingRepo(pendingBooking("B1", 1, 150000))
		repo.transitionErr = assert.AnError
		h := NewPaymentController(&mockGateway{}, repo, testConfig())

		w := postJSON(newPaymentRouter(h, nil), "/v1/payments/notification",
			`{"order_id":"B1","transaction_status":"settlement"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("records an audit event per delivery", func(t *testing.T) {
		repo := newMockBookingRepo(pendingBooking("B1", 1, 150000))
		h := NewPaymentController(&mockGateway{}, repo, testConfig())
		router := newPaymentRouter(h, nil)
		body := `{"order_id":"B1","transaction_status":"settlement"}`

		postJSON(router, "/v1/payments/notification", body)
		postJSON(router, "/v1/payments/notification", body)

		require.Len(t, repo.events, 2)
		assert.True(t, repo.events[0].Applied)
		assert.False(t, repo.events[1].Applied)
		assert.Equal(t, "settlement", repo.events[0].TransactionStatus)
	})
}
