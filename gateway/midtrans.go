package gateway

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/Prasetyo-11/BookingPay/utils"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

// ChargeResult carries the fields of a successful QRIS charge that the rest
// of the system consumes.
type ChargeResult struct {
	QRString      string `json:"qr_string"`
	TransactionID string `json:"transaction_id"`
}

// Notification is a decoded, signature-verified gateway notification.
type Notification struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
}

// Client is the outbound payment gateway adapter consumed by the payment
// controller.
type Client interface {
	// ChargeQR creates a QRIS charge for the given order. The gross amount
	// must be in whole currency units.
	ChargeQR(orderID string, grossAmount int64) (*ChargeResult, error)
	// VerifyNotification checks the integrity of a raw notification body and
	// decodes the fields the reconciler needs.
	VerifyNotification(payload []byte) (*Notification, error)
}

type midtransClient struct {
	core      coreapi.Client
	serverKey string
}

// NewMidtransClient builds a Client backed by the Midtrans Core API.
func NewMidtransClient(serverKey string, production bool) Client {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	client := &midtransClient{serverKey: serverKey}
	client.core.New(serverKey, env)
	return client
}

func (m *midtransClient) ChargeQR(orderID string, grossAmount int64) (*ChargeResult, error) {
	req := &coreapi.ChargeReq{
		PaymentType: coreapi.PaymentTypeQris,
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: grossAmount,
		},
		Qris: &coreapi.QrisDetails{
			Acquirer: "gopay",
		},
	}

	resp, err := m.core.ChargeTransaction(req)
	if err != nil {
		return nil, utils.InternalError(fmt.Sprintf("Midtrans error: %s", err.Message), err)
	}

	// A QRIS charge without a QR string is a contract violation by the
	// gateway, not a client error.
	if resp.QRString == "" {
		return nil, utils.InternalError(utils.ErrQRStringMissing, nil)
	}

	return &ChargeResult{
		QRString:      resp.QRString,
		TransactionID: resp.TransactionID,
	}, nil
}

// notificationPayload is the wire shape of a Midtrans HTTP notification.
// Only the fields the reconciler and the signature check use are decoded.
type notificationPayload struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
}

func (m *midtransClient) VerifyNotification(payload []byte) (*Notification, error) {
	var n notificationPayload
	if err := json.Unmarshal(payload, &n); err != nil {
		return nil, utils.MalformedError(utils.ErrMalformedPayload, err)
	}
	if n.OrderID == "" || n.TransactionStatus == "" {
		return nil, utils.MalformedError(utils.ErrMalformedPayload, nil)
	}

	if !m.validSignature(n) {
		return nil, utils.InvalidSignatureError(utils.ErrInvalidSignature, nil)
	}

	return &Notification{
		OrderID:           n.OrderID,
		TransactionID:     n.TransactionID,
		TransactionStatus: n.TransactionStatus,
		FraudStatus:       n.FraudStatus,
	}, nil
}

// validSignature recomputes the Midtrans signature key,
// sha512(order_id + status_code + gross_amount + server_key).
func (m *midtransClient) validSignature(n notificationPayload) bool {
	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + m.serverKey))
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(n.SignatureKey)) == 1
}
