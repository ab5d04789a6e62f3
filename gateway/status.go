package gateway

import "github.com/Prasetyo-11/BookingPay/models"

// Midtrans status vocabulary as reported on notifications.
const (
	TransactionStatusCapture    = "capture"
	TransactionStatusSettlement = "settlement"
	TransactionStatusCancel     = "cancel"
	TransactionStatusDeny       = "deny"
	TransactionStatusExpire     = "expire"
	TransactionStatusPending    = "pending"

	FraudStatusChallenge = "challenge"
	FraudStatusAccept    = "accept"
)

// MapTransactionStatus translates a (transaction_status, fraud_status) pair
// into the booking status it implies. The second return value is false when
// the pair implies no change: unknown vendor statuses must never touch
// booking state.
func MapTransactionStatus(transactionStatus, fraudStatus string) (models.BookingStatus, bool) {
	switch transactionStatus {
	case TransactionStatusCapture:
		switch fraudStatus {
		case FraudStatusChallenge:
			return models.BookingStatusPending, true
		case FraudStatusAccept:
			return models.BookingStatusPaid, true
		}
		return "", false
	case TransactionStatusSettlement:
		return models.BookingStatusPaid, true
	case TransactionStatusCancel, TransactionStatusDeny, TransactionStatusExpire:
		return models.BookingStatusCancelled, true
	case TransactionStatusPending:
		return models.BookingStatusPending, true
	}
	return "", false
}
