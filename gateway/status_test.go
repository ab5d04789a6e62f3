package gateway

import (
	"testing"

	"github.com/Prasetyo-11/BookingPay/models"
	"github.com/stretchr/testify/assert"
)

func TestMapTransactionStatus(t *testing.T) {
	tests := []struct {
		name              string
		transactionStatus string
		fraudStatus       string
		want              models.BookingStatus
		wantOK            bool
	}{
		{"capture with challenge stays pending", "capture", "challenge", models.BookingStatusPending, true},
		{"capture with accept is paid", "capture", "accept", models.BookingStatusPaid, true},
		{"capture with unknown fraud status is a no-op", "capture", "review", "", false},
		{"capture with empty fraud status is a no-op", "capture", "", "", false},
		{"settlement is paid", "settlement", "", models.BookingStatusPaid, true},
		{"settlement ignores fraud status", "settlement", "challenge", models.BookingStatusPaid, true},
		{"cancel is cancelled", "cancel", "", models.BookingStatusCancelled, true},
		{"deny is cancelled", "deny", "accept", models.BookingStatusCancelled, true},
		{"expire is cancelled", "expire", "", models.BookingStatusCancelled, true},
		{"pending stays pending", "pending", "", models.BookingStatusPending, true},
		{"refund is a no-op", "refund", "", "", false},
		{"partial_refund is a no-op", "partial_refund", "", "", false},
		{"authorize is a no-op", "authorize", "accept", "", false},
		{"empty status is a no-op", "", "", "", false},
		{"garbage status is a no-op", "???", "???", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MapTransactionStatus(tt.transactionStatus, tt.fraudStatus)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
