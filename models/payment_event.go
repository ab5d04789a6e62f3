package models

import (
	"encoding/json"
	"time"
)

// PaymentEvent is an audit record of a gateway notification after it passed
// the signature check. One row per delivery, duplicates included, so the
// history of retried webhooks stays diagnosable.
type PaymentEvent struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	OrderID           string          `gorm:"index" json:"order_id"`
	TransactionID     string          `json:"transaction_id"`
	TransactionStatus string          `json:"transaction_status"`
	FraudStatus       string          `json:"fraud_status"`
	Applied           bool            `json:"applied"`
	RawPayload        json.RawMessage `gorm:"type:jsonb" json:"raw_payload"`
	CreatedAt         time.Time       `json:"created_at"`
}
