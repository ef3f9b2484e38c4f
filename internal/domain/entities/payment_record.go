package entities

import (
	"encoding/json"
	"time"
)

// PaymentRecord is the audit trail of a gateway payment created through this
// service. The gateway remains authoritative for payment state; records exist
// so operators can reconcile gateway payments against platform users.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (payment_id-index): payment_id
//
// ProviderResponseRaw keeps the gateway's creation response verbatim for
// diagnosability.
type PaymentRecord struct {
	ID          string      `json:"id"`
	PaymentID   string      `json:"payment_id"`
	UserID      string      `json:"user_id"`
	BillingType BillingType `json:"billing_type"`
	Value       float64     `json:"value"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`

	ProviderResponseRaw json.RawMessage `json:"provider_response_raw,omitempty"`
}
