package response

import (
	"time"

	"agendaexames_billing/internal/domain/entities"
)

// PaymentRecordResponse exposes the audit trail of a gateway payment to
// operators. Provider payloads stay out of this view; they are fetched from
// storage directly when a dispute needs the raw body.
type PaymentRecordResponse struct {
	ID          string    `json:"id"`
	PaymentID   string    `json:"payment_id"`
	UserID      string    `json:"user_id"`
	BillingType string    `json:"billing_type"`
	Value       float64   `json:"value"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromPaymentRecord(r entities.PaymentRecord) PaymentRecordResponse {
	return PaymentRecordResponse{
		ID:          r.ID,
		PaymentID:   r.PaymentID,
		UserID:      r.UserID,
		BillingType: string(r.BillingType),
		Value:       r.Value,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}

func FromPaymentRecords(records []entities.PaymentRecord) []PaymentRecordResponse {
	out := make([]PaymentRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, FromPaymentRecord(r))
	}
	return out
}
