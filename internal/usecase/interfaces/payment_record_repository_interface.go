package interfaces

import (
	"context"

	"agendaexames_billing/internal/domain/entities"
)

// IPaymentRecordRepository abstracts DynamoDB persistence for PaymentRecord.
//
// Records are an audit trail only; the gateway stays the source of truth for
// payment state.
type IPaymentRecordRepository interface {
	Create(ctx context.Context, r entities.PaymentRecord) (entities.PaymentRecord, error)
	GetByID(ctx context.Context, id string) (entities.PaymentRecord, error)
	ListByPaymentID(ctx context.Context, paymentID string) ([]entities.PaymentRecord, error)
}
