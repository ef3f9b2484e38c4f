package interfaces

import (
	"context"
	"fmt"

	"agendaexames_billing/internal/domain/entities"
)

// IPaymentGateway abstracts the external payment gateway (Asaas).
//
// Every operation is attempted exactly once: no retries, no backoff. Non-2xx
// gateway responses surface as *GatewayError so callers can diagnose against
// the gateway's own documentation.
type IPaymentGateway interface {
	// FindCustomerByDocument returns the id of an existing billing customer
	// with the given tax document, or "" when none exists.
	FindCustomerByDocument(ctx context.Context, cpfCnpj string) (string, error)
	CreateCustomer(ctx context.Context, in entities.CustomerInput) (string, error)
	CreatePayment(ctx context.Context, in entities.PaymentInput) (entities.Payment, error)
	GetPixQRCode(ctx context.Context, paymentID string) (entities.PixQRCode, error)
	GetPayment(ctx context.Context, paymentID string) (entities.Payment, error)
}

// GatewayError is a non-success gateway response. Body is the raw response
// text, kept verbatim: masking it would make gateway rejections undiagnosable.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway returned status %d: %s", e.StatusCode, e.Body)
}
