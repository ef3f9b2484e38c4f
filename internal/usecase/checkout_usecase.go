package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"agendaexames_billing/internal/domain/document"
	"agendaexames_billing/internal/domain/entities"
	"agendaexames_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	ErrInvalidDocument    = errors.New("invalid billing document")
	ErrInvalidValue       = errors.New("invalid payment value")
	ErrInvalidPaymentID   = errors.New("invalid payment id")
	ErrMissingCardDetails = errors.New("missing credit card details")
)

// platformEmailDomain backs the holder-email fallback for card payments.
const platformEmailDomain = "agendaexames.com.br"

// CheckoutInput is the payer identity plus the amount being charged.
//
// CompanyDocument/PersonalDocument are the two candidate tax documents; the
// billing document is selected and validated locally before any gateway call.
type CheckoutInput struct {
	UserID           string
	Name             string
	CompanyDocument  string
	PersonalDocument string
	Email            string
	Phone            string
	Value            float64
	Description      string
}

// CardCheckoutInput extends CheckoutInput with the card and holder blocks.
type CardCheckoutInput struct {
	CheckoutInput
	Card             entities.CreditCard
	HolderInfo       entities.CreditCardHolderInfo
	InstallmentCount int
}

// CheckoutResult is the normalized outcome of a payment creation. Pix is nil
// for card payments, and also when the QR follow-up fetch failed (the payment
// itself still exists at the gateway).
type CheckoutResult struct {
	Payment entities.Payment
	Pix     *entities.PixQRCode
}

// PaymentStatusResult carries the gateway status vocabulary through verbatim.
type PaymentStatusResult struct {
	Status        string
	ConfirmedDate string
}

// ICheckoutUseCase encapsulates the payment-creation and status-check flow.
type ICheckoutUseCase interface {
	CreatePixPayment(ctx context.Context, in CheckoutInput) (CheckoutResult, error)
	CreateCardPayment(ctx context.Context, in CardCheckoutInput) (CheckoutResult, error)
	CheckStatus(ctx context.Context, paymentID string) (PaymentStatusResult, error)
}

// CheckoutUseCase orchestrates one-shot payment creation against the gateway:
// document selection, customer resolution, payment creation and, for PIX, the
// QR follow-up. Each invocation is a single sequential chain of calls with no
// retries; any failure surfaces synchronously to the caller.
type CheckoutUseCase struct {
	gateway interfaces.IPaymentGateway
	records interfaces.IPaymentRecordRepository
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(gateway interfaces.IPaymentGateway, records interfaces.IPaymentRecordRepository) *CheckoutUseCase {
	return &CheckoutUseCase{gateway: gateway, records: records}
}

func (u *CheckoutUseCase) CreatePixPayment(ctx context.Context, in CheckoutInput) (CheckoutResult, error) {
	ctx, span := otel.Tracer("checkout-usecase").Start(ctx, "CreatePixPayment")
	defer span.End()
	span.SetAttributes(
		attribute.String("billing.type", string(entities.BillingTypePix)),
		attribute.Float64("billing.value", in.Value),
	)

	log.Printf("[checkout][usecase] pix create start user_id=%s value=%.2f", in.UserID, in.Value)

	doc, err := u.validate(in)
	if err != nil {
		log.Printf("[checkout][usecase] pix validation failed user_id=%s err=%v", in.UserID, err)
		return CheckoutResult{}, err
	}

	customerID, err := u.resolveCustomer(ctx, entities.CustomerInput{
		Name:    in.Name,
		CpfCnpj: doc,
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "customer resolution failed")
		return CheckoutResult{}, err
	}

	payment, err := u.gateway.CreatePayment(ctx, entities.PaymentInput{
		CustomerID:        customerID,
		BillingType:       entities.BillingTypePix,
		Value:             entities.Round(in.Value),
		DueDate:           dueDateTomorrow(),
		Description:       in.Description,
		ExternalReference: in.UserID,
	})
	if err != nil {
		log.Printf("[checkout][usecase] pix create failed user_id=%s err=%v", in.UserID, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "payment creation failed")
		return CheckoutResult{}, err
	}
	payment.BillingType = entities.BillingTypePix
	log.Printf("[checkout][usecase] pix create success user_id=%s payment_id=%s status=%s", in.UserID, payment.ID, payment.Status)

	// The payment already exists at the gateway, so a failed QR fetch must not
	// fail the whole operation: the caller gets the payment with a nil PIX
	// block and can re-fetch the code later.
	var pix *entities.PixQRCode
	qr, err := u.gateway.GetPixQRCode(ctx, payment.ID)
	if err != nil {
		log.Printf("[checkout][usecase] pix qrcode fetch failed payment_id=%s err=%v", payment.ID, err)
		span.RecordError(err)
	} else {
		pix = &qr
	}

	u.recordPayment(ctx, in.UserID, payment)

	return CheckoutResult{Payment: payment, Pix: pix}, nil
}

func (u *CheckoutUseCase) CreateCardPayment(ctx context.Context, in CardCheckoutInput) (CheckoutResult, error) {
	ctx, span := otel.Tracer("checkout-usecase").Start(ctx, "CreateCardPayment")
	defer span.End()
	span.SetAttributes(
		attribute.String("billing.type", string(entities.BillingTypeCreditCard)),
		attribute.Float64("billing.value", in.Value),
		attribute.Int("billing.installments", in.InstallmentCount),
	)

	log.Printf("[checkout][usecase] card create start user_id=%s value=%.2f installments=%d", in.UserID, in.Value, in.InstallmentCount)

	doc, err := u.validate(in.CheckoutInput)
	if err != nil {
		log.Printf("[checkout][usecase] card validation failed user_id=%s err=%v", in.UserID, err)
		return CheckoutResult{}, err
	}
	if in.Card.Number == "" || in.Card.HolderName == "" || in.Card.ExpiryMonth == "" || in.Card.ExpiryYear == "" || in.Card.CCV == "" {
		return CheckoutResult{}, ErrMissingCardDetails
	}

	customerID, err := u.resolveCustomer(ctx, entities.CustomerInput{
		Name:    in.Name,
		CpfCnpj: doc,
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "customer resolution failed")
		return CheckoutResult{}, err
	}

	holder := in.HolderInfo
	if holder.CpfCnpj == "" {
		holder.CpfCnpj = doc
	}
	if holder.Email == "" {
		// Anti-fraud block requires an email; derive a stable one from the
		// billing document when the payer did not supply any.
		holder.Email = fmt.Sprintf("%s@%s", doc, platformEmailDomain)
	}

	input := entities.PaymentInput{
		CustomerID:        customerID,
		BillingType:       entities.BillingTypeCreditCard,
		Value:             entities.Round(in.Value),
		DueDate:           dueDateTomorrow(),
		Description:       in.Description,
		ExternalReference: in.UserID,
		CreditCard:        &in.Card,
		HolderInfo:        &holder,
	}
	if in.InstallmentCount > 1 {
		input.InstallmentCount = in.InstallmentCount
		input.InstallmentValue = entities.Round(in.Value / float64(in.InstallmentCount))
	}

	payment, err := u.gateway.CreatePayment(ctx, input)
	if err != nil {
		log.Printf("[checkout][usecase] card create failed user_id=%s err=%v", in.UserID, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "payment creation failed")
		return CheckoutResult{}, err
	}
	payment.BillingType = entities.BillingTypeCreditCard
	log.Printf("[checkout][usecase] card create success user_id=%s payment_id=%s status=%s", in.UserID, payment.ID, payment.Status)

	u.recordPayment(ctx, in.UserID, payment)

	return CheckoutResult{Payment: payment}, nil
}

func (u *CheckoutUseCase) CheckStatus(ctx context.Context, paymentID string) (PaymentStatusResult, error) {
	ctx, span := otel.Tracer("checkout-usecase").Start(ctx, "CheckStatus")
	defer span.End()

	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return PaymentStatusResult{}, ErrInvalidPaymentID
	}
	if u.gateway == nil {
		return PaymentStatusResult{}, errors.New("payment gateway not configured")
	}

	p, err := u.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		log.Printf("[checkout][usecase] status check failed payment_id=%s err=%v", paymentID, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "status check failed")
		return PaymentStatusResult{}, err
	}
	log.Printf("[checkout][usecase] status check success payment_id=%s status=%s", paymentID, p.Status)
	return PaymentStatusResult{Status: p.Status, ConfirmedDate: p.ConfirmedDate}, nil
}

// validate runs every local check before any network activity and returns the
// selected billing document.
func (u *CheckoutUseCase) validate(in CheckoutInput) (string, error) {
	if u.gateway == nil {
		return "", errors.New("payment gateway not configured")
	}
	doc := document.SelectBillingDocument(in.CompanyDocument, in.PersonalDocument)
	if doc == "" {
		return "", ErrInvalidDocument
	}
	if in.Value <= 0 {
		return "", ErrInvalidValue
	}
	return doc, nil
}

// resolveCustomer maps a tax document to a gateway customer id, creating the
// customer when none exists. Two near-simultaneous calls for the same document
// can both miss the lookup and create duplicate gateway customers; that race
// is accepted since the gateway is the source of truth and offers no
// idempotency key for customer creation.
func (u *CheckoutUseCase) resolveCustomer(ctx context.Context, in entities.CustomerInput) (string, error) {
	id, err := u.gateway.FindCustomerByDocument(ctx, in.CpfCnpj)
	if err != nil {
		log.Printf("[checkout][usecase] customer lookup failed err=%v", err)
		return "", err
	}
	if id != "" {
		log.Printf("[checkout][usecase] customer found customer_id=%s", id)
		return id, nil
	}

	id, err = u.gateway.CreateCustomer(ctx, in)
	if err != nil {
		log.Printf("[checkout][usecase] customer create failed err=%v", err)
		return "", err
	}
	log.Printf("[checkout][usecase] customer created customer_id=%s", id)
	return id, nil
}

// recordPayment writes the audit record. Best effort: the payment already
// exists at the gateway, so a storage failure logs and never fails checkout.
func (u *CheckoutUseCase) recordPayment(ctx context.Context, userID string, p entities.Payment) {
	if u.records == nil {
		return
	}
	rec := entities.PaymentRecord{
		ID:          uuid.New().String(),
		PaymentID:   p.ID,
		UserID:      userID,
		BillingType: p.BillingType,
		Value:       p.Value,
		Status:      p.Status,
		CreatedAt:   time.Now().UTC(),

		ProviderResponseRaw: p.Raw,
	}
	if _, err := u.records.Create(ctx, rec); err != nil {
		log.Printf("[checkout][usecase] payment record write failed payment_id=%s err=%v", p.ID, err)
	}
}

// dueDateTomorrow is creation time + 1 day, date-only, as the gateway expects.
func dueDateTomorrow() string {
	return time.Now().UTC().Add(24 * time.Hour).Format("2006-01-02")
}
