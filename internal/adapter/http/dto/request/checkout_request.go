package request

import (
	"encoding/json"
	"errors"
	"strings"

	"agendaexames_billing/internal/domain/document"
)

// Checkout actions. The envelope is a closed tagged union: exactly one request
// type per action, decoded and validated before dispatch. Unknown tags are
// rejected up front.
const (
	ActionCreatePix        = "create-pix"
	ActionCreateCreditCard = "create-credit-card"
	ActionCheckStatus      = "check-status"
)

var (
	ErrUnknownAction      = errors.New("invalid action")
	ErrInvalidPayload     = errors.New("invalid checkout payload")
	ErrMissingName        = errors.New("missing name")
	ErrMissingDocument    = errors.New("missing cpfCnpj")
	ErrInvalidAmount      = errors.New("invalid value")
	ErrMissingCreditCard  = errors.New("missing creditCard block")
	ErrMissingHolderInfo  = errors.New("missing holderInfo block")
	ErrMissingPaymentID   = errors.New("missing paymentId")
	ErrMissingHolderEmail = errors.New("missing email")
)

// CheckoutEnvelope carries only the action tag; the remaining fields are
// decoded by the per-action request types below from the same body.
type CheckoutEnvelope struct {
	Action string `json:"action"`
}

// DecodeAction reads the action tag from a raw checkout body.
func DecodeAction(raw []byte) (string, error) {
	var env CheckoutEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", ErrInvalidPayload
	}
	action := strings.TrimSpace(env.Action)
	switch action {
	case ActionCreatePix, ActionCreateCreditCard, ActionCheckStatus:
		return action, nil
	default:
		return "", ErrUnknownAction
	}
}

type CreatePixRequest struct {
	Action      string  `json:"action"`
	Name        string  `json:"name"`
	CpfCnpj     string  `json:"cpfCnpj"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Value       float64 `json:"value"`
	Description string  `json:"description"`
}

func (r CreatePixRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	if document.Normalize(r.CpfCnpj) == "" {
		return ErrMissingDocument
	}
	if r.Value <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ResolveDocuments splits the submitted document into the company/personal
// candidates expected by the billing-document selection: 14 digits is a
// company document, anything else is treated as personal.
func (r CreatePixRequest) ResolveDocuments() (cnpj, cpf string) {
	return splitDocument(r.CpfCnpj)
}

type CreditCardRequest struct {
	Number      string `json:"number"`
	HolderName  string `json:"holderName"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	Ccv         string `json:"ccv"`
}

type HolderInfoRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	CpfCnpj       string `json:"cpfCnpj"`
	PostalCode    string `json:"postalCode"`
	AddressNumber string `json:"addressNumber"`
	Phone         string `json:"phone"`
}

type CreateCreditCardRequest struct {
	Action           string             `json:"action"`
	Name             string             `json:"name"`
	CpfCnpj          string             `json:"cpfCnpj"`
	Email            string             `json:"email"`
	Phone            string             `json:"phone"`
	Value            float64            `json:"value"`
	Description      string             `json:"description"`
	InstallmentCount int                `json:"installmentCount"`
	CreditCard       *CreditCardRequest `json:"creditCard"`
	HolderInfo       *HolderInfoRequest `json:"holderInfo"`
}

func (r CreateCreditCardRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	if document.Normalize(r.CpfCnpj) == "" {
		return ErrMissingDocument
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrMissingHolderEmail
	}
	if r.Value <= 0 {
		return ErrInvalidAmount
	}
	if r.CreditCard == nil {
		return ErrMissingCreditCard
	}
	if r.HolderInfo == nil {
		return ErrMissingHolderInfo
	}
	return nil
}

func (r CreateCreditCardRequest) ResolveDocuments() (cnpj, cpf string) {
	return splitDocument(r.CpfCnpj)
}

type CheckStatusRequest struct {
	Action    string `json:"action"`
	PaymentID string `json:"paymentId"`
}

func (r CheckStatusRequest) Validate() error {
	if strings.TrimSpace(r.PaymentID) == "" {
		return ErrMissingPaymentID
	}
	return nil
}

func splitDocument(s string) (cnpj, cpf string) {
	d := document.Normalize(s)
	if len(d) == 14 {
		return d, ""
	}
	return "", d
}
