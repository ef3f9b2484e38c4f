package entities

import "encoding/json"

// BillingType is the gateway payment method tag.
type BillingType string

const (
	BillingTypePix        BillingType = "PIX"
	BillingTypeCreditCard BillingType = "CREDIT_CARD"
)

// Payment mirrors a gateway payment. The gateway is the system of record:
// Status carries the gateway's own vocabulary (PENDING/RECEIVED/CONFIRMED/...)
// verbatim, with no local enum mapping.
type Payment struct {
	ID                string      `json:"id"`
	Value             float64     `json:"value"`
	Status            string      `json:"status"`
	BillingType       BillingType `json:"billing_type"`
	InvoiceURL        string      `json:"invoice_url,omitempty"`
	DueDate           string      `json:"due_date,omitempty"`
	ConfirmedDate     string      `json:"confirmed_date,omitempty"`
	ExternalReference string      `json:"external_reference,omitempty"`

	// Raw is the gateway's creation response body, kept for the audit record.
	Raw json.RawMessage `json:"-"`
}

// PixQRCode is the scannable block of a PIX payment: a base64 image, the
// copy-paste payload string and its expiry timestamp.
type PixQRCode struct {
	EncodedImage   string `json:"encoded_image"`
	Payload        string `json:"payload"`
	ExpirationDate string `json:"expiration_date"`
}

// CreditCard holds card fields forwarded once to the gateway. Never persisted.
type CreditCard struct {
	HolderName  string
	Number      string
	ExpiryMonth string
	ExpiryYear  string
	CCV         string
}

// CreditCardHolderInfo is the billing-address block the gateway requires for
// card anti-fraud checks.
type CreditCardHolderInfo struct {
	Name          string
	Email         string
	CpfCnpj       string
	PostalCode    string
	AddressNumber string
	Phone         string
}

// CustomerInput is the tuple used to find-or-create a gateway billing customer.
type CustomerInput struct {
	Name    string
	CpfCnpj string
	Email   string
	Phone   string
}

// PaymentInput is the payment-creation command sent to the gateway.
type PaymentInput struct {
	CustomerID        string
	BillingType       BillingType
	Value             float64
	DueDate           string
	Description       string
	ExternalReference string

	// Card-only fields.
	InstallmentCount int
	InstallmentValue float64
	CreditCard       *CreditCard
	HolderInfo       *CreditCardHolderInfo
}
