package response

import (
	"agendaexames_billing/internal/domain/entities"
	"agendaexames_billing/internal/usecase"
)

type PaymentResponse struct {
	ID         string  `json:"id"`
	Value      float64 `json:"value"`
	Status     string  `json:"status"`
	InvoiceURL string  `json:"invoiceUrl"`
	DueDate    string  `json:"dueDate,omitempty"`
}

type PixResponse struct {
	QRCodeImage    string `json:"qrCodeImage"`
	QRCodePayload  string `json:"qrCodePayload"`
	ExpirationDate string `json:"expirationDate"`
}

// PixCheckoutResponse is the create-pix result. Pix is null when the QR
// follow-up fetch failed; the payment itself is still reported.
type PixCheckoutResponse struct {
	Success bool            `json:"success"`
	Payment PaymentResponse `json:"payment"`
	Pix     *PixResponse    `json:"pix"`
}

// CardCheckoutResponse is the create-credit-card result.
type CardCheckoutResponse struct {
	Success bool            `json:"success"`
	Payment PaymentResponse `json:"payment"`
}

// StatusResponse echoes the gateway status vocabulary verbatim.
type StatusResponse struct {
	Success       bool   `json:"success"`
	Status        string `json:"status"`
	ConfirmedDate string `json:"confirmedDate"`
}

func FromPixCheckout(res usecase.CheckoutResult) PixCheckoutResponse {
	out := PixCheckoutResponse{
		Success: true,
		Payment: fromPayment(res.Payment, true),
	}
	if res.Pix != nil {
		out.Pix = &PixResponse{
			QRCodeImage:    res.Pix.EncodedImage,
			QRCodePayload:  res.Pix.Payload,
			ExpirationDate: res.Pix.ExpirationDate,
		}
	}
	return out
}

func FromCardCheckout(res usecase.CheckoutResult) CardCheckoutResponse {
	return CardCheckoutResponse{
		Success: true,
		Payment: fromPayment(res.Payment, false),
	}
}

func FromPaymentStatus(res usecase.PaymentStatusResult) StatusResponse {
	return StatusResponse{
		Success:       true,
		Status:        res.Status,
		ConfirmedDate: res.ConfirmedDate,
	}
}

func fromPayment(p entities.Payment, withDueDate bool) PaymentResponse {
	out := PaymentResponse{
		ID:         p.ID,
		Value:      p.Value,
		Status:     p.Status,
		InvoiceURL: p.InvoiceURL,
	}
	if withDueDate {
		out.DueDate = p.DueDate
	}
	return out
}
