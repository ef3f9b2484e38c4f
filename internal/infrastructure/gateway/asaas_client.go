package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"agendaexames_billing/internal/domain/entities"
	"agendaexames_billing/internal/usecase/interfaces"

	"github.com/go-resty/resty/v2"
)

const (
	ProductionBaseURL = "https://api.asaas.com/v3"
	SandboxBaseURL    = "https://sandbox.asaas.com/api/v3"

	requestTimeout = 30 * time.Second
)

var ErrMissingAsaasAPIKey = errors.New("missing ASAAS_API_KEY")

// AsaasClient talks to the Asaas REST API. Each call is attempted exactly
// once; non-2xx responses become *interfaces.GatewayError carrying the HTTP
// status and the raw response body.
type AsaasClient struct {
	http *resty.Client
}

var _ interfaces.IPaymentGateway = (*AsaasClient)(nil)

// NewAsaasClient builds a gateway client for the given credential. The API key
// is injected here, never read from ambient state, so tests can run against a
// mock credential and a local server.
func NewAsaasClient(apiKey, baseURL string) (*AsaasClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		log.Printf("[gateway][asaas] missing ASAAS_API_KEY")
		return nil, ErrMissingAsaasAPIKey
	}
	if baseURL == "" {
		baseURL = ProductionBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("access_token", apiKey)

	log.Printf("[gateway][asaas] client initialized base_url=%s", baseURL)
	return &AsaasClient{http: client}, nil
}

// Wire types. Field tags follow the Asaas v3 contract.

type asaasCustomer struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	CpfCnpj string `json:"cpfCnpj,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

type asaasCustomerList struct {
	Data []asaasCustomer `json:"data"`
}

type asaasCreditCard struct {
	HolderName  string `json:"holderName"`
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	Ccv         string `json:"ccv"`
}

type asaasCreditCardHolderInfo struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	CpfCnpj       string `json:"cpfCnpj"`
	PostalCode    string `json:"postalCode"`
	AddressNumber string `json:"addressNumber"`
	Phone         string `json:"phone"`
}

type asaasPaymentRequest struct {
	Customer          string  `json:"customer"`
	BillingType       string  `json:"billingType"`
	Value             float64 `json:"value"`
	DueDate           string  `json:"dueDate"`
	Description       string  `json:"description,omitempty"`
	ExternalReference string  `json:"externalReference,omitempty"`

	InstallmentCount     int                        `json:"installmentCount,omitempty"`
	InstallmentValue     float64                    `json:"installmentValue,omitempty"`
	CreditCard           *asaasCreditCard           `json:"creditCard,omitempty"`
	CreditCardHolderInfo *asaasCreditCardHolderInfo `json:"creditCardHolderInfo,omitempty"`
}

type asaasPaymentResponse struct {
	ID                string  `json:"id"`
	Status            string  `json:"status"`
	Value             float64 `json:"value"`
	InvoiceURL        string  `json:"invoiceUrl"`
	DueDate           string  `json:"dueDate"`
	ConfirmedDate     string  `json:"confirmedDate"`
	ExternalReference string  `json:"externalReference"`
}

type asaasPixQRCodeResponse struct {
	EncodedImage   string `json:"encodedImage"`
	Payload        string `json:"payload"`
	ExpirationDate string `json:"expirationDate"`
}

func (c *AsaasClient) FindCustomerByDocument(ctx context.Context, cpfCnpj string) (string, error) {
	var out asaasCustomerList
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("cpfCnpj", cpfCnpj).
		SetResult(&out).
		Get("/customers")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", gatewayError(resp)
	}
	if len(out.Data) == 0 {
		return "", nil
	}
	return out.Data[0].ID, nil
}

func (c *AsaasClient) CreateCustomer(ctx context.Context, in entities.CustomerInput) (string, error) {
	body := asaasCustomer{
		Name:    in.Name,
		CpfCnpj: in.CpfCnpj,
		Email:   in.Email,
		Phone:   in.Phone,
	}

	var out asaasCustomer
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post("/customers")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", gatewayError(resp)
	}
	log.Printf("[gateway][asaas] customer created customer_id=%s", out.ID)
	return out.ID, nil
}

func (c *AsaasClient) CreatePayment(ctx context.Context, in entities.PaymentInput) (entities.Payment, error) {
	body := asaasPaymentRequest{
		Customer:          in.CustomerID,
		BillingType:       string(in.BillingType),
		Value:             in.Value,
		DueDate:           in.DueDate,
		Description:       in.Description,
		ExternalReference: in.ExternalReference,
		InstallmentCount:  in.InstallmentCount,
		InstallmentValue:  in.InstallmentValue,
	}
	if in.CreditCard != nil {
		body.CreditCard = &asaasCreditCard{
			HolderName:  in.CreditCard.HolderName,
			Number:      in.CreditCard.Number,
			ExpiryMonth: in.CreditCard.ExpiryMonth,
			ExpiryYear:  in.CreditCard.ExpiryYear,
			Ccv:         in.CreditCard.CCV,
		}
	}
	if in.HolderInfo != nil {
		body.CreditCardHolderInfo = &asaasCreditCardHolderInfo{
			Name:          in.HolderInfo.Name,
			Email:         in.HolderInfo.Email,
			CpfCnpj:       in.HolderInfo.CpfCnpj,
			PostalCode:    in.HolderInfo.PostalCode,
			AddressNumber: in.HolderInfo.AddressNumber,
			Phone:         in.HolderInfo.Phone,
		}
	}

	var out asaasPaymentResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post("/payments")
	if err != nil {
		return entities.Payment{}, err
	}
	if resp.IsError() {
		return entities.Payment{}, gatewayError(resp)
	}
	log.Printf("[gateway][asaas] payment created payment_id=%s status=%s", out.ID, out.Status)

	return entities.Payment{
		ID:                out.ID,
		Value:             out.Value,
		Status:            out.Status,
		BillingType:       in.BillingType,
		InvoiceURL:        out.InvoiceURL,
		DueDate:           out.DueDate,
		ConfirmedDate:     out.ConfirmedDate,
		ExternalReference: out.ExternalReference,
		Raw:               json.RawMessage(resp.Body()),
	}, nil
}

func (c *AsaasClient) GetPixQRCode(ctx context.Context, paymentID string) (entities.PixQRCode, error) {
	var out asaasPixQRCodeResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/payments/" + paymentID + "/pixQrCode")
	if err != nil {
		return entities.PixQRCode{}, err
	}
	if resp.IsError() {
		return entities.PixQRCode{}, gatewayError(resp)
	}
	return entities.PixQRCode{
		EncodedImage:   out.EncodedImage,
		Payload:        out.Payload,
		ExpirationDate: out.ExpirationDate,
	}, nil
}

func (c *AsaasClient) GetPayment(ctx context.Context, paymentID string) (entities.Payment, error) {
	var out asaasPaymentResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/payments/" + paymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	if resp.IsError() {
		return entities.Payment{}, gatewayError(resp)
	}
	return entities.Payment{
		ID:                out.ID,
		Value:             out.Value,
		Status:            out.Status,
		InvoiceURL:        out.InvoiceURL,
		DueDate:           out.DueDate,
		ConfirmedDate:     out.ConfirmedDate,
		ExternalReference: out.ExternalReference,
		Raw:               json.RawMessage(resp.Body()),
	}, nil
}

func gatewayError(resp *resty.Response) *interfaces.GatewayError {
	return &interfaces.GatewayError{
		StatusCode: resp.StatusCode(),
		Body:       strings.TrimSpace(string(resp.Body())),
	}
}
