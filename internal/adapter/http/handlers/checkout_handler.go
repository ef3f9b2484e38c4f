package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"agendaexames_billing/internal/adapter/http/dto/request"
	"agendaexames_billing/internal/adapter/http/dto/response"
	"agendaexames_billing/internal/adapter/http/middleware"
	"agendaexames_billing/internal/domain/entities"
	"agendaexames_billing/internal/usecase"
	"agendaexames_billing/internal/usecase/interfaces"
	"agendaexames_billing/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidAction  = pkg.NewDomainErrorSimple("INVALID_ACTION", "Invalid action", http.StatusBadRequest)
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

// CheckoutHandler is the single checkout entry point: it dispatches on the
// action tag of the request envelope and maps use-case errors to HTTP.
type CheckoutHandler struct {
	usecase usecase.ICheckoutUseCase
}

func NewCheckoutHandler(uc usecase.ICheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc}
}

// Checkout handles POST /v1/checkout.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	action, err := request.DecodeAction(raw)
	if err != nil {
		log.Printf("[checkout][handler] rejected action err=%v", err)
		if errors.Is(err, request.ErrUnknownAction) {
			c.JSON(errInvalidAction.HTTPStatus, errInvalidAction.ToHTTPError())
			return
		}
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	userID := middleware.GetUserID(c)
	log.Printf("[checkout][handler] dispatch action=%s user_id=%s", action, userID)

	switch action {
	case request.ActionCreatePix:
		h.createPix(c, raw, userID)
	case request.ActionCreateCreditCard:
		h.createCreditCard(c, raw, userID)
	case request.ActionCheckStatus:
		h.checkStatus(c, raw)
	}
}

func (h *CheckoutHandler) createPix(c *gin.Context, raw []byte, userID string) {
	var payload request.CreatePixRequest
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	if err := payload.Validate(); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	cnpj, cpf := payload.ResolveDocuments()
	res, err := h.usecase.CreatePixPayment(c.Request.Context(), usecase.CheckoutInput{
		UserID:           userID,
		Name:             payload.Name,
		CompanyDocument:  cnpj,
		PersonalDocument: cpf,
		Email:            payload.Email,
		Phone:            payload.Phone,
		Value:            payload.Value,
		Description:      payload.Description,
	})
	if err != nil {
		log.Printf("[checkout][handler] create-pix failed user_id=%s err=%v", userID, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] create-pix success user_id=%s payment_id=%s", userID, res.Payment.ID)

	c.JSON(http.StatusOK, response.FromPixCheckout(res))
}

func (h *CheckoutHandler) createCreditCard(c *gin.Context, raw []byte, userID string) {
	var payload request.CreateCreditCardRequest
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	if err := payload.Validate(); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	cnpj, cpf := payload.ResolveDocuments()
	res, err := h.usecase.CreateCardPayment(c.Request.Context(), usecase.CardCheckoutInput{
		CheckoutInput: usecase.CheckoutInput{
			UserID:           userID,
			Name:             payload.Name,
			CompanyDocument:  cnpj,
			PersonalDocument: cpf,
			Email:            payload.Email,
			Phone:            payload.Phone,
			Value:            payload.Value,
			Description:      payload.Description,
		},
		Card: entities.CreditCard{
			HolderName:  payload.CreditCard.HolderName,
			Number:      payload.CreditCard.Number,
			ExpiryMonth: payload.CreditCard.ExpiryMonth,
			ExpiryYear:  payload.CreditCard.ExpiryYear,
			CCV:         payload.CreditCard.Ccv,
		},
		HolderInfo: entities.CreditCardHolderInfo{
			Name:          payload.HolderInfo.Name,
			Email:         payload.HolderInfo.Email,
			CpfCnpj:       payload.HolderInfo.CpfCnpj,
			PostalCode:    payload.HolderInfo.PostalCode,
			AddressNumber: payload.HolderInfo.AddressNumber,
			Phone:         payload.HolderInfo.Phone,
		},
		InstallmentCount: payload.InstallmentCount,
	})
	if err != nil {
		log.Printf("[checkout][handler] create-credit-card failed user_id=%s err=%v", userID, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] create-credit-card success user_id=%s payment_id=%s", userID, res.Payment.ID)

	c.JSON(http.StatusOK, response.FromCardCheckout(res))
}

func (h *CheckoutHandler) checkStatus(c *gin.Context, raw []byte) {
	var payload request.CheckStatusRequest
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	if err := payload.Validate(); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	res, err := h.usecase.CheckStatus(c.Request.Context(), payload.PaymentID)
	if err != nil {
		log.Printf("[checkout][handler] check-status failed payment_id=%s err=%v", payload.PaymentID, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentStatus(res))
}

// mapCheckoutError translates use-case failures. Validation errors become 400;
// gateway rejections keep their full message (status + raw body) on a 500 so
// operators can diagnose against the gateway's documentation.
func mapCheckoutError(err error) *pkg.AppError {
	var gwErr *interfaces.GatewayError
	switch {
	case errors.Is(err, usecase.ErrInvalidDocument):
		return pkg.NewDomainErrorSimple("INVALID_DOCUMENT", "Invalid billing document", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidValue):
		return pkg.NewDomainErrorSimple("INVALID_VALUE", "Invalid payment value", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPaymentID):
		return pkg.NewDomainErrorSimple("INVALID_PAYMENT_ID", "Invalid payment id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingCardDetails):
		return pkg.NewDomainErrorSimple("INVALID_CARD", "Missing credit card details", http.StatusBadRequest)
	case errors.As(err, &gwErr):
		return pkg.NewDomainError("GATEWAY_ERROR", gwErr.Error(), err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", err.Error(), err, http.StatusInternalServerError)
	}
}
