package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"agendaexames_billing/internal/adapter/http/handlers/mocks"
	"agendaexames_billing/internal/domain/entities"
	"agendaexames_billing/internal/usecase"
	"agendaexames_billing/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newCheckoutRouter(uc usecase.ICheckoutUseCase) *gin.Engine {
	r := gin.New()
	h := NewCheckoutHandler(uc)
	r.POST("/v1/checkout", h.Checkout)
	return r
}

func postCheckout(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/checkout", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckoutHandler_ActionDispatch(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unknown action", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		w := postCheckout(newCheckoutRouter(uc), `{"action":"refund"}`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if w.Body.String() != `{"error":"Invalid action"}` {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("missing action", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		w := postCheckout(newCheckoutRouter(uc), `{"name":"Ana"}`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if w.Body.String() != `{"error":"Invalid action"}` {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		w := postCheckout(newCheckoutRouter(uc), `{`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		w := postCheckout(newCheckoutRouter(uc), "")

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestCheckoutHandler_CreatePix(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("validation failure does not reach usecase", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		w := postCheckout(newCheckoutRouter(uc), `{"action":"create-pix","name":"Ana","cpfCnpj":"","value":429}`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success with qr code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		uc.EXPECT().CreatePixPayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, in usecase.CheckoutInput) (usecase.CheckoutResult, error) {
				if in.PersonalDocument != "52998224725" {
					t.Fatalf("unexpected personal document: %q", in.PersonalDocument)
				}
				if in.CompanyDocument != "" {
					t.Fatalf("unexpected company document: %q", in.CompanyDocument)
				}
				return usecase.CheckoutResult{
					Payment: entities.Payment{ID: "pay_1", Value: 429, Status: "PENDING", InvoiceURL: "https://inv/1", DueDate: "2026-08-31"},
					Pix:     &entities.PixQRCode{EncodedImage: "img==", Payload: "00020126...", ExpirationDate: "2026-08-31 23:59:59"},
				}, nil
			})

		w := postCheckout(newCheckoutRouter(uc), `{"action":"create-pix","name":"Ana","cpfCnpj":"529.982.247-25","email":"ana@test.com","value":429}`)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		payment, _ := body["payment"].(map[string]any)
		if payment["id"] != "pay_1" || payment["dueDate"] != "2026-08-31" {
			t.Fatalf("unexpected payment block: %s", w.Body.String())
		}
		pix, _ := body["pix"].(map[string]any)
		if pix["qrCodePayload"] != "00020126..." {
			t.Fatalf("unexpected pix block: %s", w.Body.String())
		}
	})

	t.Run("degraded qr code yields null pix", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		uc.EXPECT().CreatePixPayment(gomock.Any(), gomock.Any()).Return(usecase.CheckoutResult{
			Payment: entities.Payment{ID: "pay_2", Value: 429, Status: "PENDING"},
		}, nil)

		w := postCheckout(newCheckoutRouter(uc), `{"action":"create-pix","name":"Ana","cpfCnpj":"52998224725","value":429}`)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if pix, ok := body["pix"]; !ok || pix != nil {
			t.Fatalf("expected explicit null pix, got body: %s", w.Body.String())
		}
	})

	t.Run("invalid document maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		uc.EXPECT().CreatePixPayment(gomock.Any(), gomock.Any()).Return(usecase.CheckoutResult{}, usecase.ErrInvalidDocument)

		w := postCheckout(newCheckoutRouter(uc), `{"action":"create-pix","name":"Ana","cpfCnpj":"11111111111","value":429}`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("gateway rejection maps to 500 with raw message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		gwErr := &interfaces.GatewayError{StatusCode: 400, Body: `{"errors":[{"code":"invalid_value"}]}`}
		uc.EXPECT().CreatePixPayment(gomock.Any(), gomock.Any()).Return(usecase.CheckoutResult{}, gwErr)

		w := postCheckout(newCheckoutRouter(uc), `{"action":"create-pix","name":"Ana","cpfCnpj":"52998224725","value":429}`)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		msg, _ := body["error"].(string)
		if msg == "" || !bytes.Contains([]byte(msg), []byte("invalid_value")) {
			t.Fatalf("expected gateway body in error message, got: %s", w.Body.String())
		}
	})
}

func TestCheckoutHandler_CreateCreditCard(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const cardBody = `{
		"action":"create-credit-card",
		"name":"Clinica Litoral",
		"cpfCnpj":"11.444.777/0001-61",
		"email":"contato@clinica.com",
		"value":719,
		"installmentCount":12,
		"creditCard":{"number":"5162306219378829","holderName":"ANA SILVA","expiryMonth":"05","expiryYear":"2030","ccv":"318"},
		"holderInfo":{"name":"Ana Silva","email":"ana@clinica.com","cpfCnpj":"52998224725","postalCode":"11010-000","addressNumber":"100"}
	}`

	t.Run("success forwards card and company document", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		uc.EXPECT().CreateCardPayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, in usecase.CardCheckoutInput) (usecase.CheckoutResult, error) {
				if in.CompanyDocument != "11444777000161" {
					t.Fatalf("unexpected company document: %q", in.CompanyDocument)
				}
				if in.Card.Number != "5162306219378829" || in.Card.CCV != "318" {
					t.Fatalf("unexpected card: %+v", in.Card)
				}
				if in.HolderInfo.Email != "ana@clinica.com" {
					t.Fatalf("unexpected holder info: %+v", in.HolderInfo)
				}
				if in.InstallmentCount != 12 {
					t.Fatalf("unexpected installment count: %d", in.InstallmentCount)
				}
				return usecase.CheckoutResult{
					Payment: entities.Payment{ID: "pay_3", Value: 719, Status: "CONFIRMED", InvoiceURL: "https://inv/3"},
				}, nil
			})

		w := postCheckout(newCheckoutRouter(uc), cardBody)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["success"] != true {
			t.Fatalf("expected success, got body: %s", w.Body.String())
		}
		payment, _ := body["payment"].(map[string]any)
		if payment["status"] != "CONFIRMED" {
			t.Fatalf("unexpected payment block: %s", w.Body.String())
		}
		if _, ok := body["pix"]; ok {
			t.Fatalf("card response must not carry a pix block: %s", w.Body.String())
		}
	})

	t.Run("missing creditCard block", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		w := postCheckout(newCheckoutRouter(uc), `{"action":"create-credit-card","name":"Ana","cpfCnpj":"52998224725","email":"a@b.com","value":719}`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing card details map to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		uc.EXPECT().CreateCardPayment(gomock.Any(), gomock.Any()).Return(usecase.CheckoutResult{}, usecase.ErrMissingCardDetails)

		w := postCheckout(newCheckoutRouter(uc), cardBody)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestCheckoutHandler_CheckStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing payment id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		w := postCheckout(newCheckoutRouter(uc), `{"action":"check-status"}`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success passes status through verbatim", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		uc.EXPECT().CheckStatus(gomock.Any(), "pay_1").Return(usecase.PaymentStatusResult{Status: "RECEIVED", ConfirmedDate: "2026-08-30"}, nil)

		w := postCheckout(newCheckoutRouter(uc), `{"action":"check-status","paymentId":"pay_1"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["status"] != "RECEIVED" || body["confirmedDate"] != "2026-08-30" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("gateway failure maps to 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		gwErr := &interfaces.GatewayError{StatusCode: 404, Body: `{"errors":[{"code":"invalid_object"}]}`}
		uc.EXPECT().CheckStatus(gomock.Any(), "pay_x").Return(usecase.PaymentStatusResult{}, gwErr)

		w := postCheckout(newCheckoutRouter(uc), `{"action":"check-status","paymentId":"pay_x"}`)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestMapCheckoutError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{usecase.ErrInvalidDocument, http.StatusBadRequest},
		{usecase.ErrInvalidValue, http.StatusBadRequest},
		{usecase.ErrInvalidPaymentID, http.StatusBadRequest},
		{usecase.ErrMissingCardDetails, http.StatusBadRequest},
		{&interfaces.GatewayError{StatusCode: 402, Body: "denied"}, http.StatusInternalServerError},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		got := mapCheckoutError(tc.err)
		if got.HTTPStatus != tc.code {
			t.Fatalf("for err %v expected %d got %d", tc.err, tc.code, got.HTTPStatus)
		}
	}
}
