package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agendaexames_billing/internal/domain/entities"
	mock_interfaces "agendaexames_billing/internal/usecase/interfaces/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestPaymentRecordHandler_ListByPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRecordRepository(ctrl)
		h := NewPaymentRecordHandler(repo)

		r := gin.New()
		r.GET("/v1/payments/:id/records", h.ListByPayment)

		now := time.Now().UTC()
		repo.EXPECT().ListByPaymentID(gomock.Any(), "pay_1").Return([]entities.PaymentRecord{
			{ID: "rec-1", PaymentID: "pay_1", UserID: "user-7", BillingType: entities.BillingTypePix, Value: 429, Status: "PENDING", CreatedAt: now},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/pay_1/records", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 1 || body[0]["payment_id"] != "pay_1" || body[0]["billing_type"] != "PIX" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		if _, ok := body[0]["provider_response"]; ok {
			t.Fatalf("raw provider payload must not be exposed: %s", w.Body.String())
		}
	})

	t.Run("empty trail", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRecordRepository(ctrl)
		h := NewPaymentRecordHandler(repo)

		r := gin.New()
		r.GET("/v1/payments/:id/records", h.ListByPayment)

		repo.EXPECT().ListByPaymentID(gomock.Any(), "pay_none").Return([]entities.PaymentRecord{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/pay_none/records", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Body.String() != "[]" {
			t.Fatalf("expected empty array, got: %s", w.Body.String())
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRecordRepository(ctrl)
		h := NewPaymentRecordHandler(repo)

		r := gin.New()
		r.GET("/v1/payments/:id/records", h.ListByPayment)

		repo.EXPECT().ListByPaymentID(gomock.Any(), "pay_1").Return(nil, errors.New("dynamodb unavailable"))

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/pay_1/records", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
