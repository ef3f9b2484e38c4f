package handlers

import (
	"log"
	"net/http"

	"agendaexames_billing/internal/adapter/http/dto/response"
	"agendaexames_billing/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
)

// PaymentRecordHandler exposes the payment audit trail kept alongside the
// gateway.
type PaymentRecordHandler struct {
	records interfaces.IPaymentRecordRepository
}

func NewPaymentRecordHandler(records interfaces.IPaymentRecordRepository) *PaymentRecordHandler {
	return &PaymentRecordHandler{records: records}
}

// ListByPayment handles GET /v1/payments/:id/records.
func (h *PaymentRecordHandler) ListByPayment(c *gin.Context) {
	paymentID := c.Param("id")
	records, err := h.records.ListByPaymentID(c.Request.Context(), paymentID)
	if err != nil {
		log.Printf("[payment-record][handler] list failed payment_id=%s err=%v", paymentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payment records"})
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentRecords(records))
}
