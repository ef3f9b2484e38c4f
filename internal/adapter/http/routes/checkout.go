package routes

import (
	"agendaexames_billing/internal/adapter/http/handlers"
	"agendaexames_billing/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathCheckout = "/checkout"
	PathPlans    = "/plans"
	PathPayments = "/payments"
)

func addCheckoutRoutes(rg *gin.RouterGroup, authSecret []byte, checkoutHandler *handlers.CheckoutHandler, planHandler *handlers.PlanHandler, recordHandler *handlers.PaymentRecordHandler) {
	// Plan catalog is public; everything that touches the gateway or the
	// audit trail requires a signed token.
	plans := rg.Group(PathPlans)
	{
		plans.GET("", planHandler.List)
		plans.GET("/:id", planHandler.Get)
	}

	checkout := rg.Group(PathCheckout)
	checkout.Use(middleware.RequireAuth(authSecret))
	{
		checkout.POST("", checkoutHandler.Checkout)
	}

	payments := rg.Group(PathPayments)
	payments.Use(middleware.RequireAuth(authSecret))
	{
		payments.GET("/:id/records", recordHandler.ListByPayment)
	}
}
