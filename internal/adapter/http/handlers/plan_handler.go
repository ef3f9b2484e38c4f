package handlers

import (
	"net/http"

	"agendaexames_billing/internal/adapter/http/dto/response"
	"agendaexames_billing/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

// PlanHandler serves the static subscription plan catalog.
type PlanHandler struct{}

func NewPlanHandler() *PlanHandler {
	return &PlanHandler{}
}

// List handles GET /v1/plans.
func (h *PlanHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromPlans(entities.Plans()))
}

// Get handles GET /v1/plans/:id.
func (h *PlanHandler) Get(c *gin.Context) {
	plan, ok := entities.PlanByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}
	c.JSON(http.StatusOK, response.FromPlan(plan))
}
