package response

import "agendaexames_billing/internal/domain/entities"

type PlanResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	PixPrice         float64 `json:"pixPrice"`
	MaxInstallments  int     `json:"maxInstallments"`
	InstallmentValue float64 `json:"installmentValue"`
}

func FromPlan(p entities.Plan) PlanResponse {
	return PlanResponse{
		ID:               p.ID,
		Name:             p.Name,
		Price:            p.Price,
		PixPrice:         p.PixPrice,
		MaxInstallments:  p.MaxInstallments,
		InstallmentValue: p.InstallmentValue(p.MaxInstallments),
	}
}

func FromPlans(plans []entities.Plan) []PlanResponse {
	out := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, FromPlan(p))
	}
	return out
}
