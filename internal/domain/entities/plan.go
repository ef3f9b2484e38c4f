package entities

// Plan is a subscription plan sold to partner clinics.
//
// Pricing model:
//   - Price is the full yearly price, payable on card in up to MaxInstallments.
//   - PixPrice is the discounted price for instant payment, always below Price.
type Plan struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	PixPrice        float64 `json:"pix_price"`
	MaxInstallments int     `json:"max_installments"`
}

// InstallmentValue is the per-installment charge for splitting Price in n
// parts, rounded up to the cent. The last-cent drift is absorbed by the
// gateway, so n * InstallmentValue(n) may exceed Price by less than n cents.
func (p Plan) InstallmentValue(n int) float64 {
	if n <= 1 {
		return Round(p.Price)
	}
	if n > p.MaxInstallments {
		n = p.MaxInstallments
	}
	return RoundUp(p.Price / float64(n))
}

var planCatalog = []Plan{
	{ID: "essencial", Name: "Essencial", Price: 479.00, PixPrice: 429.00, MaxInstallments: 12},
	{ID: "profissional", Name: "Profissional", Price: 719.00, PixPrice: 649.00, MaxInstallments: 12},
	{ID: "clinica", Name: "Clínica", Price: 1199.00, PixPrice: 1079.00, MaxInstallments: 12},
}

// Plans returns the fixed plan catalog.
func Plans() []Plan {
	out := make([]Plan, len(planCatalog))
	copy(out, planCatalog)
	return out
}

// PlanByID returns the catalog plan with the given id, if any.
func PlanByID(id string) (Plan, bool) {
	for _, p := range planCatalog {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
