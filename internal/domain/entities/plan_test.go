package entities

import (
	"math"
	"testing"
)

func TestPlanCatalogInvariants(t *testing.T) {
	plans := Plans()
	if len(plans) == 0 {
		t.Fatal("expected a non-empty plan catalog")
	}
	for _, p := range plans {
		if p.PixPrice >= p.Price {
			t.Fatalf("plan %s: pix price %.2f must be below full price %.2f", p.ID, p.PixPrice, p.Price)
		}
		if p.MaxInstallments < 1 {
			t.Fatalf("plan %s: invalid max installments %d", p.ID, p.MaxInstallments)
		}
	}
}

func TestPlanInstallmentValue(t *testing.T) {
	p := Plan{ID: "essencial", Price: 479.00, MaxInstallments: 12}

	got := p.InstallmentValue(12)
	if got != 39.92 {
		t.Fatalf("expected 39.92, got %.2f", got)
	}

	total := got * 12
	if total < p.Price {
		t.Fatalf("installments must cover the full price: %.2f < %.2f", total, p.Price)
	}
	if total-p.Price >= 0.12 {
		t.Fatalf("rounding drift too large: %.4f", total-p.Price)
	}
}

func TestPlanInstallmentValueBounds(t *testing.T) {
	p := Plan{ID: "essencial", Price: 479.00, MaxInstallments: 12}

	if got := p.InstallmentValue(1); got != 479.00 {
		t.Fatalf("single installment must equal the price, got %.2f", got)
	}
	if got := p.InstallmentValue(0); got != 479.00 {
		t.Fatalf("non-positive count falls back to the price, got %.2f", got)
	}
	// Counts above the cap are clamped.
	if got := p.InstallmentValue(24); got != p.InstallmentValue(12) {
		t.Fatalf("expected clamp to max installments, got %.2f", got)
	}
}

func TestPlanByID(t *testing.T) {
	p, ok := PlanByID("essencial")
	if !ok || p.Name != "Essencial" {
		t.Fatalf("expected essencial plan, got %+v ok=%v", p, ok)
	}
	if _, ok := PlanByID("nope"); ok {
		t.Fatal("expected lookup miss")
	}
}

func TestRoundHelpers(t *testing.T) {
	if got := Round(39.91666); got != 39.92 {
		t.Fatalf("Round: expected 39.92, got %v", got)
	}
	if got := RoundUp(479.0 / 12.0); math.Abs(got-39.92) > 1e-9 {
		t.Fatalf("RoundUp: expected 39.92, got %v", got)
	}
	if got := RoundUp(10.001); got != 10.01 {
		t.Fatalf("RoundUp: expected 10.01, got %v", got)
	}
}
