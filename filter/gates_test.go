package filter

import (
	"context"
	"testing"

	"github.com/rushteam/carmatch/core"
)

func prefs(exp core.Experience, use core.UseCase, eco bool, brands ...string) *core.Preferences {
	return &core.Preferences{
		Budget:              20000,
		Experience:          exp,
		UseCase:             use,
		FuelEconomyPriority: eco,
		BrandPreferences:    brands,
	}
}

func TestWithinBudget(t *testing.T) {
	p := prefs(core.ExperienceExpert, core.UseCaseMixed, false)
	tests := []struct {
		price float64
		want  bool
	}{
		{0, true},
		{19999.99, true},
		{20000, true},
		{20000.01, false},
	}
	for _, tt := range tests {
		if got := WithinBudget(core.Car{Price: tt.price}, p); got != tt.want {
			t.Errorf("WithinBudget(price=%v) = %v, want %v", tt.price, got, tt.want)
		}
	}
}

func TestExperienceAllows(t *testing.T) {
	tests := []struct {
		exp  core.Experience
		hp   int
		want bool
	}{
		{core.ExperienceNovice, 150, true},
		{core.ExperienceNovice, 151, false},
		{core.ExperienceNovice, 200, false},
		{core.ExperienceIntermediate, 500, true},
		{core.ExperienceExpert, 500, true},
	}
	for _, tt := range tests {
		got, err := ExperienceAllows(core.Car{HorsePower: tt.hp}, prefs(tt.exp, core.UseCaseMixed, false))
		if err != nil {
			t.Fatalf("ExperienceAllows error = %v", err)
		}
		if got != tt.want {
			t.Errorf("ExperienceAllows(%s, hp=%d) = %v, want %v", tt.exp, tt.hp, got, tt.want)
		}
	}

	if _, err := ExperienceAllows(core.Car{}, prefs("pro", core.UseCaseMixed, false)); !core.IsInvalidInput(err) {
		t.Errorf("unknown experience error = %v, want INVALID_INPUT", err)
	}
}

func TestUseCaseAllows(t *testing.T) {
	tests := []struct {
		use     core.UseCase
		compact bool
		want    bool
	}{
		{core.UseCaseCity, true, true},
		{core.UseCaseCity, false, false},
		{core.UseCaseHighway, false, true},
		{core.UseCaseMixed, false, true},
		{core.UseCaseOffroad, false, true},
	}
	for _, tt := range tests {
		got, err := UseCaseAllows(core.Car{Compact: tt.compact}, prefs(core.ExperienceExpert, tt.use, false))
		if err != nil {
			t.Fatalf("UseCaseAllows error = %v", err)
		}
		if got != tt.want {
			t.Errorf("UseCaseAllows(%s, compact=%v) = %v, want %v", tt.use, tt.compact, got, tt.want)
		}
	}

	if _, err := UseCaseAllows(core.Car{}, prefs(core.ExperienceExpert, "track", false)); !core.IsInvalidInput(err) {
		t.Errorf("unknown use case error = %v, want INVALID_INPUT", err)
	}
}

func TestFuelEconomyAllows(t *testing.T) {
	tests := []struct {
		eco  bool
		cons float64
		want bool
	}{
		{true, 7.0, true},
		{true, 7.01, false},
		{true, 0, true},
		{false, 25, true},
	}
	for _, tt := range tests {
		if got := FuelEconomyAllows(core.Car{FuelConsumption: tt.cons}, prefs(core.ExperienceExpert, core.UseCaseMixed, tt.eco)); got != tt.want {
			t.Errorf("FuelEconomyAllows(eco=%v, %v) = %v, want %v", tt.eco, tt.cons, got, tt.want)
		}
	}
}

func TestBrandAllows(t *testing.T) {
	if !BrandAllows(core.Car{Brand: "Other"}, prefs(core.ExperienceExpert, core.UseCaseMixed, false)) {
		t.Errorf("empty brand set should be unrestricted")
	}
	p := prefs(core.ExperienceExpert, core.UseCaseMixed, false, "Acme")
	if !BrandAllows(core.Car{Brand: "Acme"}, p) {
		t.Errorf("matching brand rejected")
	}
	if BrandAllows(core.Car{Brand: "Other"}, p) {
		t.Errorf("non-matching brand accepted")
	}
}

func TestGate_ShouldFilter(t *testing.T) {
	ctx := context.Background()
	rctx := core.NewRecommendContext("r1", prefs(core.ExperienceNovice, core.UseCaseCity, true))

	drop, err := ExperienceGate().ShouldFilter(ctx, rctx, core.NewItem(core.Car{HorsePower: 200, Compact: true}, 0))
	if err != nil || !drop {
		t.Errorf("novice hp=200 should be dropped, got drop=%v err=%v", drop, err)
	}

	if _, err := BudgetGate().ShouldFilter(ctx, &core.RecommendContext{}, core.NewItem(core.Car{}, 0)); !core.IsInvalidInput(err) {
		t.Errorf("missing prefs error = %v, want INVALID_INPUT", err)
	}

	if drop, _ := BudgetGate().ShouldFilter(ctx, rctx, nil); !drop {
		t.Errorf("nil item should be dropped")
	}
}
