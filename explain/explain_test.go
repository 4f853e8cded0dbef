package explain

import (
	"testing"

	"github.com/rushteam/carmatch/core"
)

func TestExplain(t *testing.T) {
	novice := &core.Preferences{Budget: 20000, Experience: core.ExperienceNovice, UseCase: core.UseCaseCity, FuelEconomyPriority: true}
	tests := []struct {
		name  string
		car   core.Car
		prefs *core.Preferences
		want  string
	}{
		{
			name:  "ratio exactly fifty",
			car:   core.Car{Price: 10000, HorsePower: 90, FuelConsumption: 5.0, Compact: true},
			prefs: novice,
			want:  "good value within budget, excellent fuel economy, perfect for new drivers, compact size ideal for city driving",
		},
		{
			name:  "cheap",
			car:   core.Car{Price: 9999, HorsePower: 130, FuelConsumption: 6.5, Compact: false},
			prefs: novice,
			want:  "excellent value for money, good fuel efficiency",
		},
		{
			name:  "expert highway brand",
			car:   core.Car{Brand: "Acme", Price: 19000, HorsePower: 250, FuelConsumption: 9.0},
			prefs: &core.Preferences{Budget: 20000, Experience: core.ExperienceExpert, UseCase: core.UseCaseHighway, BrandPreferences: []string{"Acme"}},
			want:  "fits your budget, powerful engine for experienced drivers, strong performance for highway driving, matches your preferred brand",
		},
		{
			name:  "eighty percent",
			car:   core.Car{Price: 16000, HorsePower: 160, FuelConsumption: 12},
			prefs: &core.Preferences{Budget: 20000, Experience: core.ExperienceIntermediate, UseCase: core.UseCaseOffroad},
			want:  "fits your budget",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Explain(tt.car, tt.prefs); got != tt.want {
				t.Errorf("Explain() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExplainer_Fallback(t *testing.T) {
	e := &Explainer{Rules: []Rule{{Name: "never", Phrase: func(core.Car, *core.Preferences) (string, bool) { return "", false }}}}
	prefs := &core.Preferences{Budget: 1, Experience: core.ExperienceExpert, UseCase: core.UseCaseMixed}
	if got := e.Explain(core.Car{}, prefs); got != Fallback {
		t.Errorf("Explain() = %q, want fallback", got)
	}
	if got := Explain(core.Car{}, nil); got != Fallback {
		t.Errorf("Explain(nil prefs) = %q, want fallback", got)
	}
}

func TestExplainer_CustomRule(t *testing.T) {
	e := New()
	e.Rules = append(e.Rules, Rule{Name: "awd", Phrase: func(car core.Car, _ *core.Preferences) (string, bool) {
		return "all-wheel drive", car.DrivetrainType == "AWD"
	}})
	prefs := &core.Preferences{Budget: 20000, Experience: core.ExperienceIntermediate, UseCase: core.UseCaseMixed}
	got := e.Explain(core.Car{Price: 18000, FuelConsumption: 10, DrivetrainType: "AWD"}, prefs)
	if want := "fits your budget, all-wheel drive"; got != want {
		t.Errorf("Explain() = %q, want %q", got, want)
	}
}
