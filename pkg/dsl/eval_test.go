package dsl

import (
	"testing"

	"github.com/rushteam/carmatch/core"
)

func TestProgram_Eval(t *testing.T) {
	car := core.Car{ID: 7, Brand: "Acme", Year: 2019, Price: 18000, HorsePower: 120, DrivetrainType: "AWD"}
	prefs := &core.Preferences{Budget: 20000, Experience: core.ExperienceNovice, UseCase: core.UseCaseOffroad, BrandPreferences: []string{"Acme"}}

	tests := []struct {
		expr string
		want bool
	}{
		{`car.year >= 2018`, true},
		{`car.year >= 2020`, false},
		{`car.price <= prefs.budget * 0.9`, true},
		{`car.price < 18000`, false},
		{`car.drivetrain_type == "AWD" || prefs.use_case != "offroad"`, true},
		{`car.brand in prefs.brand_preferences`, true},
		{`prefs.experience == "novice" && car.horse_power <= 150`, true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			prg, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			got, err := prg.Eval(car, prefs)
			if err != nil {
				t.Fatalf("Eval() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Eval(%s) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	for _, expr := range []string{`car.year >=`, `1 + 2`, `"text"`} {
		if _, err := Compile(expr); err == nil {
			t.Errorf("Compile(%q) expected error", expr)
		}
	}
}
