package explain

import "github.com/rushteam/carmatch/core"

func budgetPhrase(car core.Car, prefs *core.Preferences) (string, bool) {
	if prefs.Budget <= 0 {
		return "", false
	}
	ratio := car.Price / prefs.Budget * 100
	switch {
	case ratio < 50:
		return "excellent value for money", true
	case ratio < 80:
		return "good value within budget", true
	default:
		return "fits your budget", true
	}
}

func fuelPhrase(car core.Car, prefs *core.Preferences) (string, bool) {
	switch {
	case prefs.FuelEconomyPriority && car.FuelConsumption <= 6.0:
		return "excellent fuel economy", true
	case car.FuelConsumption <= 8.0:
		return "good fuel efficiency", true
	}
	return "", false
}

func experiencePhrase(car core.Car, prefs *core.Preferences) (string, bool) {
	switch {
	case prefs.Experience == core.ExperienceNovice && car.HorsePower <= 120:
		return "perfect for new drivers", true
	case prefs.Experience == core.ExperienceExpert && car.HorsePower >= 200:
		return "powerful engine for experienced drivers", true
	}
	return "", false
}

func useCasePhrase(car core.Car, prefs *core.Preferences) (string, bool) {
	switch {
	case prefs.UseCase == core.UseCaseCity && car.Compact:
		return "compact size ideal for city driving", true
	case prefs.UseCase == core.UseCaseHighway && car.HorsePower >= 150:
		return "strong performance for highway driving", true
	}
	return "", false
}

func brandPhrase(car core.Car, prefs *core.Preferences) (string, bool) {
	if prefs.HasBrand(car.Brand) {
		return "matches your preferred brand", true
	}
	return "", false
}
