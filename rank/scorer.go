// Package rank 负责打分与排序：四个相互独立的子分数累加成总分，
// 再按分数降序、库存顺序、车辆 ID 排序。
package rank

import (
	"fmt"
	"math"

	"github.com/rushteam/carmatch/core"
)

// 各子分数的满分。
const (
	MaxPriceEfficiency  = 40.0
	MaxFuelEconomy      = 30.0
	MaxFuelEconomyLight = 15.0
	MaxExperienceFit    = 20.0
	MaxUseCaseFit       = 10.0
)

// SubScoreFunc 是一个子分数：纯函数，同样的输入总是得到同样的分数。
type SubScoreFunc func(car core.Car, prefs *core.Preferences) (float64, error)

// SubScore 是子分数表中的一项。
type SubScore struct {
	Name string
	Fn   SubScoreFunc
}

// PriceEfficiency 价格相对预算越低分数越高，满分 40。
func PriceEfficiency(car core.Car, prefs *core.Preferences) (float64, error) {
	return (1 - car.Price/prefs.Budget) * MaxPriceEfficiency, nil
}

// FuelEconomy 关注油耗时以 10 L/100km 为零分线、满分 30；否则以 15 为零分线、满分 15。
func FuelEconomy(car core.Car, prefs *core.Preferences) (float64, error) {
	if prefs.FuelEconomyPriority {
		return math.Max(0, (10-car.FuelConsumption)/10*MaxFuelEconomy), nil
	}
	return math.Max(0, (15-car.FuelConsumption)/15*MaxFuelEconomyLight), nil
}

// ExperienceFit 马力与驾驶经验的匹配度，满分 20。
func ExperienceFit(car core.Car, prefs *core.Preferences) (float64, error) {
	hp := car.HorsePower
	switch prefs.Experience {
	case core.ExperienceNovice:
		switch {
		case hp <= 100:
			return 20, nil
		case hp <= 150:
			return 10, nil
		}
		return 0, nil
	case core.ExperienceIntermediate:
		if hp >= 100 && hp <= 250 {
			return 20, nil
		}
		return 10, nil
	case core.ExperienceExpert:
		switch {
		case hp >= 200:
			return 20, nil
		case hp >= 150:
			return 15, nil
		}
		return 5, nil
	}
	return 0, unknownValue("experience", string(prefs.Experience))
}

// UseCaseFit 车辆与用车场景的匹配度，满分 10。
func UseCaseFit(car core.Car, prefs *core.Preferences) (float64, error) {
	switch prefs.UseCase {
	case core.UseCaseCity:
		if car.Compact {
			return MaxUseCaseFit, nil
		}
		return 0, nil
	case core.UseCaseHighway:
		if car.HorsePower >= 150 {
			return MaxUseCaseFit, nil
		}
		return 0, nil
	case core.UseCaseMixed:
		return 5, nil
	case core.UseCaseOffroad:
		return 0, nil
	}
	return 0, unknownValue("use case", string(prefs.UseCase))
}

func unknownValue(field, value string) error {
	return core.NewDomainError(core.ModuleRank, core.ErrorCodeInvalidInput,
		fmt.Sprintf("rank: unrecognized %s %q", field, value))
}

// DefaultSubScores 返回默认子分数表。
func DefaultSubScores() []SubScore {
	return []SubScore{
		{Name: "price", Fn: PriceEfficiency},
		{Name: "fuel", Fn: FuelEconomy},
		{Name: "experience", Fn: ExperienceFit},
		{Name: "use_case", Fn: UseCaseFit},
	}
}

// Scorer 按顺序累加子分数，总分最低为 0。
type Scorer struct {
	SubScores []SubScore
}

// NewScorer 返回使用默认子分数表的 Scorer。
func NewScorer() *Scorer {
	return &Scorer{SubScores: DefaultSubScores()}
}

// Breakdown 返回总分与各子分数（与 SubScores 同序）。
func (s *Scorer) Breakdown(car core.Car, prefs *core.Preferences) (float64, []float64, error) {
	if prefs == nil {
		return 0, nil, core.NewDomainError(core.ModuleRank, core.ErrorCodeInvalidInput, "rank: nil preferences")
	}
	if prefs.Budget <= 0 {
		return 0, nil, core.NewDomainError(core.ModuleRank, core.ErrorCodeInvalidInput,
			fmt.Sprintf("rank: budget must be greater than 0, got %v", prefs.Budget))
	}

	parts := make([]float64, len(s.SubScores))
	total := 0.0
	for i, sub := range s.SubScores {
		v, err := sub.Fn(car, prefs)
		if err != nil {
			return 0, nil, err
		}
		parts[i] = v
		total += v
	}
	return math.Max(0, total), parts, nil
}

// Score 返回总分。
func (s *Scorer) Score(car core.Car, prefs *core.Preferences) (float64, error) {
	total, _, err := s.Breakdown(car, prefs)
	return total, err
}

var defaultScorer = NewScorer()

// Score 使用默认子分数表为单辆车打分。
func Score(car core.Car, prefs core.Preferences) (float64, error) {
	return defaultScorer.Score(car, &prefs)
}
