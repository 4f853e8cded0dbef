package filter

import (
	"context"
	"fmt"

	"github.com/rushteam/carmatch/core"
)

const (
	// NoviceMaxHorsePower 是新手可接受的最大马力（含）。
	NoviceMaxHorsePower = 150
	// EconomyMaxConsumption 是关注油耗时可接受的最大油耗（升/百公里，含）。
	EconomyMaxConsumption = 7.0
)

// 每个门槛都有一个纯函数版本，便于边界测试；结构体版本把它接入 FilterNode。

// WithinBudget 价格不超过预算（相等通过）。
func WithinBudget(car core.Car, prefs *core.Preferences) bool {
	return car.Price <= prefs.Budget
}

// ExperienceAllows 新手只接受马力 <= 150 的车，其他经验等级不设硬门槛。
func ExperienceAllows(car core.Car, prefs *core.Preferences) (bool, error) {
	switch prefs.Experience {
	case core.ExperienceNovice:
		return car.HorsePower <= NoviceMaxHorsePower, nil
	case core.ExperienceIntermediate, core.ExperienceExpert:
		return true, nil
	default:
		return false, unknownValue("experience", string(prefs.Experience))
	}
}

// UseCaseAllows 城市通勤只接受紧凑型车，其他场景不设硬门槛。
func UseCaseAllows(car core.Car, prefs *core.Preferences) (bool, error) {
	switch prefs.UseCase {
	case core.UseCaseCity:
		return car.Compact, nil
	case core.UseCaseHighway, core.UseCaseMixed, core.UseCaseOffroad:
		return true, nil
	default:
		return false, unknownValue("use case", string(prefs.UseCase))
	}
}

// FuelEconomyAllows 关注油耗时只接受油耗 <= 7.0 的车。
func FuelEconomyAllows(car core.Car, prefs *core.Preferences) bool {
	if !prefs.FuelEconomyPriority {
		return true
	}
	return car.FuelConsumption <= EconomyMaxConsumption
}

// BrandAllows 品牌集合非空时要求品牌命中；空集合不限品牌。
func BrandAllows(car core.Car, prefs *core.Preferences) bool {
	if len(prefs.BrandPreferences) == 0 {
		return true
	}
	return prefs.HasBrand(car.Brand)
}

func unknownValue(field, value string) error {
	return core.NewDomainError(core.ModuleFilter, core.ErrorCodeInvalidInput,
		fmt.Sprintf("filter: unrecognized %s %q", field, value))
}

// gate 把纯函数门槛适配为 Filter。
type gate struct {
	name  string
	allow func(core.Car, *core.Preferences) (bool, error)
}

func (g *gate) Name() string { return g.name }

func (g *gate) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	if item == nil {
		return true, nil
	}
	prefs, err := rctx.RequirePrefs()
	if err != nil {
		return false, err
	}
	ok, err := g.allow(item.Car, prefs)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func infallible(fn func(core.Car, *core.Preferences) bool) func(core.Car, *core.Preferences) (bool, error) {
	return func(car core.Car, prefs *core.Preferences) (bool, error) {
		return fn(car, prefs), nil
	}
}

// BudgetGate 预算门槛。
func BudgetGate() Filter { return &gate{name: "filter.budget", allow: infallible(WithinBudget)} }

// ExperienceGate 驾驶经验门槛。
func ExperienceGate() Filter { return &gate{name: "filter.experience", allow: ExperienceAllows} }

// UseCaseGate 用车场景门槛。
func UseCaseGate() Filter { return &gate{name: "filter.use_case", allow: UseCaseAllows} }

// FuelEconomyGate 油耗门槛。
func FuelEconomyGate() Filter { return &gate{name: "filter.fuel_economy", allow: infallible(FuelEconomyAllows)} }

// BrandGate 品牌门槛。
func BrandGate() Filter { return &gate{name: "filter.brand", allow: infallible(BrandAllows)} }

// DefaultGates 返回五个硬约束门槛。门槛彼此独立，顺序不影响结果。
func DefaultGates() []Filter {
	return []Filter{
		BudgetGate(),
		ExperienceGate(),
		UseCaseGate(),
		FuelEconomyGate(),
		BrandGate(),
	}
}
