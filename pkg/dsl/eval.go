package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/carmatch/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("car", cel.DynType),
		cel.Variable("prefs", cel.DynType),
		cel.CrossTypeNumericComparisons(true),
	)
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Program 是编译后的车辆规则表达式，使用 CEL (Common Expression Language)。
// 编译一次，可并发多次 Eval。
//
// 可用变量：
//   - car：id, brand, model, year, price, horse_power, fuel_consumption, fuel_type, compact, drivetrain_type, color
//   - prefs：budget, experience, use_case, brand_preferences, fuel_economy_priority
//
// 示例：
//   - `car.year >= 2018`
//   - `car.drivetrain_type == "AWD" || prefs.use_case != "offroad"`
//   - `car.price <= prefs.budget * 0.9`
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式；表达式必须返回布尔值。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	if t := ast.OutputType(); t != cel.BoolType && t != cel.DynType {
		return nil, fmt.Errorf("expression must return bool, got %s", t)
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String 返回原始表达式。
func (p *Program) String() string { return p.expr }

// Eval 对单辆车执行表达式。
func (p *Program) Eval(car core.Car, prefs *core.Preferences) (bool, error) {
	out, _, err := p.prg.Eval(map[string]any{
		"car":   carInput(car),
		"prefs": prefsInput(prefs),
	})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

func carInput(car core.Car) map[string]any {
	return map[string]any{
		"id":               car.ID,
		"brand":            car.Brand,
		"model":            car.Model,
		"year":             int64(car.Year),
		"price":            car.Price,
		"horse_power":      int64(car.HorsePower),
		"fuel_consumption": car.FuelConsumption,
		"fuel_type":        car.FuelType,
		"compact":          car.Compact,
		"drivetrain_type":  car.DrivetrainType,
		"color":            car.Color,
	}
}

func prefsInput(prefs *core.Preferences) map[string]any {
	if prefs == nil {
		return map[string]any{}
	}
	brands := prefs.BrandPreferences
	if brands == nil {
		brands = []string{}
	}
	return map[string]any{
		"budget":                prefs.Budget,
		"experience":            string(prefs.Experience),
		"use_case":              string(prefs.UseCase),
		"brand_preferences":     brands,
		"fuel_economy_priority": prefs.FuelEconomyPriority,
	}
}
