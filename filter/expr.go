package filter

import (
	"context"
	"fmt"

	"github.com/rushteam/carmatch/core"
	"github.com/rushteam/carmatch/pkg/dsl"
)

// ExprGate 是基于 CEL 表达式的门槛：表达式为 true 的车辆保留，否则过滤。
// 表达式在构造时编译一次，可在并发请求间复用。
//
//	gate, _ := filter.NewExprGate(`car.year >= 2018 && car.drivetrain_type != "RWD"`)
type ExprGate struct {
	prg *dsl.Program
}

// NewExprGate 编译表达式并创建门槛。
func NewExprGate(expr string) (*ExprGate, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("filter.expr %q: %w", expr, err)
	}
	return &ExprGate{prg: prg}, nil
}

func (g *ExprGate) Name() string {
	return "filter.expr"
}

func (g *ExprGate) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	var prefs *core.Preferences
	if rctx != nil {
		prefs = rctx.Prefs
	}
	keep, err := g.prg.Eval(item.Car, prefs)
	if err != nil {
		return false, fmt.Errorf("filter.expr %q: %w", g.prg.String(), err)
	}
	return !keep, nil
}
