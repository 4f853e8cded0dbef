package filter

import (
	"context"
	"strconv"

	"github.com/rushteam/carmatch/core"
	"github.com/rushteam/carmatch/pipeline"
	"github.com/rushteam/carmatch/pkg/utils"
)

// FilterNode 是过滤 Node，组合多个过滤器（逻辑 AND）。
// 任何一个过滤器返回 true，该车辆就会被移除；保留的车辆维持输入顺序。
// 过滤器返回 error 时立即中断并返回该错误。
type FilterNode struct {
	Filters []Filter
}

// NewGatesNode 返回装配了默认五个门槛的 FilterNode。
func NewGatesNode() *FilterNode {
	return &FilterNode{Filters: DefaultGates()}
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	filteredCount := 0

	for _, item := range items {
		if item == nil {
			continue
		}

		filterReason := ""
		for _, f := range n.Filters {
			drop, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				return nil, err
			}
			if drop {
				filterReason = f.Name()
				break
			}
		}

		if filterReason != "" {
			filteredCount++
			item.PutLabel("filtered", utils.Label{Value: "true", Source: filterReason})
			continue
		}

		out = append(out, item)
	}

	if rctx != nil && filteredCount > 0 {
		rctx.PutLabel("filtered_count", utils.Label{Value: strconv.Itoa(filteredCount), Source: n.Name()})
	}
	return out, nil
}

// Candidates 对车辆列表应用默认门槛，返回保留顺序的幸存车辆。
// 偏好会先做校验；没有车辆幸存时返回空切片而不是错误。
func Candidates(ctx context.Context, cars []core.Car, prefs core.Preferences) ([]core.Car, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	rctx := core.NewRecommendContext("", &prefs)
	items := make([]*core.Item, 0, len(cars))
	for i, car := range cars {
		items = append(items, core.NewItem(car, i))
	}

	kept, err := NewGatesNode().Process(ctx, rctx, items)
	if err != nil {
		return nil, err
	}
	out := make([]core.Car, 0, len(kept))
	for _, it := range kept {
		out = append(out, it.Car)
	}
	return out, nil
}
