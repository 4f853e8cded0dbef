package rerank

import (
	"context"

	"github.com/rushteam/carmatch/core"
	"github.com/rushteam/carmatch/pipeline"
	"github.com/rushteam/carmatch/pkg/utils"
)

// BrandDiversity 是品牌多样性 ReRank：每个品牌最多保留 MaxPerBrand 辆车，保持原有顺序。
// 品牌来源优先级：
// - label[LabelKey].Value（LabelKey 非空时）
// - car.Brand
type BrandDiversity struct {
	MaxPerBrand int    // 默认 1
	LabelKey    string // 可选
}

func (n *BrandDiversity) Name() string {
	return "rerank.brand_diversity"
}

func (n *BrandDiversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *BrandDiversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	limit := n.MaxPerBrand
	if limit <= 0 {
		limit = 1
	}

	seen := make(map[string]int, 16)
	out := make([]*core.Item, 0, len(items))

	for _, it := range items {
		if it == nil {
			continue
		}

		brand := ""
		if n.LabelKey != "" && it.Labels != nil {
			if lbl, ok := it.Labels[n.LabelKey]; ok {
				brand = lbl.Value
			}
		}
		if brand == "" {
			brand = it.Car.Brand
		}

		if brand == "" {
			out = append(out, it)
			continue
		}
		if seen[brand] >= limit {
			it.PutLabel("diversity_dropped", utils.Label{Value: brand, Source: n.Name()})
			continue
		}
		seen[brand]++
		out = append(out, it)
	}

	return out, nil
}
