package recall

import (
	"context"
	"fmt"

	"github.com/rushteam/carmatch/core"
	"github.com/rushteam/carmatch/pipeline"
	"github.com/rushteam/carmatch/pkg/utils"
)

// InventoryNode 是召回 Node：从 Inventory 读取全部车辆，按读取顺序生成候选。
// Item.Order 记录该顺序，用于排序阶段同分时的稳定规则。
// 上游传入的 items 会被忽略（召回是链路起点）。
type InventoryNode struct {
	Inventory core.Inventory
}

func (n *InventoryNode) Name() string        { return "recall.inventory" }
func (n *InventoryNode) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *InventoryNode) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if n.Inventory == nil {
		return nil, core.NewDomainError(core.ModuleInventory, core.ErrorCodeUnavailable, "inventory: not configured")
	}

	cars, err := n.Inventory.Cars(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inventory %s: %w", n.Inventory.Name(), err)
	}
	return Items(cars, n.Inventory.Name()), nil
}

// Items 把车辆列表转换为候选 Item，记录原始顺序与来源。
func Items(cars []core.Car, source string) []*core.Item {
	out := make([]*core.Item, 0, len(cars))
	for i, car := range cars {
		it := core.NewItem(car, i)
		if source != "" {
			it.PutLabel("recall_source", utils.Label{Value: source, Source: "recall"})
		}
		out = append(out, it)
	}
	return out
}
