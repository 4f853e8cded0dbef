package rank

import (
	"sort"

	"github.com/rushteam/carmatch/core"
)

// Less 定义确定性的排序规则：分数高者在前；同分时库存顺序靠前者在前；再按车辆 ID 升序。
func Less(a, b *core.Item) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	return a.Car.ID < b.Car.ID
}

// Rank 原地排序并返回 items；nil 项排到末尾。
func Rank(items []*core.Item) []*core.Item {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		return Less(items[i], items[j])
	})
	return items
}

// ToResults 把 items 转为结果快照，跳过 nil 项；总是返回非 nil 切片。
func ToResults(items []*core.Item) []core.Result {
	out := make([]core.Result, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		out = append(out, it.Result())
	}
	return out
}
