package core

import "github.com/rushteam/carmatch/pkg/utils"

// Item 是推荐链路中的统一承载结构：候选车辆、库存顺序、分数、理由、标签。
// Labels 用于解释与观测；Score 用于排序决策；Order 用于同分时的稳定排序。
type Item struct {
	Car    Car
	Order  int
	Score  float64
	Reason string
	Labels map[string]utils.Label
}

func NewItem(car Car, order int) *Item {
	return &Item{
		Car:    car,
		Order:  order,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// Result 生成该 Item 的结果快照。
func (it *Item) Result() Result {
	return NewResult(it.Car, it.Score, it.Reason)
}
