// Package carmatch 是一个基于规则的汽车推荐引擎。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank）
// - 硬约束与打分分离：门槛决定去留，子分数决定排序，理由由独立规则表生成
// - Labels-first: 过滤原因、子分数以 Label 挂在 Item 上，便于解释与观测
// - 结果缓存以偏好的规范化字符串为 key，缓存失败不影响推荐
package carmatch

import (
	"context"

	"github.com/rushteam/carmatch/core"
	"github.com/rushteam/carmatch/engine"
	"github.com/rushteam/carmatch/pipeline"
	"github.com/rushteam/carmatch/recall"
)

// 轻量 facade：便于用户直接 import "github.com/rushteam/carmatch" 使用核心抽象。
type (
	Pipeline    = pipeline.Pipeline
	Node        = pipeline.Node
	Kind        = pipeline.Kind
	Car         = core.Car
	Preferences = core.Preferences
	Result      = core.Result
	Engine      = engine.Engine
)

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)

// Recommend 对给定的车辆列表运行默认链路，返回最多 5 条推荐。不使用缓存。
func Recommend(ctx context.Context, cars []Car, prefs Preferences) ([]Result, error) {
	eng, err := engine.New(recall.NewStaticInventory(cars))
	if err != nil {
		return nil, err
	}
	return eng.Recommend(ctx, prefs)
}
