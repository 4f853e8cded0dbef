package rerank

import (
	"context"

	"github.com/rushteam/carmatch/core"
	"github.com/rushteam/carmatch/pipeline"
)

// DefaultTopN 是默认返回的推荐数量。
const DefaultTopN = 5

// TopNNode 是一个 Top-N 截断节点，用于在排序后截取前 N 辆车。
// 通常紧跟在 rank.ScoreNode 之后。
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        rank.NewScoreNode(),            // 打分排序
//	        &rerank.BrandDiversity{MaxPerBrand: 2},
//	        &rerank.TopNNode{N: 5},         // 截取 Top 5
//	    },
//	}
type TopNNode struct {
	// N 要保留的车辆数量
	// 如果 N <= 0，则使用 DefaultTopN
	// 如果 N > len(items)，则返回所有车辆
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := n.N
	if limit <= 0 {
		limit = DefaultTopN
	}
	if len(items) <= limit {
		return items, nil
	}
	return items[:limit], nil
}
