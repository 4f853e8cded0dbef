package pipeline

import (
	"context"
	"fmt"

	"github.com/rushteam/carmatch/core"
)

// Pipeline 把推荐逻辑拆成可组合的 Node 链：Recall → Filter → Rank → ReRank。
type Pipeline struct {
	Nodes []Node
}

// Run 依次执行所有 Node，任一 Node 出错即中断。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", node.Name(), err)
		}
		cur = next
	}
	return cur, nil
}

// HasKind 判断 Pipeline 中是否包含指定阶段的 Node。
func (p *Pipeline) HasKind(kind Kind) bool {
	for _, node := range p.Nodes {
		if node.Kind() == kind {
			return true
		}
	}
	return false
}
