package rank

import (
	"context"

	"github.com/rushteam/carmatch/core"
	"github.com/rushteam/carmatch/explain"
	"github.com/rushteam/carmatch/pipeline"
	"github.com/rushteam/carmatch/pkg/utils"
)

// ScoreNode 是规则打分 Node。
// - 更新 item.Score、item.Reason
// - 写入 labels：score.<子分数名>
// - 按 Less 排序
type ScoreNode struct {
	Scorer    *Scorer
	Explainer *explain.Explainer
}

// NewScoreNode 返回使用默认子分数表与默认理由规则的 ScoreNode。
func NewScoreNode() *ScoreNode {
	return &ScoreNode{Scorer: NewScorer(), Explainer: explain.New()}
}

func (n *ScoreNode) Name() string        { return "rank.score" }
func (n *ScoreNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *ScoreNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}
	prefs, err := rctx.RequirePrefs()
	if err != nil {
		return nil, err
	}

	scorer := n.Scorer
	if scorer == nil {
		scorer = defaultScorer
	}
	explainer := n.Explainer
	if explainer == nil {
		explainer = defaultExplainer
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		total, parts, err := scorer.Breakdown(it.Car, prefs)
		if err != nil {
			return nil, err
		}
		it.Score = total
		it.Reason = explainer.Explain(it.Car, prefs)
		for i, sub := range scorer.SubScores {
			it.PutLabel("score."+sub.Name, utils.FloatLabel(parts[i], n.Name()))
		}
	}
	return Rank(items), nil
}

var defaultExplainer = explain.New()
