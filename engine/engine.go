// Package engine 编排一次完整的推荐：校验偏好 → 查缓存 → 运行 Pipeline → 写缓存。
//
//	eng, err := engine.New(recall.NewStaticInventory(cars),
//	    engine.WithCache(cache.New(store.NewMemoryStore(), nil)),
//	    engine.WithLogger(logger),
//	)
//	results, err := eng.Recommend(ctx, prefs)
//
// 同一偏好的并发未命中请求通过 singleflight 合并为一次计算。
package engine

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/rushteam/carmatch/cache"
	"github.com/rushteam/carmatch/core"
	"github.com/rushteam/carmatch/filter"
	"github.com/rushteam/carmatch/logging"
	"github.com/rushteam/carmatch/metrics"
	"github.com/rushteam/carmatch/pipeline"
	"github.com/rushteam/carmatch/rank"
	"github.com/rushteam/carmatch/recall"
	"github.com/rushteam/carmatch/rerank"
)

// Engine 是推荐引擎，创建后可被并发使用。
type Engine struct {
	inventory core.Inventory
	pipeline  *pipeline.Pipeline
	cache     *cache.ResultCache
	metrics   *metrics.Metrics
	logger    zerolog.Logger
	topN      int

	group singleflight.Group
}

// Option 配置 Engine。
type Option func(*Engine)

// WithPipeline 使用自定义 Pipeline；缺少召回节点时自动在最前面补上库存召回。
func WithPipeline(p *pipeline.Pipeline) Option {
	return func(e *Engine) { e.pipeline = p }
}

// WithCache 启用结果缓存。
func WithCache(c *cache.ResultCache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithMetrics 启用指标。
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLogger 设置日志。
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithTopN 设置最多返回的结果数，<= 0 或超过 rerank.DefaultTopN 时取 rerank.DefaultTopN。
func WithTopN(n int) Option {
	return func(e *Engine) { e.topN = n }
}

// WithConfig 从 core.RecommendConfig 读取 TopN。
func WithConfig(cfg core.RecommendConfig) Option {
	return func(e *Engine) {
		if cfg != nil {
			e.topN = cfg.DefaultTopN()
		}
	}
}

// New 创建推荐引擎。inventory 不能为空。
func New(inventory core.Inventory, opts ...Option) (*Engine, error) {
	if inventory == nil {
		return nil, core.NewDomainError(core.ModuleInventory, core.ErrorCodeInvalidInput, "engine: inventory is required")
	}
	e := &Engine{
		inventory: inventory,
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.topN <= 0 || e.topN > rerank.DefaultTopN {
		e.topN = rerank.DefaultTopN
	}
	if e.pipeline == nil {
		e.pipeline = DefaultPipeline(inventory, e.topN)
	} else {
		e.pipeline = complete(e.pipeline, inventory)
	}
	e.logger = e.logger.With().Str("component", "recommend").Logger()
	return e, nil
}

// DefaultPipeline 返回默认链路：库存召回 → 五个门槛 → 打分排序 → TopN。
func DefaultPipeline(inventory core.Inventory, topN int) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.InventoryNode{Inventory: inventory},
			filter.NewGatesNode(),
			rank.NewScoreNode(),
			&rerank.TopNNode{N: topN},
		},
	}
}

// complete 为自定义 Pipeline 补齐必需的阶段：缺少召回时在最前面补库存召回，
// 缺少排序时在第一个重排/后处理节点之前（都没有则在末尾）补 rank.ScoreNode，
// 保证每条结果都有分数和推荐理由。
func complete(p *pipeline.Pipeline, inventory core.Inventory) *pipeline.Pipeline {
	nodes := make([]pipeline.Node, 0, len(p.Nodes)+2)
	if !p.HasKind(pipeline.KindRecall) {
		nodes = append(nodes, &recall.InventoryNode{Inventory: inventory})
	}
	if p.HasKind(pipeline.KindRank) {
		nodes = append(nodes, p.Nodes...)
		return &pipeline.Pipeline{Nodes: nodes}
	}
	scored := false
	for _, n := range p.Nodes {
		if !scored && (n.Kind() == pipeline.KindReRank || n.Kind() == pipeline.KindPostProcess) {
			nodes = append(nodes, rank.NewScoreNode())
			scored = true
		}
		nodes = append(nodes, n)
	}
	if !scored {
		nodes = append(nodes, rank.NewScoreNode())
	}
	return &pipeline.Pipeline{Nodes: nodes}
}

// Pipeline 返回引擎使用的 Pipeline。
func (e *Engine) Pipeline() *pipeline.Pipeline {
	return e.pipeline
}

// Recommend 返回最多 TopN 条推荐，按分数降序。
// 没有车辆满足条件时返回空切片；偏好非法时返回 INVALID_INPUT。
func (e *Engine) Recommend(ctx context.Context, prefs core.Preferences) ([]core.Result, error) {
	start := time.Now()

	requestID := logging.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = logging.GenerateRequestID()
	}
	log := e.logger.With().Str("request_id", requestID).Logger()

	if err := prefs.Validate(); err != nil {
		e.metrics.ObserveRequest("invalid")
		log.Debug().Err(err).Msg("rejected preferences")
		return nil, err
	}

	if results, ok := e.lookup(ctx, &prefs, log); ok {
		e.metrics.ObserveRequest("ok")
		e.metrics.ObserveResults(len(results))
		e.metrics.ObserveDuration("cache", time.Since(start))
		return results, nil
	}

	v, err, shared := e.group.Do(prefs.CanonicalKey(), func() (any, error) {
		return e.compute(ctx, requestID, prefs, log)
	})
	if err != nil {
		e.metrics.ObserveRequest("error")
		log.Error().Err(err).Msg("recommend failed")
		return nil, err
	}

	results := cloneResults(v.([]core.Result))
	e.metrics.ObserveRequest("ok")
	e.metrics.ObserveResults(len(results))
	e.metrics.ObserveDuration("compute", time.Since(start))
	log.Debug().
		Int("results", len(results)).
		Bool("shared", shared).
		Dur("took", time.Since(start)).
		Msg("recommend done")
	return results, nil
}

// Invalidate 删除某个偏好的缓存结果；未启用缓存时什么也不做。
func (e *Engine) Invalidate(ctx context.Context, prefs core.Preferences) error {
	if e.cache == nil {
		return nil
	}
	return e.cache.Invalidate(ctx, &prefs)
}

func (e *Engine) lookup(ctx context.Context, prefs *core.Preferences, log zerolog.Logger) ([]core.Result, bool) {
	if e.cache == nil {
		return nil, false
	}
	results, hit, err := e.cache.Get(ctx, prefs)
	if err != nil {
		e.metrics.ObserveCacheError(cacheOp(err, "get"))
		log.Warn().Err(err).Msg("cache lookup failed, recomputing")
		return nil, false
	}
	e.metrics.ObserveCacheLookup(hit)
	if hit && len(results) > e.topN {
		results = results[:e.topN]
	}
	return results, hit
}

func (e *Engine) compute(ctx context.Context, requestID string, prefs core.Preferences, log zerolog.Logger) ([]core.Result, error) {
	rctx := core.NewRecommendContext(requestID, &prefs)
	items, err := e.pipeline.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}
	e.metrics.ObserveFiltered(filteredCount(rctx))

	results := rank.ToResults(items)
	if len(results) > e.topN {
		results = results[:e.topN]
	}

	if e.cache != nil {
		if err := e.cache.Set(ctx, &prefs, results); err != nil {
			e.metrics.ObserveCacheError(cacheOp(err, "set"))
			log.Warn().Err(err).Msg("cache store failed")
		}
	}
	return results, nil
}

func filteredCount(rctx *core.RecommendContext) int {
	lbl, ok := rctx.GetLabel("filtered_count")
	if !ok {
		return 0
	}
	total := 0
	for _, part := range strings.Split(lbl.Value, "|") {
		if n, err := strconv.Atoi(part); err == nil {
			total += n
		}
	}
	return total
}

func cacheOp(err error, op string) string {
	if de := core.GetDomainError(err); de != nil && de.Code == core.ErrorCodeInternalError {
		if op == "get" {
			return "decode"
		}
		return "encode"
	}
	return op
}

func cloneResults(in []core.Result) []core.Result {
	out := make([]core.Result, len(in))
	copy(out, in)
	return out
}
