// Package builders 在 init 中把内置 Node 注册到 config 注册表。
//
//	import _ "github.com/rushteam/carmatch/config/builders"
package builders

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/rushteam/carmatch/config"
	"github.com/rushteam/carmatch/core"
	"github.com/rushteam/carmatch/filter"
	"github.com/rushteam/carmatch/pipeline"
	"github.com/rushteam/carmatch/pkg/conv"
	"github.com/rushteam/carmatch/rank"
	"github.com/rushteam/carmatch/recall"
	"github.com/rushteam/carmatch/rerank"
)

func init() {
	config.Register("recall.inventory", BuildInventoryNode)
	config.Register("filter", BuildFilterNode)
	config.Register("filter.gates", BuildGatesNode)
	config.Register("filter.expr", BuildExprNode)
	config.Register("filter.blacklist", BuildBlacklistNode)
	config.Register("rank.score", BuildScoreNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.brand_diversity", BuildBrandDiversityNode)
}

// BuildInventoryNode 支持三种来源：path（YAML/JSON 文件）、store+key（Store 中的快照）、cars（内联）。
func BuildInventoryNode(cfg map[string]any) (pipeline.Node, error) {
	inline, err := inlineCars(cfg["cars"])
	if err != nil {
		return nil, err
	}

	if path := conv.ConfigGet(cfg, "path", ""); path != "" {
		return &recall.InventoryNode{Inventory: &recall.FileInventory{Path: path}}, nil
	}
	if name := conv.ConfigGet(cfg, "store", ""); name != "" {
		s, ok := config.LookupStore(name)
		if !ok {
			return nil, fmt.Errorf("store %q not registered", name)
		}
		key := conv.ConfigGet(cfg, "key", "inventory:cars")
		return &recall.InventoryNode{Inventory: &recall.StoreInventory{Store: s, Key: key, Fallback: inline}}, nil
	}
	if inline == nil {
		return nil, fmt.Errorf("recall.inventory needs one of path, store or cars")
	}
	return &recall.InventoryNode{Inventory: recall.NewStaticInventory(inline)}, nil
}

func inlineCars(v any) ([]core.Car, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cars: %w", err)
	}
	cars, err := recall.DecodeCars(data, true)
	if err != nil {
		return nil, fmt.Errorf("cars: %w", err)
	}
	return cars, nil
}

// BuildFilterNode 组合多种过滤器：filters: [{type: gates}, {type: expr, expr: ...}, {type: blacklist, ...}]。
func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "gates":
			gates, err := gatesFromConfig(filterMap)
			if err != nil {
				return nil, err
			}
			filters = append(filters, gates...)
		case "expr":
			gate, err := exprFromConfig(filterMap)
			if err != nil {
				return nil, err
			}
			filters = append(filters, gate)
		case "blacklist":
			bl, err := blacklistFromConfig(filterMap)
			if err != nil {
				return nil, err
			}
			filters = append(filters, bl)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

// BuildGatesNode 构建硬约束门槛；gates 为空时使用全部五个。
func BuildGatesNode(cfg map[string]any) (pipeline.Node, error) {
	gates, err := gatesFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &filter.FilterNode{Filters: gates}, nil
}

var gateByName = map[string]func() filter.Filter{
	"budget":       filter.BudgetGate,
	"experience":   filter.ExperienceGate,
	"use_case":     filter.UseCaseGate,
	"fuel_economy": filter.FuelEconomyGate,
	"brand":        filter.BrandGate,
}

func gatesFromConfig(cfg map[string]any) ([]filter.Filter, error) {
	names := conv.SliceAnyToString(cfg["gates"])
	if len(names) == 0 {
		return filter.DefaultGates(), nil
	}
	out := make([]filter.Filter, 0, len(names))
	for _, name := range names {
		mk, ok := gateByName[strings.TrimPrefix(name, "filter.")]
		if !ok {
			return nil, fmt.Errorf("unknown gate: %s", name)
		}
		out = append(out, mk())
	}
	return out, nil
}

// BuildExprNode 构建 CEL 表达式门槛：expr: "car.year >= 2018"。
func BuildExprNode(cfg map[string]any) (pipeline.Node, error) {
	gate, err := exprFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &filter.FilterNode{Filters: []filter.Filter{gate}}, nil
}

func exprFromConfig(cfg map[string]any) (*filter.ExprGate, error) {
	expr := conv.ConfigGet(cfg, "expr", "")
	if expr == "" {
		return nil, fmt.Errorf("expr not found")
	}
	return filter.NewExprGate(expr)
}

// BuildBlacklistNode 构建下架名单过滤：car_ids 内联，或 store+key 引用已登记的 Store。
func BuildBlacklistNode(cfg map[string]any) (pipeline.Node, error) {
	bl, err := blacklistFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &filter.FilterNode{Filters: []filter.Filter{bl}}, nil
}

func blacklistFromConfig(cfg map[string]any) (*filter.BlacklistFilter, error) {
	ids := conv.SliceAnyToInt64(cfg["car_ids"])
	key := conv.ConfigGet(cfg, "key", "")
	var adapter *filter.StoreAdapter
	if name := conv.ConfigGet(cfg, "store", ""); name != "" {
		s, ok := config.LookupStore(name)
		if !ok {
			return nil, fmt.Errorf("store %q not registered", name)
		}
		adapter = filter.NewStoreAdapter(s)
	}
	return filter.NewBlacklistFilter(ids, adapter, key), nil
}

func BuildScoreNode(_ map[string]any) (pipeline.Node, error) {
	return rank.NewScoreNode(), nil
}

func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	n := conv.ConfigGetInt64(cfg, "n", rerank.DefaultTopN)
	if n < 0 {
		return nil, fmt.Errorf("n must be >= 0, got %d", n)
	}
	return &rerank.TopNNode{N: int(n)}, nil
}

func BuildBrandDiversityNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.BrandDiversity{
		MaxPerBrand: int(conv.ConfigGetInt64(cfg, "max_per_brand", 1)),
		LabelKey:    conv.ConfigGet(cfg, "label_key", ""),
	}, nil
}
