package builders

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/carmatch/config"
	"github.com/rushteam/carmatch/core"
	"github.com/rushteam/carmatch/filter"
	"github.com/rushteam/carmatch/pipeline"
	"github.com/rushteam/carmatch/recall"
	"github.com/rushteam/carmatch/store"
)

const pipelineYAML = `
pipeline:
  name: city
  nodes:
    - type: recall.inventory
      config:
        cars:
          - {id: 1, brand: Acme, price: 10000, horse_power: 90, fuel_consumption: 5.0, compact: true, year: 2020}
          - {id: 2, brand: Acme, price: 11000, horse_power: 95, fuel_consumption: 5.2, compact: true, year: 2012}
          - {id: 3, brand: Bolt, price: 12000, horse_power: 100, fuel_consumption: 6.0, compact: true, year: 2021}
          - {id: 4, brand: Cruz, price: 13000, horse_power: 105, fuel_consumption: 6.2, compact: true, year: 2022}
    - type: filter
      config:
        filters:
          - type: gates
          - type: expr
            expr: "car.year >= 2015"
          - type: blacklist
            car_ids: [4]
    - type: rank.score
    - type: rerank.brand_diversity
      config: {max_per_brand: 1}
    - type: rerank.topn
      config: {n: 5}
`

func TestBuildPipelineFromYAML(t *testing.T) {
	cfg, err := pipeline.ParseYAML([]byte(pipelineYAML))
	if err != nil {
		t.Fatal(err)
	}
	if err := config.ValidatePipelineConfig(cfg); err != nil {
		t.Fatalf("ValidatePipelineConfig() error = %v", err)
	}
	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}

	prefs := &core.Preferences{Budget: 20000, Experience: core.ExperienceNovice, UseCase: core.UseCaseCity}
	items, err := p.Run(context.Background(), core.NewRecommendContext("t", prefs), nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var ids []int64
	for _, it := range items {
		ids = append(ids, it.Car.ID)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Errorf("ids = %v, want [1 3]", ids)
	}
}

func TestBuildInventoryNode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cars.json")
	if err := os.WriteFile(path, []byte(`[{"id": 7, "brand": "Acme", "price": 1}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	node, err := BuildInventoryNode(map[string]any{"path": path})
	if err != nil {
		t.Fatal(err)
	}
	items, err := node.Process(context.Background(), nil, nil)
	if err != nil || len(items) != 1 || items[0].Car.ID != 7 {
		t.Fatalf("file inventory = %v, %v", items, err)
	}

	s := store.NewMemoryStore()
	defer s.Close()
	config.RegisterStore("builders-test", s)
	if err := recall.SaveCars(context.Background(), s, "inv", []core.Car{{ID: 8}, {ID: 9}}); err != nil {
		t.Fatal(err)
	}
	node, err = BuildInventoryNode(map[string]any{"store": "builders-test", "key": "inv"})
	if err != nil {
		t.Fatal(err)
	}
	items, err = node.Process(context.Background(), nil, nil)
	if err != nil || len(items) != 2 {
		t.Fatalf("store inventory = %v, %v", items, err)
	}

	if _, err := BuildInventoryNode(map[string]any{}); err == nil {
		t.Errorf("empty config should fail")
	}
	if _, err := BuildInventoryNode(map[string]any{"store": "unregistered"}); err == nil {
		t.Errorf("unknown store should fail")
	}
}

func TestBuildGatesNode(t *testing.T) {
	node, err := BuildGatesNode(map[string]any{"gates": []any{"budget", "filter.brand"}})
	if err != nil {
		t.Fatal(err)
	}
	if fn := node.(*filter.FilterNode); len(fn.Filters) != 2 {
		t.Errorf("len(Filters) = %d, want 2", len(fn.Filters))
	}
	node, _ = BuildGatesNode(nil)
	if fn := node.(*filter.FilterNode); len(fn.Filters) != 5 {
		t.Errorf("default gates = %d, want 5", len(fn.Filters))
	}
	if _, err := BuildGatesNode(map[string]any{"gates": []any{"colour"}}); err == nil {
		t.Errorf("unknown gate should fail")
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := BuildExprNode(map[string]any{}); err == nil {
		t.Errorf("missing expr should fail")
	}
	if _, err := BuildExprNode(map[string]any{"expr": "car.year >"}); err == nil {
		t.Errorf("bad expr should fail")
	}
	if _, err := BuildFilterNode(map[string]any{}); err == nil {
		t.Errorf("missing filters should fail")
	}
	if _, err := BuildFilterNode(map[string]any{"filters": []any{map[string]any{"type": "bloom"}}}); err == nil {
		t.Errorf("unknown filter type should fail")
	}
	if _, err := BuildTopNNode(map[string]any{"n": -1}); err == nil {
		t.Errorf("negative n should fail")
	}
	if _, err := BuildBlacklistNode(map[string]any{"store": "nope"}); err == nil {
		t.Errorf("unknown store should fail")
	}
}
