package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rushteam/carmatch/cache"
	"github.com/rushteam/carmatch/config"
	_ "github.com/rushteam/carmatch/config/builders"
	"github.com/rushteam/carmatch/core"
	"github.com/rushteam/carmatch/engine"
	"github.com/rushteam/carmatch/logging"
	"github.com/rushteam/carmatch/metrics"
	"github.com/rushteam/carmatch/pipeline"
	"github.com/rushteam/carmatch/recall"
	"github.com/rushteam/carmatch/store"
)

// defaultStoreName 是缓存后端在 config 注册表中的名字，pipeline 配置里以 store: default 引用。
const defaultStoreName = "default"

type rootOptions struct {
	configPath   string
	inventory    string
	pipelineFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "carmatch",
		Short: "Rule-based car recommendations from declared preferences",
		Long: `carmatch filters a car inventory through hard constraints (budget, experience,
use case, fuel economy, brand), scores the survivors and prints the top matches.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: $CARMATCH_CONFIG or ./carmatch.yaml)")
	root.PersistentFlags().StringVar(&opts.inventory, "inventory", "", "inventory file (.yaml/.yml/.json), overrides engine.inventory_file")
	root.PersistentFlags().StringVar(&opts.pipelineFile, "pipeline", "", "pipeline file (.yaml/.json), overrides engine.pipeline_file")

	root.AddCommand(newRecommendCmd(opts))
	root.AddCommand(newPipelineCmd(opts))
	return root
}

// app 是一次命令执行所需的全部依赖。
type app struct {
	cfg    *config.AppConfig
	logger zerolog.Logger
	store  core.Store
	engine *engine.Engine
	// registry 只属于本次执行，recommend --metrics 从这里导出
	registry *prometheus.Registry
}

func (a *app) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

func newApp(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.inventory != "" {
		cfg.Engine.InventoryFile = opts.inventory
	}
	if opts.pipelineFile != "" {
		cfg.Engine.PipelineFile = opts.pipelineFile
	}

	a := &app{cfg: cfg, logger: logging.New(cfg.Log), registry: prometheus.NewRegistry()}

	switch cfg.Cache.Backend {
	case "memory":
		a.store = store.NewMemoryStore()
	case "redis":
		rs, err := store.NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.store = rs
	}
	if a.store != nil {
		config.RegisterStore(defaultStoreName, a.store)
	}

	inv, err := a.inventory(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	m := metrics.New()
	m.MustRegister(a.registry)
	engineOpts := []engine.Option{
		engine.WithConfig(cfg),
		engine.WithLogger(a.logger),
		engine.WithMetrics(m),
	}
	var (
		p     *pipeline.Pipeline
		scope string
	)
	if cfg.Engine.PipelineFile != "" {
		p, scope, err = loadPipeline(cfg.Engine.PipelineFile)
		if err != nil {
			a.Close()
			return nil, err
		}
		engineOpts = append(engineOpts, engine.WithPipeline(p))
	}
	if a.store != nil {
		engineOpts = append(engineOpts, engine.WithCache(cache.New(a.store, cfg).Scoped(scope)))
	}

	a.engine, err = engine.New(inv, engineOpts...)
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) inventory(ctx context.Context) (core.Inventory, error) {
	var fileInv *recall.FileInventory
	if a.cfg.Engine.InventoryFile != "" {
		fileInv = &recall.FileInventory{Path: a.cfg.Engine.InventoryFile}
	}
	if a.cfg.Engine.InventoryKey != "" && a.store != nil {
		inv := &recall.StoreInventory{Store: a.store, Key: a.cfg.Engine.InventoryKey}
		if fileInv != nil {
			cars, err := fileInv.Cars(ctx)
			if err != nil {
				return nil, err
			}
			inv.Fallback = cars
		}
		return inv, nil
	}
	if fileInv == nil {
		return nil, fmt.Errorf("no inventory: set --inventory, engine.inventory_file or engine.inventory_key")
	}
	return fileInv, nil
}

func loadPipelineConfig(path string) (*pipeline.Config, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return pipeline.LoadFromJSON(path)
	}
	return pipeline.LoadFromYAML(path)
}

// loadPipeline 加载并校验 Pipeline 文件，同时返回其缓存 scope：
// 配置中的 pipeline.name，未设置时取文件名（不含扩展名）。
func loadPipeline(path string) (*pipeline.Pipeline, string, error) {
	pc, err := loadPipelineConfig(path)
	if err != nil {
		return nil, "", fmt.Errorf("pipeline %s: %w", path, err)
	}
	if err := config.ValidatePipelineConfig(pc); err != nil {
		return nil, "", fmt.Errorf("pipeline %s: %w", path, err)
	}
	p, err := pc.BuildPipeline(config.DefaultFactory())
	if err != nil {
		return nil, "", err
	}
	return p, pipelineScope(path, pc), nil
}

func pipelineScope(path string, pc *pipeline.Config) string {
	if pc.Pipeline.Name != "" {
		return pc.Pipeline.Name
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
