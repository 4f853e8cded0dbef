package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/rushteam/carmatch/core"
	"github.com/rushteam/carmatch/logging"
	"github.com/rushteam/carmatch/store"
)

// EnvPrefix 是环境变量前缀，例如 CARMATCH_ENGINE_TOP_N。
const EnvPrefix = "CARMATCH_"

// ConfigPathEnvVar 指定配置文件路径的环境变量。
const ConfigPathEnvVar = "CARMATCH_CONFIG"

// DefaultConfigPaths 是未显式指定时依次查找的配置文件。
var DefaultConfigPaths = []string{
	"carmatch.yaml",
	"carmatch.yml",
	"/etc/carmatch/config.yaml",
}

// AppConfig 是进程级配置：日志、引擎参数、缓存后端、Redis 连接。
// 加载顺序（后者覆盖前者）：结构体默认值 → YAML 文件 → CARMATCH_* 环境变量。
type AppConfig struct {
	Log    logging.Config     `koanf:"log"`
	Engine EngineConfig       `koanf:"engine"`
	Cache  CacheConfig        `koanf:"cache"`
	Redis  store.RedisOptions `koanf:"redis"`
}

// EngineConfig 是推荐引擎参数。
type EngineConfig struct {
	TopN          int    `koanf:"top_n" validate:"gte=1,lte=5"`
	PipelineFile  string `koanf:"pipeline_file"`
	InventoryFile string `koanf:"inventory_file"`
	// InventoryKey 非空时从缓存后端的该 key 读取库存快照
	InventoryKey string `koanf:"inventory_key"`
}

// CacheConfig 是结果缓存参数。
// 使用 engine.pipeline_file 时，缓存 key 还会带上该 Pipeline 的名字（pipeline.name，缺省为文件名），
// 因此共用同一 Redis 与 key_prefix 的不同 Pipeline 不会读到彼此的结果。
type CacheConfig struct {
	Backend   string        `koanf:"backend" validate:"oneof=none memory redis"`
	TTL       time.Duration `koanf:"ttl" validate:"gte=0"`
	KeyPrefix string        `koanf:"key_prefix" validate:"required"`
}

// DefaultAppConfig 返回默认配置。
func DefaultAppConfig() *AppConfig {
	defaults := &core.DefaultRecommendConfig{}
	return &AppConfig{
		Log: logging.Config{Level: "info", Format: "json"},
		Engine: EngineConfig{
			TopN: defaults.DefaultTopN(),
		},
		Cache: CacheConfig{
			Backend:   "memory",
			TTL:       defaults.DefaultCacheTTL(),
			KeyPrefix: defaults.DefaultCacheKeyPrefix(),
		},
		Redis: store.RedisOptions{
			Addr:        "127.0.0.1:6379",
			DialTimeout: 5 * time.Second,
		},
	}
}

// Load 加载配置。path 为空时依次尝试 CARMATCH_CONFIG 与 DefaultConfigPaths，均不存在则只用默认值与环境变量。
func Load(path string) (*AppConfig, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultAppConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &AppConfig{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envKeys 把环境变量（去掉前缀、小写后）映射到配置路径；未列出的变量被忽略。
var envKeys = map[string]string{
	"log_level":             "log.level",
	"log_format":            "log.format",
	"log_caller":            "log.caller",
	"engine_top_n":          "engine.top_n",
	"engine_pipeline_file":  "engine.pipeline_file",
	"engine_inventory_file": "engine.inventory_file",
	"engine_inventory_key":  "engine.inventory_key",
	"cache_backend":         "cache.backend",
	"cache_ttl":             "cache.ttl",
	"cache_key_prefix":      "cache.key_prefix",
	"redis_addr":            "redis.addr",
	"redis_password":        "redis.password",
	"redis_db":              "redis.db",
	"redis_dial_timeout":    "redis.dial_timeout",
	"redis_read_timeout":    "redis.read_timeout",
	"redis_write_timeout":   "redis.write_timeout",
	"redis_pool_size":       "redis.pool_size",
}

func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return envKeys[key]
}

// Validate 校验配置。
func (c *AppConfig) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func (c *AppConfig) DefaultTopN() int {
	return c.Engine.TopN
}

func (c *AppConfig) DefaultCacheTTL() time.Duration {
	return c.Cache.TTL
}

func (c *AppConfig) DefaultCacheKeyPrefix() string {
	return c.Cache.KeyPrefix
}

var _ core.RecommendConfig = (*AppConfig)(nil)
