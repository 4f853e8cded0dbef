// Package cache 实现推荐结果缓存：以偏好的规范化字符串为 key，
// 把结果列表以 JSON 形式存放在任意 core.Store 中。
//
// 缓存只是加速手段：读写失败由调用方记录后忽略，重新计算即可。
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/rushteam/carmatch/core"
)

// DefaultPrefix 是缓存 key 的默认前缀。
const DefaultPrefix = "recommendations::"

// ResultCache 是推荐结果缓存。
type ResultCache struct {
	Store  core.Store
	Prefix string
	// TTL 为 0 表示不过期；不足一秒按一秒计
	TTL time.Duration
}

// New 创建结果缓存；cfg 为 nil 时使用 core.DefaultRecommendConfig。
func New(s core.Store, cfg core.RecommendConfig) *ResultCache {
	if cfg == nil {
		cfg = &core.DefaultRecommendConfig{}
	}
	return &ResultCache{
		Store:  s,
		Prefix: cfg.DefaultCacheKeyPrefix(),
		TTL:    cfg.DefaultCacheTTL(),
	}
}

// Key 返回偏好对应的缓存 key。相等的偏好（品牌顺序不同也算相等）得到相同的 key。
func (c *ResultCache) Key(prefs *core.Preferences) string {
	prefix := c.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + prefs.CanonicalKey()
}

// Scoped 返回共用同一 Store 的缓存视图，key 前缀追加 scope + "::"。
// 同一 Store 上运行不同 Pipeline 的引擎需要各自的 scope，否则会读到彼此的结果。
// scope 为空时返回 c 本身。
func (c *ResultCache) Scoped(scope string) *ResultCache {
	if scope == "" {
		return c
	}
	prefix := c.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &ResultCache{Store: c.Store, Prefix: prefix + scope + "::", TTL: c.TTL}
}

// Get 读取缓存。
//   - 命中：返回结果与 true
//   - 未命中：返回 nil、false、nil
//   - 存储或解码失败：返回 ModuleCache 的 DomainError
func (c *ResultCache) Get(ctx context.Context, prefs *core.Preferences) ([]core.Result, bool, error) {
	key := c.Key(prefs)
	data, err := c.Store.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, false, nil
		}
		return nil, false, unavailable("get", key, err)
	}

	var results []core.Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, false, core.NewDomainError(core.ModuleCache, core.ErrorCodeInternalError,
			fmt.Sprintf("cache: decode %s: %v", key, err))
	}
	if results == nil {
		results = []core.Result{}
	}
	return results, true, nil
}

// Set 写入缓存。空结果同样缓存。
func (c *ResultCache) Set(ctx context.Context, prefs *core.Preferences, results []core.Result) error {
	if results == nil {
		results = []core.Result{}
	}
	key := c.Key(prefs)
	data, err := json.Marshal(results)
	if err != nil {
		return core.NewDomainError(core.ModuleCache, core.ErrorCodeInternalError,
			fmt.Sprintf("cache: encode %s: %v", key, err))
	}
	if err := c.Store.Set(ctx, key, data, c.ttlSeconds()); err != nil {
		return unavailable("set", key, err)
	}
	return nil
}

// Invalidate 删除某个偏好的缓存，库存变更后由外部调用。
func (c *ResultCache) Invalidate(ctx context.Context, prefs *core.Preferences) error {
	key := c.Key(prefs)
	if err := c.Store.Delete(ctx, key); err != nil {
		return unavailable("delete", key, err)
	}
	return nil
}

func (c *ResultCache) ttlSeconds() int {
	if c.TTL <= 0 {
		return 0
	}
	sec := int(c.TTL / time.Second)
	if sec < 1 {
		sec = 1
	}
	return sec
}

func unavailable(op, key string, err error) error {
	return fmt.Errorf("%w: %w", core.NewDomainError(core.ModuleCache, core.ErrorCodeUnavailable,
		fmt.Sprintf("cache: %s %s", op, key)), err)
}
