package core

import "time"

// RecommendConfig 是推荐相关的配置接口，用于提供默认值。
type RecommendConfig interface {
	// DefaultTopN 返回最终返回的最大结果数
	DefaultTopN() int

	// DefaultCacheTTL 返回结果缓存的过期时间（0 表示不过期，由外部负责失效）
	DefaultCacheTTL() time.Duration

	// DefaultCacheKeyPrefix 返回结果缓存 key 前缀
	DefaultCacheKeyPrefix() string
}

// DefaultRecommendConfig 是默认的推荐配置实现。
type DefaultRecommendConfig struct{}

func (c *DefaultRecommendConfig) DefaultTopN() int {
	return 5
}

func (c *DefaultRecommendConfig) DefaultCacheTTL() time.Duration {
	return 0
}

func (c *DefaultRecommendConfig) DefaultCacheKeyPrefix() string {
	return "recommendations::"
}
