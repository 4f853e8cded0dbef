package filter

import (
	"context"

	"github.com/rushteam/carmatch/core"
)

// BlacklistFilter 是下架名单过滤器，过滤掉已下架/预订的车辆。
type BlacklistFilter struct {
	// CarIDs 是内存中的下架车辆 ID 列表
	CarIDs []int64

	// Store 用于从存储中读取下架名单（可选）
	Store BlacklistStore

	// Key 是 Store 中的下架名单 key（可选）
	Key string
}

// BlacklistStore 是下架名单存储接口。
type BlacklistStore interface {
	// GetBlacklist 获取下架车辆 ID 列表
	GetBlacklist(ctx context.Context, key string) ([]int64, error)
}

// NewBlacklistFilter 创建一个下架名单过滤器。
func NewBlacklistFilter(carIDs []int64, storeAdapter *StoreAdapter, key string) *BlacklistFilter {
	var store BlacklistStore
	if storeAdapter != nil {
		store = storeAdapter
	}
	return &BlacklistFilter{
		CarIDs: carIDs,
		Store:  store,
		Key:    key,
	}
}

func (f *BlacklistFilter) Name() string {
	return "filter.blacklist"
}

func (f *BlacklistFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	for _, id := range f.CarIDs {
		if item.Car.ID == id {
			return true, nil
		}
	}

	if f.Store != nil && f.Key != "" {
		_, withdrawn := f.stored(ctx, rctx)[item.Car.ID]
		return withdrawn, nil
	}
	return false, nil
}

// stored 返回 Store 中的下架名单。同一请求内只读取一次，结果放在 rctx.Params 中；
// 读取失败时按空名单处理，不影响推荐。
func (f *BlacklistFilter) stored(ctx context.Context, rctx *core.RecommendContext) map[int64]struct{} {
	param := "filter.blacklist:" + f.Key
	if rctx != nil {
		if ids, ok := rctx.Params[param].(map[int64]struct{}); ok {
			return ids
		}
	}

	ids := make(map[int64]struct{})
	if list, err := f.Store.GetBlacklist(ctx, f.Key); err == nil {
		for _, id := range list {
			ids[id] = struct{}{}
		}
	}

	if rctx != nil {
		if rctx.Params == nil {
			rctx.Params = make(map[string]any)
		}
		rctx.Params[param] = ids
	}
	return ids
}
