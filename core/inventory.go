package core

import "context"

// Inventory 是候选车辆来源的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（recall）实现
//   - 不保证返回顺序，也不做任何过滤
//
// 实现：
//   - recall.StaticInventory：内存切片
//   - recall.FileInventory：YAML/JSON 文件
//   - recall.StoreInventory：core.Store 中的 JSON 数组（如 Redis）
type Inventory interface {
	// Name 返回来源名称（用于日志/监控）
	Name() string

	// Cars 返回完整的候选车辆列表
	Cars(ctx context.Context) ([]Car, error)
}
