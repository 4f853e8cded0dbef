// Package store 提供 core.Store 的实现：MemoryStore（测试/单机）与 RedisStore（生产）。
//
// 注意：此包只包含实现，接口定义在 core 包。
//
//	var s core.Store = store.NewMemoryStore()
package store
