package recall

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/rushteam/carmatch/core"
)

// StaticInventory 是内存实现的 Inventory，用于测试/原型/嵌入式场景。
type StaticInventory struct {
	cars []core.Car
}

// NewStaticInventory 复制一份车辆列表，避免调用方后续修改影响请求。
func NewStaticInventory(cars []core.Car) *StaticInventory {
	return &StaticInventory{cars: append([]core.Car(nil), cars...)}
}

func (s *StaticInventory) Name() string { return "static" }

func (s *StaticInventory) Cars(_ context.Context) ([]core.Car, error) {
	return append([]core.Car(nil), s.cars...), nil
}

// FileInventory 从 YAML 或 JSON 文件读取车辆列表，每次调用都重新读取。
// 文件格式按扩展名判断：.json 使用 JSON，其余按 YAML 解析。
//
//	- id: 1
//	  brand: Toyota
//	  model: Yaris
//	  price: 18000
//	  horse_power: 92
//	  fuel_consumption: 4.8
//	  compact: true
type FileInventory struct {
	Path string
}

func (f *FileInventory) Name() string { return "file" }

func (f *FileInventory) Cars(ctx context.Context) ([]core.Car, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleInventory, core.ErrorCodeUnavailable,
			fmt.Sprintf("inventory: read %s: %v", f.Path, err))
	}
	return DecodeCars(data, strings.EqualFold(filepath.Ext(f.Path), ".json"))
}

// DecodeCars 解析车辆列表。
func DecodeCars(data []byte, isJSON bool) ([]core.Car, error) {
	var cars []core.Car
	if isJSON {
		if err := json.Unmarshal(data, &cars); err != nil {
			return nil, fmt.Errorf("parse json inventory: %w", err)
		}
		return cars, nil
	}
	if err := yaml.Unmarshal(data, &cars); err != nil {
		return nil, fmt.Errorf("parse yaml inventory: %w", err)
	}
	return cars, nil
}

// StoreInventory 从 core.Store 的单个 key 读取 JSON 数组形式的车辆列表（如 Redis 中的库存快照）。
// key 不存在时视为空库存；Fallback 非空时作为兜底数据。
type StoreInventory struct {
	Store    core.Store
	Key      string // 例如 "inventory:cars"
	Fallback []core.Car
}

func (s *StoreInventory) Name() string { return "store" }

func (s *StoreInventory) Cars(ctx context.Context) ([]core.Car, error) {
	if s.Store == nil || s.Key == "" {
		return append([]core.Car(nil), s.Fallback...), nil
	}

	data, err := s.Store.Get(ctx, s.Key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return append([]core.Car(nil), s.Fallback...), nil
		}
		return nil, core.NewDomainError(core.ModuleInventory, core.ErrorCodeUnavailable,
			fmt.Sprintf("inventory: read %s from %s: %v", s.Key, s.Store.Name(), err))
	}
	return DecodeCars(data, true)
}

// SaveCars 把车辆列表写入 Store，供 StoreInventory 读取。
func SaveCars(ctx context.Context, s core.Store, key string, cars []core.Car) error {
	data, err := json.Marshal(cars)
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}
	return s.Set(ctx, key, data)
}

var (
	_ core.Inventory = (*StaticInventory)(nil)
	_ core.Inventory = (*FileInventory)(nil)
	_ core.Inventory = (*StoreInventory)(nil)
)
