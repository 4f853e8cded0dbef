package core

// Car 是推荐的候选物品，由 Inventory 提供，单次请求内只读。
type Car struct {
	ID              int64   `json:"id" yaml:"id"`
	Brand           string  `json:"brand" yaml:"brand"`
	Model           string  `json:"model" yaml:"model"`
	Year            int     `json:"year" yaml:"year"`
	Price           float64 `json:"price" yaml:"price"`
	HorsePower      int     `json:"horse_power" yaml:"horse_power"`
	FuelConsumption float64 `json:"fuel_consumption" yaml:"fuel_consumption"` // 升/百公里
	FuelType        string  `json:"fuel_type" yaml:"fuel_type"`
	Compact         bool    `json:"compact" yaml:"compact"`
	DrivetrainType  string  `json:"drivetrain_type" yaml:"drivetrain_type"`
	Color           string  `json:"color" yaml:"color"`
}
