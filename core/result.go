package core

// Result 是单条推荐结果：车辆展示属性的快照 + 分数 + 推荐理由。
// 创建后不再修改；缓存中保存的也是这个结构。
type Result struct {
	ID              int64   `json:"id"`
	Brand           string  `json:"brand"`
	Model           string  `json:"model"`
	Year            int     `json:"year"`
	Price           float64 `json:"price"`
	HorsePower      int     `json:"horse_power"`
	FuelConsumption float64 `json:"fuel_consumption"`
	FuelType        string  `json:"fuel_type"`
	Compact         bool    `json:"compact"`
	DrivetrainType  string  `json:"drivetrain_type"`
	Color           string  `json:"color"`

	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// NewResult 按值复制车辆属性，避免结果引用调用方的数据。
func NewResult(car Car, score float64, reason string) Result {
	return Result{
		ID:              car.ID,
		Brand:           car.Brand,
		Model:           car.Model,
		Year:            car.Year,
		Price:           car.Price,
		HorsePower:      car.HorsePower,
		FuelConsumption: car.FuelConsumption,
		FuelType:        car.FuelType,
		Compact:         car.Compact,
		DrivetrainType:  car.DrivetrainType,
		Color:           car.Color,
		Score:           score,
		Reason:          reason,
	}
}
