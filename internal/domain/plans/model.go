package plans

type Plan struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null;uniqueIndex:idx_plans_name"`
	PricePaise   int64  `gorm:"column:price_paise"`
	Interval     string
	ExportsLimit *int `gorm:"column:exports_limit"`
}
