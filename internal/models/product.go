package models

// Product represents a record in the product catalog.
// The ID is supplied by the caller at creation time and is immutable afterwards.
type Product struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name        string  `json:"name" gorm:"type:varchar(100);not null"`
	Description string  `json:"description,omitempty" gorm:"type:varchar(500)"`
	Price       float64 `json:"price" gorm:"not null"`
	Quantity    int64   `json:"quantity" gorm:"not null"`
}
