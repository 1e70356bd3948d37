package model

import "time"

type Order struct {
	ID        int64       `gorm:"primaryKey" json:"id"`
	BuyerID   int64       `gorm:"not null;index" json:"buyer_id"`
	Buyer     *User       `json:"buyer,omitempty"`
	Status    OrderStatus `gorm:"size:16;not null;index" json:"status"`
	Total     float64     `gorm:"not null;check:total >= 0" json:"total"`
	Items     []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID        int64    `gorm:"primaryKey" json:"id"`
	OrderID   int64    `gorm:"not null;index" json:"order_id"`
	ProductID int64    `gorm:"not null;index" json:"product_id"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice float64  `gorm:"not null" json:"unit_price"`
}

// Subtotal is the line total at the price captured when the order was placed.
func (i OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}
