package model

import "time"

// User is a marketplace account. Sellers, buyers, doctors and authors are all users.
type User struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	DisplayName string    `gorm:"size:120;not null" json:"display_name"`
	Email       string    `gorm:"size:200;not null;uniqueIndex" json:"email"`
	Governorate string    `gorm:"size:80" json:"governorate,omitempty"`
	City        string    `gorm:"size:80" json:"city,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Species struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:80;not null;uniqueIndex" json:"name"`
}

// Animal is a listing of a live animal for sale or adoption.
type Animal struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:120;not null;index" json:"name"`
	SpeciesID   int64     `gorm:"not null;index" json:"species_id"`
	Species     *Species  `json:"species,omitempty"`
	OwnerID     int64     `gorm:"not null;index" json:"owner_id"`
	Owner       *User     `json:"owner,omitempty"`
	Gender      Gender    `gorm:"size:16;not null" json:"gender"`
	AgeMonths   int       `gorm:"not null;default:0" json:"age_months"`
	Price       float64   `gorm:"not null;check:price >= 0" json:"price"`
	Governorate string    `gorm:"size:80;index" json:"governorate"`
	City        string    `gorm:"size:80" json:"city"`
	IsActive    bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

type Accessory struct {
	ID        int64             `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"size:120;not null;index" json:"name"`
	Category  AccessoryCategory `gorm:"size:24;not null" json:"category"`
	SpeciesID *int64            `gorm:"index" json:"species_id,omitempty"`
	Species   *Species          `json:"species,omitempty"`
	SellerID  int64             `gorm:"not null;index" json:"seller_id"`
	Seller    *User             `json:"seller,omitempty"`
	Price     float64           `gorm:"not null;check:price >= 0" json:"price"`
	Stock     int               `gorm:"not null;check:stock >= 0" json:"stock"`
	IsActive  bool              `gorm:"not null;index" json:"is_active"`
	CreatedAt time.Time         `json:"created_at"`
}
