package model

import "time"

type Doctor struct {
	ID                int64     `gorm:"primaryKey" json:"id"`
	UserID            int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	User              *User     `json:"user,omitempty"`
	FullName          string    `gorm:"size:120;not null" json:"full_name"`
	Specialty         Specialty `gorm:"size:24;not null" json:"specialty"`
	ClinicName        string    `gorm:"size:120" json:"clinic_name"`
	Governorate       string    `gorm:"size:80;index" json:"governorate"`
	City              string    `gorm:"size:80" json:"city"`
	YearsOfExperience int       `gorm:"not null;default:0" json:"years_of_experience"`
	Rating            float64   `gorm:"not null;default:0" json:"rating"`
	IsVerified        bool      `gorm:"not null" json:"is_verified"`
	CreatedAt         time.Time `json:"created_at"`
}

type Pharmacy struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Governorate string    `gorm:"size:80;index" json:"governorate"`
	City        string    `gorm:"size:80" json:"city"`
	Address     string    `gorm:"size:255" json:"address"`
	Phone       string    `gorm:"size:32" json:"phone"`
	Open24Hours bool      `gorm:"column:open_24_hours;not null" json:"open_24_hours"`
	Products    []Product `json:"products,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Product is a pharmacy item. Stock is guarded by a CHECK constraint so a
// racing decrement can never persist a negative value.
type Product struct {
	ID                   int64           `gorm:"primaryKey" json:"id"`
	PharmacyID           int64           `gorm:"not null;index" json:"pharmacy_id"`
	Pharmacy             *Pharmacy       `json:"pharmacy,omitempty"`
	Name                 string          `gorm:"size:120;not null;index" json:"name"`
	Category             ProductCategory `gorm:"size:24;not null" json:"category"`
	Price                float64         `gorm:"not null;check:price >= 0" json:"price"`
	Stock                int             `gorm:"not null;check:stock >= 0" json:"stock"`
	RequiresPrescription bool            `gorm:"not null" json:"requires_prescription"`
	CreatedAt            time.Time       `json:"created_at"`
}
