package model

import "strings"

// Enum-like columns are stored as their canonical names. Parsing is strict and
// case-insensitive: surrounding whitespace or partial names do not match.

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

var genders = []Gender{GenderMale, GenderFemale}

func ParseGender(s string) (Gender, bool) { return parseEnum(s, genders) }

type AccessoryCategory string

const (
	AccessoryFood     AccessoryCategory = "Food"
	AccessoryToy      AccessoryCategory = "Toy"
	AccessoryGrooming AccessoryCategory = "Grooming"
	AccessoryHousing  AccessoryCategory = "Housing"
	AccessoryHealth   AccessoryCategory = "Health"
)

var accessoryCategories = []AccessoryCategory{
	AccessoryFood, AccessoryToy, AccessoryGrooming, AccessoryHousing, AccessoryHealth,
}

func ParseAccessoryCategory(s string) (AccessoryCategory, bool) {
	return parseEnum(s, accessoryCategories)
}

type Specialty string

const (
	SpecialtyGeneral     Specialty = "General"
	SpecialtySurgery     Specialty = "Surgery"
	SpecialtyDermatology Specialty = "Dermatology"
	SpecialtyDentistry   Specialty = "Dentistry"
	SpecialtyNutrition   Specialty = "Nutrition"
)

var specialties = []Specialty{
	SpecialtyGeneral, SpecialtySurgery, SpecialtyDermatology, SpecialtyDentistry, SpecialtyNutrition,
}

func ParseSpecialty(s string) (Specialty, bool) { return parseEnum(s, specialties) }

type ProductCategory string

const (
	ProductMedicine   ProductCategory = "Medicine"
	ProductSupplement ProductCategory = "Supplement"
	ProductVaccine    ProductCategory = "Vaccine"
	ProductHygiene    ProductCategory = "Hygiene"
	ProductEquipment  ProductCategory = "Equipment"
)

var productCategories = []ProductCategory{
	ProductMedicine, ProductSupplement, ProductVaccine, ProductHygiene, ProductEquipment,
}

func ParseProductCategory(s string) (ProductCategory, bool) {
	return parseEnum(s, productCategories)
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderConfirmed OrderStatus = "Confirmed"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
	OrderCancelled OrderStatus = "Cancelled"
)

var orderStatuses = []OrderStatus{
	OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled,
}

func ParseOrderStatus(s string) (OrderStatus, bool) { return parseEnum(s, orderStatuses) }

// Cancellable reports whether an order in this status may still be cancelled.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPending || s == OrderConfirmed
}

type PostCategory string

const (
	PostGeneral      PostCategory = "General"
	PostAdoption     PostCategory = "Adoption"
	PostHealth       PostCategory = "Health"
	PostLostAndFound PostCategory = "LostAndFound"
	PostQuestion     PostCategory = "Question"
)

var postCategories = []PostCategory{
	PostGeneral, PostAdoption, PostHealth, PostLostAndFound, PostQuestion,
}

func ParsePostCategory(s string) (PostCategory, bool) { return parseEnum(s, postCategories) }

func parseEnum[E ~string](s string, values []E) (E, bool) {
	for _, v := range values {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	var zero E
	return zero, false
}
