package handler

import (
	"github.com/gofiber/fiber/v2"

	"marketplace/internal/service"
	"marketplace/internal/specs"
)

type animalQuery struct {
	PageQuery
	Search      string  `query:"search"`
	SpeciesID   int64   `query:"speciesId"`
	OwnerID     int64   `query:"ownerId"`
	Gender      string  `query:"gender"`
	MinPrice    float64 `query:"minPrice"`
	MaxPrice    float64 `query:"maxPrice"`
	MinAge      int     `query:"minAge"`
	MaxAge      int     `query:"maxAge"`
	Governorate string  `query:"governorate"`
	City        string  `query:"city"`
	Sort        string  `query:"sort"`
}

// ListAnimals pages active animal listings.
//
// @Summary List animals
// @Tags catalog
// @Param speciesId query int false "species id"
// @Param minPrice query number false "minimum price"
// @Param pageIndex query int false "1-based page"
// @Param pageSize query int false "page size (max 50)"
// @Success 200 {object} map[string]any
// @Router /animals [get]
func ListAnimals(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q animalQuery
		if ok, err := parseQuery(c, &q); !ok {
			return err
		}
		res, err := svc.ListAnimals(c.UserContext(), specs.AnimalParams{
			Search:      q.Search,
			SpeciesID:   q.SpeciesID,
			OwnerID:     q.OwnerID,
			Gender:      q.Gender,
			MinPrice:    q.MinPrice,
			MaxPrice:    q.MaxPrice,
			MinAge:      q.MinAge,
			MaxAge:      q.MaxAge,
			Governorate: q.Governorate,
			City:        q.City,
			Sort:        q.Sort,
			Paging:      q.paging(),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetAnimal returns one active animal.
//
// @Summary Get animal
// @Tags catalog
// @Param id path int true "animal id"
// @Success 200 {object} model.Animal
// @Failure 404 {object} errorPayload
// @Router /animals/{id} [get]
func GetAnimal(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}
		a, err := svc.GetAnimal(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(a)
	}
}

type accessoryQuery struct {
	PageQuery
	Search    string  `query:"search"`
	Category  string  `query:"category"`
	SpeciesID int64   `query:"speciesId"`
	SellerID  int64   `query:"sellerId"`
	MinPrice  float64 `query:"minPrice"`
	MaxPrice  float64 `query:"maxPrice"`
	InStock   bool    `query:"inStock"`
	Sort      string  `query:"sort"`
}

func ListAccessories(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q accessoryQuery
		if ok, err := parseQuery(c, &q); !ok {
			return err
		}
		res, err := svc.ListAccessories(c.UserContext(), specs.AccessoryParams{
			Search:    q.Search,
			Category:  q.Category,
			SpeciesID: q.SpeciesID,
			SellerID:  q.SellerID,
			MinPrice:  q.MinPrice,
			MaxPrice:  q.MaxPrice,
			InStock:   q.InStock,
			Sort:      q.Sort,
			Paging:    q.paging(),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

type doctorQuery struct {
	PageQuery
	Search        string `query:"search"`
	Specialty     string `query:"specialty"`
	Governorate   string `query:"governorate"`
	City          string `query:"city"`
	MinExperience int    `query:"minExperience"`
	VerifiedOnly  bool   `query:"verifiedOnly"`
	Sort          string `query:"sort"`
}

func ListDoctors(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q doctorQuery
		if ok, err := parseQuery(c, &q); !ok {
			return err
		}
		res, err := svc.ListDoctors(c.UserContext(), specs.DoctorParams{
			Search:        q.Search,
			Specialty:     q.Specialty,
			Governorate:   q.Governorate,
			City:          q.City,
			MinExperience: q.MinExperience,
			VerifiedOnly:  q.VerifiedOnly,
			Sort:          q.Sort,
			Paging:        q.paging(),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

type pharmacyQuery struct {
	PageQuery
	Search      string `query:"search"`
	Governorate string `query:"governorate"`
	City        string `query:"city"`
	Open24Hours bool   `query:"open24Hours"`
	Sort        string `query:"sort"`
}

func ListPharmacies(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q pharmacyQuery
		if ok, err := parseQuery(c, &q); !ok {
			return err
		}
		res, err := svc.ListPharmacies(c.UserContext(), specs.PharmacyParams{
			Search:      q.Search,
			Governorate: q.Governorate,
			City:        q.City,
			Open24Hours: q.Open24Hours,
			Sort:        q.Sort,
			Paging:      q.paging(),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

type productQuery struct {
	PageQuery
	Search               string  `query:"search"`
	Category             string  `query:"category"`
	PharmacyID           int64   `query:"pharmacyId"`
	MinPrice             float64 `query:"minPrice"`
	MaxPrice             float64 `query:"maxPrice"`
	InStock              bool    `query:"inStock"`
	RequiresPrescription *bool   `query:"requiresPrescription"`
	Sort                 string  `query:"sort"`
}

func ListProducts(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q productQuery
		if ok, err := parseQuery(c, &q); !ok {
			return err
		}
		res, err := svc.ListProducts(c.UserContext(), specs.ProductParams{
			Search:               q.Search,
			Category:             q.Category,
			PharmacyID:           q.PharmacyID,
			MinPrice:             q.MinPrice,
			MaxPrice:             q.MaxPrice,
			InStock:              q.InStock,
			RequiresPrescription: q.RequiresPrescription,
			Sort:                 q.Sort,
			Paging:               q.paging(),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

func ListSpecies(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.ListSpecies(c.UserContext(), c.Query("search"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
