package service

import (
	"context"
	"fmt"

	"marketplace/internal/model"
	"marketplace/internal/repository"
	"marketplace/internal/specs"
)

// CatalogService lists the read-only catalog: animals, accessories, doctors,
// pharmacies and their products.
type CatalogService interface {
	ListAnimals(ctx context.Context, p specs.AnimalParams) (*repository.PaginationResponse[model.Animal], error)

	// GetAnimal returns an active animal with its species and owner.
	GetAnimal(ctx context.Context, id int64) (*model.Animal, error)

	ListAccessories(ctx context.Context, p specs.AccessoryParams) (*repository.PaginationResponse[model.Accessory], error)
	ListDoctors(ctx context.Context, p specs.DoctorParams) (*repository.PaginationResponse[model.Doctor], error)
	ListPharmacies(ctx context.Context, p specs.PharmacyParams) (*repository.PaginationResponse[model.Pharmacy], error)
	ListProducts(ctx context.Context, p specs.ProductParams) (*repository.PaginationResponse[model.Product], error)
	ListSpecies(ctx context.Context, search string) ([]model.Species, error)
}

type catalogService struct {
	uow *repository.Factory
}

var _ CatalogService = (*catalogService)(nil)

func NewCatalogService(uow *repository.Factory) CatalogService {
	return &catalogService{uow: uow}
}

func (s *catalogService) ListAnimals(ctx context.Context, p specs.AnimalParams) (*repository.PaginationResponse[model.Animal], error) {
	repo := repository.For[model.Animal, int64](s.uow.New())
	return page(ctx, repo, specs.NewAnimalFilterSpec(p), specs.NewAnimalCountSpec(p), p.Paging)
}

func (s *catalogService) GetAnimal(ctx context.Context, id int64) (*model.Animal, error) {
	repo := repository.For[model.Animal, int64](s.uow.New())
	a, err := repo.GetWithSpecification(ctx, specs.NewAnimalDetailSpec(id))
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("animal %d: %w", id, ErrNotFound)
	}
	return a, nil
}

func (s *catalogService) ListAccessories(ctx context.Context, p specs.AccessoryParams) (*repository.PaginationResponse[model.Accessory], error) {
	repo := repository.For[model.Accessory, int64](s.uow.New())
	return page(ctx, repo, specs.NewAccessoryFilterSpec(p), specs.NewAccessoryCountSpec(p), p.Paging)
}

func (s *catalogService) ListDoctors(ctx context.Context, p specs.DoctorParams) (*repository.PaginationResponse[model.Doctor], error) {
	repo := repository.For[model.Doctor, int64](s.uow.New())
	return page(ctx, repo, specs.NewDoctorFilterSpec(p), specs.NewDoctorCountSpec(p), p.Paging)
}

func (s *catalogService) ListPharmacies(ctx context.Context, p specs.PharmacyParams) (*repository.PaginationResponse[model.Pharmacy], error) {
	repo := repository.For[model.Pharmacy, int64](s.uow.New())
	return page(ctx, repo, specs.NewPharmacyFilterSpec(p), specs.NewPharmacyCountSpec(p), p.Paging)
}

func (s *catalogService) ListProducts(ctx context.Context, p specs.ProductParams) (*repository.PaginationResponse[model.Product], error) {
	repo := repository.For[model.Product, int64](s.uow.New())
	return page(ctx, repo, specs.NewProductFilterSpec(p), specs.NewProductCountSpec(p), p.Paging)
}

func (s *catalogService) ListSpecies(ctx context.Context, search string) ([]model.Species, error) {
	repo := repository.For[model.Species, int64](s.uow.New())
	return repo.GetAllWithSpecification(ctx, specs.NewSpeciesSpec(search))
}
