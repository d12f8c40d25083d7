package service

import (
	"context"
	"errors"
	"fmt"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/draft"
	"scroll-and-bite/bite-svc/internal/storage"
)

type ProductService struct {
	products    ProductRepository
	restaurants RestaurantRepository
	objects     ObjectStorage
}

func NewProductService(products ProductRepository, restaurants RestaurantRepository, objects ObjectStorage) *ProductService {
	return &ProductService{products: products, restaurants: restaurants, objects: objects}
}

func (s *ProductService) ownRestaurant(ctx context.Context, owner string) (domain.RestaurantProfile, error) {
	restaurant, err := s.restaurants.GetRestaurantByOwner(ctx, owner)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.RestaurantProfile{}, ErrNoRestaurant
	}
	if err != nil {
		return domain.RestaurantProfile{}, fmt.Errorf("failed to load restaurant: %w", err)
	}
	return restaurant, nil
}

// Create uploads the image, if any, and inserts the product.
func (s *ProductService) Create(ctx context.Context, owner string, d draft.ProductDraft) (domain.Product, error) {
	if err := d.ValidateForUpload(); err != nil {
		return domain.Product{}, err
	}
	restaurant, err := s.ownRestaurant(ctx, owner)
	if err != nil {
		return domain.Product{}, err
	}

	var file string
	if d.Image != nil {
		file, err = s.objects.Upload(ctx, "products", d.Image, true)
		if err != nil {
			return domain.Product{}, fmt.Errorf("failed to upload product image: %w", err)
		}
	}

	product, err := s.products.InsertProduct(ctx, d.Product(restaurant.ID, file))
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// Update rewrites an existing product of the owner's restaurant. The old
// image and category are kept unless new ones are given.
func (s *ProductService) Update(ctx context.Context, owner string, d draft.ProductDraft) (domain.Product, error) {
	if err := d.ValidateForEdit(); err != nil {
		return domain.Product{}, err
	}
	existing, err := s.Get(ctx, owner, d.ID)
	if err != nil {
		return domain.Product{}, err
	}

	file := existing.File
	if d.Image != nil {
		file, err = s.objects.Upload(ctx, "products", d.Image, true)
		if err != nil {
			return domain.Product{}, fmt.Errorf("failed to upload product image: %w", err)
		}
	}
	if d.CategoryID == 0 {
		d.CategoryID = existing.CategoryID
	}

	product, err := s.products.UpsertProduct(ctx, d.Product(existing.RestaurantID, file))
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// Get returns a product of the owner's restaurant. Products of other
// restaurants yield ErrNotOwner.
func (s *ProductService) Get(ctx context.Context, owner string, id int64) (domain.Product, error) {
	restaurant, err := s.ownRestaurant(ctx, owner)
	if err != nil {
		return domain.Product{}, err
	}
	product, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if product.RestaurantID != restaurant.ID {
		return domain.Product{}, ErrNotOwner
	}
	return product, nil
}

func (s *ProductService) Public(ctx context.Context, id int64) (domain.Product, error) {
	return s.products.GetProduct(ctx, id)
}

func (s *ProductService) List(ctx context.Context, restaurantID int64, offset, limit uint64) ([]domain.Product, error) {
	return s.products.ListProducts(ctx, restaurantID, offset, limit)
}
