package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ventascrm/sales-api/internal/core/domain"
	"github.com/ventascrm/sales-api/internal/core/ports"
)

// ProductService manages the catalog. Stock reservation is driven by
// OrderService through the repository, not through this service.
type ProductService struct {
	repo ports.ProductRepository
	log  zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, log: log}
}

func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, &domain.Product{
		Name:      input.Name,
		Stock:     input.Stock,
		Price:     input.Price,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create product")
		return nil, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) Search(ctx context.Context, text string) ([]*domain.Product, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []*domain.Product{}, nil
	}
	found, err := s.repo.Search(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	if found == nil {
		found = []*domain.Product{}
	}
	return found, nil
}

func (s *ProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, domain.ProductPatch{
		Name:  input.Name,
		Stock: input.Stock,
		Price: input.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}
