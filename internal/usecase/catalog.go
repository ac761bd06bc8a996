package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/furnirent/internal/domain/errors"
	"github.com/polkiloo/furnirent/internal/domain/model"
	"github.com/polkiloo/furnirent/internal/domain/repository"
)

// ProductInput describes a catalog item added by an administrator.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Stock       int
}

// CatalogUseCase exposes the product catalog.
type CatalogUseCase struct {
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository, logger *slog.Logger) *CatalogUseCase {
	return &CatalogUseCase{products: products, logger: logger}
}

// AddProduct stores a new active product.
func (u *CatalogUseCase) AddProduct(ctx context.Context, caller model.Identity, in ProductInput) (*model.Product, error) {
	if !caller.IsAdmin() {
		return nil, domainErrors.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Stock < 0 {
		return nil, domainErrors.ErrInvalidLine
	}
	if in.Price.IsNegative() {
		return nil, domainErrors.ErrInvalidAmount
	}

	product, err := u.products.Create(ctx, &model.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price.Round(2),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Stock:       in.Stock,
		Active:      true,
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("product added", slog.String("product_id", product.ID), slog.Int("stock", product.Stock))
	return product, nil
}

// Product returns an active product.
func (u *CatalogUseCase) Product(ctx context.Context, id string) (*model.Product, error) {
	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, domainErrors.ErrNotFound
	}
	return product, nil
}

// Products lists active products.
func (u *CatalogUseCase) Products(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx, true)
}
