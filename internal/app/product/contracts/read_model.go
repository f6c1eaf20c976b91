package contracts

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
)

// Page size bounds for catalog listings.
const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// ProductDTO is a product joined with its bundle for one display language.
type ProductDTO struct {
	ProductID  int64
	SKU        string
	PriceUSD   decimal.Decimal
	StockQty   int64
	CategoryID *int64
	Status     string
	ImageURL   string
	CreatedAt  time.Time

	// Translation is nil when no bundle exists for the requested language.
	Translation *domain.Bundle
}

// ListFilter defines filtering options for listing products.
type ListFilter struct {
	Lang       domain.Language
	CategoryID *int64
	PageSize   int
	Offset     int
}

// EffectivePageSize clamps PageSize into [1, MaxPageSize].
func (f *ListFilter) EffectivePageSize() int {
	switch {
	case f.PageSize <= 0:
		return DefaultPageSize
	case f.PageSize > MaxPageSize:
		return MaxPageSize
	default:
		return f.PageSize
	}
}

// ReadModel answers storefront queries. Only ACTIVE products are returned,
// newest first, then by product id.
type ReadModel interface {
	// ListProducts returns a page of products with the bundle for filter.Lang.
	ListProducts(ctx context.Context, filter *ListFilter) ([]*ProductDTO, error)

	// GetProduct returns one ACTIVE product with the bundle for lang, or
	// domain.ErrProductNotFound.
	GetProduct(ctx context.Context, productID int64, lang domain.Language) (*ProductDTO, error)
}

// MissingTranslation identifies an ACTIVE product without a bundle for Lang.
type MissingTranslation struct {
	ProductID int64
	SKU       string
	Lang      domain.Language
}

// TranslationAuditor finds products that violate the one-bundle-per-language rule.
type TranslationAuditor interface {
	MissingTranslations(ctx context.Context, langs domain.Languages) ([]MissingTranslation, error)
}
