package contracts

import (
	"context"

	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
)

// CatalogWriter persists a product together with its translation bundles.
type CatalogWriter interface {
	// CreateProduct writes the product and one bundle per entry of bundles in a
	// single transaction. Either everything is written or nothing is.
	// A taken sku returns domain.ErrDuplicateSKU.
	CreateProduct(ctx context.Context, product *domain.Product, bundles domain.BundleSet) error
}
