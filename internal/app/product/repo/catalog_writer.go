package repo

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/Komy007/kkshop-sub000/internal/app/product/contracts"
	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
	"github.com/Komy007/kkshop-sub000/internal/models/m_product"
	"github.com/Komy007/kkshop-sub000/internal/models/m_translation"
	"github.com/Komy007/kkshop-sub000/internal/pkg/committer"
)

// planApplier is satisfied by *committer.Committer.
type planApplier interface {
	Apply(ctx context.Context, plan *committer.Plan) error
}

// CatalogWriter implements contracts.CatalogWriter for Spanner.
type CatalogWriter struct {
	committer    planApplier
	products     *m_product.Model
	translations *m_translation.Model
}

var _ contracts.CatalogWriter = (*CatalogWriter)(nil)

// NewCatalogWriter creates a new CatalogWriter.
func NewCatalogWriter(client *spanner.Client) *CatalogWriter {
	return newCatalogWriter(committer.NewCommitter(client))
}

func newCatalogWriter(c planApplier) *CatalogWriter {
	return &CatalogWriter{
		committer:    c,
		products:     m_product.NewModel(),
		translations: m_translation.NewModel(),
	}
}

// ProductInsertMut creates the mutation for the products row.
func (w *CatalogWriter) ProductInsertMut(product *domain.Product) *spanner.Mutation {
	return w.products.InsertMut(productToData(product))
}

// TranslationInsertMuts creates one mutation per bundle, ordered by language
// code. Rows share the product's created_at.
func (w *CatalogWriter) TranslationInsertMuts(product *domain.Product, bundles domain.BundleSet) []*spanner.Mutation {
	muts := make([]*spanner.Mutation, 0, len(bundles))
	for _, lang := range slices.Sorted(maps.Keys(bundles)) {
		muts = append(muts, w.translations.InsertMut(bundleToData(product.ID(), bundles[lang], product.CreatedAt())))
	}
	return muts
}

// CreateProduct inserts the product and its bundles in one read-write transaction.
func (w *CatalogWriter) CreateProduct(ctx context.Context, product *domain.Product, bundles domain.BundleSet) error {
	plan := committer.NewPlan()
	plan.Add(w.ProductInsertMut(product))
	plan.AddMultiple(w.TranslationInsertMuts(product, bundles))

	if err := w.committer.Apply(ctx, plan); err != nil {
		return classifyWriteError(product, err)
	}
	return nil
}

// classifyWriteError maps a Spanner status to domain errors. AlreadyExists
// comes from either the sku index, whose name appears in the message, or the
// primary key.
func classifyWriteError(product *domain.Product, err error) error {
	if spanner.ErrCode(err) == codes.AlreadyExists {
		if strings.Contains(spanner.ErrDesc(err), m_product.SKUIndex) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateSKU, product.SKU())
		}
		return fmt.Errorf("%w: %d", domain.ErrDuplicateProductID, product.ID())
	}
	return fmt.Errorf("failed to write product %s: %w", product.SKU(), err)
}
