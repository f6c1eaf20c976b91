package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/Komy007/kkshop-sub000/internal/app/product/contracts"
	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
	"github.com/Komy007/kkshop-sub000/internal/models/m_product"
	"github.com/Komy007/kkshop-sub000/internal/models/m_translation"
	"github.com/Komy007/kkshop-sub000/internal/pkg/query"
)

// ReadModel implements contracts.ReadModel for Spanner.
type ReadModel struct {
	client *spanner.Client
}

var _ contracts.ReadModel = (*ReadModel)(nil)

// NewReadModel creates a new ReadModel.
func NewReadModel(client *spanner.Client) *ReadModel {
	return &ReadModel{client: client}
}

// catalogQuery selects ACTIVE products LEFT JOINed with their bundle for lang.
func catalogQuery(lang domain.Language) *query.Builder {
	return query.From(m_product.TableName+" p").
		Select(catalogColumns...).
		LeftJoin(m_translation.TableName+" t",
			query.ColumnsEq("t."+m_translation.ProductID, "p."+m_product.ProductID),
			query.Eq("t."+m_translation.LangCode, string(lang)),
		).
		Where(query.Eq("p."+m_product.Status, string(domain.StatusActive)))
}

// listStatement builds the paginated listing statement for filter.
func listStatement(filter *contracts.ListFilter) spanner.Statement {
	q := catalogQuery(filter.Lang)
	if filter.CategoryID != nil {
		q = q.Where(query.Eq("p."+m_product.CategoryID, *filter.CategoryID))
	}
	return q.
		OrderBy("p."+m_product.CreatedAt, query.Desc).
		OrderBy("p."+m_product.ProductID, query.Asc).
		Limit(int64(filter.EffectivePageSize())).
		Offset(int64(filter.Offset)).
		Build()
}

// ListProducts returns a page of ACTIVE products joined with filter.Lang bundles.
func (rm *ReadModel) ListProducts(ctx context.Context, filter *contracts.ListFilter) ([]*contracts.ProductDTO, error) {
	iter := rm.client.Single().Query(ctx, listStatement(filter))
	defer iter.Stop()

	products := make([]*contracts.ProductDTO, 0, filter.EffectivePageSize())
	for {
		row, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		dto, err := decodeCatalogRow(row)
		if err != nil {
			return nil, err
		}
		products = append(products, dto)
	}

	return products, nil
}

// GetProduct returns one ACTIVE product joined with its lang bundle.
func (rm *ReadModel) GetProduct(ctx context.Context, productID int64, lang domain.Language) (*contracts.ProductDTO, error) {
	stmt := catalogQuery(lang).
		Where(query.Eq("p."+m_product.ProductID, productID)).
		Limit(1).
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	return decodeCatalogRow(row)
}

func decodeCatalogRow(row *spanner.Row) (*contracts.ProductDTO, error) {
	var r catalogRow
	if err := row.ToStruct(&r); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}
	return r.toDTO(), nil
}
