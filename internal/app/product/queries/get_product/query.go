package get_product

import (
	"context"
	"fmt"

	"github.com/Komy007/kkshop-sub000/internal/app/product/contracts"
	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
	"github.com/Komy007/kkshop-sub000/internal/app/product/queries/list_products"
	"github.com/Komy007/kkshop-sub000/internal/logging"
)

// Request contains the product ID and display language.
type Request struct {
	ProductID int64
	Lang      domain.Language
}

// Query handles the get product query use case.
type Query struct {
	readModel contracts.ReadModel
	languages domain.Languages
	logger    logging.Logger
}

// NewQuery creates a new get product query.
func NewQuery(readModel contracts.ReadModel, languages domain.Languages, logger logging.Logger) *Query {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Query{
		readModel: readModel,
		languages: languages,
		logger:    logger,
	}
}

// Execute retrieves one ACTIVE product rendered in req.Lang.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ProductDTO, error) {
	if !q.languages.Contains(req.Lang) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, req.Lang)
	}

	product, err := q.readModel.GetProduct(ctx, req.ProductID, req.Lang)
	if err != nil {
		return nil, err
	}

	list_products.FillMissingTranslation(ctx, q.logger, product, req.Lang)
	return product, nil
}
