package list_products

import (
	"context"
	"fmt"

	"github.com/Komy007/kkshop-sub000/internal/app/product/contracts"
	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
	"github.com/Komy007/kkshop-sub000/internal/logging"
)

// Request contains the display language, filtering and pagination parameters.
type Request struct {
	Lang       domain.Language
	CategoryID *int64
	PageSize   int
	Offset     int
}

// Query handles the list products query use case.
type Query struct {
	readModel contracts.ReadModel
	languages domain.Languages
	logger    logging.Logger
}

// NewQuery creates a new list products query.
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

// Execute lists ACTIVE products rendered in req.Lang. A product without a
// stored bundle for that language is returned with a placeholder bundle.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.ProductDTO, error) {
	if !q.languages.Contains(req.Lang) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, req.Lang)
	}

	filter := &contracts.ListFilter{
		Lang:       req.Lang,
		CategoryID: req.CategoryID,
		PageSize:   req.PageSize,
		Offset:     req.Offset,
	}

	products, err := q.readModel.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		FillMissingTranslation(ctx, q.logger, p, req.Lang)
	}
	return products, nil
}

// FillMissingTranslation installs a placeholder bundle when p has none for
// lang and logs the drift.
func FillMissingTranslation(ctx context.Context, logger logging.Logger, p *contracts.ProductDTO, lang domain.Language) {
	if p.Translation != nil {
		return
	}
	placeholder := domain.PlaceholderBundle(lang, p.SKU)
	p.Translation = &placeholder

	logger.WithContext(ctx).Warn("catalog.read.translation_missing",
		"product_id", p.ProductID,
		"sku", p.SKU,
		"lang", string(lang),
	)
}
