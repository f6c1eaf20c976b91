package create_product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"

	"github.com/Komy007/kkshop-sub000/internal/app/product/contracts"
	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
	"github.com/Komy007/kkshop-sub000/internal/logging"
	"github.com/Komy007/kkshop-sub000/internal/pkg/clock"
	"github.com/Komy007/kkshop-sub000/internal/pkg/ids"
)

// Request is an admin product submission written in a single language.
type Request struct {
	SKU        string           `json:"sku"`
	PriceUSD   *decimal.Decimal `json:"priceUsd"`
	StockQty   int64            `json:"stockQty"`
	CategoryID *int64           `json:"categoryId"`
	Status     string           `json:"status"`
	ImageURL   string           `json:"imageUrl"`

	SourceLang  domain.Language `json:"sourceLang"`
	Name        string          `json:"name"`
	ShortDesc   string          `json:"shortDesc"`
	DetailDesc  string          `json:"detailDesc"`
	SEOKeywords string          `json:"seoKeywords"`
}

// Result reports the created product and which fields fell back to source text.
type Result struct {
	ProductID int64
	Fallbacks map[domain.Language][]domain.Field
}

// FallbackCount returns the total number of degraded fields.
func (r *Result) FallbackCount() int {
	n := 0
	for _, fields := range r.Fallbacks {
		n += len(fields)
	}
	return n
}

// Translator expands a source bundle into one bundle per supported language.
type Translator interface {
	Translate(ctx context.Context, source domain.Bundle) domain.BundleSet
	Languages() domain.Languages
}

// Interactor handles the create product use case.
type Interactor struct {
	translator Translator
	writer     contracts.CatalogWriter
	clock      clock.Clock
	logger     logging.Logger
	newID      func() int64
}

// NewInteractor creates a new create product interactor.
func NewInteractor(
	translator Translator,
	writer contracts.CatalogWriter,
	clock clock.Clock,
	logger logging.Logger,
) *Interactor {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Interactor{
		translator: translator,
		writer:     writer,
		clock:      clock,
		logger:     logger,
		newID:      ids.NewInt64,
	}
}

// Execute validates the submission, translates it into every supported
// language and stores the product with all bundles in one transaction.
// Translation runs before the transaction is opened.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	log := i.logger.WithContext(ctx)

	// 1. Validate before any side effect
	if err := i.validate(req); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSubmission, err)
	}

	// 2. Build the aggregate
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSubmission, err)
	}
	product, err := domain.NewProduct(
		i.newID(),
		req.SKU,
		*req.PriceUSD,
		req.StockQty,
		req.CategoryID,
		status,
		req.ImageURL,
		i.clock.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSubmission, err)
	}

	// 3. Fan out translations; never fails
	bundles := i.translator.Translate(ctx, domain.Bundle{
		Lang:        req.SourceLang,
		Name:        req.Name,
		ShortDesc:   optionalText(req.ShortDesc),
		DetailDesc:  optionalText(req.DetailDesc),
		SEOKeywords: optionalText(req.SEOKeywords),
	})

	// 4. Refuse to write an incomplete set
	if err := bundles.Covers(i.translator.Languages()); err != nil {
		log.Error("catalog.product.incomplete_bundles", "sku", product.SKU(), "error", err.Error())
		return nil, fmt.Errorf("failed to assemble translations for %s: %w", product.SKU(), err)
	}

	// 5. Single atomic write
	if err := i.writer.CreateProduct(ctx, product, bundles); err != nil {
		if !errors.Is(err, domain.ErrDuplicateSKU) {
			log.Error("catalog.product.write_failed", "sku", product.SKU(), "error", err.Error())
		}
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	result := &Result{ProductID: product.ID(), Fallbacks: map[domain.Language][]domain.Field{}}
	for lang, b := range bundles {
		if b.IsDegraded() {
			result.Fallbacks[lang] = append([]domain.Field(nil), b.Fallbacks...)
		}
	}

	log.Info("catalog.product.created",
		"sku", product.SKU(),
		"product_id", product.ID(),
		"languages", len(bundles),
		"fallbacks", result.FallbackCount(),
	)

	return result, nil
}

// validate checks the submission. It returns validation.Errors keyed by the
// request's JSON field names.
func (i *Interactor) validate(req *Request) error {
	if req == nil {
		return validation.NewError("validation_request_required", "request is required")
	}

	languages := i.translator.Languages()
	allowed := make([]interface{}, 0, len(languages))
	for _, l := range languages {
		allowed = append(allowed, l)
	}

	return validation.ValidateStruct(req,
		validation.Field(&req.SKU, validation.Required, validation.By(notBlank), validation.Length(1, 64)),
		validation.Field(&req.PriceUSD, validation.Required, validation.By(storablePrice)),
		validation.Field(&req.StockQty, validation.Min(int64(0))),
		validation.Field(&req.CategoryID, validation.By(positiveCategory)),
		validation.Field(&req.Status, validation.By(knownStatus)),
		validation.Field(&req.ImageURL, is.URL),
		validation.Field(&req.SourceLang, validation.Required, validation.In(allowed...).Error("must be a supported language")),
		validation.Field(&req.Name, validation.Required, validation.By(notBlank)),
	)
}

// optionalText maps whitespace-only input to absent.
func optionalText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if s != "" && strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}

// Prices are stored as decimal(12,2) on the relational backend.
const priceScale = 2

var maxPrice = decimal.New(1, 10).Sub(decimal.New(1, -priceScale))

func storablePrice(value interface{}) error {
	d, _ := value.(*decimal.Decimal)
	switch {
	case d == nil:
		return nil
	case d.IsNegative():
		return validation.NewError("validation_price_negative", "must not be negative")
	case !d.Equal(d.Truncate(priceScale)):
		return validation.NewError("validation_price_scale", "must have at most 2 decimal places")
	case d.GreaterThan(maxPrice):
		return validation.NewError("validation_price_range", "must not exceed "+maxPrice.StringFixed(priceScale))
	}
	return nil
}

func positiveCategory(value interface{}) error {
	c, _ := value.(*int64)
	if c != nil && *c <= 0 {
		return validation.NewError("validation_category_invalid", "must be a positive id")
	}
	return nil
}

func knownStatus(value interface{}) error {
	s, _ := value.(string)
	if _, err := domain.ParseStatus(s); err != nil {
		return validation.NewError("validation_status_invalid", "must be ACTIVE or INACTIVE")
	}
	return nil
}
