package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus represents whether a product is visible in the catalog.
type ProductStatus string

const (
	StatusActive   ProductStatus = "ACTIVE"
	StatusInactive ProductStatus = "INACTIVE"
)

// ParseStatus normalizes s, defaulting to ACTIVE when s is empty.
func ParseStatus(s string) (ProductStatus, error) {
	switch ProductStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case "", StatusActive:
		return StatusActive, nil
	case StatusInactive:
		return StatusInactive, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Product is the language-neutral master record. Its translations live in
// Bundles and are created together with it.
type Product struct {
	id         int64
	sku        string
	price      decimal.Decimal
	stockQty   int64
	categoryID *int64
	status     ProductStatus
	imageURL   string
	createdAt  time.Time
}

// NewProduct creates a new Product aggregate.
func NewProduct(
	id int64,
	sku string,
	price decimal.Decimal,
	stockQty int64,
	categoryID *int64,
	status ProductStatus,
	imageURL string,
	now time.Time,
) (*Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, ErrEmptySKU
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if stockQty < 0 {
		return nil, ErrNegativeStock
	}
	if status != StatusActive && status != StatusInactive {
		return nil, ErrInvalidStatus
	}

	var category *int64
	if categoryID != nil {
		c := *categoryID
		category = &c
	}

	return &Product{
		id:         id,
		sku:        sku,
		price:      price,
		stockQty:   stockQty,
		categoryID: category,
		status:     status,
		imageURL:   strings.TrimSpace(imageURL),
		createdAt:  now,
	}, nil
}

// Getters
func (p *Product) ID() int64              { return p.id }
func (p *Product) SKU() string            { return p.sku }
func (p *Product) Price() decimal.Decimal { return p.price }
func (p *Product) StockQty() int64        { return p.stockQty }
func (p *Product) Status() ProductStatus  { return p.status }
func (p *Product) ImageURL() string       { return p.imageURL }
func (p *Product) CreatedAt() time.Time   { return p.createdAt }
func (p *Product) IsActive() bool         { return p.status == StatusActive }

// CategoryID returns a copy of the category reference, nil when absent.
func (p *Product) CategoryID() *int64 {
	if p.categoryID == nil {
		return nil
	}
	c := *p.categoryID
	return &c
}
