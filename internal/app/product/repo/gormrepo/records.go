package gormrepo

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
)

// ProductRecord is the products table.
type ProductRecord struct {
	ProductID  int64           `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	SKU        string          `gorm:"column:sku;size:64;uniqueIndex;not null"`
	PriceUSD   decimal.Decimal `gorm:"column:price_usd;type:decimal(12,2);not null"`
	StockQty   int64           `gorm:"column:stock_qty;not null"`
	CategoryID *int64          `gorm:"column:category_id;index"`
	Status     string          `gorm:"column:status;size:16;not null;index"`
	ImageURL   *string         `gorm:"column:image_url"`
	CreatedAt  time.Time       `gorm:"column:created_at;not null;index"`

	Translations []TranslationRecord `gorm:"foreignKey:ProductID;references:ProductID;constraint:OnDelete:CASCADE"`
}

func (ProductRecord) TableName() string {
	return "products"
}

// TranslationRecord is one bundle, keyed by (product_id, lang_code).
type TranslationRecord struct {
	ProductID      int64     `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	LangCode       string    `gorm:"column:lang_code;primaryKey;size:8"`
	Name           string    `gorm:"column:name;not null"`
	ShortDesc      *string   `gorm:"column:short_desc"`
	DetailDesc     *string   `gorm:"column:detail_desc"`
	SEOKeywords    *string   `gorm:"column:seo_keywords"`
	FallbackFields string    `gorm:"column:fallback_fields;not null;default:''"`
	CreatedAt      time.Time `gorm:"column:created_at;not null"`
}

func (TranslationRecord) TableName() string {
	return "product_translations"
}

func toProductRecord(p *domain.Product) *ProductRecord {
	return &ProductRecord{
		ProductID:  p.ID(),
		SKU:        p.SKU(),
		PriceUSD:   p.Price(),
		StockQty:   p.StockQty(),
		CategoryID: p.CategoryID(),
		Status:     string(p.Status()),
		ImageURL:   optional(p.ImageURL()),
		CreatedAt:  p.CreatedAt(),
	}
}

func toTranslationRecord(productID int64, b domain.Bundle, now time.Time) TranslationRecord {
	fallbacks := make([]string, 0, len(b.Fallbacks))
	for _, f := range b.Fallbacks {
		fallbacks = append(fallbacks, string(f))
	}
	return TranslationRecord{
		ProductID:      productID,
		LangCode:       string(b.Lang),
		Name:           b.Name,
		ShortDesc:      optional(b.ShortDesc),
		DetailDesc:     optional(b.DetailDesc),
		SEOKeywords:    optional(b.SEOKeywords),
		FallbackFields: strings.Join(fallbacks, ","),
		CreatedAt:      now,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func splitFallbacks(s string) []domain.Field {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]domain.Field, 0, len(parts))
	for _, p := range parts {
		out = append(out, domain.Field(p))
	}
	return out
}
