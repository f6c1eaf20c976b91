package repo

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"

	"github.com/Komy007/kkshop-sub000/internal/app/product/contracts"
	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
	"github.com/Komy007/kkshop-sub000/internal/models/m_product"
	"github.com/Komy007/kkshop-sub000/internal/models/m_translation"
)

func productToData(p *domain.Product) *m_product.Data {
	data := &m_product.Data{
		ProductID: p.ID(),
		SKU:       p.SKU(),
		PriceUSD:  *p.Price().Rat(),
		StockQty:  p.StockQty(),
		Status:    string(p.Status()),
		CreatedAt: p.CreatedAt(),
	}
	if c := p.CategoryID(); c != nil {
		data.CategoryID = spanner.NullInt64{Int64: *c, Valid: true}
	}
	if url := p.ImageURL(); url != "" {
		data.ImageURL = spanner.NullString{StringVal: url, Valid: true}
	}
	return data
}

func bundleToData(productID int64, b domain.Bundle, createdAt time.Time) *m_translation.Data {
	data := &m_translation.Data{
		ProductID:   productID,
		CreatedAt:   createdAt,
		LangCode:    string(b.Lang),
		Name:        b.Name,
		ShortDesc:   nullString(b.ShortDesc),
		DetailDesc:  nullString(b.DetailDesc),
		SEOKeywords: nullString(b.SEOKeywords),
	}
	for _, f := range b.Fallbacks {
		data.FallbackFields = append(data.FallbackFields, string(f))
	}
	return data
}

func nullString(s string) spanner.NullString {
	if s == "" {
		return spanner.NullString{}
	}
	return spanner.NullString{StringVal: s, Valid: true}
}

// catalogRow is one products row LEFT JOINed with product_translations.
// Translation columns are aliased with a t_ prefix and are NULL when the
// join found nothing.
type catalogRow struct {
	ProductID  int64              `spanner:"product_id"`
	SKU        string             `spanner:"sku"`
	PriceUSD   big.Rat            `spanner:"price_usd"`
	StockQty   int64              `spanner:"stock_qty"`
	CategoryID spanner.NullInt64  `spanner:"category_id"`
	Status     string             `spanner:"status"`
	ImageURL   spanner.NullString `spanner:"image_url"`
	CreatedAt  time.Time          `spanner:"created_at"`

	LangCode       spanner.NullString `spanner:"t_lang_code"`
	Name           spanner.NullString `spanner:"t_name"`
	ShortDesc      spanner.NullString `spanner:"t_short_desc"`
	DetailDesc     spanner.NullString `spanner:"t_detail_desc"`
	SEOKeywords    spanner.NullString `spanner:"t_seo_keywords"`
	FallbackFields []string           `spanner:"t_fallback_fields"`
}

var catalogColumns = []string{
	"p." + m_product.ProductID,
	"p." + m_product.SKU,
	"p." + m_product.PriceUSD,
	"p." + m_product.StockQty,
	"p." + m_product.CategoryID,
	"p." + m_product.Status,
	"p." + m_product.ImageURL,
	"p." + m_product.CreatedAt,
	"t." + m_translation.LangCode + " AS t_" + m_translation.LangCode,
	"t." + m_translation.Name + " AS t_" + m_translation.Name,
	"t." + m_translation.ShortDesc + " AS t_" + m_translation.ShortDesc,
	"t." + m_translation.DetailDesc + " AS t_" + m_translation.DetailDesc,
	"t." + m_translation.SEOKeywords + " AS t_" + m_translation.SEOKeywords,
	"t." + m_translation.FallbackFields + " AS t_" + m_translation.FallbackFields,
}

// numericScale is the number of fractional digits Spanner NUMERIC stores.
const numericScale = 9

func (r *catalogRow) toDTO() *contracts.ProductDTO {
	dto := &contracts.ProductDTO{
		ProductID: r.ProductID,
		SKU:       r.SKU,
		PriceUSD:  decimal.NewFromBigRat(&r.PriceUSD, numericScale),
		StockQty:  r.StockQty,
		Status:    r.Status,
		ImageURL:  r.ImageURL.StringVal,
		CreatedAt: r.CreatedAt,
	}
	if r.CategoryID.Valid {
		c := r.CategoryID.Int64
		dto.CategoryID = &c
	}

	// lang_code is part of the translation key, so a NULL means no match.
	if r.LangCode.Valid {
		b := &domain.Bundle{
			Lang:        domain.Language(r.LangCode.StringVal),
			Name:        r.Name.StringVal,
			ShortDesc:   r.ShortDesc.StringVal,
			DetailDesc:  r.DetailDesc.StringVal,
			SEOKeywords: r.SEOKeywords.StringVal,
		}
		for _, f := range r.FallbackFields {
			b.Fallbacks = append(b.Fallbacks, domain.Field(f))
		}
		dto.Translation = b
	}

	return dto
}
