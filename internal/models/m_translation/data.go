package m_translation

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data is one translation bundle row, keyed by (product_id, lang_code).
type Data struct {
	ProductID      int64              `spanner:"product_id"`
	LangCode       string             `spanner:"lang_code"`
	Name           string             `spanner:"name"`
	ShortDesc      spanner.NullString `spanner:"short_desc"`
	DetailDesc     spanner.NullString `spanner:"detail_desc"`
	SEOKeywords    spanner.NullString `spanner:"seo_keywords"`
	FallbackFields []string           `spanner:"fallback_fields"`
	CreatedAt      time.Time          `spanner:"created_at"`
}
