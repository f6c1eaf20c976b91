package m_translation

// Column names for the product_translations table.
const (
	TableName = "product_translations"

	ProductID      = "product_id"
	LangCode       = "lang_code"
	Name           = "name"
	ShortDesc      = "short_desc"
	DetailDesc     = "detail_desc"
	SEOKeywords    = "seo_keywords"
	FallbackFields = "fallback_fields"
	CreatedAt      = "created_at"
)
