package m_translation

import "cloud.google.com/go/spanner"

// Model provides type-safe operations on the product_translations table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates an insert mutation for one bundle row.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			ProductID,
			LangCode,
			Name,
			ShortDesc,
			DetailDesc,
			SEOKeywords,
			FallbackFields,
			CreatedAt,
		},
		[]interface{}{
			data.ProductID,
			data.LangCode,
			data.Name,
			data.ShortDesc,
			data.DetailDesc,
			data.SEOKeywords,
			data.FallbackFields,
			data.CreatedAt,
		},
	)
}

// DeleteMut removes the bundle for one language.
func (m *Model) DeleteMut(productID int64, lang string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{productID, lang})
}
