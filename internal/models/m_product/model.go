package m_product

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates an insert mutation. It fails on commit when the id or sku
// is already taken.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			ProductID,
			SKU,
			PriceUSD,
			StockQty,
			CategoryID,
			Status,
			ImageURL,
			CreatedAt,
		},
		[]interface{}{
			data.ProductID,
			data.SKU,
			data.PriceUSD,
			data.StockQty,
			data.CategoryID,
			data.Status,
			data.ImageURL,
			data.CreatedAt,
		},
	)
}
