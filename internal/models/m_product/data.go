package m_product

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the products table.
type Data struct {
	ProductID  int64              `spanner:"product_id"`
	SKU        string             `spanner:"sku"`
	PriceUSD   big.Rat            `spanner:"price_usd"`
	StockQty   int64              `spanner:"stock_qty"`
	CategoryID spanner.NullInt64  `spanner:"category_id"`
	Status     string             `spanner:"status"`
	ImageURL   spanner.NullString `spanner:"image_url"`
	CreatedAt  time.Time          `spanner:"created_at"`
}
