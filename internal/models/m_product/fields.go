package m_product

// Column names for the products table.
const (
	TableName = "products"

	// SKUIndex enforces sku uniqueness.
	SKUIndex = "products_by_sku"

	ProductID  = "product_id"
	SKU        = "sku"
	PriceUSD   = "price_usd"
	StockQty   = "stock_qty"
	CategoryID = "category_id"
	Status     = "status"
	ImageURL   = "image_url"
	CreatedAt  = "created_at"
)
