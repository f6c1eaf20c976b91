// Package http exposes the catalog over a JSON API.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Komy007/kkshop-sub000/internal/app/product/contracts"
	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
	"github.com/Komy007/kkshop-sub000/internal/app/product/queries/get_product"
	"github.com/Komy007/kkshop-sub000/internal/app/product/queries/list_products"
	"github.com/Komy007/kkshop-sub000/internal/app/product/usecases/create_product"
	"github.com/Komy007/kkshop-sub000/internal/logging"
)

// maxBodyBytes caps admin submissions; detail descriptions are HTML.
const maxBodyBytes = 1 << 20

// ProductCreator runs the create product use case.
type ProductCreator interface {
	Execute(ctx context.Context, req *create_product.Request) (*create_product.Result, error)
}

// ProductLister runs the list products query.
type ProductLister interface {
	Execute(ctx context.Context, req *list_products.Request) ([]*contracts.ProductDTO, error)
}

// ProductGetter runs the get product query.
type ProductGetter interface {
	Execute(ctx context.Context, req *get_product.Request) (*contracts.ProductDTO, error)
}

// CatalogHandler serves the admin and storefront catalog endpoints.
type CatalogHandler struct {
	create ProductCreator
	list   ProductLister
	get    ProductGetter
	logger logging.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(create ProductCreator, list ProductLister, get ProductGetter, logger logging.Logger) *CatalogHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &CatalogHandler{
		create: create,
		list:   list,
		get:    get,
		logger: logger,
	}
}

// Routes returns a mux with every catalog route registered, wrapped in the
// request logging middleware.
func (h *CatalogHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/admin/products", h.CreateProduct)
	mux.HandleFunc("GET /api/v1/products", h.ListProducts)
	mux.HandleFunc("GET /api/v1/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /healthz", h.Health)
	return RequestLogger(h.logger)(mux)
}

// CreateProductResponse is the body of POST /api/v1/admin/products.
type CreateProductResponse struct {
	Success       bool   `json:"success"`
	ProductID     int64  `json:"productId,omitempty,string"`
	FallbackCount int    `json:"fallbackCount"`
	Message       string `json:"message"`
}

// Product is one catalog entry rendered in a single language.
type Product struct {
	ID                 int64           `json:"id,string"`
	SKU                string          `json:"sku"`
	PriceUSD           decimal.Decimal `json:"priceUsd"`
	StockQty           int64           `json:"stockQty"`
	CategoryID         *int64          `json:"categoryId"`
	Status             string          `json:"status"`
	ImageURL           string          `json:"imageUrl"`
	CreatedAt          string          `json:"createdAt"`
	Lang               string          `json:"lang"`
	Name               string          `json:"name"`
	ShortDesc          string          `json:"shortDesc"`
	DetailDesc         string          `json:"detailDesc"`
	SEOKeywords        string          `json:"seoKeywords"`
	TranslationMissing bool            `json:"translationMissing"`
}

// ListProductsResponse is the body of GET /api/v1/products.
type ListProductsResponse struct {
	Success  bool      `json:"success"`
	Lang     string    `json:"lang"`
	Products []Product `json:"products"`
}

// GetProductResponse is the body of GET /api/v1/products/{id}.
type GetProductResponse struct {
	Success bool    `json:"success"`
	Product Product `json:"product"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateProduct handles POST /api/v1/admin/products.
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req create_product.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %w", errMalformedRequest, err))
		return
	}

	result, err := h.create.Execute(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	message := "product created"
	if n := result.FallbackCount(); n > 0 {
		message = fmt.Sprintf("product created; %d translated fields fell back to source text", n)
	}

	writeJSON(w, http.StatusCreated, CreateProductResponse{
		Success:       true,
		ProductID:     result.ProductID,
		FallbackCount: result.FallbackCount(),
		Message:       message,
	})
}

// ListProducts handles GET /api/v1/products.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &list_products.Request{Lang: domain.Language(q.Get("lang"))}

	var err error
	if req.CategoryID, err = optionalInt64(q.Get("category"), "category"); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.PageSize, err = optionalInt(q.Get("limit"), "limit"); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Offset, err = optionalInt(q.Get("offset"), "offset"); err != nil {
		h.writeError(w, r, err)
		return
	}

	products, err := h.list.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := ListProductsResponse{
		Success:  true,
		Lang:     string(req.Lang),
		Products: make([]Product, 0, len(products)),
	}
	for _, p := range products {
		resp.Products = append(resp.Products, toProduct(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetProduct handles GET /api/v1/products/{id}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, r, fmt.Errorf("%w: invalid product id %q", errMalformedRequest, r.PathValue("id")))
		return
	}

	product, err := h.get.Execute(r.Context(), &get_product.Request{
		ProductID: id,
		Lang:      domain.Language(r.URL.Query().Get("lang")),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, GetProductResponse{Success: true, Product: toProduct(product)})
}

// Health handles GET /healthz.
func (h *CatalogHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *CatalogHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, message := statusFor(err)
	if code == http.StatusInternalServerError {
		h.logger.WithContext(r.Context()).Error("http.request.failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
	}
	writeJSON(w, code, errorResponse{Success: false, Message: message})
}

func toProduct(p *contracts.ProductDTO) Product {
	out := Product{
		ID:         p.ProductID,
		SKU:        p.SKU,
		PriceUSD:   p.PriceUSD,
		StockQty:   p.StockQty,
		CategoryID: p.CategoryID,
		Status:     string(p.Status),
		ImageURL:   p.ImageURL,
		CreatedAt:  p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if t := p.Translation; t != nil {
		out.Lang = string(t.Lang)
		out.Name = t.Name
		out.ShortDesc = t.ShortDesc
		out.DetailDesc = t.DetailDesc
		out.SEOKeywords = t.SEOKeywords
		out.TranslationMissing = t.Placeholder
	}
	return out
}

func optionalInt64(raw, name string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", errMalformedRequest, name)
	}
	return &v, nil
}

func optionalInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", errMalformedRequest, name)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
