// Package gormrepo is the PostgreSQL catalog backend, built on GORM.
package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Komy007/kkshop-sub000/internal/app/product/contracts"
	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
)

// Open connects to PostgreSQL. Driver errors are translated so unique
// violations surface as gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), Config())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// Config is the gorm configuration shared by every dialect.
func Config() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// Migrate creates or updates the catalog tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ProductRecord{}, &TranslationRecord{})
}

// Repository implements the catalog contracts on a SQL database.
type Repository struct {
	db *gorm.DB
}

var (
	_ contracts.CatalogWriter      = (*Repository)(nil)
	_ contracts.ReadModel          = (*Repository)(nil)
	_ contracts.TranslationAuditor = (*Repository)(nil)
)

// NewRepository creates a Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateProduct inserts the product and its bundles in one transaction.
func (r *Repository) CreateProduct(ctx context.Context, product *domain.Product, bundles domain.BundleSet) error {
	rec := toProductRecord(product)

	translations := make([]TranslationRecord, 0, len(bundles))
	for _, lang := range slices.Sorted(maps.Keys(bundles)) {
		translations = append(translations, toTranslationRecord(product.ID(), bundles[lang], product.CreatedAt()))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Translations").Create(rec).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}
			return fmt.Errorf("failed to insert product %s: %w", product.SKU(), err)
		}
		if len(translations) == 0 {
			return nil
		}
		if err := tx.Create(&translations).Error; err != nil {
			return fmt.Errorf("failed to insert translations for %s: %w", product.SKU(), err)
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.classifyDuplicate(ctx, product)
	}
	return err
}

// classifyDuplicate tells a taken sku from a taken id. The translated driver
// error drops the constraint name, so the sku is looked up after rollback.
func (r *Repository) classifyDuplicate(ctx context.Context, product *domain.Product) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&ProductRecord{}).Where("sku = ?", product.SKU()).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to classify duplicate for %s: %w", product.SKU(), err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateSKU, product.SKU())
	}
	return fmt.Errorf("%w: %d", domain.ErrDuplicateProductID, product.ID())
}

type catalogRow struct {
	ProductID  int64           `gorm:"column:product_id"`
	SKU        string          `gorm:"column:sku"`
	PriceUSD   decimal.Decimal `gorm:"column:price_usd"`
	StockQty   int64           `gorm:"column:stock_qty"`
	CategoryID *int64          `gorm:"column:category_id"`
	Status     string          `gorm:"column:status"`
	ImageURL   *string         `gorm:"column:image_url"`
	CreatedAt  time.Time       `gorm:"column:created_at"`

	LangCode       *string `gorm:"column:t_lang_code"`
	Name           *string `gorm:"column:t_name"`
	ShortDesc      *string `gorm:"column:t_short_desc"`
	DetailDesc     *string `gorm:"column:t_detail_desc"`
	SEOKeywords    *string `gorm:"column:t_seo_keywords"`
	FallbackFields *string `gorm:"column:t_fallback_fields"`
}

const catalogSelect = "p.product_id, p.sku, p.price_usd, p.stock_qty, p.category_id, p.status, p.image_url, p.created_at, " +
	"t.lang_code AS t_lang_code, t.name AS t_name, t.short_desc AS t_short_desc, " +
	"t.detail_desc AS t_detail_desc, t.seo_keywords AS t_seo_keywords, t.fallback_fields AS t_fallback_fields"

func (r *Repository) catalogQuery(ctx context.Context, lang domain.Language) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products AS p").
		Select(catalogSelect).
		Joins("LEFT JOIN product_translations AS t ON t.product_id = p.product_id AND t.lang_code = ?", string(lang)).
		Where("p.status = ?", string(domain.StatusActive))
}

// ListProducts returns a page of ACTIVE products joined with filter.Lang bundles.
func (r *Repository) ListProducts(ctx context.Context, filter *contracts.ListFilter) ([]*contracts.ProductDTO, error) {
	q := r.catalogQuery(ctx, filter.Lang)
	if filter.CategoryID != nil {
		q = q.Where("p.category_id = ?", *filter.CategoryID)
	}

	var rows []catalogRow
	err := q.Order("p.created_at DESC").
		Order("p.product_id ASC").
		Offset(max(filter.Offset, 0)).
		Limit(filter.EffectivePageSize()).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	out := make([]*contracts.ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDTO())
	}
	return out, nil
}

// GetProduct returns one ACTIVE product joined with its lang bundle.
func (r *Repository) GetProduct(ctx context.Context, productID int64, lang domain.Language) (*contracts.ProductDTO, error) {
	var rows []catalogRow
	err := r.catalogQuery(ctx, lang).
		Where("p.product_id = ?", productID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read product: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrProductNotFound
	}
	return rows[0].toDTO(), nil
}

// MissingTranslations lists ACTIVE products lacking a bundle, one query per language.
func (r *Repository) MissingTranslations(ctx context.Context, langs domain.Languages) ([]contracts.MissingTranslation, error) {
	var out []contracts.MissingTranslation

	for _, lang := range langs {
		var rows []struct {
			ProductID int64  `gorm:"column:product_id"`
			SKU       string `gorm:"column:sku"`
		}
		err := r.db.WithContext(ctx).
			Table("products AS p").
			Select("p.product_id, p.sku").
			Joins("LEFT JOIN product_translations AS t ON t.product_id = p.product_id AND t.lang_code = ?", string(lang)).
			Where("p.status = ? AND t.product_id IS NULL", string(domain.StatusActive)).
			Order("p.product_id ASC").
			Scan(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to audit %s translations: %w", lang, err)
		}
		for _, row := range rows {
			out = append(out, contracts.MissingTranslation{ProductID: row.ProductID, SKU: row.SKU, Lang: lang})
		}
	}

	return out, nil
}

func (r *catalogRow) toDTO() *contracts.ProductDTO {
	dto := &contracts.ProductDTO{
		ProductID:  r.ProductID,
		SKU:        r.SKU,
		PriceUSD:   r.PriceUSD,
		StockQty:   r.StockQty,
		CategoryID: r.CategoryID,
		Status:     r.Status,
		ImageURL:   deref(r.ImageURL),
		CreatedAt:  r.CreatedAt,
	}
	if r.LangCode != nil {
		dto.Translation = &domain.Bundle{
			Lang:        domain.Language(*r.LangCode),
			Name:        deref(r.Name),
			ShortDesc:   deref(r.ShortDesc),
			DetailDesc:  deref(r.DetailDesc),
			SEOKeywords: deref(r.SEOKeywords),
			Fallbacks:   splitFallbacks(deref(r.FallbackFields)),
		}
	}
	return dto
}
