// Package memory is an in-memory catalog backend for tests and local runs.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Komy007/kkshop-sub000/internal/app/product/contracts"
	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
)

type translationKey struct {
	productID int64
	lang      domain.Language
}

// Store keeps products and bundles in maps guarded by one RWMutex.
// A write either stores the product and every bundle or nothing.
type Store struct {
	mu           sync.RWMutex
	products     map[int64]*domain.Product
	skuIndex     map[string]int64
	translations map[translationKey]domain.Bundle
	failWrite    error
}

var (
	_ contracts.CatalogWriter      = (*Store)(nil)
	_ contracts.ReadModel          = (*Store)(nil)
	_ contracts.TranslationAuditor = (*Store)(nil)
)

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		products:     make(map[int64]*domain.Product),
		skuIndex:     make(map[string]int64),
		translations: make(map[translationKey]domain.Bundle),
	}
}

// CreateProduct stores the product and its bundles atomically.
func (s *Store) CreateProduct(ctx context.Context, product *domain.Product, bundles domain.BundleSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failWrite; err != nil {
		s.failWrite = nil
		return fmt.Errorf("failed to write product %s: %w", product.SKU(), err)
	}
	if _, taken := s.skuIndex[product.SKU()]; taken {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateSKU, product.SKU())
	}
	if _, taken := s.products[product.ID()]; taken {
		return fmt.Errorf("%w: %d", domain.ErrDuplicateProductID, product.ID())
	}

	s.products[product.ID()] = product
	s.skuIndex[product.SKU()] = product.ID()
	for lang, b := range bundles {
		s.translations[translationKey{productID: product.ID(), lang: lang}] = cloneBundle(b)
	}
	return nil
}

// ListProducts returns ACTIVE products, newest first, with filter.Lang bundles.
func (s *Store) ListProducts(ctx context.Context, filter *contracts.ListFilter) ([]*contracts.ProductDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if !p.IsActive() {
			continue
		}
		if filter.CategoryID != nil {
			c := p.CategoryID()
			if c == nil || *c != *filter.CategoryID {
				continue
			}
		}
		matched = append(matched, p)
	}
	slices.SortFunc(matched, func(a, b *domain.Product) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID(), b.ID())
	})

	start := min(max(filter.Offset, 0), len(matched))
	end := min(start+filter.EffectivePageSize(), len(matched))

	out := make([]*contracts.ProductDTO, 0, end-start)
	for _, p := range matched[start:end] {
		out = append(out, s.toDTO(p, filter.Lang))
	}
	return out, nil
}

// GetProduct returns one ACTIVE product with its lang bundle.
func (s *Store) GetProduct(ctx context.Context, productID int64, lang domain.Language) (*contracts.ProductDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[productID]
	if !ok || !p.IsActive() {
		return nil, domain.ErrProductNotFound
	}
	return s.toDTO(p, lang), nil
}

// MissingTranslations lists ACTIVE products lacking a bundle for any of langs,
// ordered by language then product id.
func (s *Store) MissingTranslations(ctx context.Context, langs domain.Languages) ([]contracts.MissingTranslation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.products))
	for id, p := range s.products {
		if p.IsActive() {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	var out []contracts.MissingTranslation
	for _, lang := range langs {
		for _, id := range ids {
			if _, ok := s.translations[translationKey{productID: id, lang: lang}]; !ok {
				out = append(out, contracts.MissingTranslation{ProductID: id, SKU: s.products[id].SKU(), Lang: lang})
			}
		}
	}
	return out, nil
}

// DeleteTranslation removes one bundle, leaving the product in place.
func (s *Store) DeleteTranslation(productID int64, lang domain.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.translations, translationKey{productID: productID, lang: lang})
}

// FailNextWrite makes the next CreateProduct return err without writing.
func (s *Store) FailNextWrite(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrite = err
}

// Counts returns the number of stored products and bundles.
func (s *Store) Counts() (products, translations int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products), len(s.translations)
}

// Translation returns the stored bundle for (productID, lang).
func (s *Store) Translation(productID int64, lang domain.Language) (domain.Bundle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.translations[translationKey{productID: productID, lang: lang}]
	return cloneBundle(b), ok
}

func (s *Store) toDTO(p *domain.Product, lang domain.Language) *contracts.ProductDTO {
	dto := &contracts.ProductDTO{
		ProductID:  p.ID(),
		SKU:        p.SKU(),
		PriceUSD:   p.Price(),
		StockQty:   p.StockQty(),
		CategoryID: p.CategoryID(),
		Status:     string(p.Status()),
		ImageURL:   p.ImageURL(),
		CreatedAt:  p.CreatedAt(),
	}
	if b, ok := s.translations[translationKey{productID: p.ID(), lang: lang}]; ok {
		copied := cloneBundle(b)
		dto.Translation = &copied
	}
	return dto
}

func cloneBundle(b domain.Bundle) domain.Bundle {
	b.Fallbacks = slices.Clone(b.Fallbacks)
	return b
}
