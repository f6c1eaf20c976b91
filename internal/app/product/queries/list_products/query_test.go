package list_products

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Komy007/kkshop-sub000/internal/app/product/contracts"
	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
	"github.com/Komy007/kkshop-sub000/internal/app/product/repo/memory"
	"github.com/Komy007/kkshop-sub000/internal/logging/logtest"
)

func seed(t *testing.T, store *memory.Store, id int64, sku string, age time.Duration, category *int64) {
	t.Helper()
	p, err := domain.NewProduct(id, sku, decimal.NewFromInt(10), 1, category, domain.StatusActive, "",
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC).Add(-age))
	require.NoError(t, err)

	set := domain.BundleSet{}
	for _, l := range domain.DefaultLanguages() {
		set[l] = domain.Bundle{Lang: l, Name: sku + " " + string(l)}
	}
	require.NoError(t, store.CreateProduct(context.Background(), p, set))
}

type failingReadModel struct {
	contracts.ReadModel
	err error
}

func (f failingReadModel) ListProducts(context.Context, *contracts.ListFilter) ([]*contracts.ProductDTO, error) {
	return nil, f.err
}

func TestQuery_Execute(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seed(t, store, 1, "COSRX-1", time.Hour, nil)
	seed(t, store, 2, "COSRX-2", 0, nil)

	t.Run("renders requested language", func(t *testing.T) {
		rec := logtest.New()
		q := NewQuery(store, domain.DefaultLanguages(), rec)

		got, err := q.Execute(ctx, &Request{Lang: domain.LangKorean})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "COSRX-2 ko", got[0].Translation.Name)
		assert.Equal(t, "COSRX-1 ko", got[1].Translation.Name)
		assert.Empty(t, rec.Find("warn", "catalog.read.translation_missing"))
	})

	t.Run("missing bundle becomes placeholder with warning", func(t *testing.T) {
		store.DeleteTranslation(1, domain.LangKhmer)
		rec := logtest.New()
		q := NewQuery(store, domain.DefaultLanguages(), rec)

		got, err := q.Execute(ctx, &Request{Lang: domain.LangKhmer})
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "COSRX-2 km", got[0].Translation.Name)
		assert.False(t, got[0].Translation.Placeholder)

		assert.Equal(t, "[COSRX-1]", got[1].Translation.Name)
		assert.True(t, got[1].Translation.Placeholder)
		assert.Empty(t, got[1].Translation.ShortDesc)

		warnings := rec.Find("warn", "catalog.read.translation_missing")
		require.Len(t, warnings, 1)
		lang, _ := warnings[0].Arg("lang")
		assert.Equal(t, "km", lang)
		id, _ := warnings[0].Arg("product_id")
		assert.Equal(t, int64(1), id)
	})

	t.Run("unsupported language", func(t *testing.T) {
		q := NewQuery(store, domain.DefaultLanguages(), nil)

		for _, lang := range []domain.Language{"", "fr"} {
			_, err := q.Execute(ctx, &Request{Lang: lang})
			assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
		}
	})

	t.Run("read model errors propagate", func(t *testing.T) {
		boom := errors.New("read failed")
		q := NewQuery(failingReadModel{err: boom}, domain.DefaultLanguages(), nil)

		_, err := q.Execute(ctx, &Request{Lang: domain.LangEnglish})
		assert.ErrorIs(t, err, boom)
	})
}
