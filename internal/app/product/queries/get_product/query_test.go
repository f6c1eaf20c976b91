package get_product

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
	"github.com/Komy007/kkshop-sub000/internal/app/product/repo/memory"
	"github.com/Komy007/kkshop-sub000/internal/logging/logtest"
)

func TestQuery_Execute(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	p, err := domain.NewProduct(7, "COSRX-7", decimal.NewFromInt(12), 3, nil, domain.StatusActive, "", time.Now())
	require.NoError(t, err)
	set := domain.BundleSet{}
	for _, l := range domain.DefaultLanguages() {
		set[l] = domain.Bundle{Lang: l, Name: "Toner " + string(l)}
	}
	require.NoError(t, store.CreateProduct(ctx, p, set))

	t.Run("found", func(t *testing.T) {
		q := NewQuery(store, domain.DefaultLanguages(), nil)

		got, err := q.Execute(ctx, &Request{ProductID: 7, Lang: domain.LangChinese})
		require.NoError(t, err)
		assert.Equal(t, "Toner zh", got.Translation.Name)
	})

	t.Run("not found", func(t *testing.T) {
		q := NewQuery(store, domain.DefaultLanguages(), nil)

		_, err := q.Execute(ctx, &Request{ProductID: 8, Lang: domain.LangChinese})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("unsupported language", func(t *testing.T) {
		q := NewQuery(store, domain.DefaultLanguages(), nil)

		_, err := q.Execute(ctx, &Request{ProductID: 7, Lang: "de"})
		assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
	})

	t.Run("placeholder on drift", func(t *testing.T) {
		store.DeleteTranslation(7, domain.LangEnglish)
		rec := logtest.New()
		q := NewQuery(store, domain.DefaultLanguages(), rec)

		got, err := q.Execute(ctx, &Request{ProductID: 7, Lang: domain.LangEnglish})
		require.NoError(t, err)
		assert.Equal(t, "[COSRX-7]", got.Translation.Name)
		assert.True(t, got.Translation.Placeholder)
		assert.Len(t, rec.Find("warn", "catalog.read.translation_missing"), 1)
	})
}
