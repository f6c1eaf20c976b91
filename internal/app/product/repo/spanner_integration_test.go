//go:build integration

package repo

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Komy007/kkshop-sub000/internal/app/product/contracts"
	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
	"github.com/Komy007/kkshop-sub000/internal/models/m_product"
	"github.com/Komy007/kkshop-sub000/internal/models/m_translation"
)

// Run against the emulator after applying migrations/:
//
//	SPANNER_EMULATOR_HOST=localhost:9010 go test -tags integration ./internal/app/product/repo/...
func setupSpanner(t *testing.T) *spanner.Client {
	t.Helper()
	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}

	db := os.Getenv("SPANNER_TEST_DATABASE")
	if db == "" {
		db = "projects/test-project/instances/dev-instance/databases/catalog-db"
	}

	client, err := spanner.NewClient(context.Background(), db)
	require.NoError(t, err, "failed to create Spanner client")

	cleanDatabase(t, client)
	t.Cleanup(func() {
		cleanDatabase(t, client)
		client.Close()
	})
	return client
}

// cleanDatabase empties the catalog; translations go with their parent rows.
func cleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()
	_, err := client.Apply(context.Background(), []*spanner.Mutation{
		spanner.Delete(m_product.TableName, spanner.AllKeys()),
	})
	require.NoError(t, err, "failed to clean database")
}

func countRows(t *testing.T, client *spanner.Client, table string) int64 {
	t.Helper()
	iter := client.Single().Query(context.Background(), spanner.Statement{
		SQL: fmt.Sprintf("SELECT COUNT(*) FROM %s", table),
	})
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err)
	var n int64
	require.NoError(t, row.Columns(&n))
	return n
}

var nextID atomic.Int64

func integrationProduct(t *testing.T, sku string, status domain.ProductStatus) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(time.Now().UnixNano()+nextID.Add(1), sku, decimal.RequireFromString("12.34"),
		5, nil, status, "", time.Now().UTC())
	require.NoError(t, err)
	return p
}

func TestSpanner_CreateAndRead(t *testing.T) {
	client := setupSpanner(t)
	ctx := context.Background()
	writer := NewCatalogWriter(client)
	readModel := NewReadModel(client)

	bundles := testBundles()
	km := bundles[domain.LangKhmer]
	km.Fallbacks = []domain.Field{domain.FieldName}
	bundles[domain.LangKhmer] = km

	p := integrationProduct(t, "COSRX-1", domain.StatusActive)
	require.NoError(t, writer.CreateProduct(ctx, p, bundles))

	assert.Equal(t, int64(1), countRows(t, client, m_product.TableName))
	assert.Equal(t, int64(4), countRows(t, client, m_translation.TableName))

	got, err := readModel.GetProduct(ctx, p.ID(), domain.LangKhmer)
	require.NoError(t, err)
	assert.Equal(t, "COSRX-1", got.SKU)
	assert.True(t, decimal.RequireFromString("12.34").Equal(got.PriceUSD))
	require.NotNil(t, got.Translation)
	assert.Equal(t, "Essence km", got.Translation.Name)
	assert.Equal(t, []domain.Field{domain.FieldName}, got.Translation.Fallbacks)

	list, err := readModel.ListProducts(ctx, &contracts.ListFilter{Lang: domain.LangEnglish})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Essence en", list[0].Translation.Name)
}

func TestSpanner_DuplicateSKUWritesNothing(t *testing.T) {
	client := setupSpanner(t)
	ctx := context.Background()
	writer := NewCatalogWriter(client)

	require.NoError(t, writer.CreateProduct(ctx, integrationProduct(t, "DUP-1", domain.StatusActive), testBundles()))

	err := writer.CreateProduct(ctx, integrationProduct(t, "DUP-1", domain.StatusActive), testBundles())
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
	assert.Equal(t, int64(1), countRows(t, client, m_product.TableName))
	assert.Equal(t, int64(4), countRows(t, client, m_translation.TableName))
}

func TestSpanner_ConcurrentSameSKU(t *testing.T) {
	client := setupSpanner(t)
	ctx := context.Background()
	writer := NewCatalogWriter(client)

	const attempts = 6
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int64
		dupes     atomic.Int64
	)
	for i := 0; i < attempts; i++ {
		p := integrationProduct(t, "RACE-1", domain.StatusActive)
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := writer.CreateProduct(ctx, p, testBundles())
			switch {
			case err == nil:
				succeeded.Add(1)
			case assert.ErrorIs(t, err, domain.ErrDuplicateSKU):
				dupes.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), succeeded.Load())
	assert.Equal(t, int64(attempts-1), dupes.Load())
	assert.Equal(t, int64(4), countRows(t, client, m_translation.TableName))
}

func TestSpanner_DriftIsAudited(t *testing.T) {
	client := setupSpanner(t)
	ctx := context.Background()
	writer := NewCatalogWriter(client)
	readModel := NewReadModel(client)
	auditor := NewAuditor(client)

	active := integrationProduct(t, "DRIFT-1", domain.StatusActive)
	inactive := integrationProduct(t, "DRIFT-2", domain.StatusInactive)
	require.NoError(t, writer.CreateProduct(ctx, active, testBundles()))
	require.NoError(t, writer.CreateProduct(ctx, inactive, testBundles()))

	_, err := client.Apply(ctx, []*spanner.Mutation{
		m_translation.NewModel().DeleteMut(active.ID(), string(domain.LangChinese)),
		m_translation.NewModel().DeleteMut(inactive.ID(), string(domain.LangChinese)),
	})
	require.NoError(t, err)

	missing, err := auditor.MissingTranslations(ctx, domain.DefaultLanguages())
	require.NoError(t, err)
	assert.Equal(t, []contracts.MissingTranslation{
		{ProductID: active.ID(), SKU: "DRIFT-1", Lang: domain.LangChinese},
	}, missing)

	got, err := readModel.GetProduct(ctx, active.ID(), domain.LangChinese)
	require.NoError(t, err)
	assert.Nil(t, got.Translation)

	_, err = readModel.GetProduct(ctx, inactive.ID(), domain.LangEnglish)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
