package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BasicSelect(t *testing.T) {
	stmt := From("products").
		Select("product_id", "sku", "status").
		Build()

	assert.Equal(t, "SELECT product_id, sku, status FROM products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("products").Build()

	assert.Equal(t, "SELECT * FROM products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_MultipleWhereConditions(t *testing.T) {
	stmt := From("products").
		Select("product_id").
		Where(Eq("category_id", int64(3))).
		Where(Eq("status", "ACTIVE")).
		Build()

	assert.Equal(t, "SELECT product_id FROM products WHERE category_id = @p0 AND status = @p1", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": int64(3),
		"p1": "ACTIVE",
	}, stmt.Params)
}

func TestBuilder_LeftJoinNumbersJoinParamsFirst(t *testing.T) {
	stmt := From("products p").
		Select("p.product_id", "t.name").
		LeftJoin("product_translations t",
			ColumnsEq("t.product_id", "p.product_id"),
			Eq("t.lang_code", "km"),
		).
		Where(Eq("p.status", "ACTIVE")).
		Build()

	assert.Equal(t,
		"SELECT p.product_id, t.name FROM products p "+
			"LEFT JOIN product_translations t ON t.product_id = p.product_id AND t.lang_code = @p0 "+
			"WHERE p.status = @p1",
		stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "km",
		"p1": "ACTIVE",
	}, stmt.Params)
}

func TestBuilder_UnmatchedJoinRows(t *testing.T) {
	stmt := From("products p").
		Select("p.product_id").
		LeftJoin("product_translations t", ColumnsEq("t.product_id", "p.product_id"), Eq("t.lang_code", "zh")).
		Where(Eq("p.status", "ACTIVE")).
		Where(IsNull("t.product_id")).
		Build()

	assert.Contains(t, stmt.SQL, "WHERE p.status = @p1 AND t.product_id IS NULL")
	assert.Len(t, stmt.Params, 2)
}

func TestBuilder_OrderByChains(t *testing.T) {
	stmt := From("products").
		Select("product_id").
		OrderBy("created_at", Desc).
		OrderBy("product_id", Asc).
		Build()

	assert.Equal(t, "SELECT product_id FROM products ORDER BY created_at DESC, product_id ASC", stmt.SQL)
}

func TestBuilder_LimitAndOffset(t *testing.T) {
	tests := []struct {
		name       string
		limit      int64
		offset     int64
		wantSuffix string
		wantParams map[string]interface{}
	}{
		{name: "none", wantSuffix: "FROM products", wantParams: map[string]interface{}{}},
		{name: "limit", limit: 10, wantSuffix: "LIMIT @limit", wantParams: map[string]interface{}{"limit": int64(10)}},
		{name: "offset", offset: 20, wantSuffix: "OFFSET @offset", wantParams: map[string]interface{}{"offset": int64(20)}},
		{
			name: "both", limit: 10, offset: 20,
			wantSuffix: "LIMIT @limit OFFSET @offset",
			wantParams: map[string]interface{}{"limit": int64(10), "offset": int64(20)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := From("products").Select("product_id").Limit(tt.limit).Offset(tt.offset).Build()
			assert.True(t, len(stmt.SQL) >= len(tt.wantSuffix))
			assert.Equal(t, tt.wantSuffix, stmt.SQL[len(stmt.SQL)-len(tt.wantSuffix):])
			assert.Equal(t, tt.wantParams, stmt.Params)
		})
	}
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("products p").Select("p.product_id")

	stmt1 := base.Where(Eq("p.status", "ACTIVE")).Build()
	stmt2 := base.LeftJoin("product_translations t", ColumnsEq("t.product_id", "p.product_id")).Build()

	assert.Contains(t, stmt1.SQL, "p.status = @p0")
	assert.NotContains(t, stmt1.SQL, "JOIN")

	assert.Contains(t, stmt2.SQL, "LEFT JOIN")
	assert.NotContains(t, stmt2.SQL, "status")

	assert.Equal(t, "SELECT p.product_id FROM products p", base.Build().SQL)
}

func TestCondition_Eq(t *testing.T) {
	sql, params := Eq("category_id", int64(9)).SQL(5)

	assert.Equal(t, "category_id = @p5", sql)
	assert.Equal(t, map[string]interface{}{"p5": int64(9)}, params)
}

func TestCondition_ColumnsEqHasNoParams(t *testing.T) {
	sql, params := ColumnsEq("a.id", "b.id").SQL(0)

	assert.Equal(t, "a.id = b.id", sql)
	assert.Empty(t, params)
}

func TestBuilder_String(t *testing.T) {
	str := From("products").
		Select("product_id").
		Where(Eq("status", "ACTIVE")).
		String()

	require.NotEmpty(t, str)
	assert.Contains(t, str, "SQL:")
	assert.Contains(t, str, "Params:")
	assert.Contains(t, str, "products")
}
