package query

import "fmt"

// Condition represents a WHERE or ON clause condition.
// Implementations generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

// eqCondition implements equality comparison (field = value).
type eqCondition struct {
	field string
	value interface{}
}

// Eq creates a condition comparing a column to a bound value.
// Example: Eq("status", "ACTIVE") generates "status = @p0"
func Eq(field string, value interface{}) Condition {
	return &eqCondition{field: field, value: value}
}

func (c *eqCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s = @%s", c.field, paramName), map[string]interface{}{
		paramName: c.value,
	}
}

type columnsEqCondition struct {
	left, right string
}

// ColumnsEq compares two columns, typically in a join.
// Example: ColumnsEq("t.product_id", "p.product_id")
func ColumnsEq(left, right string) Condition {
	return &columnsEqCondition{left: left, right: right}
}

func (c *columnsEqCondition) SQL(int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s = %s", c.left, c.right), map[string]interface{}{}
}

// isNullCondition implements IS NULL comparison.
type isNullCondition struct {
	field string
}

// IsNull creates a condition matching NULL values.
// Against the right side of a LEFT JOIN it selects unmatched rows.
func IsNull(field string) Condition {
	return &isNullCondition{field: field}
}

func (c *isNullCondition) SQL(int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s IS NULL", c.field), map[string]interface{}{}
}
