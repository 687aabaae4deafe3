package model

// CategoryRule maps journal lines into a named category. Rules are evaluated
// in order; within one rule the account-id set is checked before code
// prefixes, then name substrings. First match wins.
type CategoryRule struct {
	Key          string
	Label        string
	AccountIDs   []int64
	CodePrefixes []string
	NameIncludes []string
}

// ReceiptMatrixRow is one category row of a category-by-month matrix.
// Values is indexed parallel to the matrix Months slice.
type ReceiptMatrixRow struct {
	Key      string
	Label    string
	Values   []float64
	Total    float64
	Children []ReceiptMatrixRow
}

// ReceiptMatrix aggregates signed line amounts into category rows by month.
// Column totals and the grand total are derived from top-level rows only;
// child rows are a breakdown of amounts already counted in their parent.
type ReceiptMatrix struct {
	Months     []string // "YYYY-MM", one per covered month
	Rows       []ReceiptMatrixRow
	ColTotals  []float64
	GrandTotal float64
}

// RowByKey returns the top-level row with the given key, or nil.
func (m *ReceiptMatrix) RowByKey(key string) *ReceiptMatrixRow {
	for i := range m.Rows {
		if m.Rows[i].Key == key {
			return &m.Rows[i]
		}
	}
	return nil
}
