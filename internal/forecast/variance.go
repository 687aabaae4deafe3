package forecast

import "github.com/parishworks/vestry/internal/model"

// VarianceCell is one category/month delta between two matrices.
type VarianceCell struct {
	Delta float64
	Pct   float64
}

// VarianceRow is the per-category variance with row-level totals.
type VarianceRow struct {
	Key        string
	Label      string
	Cells      []VarianceCell
	TotalDelta float64
	TotalPct   float64
}

// Variance is a cell-by-cell comparison of two matrices.
type Variance struct {
	Months     []string
	Rows       []VarianceRow
	ColDeltas  []float64
	GrandDelta float64
}

// Compare diffs matrix b against matrix a (delta = b − a), aligning rows by
// key and months by label. Rows or months present on only one side compare
// against zero. Percentages are delta / |a|, zero when a's value is zero.
func Compare(a, b model.ReceiptMatrix) Variance {
	months := unionMonths(a.Months, b.Months)
	monthIdx := make(map[string]int, len(months))
	for i, m := range months {
		monthIdx[m] = i
	}

	type side struct {
		values map[string][]float64
		labels map[string]string
		order  []string
	}
	collect := func(m model.ReceiptMatrix) side {
		s := side{values: make(map[string][]float64), labels: make(map[string]string)}
		for _, row := range m.Rows {
			vals := make([]float64, len(months))
			for j, v := range row.Values {
				if j < len(m.Months) {
					vals[monthIdx[m.Months[j]]] = v
				}
			}
			if _, ok := s.values[row.Key]; !ok {
				s.order = append(s.order, row.Key)
			}
			s.values[row.Key] = vals
			s.labels[row.Key] = row.Label
		}
		return s
	}

	left := collect(a)
	right := collect(b)

	keys := append([]string(nil), left.order...)
	for _, k := range right.order {
		if _, ok := left.values[k]; !ok {
			keys = append(keys, k)
		}
	}

	variance := Variance{
		Months:    months,
		ColDeltas: make([]float64, len(months)),
	}

	for _, key := range keys {
		av := left.values[key]
		bv := right.values[key]

		row := VarianceRow{
			Key:   key,
			Label: firstNonEmpty(left.labels[key], right.labels[key]),
			Cells: make([]VarianceCell, len(months)),
		}

		aTotal := 0.0
		for j := range months {
			var aCell, bCell float64
			if av != nil {
				aCell = av[j]
			}
			if bv != nil {
				bCell = bv[j]
			}
			delta := bCell - aCell
			row.Cells[j] = VarianceCell{Delta: delta, Pct: pctOf(delta, aCell)}
			row.TotalDelta += delta
			aTotal += aCell
			variance.ColDeltas[j] += delta
		}
		row.TotalPct = pctOf(row.TotalDelta, aTotal)
		variance.GrandDelta += row.TotalDelta
		variance.Rows = append(variance.Rows, row)
	}

	return variance
}

func pctOf(delta, base float64) float64 {
	if base == 0 {
		return 0
	}
	if base < 0 {
		base = -base
	}
	return delta / base
}

func unionMonths(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var months []string
	for _, m := range append(append([]string(nil), a...), b...) {
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	return months
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
