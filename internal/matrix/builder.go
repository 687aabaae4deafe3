package matrix

import (
	"math"
	"sort"
	"time"

	"github.com/parishworks/vestry/internal/facts"
	"github.com/parishworks/vestry/internal/model"
)

// BuildOptions configures a receipt-matrix build.
type BuildOptions struct {
	From            time.Time
	To              time.Time
	AccountIDs      map[int64]bool
	Rules           []model.CategoryRule
	Domain          model.Domain
	IncludeUnmapped bool
	AccountChildren bool
}

// OtherKey is the row key for lines no rule matched.
const OtherKey = "__other__"

type rowAccum struct {
	row      model.ReceiptMatrixRow
	children map[int64]*model.ReceiptMatrixRow
	order    int
}

// Build aggregates journal entries into a category-by-month matrix. The
// month column set covers the full range exhaustively. Unmatched lines land
// in an "Other" row only when IncludeUnmapped is set, and that row is
// appended only when it carries a nonzero value. Child account rows, when
// enabled, break down amounts already counted in their parent, so column and
// grand totals derive from top-level rows alone.
func Build(entries []model.JournalEntry, accounts []model.Account, opts BuildOptions) model.ReceiptMatrix {
	factSet := facts.Build(entries, accounts, facts.BuildOptions{
		From:       opts.From,
		To:         opts.To,
		AccountIDs: opts.AccountIDs,
		Domain:     opts.Domain,
		Grain:      model.GrainMonth,
	})
	return BuildFromLines(factSet.Lines, opts)
}

// BuildFromLines aggregates pre-normalized fact lines; see Build.
func BuildFromLines(lines []model.FactLine, opts BuildOptions) model.ReceiptMatrix {
	months := facts.CoveredMonths(opts.From, opts.To)
	monthIndex := make(map[string]int, len(months))
	for i, m := range months {
		monthIndex[m] = i
	}

	matcher := NewMatcher(opts.Rules)
	accums := make(map[string]*rowAccum)
	nextOrder := 0

	accum := func(key, label string) *rowAccum {
		a, ok := accums[key]
		if !ok {
			a = &rowAccum{
				row: model.ReceiptMatrixRow{
					Key:    key,
					Label:  label,
					Values: make([]float64, len(months)),
				},
				children: make(map[int64]*model.ReceiptMatrixRow),
				order:    nextOrder,
			}
			nextOrder++
			accums[key] = a
		}
		return a
	}

	for _, line := range lines {
		col, ok := monthIndex[facts.MonthToken(line.Date)]
		if !ok {
			continue
		}

		rule, matched := matcher.Match(line)
		var a *rowAccum
		switch {
		case matched:
			a = accum(rule.Key, rule.Label)
		case opts.IncludeUnmapped:
			a = accum(OtherKey, "Other")
		default:
			continue
		}

		a.row.Values[col] += line.Amount
		a.row.Total += line.Amount

		if opts.AccountChildren {
			child, ok := a.children[line.AccountID]
			if !ok {
				label := line.AccountName
				if label == "" {
					label = line.AccountCode
				}
				child = &model.ReceiptMatrixRow{
					Key:    line.AccountCode,
					Label:  label,
					Values: make([]float64, len(months)),
				}
				a.children[line.AccountID] = child
			}
			child.Values[col] += line.Amount
			child.Total += line.Amount
		}
	}

	matrix := model.ReceiptMatrix{
		Months:    months,
		ColTotals: make([]float64, len(months)),
	}

	ordered := make([]*rowAccum, 0, len(accums))
	for _, a := range accums {
		ordered = append(ordered, a)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].order < ordered[j].order
	})

	var other *model.ReceiptMatrixRow
	for _, a := range ordered {
		for _, child := range a.children {
			a.row.Children = append(a.row.Children, *child)
		}
		sort.SliceStable(a.row.Children, func(i, j int) bool {
			return math.Abs(a.row.Children[i].Total) > math.Abs(a.row.Children[j].Total)
		})

		if a.row.Key == OtherKey {
			row := a.row
			other = &row
			continue
		}
		matrix.Rows = append(matrix.Rows, a.row)
	}

	sort.SliceStable(matrix.Rows, func(i, j int) bool {
		return math.Abs(matrix.Rows[i].Total) > math.Abs(matrix.Rows[j].Total)
	})

	if other != nil && hasValue(*other) {
		matrix.Rows = append(matrix.Rows, *other)
	}

	for _, row := range matrix.Rows {
		for j, v := range row.Values {
			matrix.ColTotals[j] += v
		}
		matrix.GrandTotal += row.Total
	}

	return matrix
}

func hasValue(row model.ReceiptMatrixRow) bool {
	if row.Total != 0 {
		return true
	}
	for _, v := range row.Values {
		if v != 0 {
			return true
		}
	}
	return false
}
