package matrix

import (
	"testing"

	"github.com/parishworks/vestry/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_Match(t *testing.T) {
	rules := []model.CategoryRule{
		{Key: "utilities", Label: "Utilities", AccountIDs: []int64{11}},
		{Key: "worship", Label: "Worship Supplies", CodePrefixes: []string{"52"}},
		{Key: "maintenance", Label: "Maintenance", NameIncludes: []string{"repair"}},
	}
	matcher := NewMatcher(rules)

	tests := []struct {
		name    string
		line    model.FactLine
		wantKey string
		wantHit bool
	}{
		{
			name:    "account id match",
			line:    model.FactLine{AccountID: 11, AccountCode: "9999", AccountName: "Whatever"},
			wantKey: "utilities",
			wantHit: true,
		},
		{
			name:    "code prefix match",
			line:    model.FactLine{AccountID: 99, AccountCode: "5210", AccountName: "Candles"},
			wantKey: "worship",
			wantHit: true,
		},
		{
			name:    "name substring match is case-insensitive",
			line:    model.FactLine{AccountID: 99, AccountCode: "6100", AccountName: "Roof REPAIR Fund"},
			wantKey: "maintenance",
			wantHit: true,
		},
		{
			name:    "no match",
			line:    model.FactLine{AccountID: 99, AccountCode: "7000", AccountName: "Misc"},
			wantHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, hit := matcher.Match(tt.line)
			assert.Equal(t, tt.wantHit, hit)
			if tt.wantHit {
				assert.Equal(t, tt.wantKey, rule.Key)
			}
		})
	}
}

func TestMatcher_IDBeatsLaterSubstring(t *testing.T) {
	// Rule A matches by id, rule B by name; A is listed first and ids
	// outrank substrings, so A must win on both counts.
	rules := []model.CategoryRule{
		{Key: "a", AccountIDs: []int64{5}},
		{Key: "b", NameIncludes: []string{"electric"}},
	}
	line := model.FactLine{AccountID: 5, AccountName: "Electric Cooperative"}

	rule, hit := NewMatcher(rules).Match(line)
	require.True(t, hit)
	assert.Equal(t, "a", rule.Key)
}

func TestMatcher_CriterionOutranksRuleOrder(t *testing.T) {
	// An id match on a later rule beats a substring match on an earlier one.
	rules := []model.CategoryRule{
		{Key: "byname", NameIncludes: []string{"electric"}},
		{Key: "byid", AccountIDs: []int64{5}},
	}
	line := model.FactLine{AccountID: 5, AccountName: "Electric Cooperative"}

	rule, hit := NewMatcher(rules).Match(line)
	require.True(t, hit)
	assert.Equal(t, "byid", rule.Key)
}
