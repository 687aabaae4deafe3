package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRender(t *testing.T) {
	table := &Table{Headers: []string{"Category", "2025-01", "Total"}}
	table.AddRow("Utilities", "300.00", "500.00")
	table.AddRow("Other", "25.00", "25.00")

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	// Label column left-aligned, numeric columns right-aligned.
	assert.True(t, strings.HasPrefix(lines[2], "Utilities"))
	assert.True(t, strings.HasSuffix(lines[3], " 25.00"))
}

func TestTableRenderPadsShortRows(t *testing.T) {
	table := &Table{Headers: []string{"A", "B"}}
	table.AddRow("only")

	out := table.Render()
	assert.Contains(t, out, "only")
}

func TestMoneyAndPercent(t *testing.T) {
	assert.Equal(t, "1234.50", Money(1234.5))
	assert.Equal(t, "12.5%", Percent(0.125))
}
