package reconcile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmdiff/farm"
	"farmdiff/relation"
)

func inventories() (*farm.Inventory, *farm.Inventory) {
	oldInv := &farm.Inventory{
		Farm: "xa65",
		Apps: []farm.PublishedApp{
			{Name: "Notepad", Enabled: true, Folder: "/apps"},
			{Name: "Calc", Enabled: false},
			{Name: "Paint", Enabled: true},
		},
	}
	newInv := &farm.Inventory{
		Farm: "xa76",
		Apps: []farm.PublishedApp{
			{Name: "Notepad", Enabled: false},
			{Name: "Wordpad", Enabled: true},
		},
	}
	return oldInv, newInv
}

func TestReconcilerRun(t *testing.T) {
	oldInv, newInv := inventories()

	report, err := New().Run(oldInv, newInv)
	require.NoError(t, err)

	require.Len(t, report.Rows, 4)

	// Sorted by name regardless of bucket order
	names := make([]string, len(report.Rows))
	for i, row := range report.Rows {
		names[i] = row.Name
	}
	assert.Equal(t, []string{"Calc", "Notepad", "Paint", "Wordpad"}, names)

	byName := make(map[string]Row, len(report.Rows))
	for _, row := range report.Rows {
		byName[row.Name] = row
	}

	notepad := byName["Notepad"]
	assert.Equal(t, InBoth, notepad.State)
	require.NotNil(t, notepad.OldEnabled)
	require.NotNil(t, notepad.NewEnabled)
	assert.True(t, *notepad.OldEnabled)
	assert.False(t, *notepad.NewEnabled)
	assert.Equal(t, Actions{DisableOld: true, EnableNew: true}, notepad.Actions)

	calc := byName["Calc"]
	assert.Equal(t, OnlyInOld, calc.State)
	assert.Nil(t, calc.NewEnabled)
	assert.Equal(t, Actions{EnableOld: true, Create: true}, calc.Actions)

	paint := byName["Paint"]
	assert.Equal(t, Actions{DisableOld: true, Create: true}, paint.Actions)

	wordpad := byName["Wordpad"]
	assert.Equal(t, OnlyInNew, wordpad.State)
	assert.Nil(t, wordpad.OldEnabled)
	assert.Equal(t, Actions{DisableNew: true}, wordpad.Actions)
}

func TestReconcilerInnerMode(t *testing.T) {
	oldInv, newInv := inventories()

	r := &Reconciler{Mode: relation.Inner, NewSuffix: "_j"}
	report, err := r.Run(oldInv, newInv)
	require.NoError(t, err)

	require.Len(t, report.Rows, 1)
	assert.Equal(t, "Notepad", report.Rows[0].Name)
	assert.Equal(t, InBoth, report.Rows[0].State)
}

func TestSummaryAndRender(t *testing.T) {
	oldInv, newInv := inventories()

	report, err := New().Run(oldInv, newInv)
	require.NoError(t, err)

	s := report.Summary()
	assert.Equal(t, Summary{InBoth: 1, OnlyInOld: 2, OnlyInNew: 1}, s)

	var buf strings.Builder
	report.Render(&buf, false)
	out := buf.String()
	assert.Contains(t, out, "Notepad")
	assert.Contains(t, out, "only in old")
	assert.Contains(t, out, "4 applications")
	assert.Contains(t, out, "create")
}

func TestReconcilerEmptyFarms(t *testing.T) {
	report, err := New().Run(&farm.Inventory{Farm: "a"}, &farm.Inventory{Farm: "b"})
	require.NoError(t, err)
	assert.Empty(t, report.Rows)
	assert.True(t, report.Joined.IsEmpty())
}
