package relation

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// TableFormatter provides utilities for formatting Results as tables
type TableFormatter struct {
	// MaxWidth is the maximum width for a column
	MaxWidth int
	// TruncateString is the string to append when truncating
	TruncateString string
}

// NewTableFormatter creates a new table formatter with default settings
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		MaxWidth:       50,
		TruncateString: "...",
	}
}

// FormatResult formats a Result as a markdown table
func (tf *TableFormatter) FormatResult(res *Result) string {
	if res == nil || res.IsEmpty() {
		return "_Empty result_"
	}

	tableString := &strings.Builder{}

	// Create alignment array with all columns using AlignNone for simple separators
	alignment := make([]tw.Align, len(res.Columns))
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(tableString,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	table.Header(res.Columns)

	for _, rec := range res.Rows {
		row := make([]string, len(res.Columns))
		for j, col := range res.Columns {
			row[j] = tf.formatValue(rec.Get(col))
		}
		table.Append(row)
	}

	table.Render()

	tableString.WriteString(fmt.Sprintf("\n_%d rows_\n", len(res.Rows)))

	return tableString.String()
}

// formatValue converts a value to its cell representation, truncating
// to MaxWidth. Absent renders as an empty cell.
func (tf *TableFormatter) formatValue(v Value) string {
	s := v.String()
	if tf.MaxWidth > 0 && len(s) > tf.MaxWidth {
		s = s[:tf.MaxWidth] + tf.TruncateString
	}
	return s
}

// PrintResult prints a result to stdout
func PrintResult(res *Result) {
	fmt.Println(NewTableFormatter().FormatResult(res))
}
