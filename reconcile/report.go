package reconcile

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// Summary counts rows per state.
type Summary struct {
	InBoth    int
	OnlyInOld int
	OnlyInNew int
}

// Summary tallies the report rows.
func (r *Report) Summary() Summary {
	var s Summary
	for _, row := range r.Rows {
		switch row.State {
		case InBoth:
			s.InBoth++
		case OnlyInOld:
			s.OnlyInOld++
		case OnlyInNew:
			s.OnlyInNew++
		}
	}
	return s
}

// Render writes the reconciliation as a table. With colored set, state
// markers are colorized for terminal output.
func (r *Report) Render(w io.Writer, colored bool) {
	paint := func(c color.Attribute, s string) string {
		if !colored {
			return s
		}
		return color.New(c).Sprint(s)
	}

	s := r.Summary()
	fmt.Fprintf(w, "%s %s → %s: %d in both, %d only in %s, %d only in %s\n\n",
		paint(color.FgGreen, "==="),
		r.OldFarm, r.NewFarm,
		s.InBoth, s.OnlyInOld, r.OldFarm, s.OnlyInNew, r.NewFarm)

	alignment := make([]tw.Align, 5)
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}
	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header([]string{"Application", r.OldFarm, r.NewFarm, "State", "Actions"})

	for _, row := range r.Rows {
		var state string
		switch row.State {
		case OnlyInOld:
			state = paint(color.FgRed, "✗ "+row.State.String())
		case OnlyInNew:
			state = paint(color.FgYellow, "+ "+row.State.String())
		default:
			state = paint(color.FgGreen, "= "+row.State.String())
		}
		table.Append([]string{
			row.Name,
			enabledCell(row.OldEnabled),
			enabledCell(row.NewEnabled),
			state,
			strings.Join(actionNames(row.Actions), ", "),
		})
	}
	table.Render()
	fmt.Fprintf(w, "\n_%d applications_\n", len(r.Rows))
}

func enabledCell(enabled *bool) string {
	switch {
	case enabled == nil:
		return "-"
	case *enabled:
		return "enabled"
	default:
		return "disabled"
	}
}

func actionNames(a Actions) []string {
	var names []string
	if a.EnableOld {
		names = append(names, "enable-old")
	}
	if a.DisableOld {
		names = append(names, "disable-old")
	}
	if a.EnableNew {
		names = append(names, "enable-new")
	}
	if a.DisableNew {
		names = append(names, "disable-new")
	}
	if a.Create {
		names = append(names, "create")
	}
	return names
}
