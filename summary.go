package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/unsap/matsim-berlin-homework/analysis"
	"github.com/unsap/matsim-berlin-homework/task"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00CC66")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8800")).Bold(true)
)

// summary 各场景的事件数与异常数汇总
func summary(res *task.Result) string {
	var b strings.Builder
	for _, p := range res.Passes {
		r := p.Report
		b.WriteString(titleStyle.Render(fmt.Sprintf("▸ %s", p.Name)))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d events until %.0fs, %d skipped", r.Events, r.EndTime, p.Skipped)))
		b.WriteString("\n")
		for _, kind := range analysis.AnomalyKinds {
			n := r.Count(kind)
			style := okStyle
			if n > 0 {
				style = warnStyle
			}
			b.WriteString(fmt.Sprintf("  %-22s %s\n", kind, style.Render(fmt.Sprint(n))))
		}
	}
	for _, f := range res.Files {
		b.WriteString(mutedStyle.Render("  → "+f) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
