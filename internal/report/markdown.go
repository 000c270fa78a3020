// SPDX-License-Identifier: MPL-2.0

package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"envrank/internal/record"
)

// Render produces the full markdown report: a summary table, a support
// matrix and one detail section per version.
func Render(records []*record.TrialRecord) string {
	var b strings.Builder
	b.WriteString("# Mechanism precedence report\n\n")

	if len(records) == 0 {
		b.WriteString("No trial records found.\n")
		return b.String()
	}

	writeSummaryTable(&b, records)
	writeSupportMatrix(&b, records)
	writeDetails(&b, records)
	return b.String()
}

// RenderTerminal runs the markdown through glamour for styled terminal
// output.
func RenderTerminal(markdown string) (string, error) {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return out, nil
}

func writeSummaryTable(b *strings.Builder, records []*record.TrialRecord) {
	b.WriteString("## Summary\n\n")
	b.WriteString("| Version | Supported | Unsupported | Order | Status |\n")
	b.WriteString("|---------|-----------|-------------|-------|--------|\n")
	for _, r := range records {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			r.Version,
			joinOrDash(r.Supported, ", "),
			joinOrDash(r.Unsupported, ", "),
			FormatOrder(r.Order),
			r.Status,
		)
	}
	b.WriteString("\n")
}

func writeSupportMatrix(b *strings.Builder, records []*record.TrialRecord) {
	mechanisms := mechanismUnion(records)
	if len(mechanisms) == 0 {
		return
	}

	b.WriteString("## Support matrix\n\n")
	b.WriteString("| Version | " + strings.Join(mechanisms, " | ") + " |\n")
	b.WriteString("|---------|" + strings.Repeat("---|", len(mechanisms)) + "\n")
	for _, r := range records {
		cells := make([]string, len(mechanisms))
		for i, m := range mechanisms {
			cells[i] = "no"
			for _, s := range r.Supported {
				if s == m {
					cells[i] = "yes"
					break
				}
			}
		}
		fmt.Fprintf(b, "| %s | %s |\n", r.Version, strings.Join(cells, " | "))
	}
	b.WriteString("\n")
}

func writeDetails(b *strings.Builder, records []*record.TrialRecord) {
	b.WriteString("## Details\n")
	for _, r := range records {
		fmt.Fprintf(b, "\n### %s\n\n", r.Version)
		fmt.Fprintf(b, "- Target: `%s`\n", r.Target)
		fmt.Fprintf(b, "- Observable: `%s`\n", r.Observable)
		fmt.Fprintf(b, "- Status: %s\n", r.Status)
		fmt.Fprintf(b, "- Order: %s\n\n", FormatOrder(r.Order))
		data, err := r.Marshal()
		if err != nil {
			fmt.Fprintf(b, "_record unavailable: %v_\n", err)
			continue
		}
		b.WriteString("```json\n")
		b.Write(data)
		b.WriteString("```\n")
	}
}

// FormatOrder renders an inferred order as "A > B > C", or "inconclusive"
// when there is none.
func FormatOrder(order []string) string {
	if order == nil {
		return "inconclusive"
	}
	return strings.Join(order, " > ")
}

// mechanismUnion collects every mechanism named by any record, in first
// appearance order.
func mechanismUnion(records []*record.TrialRecord) []string {
	var union []string
	seen := make(map[string]bool)
	for _, r := range records {
		for _, lists := range [][]string{r.Supported, r.Unsupported} {
			for _, m := range lists {
				if !seen[m] {
					seen[m] = true
					union = append(union, m)
				}
			}
		}
	}
	return union
}

func joinOrDash(items []string, sep string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, sep)
}
