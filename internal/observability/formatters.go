// Package observability provides formatted terminal output for company reports.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/equity-insight/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 6
)

// Printer renders a report as boxed terminal output. It is a pure consumer
// of the report value and never modifies it.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// PrintReport renders the full dashboard: banner, overview, business model,
// growth strategy, financials and sources.
func (p *Printer) PrintReport(report *types.Report) {
	if report == nil {
		return
	}

	p.printBanner(report.Banner)
	p.printOverview(report.Overview)
	p.printBusinessModel(report.BusinessModel)
	p.printGrowthStrategy(report.GrowthStrategy)
	p.printFinancials(report.Financials)
	p.printSources(report.Sources)
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func (p *Printer) printBanner(banner types.Banner) {
	var sb strings.Builder

	title := banner.CompanyName
	if banner.Ticker != "" {
		title = fmt.Sprintf("%s (%s)", banner.CompanyName, banner.Ticker)
	}

	sb.WriteString(fmt.Sprintf("Exchange:     %s\n", banner.Exchange))
	sb.WriteString(fmt.Sprintf("Industry:     %s\n", banner.Industry))
	sb.WriteString(fmt.Sprintf("Established:  %s\n", banner.Established))
	sb.WriteString(fmt.Sprintf("HQ:           %s\n", banner.HQ))
	sb.WriteString(fmt.Sprintf("Employees:    %s\n", banner.Employees))
	sb.WriteString(fmt.Sprintf("Revenue:      %s\n", banner.Revenue))
	sb.WriteString(fmt.Sprintf("5Y CAGR:      %s", banner.CAGR5Year))

	p.printBox(title, sb.String())
}

func (p *Printer) printOverview(overview types.Overview) {
	var sb strings.Builder

	sb.WriteString(wrap(overview.Summary, boxWidth-4))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Revenue:     %s\n", overview.KeyFinancials.Revenue))
	sb.WriteString(fmt.Sprintf("PAT:         %s\n", overview.KeyFinancials.PAT))
	sb.WriteString(fmt.Sprintf("PAT Margin:  %s\n", overview.KeyFinancials.PATMargin))
	if overview.KeyFinancials.OrderBook != "" {
		sb.WriteString(fmt.Sprintf("Order Book:  %s\n", overview.KeyFinancials.OrderBook))
	}

	if len(overview.GeoSplit) > 0 {
		sb.WriteString("\nGeographic Split:\n")
		for _, entry := range overview.GeoSplit {
			sb.WriteString(fmt.Sprintf("  %-24s %5.1f%%\n", entry.Region, entry.Percentage))
		}
	}

	p.printBox("OVERVIEW", strings.TrimSuffix(sb.String(), "\n"))
}

func (p *Printer) printBusinessModel(model types.BusinessModel) {
	var sb strings.Builder

	writeList(&sb, "Segments", model.Segments)
	writeList(&sb, "Revenue Streams", model.RevenueStreams)
	writeList(&sb, "Customers", model.Customers)
	writeList(&sb, "M&A", model.MA)

	if len(model.SegmentTable) > 0 {
		sb.WriteString("Segment Breakdown:\n")
		for _, row := range model.SegmentTable {
			sb.WriteString(fmt.Sprintf("  %-24s %s\n", row.Segment, row.RevenueShare))
		}
	}

	p.printBox("BUSINESS MODEL", strings.TrimSuffix(sb.String(), "\n"))
}

func (p *Printer) printGrowthStrategy(cylinders []types.GrowthCylinder) {
	if len(cylinders) == 0 {
		return
	}

	var sb strings.Builder
	for i, cylinder := range cylinders {
		sb.WriteString(cylinder.Title + "\n")
		count := min(len(cylinder.Points), maxItemsToShow)
		for j := 0; j < count; j++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", cylinder.Points[j]))
		}
		if len(cylinder.Points) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(cylinder.Points)-maxItemsToShow))
		}
		if i < len(cylinders)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("GROWTH STRATEGY", strings.TrimSuffix(sb.String(), "\n"))
}

func (p *Printer) printFinancials(financials types.Financials) {
	var sb strings.Builder

	history := financials.ChronologicalHistory()
	if len(history) > 0 {
		sb.WriteString("Year      Revenue    Net Income    EBITDA Margin\n")
		for _, point := range history {
			sb.WriteString(fmt.Sprintf("%-8s %8.1f %12.1f %14.1f%%\n",
				point.Year, point.Revenue, point.NetIncome, point.EBITDAMargin))
		}
		sb.WriteString("\n")
	}

	if len(financials.SegmentGrowth) > 0 {
		sb.WriteString("Segment Growth (current vs prior):\n")
		for _, entry := range financials.SegmentGrowth {
			sb.WriteString(fmt.Sprintf("  %-24s %8.1f → %8.1f (%+.1f%%)\n",
				entry.Segment, entry.PrevRevenue, entry.CurrentRevenue, entry.Growth))
		}
		sb.WriteString("\n")
	}

	if financials.Analysis.Trend5Year != "" {
		sb.WriteString("5Y Trend: " + wrap(financials.Analysis.Trend5Year, boxWidth-4) + "\n")
	}

	writeList(&sb, "Projections", financials.Projections)

	if financials.CreditRatings != "" {
		sb.WriteString("Credit Ratings: " + financials.CreditRatings + "\n")
	}

	p.printBox("FINANCIALS", strings.TrimSuffix(sb.String(), "\n"))
}

func (p *Printer) printSources(sources []string) {
	if len(sources) == 0 {
		return
	}

	var sb strings.Builder
	for i, source := range sources {
		sb.WriteString(fmt.Sprintf("[%d] %s", i+1, source))
		if i < len(sources)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("DATA SOURCES (%d)", len(sources)), sb.String())
}

// writeList writes a titled bullet list, truncated to maxItemsToShow
func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}

	sb.WriteString(title + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// wrap breaks text into lines no longer than width
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		if lineLen > 0 && lineLen+1+len(word) > width {
			sb.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}
