package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sampleforge/sitecatalog/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// titleCaser capitalizes tag tokens for display.
	titleCaser cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		titleCaser: cases.Title(language.English),
	}
}

// WriteBatch outputs the batch enrichment report in Markdown format.
func (w *MarkdownWriter) WriteBatch(report *model.BatchReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Enrichment Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", report.Duration.Round(timeRounding).String()},
			{"Total URLs", strconv.Itoa(report.Total)},
			{"Succeeded", strconv.Itoa(report.Succeeded)},
			{"Failed", strconv.Itoa(report.Failed)},
		},
	})
	md.PlainText("")

	w.writeBatchAlert(md, report)

	if report.Total > 0 {
		w.writeOutcomeChart(md, report)
		w.writeBatchRows(md, report)
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// timeRounding keeps durations readable in rendered tables.
const timeRounding = time.Millisecond

// writeBatchAlert writes an alert matching the batch outcome.
func (w *MarkdownWriter) writeBatchAlert(md *markdown.Markdown, report *model.BatchReport) {
	switch {
	case report.Total == 0:
		md.Note("No URLs were processed.")
	case report.Succeeded == 0:
		md.Cautionf("All %d URL(s) failed enrichment.", report.Failed)
	case report.Failed > 0:
		md.Warningf("%d of %d URL(s) failed enrichment.", report.Failed, report.Total)
	default:
		md.Tipf("All %d URL(s) enriched successfully.", report.Total)
	}
	md.PlainText("")
}

// writeOutcomeChart writes a mermaid pie chart of the batch outcome.
func (w *MarkdownWriter) writeOutcomeChart(md *markdown.Markdown, report *model.BatchReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Enrichment Outcome"),
		piechart.WithShowData(true),
	)

	if report.Succeeded > 0 {
		chart.LabelAndIntValue("Succeeded", uint64(report.Succeeded))
	}
	if report.Failed > 0 {
		chart.LabelAndIntValue("Failed", uint64(report.Failed))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeBatchRows writes the per-URL result table.
func (w *MarkdownWriter) writeBatchRows(md *markdown.Markdown, report *model.BatchReport) {
	md.H2("Results")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		if row == nil {
			continue
		}
		status := "✅ OK"
		detail := row.PlatformLegacy()
		if !row.OK() {
			status = "❌ " + row.FailedStage
			detail = truncateString(row.Error, 60)
		}
		rows = append(rows, []string{
			"`" + row.InputURL + "`",
			status,
			detail,
			row.IndustryLegacy(),
			row.Duration.Round(timeRounding).String(),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"URL", "Status", "Platform / Error", "Industry", "Duration"},
		Rows:   rows,
	})
	md.PlainText("")
}

// WriteSearch outputs one page of search results in Markdown format.
func (w *MarkdownWriter) WriteSearch(result *SearchPage) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Search Results")
	md.PlainText("")
	md.PlainTextf("Query: `%s` (%d match(es), showing %d from offset %d)",
		result.Query, result.Total, len(result.Sites), result.Offset)
	md.PlainText("")

	if len(result.Sites) == 0 {
		md.Note("No sites matched the query.")
		md.PlainText("")
		w.writeFooter(md)
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(result.Sites))
	for i, site := range result.Sites {
		rows[i] = []string{
			"`" + site.URL + "`",
			orDash(site.PlatformLegacy),
			orDash(site.IndustryLegacy),
			orDash(w.displayTags(&site)),
			fmt.Sprintf("%.0f (%s)", site.HeatScore, model.LabelForHeat(site.HeatScore)),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"URL", "Platform", "Industry", "Tags", "Heat"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// displayTags renders a site's strongest tags in title case.
func (w *MarkdownWriter) displayTags(site *model.Site) string {
	tokens := site.TagTokens()
	if len(tokens) == 0 {
		return ""
	}
	display := make([]string, len(tokens))
	for i, tok := range tokens {
		display[i] = w.titleCaser.String(tok)
	}
	return strings.Join(display, ", ")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by sitecatalog*")
}

// orDash substitutes "-" for empty table cells.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
