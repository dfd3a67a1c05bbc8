// Package export renders task lists as json, yaml, csv, markdown or pdf.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/taskpad/internal/domain"
)

// Supported formats.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatCSV      = "csv"
	FormatMarkdown = "md"
	FormatPDF      = "pdf"
)

// Formats lists the supported formats in display order.
var Formats = []string{FormatJSON, FormatYAML, FormatCSV, FormatMarkdown, FormatPDF}

// Ensure Exporter implements domain.TaskExporter.
var _ domain.TaskExporter = (*Exporter)(nil)

// Exporter implements domain.TaskExporter.
type Exporter struct{}

// New creates an Exporter.
func New() *Exporter { return &Exporter{} }

// NormalizeFormat lowercases format and maps aliases ("yml", "markdown")
// to their canonical name. Unknown formats return domain.ErrUnknownFormat.
func NormalizeFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case "yml":
		return FormatYAML, nil
	case "markdown":
		return FormatMarkdown, nil
	case FormatJSON, FormatYAML, FormatCSV, FormatMarkdown, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%q (want one of %s): %w", format, strings.Join(Formats, ", "), domain.ErrUnknownFormat)
	}
}

// Export writes report to w in the given format.
func (e *Exporter) Export(w io.Writer, format string, report domain.ExportReport) error {
	f, err := NormalizeFormat(format)
	if err != nil {
		return err
	}
	if report.Tasks == nil {
		report.Tasks = []domain.Task{}
	}

	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		return writeCSV(w, report)
	case FormatMarkdown:
		return writeMarkdown(w, report)
	default:
		return writePDF(w, report)
	}
}

func writeCSV(w io.Writer, report domain.ExportReport) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "text", "completed"})
	for _, t := range report.Tasks {
		_ = cw.Write([]string{strconv.Itoa(t.ID), t.Text, strconv.FormatBool(t.Completed)})
	}
	cw.Flush()
	return cw.Error()
}

func writeMarkdown(w io.Writer, report domain.ExportReport) error {
	var b strings.Builder
	b.WriteString("# Tasks\n\n")
	fmt.Fprintf(&b, "_Generated %s_\n\n", report.GeneratedAt.Format("Monday, January 2, 2006 15:04"))
	if len(report.Tasks) == 0 {
		b.WriteString("No tasks.\n")
	}
	for _, t := range report.Tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s (#%d)\n", mark, t.Text, t.ID)
	}
	fmt.Fprintf(&b, "\n**%s**\n", report.Stats)
	_, err := io.WriteString(w, b.String())
	return err
}

func writePDF(w io.Writer, report domain.ExportReport) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(report.GeneratedAt)
	pdf.SetTitle("taskpad tasks", true)
	// Core fonts are cp1252; translate UTF-8 text into that code page.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(40, 6, report.GeneratedAt.Format("Monday, January 2, 2006 15:04"))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	for _, t := range report.Tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s (#%d)", mark, tr(t.Text), t.ID)
		pdf.MultiCell(0, 6, line, "0", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(40, 6, report.Stats.String())

	return pdf.Output(w)
}
