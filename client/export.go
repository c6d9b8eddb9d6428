package client

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/model"

	"github.com/go-pdf/fpdf"
)

// ErrRender wraps every export failure. Exports never touch the network.
var ErrRender = errors.New("failed to render pdf")

const (
	pageTop    = 30.0
	leftMargin = 20.0
	lineHeight = 10.0
	pageBottom = 270.0
	textWidth  = 170.0
)

func newDocument() (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(leftMargin, 20, leftMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	// core fonts are cp1252; translate what can be, drop the rest
	return pdf, pdf.UnicodeTranslatorFromDescriptor("")
}

func finish(pdf *fpdf.Fpdf, w io.Writer) error {
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

// ExportTodosPDF renders a numbered list of todos with their priority and
// state under a title and the totals.
func ExportTodosPDF(w io.Writer, todos []*model.Todo, stats model.TodoStats, generated time.Time) error {
	pdf, tr := newDocument()

	pdf.SetFont("Helvetica", "", 20)
	pdf.Text(leftMargin, pageTop, "My Todo List")
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(leftMargin, 40, "Generated: "+generated.Format("2006-01-02"))
	pdf.Text(leftMargin, 55, fmt.Sprintf("Total: %d | Completed: %d", stats.Total, stats.Completed))

	y := 70.0
	for i, todo := range todos {
		if y > pageBottom {
			pdf.AddPage()
			y = 20
		}
		state := "Pending"
		if todo.Completed {
			state = "Completed"
		}
		pdf.Text(leftMargin, y, tr(fmt.Sprintf("%d. %s -> %s(%s)", i+1, todo.Title, todo.Priority, state)))
		y += lineHeight
	}

	return finish(pdf, w)
}

// ExportSummaryPDF renders the summary content wrapped to the page width.
func ExportSummaryPDF(w io.Writer, summary *model.Summary) error {
	if summary == nil {
		return fmt.Errorf("%w: no summary available", ErrRender)
	}
	pdf, tr := newDocument()

	pdf.SetFont("Helvetica", "", 20)
	pdf.Text(leftMargin, pageTop, "AI Productivity Summary")
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(leftMargin, 40, "Generated: "+summary.CreatedAt.Local().Format("2006-01-02"))

	y := 55.0
	for _, line := range pdf.SplitText(tr(summary.Content), textWidth) {
		if y > pageBottom {
			pdf.AddPage()
			y = 20
		}
		pdf.Text(leftMargin, y, line)
		y += 6
	}

	return finish(pdf, w)
}

// WriteTodosPDF writes todos-<unix>.pdf into dir and returns its path.
func WriteTodosPDF(dir string, todos []*model.Todo, stats model.TodoStats, now time.Time) (string, error) {
	return writeFile(filepath.Join(dir, fmt.Sprintf("todos-%d.pdf", now.Unix())), func(w io.Writer) error {
		return ExportTodosPDF(w, todos, stats, now)
	})
}

// WriteSummaryPDF writes summary-<unix>.pdf into dir and returns its path.
func WriteSummaryPDF(dir string, summary *model.Summary, now time.Time) (string, error) {
	return writeFile(filepath.Join(dir, fmt.Sprintf("summary-%d.pdf", now.Unix())), func(w io.Writer) error {
		return ExportSummaryPDF(w, summary)
	})
}

func writeFile(path string, render func(io.Writer) error) (string, error) {
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return path, nil
}
