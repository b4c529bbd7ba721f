// Package report renders the task list in shareable formats.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"todo-man/internal/tasks"
)

// Formats lists the names accepted by Export.
var Formats = []string{"json", "csv", "md", "pdf"}

// Export renders list in format.
func Export(list []tasks.Task, format string) ([]byte, error) {
    switch strings.ToLower(strings.TrimPrefix(format, ".")) {
    case "json":
        if list == nil { list = []tasks.Task{} }
        return json.MarshalIndent(list, "", "  ")
    case "csv":
        var b bytes.Buffer
        w := csv.NewWriter(&b)
        _ = w.Write([]string{"id", "text", "completed", "created_at"})
        for _, t := range list {
            _ = w.Write([]string{strconv.FormatInt(t.ID, 10), t.Text, strconv.FormatBool(t.Completed), t.CreatedAt().UTC().Format(time.RFC3339)})
        }
        w.Flush()
        return b.Bytes(), w.Error()
    case "md", "markdown":
        var b bytes.Buffer
        if err := tasks.WriteMarkdown(list, &b); err != nil { return nil, err }
        return b.Bytes(), nil
    case "pdf":
        return pdfReport(list)
    default:
        return nil, fmt.Errorf("unknown format %s", format)
    }
}

// WriteFile exports list to path, picking the format from the extension.
func WriteFile(list []tasks.Task, path string) error {
    b, err := Export(list, filepath.Ext(path))
    if err != nil { return err }
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { return err }
    return os.WriteFile(path, b, 0o644)
}

func pdfReport(list []tasks.Task) ([]byte, error) {
    pdf := gofpdf.New("P", "mm", "A4", "")
    tr := pdf.UnicodeTranslatorFromDescriptor("")
    pdf.SetTitle("Tasks", true)
    pdf.AddPage()
    pdf.SetFont("Arial", "B", 14)
    pdf.Cell(40, 10, "Tasks")
    pdf.Ln(12)

    c := tasks.CountTasks(list)
    pdf.SetFont("Arial", "", 10)
    pdf.Cell(0, 6, fmt.Sprintf("%d total, %d active, %d completed", c.Total, c.Active, c.Completed))
    pdf.Ln(10)

    for _, t := range list {
        box := "[ ]"
        if t.Completed { box = "[x]" }
        line := fmt.Sprintf("%s %s", box, tr(t.Text))
        if at := t.CreatedAt(); !at.IsZero() {
            line += "  (" + at.Local().Format(time.DateTime) + ")"
        }
        pdf.MultiCell(0, 6, line, "0", "L", false)
    }
    var buf bytes.Buffer
    if err := pdf.Output(&buf); err != nil {
        return nil, err
    }
    return buf.Bytes(), nil
}
