package report

import (
	_ "embed"
	"fmt"
	"html/template"

	"shorts-analyzer/internal/models"
	"shorts-analyzer/shared/storage"
)

//go:embed template.html
var htmlTemplate string

const topTableSize = 10

type htmlData struct {
	Report *models.Report
	Top    []*models.ScoredVideo
}

// WriteHTML renders the report as a self-contained static page: a
// summary block followed by the top performers table. Written
// atomically, same as the CSV.
func WriteHTML(rep *models.Report, path string) error {
	tmpl := template.New("report").Funcs(template.FuncMap{
		"pct": func(f float64) string { return fmt.Sprintf("%.2f%%", f*100) },
		"inc": func(i int) int { return i + 1 },
	})
	tmpl, err := tmpl.Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to write HTML report to %s: %w", path, err)
	}

	w, err := storage.NewAtomicWriter(path)
	if err != nil {
		return fmt.Errorf("failed to write HTML report to %s: %w", path, err)
	}

	data := htmlData{Report: rep, Top: rep.Top(topTableSize)}
	if err := tmpl.Execute(w, data); err != nil {
		w.Abort()
		return fmt.Errorf("failed to write HTML report to %s: %w", path, err)
	}

	if err := w.Commit(); err != nil {
		return fmt.Errorf("failed to write HTML report to %s: %w", path, err)
	}
	return nil
}
