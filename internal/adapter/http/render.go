package adapthttp

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"motors/internal/domain"
)

//go:embed templates
var templateFS embed.FS

var tmplFuncs = template.FuncMap{
	"usd":    formatUSD,
	"commas": formatCommas,
}

// viewData is the payload every page template receives. Nav and Notice
// are populated on every render; Data carries the page-specific model.
type viewData struct {
	Title    string
	Nav      []domain.Classification
	Identity *domain.Identity
	Notice   string
	Errors   []string
	Form     map[string]string
	Data     any
}

type renderer struct {
	views map[string]*template.Template
}

// newRenderer parses each page template against the shared layout.
func newRenderer() (*renderer, error) {
	pages, err := fs.Glob(templateFS, "templates/pages/*.tmpl")
	if err != nil {
		return nil, err
	}
	views := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		t, err := template.New("layout.tmpl").Funcs(tmplFuncs).ParseFS(templateFS, "templates/layout.tmpl", p)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		views[strings.TrimSuffix(path.Base(p), ".tmpl")] = t
	}
	return &renderer{views: views}, nil
}

// render executes a view into a buffer first so a template fault cannot
// leave a half-written page behind a 200.
func (rd *renderer) render(w http.ResponseWriter, status int, view string, data *viewData) error {
	t, ok := rd.views[view]
	if !ok {
		return fmt.Errorf("render: unknown view %q", view)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.tmpl", data); err != nil {
		return fmt.Errorf("render %s: %w", view, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}

// formatUSD renders a price as $1,234.56.
func formatUSD(v float64) string {
	cents := int64(v*100 + 0.5)
	return fmt.Sprintf("$%s.%02d", formatCommas(cents/100), cents%100)
}

// formatCommas groups digits in threes: 1234567 -> 1,234,567.
func formatCommas(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
