package app

import (
	"html/template"

	"github.com/phenrril/brainbattle/internal/content"
	"github.com/phenrril/brainbattle/internal/domain"
	"github.com/phenrril/brainbattle/internal/views"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"add":      func(a, b int) int { return a + b },
		"money":    func(m domain.Money) string { return m.String() },
		"markdown": content.RenderMarkdown,
		"firstVariant": func(p domain.Product) *domain.Variant {
			v, ok := p.FirstVariant()
			if !ok {
				return nil
			}
			return &v
		},
	}
}

// ParseTemplates loads the views from disk in development so edits show up
// on restart without a rebuild, and from the embedded copy otherwise.
func ParseTemplates(dev bool) (*template.Template, error) {
	t := template.New("layout").Funcs(funcMap())
	if dev {
		if parsed, err := t.ParseGlob("internal/views/*.html"); err == nil {
			return parsed, nil
		}
		t = template.New("layout").Funcs(funcMap())
	}
	return t.ParseFS(views.FS, "*.html")
}
