package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
)

//go:embed html/*.html
var htmlFS embed.FS

const (
	baseTemplate   = "html/base.html"
	layoutTemplate = "base"
)

const (
	Index          = "index.html"
	Login          = "login.html"
	Register       = "register.html"
	AccountDetails = "account_details.html"
	Reset          = "reset.html"
	ResetEmail     = "reset_email.html"
	SentEmail      = "sent_email.html"
)

// Templates holds every page parsed together with the shared layout.
type Templates struct {
	pages map[string]*template.Template
}

func New() (*Templates, error) {
	return parse(htmlFS)
}

func parse(files fs.FS) (*Templates, error) {
	names, err := fs.Glob(files, "html/*.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		if name == baseTemplate {
			continue
		}
		page, err := template.New(path.Base(name)).ParseFS(files, baseTemplate, name)
		if err != nil {
			return nil, fmt.Errorf("could not parse template %s: %w", name, err)
		}
		pages[path.Base(name)] = page
	}
	return &Templates{pages: pages}, nil
}

// Render executes the named page within the layout.
// Nothing is written to w when the execution fails.
func (t *Templates) Render(w io.Writer, name string, data interface{}) error {
	page, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("template %s is not defined", name)
	}
	buf := bytes.Buffer{}
	if err := page.ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		return fmt.Errorf("could not render template %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
