package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Renderer writes a View into a Surface, replacing any previous content.
type Renderer interface {
	Render(s *Surface, v View) error
}

// List renders results inline under a results header.
type List struct{}

// Render implements Renderer.
func (List) Render(s *Surface, v View) error {
	if err := s.replace(templates, "list", v); err != nil {
		return fmt.Errorf("render list: %w", err)
	}
	return nil
}

// Modal renders results in a dialog and marks the surface open.
type Modal struct{}

type modalData struct {
	View View
	Opts Options
}

// Render implements Renderer.
func (Modal) Render(s *Surface, v View) error {
	if err := s.replace(templates, "modal", modalData{View: v, Opts: s.Options()}); err != nil {
		return fmt.Errorf("render modal: %w", err)
	}
	s.Show()
	s.SetOpen(true)
	return nil
}

// Dismiss hides the surface and clears the open-state marker.
func Dismiss(s *Surface) {
	s.Hide()
	s.SetOpen(false)
}

// For returns the renderer for a results view.
func For(v view.View) (Renderer, error) {
	switch v {
	case view.Modal:
		return Modal{}, nil
	case view.List:
		return List{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownView, v)
	}
}

// PageData is the input to WritePage.
type PageData struct {
	Term    string
	View    view.View
	Surface *Surface
}

// WritePage writes the complete search page with the surface embedded.
func WritePage(w io.Writer, data PageData) error {
	if err := templates.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// WriteFragment writes only the results container element.
func WriteFragment(w io.Writer, s *Surface) error {
	if err := templates.ExecuteTemplate(w, "container", s); err != nil {
		return fmt.Errorf("render fragment: %w", err)
	}
	return nil
}
