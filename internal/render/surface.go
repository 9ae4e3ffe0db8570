package render

import (
	"bytes"
	"html/template"
)

// Options names the page elements a surface is bound to.
type Options struct {
	// ContainerID is the id of the results container element.
	ContainerID string
	// OpenClass is the body class set while a modal is open.
	OpenClass string
	// DismissID is the id of the close control in the modal.
	DismissID string
	// DismissURL is the target of the close control.
	DismissURL string
	// SearchURL is the target of the search form.
	SearchURL string
	// SiteTitle is shown in the page title.
	SiteTitle string
}

// DefaultOptions returns the element names used by the bundled page.
func DefaultOptions() Options {
	return Options{
		ContainerID: "search-results",
		OpenClass:   "modal-open",
		DismissID:   "search-close",
		DismissURL:  "/search/dismiss",
		SearchURL:   "/search",
		SiteTitle:   "Search",
	}
}

// Surface is a results container. Not safe for concurrent use; each request
// renders into its own surface.
type Surface struct {
	opts    Options
	content bytes.Buffer
	visible bool
	open    bool
}

// NewSurface creates an empty, visible, closed surface.
func NewSurface(opts Options) *Surface {
	return &Surface{opts: opts, visible: true}
}

// Options returns the element names the surface is bound to.
func (s *Surface) Options() Options { return s.opts }

// Reset clears the rendered content.
func (s *Surface) Reset() { s.content.Reset() }

// Show makes the container visible.
func (s *Surface) Show() { s.visible = true }

// Hide hides the container without clearing its content.
func (s *Surface) Hide() { s.visible = false }

// Visible reports whether the container is shown.
func (s *Surface) Visible() bool { return s.visible }

// SetOpen sets or clears the open-state marker.
func (s *Surface) SetOpen(open bool) { s.open = open }

// Open reports whether the open-state marker is set.
func (s *Surface) Open() bool { return s.open }

// Len returns the size of the rendered content in bytes.
func (s *Surface) Len() int { return s.content.Len() }

// HTML returns the rendered content. It is produced by html/template only.
func (s *Surface) HTML() template.HTML {
	return template.HTML(s.content.String()) //nolint:gosec // content comes from html/template execution
}

// replace executes tmpl into a scratch buffer and swaps it in on success.
// On failure the surface is left empty.
func (s *Surface) replace(tmpl *template.Template, name string, data any) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.content.Reset()
		return err
	}
	s.content.Reset()
	_, _ = s.content.Write(buf.Bytes())
	return nil
}
