package view

// View is the results presentation variant.
type View string

// View constants.
const (
	// Modal renders results in a dialog with an open-state marker and a dismiss control.
	Modal View = "modal"
	// List renders results inline under a results header.
	List View = "list"
)

// IsValid checks if the view is one of the supported values.
func (v View) IsValid() bool {
	return v == Modal || v == List
}
