// Package render turns search results into HTML for a results container.
//
// A [Surface] is the container being rendered into: it holds the produced
// markup together with its visibility and the "open" state used by the modal
// presentation. Renderers never append; every Render replaces the surface
// content, so rendering the same [View] twice yields the same markup.
//
// Two strategies implement [Renderer]:
//
//   - [List] writes a results header above an inline list.
//   - [Modal] writes a dialog, shows the surface and marks it open. [Dismiss]
//     hides it again and clears the open state.
//
// All values are escaped by html/template; links are sanitized.
package render
