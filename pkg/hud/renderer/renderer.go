// Package renderer defines the interface overlay backends implement.
package renderer

import "encounterhud/pkg/hud/session"

// Renderer runs the overlay's draw loop on top of a session. The graphical
// backend owns a window; the terminal backend prints frames for debugging.
type Renderer interface {
	// Init prepares the backend (window, colors) before the loop starts.
	Init(s *session.Session) error

	// Run drives the poll-and-draw loop until the overlay exits.
	Run() error

	// Close releases backend resources.
	Close() error
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Run initializes and runs the current renderer.
func Run(s *session.Session) error {
	if Current == nil {
		return nil
	}
	if err := Current.Init(s); err != nil {
		return err
	}
	defer Current.Close()
	return Current.Run()
}
