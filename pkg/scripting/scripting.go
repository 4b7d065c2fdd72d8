// Package scripting models the accounting terminal's GUI scripting
// interface: an engine that owns connections, connections that own
// sessions, and sessions that expose GUI elements addressed by
// hierarchical ids such as "wnd[0]/tbar[0]/okcd".
package scripting

import "errors"

// ErrUnavailable is returned when the terminal's scripting engine
// cannot be reached (terminal not running, scripting disabled).
var ErrUnavailable = errors.New("scripting: terminal unavailable")

// ErrElementNotFound is returned when an element id does not resolve
// on the current screen.
var ErrElementNotFound = errors.New("scripting: element not found")

// Virtual key codes understood by the terminal.
const (
	VKeyEnter    = 0
	VKeyF2       = 2
	VKeyF8       = 8
	VKeyF12      = 12
	VKeyPageDown = 82
)

// Engine is the entry point of the terminal's scripting interface.
type Engine interface {
	// FirstConnection returns the first open connection to the terminal.
	FirstConnection() (Connection, error)
	// Close releases the engine's resources. The engine must not be
	// used afterwards.
	Close()
}

// Connection is one connection held by the scripting engine.
type Connection interface {
	// FirstSession returns the connection's first session.
	FirstSession() (Session, error)
}

// Session is a single scripting session of the terminal. All element
// lookups address the screen the terminal currently shows.
type Session interface {
	// FindByID resolves a GUI element by its hierarchical id.
	FindByID(id string) (Element, error)
	// ActiveWindow returns the window that currently has focus,
	// which is not necessarily wnd[0] when a dialog is open.
	ActiveWindow() (Element, error)
}

// Element is a single GUI element of the terminal. Which operations
// are meaningful depends on the element's type; the terminal rejects
// the rest at call time.
type Element interface {
	Text() (string, error)
	SetText(value string) error
	Press() error
	Select() error
	SetFocus() error
	SetSelected(selected bool) error
	// SetKey sets a combo box entry by key.
	SetKey(key string) error
	SendVKey(code int) error
	// MessageType reports the status bar's message class
	// ("E" error, "W" warning, "S" success, "" none).
	MessageType() (string, error)
	Close() error
}
