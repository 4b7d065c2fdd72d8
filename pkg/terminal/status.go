// Package terminal layers screen probing and navigation primitives on
// top of a scripting session. Screen titles and status-bar messages
// are a protocol contract with the target terminal: the literals below
// are specific to its locale and version and live only in this file
// and screens.go.
package terminal

import "strings"

// StatusKind classifies a raw status-bar message so callers can key
// control flow on an enum instead of literal strings.
type StatusKind int

const (
	// StatusNone means the status bar is empty.
	StatusNone StatusKind = iota
	// StatusAutoCorrected means the terminal silently substituted a
	// default value and wants a second confirmation.
	StatusAutoCorrected
	// StatusDifferenceTooLarge means simulation left a difference the
	// terminal will not clear on its own.
	StatusDifferenceTooLarge
	// StatusSelectItemsFirst means the terminal wants open items
	// selected before proceeding.
	StatusSelectItemsFirst
	// StatusNothingFound means an open-item search matched nothing.
	StatusNothingFound
	// StatusOther is any message without special meaning here.
	StatusOther
)

// Status-bar literals produced by the target terminal.
const (
	msgAutoCorrected      = "se adapta"
	msgDifferenceTooLarge = "La diferencia es demasiado grande para una compensación"
	msgSelectItemsFirst   = "Por favor, seleccione primero las partidas."
	msgNothingFound       = "No se encontró"
)

// ClassifyStatus maps a raw status-bar message onto a StatusKind.
func ClassifyStatus(message string) StatusKind {
	switch {
	case message == "":
		return StatusNone
	case message == msgDifferenceTooLarge:
		return StatusDifferenceTooLarge
	case message == msgSelectItemsFirst:
		return StatusSelectItemsFirst
	case strings.Contains(message, msgAutoCorrected):
		return StatusAutoCorrected
	case strings.Contains(message, msgNothingFound):
		return StatusNothingFound
	}
	return StatusOther
}
