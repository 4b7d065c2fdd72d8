//go:build !windows

package scripting

import "fmt"

// NewEngine attaches to the terminal's scripting engine. The COM
// interface only exists on Windows.
func NewEngine() (Engine, error) {
	return nil, fmt.Errorf("%w: scripting engine requires windows", ErrUnavailable)
}
