package terminal

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JesusMMA96/sap-autoentry/pkg/prompt"
	"github.com/JesusMMA96/sap-autoentry/pkg/scripting"
)

// ErrScreenNotReached is returned when the expected screen did not
// appear within the bounded number of attempts.
var ErrScreenNotReached = errors.New("terminal: expected screen not reached")

// Probe reads the terminal's current window title and status bar. It
// is polled before and after state-changing operations; the terminal
// offers no events.
type Probe struct {
	sessions *scripting.Manager
	notify   prompt.Notifier
}

// NewProbe creates a probe over the shared session manager.
func NewProbe(sessions *scripting.Manager, notify prompt.Notifier) *Probe {
	return &Probe{sessions: sessions, notify: notify}
}

// WindowTitle returns the title of the terminal's top-level window.
func (p *Probe) WindowTitle() (string, error) {
	sess, err := p.sessions.Session()
	if err != nil {
		return "", err
	}

	wnd, err := sess.FindByID(idMainWindow)
	if err != nil {
		return "", fmt.Errorf("read window title: %w", err)
	}
	title, err := wnd.Text()
	if err != nil {
		return "", fmt.Errorf("read window title: %w", err)
	}
	return title, nil
}

// StatusMessage returns the status-bar text. A message the terminal
// itself classifies as an error is additionally surfaced to the
// operator as a warning. An unreadable status bar counts as an empty
// message: some screens have none.
func (p *Probe) StatusMessage() string {
	sess, err := p.sessions.Session()
	if err != nil {
		return ""
	}

	sbar, err := sess.FindByID(idStatusBar)
	if err != nil {
		return ""
	}
	msg, err := sbar.Text()
	if err != nil {
		return ""
	}

	if kind, _ := sbar.MessageType(); kind == "E" && msg != "" {
		p.notify.Warn("Terminal error", msg)
	}
	return msg
}

// OnScreen reports whether the current window title contains the
// given screen title.
func (p *Probe) OnScreen(title string) (bool, error) {
	current, err := p.WindowTitle()
	if err != nil {
		return false, err
	}
	return containsTitle(current, title), nil
}

// WaitForScreen polls until the given screen title shows, running
// advance between attempts. It never asks the user for help: pure
// bounded polling, at most attempts iterations.
func (p *Probe) WaitForScreen(title string, attempts int, advance func() error) error {
	for i := 0; i < attempts; i++ {
		on, err := p.OnScreen(title)
		if err != nil {
			return err
		}
		if on {
			return nil
		}
		if advance != nil {
			if err := advance(); err != nil {
				return err
			}
		}
	}

	on, err := p.OnScreen(title)
	if err != nil {
		return err
	}
	if on {
		return nil
	}
	slog.Warn("Screen not reached", "want", title)
	return fmt.Errorf("%w: %s", ErrScreenNotReached, title)
}

func containsTitle(current, want string) bool {
	return want != "" && strings.Contains(current, want)
}
