package terminal

import (
	"fmt"
	"log/slog"

	"github.com/JesusMMA96/sap-autoentry/pkg/scripting"
)

// Navigator issues screen-level navigation against the shared session:
// opening transactions, returning home, applying report variants. No
// primitive retries on its own; a failed navigation ends the current
// posting sequence.
type Navigator struct {
	sessions *scripting.Manager
	probe    *Probe
}

// NewNavigator creates a navigator over the shared session manager.
func NewNavigator(sessions *scripting.Manager, probe *Probe) *Navigator {
	return &Navigator{sessions: sessions, probe: probe}
}

// OpenTransaction types a transaction code into the command field and
// confirms, returning home first when another transaction is active.
func (n *Navigator) OpenTransaction(code string) error {
	onHome, err := n.probe.OnScreen(TitleHome)
	if err != nil {
		return fmt.Errorf("open transaction %s: %w", code, err)
	}
	if !onHome {
		if err := n.ReturnHome(); err != nil {
			return fmt.Errorf("open transaction %s: %w", code, err)
		}
	}

	sess, err := n.sessions.Session()
	if err != nil {
		return err
	}
	if err := setText(sess, idCommandField, code); err != nil {
		return fmt.Errorf("open transaction %s: %w", code, err)
	}
	if err := sendVKey(sess, idMainWindow, scripting.VKeyEnter); err != nil {
		return fmt.Errorf("open transaction %s: %w", code, err)
	}

	slog.Debug("Opened transaction", "code", code)
	return nil
}

// ReturnHome clears the running transaction and returns to the home
// screen.
func (n *Navigator) ReturnHome() error {
	sess, err := n.sessions.Session()
	if err != nil {
		return err
	}
	if err := setText(sess, idCommandField, homeCommand); err != nil {
		return fmt.Errorf("return home: %w", err)
	}
	if err := sendVKey(sess, idMainWindow, scripting.VKeyEnter); err != nil {
		return fmt.Errorf("return home: %w", err)
	}
	return nil
}

// Variant filters the report-variant selection dialog. Blank fields
// are written as blanks, clearing whatever the dialog remembered.
type Variant struct {
	Name        string
	Author      string
	ModifiedBy  string
	Environment string
	Language    string
}

// ApplyVariant opens the variant selection dialog, fills the filter
// fields and executes.
func (n *Navigator) ApplyVariant(v Variant) error {
	sess, err := n.sessions.Session()
	if err != nil {
		return err
	}

	if err := press(sess, idVariantButton); err != nil {
		return fmt.Errorf("apply variant %s: %w", v.Name, err)
	}

	fields := []struct {
		id    string
		value string
	}{
		{idVariantName, v.Name},
		{idVariantEnviron, v.Environment},
		{idVariantAuthor, v.Author},
		{idVariantModifiedBy, v.ModifiedBy},
		{idVariantLanguage, v.Language},
	}
	for _, f := range fields {
		if err := setText(sess, f.id, f.value); err != nil {
			return fmt.Errorf("apply variant %s: %w", v.Name, err)
		}
	}

	if err := press(sess, idVariantExecute); err != nil {
		return fmt.Errorf("apply variant %s: %w", v.Name, err)
	}
	return nil
}

// Element helpers shared with the entry package.

// SetText writes a value into the element with the given id.
func SetText(sess scripting.Session, id, value string) error {
	return setText(sess, id, value)
}

// Press presses the element with the given id.
func Press(sess scripting.Session, id string) error {
	return press(sess, id)
}

// SendVKey sends a virtual key to the element with the given id.
func SendVKey(sess scripting.Session, id string, code int) error {
	return sendVKey(sess, id, code)
}

// ReadText returns the text of the element with the given id.
func ReadText(sess scripting.Session, id string) (string, error) {
	el, err := sess.FindByID(id)
	if err != nil {
		return "", err
	}
	return el.Text()
}

func setText(sess scripting.Session, id, value string) error {
	el, err := sess.FindByID(id)
	if err != nil {
		return err
	}
	return el.SetText(value)
}

func press(sess scripting.Session, id string) error {
	el, err := sess.FindByID(id)
	if err != nil {
		return err
	}
	return el.Press()
}

func sendVKey(sess scripting.Session, id string, code int) error {
	el, err := sess.FindByID(id)
	if err != nil {
		return err
	}
	return el.SendVKey(code)
}
