// Package scriptingtest provides a scripted in-process stand-in for
// the terminal's scripting interface. Tests pre-seed element texts,
// mark elements as missing, and hook element presses to play back the
// screen transitions a real terminal would perform.
package scriptingtest

import (
	"fmt"

	"github.com/JesusMMA96/sap-autoentry/pkg/scripting"
)

// Engine is a fake scripting engine handing out a single session.
type Engine struct {
	Sess *Session
	// Err, when set, makes FirstConnection fail as if the terminal
	// were unreachable.
	Err error
	// Closed records that Close was called.
	Closed bool
}

// FirstConnection implements scripting.Engine.
func (e *Engine) FirstConnection() (scripting.Connection, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	return connection{sess: e.Sess}, nil
}

// Close implements scripting.Engine. The fake holds no resources; it
// only records that it was closed.
func (e *Engine) Close() {
	e.Closed = true
}

type connection struct {
	sess *Session
}

func (c connection) FirstSession() (scripting.Session, error) {
	return c.sess, nil
}

// Write records a single SetText call.
type Write struct {
	ID    string
	Value string
}

// VKey records a single SendVKey call.
type VKey struct {
	ID   string
	Code int
}

// Session is a scripted fake terminal session. By default every
// element id resolves; ids registered via FailOn return
// scripting.ErrElementNotFound, matching a field the current screen
// does not expose.
type Session struct {
	// Title is the text of wnd[0], i.e. the current screen title.
	Title string
	// Status and StatusType back the wnd[0]/sbar element.
	Status     string
	StatusType string

	// Writes, Presses and VKeys record every mutation in call order.
	Presses []string
	Writes  []Write
	VKeys   []VKey

	// Hooks, when set, run after the recorded action. Tests use them
	// to script screen transitions.
	OnPress   func(id string)
	OnSelect  func(id string)
	OnVKey    func(id string, code int)
	OnSetText func(id, value string)

	texts   map[string]string
	missing map[string]bool
}

// NewSession creates an empty fake session.
func NewSession() *Session {
	return &Session{
		texts:   make(map[string]string),
		missing: make(map[string]bool),
	}
}

// Set pre-seeds the text an element returns when read.
func (s *Session) Set(id, text string) {
	s.texts[id] = text
}

// FailOn makes FindByID fail for the given id.
func (s *Session) FailOn(id string) {
	s.missing[id] = true
}

// Resolve makes a previously failing id resolve again.
func (s *Session) Resolve(id string) {
	delete(s.missing, id)
}

// TextOf returns the last text written to or seeded on an element.
func (s *Session) TextOf(id string) string {
	return s.texts[id]
}

// Wrote reports whether any SetText targeted the given id.
func (s *Session) Wrote(id string) bool {
	for _, w := range s.Writes {
		if w.ID == id {
			return true
		}
	}
	return false
}

// Pressed reports whether the given element was pressed or selected.
func (s *Session) Pressed(id string) bool {
	for _, p := range s.Presses {
		if p == id {
			return true
		}
	}
	return false
}

// FindByID implements scripting.Session.
func (s *Session) FindByID(id string) (scripting.Element, error) {
	if s.missing[id] {
		return nil, fmt.Errorf("%w: %s", scripting.ErrElementNotFound, id)
	}
	return &element{sess: s, id: id}, nil
}

// ActiveWindow implements scripting.Session.
func (s *Session) ActiveWindow() (scripting.Element, error) {
	return &element{sess: s, id: "wnd[0]"}, nil
}

type element struct {
	sess *Session
	id   string
}

func (e *element) Text() (string, error) {
	switch e.id {
	case "wnd[0]":
		return e.sess.Title, nil
	case "wnd[0]/sbar":
		return e.sess.Status, nil
	}
	return e.sess.texts[e.id], nil
}

func (e *element) SetText(value string) error {
	e.sess.texts[e.id] = value
	e.sess.Writes = append(e.sess.Writes, Write{ID: e.id, Value: value})
	if e.sess.OnSetText != nil {
		e.sess.OnSetText(e.id, value)
	}
	return nil
}

func (e *element) Press() error {
	e.sess.Presses = append(e.sess.Presses, e.id)
	if e.sess.OnPress != nil {
		e.sess.OnPress(e.id)
	}
	return nil
}

func (e *element) Select() error {
	e.sess.Presses = append(e.sess.Presses, e.id)
	if e.sess.OnSelect != nil {
		e.sess.OnSelect(e.id)
	}
	return nil
}

func (e *element) SetFocus() error { return nil }

func (e *element) SetSelected(bool) error {
	e.sess.Presses = append(e.sess.Presses, e.id)
	return nil
}

func (e *element) SetKey(key string) error {
	e.sess.texts[e.id] = key
	e.sess.Writes = append(e.sess.Writes, Write{ID: e.id, Value: key})
	return nil
}

func (e *element) SendVKey(code int) error {
	e.sess.VKeys = append(e.sess.VKeys, VKey{ID: e.id, Code: code})
	if e.sess.OnVKey != nil {
		e.sess.OnVKey(e.id, code)
	}
	return nil
}

func (e *element) MessageType() (string, error) {
	if e.id == "wnd[0]/sbar" {
		return e.sess.StatusType, nil
	}
	return "", nil
}

func (e *element) Close() error {
	e.sess.Presses = append(e.sess.Presses, e.id+"/close")
	return nil
}
