package scripting

import (
	"fmt"
	"log/slog"
)

// Manager establishes and reuses a single scripting session per
// process. It is not safe for concurrent use: the terminal holds one
// screen, so exactly one workflow may drive it at a time.
type Manager struct {
	engine     Engine
	connection Connection
	session    Session
}

// NewManager creates a session manager on top of the given engine.
func NewManager(engine Engine) *Manager {
	return &Manager{engine: engine}
}

// Connect returns the existing session if one is held, otherwise it
// acquires the engine's first connection and that connection's first
// session. No retry is attempted; callers reconnect lazily by calling
// Connect again wherever a session is needed.
func (m *Manager) Connect() (Session, error) {
	if m.session != nil {
		slog.Debug("Reusing existing terminal session")
		return m.session, nil
	}

	conn, err := m.engine.FirstConnection()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	sess, err := conn.FirstSession()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	m.connection = conn
	m.session = sess
	slog.Info("Terminal session established")
	return sess, nil
}

// Session returns the active session, connecting lazily when none is
// held yet.
func (m *Manager) Session() (Session, error) {
	return m.Connect()
}

// Connected reports whether a session is currently held.
func (m *Manager) Connected() bool {
	return m.session != nil
}

// Disconnect releases the held session and connection. When
// closeWindow is set, the terminal's top-level window is closed first;
// a failure to close is logged and otherwise ignored. Disconnect is
// idempotent.
func (m *Manager) Disconnect(closeWindow bool) {
	if m.session != nil && closeWindow {
		if wnd, err := m.session.FindByID("wnd[0]"); err == nil {
			if err := wnd.Close(); err != nil {
				slog.Warn("Could not close terminal window", "error", err)
			}
		}
	}

	release(m.session)
	release(m.connection)
	m.session = nil
	m.connection = nil
	slog.Info("Terminal session disconnected")
}

// release frees the COM dispatch behind a session or connection when
// the implementation holds one. In-process fakes hold none.
func release(v interface{}) {
	if r, ok := v.(interface{ Release() }); ok {
		r.Release()
	}
}
