//go:build windows

package scripting

import (
	"fmt"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// NewEngine attaches to the scripting engine of the running terminal
// over COM. The terminal must already be running with scripting
// enabled; this never launches it.
func NewEngine() (Engine, error) {
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		return nil, fmt.Errorf("%w: com init: %v", ErrUnavailable, err)
	}

	wrapper, err := oleutil.GetActiveObject("SAPGUI")
	if err != nil {
		ole.CoUninitialize()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	app, err := wrapper.QueryInterface(ole.IID_IDispatch)
	wrapper.Release()
	if err != nil {
		ole.CoUninitialize()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	v, err := oleutil.CallMethod(app, "GetScriptingEngine")
	app.Release()
	if err != nil {
		ole.CoUninitialize()
		return nil, fmt.Errorf("%w: scripting disabled: %v", ErrUnavailable, err)
	}

	return &comEngine{engine: v.ToIDispatch()}, nil
}

type comEngine struct {
	engine *ole.IDispatch
}

// Close drops the scripting engine dispatch and the COM apartment
// initialized in NewEngine.
func (e *comEngine) Close() {
	e.engine.Release()
	ole.CoUninitialize()
}

func (e *comEngine) FirstConnection() (Connection, error) {
	conn, err := firstChild(e.engine)
	if err != nil {
		return nil, fmt.Errorf("%w: no open connection: %v", ErrUnavailable, err)
	}
	return &comConnection{conn: conn}, nil
}

type comConnection struct {
	conn *ole.IDispatch
}

func (c *comConnection) Release() {
	c.conn.Release()
}

func (c *comConnection) FirstSession() (Session, error) {
	sess, err := firstChild(c.conn)
	if err != nil {
		return nil, fmt.Errorf("%w: no open session: %v", ErrUnavailable, err)
	}
	return &comSession{sess: sess}, nil
}

type comSession struct {
	sess *ole.IDispatch
}

func (s *comSession) Release() {
	s.sess.Release()
}

func (s *comSession) FindByID(id string) (Element, error) {
	v, err := oleutil.CallMethod(s.sess, "FindById", id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}
	return &comElement{el: v.ToIDispatch()}, nil
}

func (s *comSession) ActiveWindow() (Element, error) {
	v, err := oleutil.GetProperty(s.sess, "ActiveWindow")
	if err != nil {
		return nil, fmt.Errorf("%w: active window", ErrElementNotFound)
	}
	return &comElement{el: v.ToIDispatch()}, nil
}

type comElement struct {
	el *ole.IDispatch
}

func (e *comElement) Text() (string, error) {
	v, err := oleutil.GetProperty(e.el, "Text")
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return v.ToString(), nil
}

func (e *comElement) SetText(value string) error {
	_, err := oleutil.PutProperty(e.el, "Text", value)
	return err
}

func (e *comElement) Press() error {
	_, err := oleutil.CallMethod(e.el, "Press")
	return err
}

func (e *comElement) Select() error {
	_, err := oleutil.CallMethod(e.el, "Select")
	return err
}

func (e *comElement) SetFocus() error {
	_, err := oleutil.CallMethod(e.el, "SetFocus")
	return err
}

func (e *comElement) SetSelected(selected bool) error {
	_, err := oleutil.PutProperty(e.el, "Selected", selected)
	return err
}

func (e *comElement) SetKey(key string) error {
	_, err := oleutil.PutProperty(e.el, "Key", key)
	return err
}

func (e *comElement) SendVKey(code int) error {
	_, err := oleutil.CallMethod(e.el, "SendVKey", code)
	return err
}

func (e *comElement) MessageType() (string, error) {
	v, err := oleutil.GetProperty(e.el, "MessageType")
	if err != nil {
		return "", fmt.Errorf("read message type: %w", err)
	}
	return v.ToString(), nil
}

func (e *comElement) Close() error {
	_, err := oleutil.CallMethod(e.el, "Close")
	return err
}

// firstChild returns element 0 of a component's Children collection.
func firstChild(parent *ole.IDispatch) (*ole.IDispatch, error) {
	children, err := oleutil.GetProperty(parent, "Children")
	if err != nil {
		return nil, err
	}
	coll := children.ToIDispatch()
	defer coll.Release()

	item, err := oleutil.CallMethod(coll, "Item", 0)
	if err != nil {
		return nil, err
	}
	return item.ToIDispatch(), nil
}
