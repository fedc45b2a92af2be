//go:build linux

package wallpaper

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var desktopStates = []string{
	"_NET_WM_STATE_BELOW",
	"_NET_WM_STATE_STICKY",
	"_NET_WM_STATE_SKIP_TASKBAR",
	"_NET_WM_STATE_SKIP_PAGER",
}

func activate(title string) error {
	conn, err := xgb.NewConn()
	if err != nil {
		return fmt.Errorf("connect to X server: %w", err)
	}
	defer conn.Close()

	x := &x11{conn: conn, root: xproto.Setup(conn).DefaultScreen(conn).Root}
	win, err := x.findWindow(title)
	if err != nil {
		return err
	}

	wmType, err := x.atom("_NET_WM_WINDOW_TYPE")
	if err != nil {
		return err
	}
	desktop, err := x.atom("_NET_WM_WINDOW_TYPE_DESKTOP")
	if err != nil {
		return err
	}
	if err := x.setAtoms(win, wmType, desktop); err != nil {
		return fmt.Errorf("set window type: %w", err)
	}

	wmState, err := x.atom("_NET_WM_STATE")
	if err != nil {
		return err
	}
	states := make([]xproto.Atom, 0, len(desktopStates))
	for _, name := range desktopStates {
		a, err := x.atom(name)
		if err != nil {
			return err
		}
		states = append(states, a)
	}
	if err := x.setAtoms(win, wmState, states...); err != nil {
		return fmt.Errorf("set window state: %w", err)
	}

	// Window managers read the type only when a window is mapped.
	if err := xproto.UnmapWindowChecked(conn, win).Check(); err != nil {
		return fmt.Errorf("unmap window: %w", err)
	}
	if err := xproto.MapWindowChecked(conn, win).Check(); err != nil {
		return fmt.Errorf("map window: %w", err)
	}
	return nil
}

type x11 struct {
	conn *xgb.Conn
	root xproto.Window
}

func (x *x11) atom(name string) (xproto.Atom, error) {
	r, err := xproto.InternAtom(x.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern %s: %w", name, err)
	}
	return r.Atom, nil
}

func (x *x11) setAtoms(win xproto.Window, prop xproto.Atom, values ...xproto.Atom) error {
	data := encodeAtoms(values)
	return xproto.ChangePropertyChecked(x.conn, xproto.PropModeReplace, win, prop,
		xproto.AtomAtom, 32, uint32(len(values)), data).Check()
}

// findWindow walks the window manager's client list for a window named
// title.
func (x *x11) findWindow(title string) (xproto.Window, error) {
	clients, err := x.atom("_NET_CLIENT_LIST")
	if err != nil {
		return 0, err
	}
	utf8, err := x.atom("UTF8_STRING")
	if err != nil {
		return 0, err
	}
	netName, err := x.atom("_NET_WM_NAME")
	if err != nil {
		return 0, err
	}

	r, err := xproto.GetProperty(x.conn, false, x.root, clients, xproto.AtomWindow, 0, 1<<16).Reply()
	if err != nil {
		return 0, fmt.Errorf("read client list: %w", err)
	}
	for _, w := range decodeWindows(r.Value) {
		if x.windowName(w, netName, utf8) == title || x.windowName(w, xproto.AtomWmName, xproto.AtomString) == title {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrWindowNotFound, title)
}

func (x *x11) windowName(w xproto.Window, prop, typ xproto.Atom) string {
	r, err := xproto.GetProperty(x.conn, false, w, prop, typ, 0, 1024).Reply()
	if err != nil || r.Format != 8 {
		return ""
	}
	return string(r.Value)
}

func encodeAtoms(atoms []xproto.Atom) []byte {
	buf := make([]byte, 4*len(atoms))
	for i, a := range atoms {
		xgb.Put32(buf[i*4:], uint32(a))
	}
	return buf
}

func decodeWindows(buf []byte) []xproto.Window {
	out := make([]xproto.Window, 0, len(buf)/4)
	for i := 0; i+4 <= len(buf); i += 4 {
		out = append(out, xproto.Window(xgb.Get32(buf[i:])))
	}
	return out
}
