// Package wallpaper pins an application window behind the desktop icons.
package wallpaper

import "errors"

var (
	ErrUnsupported    = errors.New("wallpaper mode is not supported on this platform")
	ErrWindowNotFound = errors.New("window not found")
)

// Activator turns a top-level window into the desktop wallpaper.
type Activator interface {
	Activate(title string) error
}

// Desktop is the Activator for the running platform.
type Desktop struct{}

// Activate finds the window whose title is title and moves it into the
// desktop layer. It is a single call with no follow up.
func (Desktop) Activate(title string) error {
	return activate(title)
}
