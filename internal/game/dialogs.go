package game

import (
	"errors"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/papermap-live/internal/config"
	"github.com/iburimskiy/papermap-live/internal/overlay"
	"github.com/iburimskiy/papermap-live/internal/settings"
)

const otherFont = "Other TrueType file..."

// Dialogs are the native pickers. They block until the user answers, so
// the shell runs them off the update goroutine.
type Dialogs interface {
	PickCity(current string) (string, error)
	PickFont(current string) (string, error)
	Notify(msg string) error
}

type zenityDialogs struct{}

func (zenityDialogs) PickCity(current string) (string, error) {
	return zenity.List("Choose a city",
		settings.LocationNames(),
		zenity.Title(config.WindowTitle),
		zenity.DefaultItems(current),
	)
}

func (zenityDialogs) PickFont(current string) (string, error) {
	items := append(append([]string{}, overlay.FontNames...), otherFont)
	name, err := zenity.List("Choose the poster font",
		items,
		zenity.Title(config.WindowTitle),
		zenity.DefaultItems(current),
	)
	if err != nil || name != otherFont {
		return name, err
	}
	return zenity.SelectFile(
		zenity.Title("Open Font File"),
		zenity.FileFilters{{
			Name:     "TrueType fonts",
			Patterns: []string{"*.ttf"},
		}},
	)
}

func (zenityDialogs) Notify(msg string) error {
	return zenity.Notify(msg, zenity.Title(config.WindowTitle), zenity.ErrorIcon)
}

type dialogKind int

const (
	dialogCity dialogKind = iota
	dialogFont
)

type dialogResult struct {
	kind  dialogKind
	value string
	err   error
}

// openDialog shows a picker unless one is already open.
func (g *game) openDialog(kind dialogKind) {
	if g.dialogOpen {
		return
	}
	g.dialogOpen = true
	d, snap := g.dialogs, g.snap
	go func() {
		var r dialogResult
		r.kind = kind
		switch kind {
		case dialogCity:
			r.value, r.err = d.PickCity(snap.City)
		case dialogFont:
			r.value, r.err = d.PickFont(snap.Font)
		}
		g.dialogResults <- r
	}()
}

func (g *game) collectDialogs() {
	select {
	case r := <-g.dialogResults:
		g.dialogOpen = false
		if r.err != nil {
			if !errors.Is(r.err, zenity.ErrCanceled) {
				g.logger.Errorf("game", "dialog: %v", r.err)
				g.pushError(r.err)
			}
			return
		}
		switch r.kind {
		case dialogCity:
			if s, ok := g.snap.WithLocation(r.value); ok {
				g.snap = s
			} else {
				g.logger.Infof("game", "ignoring unknown location %q", r.value)
			}
		case dialogFont:
			if r.value != "" {
				g.snap.Font = r.value
			}
		}
	default:
	}
}

func (g *game) notify(msg string) {
	d := g.dialogs
	go func() {
		if err := d.Notify(msg); err != nil {
			g.logger.Errorf("game", "notify: %v", err)
		}
	}()
}
