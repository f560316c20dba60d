// Package ui provides the runner logic for the terminal user interface.
package ui

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tableflip.dev/taskboard/pkg/app"
	"tableflip.dev/taskboard/pkg/store"
	"tableflip.dev/taskboard/pkg/tui"
)

// UI opens the interactive board.
type UI struct {
	Store   *app.Store
	Prefs   store.Prefs
	Watcher store.Watcher
	Log     *zap.Logger
}

// Do runs the board until the user quits.
func (u *UI) Do(ctx context.Context) error {
	if u.Store == nil {
		return errors.New("can not open ui, no task store")
	}
	return tui.Run(ctx, tui.Options{
		Store:   u.Store,
		Prefs:   u.Prefs,
		Watcher: u.Watcher,
		Scheme:  u.InitialScheme(),
		Log:     u.Log,
	})
}

// InitialScheme is the stored display preference, or a guess from the
// terminal background when none is stored.
func (u *UI) InitialScheme() app.Scheme {
	if u.Prefs != nil {
		stored, err := u.Prefs.Scheme()
		if err != nil && u.Log != nil {
			u.Log.Warn("reading display preference failed", zap.Error(err))
		}
		if scheme, ok := app.ParseScheme(stored); ok {
			return scheme
		}
	}
	return tui.DetectScheme()
}
