package idle

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BurntSushi/xgb/xproto"
)

var (
	ErrOpenDisplay = errors.New("open display")
	ErrAllocInfo   = errors.New("allocate screen saver info")
	ErrQueryInfo   = errors.New("query screen saver info")
)

// Info holds the result of one screen saver query.
type Info struct {
	// Idle is the time since the server last saw keyboard or pointer input.
	// The server reports it as an unsigned millisecond count, so it is
	// never negative.
	Idle  time.Duration
	State uint8
	Kind  uint8
}

// Display is an open connection to a display server.
type Display interface {
	DefaultRoot() xproto.Window
	AllocInfo() (*Info, error)
	QueryInfo(root xproto.Window, info *Info) error
	FreeInfo(info *Info)
	Close() error
}

// Opener connects to the named display. An empty name selects the default
// display from the environment.
type Opener func(name string) (Display, error)

// Query opens the display, asks the screen saver extension how long the
// user has been idle on the default root window, and releases everything
// it acquired before returning.
func Query(open Opener, name string) (time.Duration, error) {
	display, err := open(name)
	if err != nil {
		slog.Error("idle query failed", "stage", "open", "display", name, "error", err)
		return 0, fmt.Errorf("%w: %w", ErrOpenDisplay, err)
	}
	defer func() {
		if err := display.Close(); err != nil {
			slog.Warn("close display", "display", name, "error", err)
		}
	}()

	info, err := display.AllocInfo()
	if err != nil {
		slog.Error("idle query failed", "stage", "alloc", "display", name, "error", err)
		return 0, fmt.Errorf("%w: %w", ErrAllocInfo, err)
	}
	defer display.FreeInfo(info)

	root := display.DefaultRoot()
	if err := display.QueryInfo(root, info); err != nil {
		slog.Error("idle query failed", "stage", "query", "display", name, "root", uint32(root), "error", err)
		return 0, fmt.Errorf("%w: %w", ErrQueryInfo, err)
	}

	slog.Debug("idle query",
		"display", name,
		"root", uint32(root),
		"idle_ms", info.Idle.Milliseconds(),
		"state", info.State,
		"kind", info.Kind,
	)

	return info.Idle, nil
}
