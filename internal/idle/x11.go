package idle

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/screensaver"
	"github.com/BurntSushi/xgb/xproto"
)

type x11Display struct {
	conn *xgb.Conn
	root xproto.Window
}

// OpenX11 connects to an X server with xgb. An empty name uses $DISPLAY.
func OpenX11(name string) (Display, error) {
	// xgb logs connection teardown to stderr by default.
	xgb.Logger = slog.NewLogLogger(slog.Default().Handler(), slog.LevelDebug)

	conn, err := xgb.NewConnDisplay(name)
	if err != nil {
		return nil, err
	}

	setup := xproto.Setup(conn)
	if setup == nil || len(setup.Roots) == 0 {
		conn.Close()
		return nil, fmt.Errorf("display %q reports no screens", name)
	}

	return &x11Display{
		conn: conn,
		root: setup.DefaultScreen(conn).Root,
	}, nil
}

func (d *x11Display) DefaultRoot() xproto.Window {
	return d.root
}

func (d *x11Display) AllocInfo() (*Info, error) {
	return &Info{}, nil
}

// QueryInfo treats a missing MIT-SCREEN-SAVER extension the same as a
// failed request.
func (d *x11Display) QueryInfo(root xproto.Window, info *Info) error {
	if err := screensaver.Init(d.conn); err != nil {
		return fmt.Errorf("screensaver extension: %w", err)
	}

	reply, err := screensaver.QueryInfo(d.conn, xproto.Drawable(root)).Reply()
	if err != nil {
		return fmt.Errorf("screensaver query: %w", err)
	}
	if reply == nil {
		return fmt.Errorf("screensaver query: empty reply")
	}

	info.Idle = time.Duration(reply.MsSinceUserInput) * time.Millisecond
	info.State = reply.State
	info.Kind = reply.Kind
	return nil
}

func (d *x11Display) FreeInfo(info *Info) {
	if info != nil {
		*info = Info{}
	}
}

func (d *x11Display) Close() error {
	d.conn.Close()
	return nil
}
