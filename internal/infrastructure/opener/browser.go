// Package opener shows URLs to the user, either in the desktop browser or
// only in the log.
package opener

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/briwestervelt/formal/internal/application/port"
	"github.com/briwestervelt/formal/internal/logging"
)

// ErrNoLauncher is returned when no URL launcher was found on PATH.
var ErrNoLauncher = errors.New("no url launcher available")

// Browser implements port.URLOpener with the platform URL launcher
// (xdg-open on Linux and the BSDs, open on macOS).
type Browser struct {
	launcher string
	args     []string
}

var _ port.URLOpener = (*Browser)(nil)

// NewBrowser detects the launcher for the running platform.
func NewBrowser() *Browser {
	b := &Browser{}
	switch runtime.GOOS {
	case "darwin":
		if path, err := exec.LookPath("open"); err == nil {
			b.launcher = path
		}
	case "windows":
		if path, err := exec.LookPath("rundll32"); err == nil {
			b.launcher = path
			b.args = []string{"url.dll,FileProtocolHandler"}
		}
	default:
		for _, name := range []string{"xdg-open", "gio"} {
			if path, err := exec.LookPath(name); err == nil {
				b.launcher = path
				if name == "gio" {
					b.args = []string{"open"}
				}
				break
			}
		}
	}
	return b
}

// Available reports whether a launcher was found.
func (b *Browser) Available() bool {
	return b.launcher != ""
}

// Open starts the launcher for url and returns once it has been spawned.
func (b *Browser) Open(ctx context.Context, url string) error {
	log := logging.FromContext(ctx)

	if b.launcher == "" {
		log.Error().Err(ErrNoLauncher).Str("url", url).Msg("open url failed")
		return ErrNoLauncher
	}

	args := append(append([]string{}, b.args...), url)
	cmd := exec.Command(b.launcher, args...)
	if err := cmd.Start(); err != nil {
		log.Error().Err(err).Str("tool", b.launcher).Msg("open url failed")
		return fmt.Errorf("start %s: %w", b.launcher, err)
	}
	go func() { _ = cmd.Wait() }()

	log.Debug().Str("tool", b.launcher).Str("url", url).Msg("url opened")
	return nil
}
