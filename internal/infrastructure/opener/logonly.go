package opener

import (
	"context"
	"sync"

	"github.com/briwestervelt/formal/internal/application/port"
	"github.com/briwestervelt/formal/internal/logging"
)

// LogOnly implements port.URLOpener by logging the URL and remembering it.
// It is used when no display is available and by tests.
type LogOnly struct {
	mu     sync.Mutex
	opened []string
}

var _ port.URLOpener = (*LogOnly)(nil)

// NewLogOnly creates an opener that never launches anything.
func NewLogOnly() *LogOnly {
	return &LogOnly{}
}

// Open records url.
func (o *LogOnly) Open(ctx context.Context, url string) error {
	o.mu.Lock()
	o.opened = append(o.opened, url)
	o.mu.Unlock()

	logging.FromContext(ctx).Info().Str("url", url).Msg("open url requested")
	return nil
}

// Opened returns the URLs seen so far, oldest first.
func (o *LogOnly) Opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.opened...)
}
