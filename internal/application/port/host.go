package port

import (
	"context"

	"github.com/briwestervelt/formal/internal/domain/entity"
)

// EventHandler reacts to one host event. A returned error is handed to the
// host's default error handler; it never stops the event loop.
type EventHandler func(ctx context.Context, evt entity.Event) error

// HostRuntime is the capability surface the companion script is given by
// the phone-side runtime.
//
// Implementations dispatch events one at a time, in emission order. OpenURL
// and SendAppMessage are fire-and-forget: they must not block the calling
// handler, and exactly one of onSuccess or onFailure runs later as its own
// event.
type HostRuntime interface {
	// On registers handler for the named event.
	On(name entity.EventName, handler EventHandler)

	// OpenURL asks the host to show url in an external viewer.
	OpenURL(ctx context.Context, url string)

	// SendAppMessage asks the host to deliver msg to the watch application.
	SendAppMessage(ctx context.Context, msg entity.AppMessage, onSuccess, onFailure func())
}

// AppMessageTransport moves encoded AppMessage bytes to the watch.
type AppMessageTransport interface {
	// Deliver returns nil once the watch acknowledged the message.
	Deliver(ctx context.Context, transactionID string, payload []byte) error
}

// URLOpener shows a URL to the user.
type URLOpener interface {
	Open(ctx context.Context, url string) error
}
