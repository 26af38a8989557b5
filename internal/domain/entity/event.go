package entity

// EventName identifies a lifecycle event emitted by the host runtime.
type EventName string

const (
	// EventReady fires once the script environment is initialized.
	EventReady EventName = "ready"
	// EventShowConfiguration fires when the user opens the settings screen.
	EventShowConfiguration EventName = "showConfiguration"
	// EventWebviewClosed fires when the configuration page is dismissed.
	EventWebviewClosed EventName = "webviewclosed"
)

// LifecycleEvents lists the events the configuration relay subscribes to.
func LifecycleEvents() []EventName {
	return []EventName{EventReady, EventShowConfiguration, EventWebviewClosed}
}

// IsLifecycle reports whether name is one of the known lifecycle events.
func (n EventName) IsLifecycle() bool {
	for _, e := range LifecycleEvents() {
		if e == n {
			return true
		}
	}
	return false
}

// Event is a single inbound host event.
// Response is only meaningful for webviewclosed and holds the
// percent-encoded JSON returned by the configuration page.
type Event struct {
	Name     EventName `json:"name"`
	Response string    `json:"response,omitempty"`
}
