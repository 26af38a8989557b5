package entity

import "errors"

// Sentinel errors shared across layers. Wrap with fmt.Errorf("...: %w", err)
// and match with errors.Is.
var (
	// ErrMalformedPayload is returned when a webviewclosed response cannot be
	// percent-decoded or parsed as a JSON object.
	ErrMalformedPayload = errors.New("malformed configuration payload")

	// ErrInvalidColor is returned when a color value is not a base-16 integer.
	ErrInvalidColor = errors.New("invalid hex color")

	// ErrDeviceDisconnected is returned by a transport when the paired device
	// is not reachable.
	ErrDeviceDisconnected = errors.New("device disconnected")

	// ErrInboxOverflow is returned when an encoded message does not fit in the
	// device inbox.
	ErrInboxOverflow = errors.New("message exceeds device inbox size")

	// ErrMalformedDictionary is returned when AppMessage bytes cannot be decoded.
	ErrMalformedDictionary = errors.New("malformed app message dictionary")

	// ErrBusClosed is returned when emitting on a host that is shutting down.
	ErrBusClosed = errors.New("host event bus closed")

	// ErrOutboxFull is reported when the host cannot accept another outbound
	// request.
	ErrOutboxFull = errors.New("host outbox full")
)
