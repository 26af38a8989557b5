package entity

import "time"

// DeliveryStatus is the outcome of one send request.
type DeliveryStatus string

const (
	DeliveryAcked  DeliveryStatus = "acked"
	DeliveryNacked DeliveryStatus = "nacked"
)

// Delivery records one outbound AppMessage attempt.
type Delivery struct {
	TransactionID string
	Message       AppMessage
	Size          int
	Status        DeliveryStatus
	Reason        string // error text for nacked deliveries
	CreatedAt     time.Time
}

// Succeeded reports whether the watch acknowledged the message.
func (d *Delivery) Succeeded() bool {
	return d.Status == DeliveryAcked
}
