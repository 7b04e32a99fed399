package coordinator

import "strangerchat/backend/internal/models"

// Client is the interface for one connected transport endpoint. It
// abstracts the underlying connection so the coordinator can address every
// participant uniformly.
type Client interface {
	// GetConnectionID returns the opaque connection id assigned at the
	// transport edge.
	GetConnectionID() string

	// GetSendChannel returns the channel the coordinator writes outbound
	// events to. Delivery is fire-and-forget: the coordinator never blocks
	// on a slow consumer.
	GetSendChannel() chan<- models.Event

	// Run starts the client's read and write pumps.
	Run()

	// Close shuts the outbound channel down, which stops the write pump.
	Close()
}
