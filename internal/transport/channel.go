// internal/transport/channel.go
package transport

import (
	"context"

	"github.com/isolationgames/against/internal/protocol"
)

// Channel is the duplex connection the engine consumes. Connect
// establishes the channel; Connects yields one notification per
// (re)established connection; Messages yields decoded inbound events in
// strict arrival order; Send transmits fire-and-forget, no acknowledgment
// is ever awaited.
type Channel interface {
	Connect(ctx context.Context) error
	Connects() <-chan struct{}
	Messages() <-chan protocol.Event
	Send(ctx context.Context, msg any) error
	Close() error
}
