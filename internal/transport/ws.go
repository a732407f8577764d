// internal/transport/ws.go
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/isolationgames/against/internal/protocol"
)

const (
	writeTimeout   = 5 * time.Second
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// WSChannel implements Channel over a websocket connection. A dropped
// connection is redialed with capped backoff; each successful dial emits a
// fresh Connects notification so the engine can reset and re-join. Frames
// are decoded here, one at a time, and forwarded on an unbuffered channel,
// which is what gives the engine its in-order, non-concurrent delivery.
type WSChannel struct {
	url    string
	logger *logrus.Logger

	connects chan struct{}
	messages chan protocol.Event
	done     chan struct{}

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

// NewWSChannel builds a channel for the given websocket URL. Connect must
// be called before use.
func NewWSChannel(logger *logrus.Logger, url string) *WSChannel {
	return &WSChannel{
		url:      url,
		logger:   logger,
		connects: make(chan struct{}, 1),
		messages: make(chan protocol.Event),
		done:     make(chan struct{}),
	}
}

// Connect dials the server, failing fast if the first dial does not
// succeed, then keeps the channel alive in the background until ctx is
// cancelled. Calling Connect on an already-connected channel is a no-op.
func (w *WSChannel) Connect(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return errors.New("transport: channel closed")
	}
	if w.conn != nil {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	conn, err := w.dial(ctx)
	if err != nil {
		return fmt.Errorf("connect %s: %w", w.url, err)
	}
	go w.run(ctx, conn)
	return nil
}

// Connects yields one notification per established connection.
func (w *WSChannel) Connects() <-chan struct{} { return w.connects }

// Messages yields decoded inbound events in arrival order.
func (w *WSChannel) Messages() <-chan protocol.Event { return w.messages }

// Send marshals and transmits one outbound message with a write timeout.
func (w *WSChannel) Send(ctx context.Context, msg any) error {
	w.mu.Lock()
	conn := w.conn
	w.mu.Unlock()
	if conn == nil {
		return errors.New("transport: not connected")
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal outbound message: %w", err)
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := conn.Write(writeCtx, websocket.MessageText, data); err != nil {
		return fmt.Errorf("write to %s: %w", w.url, err)
	}
	return nil
}

// Close shuts the channel down for good; the background loop stops
// redialing.
func (w *WSChannel) Close() error {
	w.mu.Lock()
	conn := w.conn
	w.conn = nil
	alreadyClosed := w.closed
	w.closed = true
	w.mu.Unlock()
	if !alreadyClosed {
		close(w.done)
	}
	if conn != nil {
		return conn.Close(websocket.StatusNormalClosure, "client closing")
	}
	return nil
}

func (w *WSChannel) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, _, err := websocket.Dial(ctx, w.url, nil)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	w.conn = conn
	w.mu.Unlock()
	w.logger.Infof("Connected to %s", w.url)
	w.notifyConnect()
	return conn, nil
}

// notifyConnect delivers the one-shot-per-connection signal. A pending,
// unconsumed signal is not duplicated; the engine's reset is idempotent.
func (w *WSChannel) notifyConnect() {
	select {
	case w.connects <- struct{}{}:
	default:
	}
}

// run reads from the current connection until it fails, then redials with
// backoff until ctx is cancelled.
func (w *WSChannel) run(ctx context.Context, conn *websocket.Conn) {
	backoff := initialBackoff
	for {
		w.readAll(ctx, conn)
		conn.Close(websocket.StatusNormalClosure, "")
		w.mu.Lock()
		w.conn = nil
		w.mu.Unlock()

		for {
			select {
			case <-ctx.Done():
				return
			case <-w.done:
				return
			case <-time.After(backoff):
			}
			var err error
			conn, err = w.dial(ctx)
			if err == nil {
				backoff = initialBackoff
				break
			}
			w.logger.Warnf("Redial of %s failed: %v", w.url, err)
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}
	}
}

// readAll forwards decoded events until the connection errors or ctx is
// cancelled. Malformed frames are logged and dropped.
func (w *WSChannel) readAll(ctx context.Context, conn *websocket.Conn) {
	for {
		msgType, data, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				w.logger.Infof("WebSocket closed normally for %s", w.url)
			} else if strings.Contains(err.Error(), "context canceled") {
				w.logger.Infof("WebSocket context canceled for %s", w.url)
			} else {
				w.logger.Warnf("Error reading from %s: %v (Status: %d)", w.url, err, status)
			}
			return
		}
		if msgType != websocket.MessageText {
			w.logger.Warnf("Received non-text message type %d from %s. Ignoring.", msgType, w.url)
			continue
		}
		ev, err := protocol.Decode(data)
		if err != nil {
			w.logger.Warnf("Invalid frame from %s: %v. Data: %s", w.url, err, string(data))
			continue
		}
		select {
		case w.messages <- ev:
		case <-ctx.Done():
			return
		}
	}
}
