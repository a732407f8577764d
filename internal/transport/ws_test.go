package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isolationgames/against/internal/protocol"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// echoServer accepts one websocket client, pushes the given frames, then
// forwards anything the client sends onto received.
func echoServer(t *testing.T, frames []string, received chan<- []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			t.Errorf("accept: %v", err)
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "")
		ctx := r.Context()
		for _, frame := range frames {
			if err := conn.Write(ctx, websocket.MessageText, []byte(frame)); err != nil {
				return
			}
		}
		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				return
			}
			select {
			case received <- data:
			case <-ctx.Done():
				return
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWSChannelConnectAndReceive(t *testing.T) {
	received := make(chan []byte, 1)
	srv := echoServer(t, []string{
		`{"event": "draw_card", "card": "A tiny horse."}`,
		`not json at all`,
		`{"event": "draw_card", "card": "Another."}`,
	}, received)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch := NewWSChannel(testLogger(), wsURL(srv))
	require.NoError(t, ch.Connect(ctx))
	defer ch.Close()

	select {
	case <-ch.Connects():
	case <-time.After(time.Second):
		t.Fatal("no connect notification")
	}

	ev := <-ch.Messages()
	draw, ok := ev.(protocol.DrawCard)
	require.True(t, ok)
	assert.Equal(t, "A tiny horse.", draw.Card)

	// The malformed frame is dropped at the boundary; the next event is
	// the second draw.
	ev = <-ch.Messages()
	draw, ok = ev.(protocol.DrawCard)
	require.True(t, ok)
	assert.Equal(t, "Another.", draw.Card)
}

func TestWSChannelSend(t *testing.T) {
	received := make(chan []byte, 1)
	srv := echoServer(t, nil, received)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch := NewWSChannel(testLogger(), wsURL(srv))
	require.NoError(t, ch.Connect(ctx))
	defer ch.Close()

	require.NoError(t, ch.Send(ctx, protocol.NewJoinGame("p1", "g1")))

	select {
	case data := <-received:
		var got map[string]string
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "join_game", got["event"])
		assert.Equal(t, "p1", got["player"])
		assert.Equal(t, "g1", got["game"])
	case <-time.After(time.Second):
		t.Fatal("server did not receive the message")
	}
}

func TestWSChannelSendWithoutConnect(t *testing.T) {
	ch := NewWSChannel(testLogger(), "ws://localhost:0")
	err := ch.Send(context.Background(), protocol.NewEndRound("p1", "g1"))
	assert.Error(t, err)
}
