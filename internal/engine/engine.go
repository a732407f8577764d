// internal/engine/engine.go
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/isolationgames/against/internal/journal"
	"github.com/isolationgames/against/internal/protocol"
	"github.com/isolationgames/against/internal/transport"
)

// ErrInvalidGame is returned by Run when the server reports the game id as
// unknown or expired. Terminal; the caller should send the user back to
// game creation.
var ErrInvalidGame = errors.New("engine: unknown or expired game")

// Engine drives the client's state machine: it consumes the transport's
// connect signals and inbound events on a single loop, applies them to the
// State, and validates outbound player actions before they reach the
// server. The server remains authoritative; the engine only refuses to
// transmit what it already knows to be invalid.
type Engine struct {
	// Journal, if set before Run, receives every inbound event. Failures
	// are logged and never affect state.
	Journal *journal.Journal

	// Rand seeds the presentation shuffle. Defaults to a time-seeded
	// source; tests inject their own.
	Rand *rand.Rand

	// OnChange, if set before Run, observes the state after every applied
	// event. Called on the engine loop; must not block.
	OnChange func(State)

	logger   *logrus.Logger
	ch       transport.Channel
	gameID   string
	playerID string

	// mu serializes the run loop and player actions onto one logical
	// thread of control; nothing else touches state.
	mu    sync.Mutex
	state State
	seq   int
}

// New builds an engine for one player in one game.
func New(logger *logrus.Logger, ch transport.Channel, gameID, playerID string) *Engine {
	return &Engine{
		logger:   logger,
		ch:       ch,
		gameID:   gameID,
		playerID: playerID,
		state:    NewState(playerID),
	}
}

// State returns a copy of the current state for observers.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.clone()
}

// Run processes connect signals and inbound events until ctx is cancelled,
// the message channel closes, or the game is invalidated. Events are
// handled strictly one at a time in arrival order; the transitions are not
// commutative, so this is a correctness requirement rather than a
// simplification.
func (e *Engine) Run(ctx context.Context) error {
	if e.Rand == nil {
		e.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.ch.Connects():
			if err := e.handleConnect(ctx); err != nil {
				e.logger.Warnf("Join after connect failed: %v", err)
			}
		case ev, ok := <-e.ch.Messages():
			if !ok {
				return nil
			}
			if err := e.handleEvent(ctx, ev); err != nil {
				return err
			}
		}
	}
}

// handleConnect resets the local hand and selection, then joins the game.
// Runs on every (re)connection; this is the only recovery path after a
// dropped connection.
func (e *Engine) handleConnect(ctx context.Context) error {
	e.mu.Lock()
	e.state.MyCards = nil
	e.state.Selection = nil
	e.mu.Unlock()
	e.logger.Infof("Joining game %s as player %s", e.gameID, e.playerID)
	return e.ch.Send(ctx, protocol.NewJoinGame(e.playerID, e.gameID))
}

func (e *Engine) handleEvent(ctx context.Context, ev protocol.Event) error {
	e.journalEvent(ctx, ev)

	if _, ok := ev.(protocol.InvalidGame); ok {
		e.logger.Warnf("Game %s is invalid. Leaving.", e.gameID)
		return ErrInvalidGame
	}
	if u, ok := ev.(protocol.Unknown); ok {
		e.logger.Warnf("Unknown event %q: %s", u.Type, string(u.Raw))
		return nil
	}

	e.mu.Lock()
	next, changes := Apply(e.state, ev, e.Rand)
	e.state = next
	e.mu.Unlock()

	for _, c := range changes {
		e.logger.Infof("Score for %s is now %d", c.Name, c.To)
	}
	if e.OnChange != nil {
		e.OnChange(next)
	}
	return nil
}

// journalEvent records the inbound event. Best effort.
func (e *Engine) journalEvent(ctx context.Context, ev protocol.Event) {
	if e.Journal == nil {
		return
	}
	e.seq++
	rec := journal.Record{
		GameID:    e.gameID,
		Seq:       e.seq,
		Event:     ev.Kind(),
		Timestamp: time.Now().UnixMilli(),
	}
	switch v := ev.(type) {
	case protocol.PlayCard:
		rec.Player = v.Player
	case protocol.Unknown:
		rec.Payload = v.Raw
	}
	if rec.Payload == nil {
		if data, err := json.Marshal(ev); err == nil {
			rec.Payload = data
		}
	}
	if err := e.Journal.Publish(ctx, rec); err != nil {
		e.logger.Warnf("Failed to journal %s event: %v", ev.Kind(), err)
	}
}

// SelectCard chooses a card from the hand for submission and transmits
// the full current selection. Selecting a card twice is a no-op, not a
// deselect. Over-selection is corrected silently by keeping the most
// recent CardsToPlay picks; the UI stays forgiving instead of rejecting.
func (e *Engine) SelectCard(ctx context.Context, card string) error {
	e.mu.Lock()
	if dup := e.contains(card); dup {
		e.mu.Unlock()
		return nil
	}
	e.state.Selection = nextSelection(e.state.Selection, card, e.state.CardsToPlay)
	cards := append([]string(nil), e.state.Selection...)
	e.mu.Unlock()
	return e.ch.Send(ctx, protocol.NewPlayCards(e.gameID, e.playerID, cards))
}

// contains reports whether card is already selected. Caller holds mu.
func (e *Engine) contains(card string) bool {
	for _, c := range e.state.Selection {
		if c == card {
			return true
		}
	}
	return false
}

// ChooseWinner submits the czar's pick for the round.
func (e *Engine) ChooseWinner(ctx context.Context, winnerID string) error {
	return e.ch.Send(ctx, protocol.NewChooseWinner(e.playerID, winnerID, e.gameID))
}

// EndRound asks the server to advance past the current round.
func (e *Engine) EndRound(ctx context.Context) error {
	return e.ch.Send(ctx, protocol.NewEndRound(e.playerID, e.gameID))
}

// SetPlayerName submits a new display name. The authoritative name comes
// back on the next snapshot.
func (e *Engine) SetPlayerName(ctx context.Context, name string) error {
	return e.ch.Send(ctx, protocol.NewSetPlayerName(e.playerID, e.gameID, name))
}

// KickPlayer asks the server to remove another player.
func (e *Engine) KickPlayer(ctx context.Context, targetID string) error {
	return e.ch.Send(ctx, protocol.NewKickPlayer(e.playerID, targetID, e.gameID))
}
