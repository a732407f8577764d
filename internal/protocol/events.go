// internal/protocol/events.go
package protocol

import (
	"encoding/json"
	"fmt"
)

// Inbound event discriminators.
const (
	EventGameUpdate  = "game_update"
	EventInvalidGame = "invalid_game"
	EventDrawCard    = "draw_card"
	EventPlayCard    = "play_card"
)

// Event is one decoded inbound message. Each discriminator maps to its own
// type carrying exactly the fields that event uses; unrecognized
// discriminators decode to Unknown so the engine can log and move on.
type Event interface {
	Kind() string
}

// GameUpdate replaces the client's entire view of shared game state.
type GameUpdate struct {
	Game Game
}

func (GameUpdate) Kind() string { return EventGameUpdate }

// InvalidGame means the referenced game id is unknown or expired. Terminal
// for the session.
type InvalidGame struct{}

func (InvalidGame) Kind() string { return EventInvalidGame }

// DrawCard appends one card to the local hand.
type DrawCard struct {
	Card string
}

func (DrawCard) Kind() string { return EventDrawCard }

// PlayCard reports another player's submission for the current round.
type PlayCard struct {
	Player string
	Cards  []string
}

func (PlayCard) Kind() string { return EventPlayCard }

// Unknown wraps an event the client does not recognize. Forward-compatible:
// ignored apart from a diagnostic log.
type Unknown struct {
	Type string
	Raw  json.RawMessage
}

func (u Unknown) Kind() string { return u.Type }

// envelope mirrors the wire JSON: an event discriminator plus the superset
// of payload fields the server sends.
type envelope struct {
	Event  string          `json:"event"`
	Game   json.RawMessage `json:"game,omitempty"`
	Card   string          `json:"card,omitempty"`
	Player string          `json:"player,omitempty"`
	Cards  []string        `json:"cards,omitempty"`
	Winner string          `json:"winner,omitempty"`
	Text   string          `json:"text,omitempty"`
}

// Decode parses one inbound frame into its typed event.
func Decode(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	switch env.Event {
	case EventGameUpdate:
		var g Game
		if err := json.Unmarshal(env.Game, &g); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", EventGameUpdate, err)
		}
		return GameUpdate{Game: g}, nil
	case EventInvalidGame:
		return InvalidGame{}, nil
	case EventDrawCard:
		return DrawCard{Card: env.Card}, nil
	case EventPlayCard:
		return PlayCard{Player: env.Player, Cards: env.Cards}, nil
	default:
		raw := make(json.RawMessage, len(data))
		copy(raw, data)
		return Unknown{Type: env.Event, Raw: raw}, nil
	}
}
