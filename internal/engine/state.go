// internal/engine/state.go
package engine

import (
	"github.com/isolationgames/against/internal/protocol"
)

// State is the client's full view of the game: the last server snapshot
// plus every projection derived from it. It is a value; Apply returns a
// fresh State per event and never mutates its input. The engine's run loop
// owns the only live reference.
type State struct {
	// PlayerID is the local player's identity. Fixed for the session.
	PlayerID string

	// Game is the last snapshot received, adopted wholesale.
	Game protocol.Game

	// Players is the server-ordered player list from the snapshot.
	Players []protocol.Player

	// RandomizedPlayers is a presentation-order view, reshuffled on every
	// snapshot so no seat gets a stable positional advantage.
	RandomizedPlayers []protocol.Player

	// PlayersByID is the lookup rebuilt from Players on every snapshot.
	PlayersByID map[string]protocol.Player

	// PlayerName and MyCards are adopted from the local player's snapshot
	// entry when present. MyCards also grows on draw_card events and is
	// cleared on reconnect. Played cards are deliberately left in the hand;
	// cards not chosen by the czar come back into play.
	PlayerName string
	MyCards    []string

	// BlackCard is the round's prompt; CardsToPlay is its blank count,
	// never below one.
	BlackCard   string
	CardsToPlay int

	// Selection holds the cards currently chosen for submission, bounded
	// by CardsToPlay.
	Selection []string

	// CardsPlayed maps player id to their submitted cards this round.
	// Reset on every snapshot, filled by play_card events.
	CardsPlayed map[string][]string

	// Waiting is the derived set of non-czar players whose submission
	// count has not met CardsToPlay.
	Waiting []protocol.Player

	// Czar is the id of the current judge.
	Czar string
}

// NewState returns the pre-join state for a player. CardsToPlay starts at
// one so the selection guard has a sane bound before the first snapshot.
func NewState(playerID string) State {
	return State{
		PlayerID:    playerID,
		CardsToPlay: 1,
		PlayersByID: map[string]protocol.Player{},
		CardsPlayed: map[string][]string{},
	}
}

// IsWaiting reports whether the given player is still choosing cards.
func (s State) IsWaiting(playerID string) bool {
	for _, p := range s.Waiting {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// clone deep-copies the slices and maps an observer could otherwise alias.
func (s State) clone() State {
	next := s
	next.Players = append([]protocol.Player(nil), s.Players...)
	next.RandomizedPlayers = append([]protocol.Player(nil), s.RandomizedPlayers...)
	next.MyCards = append([]string(nil), s.MyCards...)
	next.Selection = append([]string(nil), s.Selection...)
	next.Waiting = append([]protocol.Player(nil), s.Waiting...)
	next.PlayersByID = make(map[string]protocol.Player, len(s.PlayersByID))
	for id, p := range s.PlayersByID {
		next.PlayersByID[id] = p
	}
	next.CardsPlayed = make(map[string][]string, len(s.CardsPlayed))
	for id, cards := range s.CardsPlayed {
		next.CardsPlayed[id] = append([]string(nil), cards...)
	}
	return next
}
