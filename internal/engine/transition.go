// internal/engine/transition.go
package engine

import (
	"math/rand"

	"github.com/isolationgames/against/internal/protocol"
)

// ScoreChange records a score difference observed between two snapshots.
// Diagnostic only; it never feeds back into state.
type ScoreChange struct {
	PlayerID string
	Name     string
	From     int
	To       int
}

// Apply routes one inbound event to its effect on the state and returns
// the next state. Events must be applied one at a time in arrival order;
// the transitions do not commute (a draw after a snapshot reset must land
// in the new hand).
func Apply(prev State, ev protocol.Event, rng *rand.Rand) (State, []ScoreChange) {
	switch e := ev.(type) {
	case protocol.GameUpdate:
		return applySnapshot(prev, e.Game, rng)
	case protocol.DrawCard:
		next := prev
		next.MyCards = append(append([]string(nil), prev.MyCards...), e.Card)
		return next, nil
	case protocol.PlayCard:
		next := prev
		next.CardsPlayed = make(map[string][]string, len(prev.CardsPlayed)+1)
		for id, cards := range prev.CardsPlayed {
			next.CardsPlayed[id] = cards
		}
		next.CardsPlayed[e.Player] = append([]string(nil), e.Cards...)
		next.Waiting = WaitingSet(next.Players, next.CardsToPlay)
		return next, nil
	default:
		// invalid_game carries no state effect (the engine terminates the
		// session); anything unrecognized is ignored.
		return prev, nil
	}
}

// applySnapshot adopts a server snapshot wholesale and rebuilds every
// projection derived from it.
func applySnapshot(prev State, game protocol.Game, rng *rand.Rand) (State, []ScoreChange) {
	var changes []ScoreChange
	for _, old := range prev.Game.Players {
		for _, p := range game.Players {
			if p.ID != old.ID {
				continue
			}
			if p.Score != old.Score {
				changes = append(changes, ScoreChange{PlayerID: p.ID, Name: p.Name, From: old.Score, To: p.Score})
			}
		}
	}

	next := prev
	next.Game = game

	for _, p := range game.Players {
		if p.ID != prev.PlayerID {
			continue
		}
		// The server can push an authoritative hand here; ordinarily the
		// hand grows through draw_card events instead.
		next.PlayerName = p.Name
		next.MyCards = append([]string(nil), p.Cards...)
	}

	next.Players = game.Players
	next.RandomizedPlayers = shufflePlayers(game.Players, rng)
	next.PlayersByID = make(map[string]protocol.Player, len(game.Players))
	for _, p := range game.Players {
		next.PlayersByID[p.ID] = p
	}

	next.BlackCard = game.BlackCard
	next.CardsToPlay = CardsToPlay(game.BlackCard)
	next.CardsPlayed = map[string][]string{}
	next.Waiting = WaitingSet(next.Players, next.CardsToPlay)
	next.Czar = game.Czar

	if game.State == protocol.StateChooseWinner {
		next.Selection = nil
	}
	if game.BlackCard != prev.BlackCard {
		// Fresh deal; a selection left over from the previous round would
		// otherwise leak into it.
		next.Selection = nil
	}
	return next, changes
}
