// internal/engine/derive.go
package engine

import (
	"math/rand"

	"github.com/isolationgames/against/internal/protocol"
)

// CardsToPlay counts the blank markers in a prompt. A blank is a maximal
// run of underscores, so "___ is ___." has two. Prompts without an
// explicit blank still require one card.
func CardsToPlay(prompt string) int {
	blanks := 0
	inBlank := false
	for _, r := range prompt {
		if r == '_' {
			if !inBlank {
				blanks++
				inBlank = true
			}
		} else {
			inBlank = false
		}
	}
	if blanks == 0 {
		return 1
	}
	return blanks
}

// WaitingSet returns the non-czar players whose submission count has not
// met cardsToPlay. The comparison is inequality on purpose: a player the
// server somehow credits with too many cards is still "waiting" rather
// than silently done.
func WaitingSet(players []protocol.Player, cardsToPlay int) []protocol.Player {
	var waiting []protocol.Player
	for _, p := range players {
		if p.Czar {
			continue
		}
		if len(p.PlayedCards) != cardsToPlay {
			waiting = append(waiting, p)
		}
	}
	return waiting
}

// FontSize maps prompt text length to a display size. Longer text gets a
// smaller tier so it still fits the card.
func FontSize(text string) string {
	n := len([]rune(text))
	switch {
	case n > 150:
		return "13pt"
	case n > 125:
		return "14pt"
	case n > 100:
		return "15pt"
	case n > 75:
		return "16pt"
	case n > 50:
		return "17pt"
	case n > 20:
		return "18pt"
	default:
		return "20pt"
	}
}

// shufflePlayers returns a freshly permuted copy of players using the
// supplied source, which tests can seed.
func shufflePlayers(players []protocol.Player, rng *rand.Rand) []protocol.Player {
	shuffled := append([]protocol.Player(nil), players...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}
