package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/isolationgames/against/internal/protocol"
)

func TestCardsToPlay(t *testing.T) {
	cases := []struct {
		prompt string
		want   int
	}{
		{"Why can't I sleep at night?", 1},
		{"_ is the answer.", 1},
		{"___ is ___.", 2},
		{"_ + _ = _", 3},
		{"", 1},
		{"____", 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CardsToPlay(tc.prompt), "prompt %q", tc.prompt)
	}
}

func TestWaitingSetExcludesCzar(t *testing.T) {
	players := []protocol.Player{
		{ID: "a", Czar: true, PlayedCards: nil},
		{ID: "b", PlayedCards: []string{"x"}},
	}
	waiting := WaitingSet(players, 1)
	assert.Len(t, waiting, 0, "czar with no cards is not waiting, b has met the count")
}

func TestWaitingSetInequality(t *testing.T) {
	players := []protocol.Player{
		{ID: "under", PlayedCards: nil},
		{ID: "exact", PlayedCards: []string{"x", "y"}},
		{ID: "over", PlayedCards: []string{"x", "y", "z"}},
	}
	waiting := WaitingSet(players, 2)
	ids := make([]string, 0, len(waiting))
	for _, p := range waiting {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"under", "over"}, ids)
}

func TestFontSizeTiers(t *testing.T) {
	long := func(n int) string {
		s := make([]byte, n)
		for i := range s {
			s[i] = 'a'
		}
		return string(s)
	}
	cases := []struct {
		length int
		want   string
	}{
		{151, "13pt"},
		{150, "14pt"},
		{126, "14pt"},
		{125, "15pt"},
		{101, "15pt"},
		{100, "16pt"},
		{76, "16pt"},
		{75, "17pt"},
		{51, "17pt"},
		{50, "18pt"},
		{21, "18pt"},
		{20, "20pt"},
		{0, "20pt"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FontSize(long(tc.length)), "length %d", tc.length)
	}
}

func TestShufflePlayersIsPermutation(t *testing.T) {
	players := []protocol.Player{
		{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"},
	}
	rng := rand.New(rand.NewSource(42))
	shuffled := shufflePlayers(players, rng)
	assert.Len(t, shuffled, len(players))
	assert.ElementsMatch(t, players, shuffled)
	// The input must be left alone.
	assert.Equal(t, "a", players[0].ID)
	assert.Equal(t, "e", players[4].ID)
}
