// internal/protocol/protocol.go
package protocol

// Round-phase tags carried in Game.State. The server owns the full set;
// the client only branches on ChooseWinner.
const (
	StateChoosing     = "choosing"
	StateChooseWinner = "choose_winner"
)

// Player is one entry in the server's game snapshot. The client never
// mutates a Player; the whole snapshot is replaced on every update.
type Player struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Score       int      `json:"score"`
	Czar        bool     `json:"czar"`
	Cards       []string `json:"cards,omitempty"`
	PlayedCards []string `json:"playedCards"`
}

// Game is the authoritative snapshot pushed by the server on every
// game_update. At most one Player has Czar set, matching the Czar id.
type Game struct {
	Players   []Player `json:"players"`
	BlackCard string   `json:"blackCard"`
	Czar      string   `json:"czar"`
	State     string   `json:"state"`
}
