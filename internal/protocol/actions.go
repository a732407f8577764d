// internal/protocol/actions.go
package protocol

// Outbound actions. Each struct bakes its discriminator into the Event
// field so callers cannot send a mistagged message. The server is the
// final arbiter for all of them; the client never waits for a reply.

// JoinGame registers the player with a game. Sent once per connection.
type JoinGame struct {
	Event  string `json:"event"`
	Player string `json:"player"`
	Game   string `json:"game"`
}

func NewJoinGame(player, game string) JoinGame {
	return JoinGame{Event: "join_game", Player: player, Game: game}
}

// PlayCards transmits the player's full current selection.
type PlayCards struct {
	Event  string   `json:"event"`
	Game   string   `json:"game"`
	Player string   `json:"player"`
	Cards  []string `json:"cards"`
}

func NewPlayCards(game, player string, cards []string) PlayCards {
	return PlayCards{Event: "play_card", Game: game, Player: player, Cards: cards}
}

// ChooseWinner is the czar's pick for the round.
type ChooseWinner struct {
	Event  string `json:"event"`
	Player string `json:"player"`
	Winner string `json:"winner"`
	Game   string `json:"game"`
}

func NewChooseWinner(player, winner, game string) ChooseWinner {
	return ChooseWinner{Event: "choose_winner", Player: player, Winner: winner, Game: game}
}

// EndRound asks the server to advance past the current round.
type EndRound struct {
	Event  string `json:"event"`
	Player string `json:"player"`
	Game   string `json:"game"`
}

func NewEndRound(player, game string) EndRound {
	return EndRound{Event: "end_round", Player: player, Game: game}
}

// SetPlayerName updates the player's display name.
type SetPlayerName struct {
	Event  string `json:"event"`
	Player string `json:"player"`
	Game   string `json:"game"`
	Text   string `json:"text"`
}

func NewSetPlayerName(player, game, text string) SetPlayerName {
	return SetPlayerName{Event: "set_player_name", Player: player, Game: game, Text: text}
}

// KickPlayer removes another player from the game. The target travels in
// the winner field; that is the wire format, not a typo.
type KickPlayer struct {
	Event  string `json:"event"`
	Player string `json:"player"`
	Winner string `json:"winner"`
	Game   string `json:"game"`
}

func NewKickPlayer(player, target, game string) KickPlayer {
	return KickPlayer{Event: "kick_player", Player: player, Winner: target, Game: game}
}
