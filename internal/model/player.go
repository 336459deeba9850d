package model

import "github.com/arcadeworks/chessbot-backend/internal/engine"

type Player struct {
	ID    string
	Color engine.Side
}

type ClientPlayer struct {
	ID       string      `json:"name"`
	Color    engine.Side `json:"color"`
	TimeLeft int         `json:"timeLeft"`
}

// BotPlayerID occupies the automated seat in vs-bot games.
const BotPlayerID = "bot"

type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  engine.Side `json:"color"`
}
