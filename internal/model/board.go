package model

import "github.com/arcadeworks/chessbot-backend/internal/engine"

// CapturedPieces lists what each side has taken, for the client's
// material tray.
type CapturedPieces struct {
	White []engine.Piece `json:"white"`
	Black []engine.Piece `json:"black"`
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]engine.Piece, 0),
		Black: make([]engine.Piece, 0),
	}
}

func (c *CapturedPieces) add(by engine.Side, p engine.Piece) {
	if by == engine.White {
		c.White = append(c.White, p)
	} else {
		c.Black = append(c.Black, p)
	}
}
