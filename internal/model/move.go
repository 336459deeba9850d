package model

import (
	"fmt"

	"github.com/arcadeworks/chessbot-backend/internal/engine"
)

// MoveRequest is what a client submits: origin, destination, and the
// promotion piece when the move is a promotion. Everything else about the
// move (capture, castle, en passant) is derived from the legal-move set.
type MoveRequest struct {
	From      engine.Position  `json:"from"`
	To        engine.Position  `json:"to"`
	Promotion engine.PieceType `json:"promotion"`
}

type SimpleMove struct {
	From engine.Position `json:"from"`
	To   engine.Position `json:"to"`
}

type CastleRookMove struct {
	From engine.Position `json:"from"`
	To   engine.Position `json:"to"`
}

// Ply records one half-move for the history panel.
type Ply struct {
	Piece          *engine.Piece    `json:"piece"`
	From           engine.Position  `json:"from"`
	To             engine.Position  `json:"to"`
	CapturedPiece  *engine.Piece    `json:"capturedPiece"`
	CastleRookMove *CastleRookMove  `json:"castleRookMove"`
	Promotion      engine.PieceType `json:"promotion"`
	Notation       string           `json:"notation"`
}

// MoveRecord pairs a white ply with black's reply, one table row per
// full move.
type MoveRecord struct {
	WhitePly Ply `json:"whitePly"`
	BlackPly Ply `json:"blackPly"`
}

func pieceLetter(t engine.PieceType) string {
	switch t {
	case engine.King:
		return "K"
	case engine.Queen:
		return "Q"
	case engine.Rook:
		return "R"
	case engine.Bishop:
		return "B"
	case engine.Knight:
		return "N"
	}
	return ""
}

// notation renders a compact algebraic form for the history: castle
// moves as O-O/O-O-O, otherwise piece letter, pawn file on captures, an
// x for captures, destination square, and =piece for promotions.
func notation(b engine.Board, m engine.Move) string {
	switch m.Castle {
	case engine.CastleKingside:
		return "O-O"
	case engine.CastleQueenside:
		return "O-O-O"
	}
	piece := b.At(m.From)
	if piece == nil {
		return ""
	}
	prefix := pieceLetter(piece.Type)
	capture := ""
	if m.Captured != nil {
		capture = "x"
		if piece.Type == engine.Pawn {
			prefix = fmt.Sprintf("%c", m.From.X+97)
		}
	}
	suffix := ""
	if m.Promotion != "" {
		suffix = "=" + pieceLetter(m.Promotion)
	}
	return prefix + capture + m.To.String() + suffix
}
