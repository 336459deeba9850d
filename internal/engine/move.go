package engine

type CastleSide string

const (
	CastleKingside  CastleSide = "king"
	CastleQueenside CastleSide = "queen"
)

// Move is a value: generating one never mutates the board, applying one
// always produces a new board. Captured carries the piece removed by the
// move (for en passant, the pawn behind the destination).
type Move struct {
	From        Position   `json:"from"`
	To          Position   `json:"to"`
	Promotion   PieceType  `json:"promotion,omitempty"`
	Castle      CastleSide `json:"castle,omitempty"`
	IsEnPassant bool       `json:"isEnPassant,omitempty"`
	Captured    *Piece     `json:"-"`
}

// Matches reports whether m is the same playable move as the given
// origin/destination/promotion triple. Castle and en-passant markers are
// derived during generation, so they never come from the client.
func (m Move) Matches(from, to Position, promotion PieceType) bool {
	return m.From == from && m.To == to && m.Promotion == promotion
}
