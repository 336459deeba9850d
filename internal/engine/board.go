package engine

import "fmt"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

type Side string

const (
	White Side = "white"
	Black Side = "black"
)

func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

// Piece is owned by exactly one board. Board transitions copy piece
// records rather than sharing them, so earlier snapshots stay valid.
type Piece struct {
	Type     PieceType `json:"type"`
	Side     Side      `json:"side"`
	HasMoved bool      `json:"hasMoved"`
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("%c%d", p.X+97, 8-p.Y)
}

func InBounds(p Position) bool {
	return p.X >= 0 && p.X < 8 && p.Y >= 0 && p.Y < 8
}

// Board is an 8x8 grid indexed [Y][X]. Row 0 is black's back rank,
// row 7 is white's. White pawns advance toward decreasing Y.
type Board [8][8]*Piece

func (b Board) At(p Position) *Piece {
	return b[p.Y][p.X]
}

// Clone returns a board whose piece records are fresh copies, so
// mutating the clone never reaches into the original.
func (b Board) Clone() Board {
	var next Board
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if b[y][x] != nil {
				p := *b[y][x]
				next[y][x] = &p
			}
		}
	}
	return next
}

// FindKing scans all 64 squares for the side's king. A reachable legal
// position always has one; absence is reported, not panicked on, because
// the check detector must degrade gracefully on corrupt positions.
func (b Board) FindKing(side Side) (Position, bool) {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p := b[y][x]
			if p != nil && p.Type == King && p.Side == side {
				return Position{X: x, Y: y}, true
			}
		}
	}
	return Position{}, false
}

var backRank = []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position.
func NewBoard() Board {
	var b Board
	for x, t := range backRank {
		b[0][x] = &Piece{Type: t, Side: Black}
		b[7][x] = &Piece{Type: t, Side: White}
	}
	for x := 0; x < 8; x++ {
		b[1][x] = &Piece{Type: Pawn, Side: Black}
		b[6][x] = &Piece{Type: Pawn, Side: White}
	}
	return b
}
