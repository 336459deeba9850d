package engine

// Material values in centipawns. The king's value is large enough that,
// combined with search, losing it dominates any positional swing.
const (
	pawnValue   = 100
	knightValue = 320
	bishopValue = 330
	rookValue   = 500
	queenValue  = 900
	kingValue   = 20000
)

// Piece-square tables indexed [row][col] in black's orientation (black's
// back rank is row 0). White reads them mirrored by rank. Only pawns and
// knights get positional bonuses; this evaluator is deliberately simple.

var pawnTable = [8][8]int{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{5, 10, 10, -20, -20, 10, 10, 5},
	{5, -5, -10, 0, 0, -10, -5, 5},
	{0, 0, 0, 20, 20, 0, 0, 0},
	{5, 5, 10, 25, 25, 10, 5, 5},
	{10, 10, 20, 30, 30, 20, 10, 10},
	{50, 50, 50, 50, 50, 50, 50, 50},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

var knightTable = [8][8]int{
	{-50, -40, -30, -30, -30, -30, -40, -50},
	{-40, -20, 0, 5, 5, 0, -20, -40},
	{-30, 5, 10, 15, 15, 10, 5, -30},
	{-30, 0, 15, 20, 20, 15, 0, -30},
	{-30, 5, 15, 20, 20, 15, 5, -30},
	{-30, 0, 10, 15, 15, 10, 0, -30},
	{-40, -20, 0, 0, 0, 0, -20, -40},
	{-50, -40, -30, -30, -30, -30, -40, -50},
}

func materialValue(t PieceType) int {
	switch t {
	case Pawn:
		return pawnValue
	case Knight:
		return knightValue
	case Bishop:
		return bishopValue
	case Rook:
		return rookValue
	case Queen:
		return queenValue
	case King:
		return kingValue
	}
	return 0
}

// Evaluate scores the board in centipawns from the perspective side's
// point of view: its material and placement count positively, the
// opponent's negatively.
func Evaluate(b Board, perspective Side) int {
	score := 0
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p := b[y][x]
			if p == nil {
				continue
			}
			value := materialValue(p.Type)
			row := y
			if p.Side == White {
				row = 7 - y
			}
			switch p.Type {
			case Pawn:
				value += pawnTable[row][x]
			case Knight:
				value += knightTable[row][x]
			}
			if p.Side == perspective {
				score += value
			} else {
				score -= value
			}
		}
	}
	return score
}
