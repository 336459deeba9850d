package engine

var (
	rookDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	royalDirs  = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	knightDirs = []Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
)

// pawnDir is the advance direction for a side's pawns.
func pawnDir(s Side) int {
	if s == White {
		return -1
	}
	return 1
}

// AttacksOf returns the squares the piece at from threatens, independent
// of whether moving there would be legal. Pawns threaten only their two
// forward diagonals; sliders stop at (and include) the first occupied
// square per ray. This is the check-detection primitive, so it must never
// call back into legality filtering.
func AttacksOf(b Board, from Position) []Position {
	piece := b.At(from)
	if piece == nil {
		return nil
	}
	switch piece.Type {
	case Pawn:
		dy := pawnDir(piece.Side)
		var attacks []Position
		for _, dx := range []int{-1, 1} {
			t := Position{X: from.X + dx, Y: from.Y + dy}
			if InBounds(t) {
				attacks = append(attacks, t)
			}
		}
		return attacks
	case Knight:
		return stepAttacks(from, knightDirs)
	case King:
		return stepAttacks(from, royalDirs)
	case Bishop:
		return slideAttacks(b, from, bishopDirs)
	case Rook:
		return slideAttacks(b, from, rookDirs)
	case Queen:
		return slideAttacks(b, from, royalDirs)
	}
	return nil
}

func stepAttacks(from Position, dirs []Position) []Position {
	var attacks []Position
	for _, d := range dirs {
		t := Position{X: from.X + d.X, Y: from.Y + d.Y}
		if InBounds(t) {
			attacks = append(attacks, t)
		}
	}
	return attacks
}

func slideAttacks(b Board, from Position, dirs []Position) []Position {
	var attacks []Position
	for _, d := range dirs {
		t := Position{X: from.X + d.X, Y: from.Y + d.Y}
		for InBounds(t) {
			attacks = append(attacks, t)
			if b.At(t) != nil {
				break
			}
			t = Position{X: t.X + d.X, Y: t.Y + d.Y}
		}
	}
	return attacks
}

// IsAttacked reports whether any piece of the attacking side threatens
// the target square.
func IsAttacked(b Board, target Position, by Side) bool {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p := b[y][x]
			if p == nil || p.Side != by {
				continue
			}
			for _, a := range AttacksOf(b, Position{X: x, Y: y}) {
				if a == target {
					return true
				}
			}
		}
	}
	return false
}
