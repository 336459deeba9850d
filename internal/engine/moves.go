package engine

var promotionTypes = []PieceType{Queen, Rook, Bishop, Knight}

// LegalMovesOf returns the playable moves for the piece at from.
// Candidates follow the piece's movement pattern, then each one is
// provisionally applied and discarded if the mover's own king would be
// attacked afterwards. No ordering is guaranteed.
func LegalMovesOf(b Board, from Position, enPassant *Position) []Move {
	piece := b.At(from)
	if piece == nil {
		return nil
	}
	var candidates []Move
	switch piece.Type {
	case Pawn:
		candidates = pawnMoves(b, from, piece, enPassant)
	case Knight:
		candidates = stepMoves(b, from, piece, knightDirs)
	case Bishop:
		candidates = slideMoves(b, from, piece, bishopDirs)
	case Rook:
		candidates = slideMoves(b, from, piece, rookDirs)
	case Queen:
		candidates = slideMoves(b, from, piece, royalDirs)
	case King:
		candidates = append(stepMoves(b, from, piece, royalDirs), castleMoves(b, from, piece)...)
	}
	legal := make([]Move, 0, len(candidates))
	for _, m := range candidates {
		if !InCheck(Apply(b, m), piece.Side) {
			legal = append(legal, m)
		}
	}
	return legal
}

// AllLegalMoves is the union of LegalMovesOf over every square holding a
// piece of the given side. Empty output means checkmate or stalemate.
func AllLegalMoves(b Board, side Side, enPassant *Position) []Move {
	var moves []Move
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p := b[y][x]
			if p != nil && p.Side == side {
				moves = append(moves, LegalMovesOf(b, Position{X: x, Y: y}, enPassant)...)
			}
		}
	}
	return moves
}

func stepMoves(b Board, from Position, piece *Piece, dirs []Position) []Move {
	var moves []Move
	for _, d := range dirs {
		t := Position{X: from.X + d.X, Y: from.Y + d.Y}
		if !InBounds(t) {
			continue
		}
		occupant := b.At(t)
		if occupant == nil {
			moves = append(moves, Move{From: from, To: t})
		} else if occupant.Side != piece.Side {
			moves = append(moves, Move{From: from, To: t, Captured: occupant})
		}
	}
	return moves
}

func slideMoves(b Board, from Position, piece *Piece, dirs []Position) []Move {
	var moves []Move
	for _, d := range dirs {
		t := Position{X: from.X + d.X, Y: from.Y + d.Y}
		for InBounds(t) {
			occupant := b.At(t)
			if occupant == nil {
				moves = append(moves, Move{From: from, To: t})
			} else {
				if occupant.Side != piece.Side {
					moves = append(moves, Move{From: from, To: t, Captured: occupant})
				}
				break
			}
			t = Position{X: t.X + d.X, Y: t.Y + d.Y}
		}
	}
	return moves
}

func pawnStartRank(s Side) int {
	if s == White {
		return 6
	}
	return 1
}

func pawnPromotionRank(s Side) int {
	if s == White {
		return 0
	}
	return 7
}

func pawnMoves(b Board, from Position, piece *Piece, enPassant *Position) []Move {
	var moves []Move
	dy := pawnDir(piece.Side)

	one := Position{X: from.X, Y: from.Y + dy}
	if InBounds(one) && b.At(one) == nil {
		moves = appendPawnMove(moves, piece.Side, Move{From: from, To: one})
		// Double step derives from the start rank, not HasMoved.
		if from.Y == pawnStartRank(piece.Side) {
			two := Position{X: from.X, Y: from.Y + 2*dy}
			if b.At(two) == nil {
				moves = append(moves, Move{From: from, To: two})
			}
		}
	}

	for _, dx := range []int{-1, 1} {
		t := Position{X: from.X + dx, Y: from.Y + dy}
		if !InBounds(t) {
			continue
		}
		occupant := b.At(t)
		if occupant != nil && occupant.Side != piece.Side {
			moves = appendPawnMove(moves, piece.Side, Move{From: from, To: t, Captured: occupant})
		}
		if occupant == nil && enPassant != nil && t == *enPassant {
			behind := Position{X: t.X, Y: from.Y}
			moves = append(moves, Move{From: from, To: t, IsEnPassant: true, Captured: b.At(behind)})
		}
	}
	return moves
}

// appendPawnMove fans a far-rank arrival out into the four promotion
// variants; any other pawn move is appended as-is.
func appendPawnMove(moves []Move, side Side, m Move) []Move {
	if m.To.Y != pawnPromotionRank(side) {
		return append(moves, m)
	}
	for _, t := range promotionTypes {
		promoted := m
		promoted.Promotion = t
		moves = append(moves, promoted)
	}
	return moves
}

// castleMoves emits castle candidates for an unmoved king: the matching
// rook unmoved, the squares between them empty, the king not currently in
// check, and neither transit nor landing square attacked.
func castleMoves(b Board, from Position, king *Piece) []Move {
	if king.HasMoved {
		return nil
	}
	opponent := king.Side.Opponent()
	if IsAttacked(b, from, opponent) {
		return nil
	}
	var moves []Move
	y := from.Y

	kingsideRook := b[y][7]
	if kingsideRook != nil && kingsideRook.Type == Rook && kingsideRook.Side == king.Side && !kingsideRook.HasMoved &&
		b[y][5] == nil && b[y][6] == nil &&
		!IsAttacked(b, Position{X: 5, Y: y}, opponent) && !IsAttacked(b, Position{X: 6, Y: y}, opponent) {
		moves = append(moves, Move{From: from, To: Position{X: 6, Y: y}, Castle: CastleKingside})
	}

	queensideRook := b[y][0]
	if queensideRook != nil && queensideRook.Type == Rook && queensideRook.Side == king.Side && !queensideRook.HasMoved &&
		b[y][1] == nil && b[y][2] == nil && b[y][3] == nil &&
		!IsAttacked(b, Position{X: 3, Y: y}, opponent) && !IsAttacked(b, Position{X: 2, Y: y}, opponent) {
		moves = append(moves, Move{From: from, To: Position{X: 2, Y: y}, Castle: CastleQueenside})
	}
	return moves
}
