package engine

// Apply plays a move on a deep copy of the board and returns the result.
// The input board is never mutated; search applies many moves from the
// same position and snapshot history depends on earlier boards staying
// intact.
func Apply(b Board, m Move) Board {
	next := b.Clone()
	piece := next.At(m.From)
	if piece == nil {
		return next
	}

	if m.IsEnPassant {
		next[m.From.Y][m.To.X] = nil
	}

	if m.Castle != "" {
		y := m.From.Y
		switch m.Castle {
		case CastleKingside:
			rook := next[y][7]
			next[y][7] = nil
			next[y][5] = rook
			if rook != nil {
				rook.HasMoved = true
			}
		case CastleQueenside:
			rook := next[y][0]
			next[y][0] = nil
			next[y][3] = rook
			if rook != nil {
				rook.HasMoved = true
			}
		}
	}

	next[m.From.Y][m.From.X] = nil
	if m.Promotion != "" {
		next[m.To.Y][m.To.X] = &Piece{Type: m.Promotion, Side: piece.Side, HasMoved: true}
	} else {
		piece.HasMoved = true
		next[m.To.Y][m.To.X] = piece
	}
	return next
}

// NextEnPassantTarget computes the en-passant target the position after m
// will carry: the skipped square when a pawn double-steps, nil for every
// other move. Evaluated against the board before the move is applied.
func NextEnPassantTarget(b Board, m Move) *Position {
	piece := b.At(m.From)
	if piece == nil || piece.Type != Pawn {
		return nil
	}
	switch m.To.Y - m.From.Y {
	case 2, -2:
		return &Position{X: m.From.X, Y: (m.From.Y + m.To.Y) / 2}
	}
	return nil
}
