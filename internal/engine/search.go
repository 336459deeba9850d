package engine

const (
	infinity  = 1000000
	mateScore = 100000
)

// Search runs fixed-depth minimax with alpha-beta pruning and returns the
// position's score from the perspective side's point of view. maximizing
// says whether the perspective side is to move at this ply. The real
// en-passant target is threaded through each recursive call so deeper
// plies see en-passant captures.
func Search(b Board, depth, alpha, beta int, maximizing bool, perspective Side, enPassant *Position) int {
	if depth == 0 {
		return Evaluate(b, perspective)
	}

	sideToMove := perspective
	if !maximizing {
		sideToMove = perspective.Opponent()
	}
	moves := AllLegalMoves(b, sideToMove, enPassant)
	if len(moves) == 0 {
		if InCheck(b, sideToMove) {
			// Mate sooner scores higher via the remaining-depth offset.
			if maximizing {
				return -(mateScore + depth)
			}
			return mateScore + depth
		}
		return 0
	}

	if maximizing {
		best := -infinity
		for _, m := range moves {
			child := Apply(b, m)
			score := Search(child, depth-1, alpha, beta, false, perspective, NextEnPassantTarget(b, m))
			if score > best {
				best = score
			}
			if score > alpha {
				alpha = score
			}
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := infinity
	for _, m := range moves {
		child := Apply(b, m)
		score := Search(child, depth-1, alpha, beta, true, perspective, NextEnPassantTarget(b, m))
		if score < best {
			best = score
		}
		if score < beta {
			beta = score
		}
		if beta <= alpha {
			break
		}
	}
	return best
}
