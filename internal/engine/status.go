package engine

type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate"
)

// InCheck reports whether the side's king is attacked. A kingless board
// is treated as a non-check anomaly rather than an error so a corrupt
// position degrades instead of aborting the game.
func InCheck(b Board, side Side) bool {
	kingPos, ok := b.FindKing(side)
	if !ok {
		return false
	}
	return IsAttacked(b, kingPos, side.Opponent())
}

// Classify resolves the position for the side to move: any legal move
// means the game goes on; none means checkmate if the king is attacked,
// stalemate otherwise.
func Classify(b Board, side Side, enPassant *Position) Status {
	if len(AllLegalMoves(b, side, enPassant)) > 0 {
		return StatusOngoing
	}
	if InCheck(b, side) {
		return StatusCheckmate
	}
	return StatusStalemate
}
