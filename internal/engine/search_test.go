package engine

import (
	"testing"
)

// mateInOne: white to move, Qc8 (or Qa7) mates immediately.
func mateInOne() Board {
	var b Board
	put(&b, 0, 0, King, Black)  // a8
	put(&b, 2, 3, Queen, White) // c5
	put(&b, 1, 2, King, White)  // b6
	return b
}

func TestEvaluateStartingPositionIsBalanced(t *testing.T) {
	b := NewBoard()
	if score := Evaluate(b, White); score != 0 {
		t.Fatalf("initial position evaluates to %d for white, want 0", score)
	}
	if Evaluate(b, White) != -Evaluate(b, Black) {
		t.Fatal("evaluation is not antisymmetric between the sides")
	}
}

func TestEvaluateCountsMaterial(t *testing.T) {
	var b Board
	put(&b, 4, 7, King, White)
	put(&b, 4, 0, King, Black)
	put(&b, 0, 4, Rook, White) // a4, zero positional table for rooks

	if score := Evaluate(b, White); score != rookValue {
		t.Fatalf("extra rook evaluates to %d, want %d", score, rookValue)
	}
	if score := Evaluate(b, Black); score != -rookValue {
		t.Fatalf("opponent's extra rook evaluates to %d, want %d", score, -rookValue)
	}
}

func TestEvaluateMirrorsPawnTable(t *testing.T) {
	var whiteBoard, blackBoard Board
	put(&whiteBoard, 3, 4, Pawn, White) // d4
	put(&blackBoard, 3, 3, Pawn, Black) // d5, the mirrored square

	if w, b := Evaluate(whiteBoard, White), Evaluate(blackBoard, Black); w != b {
		t.Fatalf("mirrored pawns score differently: white %d, black %d", w, b)
	}
}

func TestSearchFindsMateInOne(t *testing.T) {
	b := mateInOne()

	var best Move
	bestScore := -infinity
	for _, m := range AllLegalMoves(b, White, nil) {
		child := Apply(b, m)
		score := Search(child, 1, -infinity, infinity, false, White, NextEnPassantTarget(b, m))
		if score > bestScore {
			bestScore = score
			best = m
		}
	}

	if bestScore < mateScore {
		t.Fatalf("best root score %d does not reflect the available mate", bestScore)
	}
	after := Apply(b, best)
	if status := Classify(after, Black, nil); status != StatusCheckmate {
		t.Fatalf("search's chosen move %s-%s leaves status %s, want checkmate", best.From, best.To, status)
	}
}

func TestSearchPrefersFasterMate(t *testing.T) {
	b := mateInOne()
	mating := Move{From: Position{X: 2, Y: 3}, To: Position{X: 2, Y: 0}} // Qc8#
	if !containsMove(AllLegalMoves(b, White, nil), mating.From, mating.To) {
		t.Fatal("expected mating move is not legal; test position is wrong")
	}

	shallow := Search(Apply(b, mating), 1, -infinity, infinity, false, White, nil)
	deep := Search(Apply(b, mating), 3, -infinity, infinity, false, White, nil)
	if deep <= shallow {
		t.Fatalf("mate found deeper scores %d, shallower %d; depth offset should reward the faster mate", deep, shallow)
	}
}

func TestSearchDepthZeroEvaluates(t *testing.T) {
	b := NewBoard()
	if got, want := Search(b, 0, -infinity, infinity, true, White, nil), Evaluate(b, White); got != want {
		t.Fatalf("depth-0 search = %d, want evaluation %d", got, want)
	}
}

func TestSearchScoresStalemateAsDraw(t *testing.T) {
	var b Board
	put(&b, 0, 0, King, Black)
	put(&b, 2, 1, Queen, White)
	put(&b, 1, 2, King, White)

	// Black to move with no legal moves and no check: drawn, not lost.
	if score := Search(b, 2, -infinity, infinity, false, White, nil); score != 0 {
		t.Fatalf("stalemate scores %d from white's perspective, want 0", score)
	}
}

// TestSearchSeesEnPassantInRecursion locks black's king in a corner so
// its only moves are d7-d6 and d7-d5. Both lose the pawn to the e5 pawn
// (d5 only via en passant), so a search that threads the target through
// recursion scores the position at least a pawn up for white.
func TestSearchSeesEnPassantInRecursion(t *testing.T) {
	var b Board
	put(&b, 0, 0, King, Black)   // a8, boxed in
	put(&b, 3, 1, Pawn, Black)   // d7
	put(&b, 1, 2, King, White)   // b6 covers a7/b7
	put(&b, 2, 2, Knight, White) // c6 covers b8
	put(&b, 4, 3, Pawn, White)   // e5

	blackMoves := AllLegalMoves(b, Black, nil)
	if len(blackMoves) != 2 {
		t.Fatalf("black has %d legal moves, want exactly the two pawn pushes", len(blackMoves))
	}

	baseline := Evaluate(b, White)
	score := Search(b, 2, -infinity, infinity, false, White, nil)
	if score < baseline+50 {
		t.Fatalf("search score %d (baseline %d); the d5 escape should still lose the pawn to en passant", score, baseline)
	}
}
