package engine

import (
	"reflect"
	"testing"
)

func TestApplyDoesNotMutateInput(t *testing.T) {
	b := NewBoard()
	before := b.Clone()

	next := Apply(b, Move{From: Position{X: 4, Y: 6}, To: Position{X: 4, Y: 4}}) // e4

	if !reflect.DeepEqual(b, before) {
		t.Fatal("Apply mutated its input board")
	}
	if next[6][4] != nil {
		t.Fatal("origin square not cleared on the result board")
	}
	if p := next[4][4]; p == nil || !p.HasMoved {
		t.Fatalf("moved pawn missing or unmarked on destination, got %+v", p)
	}
	if b[6][4].HasMoved {
		t.Fatal("HasMoved leaked onto the original board's pawn")
	}
}

func TestSnapshotRestoreAfterApply(t *testing.T) {
	b := NewBoard()
	snapshot := b.Clone()

	played := Apply(b, Move{From: Position{X: 6, Y: 7}, To: Position{X: 5, Y: 5}}) // Nf3
	if reflect.DeepEqual(played, snapshot) {
		t.Fatal("applied board equals the snapshot")
	}
	if !reflect.DeepEqual(b, snapshot) {
		t.Fatal("snapshot no longer matches the pre-move board")
	}
}

func TestApplyCastleRelocatesRook(t *testing.T) {
	var b Board
	put(&b, 4, 7, King, White)
	put(&b, 7, 7, Rook, White)
	put(&b, 4, 0, King, Black)

	next := Apply(b, Move{From: Position{X: 4, Y: 7}, To: Position{X: 6, Y: 7}, Castle: CastleKingside})

	if p := next[7][6]; p == nil || p.Type != King || !p.HasMoved {
		t.Fatalf("king not on g1 after castling, got %+v", p)
	}
	if p := next[7][5]; p == nil || p.Type != Rook || !p.HasMoved {
		t.Fatalf("rook not on f1 after castling, got %+v", p)
	}
	if next[7][7] != nil || next[7][4] != nil {
		t.Fatal("origin squares not cleared after castling")
	}
}

func TestApplyQueensideCastle(t *testing.T) {
	var b Board
	put(&b, 4, 0, King, Black)
	put(&b, 0, 0, Rook, Black)
	put(&b, 4, 7, King, White)

	next := Apply(b, Move{From: Position{X: 4, Y: 0}, To: Position{X: 2, Y: 0}, Castle: CastleQueenside})

	if p := next[0][2]; p == nil || p.Type != King {
		t.Fatalf("king not on c8, got %+v", p)
	}
	if p := next[0][3]; p == nil || p.Type != Rook {
		t.Fatalf("rook not on d8, got %+v", p)
	}
}

func TestApplyPromotionSubstitutesPiece(t *testing.T) {
	var b Board
	put(&b, 0, 1, Pawn, White)
	put(&b, 4, 7, King, White)
	put(&b, 4, 0, King, Black)

	next := Apply(b, Move{From: Position{X: 0, Y: 1}, To: Position{X: 0, Y: 0}, Promotion: Knight})

	p := next[0][0]
	if p == nil || p.Type != Knight || p.Side != White || !p.HasMoved {
		t.Fatalf("promoted piece = %+v, want a moved white knight", p)
	}
	if next[1][0] != nil {
		t.Fatal("pawn still on origin after promotion")
	}
}

func TestNextEnPassantTarget(t *testing.T) {
	b := NewBoard()

	target := NextEnPassantTarget(b, Move{From: Position{X: 4, Y: 6}, To: Position{X: 4, Y: 4}})
	if target == nil || *target != (Position{X: 4, Y: 5}) {
		t.Fatalf("target after white double step = %v, want e3", target)
	}

	target = NextEnPassantTarget(b, Move{From: Position{X: 4, Y: 6}, To: Position{X: 4, Y: 5}})
	if target != nil {
		t.Fatalf("single pawn step produced target %v", target)
	}

	target = NextEnPassantTarget(b, Move{From: Position{X: 6, Y: 7}, To: Position{X: 5, Y: 5}})
	if target != nil {
		t.Fatalf("knight move produced target %v", target)
	}
}
