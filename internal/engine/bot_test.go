package engine

import (
	"math/rand"
	"testing"
)

func TestParseDifficulty(t *testing.T) {
	for _, s := range []string{"easy", "medium", "hard", "master"} {
		d, err := ParseDifficulty(s)
		if err != nil || string(d) != s {
			t.Errorf("ParseDifficulty(%q) = %q, %v", s, d, err)
		}
	}
	if _, err := ParseDifficulty("grandmaster"); err == nil {
		t.Error("ParseDifficulty accepted an unknown tier")
	}
}

func TestChooseMoveReturnsNilWithoutLegalMoves(t *testing.T) {
	var b Board
	put(&b, 0, 0, King, Black)
	put(&b, 2, 1, Queen, White)
	put(&b, 1, 2, King, White)

	if m := ChooseMove(b, Black, DifficultyMedium, nil, nil); m != nil {
		t.Fatalf("ChooseMove in stalemate = %+v, want nil", m)
	}
}

func TestEasyTierPlaysLegalMovesWithCaptureBias(t *testing.T) {
	var b Board
	put(&b, 0, 7, Rook, White) // a1
	put(&b, 0, 1, Pawn, Black) // a7, the only capture
	put(&b, 7, 6, King, White)
	put(&b, 7, 0, King, Black)

	legal := AllLegalMoves(b, White, nil)
	isLegal := func(m Move) bool {
		for _, l := range legal {
			if l.From == m.From && l.To == m.To && l.Promotion == m.Promotion {
				return true
			}
		}
		return false
	}

	rng := rand.New(rand.NewSource(1))
	captures, quiets := 0, 0
	for i := 0; i < 200; i++ {
		m := ChooseMove(b, White, DifficultyEasy, nil, rng)
		if m == nil {
			t.Fatal("easy tier returned nil with moves available")
		}
		if !isLegal(*m) {
			t.Fatalf("easy tier played illegal move %s-%s", m.From, m.To)
		}
		if m.Captured != nil {
			captures++
		} else {
			quiets++
		}
	}
	if captures == 0 {
		t.Fatal("capture bias never chose the available capture in 200 picks")
	}
	if quiets == 0 {
		t.Fatal("easy tier never varied off the capture in 200 picks")
	}
}

func TestMediumTierGrabsTheHangingQueen(t *testing.T) {
	var b Board
	put(&b, 0, 7, Rook, White)  // a1
	put(&b, 0, 1, Queen, Black) // a7, hanging
	put(&b, 7, 6, King, White)
	put(&b, 7, 0, King, Black)

	m := ChooseMove(b, White, DifficultyMedium, nil, nil)
	if m == nil {
		t.Fatal("medium tier returned nil")
	}
	if m.To != (Position{X: 0, Y: 1}) || m.Captured == nil || m.Captured.Type != Queen {
		t.Fatalf("medium tier played %s-%s, want Rxa7", m.From, m.To)
	}
}

func TestMediumTierTakesEnPassant(t *testing.T) {
	var b Board
	put(&b, 4, 3, Pawn, White) // e5
	put(&b, 3, 3, Pawn, Black) // d5, just double-stepped
	put(&b, 7, 7, King, White)
	put(&b, 7, 0, King, Black)
	target := Position{X: 3, Y: 2}

	m := ChooseMove(b, White, DifficultyMedium, &target, nil)
	if m == nil {
		t.Fatal("medium tier returned nil")
	}
	if !m.IsEnPassant {
		t.Fatalf("medium tier played %s-%s instead of the en-passant capture", m.From, m.To)
	}
}

func TestHardTierDeliversMateInOne(t *testing.T) {
	b := mateInOne()

	m := ChooseMove(b, White, DifficultyHard, nil, nil)
	if m == nil {
		t.Fatal("hard tier returned nil")
	}
	after := Apply(b, *m)
	if status := Classify(after, Black, nil); status != StatusCheckmate {
		t.Fatalf("hard tier played %s-%s leaving %s, want checkmate", m.From, m.To, status)
	}
}

func TestMasterTierDeliversMateInOne(t *testing.T) {
	b := mateInOne()

	m := ChooseMove(b, White, DifficultyMaster, nil, nil)
	if m == nil {
		t.Fatal("master tier returned nil")
	}
	after := Apply(b, *m)
	if status := Classify(after, Black, nil); status != StatusCheckmate {
		t.Fatalf("master tier played %s-%s leaving %s, want checkmate", m.From, m.To, status)
	}
}
