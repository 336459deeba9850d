package engine

import (
	"fmt"
	"math/rand"
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyMaster Difficulty = "master"
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyMaster:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

var defaultRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// ChooseMove picks the automated side's move for the requested strength.
// Returns nil when the side has no legal moves; callers are expected to
// have ruled that out with Classify first. rng drives the easy tier and
// may be nil.
func ChooseMove(b Board, side Side, difficulty Difficulty, enPassant *Position, rng *rand.Rand) *Move {
	moves := AllLegalMoves(b, side, enPassant)
	if len(moves) == 0 {
		return nil
	}
	if rng == nil {
		rng = defaultRand
	}
	switch difficulty {
	case DifficultyEasy:
		return chooseRandom(moves, rng)
	case DifficultyMedium:
		return chooseGreedy(b, side, moves)
	case DifficultyMaster:
		return chooseSearched(b, side, moves, 4)
	default:
		return chooseSearched(b, side, moves, 3)
	}
}

// chooseRandom prefers a random capture half the time, otherwise any
// legal move uniformly.
func chooseRandom(moves []Move, rng *rand.Rand) *Move {
	var captures []Move
	for _, m := range moves {
		if m.Captured != nil {
			captures = append(captures, m)
		}
	}
	if len(captures) > 0 && rng.Intn(2) == 0 {
		return &captures[rng.Intn(len(captures))]
	}
	return &moves[rng.Intn(len(moves))]
}

// chooseGreedy is one-ply lookahead: best immediate evaluation, first
// move wins ties.
func chooseGreedy(b Board, side Side, moves []Move) *Move {
	best := &moves[0]
	bestScore := -infinity
	for i := range moves {
		score := Evaluate(Apply(b, moves[i]), side)
		if score > bestScore {
			bestScore = score
			best = &moves[i]
		}
	}
	return best
}

// chooseSearched scores each root move by searching the reply layer
// (minimizing, since the root application already reflects the mover's
// gain) and keeps the highest-scoring root move.
func chooseSearched(b Board, side Side, moves []Move, depth int) *Move {
	best := &moves[0]
	bestScore := -infinity
	for i := range moves {
		child := Apply(b, moves[i])
		score := Search(child, depth, -infinity, infinity, false, side, NextEnPassantTarget(b, moves[i]))
		if score > bestScore {
			bestScore = score
			best = &moves[i]
		}
	}
	return best
}
