package service

import (
	"context"
	"fmt"

	"github.com/arcadeworks/chessbot-backend/internal/engine"
	"github.com/arcadeworks/chessbot-backend/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ErrNoMatch is returned when a matchmaking wait times out without a
// pairing; the client simply polls again.
var ErrNoMatch = fmt.Errorf("no match found")

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (engine.Side, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

// CreateBotGame mints a vs-bot game and seats the requesting player on
// the side opposite the bot.
func (gs *GameService) CreateBotGame(playerID string, difficulty engine.Difficulty, playerColor engine.Side) (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateBotGame(gameID, difficulty, playerColor.Opponent()); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	if _, err := gs.gameManager.AddPlayerToGame(gameID, playerID); err != nil {
		return "", fmt.Errorf("failed to join game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

// WaitForMatch blocks until the matchmaking loop pairs the player or the
// context expires.
func (gs *GameService) WaitForMatch(ctx context.Context, playerID string) (model.MatchFoundEvent, error) {
	ch := make(chan model.MatchFoundEvent, 1)
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
	defer gs.gameManager.UnregisterMatchmakingChannel(playerID)

	select {
	case event := <-ch:
		return event, nil
	case <-ctx.Done():
		return model.MatchFoundEvent{}, ErrNoMatch
	}
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) GetLegalDestinations(gameID string, from engine.Position) ([]engine.Position, error) {
	return gs.gameManager.GetLegalDestinations(gameID, from)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.MoveRequest) error {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) HandleUndo(gameID string, playerID string) error {
	return gs.gameManager.Undo(gameID, playerID)
}

func (gs *GameService) HandleResign(gameID string, playerID string) error {
	return gs.gameManager.Resign(gameID, playerID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}
