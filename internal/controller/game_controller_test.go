package controller

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arcadeworks/chessbot-backend/internal/middleware"
	"github.com/arcadeworks/chessbot-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

func newTestApp() *fiber.App {
	gameService := service.NewGameService(service.NewGameManager())
	gameController := NewGameController(gameService)

	app := fiber.New()
	api := app.Group("/api", middleware.EnsurePlayerID())
	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/create/bot", gameController.CreateBotGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId/moves", gameController.GetLegalMoves)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	return app
}

func TestCreateBotGameAndFetchState(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/game/create/bot",
		strings.NewReader(`{"difficulty":"medium","color":"white"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Player-ID", "human")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("create bot game: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("create bot game status = %d, want 200", resp.StatusCode)
	}
	var created struct {
		GameID string `json:"game_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.GameID == "" {
		t.Fatal("create response has no game id")
	}

	req = httptest.NewRequest("GET", "/api/game/"+created.GameID, nil)
	req.Header.Set("X-Player-ID", "human")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("fetch state: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("fetch state status = %d, want 200", resp.StatusCode)
	}
	var state struct {
		ToMove  string `json:"toMove"`
		BotSide string `json:"botSide"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.ToMove != "white" {
		t.Fatalf("toMove = %q, want white", state.ToMove)
	}
	if state.BotSide != "black" {
		t.Fatalf("botSide = %q, want black", state.BotSide)
	}
}

func TestCreateBotGameRejectsBadRequests(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name string
		body string
	}{
		{"unknown difficulty", `{"difficulty":"impossible","color":"white"}`},
		{"unknown color", `{"difficulty":"easy","color":"green"}`},
		{"malformed body", `not-json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/game/create/bot", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Player-ID", "human")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestMissingPlayerIDIsUnauthorized(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/game/create", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestGetLegalMovesValidatesQuery(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/game/create/bot",
		strings.NewReader(`{"difficulty":"easy","color":"white"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Player-ID", "human")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("create bot game: %v", err)
	}
	var created struct {
		GameID string `json:"game_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	req = httptest.NewRequest("GET", "/api/game/"+created.GameID+"/moves?x=4&y=6", nil)
	req.Header.Set("X-Player-ID", "human")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("fetch moves: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("fetch moves status = %d, want 200", resp.StatusCode)
	}
	var moves struct {
		LegalMoves []struct {
			X int `json:"x"`
			Y int `json:"y"`
		} `json:"legalMoves"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&moves); err != nil {
		t.Fatalf("decode moves: %v", err)
	}
	if len(moves.LegalMoves) != 2 {
		t.Fatalf("e2 pawn has %d highlighted squares, want 2", len(moves.LegalMoves))
	}

	req = httptest.NewRequest("GET", "/api/game/"+created.GameID+"/moves?x=9&y=0", nil)
	req.Header.Set("X-Player-ID", "human")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("fetch moves: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("out-of-range query status = %d, want 400", resp.StatusCode)
	}
}
