package model

import (
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/arcadeworks/chessbot-backend/internal/engine"
	"github.com/arcadeworks/chessbot-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

const (
	// botMoveDelay keeps the automated reply from landing instantly, so
	// the client can render the human's move first.
	botMoveDelay = 600 * time.Millisecond

	initialClockTime = 600 * time.Second
)

const (
	ResolveCheckmate   = "checkmate"
	ResolveStalemate   = "stalemate"
	ResolveResignation = "resignation"
)

// GameConnections holds the websocket connections for a single game.
// sendMu serializes writers; the websocket package allows at most one
// concurrent writer per connection.
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
	sendMu      sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// GameState is the full client-visible state, replaced wholesale on each
// half-move so readers never observe a partially applied position.
type GameState struct {
	Board           engine.Board      `json:"board"`
	ToMove          engine.Side       `json:"toMove"`
	MoveHistory     []MoveRecord      `json:"moveHistory"`
	CapturedPieces  CapturedPieces    `json:"capturedPieces"`
	IsCheck         bool              `json:"isCheck"`
	EnPassantTarget *engine.Position  `json:"enPassantTarget"`
	Resolve         *string           `json:"resolve"`
	Winner          *engine.Side      `json:"winner"`
	LastMove        *SimpleMove       `json:"lastMove"`
	Difficulty      engine.Difficulty `json:"difficulty,omitempty"`
	BotSide         engine.Side       `json:"botSide,omitempty"`
	Players         struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

// snapshot is one undo point: the prior board, side to move, and
// en-passant target, plus enough counters to roll the bookkeeping back.
// Undo restores snapshots rather than reversing moves, trading memory for
// guaranteed-correct restores.
type snapshot struct {
	board         engine.Board
	toMove        engine.Side
	enPassant     *engine.Position
	lastMove      *SimpleMove
	plyCount      int
	capturedWhite int
	capturedBlack int
}

// Game owns one game's state and its observers. All state transitions
// happen under mu; the engine itself is stateless.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       GameState
	history     []snapshot
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
	vsBot       bool
	botThinking bool
	rng         *rand.Rand
}

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		state:       newGameState(),
		connections: NewGameConnections(),
		whiteClock:  NewClock(initialClockTime),
		blackClock:  NewClock(initialClockTime),
	}
}

// NewBotGame creates a game with the automated seat already filled. The
// bot's opening move (when it plays white) is scheduled once the human
// joins.
func NewBotGame(id string, difficulty engine.Difficulty, botSide engine.Side) *Game {
	g := &Game{
		ID:          id,
		state:       newGameState(),
		connections: NewGameConnections(),
		vsBot:       true,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	g.state.Difficulty = difficulty
	g.state.BotSide = botSide
	bot := ClientPlayer{ID: BotPlayerID, Color: botSide}
	if botSide == engine.White {
		g.state.Players.White = bot
	} else {
		g.state.Players.Black = bot
	}
	return g
}

func newGameState() GameState {
	return GameState{
		Board:          engine.NewBoard(),
		ToMove:         engine.White,
		MoveHistory:    make([]MoveRecord, 0),
		CapturedPieces: newCapturedPieces(),
	}
}

func (g *Game) AddPlayer(playerID string) (engine.Side, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Players.White.ID == "" {
		g.state.Players.White = ClientPlayer{ID: playerID, Color: engine.White, TimeLeft: int(initialClockTime.Milliseconds() / 100)}
		g.maybeScheduleBotMove()
		return engine.White, nil
	}
	if g.state.Players.Black.ID == "" {
		g.state.Players.Black = ClientPlayer{ID: playerID, Color: engine.Black, TimeLeft: int(initialClockTime.Milliseconds() / 100)}
		g.maybeScheduleBotMove()
		return engine.Black, nil
	}
	return "", errors.New("game is full")
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	return (g.state.Players.White.ID != "" && g.state.Players.White.ID == playerID) ||
		(g.state.Players.Black.ID != "" && g.state.Players.Black.ID == playerID)
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.ID == "" || g.state.Players.Black.ID == ""
}

func (g *Game) playerSide(playerID string) (engine.Side, bool) {
	if g.state.Players.White.ID == playerID {
		return engine.White, true
	}
	if g.state.Players.Black.ID == playerID {
		return engine.Black, true
	}
	return "", false
}

// LegalDestinations returns the squares the piece on from may move to,
// for the client's move-hint highlighting. Promotion variants collapse
// into their shared destination.
func (g *Game) LegalDestinations(from engine.Position) []engine.Position {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !engine.InBounds(from) {
		return nil
	}
	destinations := make([]engine.Position, 0)
	seen := make(map[engine.Position]bool)
	for _, m := range engine.LegalMovesOf(g.state.Board, from, g.state.EnPassantTarget) {
		if !seen[m.To] {
			seen[m.To] = true
			destinations = append(destinations, m.To)
		}
	}
	return destinations
}

// MakeMove validates a client move against the legal-move set and plays
// it. In vs-bot games an engine reply is scheduled when the game is still
// ongoing afterwards.
func (g *Game) MakeMove(playerID string, req MoveRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Resolve != nil {
		return errors.New("game is over")
	}
	side, ok := g.playerSide(playerID)
	if !ok {
		return errors.New("player not in game")
	}
	if side != g.state.ToMove {
		return errors.New("not your turn")
	}
	if !engine.InBounds(req.From) || !engine.InBounds(req.To) {
		return errors.New("invalid move, out of bounds")
	}
	piece := g.state.Board.At(req.From)
	if piece == nil {
		return errors.New("no piece at from square")
	}
	if piece.Side != side {
		return errors.New("not your piece")
	}

	var chosen *engine.Move
	for _, m := range engine.LegalMovesOf(g.state.Board, req.From, g.state.EnPassantTarget) {
		if m.Matches(req.From, req.To, req.Promotion) {
			chosen = &m
			break
		}
	}
	if chosen == nil {
		return errors.New("invalid move, not legal")
	}

	if !g.vsBot {
		g.stopClock(side)
	}
	g.applyMove(*chosen)
	if !g.vsBot {
		g.startClock(g.state.ToMove)
		g.state.Players.White.TimeLeft = int(g.whiteClock.GetTimeLeft().Milliseconds() / 100)
		g.state.Players.Black.TimeLeft = int(g.blackClock.GetTimeLeft().Milliseconds() / 100)
	}

	go g.broadcastState(g.state)
	g.maybeScheduleBotMove()
	return nil
}

// applyMove pushes an undo snapshot, plays the move through the engine,
// and refreshes the derived state. Caller holds mu.
func (g *Game) applyMove(m engine.Move) {
	mover := g.state.ToMove
	g.history = append(g.history, snapshot{
		board:         g.state.Board,
		toMove:        mover,
		enPassant:     g.state.EnPassantTarget,
		lastMove:      g.state.LastMove,
		plyCount:      g.plyCount(),
		capturedWhite: len(g.state.CapturedPieces.White),
		capturedBlack: len(g.state.CapturedPieces.Black),
	})

	ply := g.makePly(m)
	if m.Captured != nil {
		g.state.CapturedPieces.add(mover, *m.Captured)
	}
	nextEnPassant := engine.NextEnPassantTarget(g.state.Board, m)
	g.state.Board = engine.Apply(g.state.Board, m)
	g.state.EnPassantTarget = nextEnPassant

	if mover == engine.White {
		g.state.MoveHistory = append(g.state.MoveHistory, MoveRecord{WhitePly: ply})
	} else if len(g.state.MoveHistory) > 0 {
		// Copy before filling in the black ply: state copies handed to
		// in-flight broadcasts share the old backing array.
		records := make([]MoveRecord, len(g.state.MoveHistory))
		copy(records, g.state.MoveHistory)
		records[len(records)-1].BlackPly = ply
		g.state.MoveHistory = records
	}

	g.state.ToMove = mover.Opponent()
	g.state.IsCheck = engine.InCheck(g.state.Board, g.state.ToMove)
	switch engine.Classify(g.state.Board, g.state.ToMove, g.state.EnPassantTarget) {
	case engine.StatusCheckmate:
		resolve := ResolveCheckmate
		winner := mover
		g.state.Resolve = &resolve
		g.state.Winner = &winner
	case engine.StatusStalemate:
		resolve := ResolveStalemate
		g.state.Resolve = &resolve
	}
	g.state.LastMove = &SimpleMove{From: m.From, To: m.To}
}

// maybeScheduleBotMove arms the engine reply when it is the bot's turn in
// an ongoing vs-bot game. The thinking flag stops a second timer from
// racing the first; it clears only after the reply has been applied.
// Caller holds mu.
func (g *Game) maybeScheduleBotMove() {
	if !g.vsBot || g.botThinking || g.state.Resolve != nil {
		return
	}
	if g.state.ToMove != g.state.BotSide {
		return
	}
	humanSide := g.state.BotSide.Opponent()
	if humanSeat := g.seat(humanSide); humanSeat.ID == "" {
		return
	}
	g.botThinking = true
	time.AfterFunc(botMoveDelay, g.playBotMove)
}

func (g *Game) seat(side engine.Side) ClientPlayer {
	if side == engine.White {
		return g.state.Players.White
	}
	return g.state.Players.Black
}

func (g *Game) playBotMove() {
	g.mu.Lock()
	defer g.mu.Unlock()
	defer func() { g.botThinking = false }()

	if g.state.Resolve != nil || g.state.ToMove != g.state.BotSide {
		return
	}
	move := engine.ChooseMove(g.state.Board, g.state.BotSide, g.state.Difficulty, g.state.EnPassantTarget, g.rng)
	if move == nil {
		// Terminal states are resolved when the previous move lands, so
		// this only fires on an anomalous position.
		log.Printf("game %s: bot has no legal moves in unresolved position", g.ID)
		return
	}
	g.applyMove(*move)
	go g.broadcastState(g.state)
}

// BotThinking reports whether an engine reply is pending.
func (g *Game) BotThinking() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.botThinking
}

// Undo restores the previous snapshot, rolling back to the human's last
// decision point and popping the bot's reply as well. Only bot games
// support it; taking back a move in a timed two-player game would need
// the opponent's consent and a clock rollback.
func (g *Game) Undo(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isPlayerInGame(playerID) {
		return errors.New("player not in game")
	}
	if !g.vsBot {
		return errors.New("undo is only available against the bot")
	}
	if g.botThinking {
		return errors.New("opponent is thinking")
	}
	if len(g.history) == 0 {
		return errors.New("nothing to undo")
	}

	g.restoreSnapshot()
	humanSide := g.state.BotSide.Opponent()
	for g.state.ToMove != humanSide && len(g.history) > 0 {
		g.restoreSnapshot()
	}

	g.state.IsCheck = engine.InCheck(g.state.Board, g.state.ToMove)
	g.state.Resolve = nil
	g.state.Winner = nil

	go g.broadcastState(g.state)
	// Undoing past the bot's opening move leaves it on move again.
	g.maybeScheduleBotMove()
	return nil
}

// restoreSnapshot pops one undo point. Caller holds mu.
func (g *Game) restoreSnapshot() {
	snap := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]

	g.state.Board = snap.board
	g.state.ToMove = snap.toMove
	g.state.EnPassantTarget = snap.enPassant
	g.state.LastMove = snap.lastMove
	g.state.CapturedPieces.White = g.state.CapturedPieces.White[:snap.capturedWhite]
	g.state.CapturedPieces.Black = g.state.CapturedPieces.Black[:snap.capturedBlack]
	g.state.MoveHistory = truncateHistory(g.state.MoveHistory, snap.plyCount)
}

func (g *Game) plyCount() int {
	n := len(g.state.MoveHistory) * 2
	if n > 0 && g.state.MoveHistory[len(g.state.MoveHistory)-1].BlackPly.Piece == nil {
		n--
	}
	return n
}

func truncateHistory(records []MoveRecord, plyCount int) []MoveRecord {
	truncated := make([]MoveRecord, (plyCount+1)/2)
	copy(truncated, records)
	if plyCount%2 == 1 {
		truncated[len(truncated)-1].BlackPly = Ply{}
	}
	return truncated
}

func (g *Game) Resign(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	side, ok := g.playerSide(playerID)
	if !ok {
		return errors.New("player not in game")
	}
	if g.state.Resolve != nil {
		return errors.New("game is over")
	}

	resolve := ResolveResignation
	winner := side.Opponent()
	g.state.Resolve = &resolve
	g.state.Winner = &winner

	go g.broadcastState(g.state)
	return nil
}

// makePly records the half-move before the board changes; the castle
// rook hop is filled in from the move's castle marker. Caller holds mu.
func (g *Game) makePly(m engine.Move) Ply {
	ply := Ply{
		Piece:         g.state.Board.At(m.From),
		From:          m.From,
		To:            m.To,
		CapturedPiece: m.Captured,
		Promotion:     m.Promotion,
		Notation:      notation(g.state.Board, m),
	}
	switch m.Castle {
	case engine.CastleKingside:
		ply.CastleRookMove = &CastleRookMove{
			From: engine.Position{X: 7, Y: m.From.Y},
			To:   engine.Position{X: 5, Y: m.From.Y},
		}
	case engine.CastleQueenside:
		ply.CastleRookMove = &CastleRookMove{
			From: engine.Position{X: 0, Y: m.From.Y},
			To:   engine.Position{X: 3, Y: m.From.Y},
		}
	}
	return ply
}

func (g *Game) stopClock(side engine.Side) {
	if side == engine.White {
		g.whiteClock.Stop()
	} else {
		g.blackClock.Stop()
	}
}

func (g *Game) startClock(side engine.Side) {
	if side == engine.White {
		g.whiteClock.Start()
	} else {
		g.blackClock.Start()
	}
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	state := g.state
	g.mu.Unlock()

	if !isAuthorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection and reject the newcomer.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState(state)
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	delete(g.connections.connections, playerID)
}

func (g *Game) broadcastState(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.RLock()
	activeConnections := make(map[string]*websocket.Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	g.connections.sendMu.Lock()
	defer g.connections.sendMu.Unlock()

	for playerID, conn := range activeConnections {
		err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		})
		if err != nil {
			log.Printf("game %s: send state to %s: %v", g.ID, playerID, err)
			g.connections.mu.Lock()
			delete(g.connections.connections, playerID)
			g.connections.mu.Unlock()
		}
	}
}
