// Package mcp exposes 2048 boards as Model Context Protocol tools over stdio,
// so an assistant can start games and play moves.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const (
	serverName    = "2048"
	serverVersion = "1.0.0"

	// maxBoardSize bounds boards created through the tools.
	maxBoardSize = 16

	// mcpPlayer is recorded as the player of games played through the tools.
	mcpPlayer = "mcp"
)

// ErrUnknownSession is returned for session IDs that do not exist.
var ErrUnknownSession = errors.New("mcp: unknown session")

// ResultSaver records finished games. *storage.Store satisfies it.
type ResultSaver interface {
	SaveResult(r storage.Result) (int64, error)
}

type session struct {
	id      string
	board   *t2048.Board
	moves   int
	created time.Time
	saved   bool // Result of the current game already recorded
}

// SessionInfo summarises a session for list_sessions.
type SessionInfo struct {
	ID      string    `json:"id"`
	Variant string    `json:"variant"`
	Score   int       `json:"score"`
	Best    int       `json:"best"`
	Moves   int       `json:"moves"`
	State   string    `json:"state"`
	Created time.Time `json:"created"`
}

// Server hosts the MCP tools and the boards they play on.
// Tool handlers may run concurrently, so sessions are guarded by mu.
type Server struct {
	mcpServer *server.MCPServer
	cfg       config.T2048Config
	store     ResultSaver
	logger    *log.Logger
	seed      int64 // Fixed seed for new boards, 0 for time-based

	mu       sync.Mutex
	sessions map[string]*session
}

// Option customises a Server.
type Option func(*Server)

// WithStore records finished games in store.
func WithStore(store ResultSaver) Option {
	return func(s *Server) {
		if st, ok := store.(*storage.Store); ok && st == nil {
			return
		}
		s.store = store
	}
}

// WithLogger sets the logger used for storage warnings.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithSeed makes every new board use the given seed.
func WithSeed(seed int64) Option {
	return func(s *Server) {
		s.seed = seed
	}
}

// New creates a configured MCP server.
func New(cfg config.T2048Config, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   log.Default(),
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(`2048 - MCP Interface

Slide numbered tiles on a square grid. Equal tiles that collide merge into
their sum and add it to the score. Every move that changes the board spawns a
new 2 or 4. Reach the win tile (2048 by default) to win; the game is lost when
no move can change the board.

TOOLS:
- new_game: start a board (optional size), returns its session_id
- move: slide tiles up/down/left/right
- game_state: current board as text or JSON
- restart_game: start over on the same session, keeping the best score
- list_sessions: all boards in this server
- end_session: drop a board`),
	)
	s.registerTools()
	return s
}

// Serve runs the server on stdio until the client disconnects.
func (s *Server) Serve() error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

func (s *Server) registerTools() {
	sessionID := mcp.WithString("session_id",
		mcp.Required(),
		mcp.Description("Session ID returned by new_game"),
	)

	s.mcpServer.AddTool(mcp.NewTool("new_game",
		mcp.WithDescription("Start a new 2048 game and return its session ID and board"),
		mcp.WithNumber("size",
			mcp.Description(fmt.Sprintf("Board size, 1 to %d (default %d)", maxBoardSize, s.cfg.Board.Size)),
		),
	), s.handleNewGame)

	s.mcpServer.AddTool(mcp.NewTool("move",
		mcp.WithDescription("Slide all tiles in a direction. Moves that change nothing are ignored."),
		sessionID,
		mcp.WithString("direction",
			mcp.Required(),
			mcp.Enum("up", "down", "left", "right"),
			mcp.Description("Direction to slide"),
		),
	), s.handleMove)

	s.mcpServer.AddTool(mcp.NewTool("game_state",
		mcp.WithDescription("Get the board, score and status of a game"),
		sessionID,
		mcp.WithString("format",
			mcp.Enum("text", "json"),
			mcp.Description("text (default) or json"),
		),
	), s.handleGameState)

	s.mcpServer.AddTool(mcp.NewTool("restart_game",
		mcp.WithDescription("Start a new game on an existing session; the best score is kept"),
		sessionID,
	), s.handleRestart)

	s.mcpServer.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List all active games"),
	), s.handleListSessions)

	s.mcpServer.AddTool(mcp.NewTool("end_session",
		mcp.WithDescription("Drop a game session"),
		sessionID,
	), s.handleEndSession)
}

// arguments returns the tool arguments as a map, empty when absent.
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return args
}

func stringArg(args map[string]interface{}, name string) string {
	v, _ := args[name].(string)
	return v
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	size := s.cfg.Board.Size
	if v, ok := arguments(request)["size"]; ok {
		f, isNum := v.(float64)
		if !isNum || f != float64(int(f)) {
			return mcp.NewToolResultError("size must be an integer"), nil
		}
		size = int(f)
	}

	sess, err := s.NewGame(size)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("session_id: %s\n%s", sess, s.boardText(sess))), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	dir, err := t2048.ParseDirection(stringArg(args, "direction"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id := stringArg(args, "session_id")
	moved, err := s.Move(id, dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	status := fmt.Sprintf("moved %s", dir)
	if !moved {
		status = fmt.Sprintf("%s changes nothing; board unchanged", dir)
	}
	return mcp.NewToolResultText(status + "\n" + s.boardText(id)), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	id := stringArg(args, "session_id")

	snap, err := s.Snapshot(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch format := stringArg(args, "format"); format {
	case "", "text":
		return mcp.NewToolResultText(s.boardText(id)), nil
	case "json":
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", format)), nil
	}
}

func (s *Server) handleRestart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringArg(arguments(request), "session_id")
	if err := s.Restart(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.boardText(id)), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(s.Sessions(), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleEndSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringArg(arguments(request), "session_id")
	if err := s.EndSession(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("session %s ended", id)), nil
}

// NewGame creates a board of the given size and returns its session ID.
func (s *Server) NewGame(size int) (string, error) {
	cfg := s.cfg.WithSize(size)
	if size > maxBoardSize {
		return "", fmt.Errorf("%w: board size %d exceeds %d", config.ErrInvalidConfig, size, maxBoardSize)
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	board, err := t2048.NewBoard(size, t2048.NewSource(s.seed),
		t2048.WithWinValue(cfg.Board.WinValue),
		t2048.WithSpawn4Prob(cfg.Board.Spawn4Prob),
	)
	if err != nil {
		return "", err
	}

	sess := &session{id: uuid.NewString(), board: board, created: time.Now()}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	return sess.id, nil
}

// Move plays one move on a session and reports whether the board changed.
func (s *Server) Move(id string, dir t2048.Direction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return false, err
	}

	moved := sess.board.Move(dir)
	if moved {
		sess.moves++
	}
	if sess.board.Over() {
		s.record(sess)
	}
	return moved, nil
}

// Restart starts a new game on a session. An unfinished game with a score
// is recorded first.
func (s *Server) Restart(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return err
	}

	s.record(sess)
	sess.board.StartNewGame()
	sess.moves = 0
	sess.saved = false
	return nil
}

// EndSession records the game on a session and drops it.
func (s *Server) EndSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	s.record(sess)
	delete(s.sessions, id)
	return nil
}

// Snapshot returns the state of a session's board.
func (s *Server) Snapshot(id string) (t2048.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return t2048.Snapshot{}, err
	}
	snap := t2048.BoardSnapshot(sess.board)
	snap.Tick = uint64(sess.moves)
	return snap, nil
}

// Sessions lists all sessions, oldest first.
func (s *Server) Sessions() []SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]SessionInfo, 0, len(s.sessions))
	for _, sess := range s.sessions {
		snap := t2048.BoardSnapshot(sess.board)
		infos = append(infos, SessionInfo{
			ID:      sess.id,
			Variant: snap.Variant,
			Score:   snap.Score,
			Best:    snap.Best,
			Moves:   sess.moves,
			State:   string(snap.State),
			Created: sess.created,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Created.Equal(infos[j].Created) {
			return infos[i].ID < infos[j].ID
		}
		return infos[i].Created.Before(infos[j].Created)
	})
	return infos
}

// boardText renders a session's board, or an empty string if it is gone.
func (s *Server) boardText(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ""
	}
	return strings.TrimRight(t2048.FormatBoard(sess.board), "\n")
}

// lookup finds a session. Callers hold mu.
func (s *Server) lookup(id string) (*session, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: session_id is required", ErrUnknownSession)
	}
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	return sess, nil
}

// record saves the session's current game once, if it scored. Callers hold mu.
func (s *Server) record(sess *session) {
	if sess.saved || sess.board.Score() == 0 || s.store == nil {
		return
	}
	sess.saved = true

	_, err := s.store.SaveResult(storage.Result{
		GameID:  t2048.VariantID(sess.board.Size()),
		Player:  mcpPlayer,
		Score:   sess.board.Score(),
		MaxTile: sess.board.MaxTile(),
		Won:     sess.board.Won(),
	})
	if err != nil {
		s.logger.Warn("could not save result", "session", sess.id, "error", err)
	}
}
