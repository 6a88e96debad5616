// Package server hosts one balloon game per connected client on a single
// goroutine. Clients talk to it through buffered channels and read the
// snapshots it publishes.
package server

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/balloons/internal/game"
	"github.com/tomz197/balloons/internal/loop/config"
	"github.com/tomz197/balloons/internal/vocab"
)

// GameServer is the interface clients use to communicate with the game server.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	Send(clientID int, cmd Command)
	Snapshot(clientID int) *game.Snapshot
	TopScores() []TopScoreEntry
}

// Options configures a Server.
type Options struct {
	Catalog  *vocab.Catalog
	Settings game.Settings
	Logger   *log.Logger
	NewRand  func() *rand.Rand // Per-game randomness; random seeds if nil
}

// Server runs every client's engine and processes their commands.
type Server struct {
	catalog  *vocab.Catalog
	settings game.Settings
	logger   *log.Logger
	newRand  func() *rand.Rand

	clients      map[int]*ClientHandle
	nextClientID int
	commandCh    chan ClientCommand
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex

	board *Leaderboard
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// NewServer creates a new game server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	newRand := opts.NewRand
	if newRand == nil {
		newRand = func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
	}
	return &Server{
		catalog:      opts.Catalog,
		settings:     opts.Settings,
		logger:       logger,
		newRand:      newRand,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		commandCh:    make(chan ClientCommand, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		board:        NewLeaderboard(config.TopScoreCount),
	}
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(config.ServerTickTime)
	defer ticker.Stop()
	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Step(now.Sub(lastTime))
			lastTime = now
		}
	}
}

// Step runs one server tick: registrations, queued commands, then every
// running game advanced by dt. Run calls it; tests may call it directly
// instead of Run, never alongside it.
func (s *Server) Step(dt time.Duration) {
	s.processRegistrations()
	s.processCommands()

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, handle := range s.clients {
		if handle.engine == nil {
			continue
		}
		handle.engine.Advance(dt)
		s.checkGameOver(handle)
		handle.snapshot.Store(handle.engine.Snapshot())
	}
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		handle.notify(ClientEvent{Type: EventServerShutdown})
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			if s.ClientCount() == 0 {
				return
			}
		}
	}
}

// ClientCount returns the number of registered clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	if r := []rune(username); len(r) > config.MaxUsernameLength {
		username = string(r[:config.MaxUsernameLength])
	}

	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// Send queues a command from a client. Commands are dropped when the
// queue is full.
func (s *Server) Send(clientID int, cmd Command) {
	select {
	case s.commandCh <- ClientCommand{ClientID: clientID, Command: cmd}:
	default:
		s.logger.Warn("command queue full, dropping", "client", clientID, "kind", cmd.Kind)
	}
}

// Snapshot returns the latest view of a client's game, nil if it has none.
func (s *Server) Snapshot(clientID int) *game.Snapshot {
	s.mu.RLock()
	handle, ok := s.clients[clientID]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return handle.Snapshot()
}

// TopScores returns the leaderboard, best first.
func (s *Server) TopScores() []TopScoreEntry {
	return s.board.Top()
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Debug("client registered", "client", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.logger.Debug("client unregistered", "client", clientID, "user", handle.Username)
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// processCommands applies all queued commands in arrival order.
func (s *Server) processCommands() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for {
		select {
		case cc := <-s.commandCh:
			if handle, ok := s.clients[cc.ClientID]; ok {
				s.apply(handle, cc.Command)
			}
		default:
			return
		}
	}
}

// apply runs one command against a client's engine.
func (s *Server) apply(handle *ClientHandle, cmd Command) {
	switch cmd.Kind {
	case CommandStart:
		if handle.engine != nil {
			s.restart(handle)
			return
		}
		engine := game.New(s.settings, s.newRand())
		if err := engine.Start(s.catalog); err != nil {
			s.logger.Error("game start failed", "user", handle.Username, "err", err)
			handle.notify(ClientEvent{Type: EventStartFailed, Err: err})
			return
		}
		handle.engine = engine
		handle.finished = false
		handle.snapshot.Store(engine.Snapshot())
		s.logger.Info("game started", "user", handle.Username, "category", s.settings.Category)
	case CommandRestart:
		s.restart(handle)
	case CommandPop:
		if handle.engine == nil {
			return
		}
		if handle.engine.PopBalloon(cmd.BalloonID) {
			handle.snapshot.Store(handle.engine.Snapshot())
		}
	}
}

func (s *Server) restart(handle *ClientHandle) {
	if handle.engine == nil {
		s.apply(handle, Command{Kind: CommandStart})
		return
	}
	if err := handle.engine.Restart(); err != nil {
		handle.notify(ClientEvent{Type: EventStartFailed, Err: err})
		return
	}
	handle.finished = false
	handle.snapshot.Store(handle.engine.Snapshot())
}

// checkGameOver records a finished game once and tells its client.
func (s *Server) checkGameOver(handle *ClientHandle) {
	if handle.finished || handle.engine.Phase() != game.PhaseGameOver {
		return
	}
	handle.finished = true
	score := handle.engine.Score()
	s.board.Record(handle.Username, score, handle.ID)
	handle.notify(ClientEvent{Type: EventGameOver, Score: score})
	s.logger.Info("game over", "user", handle.Username, "score", score)
}
