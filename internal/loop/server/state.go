package server

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/tomz197/balloons/internal/game"
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	clientID int // Used for deterministic tie-break when scores are equal
}

// Leaderboard keeps the best finished games. Safe for concurrent use.
type Leaderboard struct {
	mu      sync.RWMutex
	limit   int
	entries []TopScoreEntry
}

// NewLeaderboard creates a leaderboard holding at most limit entries.
func NewLeaderboard(limit int) *Leaderboard {
	return &Leaderboard{limit: limit}
}

// Record adds a finished game. Equal scores keep registration order,
// then finishing order.
func (l *Leaderboard) Record(username string, score, clientID int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, TopScoreEntry{Username: username, Score: score, clientID: clientID})
	slices.SortStableFunc(l.entries, func(a, b TopScoreEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.clientID, b.clientID)
	})
	if len(l.entries) > l.limit {
		l.entries = l.entries[:l.limit]
	}
}

// Top returns a copy of the current entries, best first.
func (l *Leaderboard) Top() []TopScoreEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.entries)
}

// ClientHandle represents a client's connection to the server.
// The engine is owned by the server goroutine; clients only read the
// published snapshot and receive events.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent // Events sent to client (game over, etc.)

	engine   *game.Engine
	finished bool // Game over already reported for the current game
	snapshot atomic.Pointer[game.Snapshot]
}

// Snapshot returns the latest published view of this client's game, or
// nil before a game has started.
func (h *ClientHandle) Snapshot() *game.Snapshot {
	return h.snapshot.Load()
}

// notify sends an event without blocking the server loop.
func (h *ClientHandle) notify(ev ClientEvent) {
	select {
	case h.EventsCh <- ev:
	default:
	}
}

// CommandKind identifies a client command.
type CommandKind int

const (
	CommandStart   CommandKind = iota // Begin a game, or a new one
	CommandRestart                    // Reset score and timer
	CommandPop                        // Pop BalloonID
)

// Command is a player action sent to the server.
type Command struct {
	Kind      CommandKind
	BalloonID string
}

// ClientCommand is a command from a specific client.
type ClientCommand struct {
	ClientID int
	Command  Command
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventGameOver ClientEventType = iota
	EventStartFailed
	EventServerShutdown
)

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type  ClientEventType
	Score int   // For game over events
	Err   error // For start failures
}
