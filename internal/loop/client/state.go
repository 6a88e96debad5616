package client

import (
	"time"

	"github.com/tomz197/balloons/internal/draw"
	"github.com/tomz197/balloons/internal/input"
	"github.com/tomz197/balloons/internal/object"
)

// GameState represents the current screen for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active round
	GameStateGameOver                  // Clock ran out, show restart prompt
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-connection state. Each client has its own
// instance, managed by the Client.
type ClientState struct {
	Input         input.Input
	View          object.Screen // Logical size of the play area
	GameState     GameState
	prevGameState GameState
	Typed         []rune // Answer being typed
	FinalScore    int    // Score of the last finished game
	staleGame     uint64 // Game the player just left
	awaitingGame  bool   // A new game was requested but not yet published
	Running       bool
	termSizeFunc  draw.TermSizeFunc
	delta         time.Duration
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool
	wasInactive   bool

	sprites    []object.Sprite // Balloons of the latest snapshot
	effects    []object.Object // Pop particles
	spawned    []object.Object // Effects queued during an update
	seenPopped map[string]bool // Balloons already burst on screen
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		prevGameState: GameStateStart,
		Running:       true,
		seenPopped:    make(map[string]bool),
	}
}

// Spawn queues an effect. Implements object.Spawner.
func (s *ClientState) Spawn(obj object.Object) {
	s.spawned = append(s.spawned, obj)
}

// updateEffects advances particles and drops expired ones.
func (s *ClientState) updateEffects() {
	ctx := object.UpdateContext{Delta: s.delta, Spawner: s}
	kept := s.effects[:0]
	for _, obj := range s.effects {
		remove, err := obj.Update(ctx)
		if remove || err != nil {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	s.effects = append(kept, s.spawned...)
	s.spawned = s.spawned[:0]
}

// clearEffects releases every particle, e.g. on restart.
func (s *ClientState) clearEffects() {
	for _, obj := range s.effects {
		object.ReleaseObject(obj)
	}
	s.effects = s.effects[:0]
	clear(s.seenPopped)
}
