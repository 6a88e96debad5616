package game

// Phase is the externally visible state of a game.
type Phase int

const (
	PhaseLoading     Phase = iota // Waiting for the vocabulary catalog
	PhaseAwaitingPop              // Balloons in flight, pops are scored
	PhaseResolving                // Round decided, waiting for the next one
	PhaseGameOver                 // Timer ran out, score frozen
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseAwaitingPop:
		return "awaiting-pop"
	case PhaseResolving:
		return "resolving"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// MessageKind classifies the current notice so presenters can style it.
type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageCorrect
	MessageIncorrect
	MessageMiss
	MessageGameOver
)

// Notices shown to the player.
const (
	NoticeCorrect   = "Correct!"
	NoticeIncorrect = "Incorrect!"
	NoticeMiss      = "Too slow!"
	NoticeGameOver  = "Time's up!"
)
