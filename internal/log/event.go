package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventNewRound EventType = iota
	EventDeal
	EventSeedDiscard
	EventDraw
	EventMatchHand
	EventMatchDiscard
	EventStealAttempt
	EventStealContribute
	EventDefend
	EventSteal
	EventStealFailed
	EventStealAbandoned
	EventDiscard
	EventPass
	EventGameOver
)

func (e EventType) String() string {
	switch e {
	case EventNewRound:
		return "NewRound"
	case EventDeal:
		return "Deal"
	case EventSeedDiscard:
		return "SeedDiscard"
	case EventDraw:
		return "Draw"
	case EventMatchHand:
		return "MatchHand"
	case EventMatchDiscard:
		return "MatchDiscard"
	case EventStealAttempt:
		return "StealAttempt"
	case EventStealContribute:
		return "StealContribute"
	case EventDefend:
		return "Defend"
	case EventSteal:
		return "Steal"
	case EventStealFailed:
		return "StealFailed"
	case EventStealAbandoned:
		return "StealAbandoned"
	case EventDiscard:
		return "Discard"
	case EventPass:
		return "Pass"
	case EventGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Round   int       // which round (1-based; 0 during setup)
	Player  int       // acting player, -1 for table events
	Target  int       // opponent involved in a steal, -1 otherwise
	Type    EventType // event type
	Cards   []string  // cards involved, if any
	Value   int       // points involved, if any
	Details string    // human-readable detail string
}
