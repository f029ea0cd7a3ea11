package log

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- NopLogger: drops everything, for batch runs ---

type NopLogger struct{}

func (NopLogger) Log(GameEvent) {}
func (NopLogger) Events() []GameEvent { return nil }

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// Drain returns the events logged since the previous Drain and forgets them.
func (l *MemoryLogger) Drain() []GameEvent {
	events := l.events
	l.events = nil
	return events
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- LogrusLogger: structured debug entries ---

// LogrusLogger forwards events to a logrus entry at debug level. It keeps
// a sequence counter but does not retain events.
type LogrusLogger struct {
	entry *logrus.Entry
	seq   int
}

func NewLogrusLogger(entry *logrus.Entry) *LogrusLogger {
	return &LogrusLogger{entry: entry}
}

func (l *LogrusLogger) Log(event GameEvent) {
	l.seq++
	fields := logrus.Fields{
		"seq":   l.seq,
		"round": event.Round,
		"event": event.Type.String(),
	}
	if event.Player >= 0 {
		fields["player"] = event.Player
	}
	if event.Target >= 0 {
		fields["target"] = event.Target
	}
	if len(event.Cards) > 0 {
		fields["cards"] = strings.Join(event.Cards, ",")
	}
	if event.Value != 0 {
		fields["value"] = event.Value
	}
	l.entry.WithFields(fields).Debug(event.Details)
}

func (l *LogrusLogger) Events() []GameEvent {
	return nil
}

// --- Formatting ---

// playerName returns "Player N" for display.
func playerName(p int) string {
	return fmt.Sprintf("Player %d", p)
}

func cardList(cards []string) string {
	return "[" + strings.Join(cards, " ") + "]"
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	if e.Type == EventNewRound {
		return e.Details
	}
	return fmt.Sprintf("R%-3d| %s", e.Round, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewRoundEvent(round int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  -1,
		Target:  -1,
		Type:    EventNewRound,
		Details: fmt.Sprintf("=== Round %d ===", round),
	}
}

func NewDealEvent(player int, card string) GameEvent {
	return GameEvent{
		Player:  player,
		Target:  -1,
		Type:    EventDeal,
		Cards:   []string{card},
		Details: fmt.Sprintf("%s is dealt %s", playerName(player), card),
	}
}

func NewSeedDiscardEvent(card string) GameEvent {
	return GameEvent{
		Player:  -1,
		Target:  -1,
		Type:    EventSeedDiscard,
		Cards:   []string{card},
		Details: fmt.Sprintf("Discard pile starts with %s", card),
	}
}

func NewDrawEvent(round int, player int, cards []string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Target:  -1,
		Type:    EventDraw,
		Cards:   cards,
		Details: fmt.Sprintf("%s draws %s", playerName(player), cardList(cards)),
	}
}

func NewMatchHandEvent(round int, player int, cards []string, value int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Target:  -1,
		Type:    EventMatchHand,
		Cards:   cards,
		Value:   value,
		Details: fmt.Sprintf("%s plays %s from hand (%d)", playerName(player), cardList(cards), value),
	}
}

func NewMatchDiscardEvent(round int, player int, cards []string, value int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Target:  -1,
		Type:    EventMatchDiscard,
		Cards:   cards,
		Value:   value,
		Details: fmt.Sprintf("%s plays %s using discard (%d)", playerName(player), cardList(cards), value),
	}
}

func NewStealAttemptEvent(round int, player int, target int, kind string, value int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Target:  target,
		Type:    EventStealAttempt,
		Cards:   []string{kind},
		Value:   value,
		Details: fmt.Sprintf("%s attacks %s's %s (%d)", playerName(player), playerName(target), kind, value),
	}
}

func NewStealContributeEvent(round int, player int, target int, card string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Target:  target,
		Type:    EventStealContribute,
		Cards:   []string{card},
		Details: fmt.Sprintf("%s lays %s against %s", playerName(player), card, playerName(target)),
	}
}

func NewDefendEvent(round int, defender int, attacker int, card string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  defender,
		Target:  attacker,
		Type:    EventDefend,
		Cards:   []string{card},
		Details: fmt.Sprintf("%s defends with %s", playerName(defender), card),
	}
}

func NewStealEvent(round int, player int, target int, cards []string, value int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Target:  target,
		Type:    EventSteal,
		Cards:   cards,
		Value:   value,
		Details: fmt.Sprintf("%s steals %s from %s (%d)", playerName(player), cardList(cards), playerName(target), value),
	}
}

func NewStealFailedEvent(round int, player int, target int, cards []string, value int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Target:  target,
		Type:    EventStealFailed,
		Cards:   cards,
		Value:   value,
		Details: fmt.Sprintf("%s keeps %s (%d)", playerName(target), cardList(cards), value),
	}
}

func NewStealAbandonedEvent(round int, player int, target int, kind string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Target:  target,
		Type:    EventStealAbandoned,
		Cards:   []string{kind},
		Details: fmt.Sprintf("%s has no %s left and gives up", playerName(player), kind),
	}
}

func NewDiscardEvent(round int, player int, card string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Target:  -1,
		Type:    EventDiscard,
		Cards:   []string{card},
		Details: fmt.Sprintf("%s discards %s", playerName(player), card),
	}
}

func NewPassEvent(round int, player int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Target:  -1,
		Type:    EventPass,
		Details: fmt.Sprintf("%s has no cards", playerName(player)),
	}
}

func NewGameOverEvent(round int, discardValue int, totals []int) GameEvent {
	parts := make([]string, len(totals))
	for i, t := range totals {
		parts[i] = fmt.Sprintf("%s: %d", playerName(i), t)
	}
	return GameEvent{
		Round:   round,
		Player:  -1,
		Target:  -1,
		Type:    EventGameOver,
		Value:   discardValue,
		Details: fmt.Sprintf("Game over. Discard pile %d; %s", discardValue, strings.Join(parts, ", ")),
	}
}
