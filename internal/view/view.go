// Package view holds the JSON shapes served by the web and MCP surfaces.
package view

import (
	"github.com/peterkuimelis/cya/internal/game"
	"github.com/peterkuimelis/cya/internal/log"
	"github.com/peterkuimelis/cya/internal/sim"
)

// EventView is one logged game event.
type EventView struct {
	Seq     int      `json:"seq"`
	Round   int      `json:"round"`
	Player  int      `json:"player"`
	Target  int      `json:"target"`
	Type    string   `json:"type"`
	Cards   []string `json:"cards,omitempty"`
	Value   int      `json:"value,omitempty"`
	Details string   `json:"details"`
}

// GroupView is one group in an asset stack.
type GroupView struct {
	Cards []string `json:"cards"`
	Value int      `json:"value"`
}

// PlayerView shows one seat: hand, stack and total.
type PlayerView struct {
	ID        int         `json:"id"`
	Hand      []string    `json:"hand"`
	HandCount int         `json:"hand_count"`
	Assets    []GroupView `json:"assets"`
	Total     int         `json:"total"`
}

// StateView is the whole table. The simulator has no hidden information,
// so every hand is shown.
type StateView struct {
	GameID       string       `json:"game_id"`
	Seed         int64        `json:"seed"`
	Round        int          `json:"round"`
	DeckCount    int          `json:"deck_count"`
	DiscardTop   string       `json:"discard_top,omitempty"`
	DiscardCount int          `json:"discard_count"`
	DiscardValue int          `json:"discard_value"`
	Players      []PlayerView `json:"players"`
	Over         bool         `json:"over"`
}

// ResultView is a finished game.
type ResultView struct {
	GameID       string `json:"game_id"`
	Seed         int64  `json:"seed"`
	Rounds       int    `json:"rounds"`
	Scores       []int  `json:"scores"` // by player id
	DiscardValue int    `json:"discard_value"`
	Winner       int    `json:"winner"`
}

// FailureView is a batch game that errored.
type FailureView struct {
	Index int    `json:"index"`
	Seed  int64  `json:"seed"`
	Error string `json:"error"`
}

// BatchView summarises a batch run.
type BatchView struct {
	ID         string        `json:"id"`
	Games      int           `json:"games"`
	Completed  int           `json:"completed"`
	Players    int           `json:"players"`
	Seed       int64         `json:"seed"`
	Wins       []int         `json:"wins"`
	WinRates   []float64     `json:"win_rates"`
	MeanScores []float64     `json:"mean_scores"`
	MeanRounds float64       `json:"mean_rounds"`
	Failures   []FailureView `json:"failures,omitempty"`
	ElapsedMS  int64         `json:"elapsed_ms"`
}

// CatalogEntryView is one asset kind.
type CatalogEntryView struct {
	Kind  string `json:"kind"`
	Value int    `json:"value"`
	Count int    `json:"count"`
	Wild  bool   `json:"wild,omitempty"`
}

// CatalogView lists the deck composition.
type CatalogView struct {
	Entries    []CatalogEntryView `json:"entries"`
	TotalCount int                `json:"total_count"`
	TotalValue int                `json:"total_value"`
}

// --- Builders ---

func Event(ev log.GameEvent) EventView {
	return EventView{
		Seq:     ev.Seq,
		Round:   ev.Round,
		Player:  ev.Player,
		Target:  ev.Target,
		Type:    ev.Type.String(),
		Cards:   ev.Cards,
		Value:   ev.Value,
		Details: ev.Details,
	}
}

// Events converts a slice of events; the result is never nil so it encodes as [].
func Events(evs []log.GameEvent) []EventView {
	out := make([]EventView, 0, len(evs))
	for _, ev := range evs {
		out = append(out, Event(ev))
	}
	return out
}

func Player(p *game.Player) PlayerView {
	pv := PlayerView{
		ID:        p.ID,
		Hand:      game.Group(p.Hand.Cards()).Names(),
		HandCount: p.Hand.Len(),
		Assets:    make([]GroupView, 0, p.Assets.Len()),
		Total:     p.Total(),
	}
	for _, grp := range p.Assets.Groups() {
		pv.Assets = append(pv.Assets, GroupView{Cards: grp.Names(), Value: grp.Value()})
	}
	return pv
}

// State snapshots the table.
func State(g *game.Game) *StateView {
	sv := &StateView{
		GameID:       g.ID.String(),
		Seed:         g.Seed,
		Round:        g.Round(),
		DeckCount:    g.Deck().Len(),
		DiscardCount: len(g.Discard()),
		DiscardValue: g.DiscardValue(),
		Players:      make([]PlayerView, 0, len(g.Players)),
		Over:         g.Over(),
	}
	if top, ok := g.DiscardTop(); ok {
		sv.DiscardTop = top.String()
	}
	for _, p := range g.Players {
		sv.Players = append(sv.Players, Player(p))
	}
	return sv
}

func Result(res *game.Result) *ResultView {
	rv := &ResultView{
		GameID:       res.GameID.String(),
		Seed:         res.Seed,
		Rounds:       res.Rounds,
		Scores:       make([]int, len(res.Scores)),
		DiscardValue: res.DiscardValue,
		Winner:       res.Winner,
	}
	for id, s := range res.Scores {
		rv.Scores[id] = s
	}
	return rv
}

func Batch(r *sim.BatchReport) *BatchView {
	bv := &BatchView{
		ID:         r.ID.String(),
		Games:      r.Games,
		Completed:  r.Completed(),
		Players:    r.Players,
		Seed:       r.Seed,
		Wins:       r.Wins,
		WinRates:   r.WinRates(),
		MeanScores: r.MeanScores,
		MeanRounds: r.MeanRounds,
		ElapsedMS:  r.Elapsed.Milliseconds(),
	}
	for _, f := range r.Failures {
		bv.Failures = append(bv.Failures, FailureView{Index: f.Index, Seed: f.Seed, Error: f.Err.Error()})
	}
	return bv
}

func Catalog(c *game.Catalog) *CatalogView {
	cv := &CatalogView{
		TotalCount: c.TotalCount(),
		TotalValue: c.TotalValue(),
	}
	for _, e := range c.Entries() {
		cv.Entries = append(cv.Entries, CatalogEntryView{
			Kind:  e.Kind.String(),
			Value: e.Value,
			Count: e.Count,
			Wild:  e.Wild,
		})
	}
	return cv
}
