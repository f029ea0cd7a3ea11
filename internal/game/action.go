package game

import (
	"errors"

	"github.com/peterkuimelis/cya/internal/log"
)

// ActionType enumerates the candidate actions, in evaluation order.
type ActionType int

const (
	ActionMatchHand ActionType = iota
	ActionMatchDiscard
	ActionSteal
)

func (a ActionType) String() string {
	switch a {
	case ActionMatchHand:
		return "MatchHand"
	case ActionMatchDiscard:
		return "MatchDiscard"
	case ActionSteal:
		return "Steal"
	default:
		return "Unknown"
	}
}

// TurnContext is what an action sees while it is being evaluated.
type TurnContext struct {
	Game      *Game
	Player    *Player
	AllowWild bool
}

// Action is one candidate move. Evaluate decides applicability and records the
// best outcome it found; Value scores that outcome; Execute commits it and
// returns the group to push onto the acting player's stack, or nil if the
// action produced nothing (a defended or abandoned steal).
type Action interface {
	Type() ActionType
	Evaluate(tc TurnContext) bool
	Value() int
	Execute() (Group, error)
}

var errNotEvaluated = errors.New("action executed without a successful evaluation")

// candidateActions returns fresh actions in evaluation order.
func candidateActions() []Action {
	return []Action{&MatchHand{}, &MatchDiscard{}, &Steal{}}
}

// --- MatchHand ---

// MatchHand pairs two cards already in the player's hand: two of one natural
// kind, or (with wilds allowed) a lone natural card and a wild.
type MatchHand struct {
	tc      TurnContext
	kind    AssetKind
	partner AssetKind
	value   int
	ok      bool
}

func (m *MatchHand) Type() ActionType { return ActionMatchHand }

func (m *MatchHand) Evaluate(tc TurnContext) bool {
	m.tc = tc
	m.ok = false
	h := tc.Player.Hand
	wild, haveWild := h.bestWild()

	for _, k := range h.kinds {
		c, held := h.peek(k)
		if !held || c.Wild {
			continue
		}
		n := h.Count(k)
		if n >= 2 {
			m.consider(k, k, 2*c.Value)
		}
		if tc.AllowWild && n == 1 && haveWild {
			m.consider(k, wild.Kind, c.Value+wild.Value)
		}
	}
	return m.ok
}

func (m *MatchHand) consider(kind, partner AssetKind, value int) {
	if m.ok && value <= m.value {
		return
	}
	m.kind, m.partner, m.value, m.ok = kind, partner, value, true
}

func (m *MatchHand) Value() int { return m.value }

func (m *MatchHand) Execute() (Group, error) {
	if !m.ok {
		return nil, errNotEvaluated
	}
	p := m.tc.Player
	a, _ := p.Hand.Take(m.kind)
	b, _ := p.Hand.Take(m.partner)
	g := Group{a, b}
	m.tc.Game.log(log.NewMatchHandEvent(m.tc.Game.round, p.ID, g.Names(), g.Value()))
	return g, nil
}

// --- MatchDiscard ---

// MatchDiscard claims the top of the discard pile with one card from hand.
type MatchDiscard struct {
	tc      TurnContext
	top     Card
	partner AssetKind
	value   int
	ok      bool
}

func (m *MatchDiscard) Type() ActionType { return ActionMatchDiscard }

func (m *MatchDiscard) Evaluate(tc TurnContext) bool {
	m.tc = tc
	m.ok = false
	top, ok := tc.Game.DiscardTop()
	if !ok {
		return false
	}
	h := tc.Player.Hand

	var partner Card
	switch {
	case !top.Wild && h.HasNatural(top.Kind):
		partner, _ = h.peek(top.Kind)
	case top.Wild:
		// A wild on the pile needs a natural partner; two wilds never form a group.
		partner, ok = h.bestNatural()
		if !ok {
			return false
		}
	case tc.AllowWild:
		partner, ok = h.bestWild()
		if !ok {
			return false
		}
	default:
		return false
	}

	m.top = top
	m.partner = partner.Kind
	m.value = top.Value + partner.Value
	m.ok = true
	return true
}

func (m *MatchDiscard) Value() int { return m.value }

func (m *MatchDiscard) Execute() (Group, error) {
	if !m.ok {
		return nil, errNotEvaluated
	}
	g := m.tc.Game
	p := m.tc.Player
	top, _ := g.popDiscard()
	c, _ := p.Hand.Take(m.partner)
	grp := Group{top, c}
	g.log(log.NewMatchDiscardEvent(g.round, p.ID, grp.Names(), grp.Value()))
	return grp, nil
}

// --- Steal ---

// Steal targets the most valuable stealable top group among the opponents
// whose group kind the acting player can contribute to.
type Steal struct {
	tc      TurnContext
	target  *Player
	kind    AssetKind
	value   int
	outcome StealOutcome
}

func (s *Steal) Type() ActionType { return ActionSteal }

func (s *Steal) Evaluate(tc TurnContext) bool {
	s.tc = tc
	s.target = nil
	for _, other := range tc.Game.Players {
		if other == tc.Player || !other.Assets.Stealable() {
			continue
		}
		top, _ := other.Assets.Top()
		kind, ok := top.NaturalKind()
		if !ok || !tc.Player.Hand.canContribute(kind, tc.AllowWild) {
			continue
		}
		if v := top.Value(); s.target == nil || v > s.value {
			s.target, s.kind, s.value = other, kind, v
		}
	}
	return s.target != nil
}

func (s *Steal) Value() int { return s.value }

// Target returns the chosen victim after a successful Evaluate.
func (s *Steal) Target() *Player { return s.target }

// Outcome reports how the exchange ended; only meaningful after Execute.
func (s *Steal) Outcome() StealOutcome { return s.outcome }

func (s *Steal) Execute() (Group, error) {
	if s.target == nil {
		return nil, errNotEvaluated
	}
	grp, outcome := s.tc.Game.resolveSteal(s.tc.Player, s.target, s.kind, s.tc.AllowWild)
	s.outcome = outcome
	return grp, nil
}
