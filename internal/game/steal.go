package game

import "github.com/peterkuimelis/cya/internal/log"

// StealOutcome is how a steal exchange ended.
type StealOutcome int

const (
	// StealWon: the defender could not answer and the whole top group changed hands.
	StealWon StealOutcome = iota
	// StealDefended: the defender answered; the enlarged group stays with the target.
	StealDefended
	// StealAbandoned: the attacker could not lay another card; the group stays with the target.
	StealAbandoned
)

func (o StealOutcome) String() string {
	switch o {
	case StealWon:
		return "won"
	case StealDefended:
		return "defended"
	case StealAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// resolveSteal runs the exchange over target's top group of the given kind.
// The attacker lays a card (natural before wild, wild only when allowWild),
// then the defender answers from its own hand (natural before wild). An
// unanswered card wins the group for the attacker. An answered card ends the
// exchange in the defender's favour unless CounterSteal is on, in which case
// the attacker may lay again. Every card laid stays in the contested group.
func (g *Game) resolveSteal(attacker, target *Player, kind AssetKind, allowWild bool) (Group, StealOutcome) {
	top, _ := target.Assets.Top()
	g.log(log.NewStealAttemptEvent(g.round, attacker.ID, target.ID, kind.String(), top.Value()))

	for {
		c, ok := attacker.Hand.takeContribution(kind, allowWild)
		if !ok {
			g.log(log.NewStealAbandonedEvent(g.round, attacker.ID, target.ID, kind.String()))
			return nil, StealAbandoned
		}
		target.Assets.addToTop(c)
		g.log(log.NewStealContributeEvent(g.round, attacker.ID, target.ID, c.String()))

		d, ok := target.Hand.takeContribution(kind, true)
		if !ok {
			grp, _ := target.Assets.Pop()
			g.log(log.NewStealEvent(g.round, attacker.ID, target.ID, grp.Names(), grp.Value()))
			return grp, StealWon
		}
		target.Assets.addToTop(d)
		g.log(log.NewDefendEvent(g.round, target.ID, attacker.ID, d.String()))

		if !g.rules.CounterSteal {
			grp, _ := target.Assets.Top()
			g.log(log.NewStealFailedEvent(g.round, attacker.ID, target.ID, grp.Names(), grp.Value()))
			return nil, StealDefended
		}
	}
}
