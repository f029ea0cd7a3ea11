package game

import "github.com/peterkuimelis/cya/internal/log"

// chooseAction runs the two wildcard passes. Within a pass the strictly
// highest-valued applicable action wins, earlier candidates winning ties.
// The wild pass only runs when the natural pass found nothing.
func (g *Game) chooseAction(p *Player) Action {
	for _, allowWild := range [2]bool{false, true} {
		tc := TurnContext{Game: g, Player: p, AllowWild: allowWild}
		var best Action
		for _, a := range candidateActions() {
			if !a.Evaluate(tc) {
				continue
			}
			if best == nil || a.Value() > best.Value() {
				best = a
			}
		}
		if best != nil {
			return best
		}
	}
	return nil
}

// playTurn runs one player's turn and reports whether the player did anything.
func (g *Game) playTurn(p *Player) (bool, error) {
	g.replenish(p)
	if p.Hand.Empty() {
		g.log(log.NewPassEvent(g.round, p.ID))
		return false, nil
	}

	if a := g.chooseAction(p); a != nil {
		grp, err := a.Execute()
		if err != nil {
			return false, err
		}
		if grp != nil {
			if err := p.Assets.Push(grp); err != nil {
				return false, err
			}
		}
	} else {
		low, _ := p.Hand.Lowest()
		c, _ := p.Hand.Take(low.Kind)
		g.discard = append(g.discard, c)
		g.log(log.NewDiscardEvent(g.round, p.ID, c.String()))
	}

	g.replenish(p)
	return true, nil
}

func (g *Game) replenish(p *Player) {
	drawn := p.Replenish(g.deck, g.rules.HandSize)
	if len(drawn) > 0 {
		g.log(log.NewDrawEvent(g.round, p.ID, Group(drawn).Names()))
	}
}
