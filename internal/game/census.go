package game

// Census counts every card in circulation by container and by kind.
type Census struct {
	Deck    int
	Hands   int
	Discard int
	Stacks  int
	Value   int
	ByKind  map[AssetKind]int
}

// Total is the number of cards counted across all containers.
func (c Census) Total() int {
	return c.Deck + c.Hands + c.Discard + c.Stacks
}

// Census walks the deck, every hand, the discard pile and every asset stack.
func (g *Game) Census() Census {
	c := Census{ByKind: make(map[AssetKind]int)}
	count := func(cards []Card) {
		for _, card := range cards {
			c.ByKind[card.Kind]++
			c.Value += card.Value
		}
	}

	deck := g.deck.Cards()
	c.Deck = len(deck)
	count(deck)

	for _, p := range g.Players {
		hand := p.Hand.Cards()
		c.Hands += len(hand)
		count(hand)
		for _, grp := range p.Assets.Groups() {
			c.Stacks += len(grp)
			count(grp)
		}
	}

	c.Discard = len(g.discard)
	count(g.discard)
	return c
}

// CheckCensus verifies that every kind is present exactly as many times as
// the catalog defines, no matter where the cards currently sit.
func (g *Game) CheckCensus() error {
	c := g.Census()
	for _, e := range g.catalog.Entries() {
		if got := c.ByKind[e.Kind]; got != e.Count {
			return g.invariant("count of "+e.Kind.String(), e.Count, got)
		}
	}
	if c.Total() != g.catalog.TotalCount() {
		return g.invariant("card count", g.catalog.TotalCount(), c.Total())
	}
	if c.Value != g.catalog.TotalValue() {
		return g.invariant("card value", g.catalog.TotalValue(), c.Value)
	}
	return nil
}

// CheckConservation is the end-of-game check: with the deck and hands
// exhausted, the asset stacks and discard pile must hold the whole deck.
func (g *Game) CheckConservation() error {
	value := g.DiscardValue()
	count := len(g.discard)
	for _, p := range g.Players {
		value += p.Assets.Value()
		count += p.Assets.CardCount()
	}
	if value != g.catalog.TotalValue() {
		return g.invariant("total value", g.catalog.TotalValue(), value)
	}
	if count != g.catalog.TotalCount() {
		return g.invariant("total cards", g.catalog.TotalCount(), count)
	}
	return nil
}

func (g *Game) invariant(check string, want, got int) error {
	return &InvariantError{
		GameID: g.ID,
		Seed:   g.Seed,
		Round:  g.round,
		Check:  check,
		Want:   want,
		Got:    got,
	}
}
