package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/peterkuimelis/cya/internal/log"
	"github.com/stretchr/testify/require"
)

var testCatalog = DefaultCatalog()

// card returns a catalog card of kind k.
func card(k AssetKind) Card {
	return testCatalog.Card(k)
}

// cards builds a card slice from kinds, in order.
func cards(kinds ...AssetKind) []Card {
	out := make([]Card, len(kinds))
	for i, k := range kinds {
		out[i] = card(k)
	}
	return out
}

// newTable builds an undealt game with n players, empty hands, an empty deck
// and an empty discard pile, for scenarios assembled by hand.
func newTable(t *testing.T, n int, rules Rules) (*Game, *log.MemoryLogger) {
	t.Helper()
	if rules.HandSize == 0 {
		rules.HandSize = DefaultHandSize
	}
	logger := log.NewMemoryLogger()
	g := &Game{
		ID:        uuid.New(),
		Seed:      1,
		catalog:   testCatalog,
		deck:      NewDeckFromCards(nil),
		rules:     rules,
		logger:    logger,
		maxRounds: testCatalog.TotalCount() + 1,
	}
	for i := 0; i < n; i++ {
		g.Players = append(g.Players, NewPlayer(i, testCatalog.Kinds()))
	}
	return g, logger
}

// giveHand deals the given kinds into p's hand.
func giveHand(p *Player, kinds ...AssetKind) {
	for _, c := range cards(kinds...) {
		p.Deal(c)
	}
}

// giveGroup pushes a group of the given kinds onto p's asset stack.
func giveGroup(t *testing.T, p *Player, kinds ...AssetKind) {
	t.Helper()
	require.NoError(t, p.Assets.Push(Group(cards(kinds...))))
}

// setDiscard replaces the discard pile; the last kind is the top.
func setDiscard(g *Game, kinds ...AssetKind) {
	g.discard = cards(kinds...)
}

// kindsOf returns the kinds of a group, in order.
func kindsOf(g Group) []AssetKind {
	out := make([]AssetKind, len(g))
	for i, c := range g {
		out[i] = c.Kind
	}
	return out
}
