package game

import "math/rand"

// Deck is the shared draw pile. The top of the deck is the last element
// (pop from end), and it only ever shrinks.
type Deck struct {
	cards []Card
}

// NewDeck expands the catalog and shuffles it with rng.
// A nil rng leaves the deck in catalog order.
func NewDeck(c *Catalog, rng *rand.Rand) *Deck {
	cards := c.Cards()
	if rng != nil {
		rng.Shuffle(len(cards), func(i, j int) {
			cards[i], cards[j] = cards[j], cards[i]
		})
	}
	return &Deck{cards: cards}
}

// NewDeckFromCards builds a deck from an explicit card order; the last card is drawn first.
func NewDeckFromCards(cards []Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// Draw removes and returns the top card, or false if the deck is empty.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c, true
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Empty reports whether the deck is exhausted.
func (d *Deck) Empty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining cards, bottom first.
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}
