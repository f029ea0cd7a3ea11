package game

// Hand holds a player's cards bucketed by kind. Buckets are created up front
// for every catalog kind so that read-only queries never add entries; kinds
// outside the catalog get a bucket on first Add.
type Hand struct {
	kinds []AssetKind
	cards map[AssetKind][]Card
	size  int
}

// NewHand creates an empty hand with a bucket per kind, iterated in the given order.
func NewHand(kinds []AssetKind) *Hand {
	h := &Hand{
		kinds: append([]AssetKind(nil), kinds...),
		cards: make(map[AssetKind][]Card, len(kinds)),
	}
	for _, k := range kinds {
		h.cards[k] = nil
	}
	return h
}

// Add puts a card into its kind bucket.
func (h *Hand) Add(c Card) {
	if _, ok := h.cards[c.Kind]; !ok {
		h.kinds = append(h.kinds, c.Kind)
	}
	h.cards[c.Kind] = append(h.cards[c.Kind], c)
	h.size++
}

// Take removes one card of kind k.
func (h *Hand) Take(k AssetKind) (Card, bool) {
	bucket := h.cards[k]
	if len(bucket) == 0 {
		return Card{}, false
	}
	c := bucket[len(bucket)-1]
	h.cards[k] = bucket[:len(bucket)-1]
	h.size--
	return c, true
}

// Count returns how many cards of kind k are held.
func (h *Hand) Count(k AssetKind) int {
	return len(h.cards[k])
}

// Len returns the total number of cards held.
func (h *Hand) Len() int {
	return h.size
}

// Empty reports whether the hand holds no cards.
func (h *Hand) Empty() bool {
	return h.size == 0
}

// Kinds returns the bucket iteration order.
func (h *Hand) Kinds() []AssetKind {
	return append([]AssetKind(nil), h.kinds...)
}

// Cards returns every held card, grouped by kind in iteration order.
func (h *Hand) Cards() []Card {
	cards := make([]Card, 0, h.size)
	for _, k := range h.kinds {
		cards = append(cards, h.cards[k]...)
	}
	return cards
}

// peek returns a representative card of kind k without removing it.
func (h *Hand) peek(k AssetKind) (Card, bool) {
	bucket := h.cards[k]
	if len(bucket) == 0 {
		return Card{}, false
	}
	return bucket[len(bucket)-1], true
}

// HasNatural reports whether the hand holds a non-wild card of kind k.
func (h *Hand) HasNatural(k AssetKind) bool {
	c, ok := h.peek(k)
	return ok && !c.Wild
}

// HasWild reports whether the hand holds any wild card.
func (h *Hand) HasWild() bool {
	_, ok := h.bestWild()
	return ok
}

// Lowest returns the lowest-value card held. Ties go to the first kind in iteration order.
func (h *Hand) Lowest() (Card, bool) {
	var low Card
	found := false
	for _, k := range h.kinds {
		c, ok := h.peek(k)
		if !ok {
			continue
		}
		if !found || c.Value < low.Value {
			low, found = c, true
		}
	}
	return low, found
}

// bestWild returns the highest-value wild card held.
func (h *Hand) bestWild() (Card, bool) {
	return h.extreme(true, func(a, b int) bool { return a > b })
}

// cheapestWild returns the lowest-value wild card held.
func (h *Hand) cheapestWild() (Card, bool) {
	return h.extreme(true, func(a, b int) bool { return a < b })
}

// bestNatural returns the highest-value natural card held.
func (h *Hand) bestNatural() (Card, bool) {
	return h.extreme(false, func(a, b int) bool { return a > b })
}

func (h *Hand) extreme(wild bool, better func(a, b int) bool) (Card, bool) {
	var pick Card
	found := false
	for _, k := range h.kinds {
		c, ok := h.peek(k)
		if !ok || c.Wild != wild {
			continue
		}
		if !found || better(c.Value, pick.Value) {
			pick, found = c, true
		}
	}
	return pick, found
}

// canContribute reports whether the hand can add a card to a group of kind k:
// a natural card of that kind, or a wild when allowed.
func (h *Hand) canContribute(k AssetKind, allowWild bool) bool {
	if h.HasNatural(k) {
		return true
	}
	return allowWild && h.HasWild()
}

// takeContribution removes the card used to extend a group of kind k.
// A natural card is preferred; otherwise the cheapest wild is given up.
func (h *Hand) takeContribution(k AssetKind, allowWild bool) (Card, bool) {
	if h.HasNatural(k) {
		return h.Take(k)
	}
	if !allowWild {
		return Card{}, false
	}
	w, ok := h.cheapestWild()
	if !ok {
		return Card{}, false
	}
	return h.Take(w.Kind)
}
