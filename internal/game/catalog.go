package game

import (
	"fmt"
	"strings"
)

// --- Asset kinds ---

// AssetKind identifies a collectible category. Labels only matter for display;
// wildness and point values come from the Catalog.
type AssetKind int

const (
	KindGold AssetKind = iota
	KindSilver
	KindHouse
	KindJewels
	KindCars
	KindStocks
	KindBank
	KindCoins
	KindBaseball
	KindCash
	KindStamps
	KindPiggy
)

var kindNames = [...]string{
	KindGold:     "Gold",
	KindSilver:   "Silver",
	KindHouse:    "House",
	KindJewels:   "Jewels",
	KindCars:     "Cars",
	KindStocks:   "Stocks",
	KindBank:     "Bank",
	KindCoins:    "Coins",
	KindBaseball: "Baseball",
	KindCash:     "Cash",
	KindStamps:   "Stamps",
	KindPiggy:    "Piggy",
}

func (k AssetKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind looks up an asset kind by name, case-insensitively.
func ParseKind(name string) (AssetKind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return AssetKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown asset kind %q", name)
}

// --- Cards ---

// Card is an immutable asset card. Two cards of the same kind are
// interchangeable; Value and Wild are fixed per kind by the catalog.
type Card struct {
	Kind  AssetKind
	Value int
	Wild  bool
}

func (c Card) String() string {
	return c.Kind.String()
}

// --- Catalog ---

// CatalogEntry defines how many copies of a kind are in the deck and what each is worth.
type CatalogEntry struct {
	Kind  AssetKind
	Value int
	Count int
	Wild  bool
}

// Card returns a card of this entry's kind.
func (e CatalogEntry) Card() Card {
	return Card{Kind: e.Kind, Value: e.Value, Wild: e.Wild}
}

// Catalog is the static table of asset kinds that makes up a deck.
// Entry order is significant: it is the iteration order used for
// every tie-break over kinds.
type Catalog struct {
	entries []CatalogEntry
	index   map[AssetKind]int
}

// NewCatalog validates entries and builds a catalog from them.
func NewCatalog(entries []CatalogEntry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog has no entries")
	}
	c := &Catalog{
		entries: make([]CatalogEntry, 0, len(entries)),
		index:   make(map[AssetKind]int, len(entries)),
	}
	naturals := 0
	for _, e := range entries {
		if _, dup := c.index[e.Kind]; dup {
			return nil, fmt.Errorf("catalog lists %s twice", e.Kind)
		}
		if e.Count <= 0 {
			return nil, fmt.Errorf("catalog entry %s: count must be positive, got %d", e.Kind, e.Count)
		}
		if e.Value <= 0 {
			return nil, fmt.Errorf("catalog entry %s: value must be positive, got %d", e.Kind, e.Value)
		}
		if !e.Wild {
			naturals++
		}
		c.index[e.Kind] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	if naturals == 0 {
		return nil, fmt.Errorf("catalog has no natural kinds")
	}
	return c, nil
}

// DefaultCatalog returns the standard 110-card deck worth 1360 points.
// Gold and Silver are wild.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog([]CatalogEntry{
		{Kind: KindGold, Value: 50, Count: 4, Wild: true},
		{Kind: KindSilver, Value: 25, Count: 8, Wild: true},
		{Kind: KindHouse, Value: 20, Count: 8},
		{Kind: KindJewels, Value: 15, Count: 10},
		{Kind: KindCars, Value: 15, Count: 10},
		{Kind: KindStocks, Value: 10, Count: 10},
		{Kind: KindBank, Value: 10, Count: 10},
		{Kind: KindCoins, Value: 10, Count: 10},
		{Kind: KindBaseball, Value: 5, Count: 10},
		{Kind: KindCash, Value: 5, Count: 10},
		{Kind: KindStamps, Value: 5, Count: 10},
		{Kind: KindPiggy, Value: 5, Count: 10},
	})
	if err != nil {
		panic(err)
	}
	return c
}

// Entries returns a copy of the catalog entries in catalog order.
func (c *Catalog) Entries() []CatalogEntry {
	return append([]CatalogEntry(nil), c.entries...)
}

// Entry returns the entry for a kind.
func (c *Catalog) Entry(k AssetKind) (CatalogEntry, bool) {
	i, ok := c.index[k]
	if !ok {
		return CatalogEntry{}, false
	}
	return c.entries[i], true
}

// Card returns a card of the given kind. Panics if the kind is not in the catalog.
func (c *Catalog) Card(k AssetKind) Card {
	e, ok := c.Entry(k)
	if !ok {
		panic(fmt.Sprintf("kind not in catalog: %s", k))
	}
	return e.Card()
}

// Kinds returns every kind in catalog order.
func (c *Catalog) Kinds() []AssetKind {
	kinds := make([]AssetKind, len(c.entries))
	for i, e := range c.entries {
		kinds[i] = e.Kind
	}
	return kinds
}

// TotalCount is the number of cards in a full deck.
func (c *Catalog) TotalCount() int {
	n := 0
	for _, e := range c.entries {
		n += e.Count
	}
	return n
}

// TotalValue is the sum of every card's value in a full deck.
func (c *Catalog) TotalValue() int {
	v := 0
	for _, e := range c.entries {
		v += e.Value * e.Count
	}
	return v
}

// Cards expands every entry to Count copies, in catalog order.
func (c *Catalog) Cards() []Card {
	cards := make([]Card, 0, c.TotalCount())
	for _, e := range c.entries {
		for i := 0; i < e.Count; i++ {
			cards = append(cards, e.Card())
		}
	}
	return cards
}
