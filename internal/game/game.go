package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/peterkuimelis/cya/internal/log"
)

const (
	DefaultHandSize = 5
	DefaultPlayers  = 5
	MinPlayers      = 2

	// MaxSeed bounds generated seeds so they survive a round trip through
	// JSON numbers (float64) intact.
	MaxSeed = 1<<53 - 1
)

// RandomSeed returns a non-zero time-based seed no larger than MaxSeed.
func RandomSeed() int64 {
	if s := time.Now().UnixNano() & MaxSeed; s != 0 {
		return s
	}
	return 1
}

// Rules holds the table rules that are not part of the catalog.
type Rules struct {
	HandSize int // hand refill target
	// CounterSteal lets an attacker answer a defense with another card, and
	// the defender must answer again, until one side cannot.
	CounterSteal bool
}

// DefaultRules returns the standard rules: five-card hands, a single defense ends a steal.
func DefaultRules() Rules {
	return Rules{HandSize: DefaultHandSize}
}

// Config holds configuration for creating a new game.
type Config struct {
	Players   int      // number of seats (>= 2)
	Seed      int64    // RNG seed (0 for random)
	Catalog   *Catalog // nil for DefaultCatalog
	Rules     Rules    // zero HandSize means DefaultHandSize
	Logger    log.EventLogger
	NoShuffle bool // skip deck shuffle (for deterministic tests)
	MaxRounds int  // safety limit (0 = one round per card plus one)
	// CheckEveryTurn validates the per-kind census after every turn
	// instead of only at game end.
	CheckEveryTurn bool
}

// Game is one independent game instance. It shares no state with other
// games, so separate instances may run on separate goroutines.
type Game struct {
	ID      uuid.UUID
	Seed    int64
	Players []*Player

	catalog        *Catalog
	deck           *Deck
	discard        []Card
	rules          Rules
	logger         log.EventLogger
	round          int
	maxRounds      int
	checkEveryTurn bool
	over           bool
}

// New constructs and deals a game with default rules and catalog.
func New(players int, seed int64) (*Game, error) {
	return NewGame(Config{Players: players, Seed: seed})
}

// NewGame shuffles a deck, deals every player a full hand round-robin and
// seeds the discard pile with one card.
func NewGame(cfg Config) (*Game, error) {
	cat := cfg.Catalog
	if cat == nil {
		cat = DefaultCatalog()
	}
	rules := cfg.Rules
	if rules.HandSize == 0 {
		rules.HandSize = DefaultHandSize
	}
	if err := validateConfig(cfg.Players, rules, cat); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = RandomSeed()
	}
	var rng *rand.Rand
	if !cfg.NoShuffle {
		rng = rand.New(rand.NewSource(seed))
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	maxRounds := cfg.MaxRounds
	if maxRounds == 0 {
		maxRounds = cat.TotalCount() + 1
	}

	g := &Game{
		ID:             uuid.New(),
		Seed:           seed,
		catalog:        cat,
		deck:           NewDeck(cat, rng),
		rules:          rules,
		logger:         logger,
		maxRounds:      maxRounds,
		checkEveryTurn: cfg.CheckEveryTurn,
	}
	kinds := cat.Kinds()
	for i := 0; i < cfg.Players; i++ {
		g.Players = append(g.Players, NewPlayer(i, kinds))
	}
	g.deal()
	return g, nil
}

func validateConfig(players int, rules Rules, cat *Catalog) error {
	if players < MinPlayers {
		return fmt.Errorf("%w: need at least %d players, got %d", ErrBadConfig, MinPlayers, players)
	}
	if rules.HandSize < 1 {
		return fmt.Errorf("%w: hand size must be positive, got %d", ErrBadConfig, rules.HandSize)
	}
	if need := players*rules.HandSize + 1; need > cat.TotalCount() {
		return fmt.Errorf("%w: %d players with %d-card hands need %d cards, deck has %d",
			ErrBadConfig, players, rules.HandSize, need, cat.TotalCount())
	}
	return nil
}

// deal hands out HandSize cards to each player in seat order, then flips
// one card onto the discard pile.
func (g *Game) deal() {
	for i := 0; i < g.rules.HandSize; i++ {
		for _, p := range g.Players {
			c, _ := g.deck.Draw()
			p.Deal(c)
			g.log(log.NewDealEvent(p.ID, c.String()))
		}
	}
	c, _ := g.deck.Draw()
	g.discard = append(g.discard, c)
	g.log(log.NewSeedDiscardEvent(c.String()))
}

func (g *Game) log(ev log.GameEvent) {
	g.logger.Log(ev)
}

// --- Table state ---

// Catalog returns the catalog the deck was built from.
func (g *Game) Catalog() *Catalog { return g.catalog }

// Rules returns the rules in effect.
func (g *Game) Rules() Rules { return g.rules }

// Deck returns the draw pile.
func (g *Game) Deck() *Deck { return g.deck }

// Round returns the current round number (0 before the first round).
func (g *Game) Round() int { return g.round }

// Over reports whether the game has finished.
func (g *Game) Over() bool { return g.over }

// Logger returns the event logger.
func (g *Game) Logger() log.EventLogger { return g.logger }

// DiscardTop returns the visible top of the discard pile.
func (g *Game) DiscardTop() (Card, bool) {
	if len(g.discard) == 0 {
		return Card{}, false
	}
	return g.discard[len(g.discard)-1], true
}

// Discard returns a copy of the discard pile, bottom first.
func (g *Game) Discard() []Card {
	return append([]Card(nil), g.discard...)
}

func (g *Game) popDiscard() (Card, bool) {
	c, ok := g.DiscardTop()
	if ok {
		g.discard = g.discard[:len(g.discard)-1]
	}
	return c, ok
}

// DiscardValue is the sum of the discard pile.
func (g *Game) DiscardValue() int {
	v := 0
	for _, c := range g.discard {
		v += c.Value
	}
	return v
}

// --- Game loop ---

// PlayRound gives every player one turn in seat order and reports whether
// anyone acted. A round with no activity ends the game.
func (g *Game) PlayRound() (bool, error) {
	if g.over {
		return false, nil
	}
	if g.round >= g.maxRounds {
		return false, fmt.Errorf("game %s (seed %d): %w after %d rounds", g.ID, g.Seed, ErrRoundLimit, g.round)
	}
	g.round++
	g.log(log.NewRoundEvent(g.round))

	active := false
	for _, p := range g.Players {
		acted, err := g.playTurn(p)
		if err != nil {
			return active, fmt.Errorf("game %s (seed %d) round %d, %s: %w", g.ID, g.Seed, g.round, p, err)
		}
		active = active || acted
		if g.checkEveryTurn {
			if err := g.CheckCensus(); err != nil {
				return active, err
			}
		}
	}
	if !active {
		g.over = true
	}
	return active, nil
}

// Play runs rounds until one passes with no activity, then checks conservation
// and returns the final totals.
func (g *Game) Play() (*Result, error) {
	for !g.over {
		if _, err := g.PlayRound(); err != nil {
			return nil, err
		}
	}
	if err := g.CheckConservation(); err != nil {
		return nil, err
	}

	res := g.result()
	totals := make([]int, len(g.Players))
	for i, p := range g.Players {
		totals[i] = p.Total()
	}
	g.log(log.NewGameOverEvent(g.round, res.DiscardValue, totals))
	return res, nil
}

// Result is the outcome of a finished game.
type Result struct {
	GameID       uuid.UUID
	Seed         int64
	Rounds       int
	Scores       map[int]int // player id → asset stack value
	DiscardValue int
	Winner       int // highest score; ties go to the lowest id
}

func (g *Game) result() *Result {
	res := &Result{
		GameID:       g.ID,
		Seed:         g.Seed,
		Rounds:       g.round,
		Scores:       make(map[int]int, len(g.Players)),
		DiscardValue: g.DiscardValue(),
		Winner:       -1,
	}
	best := 0
	for _, p := range g.Players {
		t := p.Total()
		res.Scores[p.ID] = t
		if res.Winner < 0 || t > best {
			res.Winner, best = p.ID, t
		}
	}
	return res
}
