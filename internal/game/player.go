package game

import "fmt"

// Player is one seat at the table: a hand and an asset stack.
type Player struct {
	ID     int
	Hand   *Hand
	Assets *AssetStack
}

// NewPlayer creates a player with an empty hand and stack.
func NewPlayer(id int, kinds []AssetKind) *Player {
	return &Player{
		ID:     id,
		Hand:   NewHand(kinds),
		Assets: &AssetStack{},
	}
}

// Deal adds a card to the player's hand.
func (p *Player) Deal(c Card) {
	p.Hand.Add(c)
}

// Replenish draws from the deck until the hand holds target cards or the deck is empty.
// It returns the cards drawn; calling it on a full hand or an empty deck is a no-op.
func (p *Player) Replenish(d *Deck, target int) []Card {
	var drawn []Card
	for p.Hand.Len() < target {
		c, ok := d.Draw()
		if !ok {
			break
		}
		p.Hand.Add(c)
		drawn = append(drawn, c)
	}
	return drawn
}

// Total is the value of the player's asset stack.
func (p *Player) Total() int {
	return p.Assets.Value()
}

func (p *Player) String() string {
	return fmt.Sprintf("Player %d", p.ID)
}
