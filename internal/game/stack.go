package game

import (
	"fmt"
	"strings"
)

// Group is one completed match: two or more cards, at least one natural.
type Group []Card

// Value is the sum of the group's card values.
func (g Group) Value() int {
	v := 0
	for _, c := range g {
		v += c.Value
	}
	return v
}

// NaturalKind returns the kind of the group's first non-wild card.
func (g Group) NaturalKind() (AssetKind, bool) {
	for _, c := range g {
		if !c.Wild {
			return c.Kind, true
		}
	}
	return 0, false
}

// Validate checks the group shape.
func (g Group) Validate() error {
	if len(g) < 2 {
		return fmt.Errorf("%w: %d card(s) %s", ErrInvalidGroup, len(g), g)
	}
	if _, ok := g.NaturalKind(); !ok {
		return fmt.Errorf("%w: no natural card in %s", ErrInvalidGroup, g)
	}
	return nil
}

// Names returns the card labels in group order.
func (g Group) Names() []string {
	names := make([]string, len(g))
	for i, c := range g {
		names[i] = c.String()
	}
	return names
}

func (g Group) String() string {
	return "[" + strings.Join(g.Names(), " ") + "]"
}

// AssetStack is a player's ordered pile of groups; the last group is the top
// and the only one that can be stolen.
type AssetStack struct {
	groups []Group
}

// Push validates g and places it on top of the stack.
func (s *AssetStack) Push(g Group) error {
	if err := g.Validate(); err != nil {
		return err
	}
	s.groups = append(s.groups, g)
	return nil
}

// Pop removes and returns the top group.
func (s *AssetStack) Pop() (Group, bool) {
	if len(s.groups) == 0 {
		return nil, false
	}
	g := s.groups[len(s.groups)-1]
	s.groups = s.groups[:len(s.groups)-1]
	return g, true
}

// Top returns the top group without removing it.
func (s *AssetStack) Top() (Group, bool) {
	if len(s.groups) == 0 {
		return nil, false
	}
	return s.groups[len(s.groups)-1], true
}

// addToTop appends a card to the top group, as happens during a steal exchange.
func (s *AssetStack) addToTop(c Card) {
	top := len(s.groups) - 1
	s.groups[top] = append(s.groups[top], c)
}

// Stealable reports whether the top group may be targeted: the stack must hold at least two groups.
func (s *AssetStack) Stealable() bool {
	return len(s.groups) >= 2
}

// Len returns the number of groups.
func (s *AssetStack) Len() int {
	return len(s.groups)
}

// Groups returns the groups bottom first.
func (s *AssetStack) Groups() []Group {
	return append([]Group(nil), s.groups...)
}

// Value is the sum of every card in the stack.
func (s *AssetStack) Value() int {
	v := 0
	for _, g := range s.groups {
		v += g.Value()
	}
	return v
}

// CardCount is the number of cards across all groups.
func (s *AssetStack) CardCount() int {
	n := 0
	for _, g := range s.groups {
		n += len(g)
	}
	return n
}

func (s *AssetStack) String() string {
	parts := make([]string, len(s.groups))
	for i, g := range s.groups {
		parts[i] = g.String()
	}
	return strings.Join(parts, " ")
}
