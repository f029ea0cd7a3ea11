package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupNaturalKind(t *testing.T) {
	k, ok := Group(cards(KindGold, KindHouse, KindHouse)).NaturalKind()
	require.True(t, ok)
	assert.Equal(t, KindHouse, k)

	_, ok = Group(cards(KindGold, KindSilver)).NaturalKind()
	assert.False(t, ok)
}

func TestGroupValidate(t *testing.T) {
	assert.NoError(t, Group(cards(KindCash, KindSilver)).Validate())
	assert.ErrorIs(t, Group(cards(KindGold, KindSilver)).Validate(), ErrInvalidGroup)
	assert.ErrorIs(t, Group(cards(KindCash)).Validate(), ErrInvalidGroup)
}

func TestAssetStackPushRejectsPureWild(t *testing.T) {
	var s AssetStack
	err := s.Push(Group(cards(KindGold, KindGold)))
	assert.ErrorIs(t, err, ErrInvalidGroup)
	assert.Equal(t, 0, s.Len())
}

func TestAssetStackTopAndStealable(t *testing.T) {
	var s AssetStack
	_, ok := s.Top()
	assert.False(t, ok)

	require.NoError(t, s.Push(Group(cards(KindCash, KindCash))))
	assert.False(t, s.Stealable(), "a single group is not stealable")

	require.NoError(t, s.Push(Group(cards(KindHouse, KindGold))))
	assert.True(t, s.Stealable())

	top, ok := s.Top()
	require.True(t, ok)
	assert.Equal(t, 70, top.Value())
	assert.Equal(t, 80, s.Value())
	assert.Equal(t, 4, s.CardCount())

	g, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, []AssetKind{KindHouse, KindGold}, kindsOf(g))
	assert.Equal(t, 1, s.Len())
}
