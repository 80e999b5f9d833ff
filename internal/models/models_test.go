// internal/models/models_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardPoints(t *testing.T) {
	assert.Equal(t, 7, Card{Value: 7, Color: Red}.Points())
	assert.Equal(t, 0, Card{Value: 0, Color: Blue}.Points())
	assert.Equal(t, 20, Card{Value: Skip, Color: Green}.Points())
	assert.Equal(t, 20, Card{Value: DrawTwo, Color: Yellow}.Points())
	assert.Equal(t, 50, Card{Value: Wild}.Points())
	assert.Equal(t, 50, Card{Value: WildDrawFour}.Points())
}

func TestParseColor(t *testing.T) {
	c, ok := ParseColor("green")
	require.True(t, ok)
	assert.Equal(t, Green, c)

	_, ok = ParseColor("purple")
	assert.False(t, ok)
}

func TestHouseRulesUpdate(t *testing.T) {
	rules := HouseRules{StackDrawTwo: true}
	err := rules.Update(map[string]interface{}{
		"stackDrawFour": true,
		"forcePlay":     false,
	})
	require.NoError(t, err)
	assert.True(t, rules.StackDrawTwo) // untouched
	assert.True(t, rules.StackDrawFour)
	assert.False(t, rules.ForcePlay)
}

func TestHouseRulesUpdateRejectsBadType(t *testing.T) {
	rules := HouseRules{}
	err := rules.Update(map[string]interface{}{"bluffChallenge": "yes"})
	assert.Error(t, err)
}

func TestPlayerHandOps(t *testing.T) {
	a := Card{ID: uuid.New(), Color: Red, Value: 5}
	b := Card{ID: uuid.New(), Color: Blue, Value: Skip}
	p := &Player{ID: uuid.New(), Hand: []Card{a, b}}

	got, ok := p.CardByID(a.ID)
	require.True(t, ok)
	assert.Equal(t, a.ID, got.ID)

	removed, ok := p.RemoveCard(a.ID)
	require.True(t, ok)
	assert.Equal(t, a.ID, removed.ID)
	assert.Len(t, p.Hand, 1)

	_, ok = p.RemoveCard(a.ID)
	assert.False(t, ok)
}

func TestAddCardsClearsUnoDeclaration(t *testing.T) {
	a := Card{ID: uuid.New(), Color: Red, Value: 5}
	b := Card{ID: uuid.New(), Color: Blue, Value: 3}
	p := &Player{ID: uuid.New(), Hand: []Card{a}, HasCalledUno: true}

	p.AddCards(b)
	assert.False(t, p.HasCalledUno)
	assert.Nil(t, p.UnoCallTime)
}
