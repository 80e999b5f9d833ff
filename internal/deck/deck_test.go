// internal/deck/deck_test.go
package deck

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pjcolombo/onecard/internal/models"
)

func card(color models.Color, value models.Value) models.Card {
	return models.Card{ID: uuid.New(), Color: color, Value: value}
}

func TestNewDeckComposition(t *testing.T) {
	pile := New()
	require.Len(t, pile, Size)

	type face struct {
		color models.Color
		value models.Value
	}
	counts := make(map[face]int)
	for _, c := range pile {
		counts[face{c.Color, c.Value}]++
	}

	for _, color := range models.Colors {
		assert.Equal(t, 1, counts[face{color, 0}], "%s zero", color)
		for v := models.Value(1); v <= 9; v++ {
			assert.Equal(t, 2, counts[face{color, v}], "%s %s", color, v)
		}
		for _, v := range []models.Value{models.Skip, models.Reverse, models.DrawTwo} {
			assert.Equal(t, 2, counts[face{color, v}], "%s %s", color, v)
		}
	}
	assert.Equal(t, 4, counts[face{models.ColorNone, models.Wild}])
	assert.Equal(t, 4, counts[face{models.ColorNone, models.WildDrawFour}])
}

func TestShufflePreservesCards(t *testing.T) {
	pile := New()
	before := make(map[uuid.UUID]bool, len(pile))
	for _, c := range pile {
		before[c.ID] = true
	}

	Shuffle(pile)

	require.Len(t, pile, Size)
	for _, c := range pile {
		assert.True(t, before[c.ID], "shuffle introduced card %s", c.ID)
	}
}

func TestIsValidPlay(t *testing.T) {
	redFive := card(models.Red, 5)
	noRules := models.HouseRules{}

	tests := []struct {
		name         string
		card         models.Card
		top          models.Card
		currentColor models.Color
		rules        models.HouseRules
		pending      int
		want         bool
	}{
		{"matching color", card(models.Red, 9), redFive, models.Red, noRules, 0, true},
		{"matching value", card(models.Blue, 5), redFive, models.Red, noRules, 0, true},
		{"wild always legal", card(models.ColorNone, models.Wild), redFive, models.Red, noRules, 0, true},
		{"wild draw four always legal", card(models.ColorNone, models.WildDrawFour), redFive, models.Red, noRules, 0, true},
		{"no match", card(models.Blue, 9), redFive, models.Red, noRules, 0, false},
		{"chosen color beats printed top", card(models.Green, 9), card(models.ColorNone, models.Wild), models.Green, noRules, 0, true},
		{
			"pending chain blocks non-stack cards",
			card(models.Red, 9), card(models.Red, models.DrawTwo), models.Red,
			models.HouseRules{StackDrawTwo: true}, 2, false,
		},
		{
			"stack draw two under rule",
			card(models.Blue, models.DrawTwo), card(models.Red, models.DrawTwo), models.Red,
			models.HouseRules{StackDrawTwo: true}, 2, true,
		},
		{
			"stack draw two without rule",
			card(models.Blue, models.DrawTwo), card(models.Red, models.DrawTwo), models.Red,
			noRules, 2, false,
		},
		{
			"stack wild draw four under rule",
			card(models.ColorNone, models.WildDrawFour), card(models.ColorNone, models.WildDrawFour), models.Red,
			models.HouseRules{StackDrawFour: true}, 4, true,
		},
		{
			"wild draw four cannot answer a draw two",
			card(models.ColorNone, models.WildDrawFour), card(models.Red, models.DrawTwo), models.Red,
			models.HouseRules{StackDrawTwo: true, StackDrawFour: true}, 2, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidPlay(tt.card, tt.top, tt.currentColor, tt.rules, tt.pending)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidPlays(t *testing.T) {
	hand := []models.Card{
		card(models.Red, 9),
		card(models.Blue, 5),
		card(models.Blue, 9),
		card(models.ColorNone, models.Wild),
	}
	plays := ValidPlays(hand, card(models.Red, 5), models.Red, models.HouseRules{}, 0)

	require.Len(t, plays, 3)
	assert.Equal(t, hand[0].ID, plays[0].ID)
	assert.Equal(t, hand[1].ID, plays[1].ID)
	assert.Equal(t, hand[3].ID, plays[2].ID)
}

func TestDealRoundRobin(t *testing.T) {
	pile := New()
	hands, rest, err := Deal(pile, 4, 7)
	require.NoError(t, err)
	require.Len(t, hands, 4)
	for _, h := range hands {
		assert.Len(t, h, 7)
	}
	assert.Len(t, rest, Size-4*7)

	// One card per player per pass: player p's r-th card came from
	// pile position r*4+p.
	for p := 0; p < 4; p++ {
		for r := 0; r < 7; r++ {
			assert.Equal(t, pile[r*4+p].ID, hands[p][r].ID)
		}
	}
}

func TestDealNotEnoughCards(t *testing.T) {
	pile := New()[:10]
	_, rest, err := Deal(pile, 4, 7)
	require.ErrorIs(t, err, ErrNotEnoughCards)
	assert.Len(t, rest, 10)
}

func TestDrawRecyclesDiscard(t *testing.T) {
	discard := []models.Card{
		card(models.Red, 1),
		card(models.Red, 2),
		card(models.Red, 3),
		card(models.Red, 4),
		card(models.Red, 5), // top, must survive
	}
	top := discard[len(discard)-1]

	drawn, newDraw, newDiscard := Draw(nil, discard, 3)

	require.Len(t, drawn, 3)
	assert.Len(t, newDraw, 1)
	require.Len(t, newDiscard, 1)
	assert.Equal(t, top.ID, newDiscard[0].ID)
}

func TestDrawStopsWhenExhausted(t *testing.T) {
	drawPile := []models.Card{card(models.Red, 1)}
	discard := []models.Card{card(models.Red, 5)}

	drawn, newDraw, newDiscard := Draw(drawPile, discard, 3)

	assert.Len(t, drawn, 1)
	assert.Empty(t, newDraw)
	assert.Len(t, newDiscard, 1)
}

func TestRecycleKeepsTop(t *testing.T) {
	assert.Nil(t, Recycle(nil))
	assert.Nil(t, Recycle([]models.Card{card(models.Red, 5)}))

	discard := []models.Card{card(models.Red, 1), card(models.Red, 2), card(models.Red, 3)}
	recycled := Recycle(discard)
	require.Len(t, recycled, 2)
	for _, c := range recycled {
		assert.NotEqual(t, discard[2].ID, c.ID)
	}
}

func TestStartingDiscardSkipsWildDrawFour(t *testing.T) {
	wd4 := card(models.ColorNone, models.WildDrawFour)
	five := card(models.Red, 5)
	pile := []models.Card{wd4, five, card(models.Blue, 3)}

	start, rest, err := StartingDiscard(pile)
	require.NoError(t, err)
	assert.NotEqual(t, models.WildDrawFour, start.Value)
	assert.Len(t, rest, 2)

	// The rejected wild-draw-four went back into the pile.
	found := false
	for _, c := range rest {
		if c.ID == wd4.ID {
			found = true
		}
	}
	assert.True(t, found)
}

func TestStartingDiscardAllWildDrawFour(t *testing.T) {
	pile := []models.Card{
		card(models.ColorNone, models.WildDrawFour),
		card(models.ColorNone, models.WildDrawFour),
	}
	_, _, err := StartingDiscard(pile)
	require.ErrorIs(t, err, ErrNoStartingCard)
}
