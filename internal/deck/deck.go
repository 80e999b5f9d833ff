// internal/deck/deck.go

// Package deck holds the pure card engine: deck construction,
// shuffling, play legality, drawing with recycle, dealing, and
// starting-discard selection. Nothing in here touches game state.
package deck

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/pjcolombo/onecard/internal/models"
)

// Size is the fixed number of cards in a full deck: per color one
// zero and two each of 1-9, skip, reverse and draw-two, plus four
// wilds and four wild-draw-fours.
const Size = 108

var (
	// ErrNotEnoughCards is returned when the deck cannot supply a
	// full initial deal for the configured players and hand size.
	ErrNotEnoughCards = errors.New("deck: not enough cards to deal")

	// ErrNoStartingCard is returned when no valid starting discard
	// exists (empty pile, or every card is a wild-draw-four).
	ErrNoStartingCard = errors.New("deck: no playable starting card")
)

// New builds the full 108-card deck in deterministic order.
func New() []models.Card {
	cards := make([]models.Card, 0, Size)
	for _, color := range models.Colors {
		cards = append(cards, newCard(color, 0))
		for v := models.Value(1); v <= 9; v++ {
			cards = append(cards, newCard(color, v), newCard(color, v))
		}
		for _, v := range []models.Value{models.Skip, models.Reverse, models.DrawTwo} {
			cards = append(cards, newCard(color, v), newCard(color, v))
		}
	}
	for i := 0; i < 4; i++ {
		cards = append(cards,
			newCard(models.ColorNone, models.Wild),
			newCard(models.ColorNone, models.WildDrawFour))
	}
	return cards
}

func newCard(color models.Color, value models.Value) models.Card {
	return models.Card{ID: uuid.New(), Color: color, Value: value}
}

// Shuffle permutes the pile in place with a Fisher-Yates walk from
// the end. Indices come from crypto/rand; a weak PRNG is not
// acceptable for fairness-sensitive shuffling.
func Shuffle(cards []models.Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := randIndex(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// randIndex returns a uniform index in [0, n).
func randIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failing means the host has no entropy source;
		// there is no sane fallback for a fairness-sensitive shuffle.
		panic(fmt.Sprintf("deck: crypto/rand failed: %v", err))
	}
	return int(v.Int64())
}

// IsValidPlay reports whether card may be played on top of the
// current discard. While a draw chain is pending only a same-kind
// stacking card is legal, and only under the matching house rule.
// Otherwise wilds are always legal, as is any card matching the
// current color or the discard top's value.
func IsValidPlay(card, discardTop models.Card, currentColor models.Color, rules models.HouseRules, pendingDrawStack int) bool {
	if pendingDrawStack > 0 {
		switch discardTop.Value {
		case models.DrawTwo:
			return rules.StackDrawTwo && card.Value == models.DrawTwo
		case models.WildDrawFour:
			return rules.StackDrawFour && card.Value == models.WildDrawFour
		default:
			return false
		}
	}
	if card.IsWild() {
		return true
	}
	if card.Color == currentColor {
		return true
	}
	return card.Value == discardTop.Value
}

// ValidPlays filters hand down to the currently legal cards. The
// result may be empty.
func ValidPlays(hand []models.Card, discardTop models.Card, currentColor models.Color, rules models.HouseRules, pendingDrawStack int) []models.Card {
	var plays []models.Card
	for _, c := range hand {
		if IsValidPlay(c, discardTop, currentColor, rules, pendingDrawStack) {
			plays = append(plays, c)
		}
	}
	return plays
}

// Draw removes up to count cards from the top of the draw pile,
// recycling the discard pile (minus its top card) into a fresh draw
// pile when it runs dry. If both piles are exhausted it stops early;
// partial draws are not an error and callers must handle them.
func Draw(drawPile, discardPile []models.Card, count int) (drawn, newDraw, newDiscard []models.Card) {
	drawn = make([]models.Card, 0, count)
	for len(drawn) < count {
		if len(drawPile) == 0 {
			recycled := Recycle(discardPile)
			if len(recycled) == 0 {
				break
			}
			drawPile = recycled
			discardPile = discardPile[len(discardPile)-1:]
		}
		drawn = append(drawn, drawPile[0])
		drawPile = drawPile[1:]
	}
	return drawn, drawPile, discardPile
}

// Recycle returns a shuffled copy of all but the top discard card,
// or nil when the discard pile holds one card or fewer.
func Recycle(discardPile []models.Card) []models.Card {
	if len(discardPile) <= 1 {
		return nil
	}
	recycled := make([]models.Card, len(discardPile)-1)
	copy(recycled, discardPile[:len(discardPile)-1])
	Shuffle(recycled)
	return recycled
}

// Deal hands out playerCount hands of handSize cards round-robin, one
// card per player per pass, so no hand's composition depends on a
// contiguous run of the deck.
func Deal(pile []models.Card, playerCount, handSize int) (hands [][]models.Card, rest []models.Card, err error) {
	need := playerCount * handSize
	if need > len(pile) {
		return nil, pile, fmt.Errorf("%w: need %d, have %d", ErrNotEnoughCards, need, len(pile))
	}
	hands = make([][]models.Card, playerCount)
	for i := range hands {
		hands[i] = make([]models.Card, 0, handSize)
	}
	for round := 0; round < handSize; round++ {
		for p := 0; p < playerCount; p++ {
			hands[p] = append(hands[p], pile[0])
			pile = pile[1:]
		}
	}
	return hands, pile, nil
}

// StartingDiscard pops cards off the pile until one that is not a
// wild-draw-four surfaces. Each rejected wild-draw-four goes back at
// a uniformly random position among the remaining cards rather than
// predictably to the bottom.
func StartingDiscard(pile []models.Card) (models.Card, []models.Card, error) {
	playable := false
	for _, c := range pile {
		if c.Value != models.WildDrawFour {
			playable = true
			break
		}
	}
	if !playable {
		return models.Card{}, pile, ErrNoStartingCard
	}

	for {
		card := pile[0]
		pile = pile[1:]
		if card.Value != models.WildDrawFour {
			return card, pile, nil
		}
		j := randIndex(len(pile) + 1)
		pile = append(pile, models.Card{})
		copy(pile[j+1:], pile[j:])
		pile[j] = card
	}
}
