// internal/models/player.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Player is one seat at the table. The hand is owned exclusively by
// the game aggregate; nothing outside the game mutates it.
type Player struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar,omitempty"`

	Hand []Card `json:"-"`

	// HasCalledUno is set when the player declares their last card.
	HasCalledUno bool `json:"hasCalledUno"`

	// UnoCallTime marks the moment the hand reached one card. It
	// anchors the catch window and is cleared once the hand grows
	// beyond one card again.
	UnoCallTime *time.Time `json:"-"`

	// Automated marks a seat under bot control, either by design or
	// because the player disconnected past the grace period.
	Automated bool `json:"automated"`
}

// CardByID returns the card with the given id from the hand.
func (p *Player) CardByID(id uuid.UUID) (Card, bool) {
	for _, c := range p.Hand {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// RemoveCard takes the card with the given id out of the hand.
func (p *Player) RemoveCard(id uuid.UUID) (Card, bool) {
	for i, c := range p.Hand {
		if c.ID == id {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return c, true
		}
	}
	return Card{}, false
}

// AddCards appends drawn cards to the hand. Growing past one card
// clears any outstanding uno declaration.
func (p *Player) AddCards(cards ...Card) {
	p.Hand = append(p.Hand, cards...)
	if len(p.Hand) > 1 {
		p.HasCalledUno = false
		p.UnoCallTime = nil
	}
}
