// internal/game/events.go
package game

import (
	"github.com/google/uuid"

	"github.com/pjcolombo/onecard/internal/models"
)

// EventType is an enum-like type for broadcasting game notifications.
type EventType string

const (
	EventPlayerJoined    EventType = "player_joined"
	EventPlayerLeft      EventType = "player_left"
	EventRulesUpdated    EventType = "rules_updated"
	EventRoundStarted    EventType = "round_started"
	EventPlayerTurn      EventType = "player_turn"    // public: whose turn it is
	EventCardPlayed      EventType = "card_played"    // public: includes the card
	EventCardsDrawn      EventType = "cards_drawn"    // public: count only
	EventPrivateDrawn    EventType = "private_drawn"  // private: the drawn cards
	EventPrivateHand     EventType = "private_hand"   // private: full hand after a deal
	EventColorChosen     EventType = "color_chosen"   // public
	EventUnoCalled       EventType = "uno_called"     // public
	EventUnoCaught       EventType = "uno_caught"     // public: caught player penalized
	EventChallengeResult EventType = "challenge_result"
	EventRoundOver       EventType = "round_over" // public: round scores
	EventGameOver        EventType = "game_over"  // public: winner + final scores
	EventGameReset       EventType = "game_reset"
	EventDealFailed      EventType = "deal_failed" // public: round aborted to lobby
	EventRejected        EventType = "rejected" // private: command refused
)

// Event is one notification produced by the state machine for the
// transport layer to fan out. Public events go through BroadcastFn,
// private ones through BroadcastToPlayerFn.
type Event struct {
	Type     EventType    `json:"type"`
	PlayerID uuid.UUID    `json:"playerId,omitempty"`
	TargetID uuid.UUID    `json:"targetId,omitempty"`
	Card     *models.Card `json:"card,omitempty"`
	Cards    []models.Card `json:"cards,omitempty"`
	Color    models.Color `json:"color,omitempty"`
	Count    int          `json:"count,omitempty"`
	Message  string       `json:"message,omitempty"`

	Payload map[string]interface{} `json:"payload,omitempty"`
}

// fire broadcasts an event to all players. Assumes lock is held.
func (g *Game) fire(ev Event) {
	if g.BroadcastFn != nil {
		g.BroadcastFn(ev)
	}
}

// fireToPlayer sends an event only to a specific player. Assumes lock
// is held.
func (g *Game) fireToPlayer(playerID uuid.UUID, ev Event) {
	if g.BroadcastToPlayerFn != nil {
		g.BroadcastToPlayerFn(playerID, ev)
	}
}
