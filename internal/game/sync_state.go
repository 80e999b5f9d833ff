// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"

	"github.com/pjcolombo/onecard/internal/deck"
	"github.com/pjcolombo/onecard/internal/models"
)

// ObfPlayer is the view of one seat from another player's
// perspective: hand size but never hand contents.
type ObfPlayer struct {
	PlayerID      uuid.UUID `json:"playerId"`
	Name          string    `json:"name"`
	Avatar        string    `json:"avatar,omitempty"`
	HandSize      int       `json:"handSize"`
	HasCalledUno  bool      `json:"hasCalledUno"`
	Automated     bool      `json:"automated"`
	IsCurrentTurn bool      `json:"isCurrentTurn"`
	Score         int       `json:"score"`
}

// ObfGameState is the public snapshot of a session. It never reveals
// hand contents, pile order, or the recorded bluff verdict of an open
// challenge.
type ObfGameState struct {
	GameID           uuid.UUID        `json:"gameId"`
	State            string           `json:"state"`
	HouseRules       models.HouseRules `json:"houseRules"`
	TargetScore      int              `json:"targetScore"`
	CurrentPlayerID  uuid.UUID        `json:"currentPlayerId"`
	CurrentColor     models.Color     `json:"currentColor"`
	PlayDirection    string           `json:"playDirection"`
	DrawPileSize     int              `json:"drawPileSize"`
	DiscardSize      int              `json:"discardSize"`
	DiscardTop       *models.Card     `json:"discardTop,omitempty"`
	PendingDrawStack int              `json:"pendingDrawStack"`
	ColorChooserID   uuid.UUID        `json:"colorChooserId,omitempty"`
	ChallengedID     uuid.UUID        `json:"challengedId,omitempty"`
	RoundWinnerID    uuid.UUID        `json:"roundWinnerId,omitempty"`
	Players          []ObfPlayer      `json:"players"`
}

// PlayerState is ObfGameState plus the requesting player's own hand
// and the set of cards they could legally play right now.
type PlayerState struct {
	ObfGameState
	Hand       []models.Card `json:"hand"`
	ValidPlays []models.Card `json:"validPlays"`
}

// GetObfuscatedState generates the public snapshot.
func (g *Game) GetObfuscatedState() ObfGameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.obfuscatedState()
}

// GetPlayerState generates the snapshot for one seated player,
// including their hand. An unknown player gets the public snapshot
// with no hand.
func (g *Game) GetPlayerState(forPlayer uuid.UUID) PlayerState {
	g.mu.Lock()
	defer g.mu.Unlock()

	ps := PlayerState{ObfGameState: g.obfuscatedState()}
	p := g.playerByID(forPlayer)
	if p == nil {
		return ps
	}
	ps.Hand = append([]models.Card(nil), p.Hand...)
	if g.state == StatePlayerTurn && p.ID == g.CurrentPlayerID && len(g.DiscardPile) > 0 {
		ps.ValidPlays = deck.ValidPlays(p.Hand, g.discardTop(), g.CurrentColor, g.HouseRules, g.PendingDrawStack)
	}
	return ps
}

// obfuscatedState assumes the lock is held.
func (g *Game) obfuscatedState() ObfGameState {
	obf := ObfGameState{
		GameID:           g.ID,
		State:            g.state.String(),
		HouseRules:       g.HouseRules,
		TargetScore:      g.TargetScore,
		CurrentPlayerID:  g.CurrentPlayerID,
		CurrentColor:     g.CurrentColor,
		PlayDirection:    g.Direction.String(),
		DrawPileSize:     len(g.DrawPile),
		DiscardSize:      len(g.DiscardPile),
		PendingDrawStack: g.PendingDrawStack,
		ColorChooserID:   g.ColorChooserID,
		RoundWinnerID:    g.RoundWinnerID,
	}
	if len(g.DiscardPile) > 0 {
		top := g.discardTop()
		obf.DiscardTop = &top
	}
	if g.Challenge != nil {
		obf.ChallengedID = g.Challenge.ChallengedID
	}

	for _, pl := range g.Players {
		obf.Players = append(obf.Players, ObfPlayer{
			PlayerID:      pl.ID,
			Name:          pl.Name,
			Avatar:        pl.Avatar,
			HandSize:      len(pl.Hand),
			HasCalledUno:  pl.HasCalledUno,
			Automated:     pl.Automated,
			IsCurrentTurn: pl.ID == g.CurrentPlayerID,
			Score:         g.Scores[pl.ID],
		})
	}
	return obf
}
