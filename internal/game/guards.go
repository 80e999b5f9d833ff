// internal/game/guards.go
package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/pjcolombo/onecard/internal/deck"
	"github.com/pjcolombo/onecard/internal/models"
)

// Guards are pure predicates over (current state, incoming command).
// They never mutate; mutation contracts live in the actions.

type guardFn func(g *Game, cmd models.Command) bool

// and chains guards; all must hold.
func and(guards ...guardFn) guardFn {
	return func(g *Game, cmd models.Command) bool {
		for _, guard := range guards {
			if !guard(g, cmd) {
				return false
			}
		}
		return true
	}
}

func hasEnoughPlayers(g *Game, _ models.Command) bool {
	n := len(g.Players)
	return n >= MinPlayers && n <= MaxPlayers
}

func canSeatPlayer(g *Game, cmd models.Command) bool {
	return len(g.Players) < MaxPlayers && g.playerByID(cmd.PlayerID) == nil
}

func isCurrentPlayer(g *Game, cmd models.Command) bool {
	return cmd.PlayerID == g.CurrentPlayerID
}

func isValidCardPlay(g *Game, cmd models.Command) bool {
	p := g.playerByID(cmd.PlayerID)
	if p == nil {
		return false
	}
	card, ok := p.CardByID(cmd.CardID)
	if !ok {
		return false
	}
	return deck.IsValidPlay(card, g.discardTop(), g.CurrentColor, g.HouseRules, g.PendingDrawStack)
}

func canDraw(g *Game, cmd models.Command) bool {
	return isCurrentPlayer(g, cmd) && !g.HasDrawnThisTurn
}

// mustForcePlay holds when the forcePlay house rule is on and the
// current player has at least one legal card; draw requests are then
// rejected.
func mustForcePlay(g *Game, cmd models.Command) bool {
	if !g.HouseRules.ForcePlay || !isCurrentPlayer(g, cmd) {
		return false
	}
	p := g.currentPlayer()
	if p == nil {
		return false
	}
	return len(deck.ValidPlays(p.Hand, g.discardTop(), g.CurrentColor, g.HouseRules, g.PendingDrawStack)) > 0
}

// canStack holds when a draw chain is active, the matching house rule
// is on, and the current player actually holds a stacking card.
func canStack(g *Game, _ models.Command) bool {
	if g.PendingDrawStack == 0 || g.LastPlayedCard == nil {
		return false
	}
	p := g.currentPlayer()
	if p == nil {
		return false
	}
	switch g.LastPlayedCard.Value {
	case models.DrawTwo:
		if !g.HouseRules.StackDrawTwo {
			return false
		}
		return holdsValue(p, models.DrawTwo)
	case models.WildDrawFour:
		if !g.HouseRules.StackDrawFour {
			return false
		}
		return holdsValue(p, models.WildDrawFour)
	default:
		return false
	}
}

func holdsValue(p *models.Player, v models.Value) bool {
	for _, c := range p.Hand {
		if c.Value == v {
			return true
		}
	}
	return false
}

func roundOver(g *Game, _ models.Command) bool {
	for _, p := range g.Players {
		if len(p.Hand) == 0 {
			return true
		}
	}
	return false
}

func gameOver(g *Game, _ models.Command) bool {
	for _, score := range g.Scores {
		if score >= g.TargetScore {
			return true
		}
	}
	return false
}

// canCatchUno holds when the target is someone else, sits on exactly
// one undeclared card, and the catch window has not elapsed since the
// hand reached one card. Boundary is exact: elapsed <= window passes.
func canCatchUno(g *Game, cmd models.Command) bool {
	if cmd.TargetID == cmd.PlayerID {
		return false
	}
	target := g.playerByID(cmd.TargetID)
	if target == nil || g.playerByID(cmd.PlayerID) == nil {
		return false
	}
	if len(target.Hand) != 1 || target.HasCalledUno {
		return false
	}
	return target.UnoCallTime != nil && g.withinCatchWindow(*target.UnoCallTime)
}

func (g *Game) withinCatchWindow(start time.Time) bool {
	return g.clock.Now().Sub(start) <= g.UnoCatchWindow
}

func isBluffChallenge(g *Game, _ models.Command) bool {
	return g.HouseRules.BluffChallenge &&
		g.LastPlayedCard != nil &&
		g.LastPlayedCard.Value == models.WildDrawFour
}

// isChallenger holds for the player the challenge was handed to when
// the wild-draw-four landed.
func isChallenger(g *Game, cmd models.Command) bool {
	return g.Challenge != nil && cmd.PlayerID == g.Challenge.ChallengerID
}

// wasBluffing reads the verdict recorded when the wild-draw-four was
// played; it is never recomputed from the hand's later contents.
func wasBluffing(g *Game, _ models.Command) bool {
	return g.Challenge != nil && g.Challenge.WasBluff
}

// turnTimerExpired re-validates a timeout tick against current state:
// the epoch it was armed for must still be live and the deadline must
// actually have passed. A stale tick is a no-op, not an error.
func turnTimerExpired(g *Game, cmd models.Command) bool {
	return cmd.Epoch == g.turnEpoch && !g.clock.Now().Before(g.turnDeadline)
}

func isColorChooser(g *Game, cmd models.Command) bool {
	return g.ColorChooserID != uuid.Nil && cmd.PlayerID == g.ColorChooserID
}

func validChosenColor(_ *Game, cmd models.Command) bool {
	switch cmd.Color {
	case models.Red, models.Yellow, models.Green, models.Blue:
		return true
	default:
		return false
	}
}

func validTargetScore(_ *Game, cmd models.Command) bool {
	return cmd.Score >= minTargetScore && cmd.Score <= maxTargetScore
}

func validTurnTimer(_ *Game, cmd models.Command) bool {
	return cmd.Seconds >= 0 && cmd.Seconds <= maxTurnTimerSec
}

func isSeated(g *Game, cmd models.Command) bool {
	return g.playerByID(cmd.PlayerID) != nil
}

// botTurnLive re-validates a bot fallback tick: the seat must still be
// automated, still the one that has to act, and the epoch current.
func botTurnLive(g *Game, cmd models.Command) bool {
	p := g.playerByID(cmd.PlayerID)
	if p == nil || !p.Automated || cmd.Epoch != g.turnEpoch {
		return false
	}
	switch g.state {
	case StateColorChoice:
		return cmd.PlayerID == g.ColorChooserID
	default:
		return cmd.PlayerID == g.CurrentPlayerID
	}
}
