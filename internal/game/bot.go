// internal/game/bot.go
package game

import (
	"github.com/pjcolombo/onecard/internal/deck"
	"github.com/pjcolombo/onecard/internal/models"
)

// botAct plays one no-frills move for an automated seat by
// re-dispatching an ordinary command: the fallback goes through the
// same guards and transitions a human's move would. The nested
// dispatch runs under the lock already held by the outer one.
func botAct(g *Game, cmd models.Command) {
	// The timer that delivered this command is spent; drop it so the
	// re-arm after the nested dispatch starts a fresh one even when
	// the turn epoch has not moved (a bot's wild play waits on its
	// own color choice).
	if t, ok := g.botTimers[cmd.PlayerID]; ok {
		t.Stop()
		delete(g.botTimers, cmd.PlayerID)
	}

	p := g.playerByID(cmd.PlayerID)
	if p == nil {
		return
	}

	switch g.state {
	case StateColorChoice:
		g.dispatch(models.Command{
			Type:     models.CmdChooseColor,
			PlayerID: p.ID,
			Color:    preferredColor(p.Hand),
		})
	case StateChallengeWD4:
		g.dispatch(models.Command{Type: models.CmdAcceptWD4, PlayerID: p.ID})
	default:
		plays := deck.ValidPlays(p.Hand, g.discardTop(), g.CurrentColor, g.HouseRules, g.PendingDrawStack)
		if len(plays) == 0 {
			g.dispatch(models.Command{Type: models.CmdDrawCard, PlayerID: p.ID})
			return
		}
		if len(p.Hand) == 2 {
			g.dispatch(models.Command{Type: models.CmdCallUno, PlayerID: p.ID})
		}
		g.dispatch(models.Command{
			Type:     models.CmdPlayCard,
			PlayerID: p.ID,
			CardID:   plays[0].ID,
		})
	}
}

// preferredColor picks the color the hand holds the most of. A hand of
// nothing but wilds falls back to red.
func preferredColor(hand []models.Card) models.Color {
	counts := make(map[models.Color]int)
	for _, c := range hand {
		if c.Color != models.ColorNone {
			counts[c.Color]++
		}
	}
	best := models.Red
	bestCount := 0
	for _, color := range models.Colors {
		if counts[color] > bestCount {
			best = color
			bestCount = counts[color]
		}
	}
	return best
}
