// internal/game/actions.go
package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pjcolombo/onecard/internal/deck"
	"github.com/pjcolombo/onecard/internal/models"
)

// Actions are the only place mutation contracts live. Each assumes
// the game lock is held and the selecting guard already passed.

type actionFn func(g *Game, cmd models.Command)

func addPlayer(g *Game, cmd models.Command) {
	p := &models.Player{
		ID:        cmd.PlayerID,
		Name:      cmd.Name,
		Avatar:    cmd.Avatar,
		Automated: cmd.Automated,
	}
	g.Players = append(g.Players, p)
	g.Scores[p.ID] = 0
	g.log.WithFields(logrus.Fields{"player": p.ID, "name": p.Name}).Debug("player seated")
	g.fire(Event{Type: EventPlayerJoined, PlayerID: p.ID, Payload: map[string]interface{}{"name": p.Name}})
}

func removePlayer(g *Game, cmd models.Command) {
	idx := g.playerIndex(cmd.PlayerID)
	if idx < 0 {
		return
	}
	g.Players = append(g.Players[:idx], g.Players[idx+1:]...)
	delete(g.Scores, cmd.PlayerID)
	g.fire(Event{Type: EventPlayerLeft, PlayerID: cmd.PlayerID})
}

func setHouseRules(g *Game, cmd models.Command) {
	if err := g.HouseRules.Update(cmd.Rules); err != nil {
		g.reject(cmd, err.Error())
		return
	}
	g.fire(Event{Type: EventRulesUpdated, Payload: map[string]interface{}{"houseRules": g.HouseRules}})
}

func setTargetScore(g *Game, cmd models.Command) {
	g.TargetScore = cmd.Score
	g.fire(Event{Type: EventRulesUpdated, Payload: map[string]interface{}{"targetScore": g.TargetScore}})
}

func setTurnTimer(g *Game, cmd models.Command) {
	g.TurnTimeout = time.Duration(cmd.Seconds) * time.Second
	g.fire(Event{Type: EventRulesUpdated, Payload: map[string]interface{}{"turnTimerSec": cmd.Seconds}})
}

// convertToBot hands a mid-session leaver's seat to the bot fallback
// instead of unseating them; removing a seat while turn order, scores
// and a dealt round reference it would corrupt the session.
func convertToBot(g *Game, cmd models.Command) {
	p := g.playerByID(cmd.PlayerID)
	if p == nil {
		return
	}
	p.Automated = true
	g.fire(Event{Type: EventPlayerLeft, PlayerID: p.ID})
}

func setAutomated(g *Game, cmd models.Command) {
	if p := g.playerByID(cmd.PlayerID); p != nil {
		p.Automated = cmd.Automated
	}
}

// playCard moves the named card from the acting player's hand to the
// discard pile and records everything later routing needs: the color
// now in effect, a pending color choice for wilds, and the bluff
// verdict for wild-draw-fours, judged against the hand as it stands
// at play time.
func playCard(g *Game, cmd models.Command) {
	p := g.playerByID(cmd.PlayerID)
	card, _ := p.RemoveCard(cmd.CardID)
	g.DiscardPile = append(g.DiscardPile, card)
	played := card
	g.LastPlayedCard = &played

	priorColor := g.CurrentColor
	if card.IsWild() {
		if card.Value == models.WildDrawFour {
			g.Challenge = &ChallengeState{
				ChallengedID: p.ID,
				WasBluff:     holdsColor(p, priorColor),
				PriorColor:   priorColor,
			}
		}
		if len(p.Hand) > 0 {
			g.ColorChooserID = p.ID
		}
	} else {
		g.CurrentColor = card.Color
	}

	if len(p.Hand) == 1 && p.UnoCallTime == nil {
		now := g.clock.Now()
		p.UnoCallTime = &now
	}

	g.fire(Event{Type: EventCardPlayed, PlayerID: p.ID, Card: &played})
}

func holdsColor(p *models.Player, color models.Color) bool {
	if color == models.ColorNone {
		return false
	}
	for _, c := range p.Hand {
		if c.Color == color {
			return true
		}
	}
	return false
}

// drawForPlayer pulls count cards into the player's hand, recycling
// the discard pile as needed, and emits the public count plus the
// private card details. Partial draws are tolerated.
func (g *Game) drawForPlayer(p *models.Player, count int) {
	drawn, newDraw, newDiscard := deck.Draw(g.DrawPile, g.DiscardPile, count)
	g.DrawPile, g.DiscardPile = newDraw, newDiscard
	p.AddCards(drawn...)
	g.fire(Event{Type: EventCardsDrawn, PlayerID: p.ID, Count: len(drawn)})
	g.fireToPlayer(p.ID, Event{Type: EventPrivateDrawn, Cards: drawn})
}

// drawToHand resolves the current player's draw: the whole pending
// stack when a chain is active, a single card otherwise. The turn
// passes either way.
func drawToHand(g *Game, _ models.Command) {
	p := g.currentPlayer()
	count := 1
	if g.PendingDrawStack > 0 {
		count = g.PendingDrawStack
		g.PendingDrawStack = 0
	}
	g.HasDrawnThisTurn = true
	g.drawForPlayer(p, count)
	g.advanceTurn(0)
}

// timeoutDraw is drawToHand on behalf of a player whose countdown
// expired.
func timeoutDraw(g *Game, cmd models.Command) {
	g.log.WithField("player", g.CurrentPlayerID).Info("turn timed out, auto-drawing")
	drawToHand(g, cmd)
}

func rejectForcedDraw(g *Game, cmd models.Command) {
	g.reject(cmd, "force play is enabled and you hold a playable card")
}

func callUno(g *Game, cmd models.Command) {
	p := g.playerByID(cmd.PlayerID)
	if p == nil {
		return
	}
	p.HasCalledUno = true
	g.fire(Event{Type: EventUnoCalled, PlayerID: p.ID})
}

// catchUno penalizes a player sitting on one undeclared card inside
// the catch window.
func catchUno(g *Game, cmd models.Command) {
	target := g.playerByID(cmd.TargetID)
	g.drawForPlayer(target, unoCatchPenalty)
	g.fire(Event{Type: EventUnoCaught, PlayerID: cmd.PlayerID, TargetID: cmd.TargetID, Count: unoCatchPenalty})
}

func chooseColor(g *Game, cmd models.Command) {
	g.CurrentColor = cmd.Color
	g.ColorChooserID = uuid.Nil
	g.fire(Event{Type: EventColorChosen, PlayerID: cmd.PlayerID, Color: cmd.Color})
}

// challengeSucceeds settles a confirmed bluff: the pending stack
// redirects to the bluffer and the challenger keeps the turn.
func challengeSucceeds(g *Game, cmd models.Command) {
	ch := g.Challenge
	penalty := g.PendingDrawStack
	g.PendingDrawStack = 0
	g.Challenge = nil

	bluffer := g.playerByID(ch.ChallengedID)
	g.drawForPlayer(bluffer, penalty)
	g.fire(Event{
		Type:     EventChallengeResult,
		PlayerID: cmd.PlayerID,
		TargetID: ch.ChallengedID,
		Count:    penalty,
		Payload:  map[string]interface{}{"succeeded": true},
	})
}

// challengeFails settles a legitimate wild-draw-four: the challenger
// draws the stack plus a fixed surcharge and forfeits the turn.
func challengeFails(g *Game, cmd models.Command) {
	penalty := g.PendingDrawStack + failedChallengePenalty
	g.PendingDrawStack = 0
	g.Challenge = nil

	challenger := g.playerByID(cmd.PlayerID)
	g.drawForPlayer(challenger, penalty)
	g.fire(Event{
		Type:     EventChallengeResult,
		PlayerID: cmd.PlayerID,
		TargetID: cmd.PlayerID,
		Count:    penalty,
		Payload:  map[string]interface{}{"succeeded": false},
	})
	g.advanceTurn(0)
}

// acceptPenalty declines the challenge. The pending stack stays with
// the accepting player and resolves through the ordinary draw/stack
// machinery on their turn.
func acceptPenalty(g *Game, _ models.Command) {
	g.Challenge = nil
}

// resetGame clears all session state and cancels every timer. Seats
// and configuration survive; scores, hands and piles do not.
func resetGame(g *Game, _ models.Command) {
	g.stopTimers()
	for _, p := range g.Players {
		p.Hand = nil
		p.HasCalledUno = false
		p.UnoCallTime = nil
	}
	g.Scores = make(map[uuid.UUID]int)
	for _, p := range g.Players {
		g.Scores[p.ID] = 0
	}
	g.DrawPile, g.DiscardPile = nil, nil
	g.CurrentColor = models.ColorNone
	g.CurrentPlayerID = uuid.Nil
	g.Direction = Clockwise
	g.PendingDrawStack = 0
	g.HasDrawnThisTurn = false
	g.LastPlayedCard = nil
	g.Challenge = nil
	g.ColorChooserID = uuid.Nil
	g.RoundWinnerID = uuid.Nil
	g.dealerIndex = 0
	g.turnEpoch++
	g.fire(Event{Type: EventGameReset})
}

// --- transient state entries ---

// enterDealing builds and shuffles a fresh deck, deals hands, and
// selects the starting discard. Any failure aborts the whole deal and
// returns the room to the lobby; a half-dealt round is never left
// behind.
func (g *Game) enterDealing() State {
	pile := deck.New()
	deck.Shuffle(pile)

	hands, rest, err := deck.Deal(pile, len(g.Players), g.HandSize)
	if err != nil {
		g.log.WithError(err).Warn("deal aborted")
		g.fire(Event{Type: EventDealFailed, Message: err.Error()})
		return StateLobby
	}
	start, rest, err := deck.StartingDiscard(rest)
	if err != nil {
		g.log.WithError(err).Warn("no starting discard")
		g.fire(Event{Type: EventDealFailed, Message: err.Error()})
		return StateLobby
	}

	for i, p := range g.Players {
		p.Hand = hands[i]
		p.HasCalledUno = false
		p.UnoCallTime = nil
	}
	g.DrawPile = rest
	g.DiscardPile = []models.Card{start}
	played := start
	g.LastPlayedCard = &played
	g.PendingDrawStack = 0
	g.HasDrawnThisTurn = false
	g.Challenge = nil
	g.ColorChooserID = uuid.Nil
	g.Direction = Clockwise
	g.RoundWinnerID = uuid.Nil

	// A starting wild takes its color from the next colored card in
	// the pile; starting action cards carry no effect.
	g.CurrentColor = start.Color
	if start.IsWild() {
		for _, c := range g.DrawPile {
			if c.Color != models.ColorNone {
				g.CurrentColor = c.Color
				break
			}
		}
	}

	g.CurrentPlayerID = g.Players[g.dealerIndex%len(g.Players)].ID
	g.turnEpoch++

	g.fire(Event{Type: EventRoundStarted, Card: &played, Color: g.CurrentColor})
	for _, p := range g.Players {
		g.fireToPlayer(p.ID, Event{Type: EventPrivateHand, Cards: p.Hand})
	}
	g.fire(Event{Type: EventPlayerTurn, PlayerID: g.CurrentPlayerID})
	return StatePlayerTurn
}

// routePostPlay routes on the card that just landed: a finished hand
// short-circuits to round scoring, an outstanding color choice parks
// the machine until the wild's owner picks, a challengeable
// wild-draw-four hands the decision to the next player, and action
// cards fall through to their effects.
func (g *Game) routePostPlay() State {
	if roundOver(g, models.Command{}) {
		return StateCheckRoundEnd
	}
	if g.ColorChooserID != uuid.Nil {
		return StateColorChoice
	}
	if isBluffChallenge(g, models.Command{}) && g.Challenge != nil {
		g.PendingDrawStack += 4
		g.advanceTurn(0)
		g.Challenge.ChallengerID = g.CurrentPlayerID
		return StateChallengeWD4
	}
	if g.LastPlayedCard.Value.IsAction() || g.LastPlayedCard.IsWild() {
		return StateApplyEffect
	}
	g.advanceTurn(0)
	return StateCheckRoundEnd
}

// applyCardEffect resolves the played card's effect and passes the
// turn. In 2-player games a reverse behaves as a skip.
func (g *Game) applyCardEffect() State {
	switch g.LastPlayedCard.Value {
	case models.Skip:
		g.advanceTurn(1)
	case models.Reverse:
		if len(g.Players) == 2 {
			g.advanceTurn(1)
		} else {
			g.Direction = g.Direction.Flip()
			g.advanceTurn(0)
		}
	case models.DrawTwo:
		g.PendingDrawStack += 2
		g.advanceTurn(0)
	case models.WildDrawFour:
		g.PendingDrawStack += 4
		g.advanceTurn(0)
	default:
		// plain wild: color was chosen, nothing else to apply
		g.advanceTurn(0)
	}
	return StateCheckRoundEnd
}

// enterCheckRoundEnd scores and announces a finished round, or opens
// the next turn.
func (g *Game) enterCheckRoundEnd() State {
	if !roundOver(g, models.Command{}) {
		g.fire(Event{Type: EventPlayerTurn, PlayerID: g.CurrentPlayerID})
		return StatePlayerTurn
	}

	var winner *models.Player
	var loserHands [][]models.Card
	for _, p := range g.Players {
		if len(p.Hand) == 0 && winner == nil {
			winner = p
		} else {
			loserHands = append(loserHands, p.Hand)
		}
	}
	score := CalculateRoundScore(loserHands)
	g.Scores[winner.ID] += score
	g.RoundWinnerID = winner.ID
	g.log.WithFields(logrus.Fields{"winner": winner.ID, "score": score}).Info("round over")

	g.fire(Event{
		Type:     EventRoundOver,
		PlayerID: winner.ID,
		Count:    score,
		Payload:  map[string]interface{}{"scores": g.scoresPayload()},
	})
	return StateRoundOver
}

// enterCheckGameEnd ends the game at the target score, otherwise
// rotates the dealer and re-deals; players never pass back through
// the lobby between rounds.
func (g *Game) enterCheckGameEnd() State {
	if !gameOver(g, models.Command{}) {
		g.dealerIndex++
		return StateDealing
	}

	winnerID := uuid.Nil
	best := -1
	for _, p := range g.Players {
		if s := g.Scores[p.ID]; s > best {
			best = s
			winnerID = p.ID
		}
	}
	g.log.WithFields(logrus.Fields{"winner": winnerID, "score": best}).Info("game over")
	g.fire(Event{
		Type:     EventGameOver,
		PlayerID: winnerID,
		Payload:  map[string]interface{}{"scores": g.scoresPayload()},
	})
	if g.OnGameEnd != nil {
		scores := make(map[uuid.UUID]int, len(g.Scores))
		for id, s := range g.Scores {
			scores[id] = s
		}
		g.OnGameEnd(winnerID, scores)
	}
	return StateGameOver
}

func (g *Game) scoresPayload() map[string]int {
	out := make(map[string]int, len(g.Scores))
	for id, s := range g.Scores {
		out[id.String()] = s
	}
	return out
}
