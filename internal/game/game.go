// internal/game/game.go

// Package game implements the session state machine: an explicit set
// of states gating which commands are accepted, guard predicates
// deciding whether a transition may fire, and action mutators that
// produce the next state plus notifications for the transport layer.
package game

import (
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pjcolombo/onecard/internal/models"
)

const (
	MinPlayers = 2
	MaxPlayers = 8

	DefaultHandSize       = 7
	DefaultTurnTimeout    = 30 * time.Second
	DefaultUnoCatchWindow = 5 * time.Second
	DefaultBotDelay       = 1500 * time.Millisecond
	DefaultTargetScore    = 500

	// unoCatchPenalty is the draw applied to a player caught with one
	// card and no declaration.
	unoCatchPenalty = 2

	// failedChallengePenalty is drawn on top of the pending stack by a
	// challenger whose wild-draw-four challenge fails.
	failedChallengePenalty = 2

	// Bounds for lobby configuration commands.
	minTargetScore  = 1
	maxTargetScore  = 10000
	maxTurnTimerSec = 600
)

// OnGameEndFunc handles a finished game, e.g. broadcasting results to
// the room that spawned it.
type OnGameEndFunc func(winnerID uuid.UUID, scores map[uuid.UUID]int)

// ChallengeState records, at wild-draw-four play time, everything a
// later bluff challenge needs. WasBluff is never recomputed from
// future state and never exposed to clients.
type ChallengeState struct {
	ChallengedID uuid.UUID
	ChallengerID uuid.UUID
	WasBluff     bool
	PriorColor   models.Color
}

// Game holds the entire state for a single session in memory. It is
// exclusively owned by one room; all command dispatch for the session
// is serialized through its mutex.
type Game struct {
	ID uuid.UUID

	HouseRules  models.HouseRules
	TargetScore int
	HandSize    int

	TurnTimeout    time.Duration
	UnoCatchWindow time.Duration
	BotDelay       time.Duration

	Players     []*models.Player
	DrawPile    []models.Card
	DiscardPile []models.Card

	CurrentColor     models.Color
	CurrentPlayerID  uuid.UUID
	Direction        Direction
	PendingDrawStack int
	HasDrawnThisTurn bool
	LastPlayedCard   *models.Card

	// ColorChooserID is non-nil exactly while a wild color choice is
	// outstanding.
	ColorChooserID uuid.UUID
	Challenge      *ChallengeState

	Scores        map[uuid.UUID]int
	RoundWinnerID uuid.UUID
	dealerIndex   int

	state        State
	turnEpoch    int
	turnDeadline time.Time
	turnTimer    *quartz.Timer

	// turnTimerEpoch and botTimerEpoch record the epoch each timer
	// was armed for, so unrelated accepted commands (an opponent's
	// uno call, a seat toggling to bot) do not restart a countdown
	// already running for the same turn.
	turnTimerEpoch int
	botTimerEpoch  int

	botTimers     map[uuid.UUID]*quartz.Timer
	continueTimer *quartz.Timer

	clock quartz.Clock
	log   *logrus.Entry
	mu    sync.Mutex

	// BroadcastFn sends an event to all players. If nil, no broadcast
	// is done.
	BroadcastFn func(ev Event)

	// BroadcastToPlayerFn sends an event to a single player.
	BroadcastToPlayerFn func(playerID uuid.UUID, ev Event)

	// Enqueue is the serialization point timer callbacks feed their
	// synthetic commands through. The room actor overrides it; the
	// default dispatches directly under the game lock.
	Enqueue func(cmd models.Command)

	// OnGameEnd is invoked once when the game reaches its terminal
	// state.
	OnGameEnd OnGameEndFunc
}

// NewGame builds an empty session in the lobby state. A nil clock
// falls back to the real clock, a nil logger to the standard one.
func NewGame(clock quartz.Clock, logger *logrus.Logger) *Game {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	id := uuid.New()
	g := &Game{
		ID:             id,
		TargetScore:    DefaultTargetScore,
		HandSize:       DefaultHandSize,
		TurnTimeout:    DefaultTurnTimeout,
		UnoCatchWindow: DefaultUnoCatchWindow,
		BotDelay:       DefaultBotDelay,
		Direction:      Clockwise,
		Scores:         make(map[uuid.UUID]int),
		botTimers:      make(map[uuid.UUID]*quartz.Timer),
		state:          StateLobby,
		clock:          clock,
		log:            logger.WithField("game", id),
	}
	g.Enqueue = g.Dispatch
	return g
}

// State returns the current stable state.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Dispatch runs one command through the state machine: the current
// state selects the candidate (guard, action, next) triples, the
// first triple whose guard holds fires, transient states are resolved
// to a stable state, and timers are re-armed. Illegal commands are
// rejected with no state change.
func (g *Game) Dispatch(cmd models.Command) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dispatch(cmd)
}

// dispatch assumes the lock is held.
func (g *Game) dispatch(cmd models.Command) {
	entries := transitionTable[g.state][cmd.Type]
	if len(entries) == 0 {
		g.reject(cmd, "command not accepted in state "+g.state.String())
		return
	}
	for _, tr := range entries {
		if tr.guard != nil && !tr.guard(g, cmd) {
			continue
		}
		if tr.action != nil {
			tr.action(g, cmd)
		}
		if tr.next != stateNone {
			g.setState(tr.next)
		}
		g.runTransients()
		g.armTimers()
		return
	}
	g.reject(cmd, "no transition guard holds for "+string(cmd.Type))
}

// runTransients resolves routing states synchronously until the
// machine rests in a state clients can observe.
func (g *Game) runTransients() {
	for g.state.Transient() {
		switch g.state {
		case StateDealing:
			g.setState(g.enterDealing())
		case StatePostPlay:
			g.setState(g.routePostPlay())
		case StateApplyEffect:
			g.setState(g.applyCardEffect())
		case StateCheckRoundEnd:
			g.setState(g.enterCheckRoundEnd())
		case StateCheckGameEnd:
			g.setState(g.enterCheckGameEnd())
		}
	}
}

func (g *Game) setState(next State) {
	if next == g.state {
		return
	}
	g.log.WithFields(logrus.Fields{"from": g.state, "to": next}).Debug("state transition")
	g.state = next
}

// reject surfaces a refused command to the requester only. No state
// change, no transition.
func (g *Game) reject(cmd models.Command, msg string) {
	g.log.WithFields(logrus.Fields{
		"command": cmd.Type,
		"player":  cmd.PlayerID,
		"state":   g.state,
	}).Debug("command rejected: " + msg)
	if cmd.PlayerID != uuid.Nil {
		g.fireToPlayer(cmd.PlayerID, Event{Type: EventRejected, Message: msg})
	}
}

// playerByID returns the seated player or nil. Assumes lock is held.
func (g *Game) playerByID(id uuid.UUID) *models.Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (g *Game) playerIndex(id uuid.UUID) int {
	for i, p := range g.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (g *Game) currentPlayer() *models.Player {
	return g.playerByID(g.CurrentPlayerID)
}

// discardTop returns the top card of the discard pile. Only valid
// while a round is active (the pile is never empty then).
func (g *Game) discardTop() models.Card {
	return g.DiscardPile[len(g.DiscardPile)-1]
}

// advanceTurn moves to the next seat in playDirection order, skipping
// extraSkip additional seats, and opens a fresh turn.
func (g *Game) advanceTurn(extraSkip int) {
	n := len(g.Players)
	if n == 0 {
		return
	}
	idx := g.playerIndex(g.CurrentPlayerID)
	steps := (1 + extraSkip) * int(g.Direction)
	idx = ((idx+steps)%n + n) % n
	g.CurrentPlayerID = g.Players[idx].ID
	g.HasDrawnThisTurn = false
	g.turnEpoch++
}

// armTimers reconciles timers with the current stable state after
// every accepted command: the turn countdown in playerTurn, a bot
// fallback whenever the seat that must act is automated, the round
// continuation at an all-bot table. A countdown already running for
// the current epoch is left alone; only an epoch change or a state
// change restarts it. Assumes lock is held.
func (g *Game) armTimers() {
	if g.state != StateRoundOver {
		g.stopContinueTimer()
	}
	switch g.state {
	case StatePlayerTurn:
		g.armTurnTimer()
		g.armBotTimer(g.CurrentPlayerID)
	case StateColorChoice:
		g.stopTurnTimer()
		g.armBotTimer(g.ColorChooserID)
	case StateChallengeWD4:
		g.stopTurnTimer()
		g.armBotTimer(g.CurrentPlayerID)
	case StateRoundOver:
		g.stopTurnTimer()
		g.stopBotTimers()
		g.armContinueTimer()
	default:
		g.stopTimers()
	}
}

func (g *Game) armTurnTimer() {
	if g.TurnTimeout <= 0 {
		g.stopTurnTimer()
		return
	}
	if g.turnTimer != nil && g.turnTimerEpoch == g.turnEpoch {
		return // countdown for this turn is already running
	}
	g.stopTurnTimer()
	g.turnDeadline = g.clock.Now().Add(g.TurnTimeout)
	g.turnTimerEpoch = g.turnEpoch
	epoch := g.turnEpoch
	g.turnTimer = g.clock.AfterFunc(g.TurnTimeout, func() {
		g.Enqueue(models.Command{Type: models.CmdTurnTimeout, Epoch: epoch})
	})
}

func (g *Game) armBotTimer(id uuid.UUID) {
	for other, t := range g.botTimers {
		if other != id {
			t.Stop()
			delete(g.botTimers, other)
		}
	}
	p := g.playerByID(id)
	if p == nil || !p.Automated {
		g.stopBotTimers()
		return
	}
	if _, ok := g.botTimers[id]; ok && g.botTimerEpoch == g.turnEpoch {
		return
	}
	g.stopBotTimers()
	epoch := g.turnEpoch
	g.botTimerEpoch = epoch
	g.botTimers[id] = g.clock.AfterFunc(g.BotDelay, func() {
		g.Enqueue(models.Command{Type: models.CmdBotAction, PlayerID: id, Epoch: epoch})
	})
}

// armContinueTimer keeps an all-bot table moving between rounds.
func (g *Game) armContinueTimer() {
	if g.continueTimer != nil {
		return
	}
	for _, p := range g.Players {
		if !p.Automated {
			return
		}
	}
	first := g.Players[0].ID
	g.continueTimer = g.clock.AfterFunc(g.BotDelay, func() {
		g.Enqueue(models.Command{Type: models.CmdContinueRound, PlayerID: first})
	})
}

func (g *Game) stopTurnTimer() {
	if g.turnTimer != nil {
		g.turnTimer.Stop()
		g.turnTimer = nil
	}
}

func (g *Game) stopBotTimers() {
	for id, t := range g.botTimers {
		t.Stop()
		delete(g.botTimers, id)
	}
}

func (g *Game) stopContinueTimer() {
	if g.continueTimer != nil {
		g.continueTimer.Stop()
		g.continueTimer = nil
	}
}

// stopTimers cancels the turn countdown and every fallback timer so a
// stale timer cannot fire against a since-mutated state. Assumes lock
// is held.
func (g *Game) stopTimers() {
	g.stopTurnTimer()
	g.stopBotTimers()
	g.stopContinueTimer()
}

// StopTimers cancels all timers; used by the room on teardown.
func (g *Game) StopTimers() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopTimers()
}

// CardCount returns the number of cards across the draw pile, the
// discard pile and every hand. It equals deck.Size at every stable
// state while a round is active.
func (g *Game) CardCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	total := len(g.DrawPile) + len(g.DiscardPile)
	for _, p := range g.Players {
		total += len(p.Hand)
	}
	return total
}
