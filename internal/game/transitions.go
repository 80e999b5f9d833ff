// internal/game/transitions.go
package game

import "github.com/pjcolombo/onecard/internal/models"

// transition is one (guard, action, next) triple. A nil guard always
// holds, a nil action mutates nothing, and next == stateNone keeps the
// machine in its current state.
type transition struct {
	guard  guardFn
	action actionFn
	next   State
}

// transitionTable is the whole machine: the current state selects the
// commands it accepts, and for each command the candidate triples are
// tried in order until one guard holds. Commands absent from a state's
// map, and commands whose every guard fails, are rejected with no
// state change. Transient states own no entries; they resolve
// synchronously inside dispatch before any further command is read.
//
// Populated in init: the bot entries close the loop table -> botAct ->
// dispatch -> table, which a package-level composite literal cannot
// express.
var transitionTable map[State]map[models.CommandType][]transition

func init() {
	transitionTable = map[State]map[models.CommandType][]transition{
		StateLobby: {
			models.CmdAddPlayer: {
				{guard: canSeatPlayer, action: addPlayer, next: stateNone},
			},
			models.CmdRemovePlayer: {
				{guard: isSeated, action: removePlayer, next: stateNone},
			},
			models.CmdSetHouseRules: {
				{guard: isSeated, action: setHouseRules, next: stateNone},
			},
			models.CmdSetTargetScore: {
				{guard: and(isSeated, validTargetScore), action: setTargetScore, next: stateNone},
			},
			models.CmdSetTurnTimer: {
				{guard: and(isSeated, validTurnTimer), action: setTurnTimer, next: stateNone},
			},
			models.CmdSetAutomated: {
				{guard: isSeated, action: setAutomated, next: stateNone},
			},
			models.CmdStartGame: {
				{guard: and(isSeated, hasEnoughPlayers), next: StateDealing},
			},
			models.CmdResetGame: {
				{action: resetGame, next: StateLobby},
			},
		},

		StatePlayerTurn: {
			models.CmdPlayCard: {
				{guard: and(isCurrentPlayer, isValidCardPlay), action: playCard, next: StatePostPlay},
			},
			models.CmdDrawCard: {
				// force play: a draw while holding a legal card is refused
				// before the plain draw entry is even consulted.
				{guard: mustForcePlay, action: rejectForcedDraw, next: stateNone},
				{guard: canDraw, action: drawToHand, next: StateCheckRoundEnd},
			},
			models.CmdCallUno: {
				{guard: isSeated, action: callUno, next: stateNone},
			},
			models.CmdCatchUno: {
				{guard: canCatchUno, action: catchUno, next: stateNone},
			},
			models.CmdTurnTimeout: {
				{guard: turnTimerExpired, action: timeoutDraw, next: StateCheckRoundEnd},
			},
			models.CmdBotAction: {
				{guard: botTurnLive, action: botAct, next: stateNone},
			},
			models.CmdSetAutomated: {
				{guard: isSeated, action: setAutomated, next: stateNone},
			},
			models.CmdRemovePlayer: {
				{guard: isSeated, action: convertToBot, next: stateNone},
			},
			models.CmdResetGame: {
				{action: resetGame, next: StateLobby},
			},
		},

		StateColorChoice: {
			models.CmdChooseColor: {
				{guard: and(isColorChooser, validChosenColor), action: chooseColor, next: StatePostPlay},
			},
			models.CmdCallUno: {
				{guard: isSeated, action: callUno, next: stateNone},
			},
			models.CmdCatchUno: {
				{guard: canCatchUno, action: catchUno, next: stateNone},
			},
			models.CmdBotAction: {
				{guard: botTurnLive, action: botAct, next: stateNone},
			},
			models.CmdSetAutomated: {
				{guard: isSeated, action: setAutomated, next: stateNone},
			},
			models.CmdRemovePlayer: {
				{guard: isSeated, action: convertToBot, next: stateNone},
			},
			models.CmdResetGame: {
				{action: resetGame, next: StateLobby},
			},
		},

		StateChallengeWD4: {
			models.CmdChallengeWD4: {
				{guard: and(isChallenger, wasBluffing), action: challengeSucceeds, next: StateCheckRoundEnd},
				{guard: isChallenger, action: challengeFails, next: StateCheckRoundEnd},
			},
			models.CmdAcceptWD4: {
				{guard: isChallenger, action: acceptPenalty, next: StateCheckRoundEnd},
			},
			// Stacking another wild-draw-four, where the house rule allows
			// it, answers the challenge by raising instead.
			models.CmdPlayCard: {
				{guard: and(isCurrentPlayer, canStack, isValidCardPlay), action: playCard, next: StatePostPlay},
			},
			models.CmdCallUno: {
				{guard: isSeated, action: callUno, next: stateNone},
			},
			models.CmdCatchUno: {
				{guard: canCatchUno, action: catchUno, next: stateNone},
			},
			models.CmdBotAction: {
				{guard: botTurnLive, action: botAct, next: stateNone},
			},
			models.CmdSetAutomated: {
				{guard: isSeated, action: setAutomated, next: stateNone},
			},
			models.CmdRemovePlayer: {
				{guard: isSeated, action: convertToBot, next: stateNone},
			},
			models.CmdResetGame: {
				{action: resetGame, next: StateLobby},
			},
		},

		StateRoundOver: {
			models.CmdContinueRound: {
				{guard: isSeated, next: StateCheckGameEnd},
			},
			models.CmdSetAutomated: {
				{guard: isSeated, action: setAutomated, next: stateNone},
			},
			models.CmdRemovePlayer: {
				{guard: isSeated, action: convertToBot, next: stateNone},
			},
			models.CmdResetGame: {
				{action: resetGame, next: StateLobby},
			},
		},

		StateGameOver: {
			models.CmdRemovePlayer: {
				{guard: isSeated, action: removePlayer, next: stateNone},
			},
			models.CmdSetAutomated: {
				{guard: isSeated, action: setAutomated, next: stateNone},
			},
			models.CmdResetGame: {
				{action: resetGame, next: StateLobby},
			},
		},
	}
}
