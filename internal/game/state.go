// internal/game/state.go
package game

// State is the current node of the game state machine. Transient
// states are pure routing nodes resolved synchronously inside one
// command dispatch; a client can never observe them.
type State int

const (
	StateLobby State = iota
	StateDealing
	StatePlayerTurn
	StatePostPlay
	StateColorChoice
	StateChallengeWD4
	StateApplyEffect
	StateCheckRoundEnd
	StateRoundOver
	StateCheckGameEnd
	StateGameOver
)

// stateNone is used in transition entries that do not change state.
const stateNone State = -1

func (s State) String() string {
	switch s {
	case StateLobby:
		return "lobby"
	case StateDealing:
		return "dealing"
	case StatePlayerTurn:
		return "player_turn"
	case StatePostPlay:
		return "post_play"
	case StateColorChoice:
		return "color_choice"
	case StateChallengeWD4:
		return "challenge_wd4"
	case StateApplyEffect:
		return "apply_effect"
	case StateCheckRoundEnd:
		return "check_round_end"
	case StateRoundOver:
		return "round_over"
	case StateCheckGameEnd:
		return "check_game_end"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Transient reports whether the state is resolved synchronously
// during dispatch rather than waiting for a command.
func (s State) Transient() bool {
	switch s {
	case StateDealing, StatePostPlay, StateApplyEffect, StateCheckRoundEnd, StateCheckGameEnd:
		return true
	default:
		return false
	}
}

// Direction is the turn rotation order around the table.
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

func (d Direction) String() string {
	if d == CounterClockwise {
		return "counterclockwise"
	}
	return "clockwise"
}

// Flip reverses the rotation.
func (d Direction) Flip() Direction {
	return -d
}
