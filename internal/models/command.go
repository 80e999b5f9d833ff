// internal/models/command.go
package models

import "github.com/google/uuid"

// CommandType identifies one of the discrete, already-authenticated
// events the game core accepts from the transport layer.
type CommandType string

const (
	CmdAddPlayer      CommandType = "add_player"
	CmdRemovePlayer   CommandType = "remove_player"
	CmdSetHouseRules  CommandType = "set_house_rules"
	CmdSetTargetScore CommandType = "set_target_score"
	CmdSetTurnTimer   CommandType = "set_turn_timer"
	CmdStartGame      CommandType = "start_game"
	CmdPlayCard       CommandType = "play_card"
	CmdDrawCard       CommandType = "draw_card"
	CmdCallUno        CommandType = "call_uno"
	CmdCatchUno       CommandType = "catch_uno"
	CmdChooseColor    CommandType = "choose_color"
	CmdChallengeWD4   CommandType = "challenge_wd4"
	CmdAcceptWD4      CommandType = "accept_wd4"
	CmdContinueRound  CommandType = "continue_round"
	CmdResetGame      CommandType = "reset_game"
	CmdSetAutomated   CommandType = "set_automated"

	// Internal commands enqueued by timers, never by a client.
	CmdTurnTimeout CommandType = "turn_timeout"
	CmdBotAction   CommandType = "bot_action"
)

// Command is one player-tagged event. Only the fields relevant to the
// Type are populated.
type Command struct {
	Type     CommandType `json:"type"`
	PlayerID uuid.UUID   `json:"playerId,omitempty"`

	CardID    uuid.UUID              `json:"cardId,omitempty"`   // play_card
	TargetID  uuid.UUID              `json:"targetId,omitempty"` // catch_uno
	Color     Color                  `json:"color,omitempty"`    // choose_color
	Name      string                 `json:"name,omitempty"`     // add_player
	Avatar    string                 `json:"avatar,omitempty"`   // add_player
	Automated bool                   `json:"automated,omitempty"`
	Rules     map[string]interface{} `json:"rules,omitempty"`   // set_house_rules
	Score     int                    `json:"score,omitempty"`   // set_target_score
	Seconds   int                    `json:"seconds,omitempty"` // set_turn_timer

	// Epoch carries the turn epoch a timer was armed for, so a stale
	// timer firing against a since-mutated state is a no-op.
	Epoch int `json:"-"`
}
