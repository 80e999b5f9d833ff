// internal/models/house_rules.go
package models

import "fmt"

// HouseRules captures the optional rule variants, each independently
// togglable from the lobby.
type HouseRules struct {
	// StackDrawTwo allows answering a draw-two with another draw-two,
	// passing the grown obligation along.
	StackDrawTwo bool `json:"stackDrawTwo"`

	// StackDrawFour allows answering a wild-draw-four with another
	// wild-draw-four.
	StackDrawFour bool `json:"stackDrawFour"`

	// BluffChallenge allows the player following a wild-draw-four to
	// contest its legality.
	BluffChallenge bool `json:"bluffChallenge"`

	// ForcePlay requires a player holding a legal card to play it
	// rather than draw.
	ForcePlay bool `json:"forcePlay"`
}

// Update applies the rules present in newRules and leaves the rest
// untouched.
func (rules *HouseRules) Update(newRules map[string]interface{}) error {
	assignBool := func(field *bool, key string) error {
		if val, exists := newRules[key]; exists && val != nil {
			b, ok := val.(bool)
			if !ok {
				return fmt.Errorf("invalid type for %s", key)
			}
			*field = b
		}
		return nil
	}

	if err := assignBool(&rules.StackDrawTwo, "stackDrawTwo"); err != nil {
		return err
	}
	if err := assignBool(&rules.StackDrawFour, "stackDrawFour"); err != nil {
		return err
	}
	if err := assignBool(&rules.BluffChallenge, "bluffChallenge"); err != nil {
		return err
	}
	return assignBool(&rules.ForcePlay, "forcePlay")
}
