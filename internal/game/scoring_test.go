// internal/game/scoring_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pjcolombo/onecard/internal/models"
)

func TestCalculateRoundScoreSingleHand(t *testing.T) {
	hands := [][]models.Card{{card(models.Red, 5), card(models.ColorNone, models.Wild)}}
	assert.Equal(t, 55, CalculateRoundScore(hands))
}

func TestCalculateRoundScore(t *testing.T) {
	hands := [][]models.Card{
		{card(models.Red, 5), card(models.ColorNone, models.Wild)},       // 5 + 50
		{card(models.Blue, models.Skip), card(models.Green, 0)},          // 20 + 0
		{card(models.ColorNone, models.WildDrawFour)},                    // 50
	}
	assert.Equal(t, 125, CalculateRoundScore(hands))
}

func TestCalculateRoundScoreEmpty(t *testing.T) {
	assert.Equal(t, 0, CalculateRoundScore(nil))
	assert.Equal(t, 0, CalculateRoundScore([][]models.Card{{}, {}}))
}
