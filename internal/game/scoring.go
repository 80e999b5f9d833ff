// internal/game/scoring.go
package game

import "github.com/pjcolombo/onecard/internal/models"

// CalculateRoundScore totals the point values of every card left in
// the losing hands. The round winner is credited with the sum.
func CalculateRoundScore(loserHands [][]models.Card) int {
	total := 0
	for _, hand := range loserHands {
		for _, c := range hand {
			total += c.Points()
		}
	}
	return total
}
