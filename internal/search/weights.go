package search

import "github.com/TheKrainBow/othello/internal/othello"

// positionalWeights rewards corners and edges and penalises the squares that
// give the opponent access to a corner. Never mutated.
var positionalWeights = [othello.Size][othello.Size]float64{
	{120, -20, 20, 5, 5, 20, -20, 120},
	{-20, -40, -5, -5, -5, -5, -40, -20},
	{20, -5, 15, 3, 3, 15, -5, 20},
	{5, -5, 3, 3, 3, 3, -5, 5},
	{5, -5, 3, 3, 3, 3, -5, 5},
	{20, -5, 15, 3, 3, 15, -5, 20},
	{-20, -40, -5, -5, -5, -5, -40, -20},
	{120, -20, 20, 5, 5, 20, -20, 120},
}

func PositionalWeight(row, col int) float64 {
	return positionalWeights[row][col]
}
