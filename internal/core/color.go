package core

// Color is a foreground color hint for a screen cell.
// The platform maps each value to a terminal style.
type Color uint8

const (
	ColorDefault Color = iota
	ColorSnakeHead
	ColorSnakeBody
	ColorFruit
	ColorGolden
	ColorPortal
	ColorRepulsion
	ColorBoost
	ColorFusion
	ColorGrid
	ColorHUD
	ColorAlert
)
