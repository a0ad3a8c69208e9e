package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for the sandbox.
const (
	ColorDefault  Color = iota
	ColorSand           // Falling grains
	ColorSandDark       // Resting grains
	ColorCursor         // Brush outline
	ColorHUD            // Status line
	ColorGray
)
