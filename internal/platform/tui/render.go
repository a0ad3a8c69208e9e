package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/sand"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorSand:     lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
	core.ColorSandDark: lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
	core.ColorCursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorHUD:      lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorGray:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

const (
	halfTop    uint8 = 1 << iota // Upper grid row of the character is filled
	halfBottom                   // Lower grid row of the character is filled
	halfMoving                   // At least one half holds a falling grain
)

// HalfBlockCanvas is a sand.Renderer that packs two grid rows into one
// character using the upper and lower half block glyphs. Positions are in
// grid units, so the engine should run with a cell size of 1.
type HalfBlockCanvas struct {
	width  int
	height int // In characters
	masks  []uint8
}

var _ sand.Renderer = (*HalfBlockCanvas)(nil)

// NewHalfBlockCanvas creates a canvas covering width x height characters.
func NewHalfBlockCanvas(width, height int) *HalfBlockCanvas {
	return &HalfBlockCanvas{
		width:  width,
		height: height,
		masks:  make([]uint8, width*height),
	}
}

// Reset empties the canvas.
func (c *HalfBlockCanvas) Reset() {
	clear(c.masks)
}

// FillCell marks a size x size block of grid cells as filled.
func (c *HalfBlockCanvas) FillCell(x, y, size int, mode sand.Mode) {
	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			c.fill(x+dx, y+dy, mode)
		}
	}
}

func (c *HalfBlockCanvas) fill(x, row int, mode sand.Mode) {
	cy := row / 2
	if x < 0 || x >= c.width || row < 0 || cy >= c.height {
		return
	}
	i := cy*c.width + x
	if row%2 == 0 {
		c.masks[i] |= halfTop
	} else {
		c.masks[i] |= halfBottom
	}
	if mode == sand.ModeFalling {
		c.masks[i] |= halfMoving
	}
}

// Glyph returns the character and color for the character cell at (x, y).
func (c *HalfBlockCanvas) Glyph(x, y int) (rune, core.Color, bool) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return ' ', core.ColorDefault, false
	}
	m := c.masks[y*c.width+x]

	color := core.ColorSandDark
	if m&halfMoving != 0 {
		color = core.ColorSand
	}
	switch m & (halfTop | halfBottom) {
	case halfTop | halfBottom:
		return '█', color, true
	case halfTop:
		return '▀', color, true
	case halfBottom:
		return '▄', color, true
	}
	return ' ', core.ColorDefault, false
}

// Flush copies every filled character onto the screen. Empty characters are
// left untouched so earlier drawing such as the cursor shows through.
func (c *HalfBlockCanvas) Flush(dst *core.Screen) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			if r, color, ok := c.Glyph(x, y); ok {
				dst.SetCell(x, y, core.Cell{Rune: r, Color: color})
			}
		}
	}
}
