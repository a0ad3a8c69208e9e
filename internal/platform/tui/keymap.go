package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sandfall/internal/core"
)

// SandboxKeyMap defines the key bindings of the sandbox screen.
type SandboxKeyMap struct {
	Pause       key.Binding
	Step        key.Binding
	Clear       key.Binding
	BrushGrow   key.Binding
	BrushShrink key.Binding
	Screenshot  key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns keybindings to show in the mini help view.
func (k SandboxKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Step, k.Clear, k.BrushShrink, k.BrushGrow, k.Back, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k SandboxKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Step, k.Clear},
		{k.BrushShrink, k.BrushGrow, k.Screenshot},
		{k.Back, k.Quit},
	}
}

// DefaultSandboxKeyMap returns the default sandbox key bindings.
func DefaultSandboxKeyMap() SandboxKeyMap {
	return SandboxKeyMap{
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		Step: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "step"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear"),
		),
		BrushGrow: key.NewBinding(
			key.WithKeys("]", "+", "="),
			key.WithHelp("]", "bigger brush"),
		),
		BrushShrink: key.NewBinding(
			key.WithKeys("[", "-"),
			key.WithHelp("[", "smaller brush"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key and mouse messages to sandbox input.
// This centralizes bindings and makes them testable.
type KeyMapper struct {
	keys SandboxKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultSandboxKeyMap()}
}

// Keys returns the bindings, for help views.
func (km *KeyMapper) Keys() SandboxKeyMap {
	return km.keys
}

// MapKey translates a key message to a sandbox action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit
	case key.Matches(msg, km.keys.Back):
		return core.ActionBack
	case key.Matches(msg, km.keys.Pause):
		return core.ActionPause
	case key.Matches(msg, km.keys.Step):
		return core.ActionStep
	case key.Matches(msg, km.keys.Clear):
		return core.ActionClear
	case key.Matches(msg, km.keys.BrushGrow):
		return core.ActionBrushGrow
	case key.Matches(msg, km.keys.BrushShrink):
		return core.ActionBrushShrink
	}
	return core.ActionNone
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return action == core.ActionQuit
}

// MapMouse folds a mouse event into the pointer state. Terminal rows hold
// two grid rows each, so the pointer is reported in half-row units and
// lands on the upper half of the character under the mouse.
// Events below the sandbox area (rows >= viewRows) deactivate the pointer.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, p *core.Pointer, viewRows int) {
	p.X = msg.X
	p.Y = msg.Y * 2
	p.Active = msg.Y >= 0 && msg.Y < viewRows

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			p.Left = true
		case tea.MouseButtonRight:
			p.Right = true
		}
	case tea.MouseActionRelease:
		// Terminals rarely say which button was released
		p.Left, p.Right = false, false
	case tea.MouseActionMotion:
		switch msg.Button {
		case tea.MouseButtonLeft:
			p.Left = true
		case tea.MouseButtonRight:
			p.Right = true
		case tea.MouseButtonNone:
			p.Left, p.Right = false, false
		}
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionHistory
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab", "h":
		return MenuActionHistory
	}

	return MenuActionNone
}
