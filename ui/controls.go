// Package ui holds everything raylib-facing around the core game: keyboard
// input sources, the HUD, and the settings overlay. Keeping it separate
// from the game package lets headless runs skip raylib entirely.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mkrall/crowdctl/input"
)

// Binding maps one player's actions to raylib key codes.
type Binding struct {
	Up, Down, Left, Right int32
	Dash                  int32
}

// DefaultBindings returns the built-in layouts for up to four local
// players, in seat order.
func DefaultBindings() []Binding {
	return []Binding{
		{Up: rl.KeyW, Down: rl.KeyS, Left: rl.KeyA, Right: rl.KeyD, Dash: rl.KeyLeftShift},
		{Up: rl.KeyUp, Down: rl.KeyDown, Left: rl.KeyLeft, Right: rl.KeyRight, Dash: rl.KeyRightShift},
		{Up: rl.KeyI, Down: rl.KeyK, Left: rl.KeyJ, Right: rl.KeyL, Dash: rl.KeyU},
		{Up: rl.KeyKp8, Down: rl.KeyKp5, Left: rl.KeyKp4, Right: rl.KeyKp6, Dash: rl.KeyKp0},
	}
}

// Keyboard is an input source bound to raylib key state.
type Keyboard struct {
	binding Binding
}

// NewKeyboard creates a keyboard source with the given binding.
func NewKeyboard(binding Binding) *Keyboard {
	return &Keyboard{binding: binding}
}

// Actions samples the current key state.
func (k *Keyboard) Actions() input.Actions {
	return input.Actions{
		Up:    rl.IsKeyDown(k.binding.Up),
		Down:  rl.IsKeyDown(k.binding.Down),
		Left:  rl.IsKeyDown(k.binding.Left),
		Right: rl.IsKeyDown(k.binding.Right),
		Dash:  rl.IsKeyDown(k.binding.Dash),
	}
}
