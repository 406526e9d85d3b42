// Package input defines the logical action vocabulary shared by human and
// bot combatants. The controller only ever sees an Actions set, so bots are
// mechanically constrained to the same inputs a human can produce.
package input

// Actions is the per-tick logical action set for one combatant.
type Actions struct {
	Up, Down, Left, Right bool
	Dash                  bool
}

// Intent returns the movement intent as a vector, diagonals normalized so
// diagonal speed matches axis-aligned speed.
func (a Actions) Intent() (x, y float32) {
	if a.Up {
		y -= 1
	}
	if a.Down {
		y += 1
	}
	if a.Left {
		x -= 1
	}
	if a.Right {
		x += 1
	}
	if x != 0 && y != 0 {
		x *= 0.707
		y *= 0.707
	}
	return x, y
}

// Source yields the action set for one combatant each frame.
// Device-bound sources read hardware; script-bound sources are driven
// programmatically (bots, tests).
type Source interface {
	Actions() Actions
}

// Script is a Source whose actions are set by code.
type Script struct {
	acts Actions
}

// Set replaces the current action set.
func (s *Script) Set(a Actions) {
	s.acts = a
}

// Actions returns the last set actions.
func (s *Script) Actions() Actions {
	return s.acts
}
