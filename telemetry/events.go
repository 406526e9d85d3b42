// Package telemetry provides event notification, match statistics, replay
// recording, and experiment output for the arena. Collaborators (audio,
// HUD, shake) consume events; none of them feed back into the simulation.
package telemetry

import (
	"github.com/mkrall/crowdctl/components"
	"github.com/mkrall/crowdctl/systems"
)

// EventType identifies simulation events exposed to collaborators.
type EventType uint8

const (
	EventCollision EventType = iota
	EventElimination
	EventPickup
	EventRoundWon
	EventCountdownTick
)

// Event is a single notification emitted by the round orchestrator.
type Event struct {
	Type EventType

	// Position: collision midpoint or elimination position.
	X, Y float32

	// Impact magnitude in [0,1] for collision events.
	Impact float32

	// CombatantID: eliminated combatant or round winner; -1 for a drawn
	// round.
	CombatantID int16
	Color       components.Color

	// PowerUp type for pickup events.
	PowerUp systems.PowerUpType

	// Countdown value for countdown-tick events.
	Value int
}

// NewCollisionEvent creates a collision event at the contact midpoint.
func NewCollisionEvent(midX, midY, impact float32) Event {
	return Event{Type: EventCollision, X: midX, Y: midY, Impact: impact}
}

// NewEliminationEvent creates an elimination event.
func NewEliminationEvent(id uint8, x, y float32, color components.Color) Event {
	return Event{Type: EventElimination, CombatantID: int16(id), X: x, Y: y, Color: color}
}

// NewPickupEvent creates a power-up collection event.
func NewPickupEvent(t systems.PowerUpType) Event {
	return Event{Type: EventPickup, PowerUp: t}
}

// NewRoundWonEvent creates a round-won event. winner is -1 for a draw.
func NewRoundWonEvent(winner int16) Event {
	return Event{Type: EventRoundWon, CombatantID: winner}
}

// NewCountdownTickEvent creates a countdown-tick event.
func NewCountdownTickEvent(value int) Event {
	return Event{Type: EventCountdownTick, Value: value, CombatantID: -1}
}
