package systems

import (
	"math"
	"math/rand"

	"github.com/mkrall/crowdctl/config"
)

// PowerUpType identifies a pickup variant. Only a subset is wired to
// gameplay effects; the rest are defined but never spawned.
type PowerUpType uint8

const (
	SpeedBoost PowerUpType = iota
	Shield
	SizeUp
	SizeDown
	TripleDash
	Teleport
	Freeze
	Magnet
)

// spawnable is the subset the scheduler actually places on the platform.
var spawnable = []PowerUpType{SpeedBoost, Shield, SizeUp, SizeDown, TripleDash}

func (t PowerUpType) String() string {
	switch t {
	case SpeedBoost:
		return "speed_boost"
	case Shield:
		return "shield"
	case SizeUp:
		return "size_up"
	case SizeDown:
		return "size_down"
	case TripleDash:
		return "triple_dash"
	case Teleport:
		return "teleport"
	case Freeze:
		return "freeze"
	case Magnet:
		return "magnet"
	}
	return "unknown"
}

// PowerUp is a transient pickup on the platform.
type PowerUp struct {
	X, Y     float32
	Type     PowerUpType
	Radius   float32
	Age      float32 // ms
	Lifetime float32 // ms
	Active   bool
}

// Effect is an applied-effect record on a combatant. The modifiers it
// defines are the only ones active; a second effect of the same type simply
// wins by construction order, there is no merge rule.
//
// Charge grants happen at pickup, dispatched on the type; the record's
// modifiers (shield, size, speed, bonus charges) are carried for the
// duration but not consulted by collision or elimination logic.
type Effect struct {
	Type     PowerUpType
	Duration float32 // ms
	Elapsed  float32
	Active   bool

	SpeedMult    float32
	SizeMult     float32
	Shield       bool
	BonusCharges int
}

// NewEffect builds the effect record for a pickup type.
func NewEffect(t PowerUpType) Effect {
	e := Effect{
		Type:      t,
		Duration:  float32(config.Cfg().PowerUps.EffectDuration),
		Active:    true,
		SpeedMult: 1,
		SizeMult:  1,
	}

	switch t {
	case SpeedBoost:
		e.SpeedMult = 1.5
	case SizeUp:
		e.SizeMult = 1.5
	case SizeDown:
		e.SizeMult = 0.6
	case Shield:
		e.Shield = true
	case TripleDash:
		e.BonusCharges = 2
	}
	return e
}

// Update ages the effect and reports whether it is still active.
func (e *Effect) Update(dtMs float32) bool {
	if !e.Active {
		return false
	}
	e.Elapsed += dtMs
	if e.Elapsed >= e.Duration {
		e.Active = false
	}
	return e.Active
}

// PowerUpScheduler spawns pickups on a fixed interval, capped at a maximum
// number of simultaneously active instances.
type PowerUpScheduler struct {
	powerups   []*PowerUp
	spawnTimer float32
	rng        *rand.Rand
}

// NewPowerUpScheduler creates an empty scheduler.
func NewPowerUpScheduler(rng *rand.Rand) *PowerUpScheduler {
	return &PowerUpScheduler{rng: rng}
}

// Update ages active pickups, expires stale ones, and spawns a new pickup
// when the interval elapses and the active cap allows it. Spawn positions
// track the platform's current radius, so the spawn area shrinks with it.
func (s *PowerUpScheduler) Update(dtMs float32, plat *Platform) {
	cfg := config.Cfg().PowerUps

	s.spawnTimer += dtMs
	if s.spawnTimer >= float32(cfg.SpawnInterval) {
		s.spawnTimer = 0
		if s.activeCount() < cfg.MaxActive {
			s.spawn(plat)
		}
	}

	alive := s.powerups[:0]
	for _, p := range s.powerups {
		p.Age += dtMs
		if p.Age >= p.Lifetime {
			p.Active = false
		}
		if p.Active {
			alive = append(alive, p)
		}
	}
	s.powerups = alive
}

// spawn places one pickup at a uniformly random angle and a random radius
// within the configured fraction of the current platform radius.
func (s *PowerUpScheduler) spawn(plat *Platform) {
	cfg := config.Cfg().PowerUps

	angle := s.rng.Float64() * 2 * math.Pi
	dist := s.rng.Float64() * float64(plat.Radius) * cfg.SpawnRadiusFrac

	s.powerups = append(s.powerups, &PowerUp{
		X:        plat.CenterX + float32(math.Cos(angle)*dist),
		Y:        plat.CenterY + float32(math.Sin(angle)*dist),
		Type:     spawnable[s.rng.Intn(len(spawnable))],
		Radius:   float32(cfg.Radius),
		Lifetime: float32(cfg.Lifetime),
		Active:   true,
	})
}

// CheckPickup claims the first active pickup overlapping the given circle,
// in insertion order, and returns its type. At most one pickup is claimed
// per call; a simultaneous second claimant waits for its own check.
func (s *PowerUpScheduler) CheckPickup(x, y, radius float32) (PowerUpType, bool) {
	for i, p := range s.powerups {
		if !p.Active {
			continue
		}
		dx := p.X - x
		dy := p.Y - y
		reach := p.Radius + radius
		if dx*dx+dy*dy < reach*reach {
			p.Active = false
			s.powerups = append(s.powerups[:i], s.powerups[i+1:]...)
			return p.Type, true
		}
	}
	return 0, false
}

// Place inserts a specific pickup, bypassing the spawn interval and cap.
// Used for deterministic setups.
func (s *PowerUpScheduler) Place(p *PowerUp) {
	s.powerups = append(s.powerups, p)
}

// Active returns the currently active pickups, in insertion order.
func (s *PowerUpScheduler) Active() []*PowerUp {
	return s.powerups
}

// Clear drops all pickups and resets the spawn timer. Idempotent.
func (s *PowerUpScheduler) Clear() {
	s.powerups = s.powerups[:0]
	s.spawnTimer = 0
}

func (s *PowerUpScheduler) activeCount() int {
	return len(s.powerups)
}
