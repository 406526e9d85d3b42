// Package ai implements the autonomous-agent decision layer. A Planner is
// a script-bound input source: it observes the arena on a reaction-delayed
// cadence, plans a movement direction and dash request, and converts the
// plan into the same logical action set a human produces. Reaction delay is
// the primary difficulty lever; aim noise is secondary.
package ai

import (
	"math"
	"math/rand"
	"strings"

	"github.com/mkrall/crowdctl/config"
	"github.com/mkrall/crowdctl/input"
)

// Difficulty selects reaction latency and aim accuracy.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

// ParseDifficulty maps a config string to a Difficulty, defaulting to Medium.
// Matching is case-insensitive.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(s) {
	case "easy":
		return Easy
	case "hard":
		return Hard
	case "expert":
		return Expert
	}
	return Medium
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	case Expert:
		return "expert"
	}
	return "medium"
}

// reactionTime returns the decision interval in ms.
func (d Difficulty) reactionTime() float32 {
	switch d {
	case Easy:
		return 500
	case Hard:
		return 100
	case Expert:
		return 50
	}
	return 250
}

// aimAccuracy returns steering accuracy in (0,1]; higher means straighter
// lines toward the planned point.
func (d Difficulty) aimAccuracy() float32 {
	switch d {
	case Easy:
		return 0.6
	case Hard:
		return 0.95
	case Expert:
		return 0.99
	}
	return 0.8
}

// State is the current tactical posture.
type State uint8

const (
	Opportunistic State = iota
	Aggressive
	Defensive
	Survival
)

func (s State) String() string {
	switch s {
	case Aggressive:
		return "aggressive"
	case Defensive:
		return "defensive"
	case Survival:
		return "survival"
	}
	return "opportunistic"
}

// Opponent is one other combatant as seen by the planner.
type Opponent struct {
	ID     uint8
	X, Y   float32
	VX, VY float32
	Alive  bool
}

// View is the planner's per-tick observation of the arena.
type View struct {
	SelfX, SelfY   float32
	DashCharges    int
	Opponents      []Opponent
	CenterX        float32
	CenterY        float32
	PlatformRadius float32
}

// Planner drives one bot combatant.
type Planner struct {
	id         uint8
	difficulty Difficulty
	state      State

	reaction float32
	accuracy float32

	decisionTimer float32
	targetID      int16 // cached target; -1 when none, revalidated each tick

	dirX, dirY float32
	wantDash   bool

	rng *rand.Rand
}

// NewPlanner creates a planner for the combatant with the given id.
func NewPlanner(id uint8, d Difficulty, rng *rand.Rand) *Planner {
	return &Planner{
		id:         id,
		difficulty: d,
		state:      Opportunistic,
		reaction:   d.reactionTime(),
		accuracy:   d.aimAccuracy(),
		targetID:   -1,
		rng:        rng,
	}
}

// State returns the current tactical state.
func (p *Planner) State() State {
	return p.state
}

// Difficulty returns the planner's difficulty tier.
func (p *Planner) Difficulty() Difficulty {
	return p.difficulty
}

// Update accumulates decision time and replans once per reaction interval.
// Between decisions the previous plan keeps executing.
func (p *Planner) Update(dtMs float32, v View) {
	p.decisionTimer += dtMs
	if p.decisionTimer < p.reaction {
		return
	}
	p.decisionTimer = 0

	p.assess(v)

	switch p.state {
	case Survival:
		p.planSurvival(v)
	case Aggressive:
		p.planAttack(v)
	case Defensive:
		p.planDefense(v)
	default:
		p.planOpportunistic(v)
	}
}

// Actions converts the plan into the shared logical action set. Direction
// components are thresholded at 0.3, so the bot is mechanically constrained
// to the same eight-way movement a human has.
func (p *Planner) Actions() input.Actions {
	var a input.Actions

	if p.dirX*p.dirX+p.dirY*p.dirY > 0.01 {
		if p.dirX > 0.3 {
			a.Right = true
		} else if p.dirX < -0.3 {
			a.Left = true
		}
		if p.dirY > 0.3 {
			a.Down = true
		} else if p.dirY < -0.3 {
			a.Up = true
		}
	}

	a.Dash = p.wantDash
	return a
}

// assess picks a tactical state, in precedence order: Survival when close
// to the edge, then Defensive/Aggressive by nearby threat count, otherwise
// Opportunistic.
func (p *Planner) assess(v View) {
	cfg := config.Cfg().AI

	distToEdge := v.PlatformRadius - length(v.SelfX-v.CenterX, v.SelfY-v.CenterY)
	edgeRatio := distToEdge / v.PlatformRadius

	threats := 0
	for _, o := range v.Opponents {
		if !o.Alive {
			continue
		}
		if length(o.X-v.SelfX, o.Y-v.SelfY) < float32(cfg.ThreatRadius) {
			threats++
		}
	}

	switch {
	case edgeRatio < float32(cfg.DangerThreshold):
		p.state = Survival
	case threats >= 2:
		p.state = Defensive
	case threats == 1:
		p.state = Aggressive
	default:
		p.state = Opportunistic
	}
}

// planSurvival steers toward the platform center, dashing when far from it.
func (p *Planner) planSurvival(v View) {
	toX := v.CenterX - v.SelfX
	toY := v.CenterY - v.SelfY
	d := length(toX, toY)

	if d <= 10 {
		p.dirX, p.dirY = 0, 0
		p.wantDash = false
		return
	}

	p.dirX, p.dirY = p.noisyDirection(toX/d, toY/d, 50)
	p.wantDash = d > 100 && v.DashCharges > 0
}

// planAttack chases a living opponent's predicted position, keeping the
// cached target while it survives rather than flitting to whoever is
// nearest each tick. Prediction is linear extrapolation of current
// velocity; the dash window commits a charge only when closing the gap is
// worth it.
func (p *Planner) planAttack(v View) {
	target, ok := p.currentTarget(v)
	if !ok {
		target, ok = p.nearestOpponent(v)
	}
	if !ok {
		// Nobody to chase; stale target or empty arena.
		p.targetID = -1
		p.planOpportunistic(v)
		return
	}
	p.targetID = int16(target.ID)

	predSec := float32(config.Cfg().AI.PredictionTime) / 1000
	predX := target.X + target.VX*predSec
	predY := target.Y + target.VY*predSec

	toX := predX - v.SelfX
	toY := predY - v.SelfY
	d := length(toX, toY)

	if d <= 10 {
		p.dirX, p.dirY = 0, 0
		p.wantDash = false
		return
	}

	// Aiming is a finer task than fleeing, so the noise scale is smaller.
	p.dirX, p.dirY = p.noisyDirection(toX/d, toY/d, 30)
	p.wantDash = d > 80 && d < 200 && v.DashCharges > 0
}

// planDefense retreats from the centroid of nearby threats, blended 60/40
// with a pull toward the platform center so retreat stays on the platform.
// One dash charge is reserved for escape.
func (p *Planner) planDefense(v View) {
	cfg := config.Cfg().AI

	var cx, cy float32
	count := 0
	for _, o := range v.Opponents {
		if !o.Alive {
			continue
		}
		if length(o.X-v.SelfX, o.Y-v.SelfY) < float32(cfg.DefenseRadius) {
			cx += o.X
			cy += o.Y
			count++
		}
	}

	if count == 0 {
		p.planOpportunistic(v)
		return
	}

	cx /= float32(count)
	cy /= float32(count)

	awayX := v.SelfX - cx
	awayY := v.SelfY - cy

	toCenterX := v.CenterX - v.SelfX
	toCenterY := v.CenterY - v.SelfY
	cl := length(toCenterX, toCenterY)
	if cl > 0 {
		toCenterX /= cl
		toCenterY /= cl
	}

	dirX := awayX*0.6 + toCenterX*0.4
	dirY := awayY*0.6 + toCenterY*0.4
	dl := length(dirX, dirY)
	if dl > 0 {
		dirX /= dl
		dirY /= dl
	}

	p.dirX, p.dirY = dirX, dirY
	p.wantDash = v.DashCharges > 1
}

// planOpportunistic patrols an orbit at ~30% of the platform radius: inward
// when too far, outward when too close, tangentially otherwise.
func (p *Planner) planOpportunistic(v View) {
	toX := v.CenterX - v.SelfX
	toY := v.CenterY - v.SelfY
	d := length(toX, toY)
	ideal := v.PlatformRadius * 0.3

	p.wantDash = false

	switch {
	case d > ideal+20:
		p.dirX, p.dirY = toX/d, toY/d
	case d < ideal-20:
		if d > 0 {
			p.dirX, p.dirY = -toX/d, -toY/d
		} else {
			p.dirX, p.dirY = 1, 0
		}
	default:
		tl := length(-toY, toX)
		p.dirX, p.dirY = -toY/tl, toX/tl
	}
}

// currentTarget revalidates the cached target against this tick's view.
func (p *Planner) currentTarget(v View) (Opponent, bool) {
	if p.targetID < 0 {
		return Opponent{}, false
	}
	for _, o := range v.Opponents {
		if int16(o.ID) == p.targetID && o.Alive {
			return o, true
		}
	}
	return Opponent{}, false
}

// nearestOpponent returns the closest living opponent, if any.
func (p *Planner) nearestOpponent(v View) (Opponent, bool) {
	var nearest Opponent
	found := false
	minDist := float32(math.MaxFloat32)

	for _, o := range v.Opponents {
		if !o.Alive {
			continue
		}
		d := length(o.X-v.SelfX, o.Y-v.SelfY)
		if d < minDist {
			minDist = d
			nearest = o
			found = true
		}
	}
	return nearest, found
}

// noisyDirection perturbs a unit direction with uniform noise scaled by
// (1 - accuracy) and the given scale, then renormalizes. Low-accuracy tiers
// wander badly on purpose.
func (p *Planner) noisyDirection(x, y, scale float32) (float32, float32) {
	noise := (1 - p.accuracy) * scale
	x += (p.rng.Float32()*2 - 1) * noise
	y += (p.rng.Float32()*2 - 1) * noise

	l := length(x, y)
	if l > 0 {
		return x / l, y / l
	}
	return 0, 0
}

func length(x, y float32) float32 {
	return float32(math.Sqrt(float64(x*x + y*y)))
}

