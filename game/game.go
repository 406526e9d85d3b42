// Package game orchestrates the arena match: round lifecycle, combatant
// entities, physics, power-ups, AI planners, and telemetry. It has no
// rendering or audio dependencies and runs identically headless.
package game

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/mkrall/crowdctl/ai"
	"github.com/mkrall/crowdctl/components"
	"github.com/mkrall/crowdctl/config"
	"github.com/mkrall/crowdctl/input"
	"github.com/mkrall/crowdctl/systems"
	"github.com/mkrall/crowdctl/telemetry"
)

// Phase is the round lifecycle state.
type Phase uint8

const (
	PhaseCountdown Phase = iota
	PhaseActive
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhaseActive:
		return "active"
	case PhaseGameOver:
		return "game_over"
	}
	return "unknown"
}

// Options configures a new match.
type Options struct {
	Seed       int64
	Combatants int    // total combatants; 0 uses the config default
	Bots       int    // AI-driven combatants, assigned the highest IDs
	Difficulty string // bot difficulty; "" uses the config default
	OutputDir  string // "" disables CSV output
	Record     bool   // capture a replay
}

// Game holds the complete match state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	mapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Body,
		components.Combatant,
		components.Dash,
	]
	filter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Body,
		components.Combatant,
		components.Dash,
	]

	// Individual component mappers for lookups
	posMap  *ecs.Map1[components.Position]
	velMap  *ecs.Map1[components.Velocity]
	bodyMap *ecs.Map1[components.Body]
	comMap  *ecs.Map1[components.Combatant]
	dashMap *ecs.Map1[components.Dash]

	// entities indexed by combatant ID; fixed for the match
	entities []ecs.Entity

	// Controllers live outside the ECS world, keyed by combatant ID.
	// A combatant with neither a controller nor a planner stands still.
	controllers map[uint8]input.Source
	planners    map[uint8]*ai.Planner
	effects     map[uint8][]systems.Effect

	grid      *systems.Grid
	platform  *systems.Platform
	powerups  *systems.PowerUpScheduler
	particles *systems.Pool
	shake     *systems.Shake

	collector *telemetry.Collector
	output    *telemetry.OutputManager
	recorder  *telemetry.Recorder
	events    []telemetry.Event

	phase          Phase
	countdown      int
	countdownTimer float32
	roundTime      float32
	round          int
	winner         int16
	scores         []int
	matchOver      bool

	neighborBuf []ecs.Entity
	viewBuf     []ai.Opponent
	log         *slog.Logger
}

// NewGame creates a match with the given options. Config must be
// initialized first.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()

	n := opts.Combatants
	if n == 0 {
		n = cfg.Round.Combatants + cfg.Round.Bots
	}
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 combatants, got %d", n)
	}
	if n > len(cfg.Palette) {
		return nil, fmt.Errorf("at most %d combatants supported, got %d", len(cfg.Palette), n)
	}
	bots := opts.Bots
	if bots > n {
		bots = n
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	world := ecs.NewWorld()

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		world: world,
		rng:   rng,

		mapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Body,
			components.Combatant,
			components.Dash,
		](world),
		filter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Body,
			components.Combatant,
			components.Dash,
		](world),

		posMap:  ecs.NewMap1[components.Position](world),
		velMap:  ecs.NewMap1[components.Velocity](world),
		bodyMap: ecs.NewMap1[components.Body](world),
		comMap:  ecs.NewMap1[components.Combatant](world),
		dashMap: ecs.NewMap1[components.Dash](world),

		controllers: make(map[uint8]input.Source),
		planners:    make(map[uint8]*ai.Planner),
		effects:     make(map[uint8][]systems.Effect),

		grid:      systems.NewGrid(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, float32(cfg.Physics.GridCellSize)),
		platform:  systems.NewPlatform(),
		powerups:  systems.NewPowerUpScheduler(rng),
		particles: systems.NewPool(cfg.Particles.PoolSize, rng),
		shake:     systems.NewShake(rng),

		collector: telemetry.NewCollector(cfg.Telemetry.ImpactWindow),
		output:    output,

		round:  1,
		winner: -1,
		scores: make([]int, n),

		neighborBuf: make([]ecs.Entity, 0, 16),
		viewBuf:     make([]ai.Opponent, 0, 4),
		log:         slog.Default().With("component", "game"),
	}

	if opts.Record {
		g.recorder = telemetry.NewRecorder(n, opts.Seed)
		g.recorder.Start()
	}

	difficulty := ai.ParseDifficulty(opts.Difficulty)
	if opts.Difficulty == "" {
		difficulty = ai.ParseDifficulty(cfg.AI.Difficulty)
	}

	for i := 0; i < n; i++ {
		id := uint8(i)
		g.spawnCombatant(id)
		if i >= n-bots {
			g.planners[id] = ai.NewPlanner(id, difficulty, rng)
		}
	}

	g.setupRound()

	g.log.Info("match created",
		"combatants", n,
		"bots", bots,
		"difficulty", difficulty.String(),
		"seed", opts.Seed)

	return g, nil
}

// SetController binds an input source to a combatant. Overrides any planner
// assigned to the same ID.
func (g *Game) SetController(id uint8, src input.Source) {
	g.controllers[id] = src
	delete(g.planners, id)
}

// SetDifficulty rebuilds every bot planner at the given difficulty. Takes
// effect on the next planning tick.
func (g *Game) SetDifficulty(d ai.Difficulty) {
	for id := range g.planners {
		g.planners[id] = ai.NewPlanner(id, d, g.rng)
	}
}

// spawnCombatant creates the entity for one combatant. Position is set by
// setupRound.
func (g *Game) spawnCombatant(id uint8) {
	cfg := config.Cfg()

	pos := components.Position{}
	vel := components.Velocity{}
	body := components.Body{Radius: float32(cfg.Combatant.Radius)}
	com := components.Combatant{ID: id, Color: id, Alive: true}
	dash := components.Dash{
		Charges:    cfg.Dash.StartCharges,
		MaxCharges: cfg.Dash.MaxCharges,
	}

	entity := g.mapper.NewEntity(&pos, &vel, &body, &com, &dash)
	g.entities = append(g.entities, entity)
}

// setupRound resets the arena and places all combatants on the spawn ring.
func (g *Game) setupRound() {
	cfg := config.Cfg()

	g.platform.Reset()
	g.powerups.Clear()
	g.particles.Clear()
	g.shake.Reset()
	g.effects = make(map[uint8][]systems.Effect)

	n := len(g.entities)
	spawnR := float32(cfg.Arena.SpawnRadius)
	for i, e := range g.entities {
		angle := float64(i) * 2 * math.Pi / float64(n)
		x := g.platform.CenterX + spawnR*float32(math.Cos(angle))
		y := g.platform.CenterY + spawnR*float32(math.Sin(angle))

		pos := g.posMap.Get(e)
		vel := g.velMap.Get(e)
		dash := g.dashMap.Get(e)
		com := g.comMap.Get(e)
		body := g.bodyMap.Get(e)

		systems.Respawn(pos, vel, dash, com, x, y)
		dash.MaxCharges = cfg.Dash.MaxCharges
		dash.Charges = cfg.Dash.StartCharges
		body.Radius = float32(cfg.Combatant.Radius)
	}

	g.roundTime = 0
	g.winner = -1
	g.phase = PhaseCountdown
	g.countdown = cfg.Round.CountdownTicks
	g.countdownTimer = float32(cfg.Round.CountdownInterval)
	g.events = append(g.events, telemetry.NewCountdownTickEvent(g.countdown))
}

// RestartRound begins the next round. No-op while a round is in progress or
// after the match is decided.
func (g *Game) RestartRound() {
	if g.phase != PhaseGameOver || g.matchOver {
		return
	}
	g.round++
	g.setupRound()
}

// ResetMatch clears all scores and starts over from round one.
func (g *Game) ResetMatch() {
	for i := range g.scores {
		g.scores[i] = 0
	}
	g.round = 1
	g.matchOver = false
	g.setupRound()
}

// DrainEvents returns the events emitted since the last drain and clears the
// queue. Collaborators (audio, HUD) call this once per frame.
func (g *Game) DrainEvents() []telemetry.Event {
	evs := g.events
	g.events = nil
	return evs
}

// Particles exposes the particle pool for rendering.
func (g *Game) Particles() *systems.Pool {
	return g.particles
}

// PowerUps returns the active pickups for rendering.
func (g *Game) PowerUps() []*systems.PowerUp {
	return g.powerups.Active()
}

// ShakeOffset returns the current camera shake offset in pixels.
func (g *Game) ShakeOffset() (float32, float32) {
	return g.shake.Offset()
}

// Phase returns the current round phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// MatchOver reports whether a combatant has won the match.
func (g *Game) MatchOver() bool {
	return g.matchOver
}

// SaveReplay writes the recorded replay into dir. Returns "" when recording
// was not enabled.
func (g *Game) SaveReplay(dir string) (string, error) {
	if g.recorder == nil {
		return "", nil
	}
	g.recorder.Stop()
	return g.recorder.Save(dir)
}

// Close flushes telemetry output.
func (g *Game) Close() error {
	return g.output.Close()
}
