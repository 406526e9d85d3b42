package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mkrall/crowdctl/audio"
	"github.com/mkrall/crowdctl/config"
	"github.com/mkrall/crowdctl/game"
	"github.com/mkrall/crowdctl/renderer"
	"github.com/mkrall/crowdctl/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run bot-only rounds without graphics")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxRounds := flag.Int("max-rounds", 0, "Stop after N rounds in headless mode (0 = until match ends)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	record := flag.Bool("record", false, "Record a replay of the match")
	combatants := flag.Int("combatants", 0, "Total combatants (0 = use config)")
	bots := flag.Int("bots", -1, "AI combatants (-1 = use config)")
	difficulty := flag.String("difficulty", "", "Bot difficulty: easy, medium, hard, expert (empty = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	total := *combatants
	if total == 0 {
		total = cfg.Round.Combatants + cfg.Round.Bots
	}
	botCount := *bots
	if botCount < 0 {
		botCount = cfg.Round.Bots
	}
	if *headless {
		// Nobody is holding a keyboard
		botCount = total
	}

	opts := game.Options{
		Seed:       rngSeed,
		Combatants: total,
		Bots:       botCount,
		Difficulty: *difficulty,
		OutputDir:  *outputDir,
		Record:     *record,
	}

	if *headless {
		runHeadless(opts, *maxRounds, *outputDir)
		return
	}
	runWindowed(opts, total, botCount, *outputDir)
}

// runHeadless drives bot-only rounds at a fixed timestep, as fast as the
// CPU allows.
func runHeadless(opts game.Options, maxRounds int, outputDir string) {
	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	cfg := config.Cfg()
	stepMs := float32(1000) / float32(cfg.Screen.TargetFPS)
	rounds := 0

	slog.Info("starting headless match", "seed", opts.Seed, "max_rounds", maxRounds)

	for {
		g.Update(stepMs)

		if g.Phase() == game.PhaseGameOver {
			rounds++
			if g.MatchOver() || (maxRounds > 0 && rounds >= maxRounds) {
				break
			}
			g.RestartRound()
		}
	}

	saveReplay(g, outputDir)
	slog.Info("headless match finished", "rounds", rounds)
}

// runWindowed runs the interactive game loop.
func runWindowed(opts game.Options, total, botCount int, outputDir string) {
	cfg := config.Cfg()

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Crowd Control")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	// Escape opens the settings overlay instead of quitting.
	rl.SetExitKey(0)

	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	// Human seats take the low IDs, bots keep the high ones
	bindings := ui.DefaultBindings()
	humans := total - botCount
	for i := 0; i < humans && i < len(bindings); i++ {
		g.SetController(uint8(i), ui.NewKeyboard(bindings[i]))
	}

	sound := audio.NewManager()
	if err := sound.Initialize(); err == nil {
		defer sound.Cleanup()
	}

	arena := renderer.NewRenderer()
	particles := renderer.NewParticleRenderer()
	hud := ui.NewHUD()
	settings := ui.NewSettings(sound)
	botDifficulty := settings.Difficulty()

	for !rl.WindowShouldClose() {
		dtMs := rl.GetFrameTime() * 1000

		if rl.IsKeyPressed(rl.KeyEscape) {
			settings.Toggle()
		}

		if !settings.Visible() {
			g.Update(dtMs)

			events := g.DrainEvents()
			sound.HandleEvents(events)
			hud.HandleEvents(events)
			hud.Update(dtMs)

			if g.Phase() == game.PhaseGameOver {
				if g.MatchOver() && rl.IsKeyPressed(rl.KeyR) {
					g.ResetMatch()
				} else if rl.IsKeyPressed(rl.KeySpace) {
					g.RestartRound()
				}
			}
		}

		if d := settings.Difficulty(); d != botDifficulty {
			botDifficulty = d
			g.SetDifficulty(d)
		}

		snap := g.Snapshot()
		offX, offY := g.ShakeOffset()
		arena.ShowChargePips = settings.ShowChargePips()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 18, G: 20, B: 26, A: 255})
		arena.Draw(snap, g.PowerUps(), offX, offY)
		if settings.ShowVFX() {
			particles.Draw(g.Particles(), offX, offY)
		}
		hud.Draw(snap)
		settings.Draw()
		rl.EndDrawing()
	}

	saveReplay(g, outputDir)
}

func saveReplay(g *game.Game, outputDir string) {
	dir := outputDir
	if dir == "" {
		dir = "replays"
	}
	path, err := g.SaveReplay(dir)
	if err != nil {
		slog.Error("failed to save replay", "error", err)
		return
	}
	if path != "" {
		slog.Info("replay saved", "path", path)
	}
}
