package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mkrall/crowdctl/ai"
	"github.com/mkrall/crowdctl/audio"
	"github.com/mkrall/crowdctl/config"
)

// Settings is the in-game options overlay, toggled with Escape.
type Settings struct {
	visible    bool
	sound      *audio.Manager
	showPips   bool
	showVFX    bool
	difficulty float32
}

// NewSettings creates the overlay bound to the audio manager.
func NewSettings(sound *audio.Manager) *Settings {
	return &Settings{
		sound:      sound,
		showPips:   true,
		showVFX:    true,
		difficulty: float32(ai.ParseDifficulty(config.Cfg().AI.Difficulty)),
	}
}

// Toggle flips overlay visibility.
func (s *Settings) Toggle() {
	s.visible = !s.visible
}

// Visible reports whether the overlay is open. The game pauses while open.
func (s *Settings) Visible() bool {
	return s.visible
}

// ShowChargePips reports whether the dash charge indicator is enabled.
func (s *Settings) ShowChargePips() bool {
	return s.showPips
}

// ShowVFX reports whether particle effects are drawn.
func (s *Settings) ShowVFX() bool {
	return s.showVFX
}

// Difficulty returns the bot difficulty selected on the slider.
func (s *Settings) Difficulty() ai.Difficulty {
	return ai.Difficulty(uint8(s.difficulty + 0.5))
}

// Draw renders the overlay and applies any adjusted values.
func (s *Settings) Draw() {
	if !s.visible {
		return
	}

	cfg := config.Cfg()
	panelW := float32(320)
	panelH := float32(260)
	panelX := float32(cfg.Screen.Width)/2 - panelW/2
	panelY := float32(cfg.Screen.Height)/2 - panelH/2

	rl.DrawRectangle(0, 0, int32(cfg.Screen.Width), int32(cfg.Screen.Height), rl.Color{R: 0, G: 0, B: 0, A: 140})
	rl.DrawRectangle(int32(panelX), int32(panelY), int32(panelW), int32(panelH), rl.Color{R: 30, G: 32, B: 40, A: 240})
	rl.DrawText("Settings", int32(panelX)+10, int32(panelY)+10, 24, rl.White)

	vol := float32(s.sound.Volume())
	newVol := gui.SliderBar(
		rl.Rectangle{X: panelX + 90, Y: panelY + 50, Width: panelW - 120, Height: 20},
		"Volume", fmt.Sprintf("%.0f%%", vol*100),
		vol, 0, 1,
	)
	if newVol != vol {
		s.sound.SetVolume(float64(newVol))
	}

	s.difficulty = gui.SliderBar(
		rl.Rectangle{X: panelX + 90, Y: panelY + 90, Width: panelW - 120, Height: 20},
		"Bots", s.Difficulty().String(),
		s.difficulty, 0, 3,
	)

	pipLabel := "Charge pips: on"
	if !s.showPips {
		pipLabel = "Charge pips: off"
	}
	if gui.Button(rl.Rectangle{X: panelX + 10, Y: panelY + 130, Width: 180, Height: 30}, pipLabel) {
		s.showPips = !s.showPips
	}

	vfxLabel := "Particles: on"
	if !s.showVFX {
		vfxLabel = "Particles: off"
	}
	if gui.Button(rl.Rectangle{X: panelX + 10, Y: panelY + 170, Width: 180, Height: 30}, vfxLabel) {
		s.showVFX = !s.showVFX
	}

	if gui.Button(rl.Rectangle{X: panelX + 10, Y: panelY + 210, Width: 180, Height: 30}, "Close") {
		s.visible = false
	}
}
