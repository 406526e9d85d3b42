package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mkrall/crowdctl/config"
	"github.com/mkrall/crowdctl/game"
	"github.com/mkrall/crowdctl/telemetry"
)

// Combo tuning.
const (
	comboTimeoutMs  = 3000
	comboMinImpact  = 0.3
	killFeedEntries = 5
	killFeedTtlMs   = 4000
)

var slotNames = []string{"Red", "Blue", "Green", "Orange"}

func slotName(id int16) string {
	if id >= 0 && int(id) < len(slotNames) {
		return slotNames[id]
	}
	return fmt.Sprintf("#%d", id)
}

// ComboTracker counts rapid successive heavy collisions and exposes a score
// multiplier. The chain breaks after a quiet window.
type ComboTracker struct {
	hits      int
	sinceLast float32
}

// Update ages the chain and breaks it once the window lapses.
func (c *ComboTracker) Update(dtMs float32) {
	if c.hits == 0 {
		return
	}
	c.sinceLast += dtMs
	if c.sinceLast >= comboTimeoutMs {
		c.hits = 0
		c.sinceLast = 0
	}
}

// RecordHit extends the chain.
func (c *ComboTracker) RecordHit() {
	c.hits++
	c.sinceLast = 0
}

// Reset clears the chain, e.g. between rounds.
func (c *ComboTracker) Reset() {
	c.hits = 0
	c.sinceLast = 0
}

// Hits returns the current chain length.
func (c *ComboTracker) Hits() int {
	return c.hits
}

// Multiplier returns the score multiplier for the current chain length.
func (c *ComboTracker) Multiplier() float32 {
	switch {
	case c.hits >= 5:
		return 3
	case c.hits >= 3:
		return 2
	case c.hits >= 2:
		return 1.5
	}
	return 1
}

type feedEntry struct {
	text  string
	ageMs float32
}

// HUD draws scores, timers, the countdown, combo state, and the kill feed.
type HUD struct {
	combo ComboTracker
	feed  []feedEntry
}

// NewHUD creates an empty HUD.
func NewHUD() *HUD {
	return &HUD{}
}

// HandleEvents folds one frame's arena events into HUD state.
func (h *HUD) HandleEvents(events []telemetry.Event) {
	for _, ev := range events {
		switch ev.Type {
		case telemetry.EventCollision:
			if ev.Impact >= comboMinImpact {
				h.combo.RecordHit()
			}
		case telemetry.EventElimination:
			h.push(fmt.Sprintf("%s fell off!", slotName(ev.CombatantID)))
		case telemetry.EventPickup:
			h.push(fmt.Sprintf("%s collected", ev.PowerUp))
		case telemetry.EventRoundWon:
			h.combo.Reset()
			if ev.CombatantID < 0 {
				h.push("Draw!")
			} else {
				h.push(fmt.Sprintf("%s wins the round", slotName(ev.CombatantID)))
			}
		}
	}
}

// Update ages the combo chain and kill feed.
func (h *HUD) Update(dtMs float32) {
	h.combo.Update(dtMs)

	kept := h.feed[:0]
	for i := range h.feed {
		h.feed[i].ageMs += dtMs
		if h.feed[i].ageMs < killFeedTtlMs {
			kept = append(kept, h.feed[i])
		}
	}
	h.feed = kept
}

func (h *HUD) push(text string) {
	h.feed = append(h.feed, feedEntry{text: text})
	if len(h.feed) > killFeedEntries {
		h.feed = h.feed[len(h.feed)-killFeedEntries:]
	}
}

// Draw renders the HUD for the current snapshot.
func (h *HUD) Draw(snap game.Snapshot) {
	cfg := config.Cfg()
	screenW := int32(cfg.Screen.Width)

	h.drawScores(snap)
	h.drawTimer(snap, screenW)
	h.drawFeed(screenW)
	h.drawCombo(snap, screenW)

	switch snap.Phase {
	case game.PhaseCountdown:
		h.drawCountdown(snap, screenW)
	case game.PhaseGameOver:
		h.drawGameOver(snap, screenW)
	}
}

func (h *HUD) drawScores(snap game.Snapshot) {
	y := int32(10)
	for _, c := range snap.Combatants {
		color := rl.Color{R: c.Color.R, G: c.Color.G, B: c.Color.B, A: 255}
		if !c.Alive {
			color.A = 100
		}
		text := fmt.Sprintf("%s: %d", slotName(int16(c.ID)), snap.Scores[c.ID])
		rl.DrawText(text, 10, y, 20, color)
		y += 25
	}
}

func (h *HUD) drawTimer(snap game.Snapshot, screenW int32) {
	if snap.Phase != game.PhaseActive {
		return
	}
	text := fmt.Sprintf("%.1f", snap.RoundTimeMs/1000)
	w := rl.MeasureText(text, 20)
	color := rl.White
	if snap.Shrinking {
		color = rl.Color{R: 220, G: 70, B: 70, A: 255}
	} else if snap.ShrinkWarning {
		color = rl.Color{R: 220, G: 160, B: 70, A: 255}
	}
	rl.DrawText(text, screenW/2-w/2, 10, 20, color)
}

func (h *HUD) drawFeed(screenW int32) {
	y := int32(10)
	for i := len(h.feed) - 1; i >= 0; i-- {
		e := &h.feed[i]
		alpha := uint8(200)
		if remaining := killFeedTtlMs - e.ageMs; remaining < 1000 {
			alpha = uint8(remaining / 1000 * 200)
		}
		w := rl.MeasureText(e.text, 16)
		rl.DrawText(e.text, screenW-w-10, y, 16, rl.Color{R: 230, G: 230, B: 230, A: alpha})
		y += 20
	}
}

func (h *HUD) drawCombo(snap game.Snapshot, screenW int32) {
	if h.combo.Hits() < 2 || snap.Phase != game.PhaseActive {
		return
	}
	text := fmt.Sprintf("x%.1f COMBO (%d)", h.combo.Multiplier(), h.combo.Hits())
	w := rl.MeasureText(text, 24)
	rl.DrawText(text, screenW/2-w/2, 40, 24, rl.Color{R: 255, G: 220, B: 70, A: 255})
}

func (h *HUD) drawCountdown(snap game.Snapshot, screenW int32) {
	text := fmt.Sprintf("%d", snap.Countdown)
	w := rl.MeasureText(text, 80)
	rl.DrawText(text, screenW/2-w/2, 280, 80, rl.White)
}

func (h *HUD) drawGameOver(snap game.Snapshot, screenW int32) {
	var headline string
	if snap.Winner < 0 {
		headline = "Draw!"
	} else if snap.MatchOver {
		headline = fmt.Sprintf("%s wins the match!", slotName(snap.Winner))
	} else {
		headline = fmt.Sprintf("%s wins round %d", slotName(snap.Winner), snap.Round)
	}
	w := rl.MeasureText(headline, 40)
	rl.DrawText(headline, screenW/2-w/2, 300, 40, rl.White)

	prompt := "Press SPACE for next round"
	if snap.MatchOver {
		prompt = "Press R to restart the match"
	}
	pw := rl.MeasureText(prompt, 20)
	rl.DrawText(prompt, screenW/2-pw/2, 360, 20, rl.Color{R: 200, G: 200, B: 200, A: 255})
}
