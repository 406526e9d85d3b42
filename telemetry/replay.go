package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FrameCombatant is one combatant's state within a replay frame.
type FrameCombatant struct {
	X       float32 `json:"x"`
	Y       float32 `json:"y"`
	VX      float32 `json:"vx"`
	VY      float32 `json:"vy"`
	Alive   bool    `json:"alive"`
	Dashing bool    `json:"dashing"`
	Color   uint8   `json:"color"`
}

// Frame is one recorded simulation step.
type Frame struct {
	TimestampMs    float32          `json:"t"`
	PlatformRadius float32          `json:"platform_radius"`
	RoundTimeMs    float32          `json:"round_time"`
	Combatants     []FrameCombatant `json:"combatants"`
}

// Metadata describes a recorded match.
type Metadata struct {
	MatchID    string    `json:"match_id"`
	StartedAt  time.Time `json:"started_at"`
	Combatants int       `json:"combatants"`
	Seed       int64     `json:"seed"`
}

// replayFile is the on-disk layout of a replay.
type replayFile struct {
	Metadata Metadata `json:"metadata"`
	Frames   []Frame  `json:"frames"`
}

// Recorder captures per-frame combatant state for later playback.
// A nil Recorder is valid and records nothing.
type Recorder struct {
	meta      Metadata
	frames    []Frame
	elapsed   float32
	recording bool
}

// NewRecorder creates a recorder for a match with the given setup.
func NewRecorder(combatants int, seed int64) *Recorder {
	return &Recorder{
		meta: Metadata{
			MatchID:    uuid.NewString(),
			StartedAt:  time.Now().UTC(),
			Combatants: combatants,
			Seed:       seed,
		},
		frames: make([]Frame, 0, 4096),
	}
}

// Start begins capturing frames. Any previously captured frames are kept.
func (r *Recorder) Start() {
	if r == nil {
		return
	}
	r.recording = true
}

// Stop pauses frame capture.
func (r *Recorder) Stop() {
	if r == nil {
		return
	}
	r.recording = false
}

// Record appends one frame when recording is active.
func (r *Recorder) Record(dtMs float32, frame Frame) {
	if r == nil || !r.recording {
		return
	}
	r.elapsed += dtMs
	frame.TimestampMs = r.elapsed
	r.frames = append(r.frames, frame)
}

// FrameCount returns the number of captured frames.
func (r *Recorder) FrameCount() int {
	if r == nil {
		return 0
	}
	return len(r.frames)
}

// Save writes the replay as JSON into dir. The file name carries the
// match ID so multiple matches can share a directory.
func (r *Recorder) Save(dir string) (string, error) {
	if r == nil {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating replay directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("replay_%s.json", r.meta.MatchID))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating replay file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(replayFile{Metadata: r.meta, Frames: r.frames}); err != nil {
		return "", fmt.Errorf("writing replay: %w", err)
	}
	return path, nil
}
