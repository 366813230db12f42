package batch

import (
	"encoding/json"
	"os"

	"screw-motion/internal/screw"
)

// ManifestFrame describes one rendered frame.
type ManifestFrame struct {
	Frame    int     `json:"frame"`
	Progress float64 `json:"progress"`
	Image    string  `json:"image,omitempty"`
}

// Manifest describes a rendered animation.
type Manifest struct {
	Motion      *screw.Motion   `json:"motion"`
	FPS         int             `json:"fps"`
	DurationSec float64         `json:"duration_seconds"`
	FrameDelay  uint            `json:"frame_delay_ms"`
	RenderSize  int             `json:"render_size"`
	Animation   string          `json:"animation"`
	Frames      []ManifestFrame `json:"frames"`
}

// WriteManifest writes the manifest for a finished run to path.
func WriteManifest(path string, cfg Config, m *screw.Motion, results []Result) error {
	man := Manifest{
		Motion:      m,
		FPS:         cfg.FPS,
		DurationSec: cfg.Duration.Seconds(),
		FrameDelay:  FrameDelay(cfg.FPS),
		RenderSize:  cfg.RenderSize,
		Animation:   AnimationFile,
		Frames:      make([]ManifestFrame, len(results)),
	}
	for i, r := range results {
		man.Frames[i] = ManifestFrame{Frame: r.Frame, Progress: r.Progress, Image: r.Image}
	}

	data, err := json.MarshalIndent(man, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
