package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"screw-motion/internal/event"
	"screw-motion/internal/mathutil"
	"screw-motion/internal/playback"
	"screw-motion/internal/raster"
	"screw-motion/internal/scene"
	"screw-motion/internal/screw"
	"screw-motion/internal/texture"
	"screw-motion/internal/viewmatrix"

	"github.com/HugoSmits86/nativewebp"
)

// Output file names inside Config.OutputDir.
const (
	AnimationFile = "animation.webp"
	ManifestFile  = "manifest.json"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	TexResolver texture.Resolver
	TexturePath string
	Camera      viewmatrix.Camera
	Scene       scene.Options
	RenderSize  int
	Supersample int
	FPS         int
	Duration    time.Duration
	WriteFrames bool // also write every frame as a still
	Workers     int
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame    int
	Progress float64
	Image    string // relative still path when WriteFrames is set
	Success  bool
	Error    string
}

// Output summarises a finished run.
type Output struct {
	Results   []Result
	Animation string // path of the animated WebP
	Manifest  string
}

// Failed counts frames that did not render.
func (o *Output) Failed() int {
	n := 0
	for _, r := range o.Results {
		if !r.Success {
			n++
		}
	}
	return n
}

// Run renders every playback frame of m using a worker pool, then writes
// the animation and the manifest.
func Run(cfg Config, m *screw.Motion) (*Output, error) {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}

	progresses := playback.Frames(cfg.FPS, cfg.Duration)
	total := len(progresses)
	results := make([]Result, total)
	frames := make([]image.Image, total)
	var processed atomic.Int64

	var tex *image.NRGBA
	if cfg.TexResolver != nil {
		tex = cfg.TexResolver.Resolve(cfg.TexturePath)
	}
	extent := scene.Extent(m, cfg.Scene)

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					event.Log.WithFields(event.Fields{
						"done":  p,
						"total": total,
						"rate":  fmt.Sprintf("%.1f frames/sec", float64(p)/elapsed),
					}).Info("rendering")
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				results[idx], frames[idx] = processFrame(cfg, m, idx, progresses[idx], extent, tex)
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range progresses {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	out := &Output{
		Results:   results,
		Animation: filepath.Join(cfg.OutputDir, AnimationFile),
		Manifest:  filepath.Join(cfg.OutputDir, ManifestFile),
	}
	if failed := out.Failed(); failed > 0 {
		return out, fmt.Errorf("batch: %d of %d frames failed", failed, total)
	}

	f, err := os.Create(out.Animation)
	if err != nil {
		return out, fmt.Errorf("batch: %w", err)
	}
	defer f.Close()
	if err := EncodeAnimation(f, frames, cfg.FPS); err != nil {
		return out, fmt.Errorf("batch: animation encode: %w", err)
	}

	if err := WriteManifest(out.Manifest, cfg, m, results); err != nil {
		return out, fmt.Errorf("batch: %w", err)
	}

	event.Log.WithFields(event.Fields{
		"frames":  total,
		"elapsed": time.Since(start).Round(time.Millisecond),
		"output":  out.Animation,
	}).Info("render complete")
	return out, nil
}

// RenderFrame draws m at progress. extent fixes the framing; nil frames the
// motion on its own.
func RenderFrame(cfg Config, m *screw.Motion, progress float64, extent []mathutil.Vec3, tex *image.NRGBA) *image.NRGBA {
	opts := cfg.Scene
	opts.Textured = tex != nil
	if extent == nil {
		extent = scene.Extent(m, opts)
	}
	return raster.Render(scene.Build(m, progress, opts), raster.Options{
		Camera:      cfg.Camera,
		Size:        cfg.RenderSize,
		Supersample: cfg.Supersample,
		Extent:      extent,
		Texture:     tex,
	})
}

func processFrame(cfg Config, m *screw.Motion, idx int, progress float64, extent []mathutil.Vec3, tex *image.NRGBA) (Result, image.Image) {
	res := Result{Frame: idx, Progress: progress}
	img := RenderFrame(cfg, m, progress, extent, tex)

	if cfg.WriteFrames {
		res.Image = filepath.Join("frames", fmt.Sprintf("%04d.webp", idx))
		if err := writeStill(filepath.Join(cfg.OutputDir, res.Image), img); err != nil {
			res.Error = err.Error()
			return res, img
		}
	}
	res.Success = true
	return res, img
}

func writeStill(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("WebP encode: %w", err)
	}
	return nil
}
