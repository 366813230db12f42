package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"screw-motion/internal/batch"
	"screw-motion/internal/config"
	"screw-motion/internal/event"
	"screw-motion/internal/playback"
	"screw-motion/internal/scene"
	"screw-motion/internal/session"
	"screw-motion/internal/texture"
	"screw-motion/internal/viewmatrix"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	rotation := flag.String("rotation", "", "Rotation matrix, 9 row-major values")
	euler := flag.String("euler", "", "Euler angles in degrees, 3 values")
	eulerOrder := flag.String("order", "", "Euler order (default: XYZ)")
	translation := flag.String("translation", "", "Translation, 3 values")
	preset := flag.String("preset", "", "Named preset")
	presetFile := flag.String("presets", "", "Preset library (default: presets.json)")
	samples := flag.Int("samples", 0, "Trajectory samples (default: 80)")
	duration := flag.Float64("duration", 0, "Animation length in seconds (default: 3)")
	fps := flag.Int("fps", 0, "Frames per second (default: 30)")
	outputDir := flag.String("output", "", "Output directory (default: screw-renders)")
	size := flag.Int("size", 0, "Frame size in pixels (default: 512)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 2)")
	tex := flag.String("texture", "", "Body texture (.tga, .png, .jpg)")
	yaw := flag.Float64("yaw", 0, "Camera yaw in degrees")
	pitch := flag.Float64("pitch", 0, "Camera pitch in degrees")
	perspective := flag.Bool("perspective", false, "Perspective instead of orthographic projection")
	frames := flag.Bool("frames", false, "Also write every frame as a WebP still")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	debug := flag.Bool("debug", false, "Debug logging")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	flags := config.Flags{
		EulerOrder:  *eulerOrder,
		Preset:      *preset,
		PresetFile:  *presetFile,
		Samples:     *samples,
		Duration:    *duration,
		FPS:         *fps,
		OutputDir:   *outputDir,
		RenderSize:  *size,
		Supersample: *supersample,
		Texture:     *tex,
		Perspective: *perspective,
		WriteFrames: *frames,
		Workers:     *workers,
		Debug:       *debug,
	}
	var err error
	if flags.Rotation, err = config.ParseList(*rotation, 9); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: -rotation: %v\n", err)
	}
	if flags.EulerDegrees, err = config.ParseList(*euler, 3); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: -euler: %v\n", err)
	}
	if flags.Translation, err = config.ParseList(*translation, 3); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: -translation: %v\n", err)
	}

	// CLI flags override config file
	if err := cfg.Resolve(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "yaw":
			cfg.CameraYaw = *yaw
		case "pitch":
			cfg.CameraPitch = *pitch
		}
	})
	event.ConfigureLogging(cfg.Debug)

	rot, tr, err := cfg.Transform()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	st := session.Next(session.State{}, session.Input{Rotation: rot, Translation: tr})
	if st.Err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", st.Err)
		if st.Invalid() {
			fmt.Fprintf(os.Stderr, "  orthogonality error %.4g, determinant %.4g\n",
				st.Validity.OrthogonalityError, st.Validity.Determinant)
		}
		os.Exit(1)
	}

	opts := scene.DefaultOptions()
	opts.Samples = cfg.Samples

	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		TexResolver: texture.NewCache(),
		TexturePath: cfg.Texture,
		Camera: viewmatrix.Camera{
			Yaw:         cfg.CameraYaw,
			Pitch:       cfg.CameraPitch,
			Perspective: cfg.Perspective,
		},
		Scene:       opts,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		FPS:         cfg.FPS,
		Duration:    cfg.PlaybackDuration(),
		WriteFrames: cfg.WriteFrames,
		Workers:     cfg.Workers,
	}

	fmt.Println("Screw motion renderer → WebP")
	for _, line := range scene.HUD(st.Motion, 1) {
		fmt.Printf("  %s\n", line)
	}
	fmt.Printf("Frames: %d at %d fps, Workers: %d\n", len(playbackFrames(cfg)), cfg.FPS, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	out, err := batch.Run(batchCfg, st.Motion)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	if out != nil {
		fmt.Printf("Rendered: %d/%d\n", len(out.Results)-out.Failed(), len(out.Results))
		limit := 20
		for _, r := range out.Results {
			if r.Success || limit == 0 {
				continue
			}
			limit--
			fmt.Printf("  frame %d: %s\n", r.Frame, r.Error)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Animation: %s\n", out.Animation)
	fmt.Printf("Manifest: %s\n", out.Manifest)
}

func playbackFrames(cfg config.Config) []float64 {
	return playback.Frames(cfg.FPS, cfg.PlaybackDuration())
}
