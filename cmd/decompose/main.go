package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"screw-motion/internal/config"
	"screw-motion/internal/event"
	"screw-motion/internal/input"
	"screw-motion/internal/playback"
	"screw-motion/internal/screw"
	"screw-motion/internal/session"
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
	listPresets := flag.Bool("list", false, "List presets and exit")
	pose := flag.Float64("pose", -1, "Also evaluate the pose at this progress in [0, 1]")
	trajectory := flag.Bool("trajectory", false, "Also print the sampled trajectory")
	samples := flag.Int("samples", 0, "Trajectory samples (default: 80)")
	watch := flag.Bool("watch", false, "Recompute whenever -config changes")
	play := flag.Bool("play", false, "Play the motion in real time, printing poses")
	duration := flag.Float64("duration", 0, "Playback length in seconds (default: 3)")
	fps := flag.Int("fps", 0, "Playback updates per second (default: 30)")
	asJSON := flag.Bool("json", false, "JSON output")
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
		EulerOrder: *eulerOrder,
		Preset:     *preset,
		PresetFile: *presetFile,
		Samples:    *samples,
		Duration:   *duration,
		FPS:        *fps,
		Debug:      *debug,
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

	if *listPresets {
		path := *presetFile
		if path == "" {
			path = "presets.json"
		}
		presets, err := config.LoadPresets(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, name := range config.PresetNames(presets) {
			fmt.Printf("%-20s %s\n", name, presets[name].Description)
		}
		return
	}

	// CLI flags override config file
	if err := cfg.Resolve(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	event.ConfigureLogging(cfg.Debug)

	out := printer{json: *asJSON, pose: *pose, trajectory: *trajectory, samples: cfg.Samples}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *watch {
		if *configFile == "" {
			fmt.Fprintln(os.Stderr, "Error: -watch needs -config")
			os.Exit(1)
		}
		load := func() (session.Input, error) {
			return loadInput(*configFile, flags)
		}
		err := session.Watch(ctx, *configFile, 250*time.Millisecond, load, out.print)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	rot, tr, err := cfg.Transform()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	st := session.Next(session.State{}, session.Input{Rotation: rot, Translation: tr})
	out.print(st)
	if st.Err != nil {
		os.Exit(1)
	}

	if *play {
		player := playback.NewPlayer(cfg.PlaybackDuration(), cfg.FrameDuration())
		err := player.Run(ctx, func(progress float64) {
			p := newPoseReport(st, progress)
			if *asJSON {
				out.encode(p)
				return
			}
			fmt.Printf("%s %s  position %s\n", progressBar(progress, 30), input.FormatValue(progress, 2), vec(p.Position))
		})
		if err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// loadInput re-reads the watched config. Transform flags given on the
// command line keep overriding the file; presets are reapplied.
func loadInput(path string, flags config.Flags) (session.Input, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return session.Input{}, err
	}
	if err := cfg.Resolve(flags); err != nil {
		return session.Input{}, err
	}
	rot, tr, err := cfg.Transform()
	if err != nil {
		return session.Input{}, err
	}
	return session.Input{Rotation: rot, Translation: tr}, nil
}

type printer struct {
	json       bool
	pose       float64
	trajectory bool
	samples    int
}

func (p printer) print(st session.State) {
	r := newReport(st)
	if st.Motion != nil {
		if p.pose >= 0 {
			r.Pose = newPoseReport(st, p.pose)
		}
		if p.trajectory {
			r.Trajectory, _ = screw.Trajectory(st.Motion, p.samples)
		}
	}
	if p.json {
		p.encode(r)
		return
	}
	writeText(os.Stdout, r)
}

func (p printer) encode(v any) {
	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(v); err != nil {
		event.Log.WithError(err).Error("encode output")
	}
}
