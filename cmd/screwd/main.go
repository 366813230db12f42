package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"screw-motion/internal/api"
	"screw-motion/internal/batch"
	"screw-motion/internal/config"
	"screw-motion/internal/event"
	"screw-motion/internal/scene"
	"screw-motion/internal/viewmatrix"
)

var log = event.Log

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	listen := flag.String("listen", "", "Listen address (default: :8080)")
	presetFile := flag.String("presets", "", "Preset library (default: presets.json)")
	size := flag.Int("size", 0, "Default frame size in pixels (default: 512)")
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

	// CLI flags override config file
	if err := cfg.Resolve(config.Flags{
		Listen:     *listen,
		PresetFile: *presetFile,
		RenderSize: *size,
		Debug:      *debug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	event.ConfigureLogging(cfg.Debug)
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	path := cfg.PresetFile
	if path == "" {
		path = "presets.json"
	}
	presets, err := config.LoadPresets(path)
	if err != nil {
		log.WithError(err).Warn("no presets loaded")
	}

	opts := scene.DefaultOptions()
	opts.Samples = cfg.Samples
	srv := api.NewServer(presets, batch.Config{
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
	})

	httpSrv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	log.WithFields(event.Fields{"listen": cfg.Listen, "presets": len(presets)}).Info("serving")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
