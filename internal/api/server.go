// Package api serves decompositions, poses, trajectories and rendered
// frames over HTTP.
package api

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"screw-motion/internal/batch"
	"screw-motion/internal/config"
	"screw-motion/internal/event"
	"screw-motion/internal/session"
)

var log = event.Log

// Server holds the preset library, render defaults and the latest
// session revision.
type Server struct {
	presets map[string]config.Preset
	render  batch.Config

	mu    sync.Mutex
	state session.State
}

// NewServer returns a server using presets and render defaults. The
// render OutputDir and WriteFrames fields are ignored.
func NewServer(presets map[string]config.Preset, render batch.Config) *Server {
	if presets == nil {
		presets = map[string]config.Preset{}
	}
	return &Server{presets: presets, render: render}
}

// Router builds the gin engine with all routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", s.health)
	v1 := r.Group("/v1")
	v1.GET("/presets", s.listPresets)
	v1.POST("/decompose", s.decompose)
	v1.POST("/pose", s.pose)
	v1.POST("/trajectory", s.trajectory)
	v1.POST("/render", s.renderImage)
	return r
}

// advance records the revision computed for in and returns it.
func (s *Server) advance(in session.Input) session.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = session.Next(s.state, in)
	return s.state
}

func requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		log.WithFields(event.Fields{
			"method":  ctx.Request.Method,
			"path":    ctx.Request.URL.Path,
			"status":  ctx.Writer.Status(),
			"latency": time.Since(start).Round(time.Microsecond),
		}).Debug("request")
	}
}
