package api

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/gin-gonic/gin"

	"screw-motion/internal/batch"
	"screw-motion/internal/config"
	"screw-motion/internal/event"
	"screw-motion/internal/mathutil"
	"screw-motion/internal/playback"
	"screw-motion/internal/scene"
	"screw-motion/internal/screw"
	"screw-motion/internal/session"
	"screw-motion/internal/viewmatrix"
)

// Bounds on the work one request may ask for.
const (
	maxRenderFrames = 240
	maxSamples      = 10000

	// maxDurationSeconds keeps duration_seconds inside time.Duration.
	maxDurationSeconds = 3600
)

// Request is the body of every POST route. The transform is given the same
// way as in a config file; the remaining fields apply to the routes that
// use them.
type Request struct {
	Rotation     []float64 `json:"rotation"`
	EulerDegrees []float64 `json:"euler_degrees"`
	EulerOrder   string    `json:"euler_order"`
	Translation  []float64 `json:"translation"`
	Preset       string    `json:"preset"`

	Progress *float64 `json:"progress"`
	Samples  int      `json:"samples"`

	Size        int      `json:"size"`
	CameraYaw   *float64 `json:"camera_yaw"`
	CameraPitch *float64 `json:"camera_pitch"`
	Perspective bool     `json:"perspective"`
	Animate     bool     `json:"animate"`
	FPS         int      `json:"fps"`
	Duration    float64  `json:"duration_seconds"`
}

// DecomposeResponse carries one session revision.
type DecomposeResponse struct {
	Revision int             `json:"revision"`
	Validity *screw.Validity `json:"validity,omitempty"`
	Motion   *screw.Motion   `json:"motion"`
}

// PoseResponse is the body pose at one progress value.
type PoseResponse struct {
	Progress    float64        `json:"progress"`
	Position    mathutil.Vec3  `json:"position"`
	Orientation mathutil.Quat  `json:"orientation"` // x, y, z, w
	Matrix      mathutil.Mat4  `json:"matrix"`
	FootPoint   *mathutil.Vec3 `json:"foot_point,omitempty"`
}

// TrajectoryResponse is the sampled path of the origin body point.
type TrajectoryResponse struct {
	Samples   int             `json:"samples"`
	Points    []mathutil.Vec3 `json:"points"`
	FootTrail []screw.Segment `json:"foot_trail"`
	Axis      *screw.Segment  `json:"axis,omitempty"`
}

func (s *Server) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listPresets(ctx *gin.Context) {
	out := make([]config.Preset, 0, len(s.presets))
	for _, name := range config.PresetNames(s.presets) {
		out = append(out, s.presets[name])
	}
	ctx.JSON(http.StatusOK, out)
}

func (s *Server) decompose(ctx *gin.Context) {
	st, ok := s.solve(ctx)
	if !ok {
		return
	}
	resp := DecomposeResponse{Revision: st.Revision, Motion: st.Motion}
	v := st.Validity
	resp.Validity = &v
	ctx.JSON(http.StatusOK, resp)
}

func (s *Server) pose(ctx *gin.Context) {
	st, ok := s.solve(ctx)
	if !ok {
		return
	}
	req := ctx.MustGet("request").(Request)
	progress := 1.0
	if req.Progress != nil {
		progress = *req.Progress
	}
	p := st.Pose(progress)
	resp := PoseResponse{
		Progress:    screw.ClampProgress(progress),
		Position:    p.Position,
		Orientation: p.Orientation,
		Matrix:      p.Matrix(),
	}
	if foot, ok := screw.FootPoint(st.Motion, p.Position); ok {
		resp.FootPoint = &foot
	}
	ctx.JSON(http.StatusOK, resp)
}

func (s *Server) trajectory(ctx *gin.Context) {
	st, ok := s.solve(ctx)
	if !ok {
		return
	}
	req := ctx.MustGet("request").(Request)
	samples := req.Samples
	if samples <= 0 {
		samples = screw.DefaultSamples
	}
	pts, _ := screw.Trajectory(st.Motion, samples)
	resp := TrajectoryResponse{
		Samples:   samples,
		Points:    pts,
		FootTrail: screw.FootTrail(st.Motion, samples),
	}
	if resp.Points == nil {
		resp.Points = []mathutil.Vec3{}
	}
	if seg, ok := screw.AxisSegment(st.Motion, screw.DefaultAxisHalfLength); ok {
		resp.Axis = &seg
	}
	ctx.JSON(http.StatusOK, resp)
}

func (s *Server) renderImage(ctx *gin.Context) {
	st, ok := s.solve(ctx)
	if !ok {
		return
	}
	req := ctx.MustGet("request").(Request)
	cfg := s.renderConfig(req)

	var buf bytes.Buffer
	if req.Animate {
		if n := playback.FrameCount(cfg.FPS, cfg.Duration); n > maxRenderFrames {
			NewHTTPStatus(ctx, http.StatusBadRequest,
				fmt.Errorf("animation needs %d frames, limit is %d", n, maxRenderFrames))
			return
		}
		progresses := playback.Frames(cfg.FPS, cfg.Duration)
		extent := scene.Extent(st.Motion, cfg.Scene)
		frames := make([]image.Image, len(progresses))
		for i, p := range progresses {
			frames[i] = batch.RenderFrame(cfg, st.Motion, p, extent, nil)
		}
		if err := batch.EncodeAnimation(&buf, frames, cfg.FPS); err != nil {
			NewHTTPStatus(ctx, http.StatusInternalServerError, err)
			return
		}
	} else {
		progress := 1.0
		if req.Progress != nil {
			progress = *req.Progress
		}
		img := batch.RenderFrame(cfg, st.Motion, progress, nil, nil)
		if err := nativewebp.Encode(&buf, img, nil); err != nil {
			NewHTTPStatus(ctx, http.StatusInternalServerError, err)
			return
		}
	}
	ctx.Data(http.StatusOK, "image/webp", buf.Bytes())
}

func (s *Server) renderConfig(req Request) batch.Config {
	cfg := s.render
	if req.Size > 0 {
		cfg.RenderSize = min(req.Size, 2048)
	}
	if cfg.RenderSize <= 0 {
		cfg.RenderSize = 512
	}
	if cfg.Camera == (viewmatrix.Camera{}) {
		cfg.Camera = viewmatrix.Camera{Yaw: 35, Pitch: -25}
	}
	if req.CameraYaw != nil {
		cfg.Camera.Yaw = *req.CameraYaw
	}
	if req.CameraPitch != nil {
		cfg.Camera.Pitch = *req.CameraPitch
	}
	cfg.Camera.Perspective = cfg.Camera.Perspective || req.Perspective
	if req.FPS > 0 {
		cfg.FPS = min(req.FPS, playback.MaxFPS)
	}
	if req.Duration > 0 {
		cfg.Duration = time.Duration(min(req.Duration, maxDurationSeconds) * float64(time.Second))
	}
	if cfg.Scene == (scene.Options{}) {
		cfg.Scene = scene.DefaultOptions()
	}
	if req.Samples > 0 {
		cfg.Scene.Samples = req.Samples
	}
	return cfg
}

// solve binds the request, resolves its transform and advances the
// session. On failure it has already written the error response.
func (s *Server) solve(ctx *gin.Context) (session.State, bool) {
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		NewHTTPStatus(ctx, http.StatusBadRequest, err)
		return session.State{}, false
	}
	if req.Samples > maxSamples {
		NewHTTPStatus(ctx, http.StatusBadRequest,
			fmt.Errorf("samples %d exceeds limit %d", req.Samples, maxSamples))
		return session.State{}, false
	}
	ctx.Set("request", req)

	cfg := config.Config{
		Rotation:     req.Rotation,
		EulerDegrees: req.EulerDegrees,
		EulerOrder:   req.EulerOrder,
		Translation:  req.Translation,
	}
	if req.Preset != "" {
		p, ok := s.presets[req.Preset]
		if !ok {
			NewHTTPStatus(ctx, http.StatusNotFound, fmt.Errorf("%w: %q", config.ErrUnknownPreset, req.Preset))
			return session.State{}, false
		}
		cfg.UsePreset(p)
	}

	rot, tr, err := cfg.Transform()
	if err != nil {
		NewHTTPStatus(ctx, http.StatusBadRequest, err)
		return session.State{}, false
	}

	st := s.advance(session.Input{Rotation: rot, Translation: tr})
	switch {
	case st.Invalid():
		v := st.Validity
		ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, Status{
			Code:     http.StatusUnprocessableEntity,
			Message:  st.Err.Error(),
			Validity: &v,
		})
		return st, false
	case errors.Is(st.Err, screw.ErrIncompleteInput):
		NewHTTPStatus(ctx, http.StatusBadRequest, st.Err)
		return st, false
	case st.Err != nil:
		NewHTTPStatus(ctx, http.StatusInternalServerError, st.Err)
		return st, false
	}
	log.WithFields(event.Fields{"revision": st.Revision, "angle": st.Motion.RotationAngle}).Debug("decomposed")
	return st, true
}
