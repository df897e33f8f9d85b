// Package moviemaker ties the texture, stage, compositor, and encoder
// packages together behind one entry point: RuntimeContext holds the
// view-port and stream parameters, owns the texture registry, and drives a
// scene through the encoder pipeline to produce an MP4.
package moviemaker

import (
	"time"

	"github.com/duskwillow/moviemaker/texture"
)

// RuntimeContext is constructed once per run and mutated only by the code
// driving that run: EncodeScene loads scene textures into its registry, and
// a driver such as internal/demo inserts synthesized textures and mints ids
// with NextID before encoding. Its id counter is seeded from wall-clock
// time and lives here rather than behind a package-level variable — kept
// on the context deliberately, not reintroduced as global state (see
// DESIGN.md's Open Question decisions).
type RuntimeContext struct {
	Width, Height int
	Duration      float64 // seconds
	FPS           int

	SourceRoot string
	Registry   *texture.Registry

	idCounter uint64
}

// NewRuntimeContext builds a RuntimeContext for one encode run. sourceRoot
// is the directory relative texture paths in scene files resolve against.
func NewRuntimeContext(sourceRoot string, width, height int, duration float64, fps int) *RuntimeContext {
	return &RuntimeContext{
		Width:      width,
		Height:     height,
		Duration:   duration,
		FPS:        fps,
		SourceRoot: sourceRoot,
		Registry:   texture.NewRegistry(sourceRoot),
		idCounter:  uint64(time.Now().UnixNano()),
	}
}

// NextID returns the next value from the run's monotonic id counter,
// seeded from wall-clock time at construction so ids from consecutive runs
// don't collide.
func (c *RuntimeContext) NextID() uint64 {
	c.idCounter++
	return c.idCounter
}

// FrameCount is the number of frames EncodeScene will produce: fps*duration,
// truncated.
func (c *RuntimeContext) FrameCount() int {
	return int(float64(c.FPS) * c.Duration)
}
