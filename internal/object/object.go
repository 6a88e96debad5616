package object

import (
	"time"

	"github.com/tomz197/balloons/internal/draw"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides what an effect needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Spawner Spawner
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas      // Half-block pixel buffer
	Writer *draw.ChunkWriter // Text overlays, canvas-relative positions
	View   Screen            // Logical size of the play area
}

// Screen is a logical drawing area.
type Screen struct {
	Width  float64
	Height float64
}

// ToView maps play-area percentages (X across, Y up from the bottom edge)
// to logical view coordinates with Y growing downwards.
func (s Screen) ToView(x, y float64) (vx, vy float64) {
	return x / 100 * s.Width, s.Height * (1 - y/100)
}

// Object is a drawable and updatable client-side entity.
type Object interface {
	// Update advances the object. Returns true if it should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object onto ctx.Canvas or ctx.Writer.
	Draw(ctx DrawContext) error
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}
