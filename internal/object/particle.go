package object

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/tomz197/balloons/internal/draw"
)

var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is one fragment of a popped balloon.
type Particle struct {
	X, Y        float64 // Logical view position
	VX, VY      float64 // Velocity in logical units per second
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64
	Drag        float64 // Velocity kept per 1/60s (1.0 = no drag)
	Gravity     float64 // Downward acceleration
	Color       draw.Color
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64, color draw.Color) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		X:           x,
		Y:           y,
		VX:          vx,
		VY:          vy,
		Lifetime:    lifetime,
		MaxLifetime: lifetime,
		Drag:        0.92,
		Gravity:     40,
		Color:       color,
	}
	return p
}

// Release returns the particle to the pool for reuse.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnPop bursts a balloon at (x, y) into count fragments of its colour.
func SpawnPop(x, y float64, count int, color draw.Color, spawner Spawner) {
	if spawner == nil {
		return
	}
	for range count {
		angle := rand.Float64() * 2 * math.Pi
		spd := 20 + rand.Float64()*30
		life := 0.25 + rand.Float64()*0.35
		spawner.Spawn(NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life, color))
	}
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true, nil
	}

	drag := math.Pow(p.Drag, dt*60)
	p.VX *= drag
	p.VY = p.VY*drag + p.Gravity*dt
	p.X += p.VX * dt
	p.Y += p.VY * dt
	return false, nil
}

// Draw plots the particle; it dims to gray for the last quarter of its life.
func (p *Particle) Draw(ctx DrawContext) error {
	color := p.Color
	if p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
		color = draw.ColorGray
	}
	ctx.Canvas.SetFloat(p.X, p.Y, color)
	return nil
}
