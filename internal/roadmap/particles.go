package roadmap

import "math/rand/v2"

// DefaultParticles is the number of decorative particles on the canvas.
const DefaultParticles = 15

// Particle is a decorative dot drifting between two points in a loop.
type Particle struct {
	From     Point
	To       Point
	Radius   float64
	Color    string
	Duration float64 // seconds per loop
	Delay    float64 // seconds before the first loop
}

// NewParticleField returns n particles drawn from a generator seeded with
// seed, so the same seed always yields the same field.
func NewParticleField(n int, seed uint64) []Particle {
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]Particle, n)
	for i := range out {
		color := coolParticle
		if i%3 == 0 {
			color = warmParticle
		}
		out[i] = Particle{
			From:     Point{X: rng.Float64() * SurfaceSize, Y: rng.Float64() * SurfaceSize},
			To:       Point{X: rng.Float64() * SurfaceSize, Y: rng.Float64() * SurfaceSize},
			Radius:   0.1,
			Color:    color,
			Duration: rng.Float64()*12 + 8,
			Delay:    rng.Float64() * 3,
		}
	}
	return out
}
