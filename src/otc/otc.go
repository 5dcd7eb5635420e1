// Package otc generates a synthetic "over the counter" price that tracks a real price feed
// with bounded random deviation. pricegen uses it to produce demo data files.
package otc

import (
	"math"
	"math/rand/v2"
	"time"
)

// Config tunes the generator. Zero fields take the defaults from DefaultConfig.
type Config struct {
	// HistoryLimit is the rolling window of real prices used for volatility. Until it is
	// filled the generated price equals the real price.
	HistoryLimit int `yaml:"history_limit"`
	// BoundsEverySeconds re-randomizes the upper/lower clamp when the unix second is a
	// multiple of it.
	BoundsEverySeconds int64 `yaml:"bounds_every_seconds"`
	// MaxSpikeProbability is the upper end of the per-step spike probability.
	MaxSpikeProbability float64 `yaml:"max_spike_probability"`
}

func DefaultConfig() Config {
	return Config{HistoryLimit: 60, BoundsEverySeconds: 10, MaxSpikeProbability: 0.01}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.HistoryLimit <= 1 {
		c.HistoryLimit = d.HistoryLimit
	}
	if c.BoundsEverySeconds <= 0 {
		c.BoundsEverySeconds = d.BoundsEverySeconds
	}
	if c.MaxSpikeProbability <= 0 {
		c.MaxSpikeProbability = d.MaxSpikeProbability
	}
	return c
}

// Generator is not safe for concurrent use.
type Generator struct {
	cfg Config
	rng *rand.Rand

	price     float64
	generated float64
	history   []float64

	upper, lower     float64
	moveStrength     float64
	spikeProbability float64
	spikeStrength    float64
	direction        float64
}

// New returns a generator seeded at price. A nil rng uses a randomly seeded source.
func New(price float64, cfg Config, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{
		cfg:              cfg.withDefaults(),
		rng:              rng,
		price:            price,
		generated:        price,
		history:          []float64{price},
		upper:            price,
		lower:            price,
		moveStrength:     1,
		spikeProbability: 0.001,
		spikeStrength:    2,
		direction:        1,
	}
}

// Price returns the last real price fed to Next.
func (g *Generator) Price() float64 { return g.price }

// Generated returns the current synthetic price.
func (g *Generator) Generated() float64 { return g.generated }

// Bounds returns the current clamp range of the synthetic price.
func (g *Generator) Bounds() (lower, upper float64) { return g.lower, g.upper }

// Next feeds a real price observed at now and returns the new synthetic price.
func (g *Generator) Next(realPrice float64, now time.Time) float64 {
	g.price = realPrice
	g.randomize(now)

	g.history = append(g.history, realPrice)
	if len(g.history) < g.cfg.HistoryLimit {
		g.generated = realPrice
		return g.generated
	}
	g.history = g.history[1:]

	vol := Volatility(g.history)
	var next float64
	if g.rng.Float64() < g.spikeProbability {
		if g.generated > g.price {
			next = g.generated - vol*g.direction*g.spikeStrength
		} else {
			next = g.generated + vol*g.direction*g.spikeStrength
		}
	} else {
		next = g.generated + vol*g.moveStrength*g.direction
	}

	if next > g.upper {
		next = g.upper
	} else if next < g.lower {
		next = g.lower
	}
	g.generated = next
	return g.generated
}

func (g *Generator) randomize(now time.Time) {
	if now.Unix()%g.cfg.BoundsEverySeconds == 0 {
		spread := g.rng.Float64() * 0.05
		g.upper = g.price * (1.05 + spread)
		g.lower = g.price * (0.95 + spread)
	}
	g.spikeProbability = g.rng.Float64() * g.cfg.MaxSpikeProbability
	g.spikeStrength = g.rng.Float64() + 1
	g.moveStrength = g.rng.Float64()
	if g.rng.Float64() < 0.5 {
		g.direction = 1
	} else {
		g.direction = -1
	}
}

// Volatility is the sample standard deviation (n-1) of prices. Fewer than two prices give 0.
func Volatility(prices []float64) float64 {
	n := float64(len(prices))
	if n < 2 {
		return 0
	}
	var sum float64
	for _, p := range prices {
		sum += p
	}
	mean := sum / n
	var variance float64
	for _, p := range prices {
		variance += (p - mean) * (p - mean)
	}
	return math.Sqrt(variance / (n - 1))
}
