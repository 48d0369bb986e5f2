package object

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/target-hunter/internal/game/config"
)

// Kind represents the category of a target. It is fixed at creation and
// drives size, speed, points and lifetime.
type Kind int

const (
	KindNormal Kind = iota
	KindFast
	KindSmall
	KindBonus

	KindCount // must stay last
)

// kindProps are the per-kind properties of a target.
type kindProps struct {
	name          string
	glyph         rune
	size          float64 // Diameter in pixels
	baseSpeed     float64 // Pixels per motion tick at level 0
	speedPerLevel float64
	points        int
	lifetime      time.Duration
}

var kinds = [KindCount]kindProps{
	KindNormal: {name: "normal", glyph: '◎', size: 50, baseSpeed: 2, speedPerLevel: 0.4, points: 10, lifetime: 4000 * time.Millisecond},
	KindFast:   {name: "fast", glyph: '»', size: 60, baseSpeed: 3, speedPerLevel: 0.5, points: 15, lifetime: 3000 * time.Millisecond},
	KindSmall:  {name: "small", glyph: '◆', size: 30, baseSpeed: 1.5, speedPerLevel: 0.3, points: 25, lifetime: 5000 * time.Millisecond},
	KindBonus:  {name: "bonus", glyph: '★', size: 80, baseSpeed: 1, speedPerLevel: 0.2, points: 50, lifetime: 6000 * time.Millisecond},
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < KindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kinds[k].name
}

// Glyph returns the symbol presentation shows inside the target.
func (k Kind) Glyph() rune {
	if !k.Valid() {
		return '?'
	}
	return kinds[k].glyph
}

// Size returns the diameter of targets of this kind.
func (k Kind) Size() float64 { return kinds[k].size }

// Points returns the base score value of targets of this kind.
func (k Kind) Points() int { return kinds[k].points }

// Lifetime returns how long targets of this kind live.
func (k Kind) Lifetime() time.Duration { return kinds[k].lifetime }

// Speed returns the movement speed for the given level.
func (k Kind) Speed(level int) float64 {
	p := kinds[k]
	return p.baseSpeed + float64(level)*p.speedPerLevel
}

// RandomKind picks a kind uniformly at random.
func RandomKind(rng *rand.Rand) Kind {
	return Kind(rng.Intn(int(KindCount)))
}

// Target is a time-limited clickable circle moving within the field.
type Target struct {
	ID        int           // Unique, never reused
	Kind      Kind          // Fixed at creation
	X, Y      float64       // Top-left corner of the bounding box
	VX, VY    float64       // Velocity in pixels per motion tick
	Size      float64       // Diameter
	Points    int           // Base score value
	Lifetime  time.Duration // Fixed at creation
	SpawnTime time.Time     // Game-clock instant of creation
}

// NewTarget creates a target of the given kind at a random position inside
// the field, heading in a random direction.
func NewTarget(id int, kind Kind, level int, field Field, now time.Time, rng *rand.Rand) *Target {
	size := kind.Size()

	xLo, xSpan := SpawnRange(field.Width, size, config.FieldPadding)
	yLo, ySpan := SpawnRange(field.Height, size, config.FieldPadding)

	angle := rng.Float64() * 2 * math.Pi
	speed := kind.Speed(level)

	return &Target{
		ID:        id,
		Kind:      kind,
		X:         xLo + rng.Float64()*xSpan,
		Y:         yLo + rng.Float64()*ySpan,
		VX:        math.Cos(angle) * speed,
		VY:        math.Sin(angle) * speed,
		Size:      size,
		Points:    kind.Points(),
		Lifetime:  kind.Lifetime(),
		SpawnTime: now,
	}
}

// Age returns how long the target has been alive.
func (t *Target) Age(now time.Time) time.Duration {
	return now.Sub(t.SpawnTime)
}

// Expired reports whether the target has reached its lifetime.
func (t *Target) Expired(now time.Time) bool {
	return t.Age(now) >= t.Lifetime
}

// Fading reports whether the target is in the last part of its life.
func (t *Target) Fading(now time.Time) bool {
	return float64(t.Age(now)) > float64(t.Lifetime)*config.FadeRatio
}

// Radius returns the hit radius.
func (t *Target) Radius() float64 {
	return t.Size / 2
}

// Center returns the center of the target's circle.
func (t *Target) Center() (float64, float64) {
	return t.X + t.Size/2, t.Y + t.Size/2
}

// Integrate advances the target by one motion tick. The multiplier scales
// displacement only; the stored velocity keeps its magnitude.
func (t *Target) Integrate(field Field, multiplier float64) {
	t.X += t.VX * multiplier
	t.Y += t.VY * multiplier

	// Independent per-axis reflection
	maxX, maxY := field.Limits(t.Size)
	ReflectAxis(&t.X, &t.VX, maxX)
	ReflectAxis(&t.Y, &t.VY, maxY)
}

// Clamp pulls the target back inside the field, e.g. after a resize.
func (t *Target) Clamp(field Field) {
	maxX, maxY := field.Limits(t.Size)
	ClampAxis(&t.X, maxX)
	ClampAxis(&t.Y, maxY)
}
