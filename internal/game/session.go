// Package game is the simulation core of Target Hunter: target lifecycle,
// spawning, motion, scoring, difficulty and the item economy, gated by a
// stopped/running/paused state machine.
//
// A Session performs no scheduling of its own. The host calls ClockTick,
// SpawnTick and MotionTick at the periods in the game config package and
// forwards player input to Click, UseItem, Start, Pause and Reset.
package game

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/target-hunter/internal/game/config"
	"github.com/tomz197/target-hunter/internal/object"
	"github.com/tomz197/target-hunter/internal/physics"
)

// State is the phase of the game.
type State int

const (
	StateStopped State = iota // Initial, and after a reset
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// FieldSizeFunc returns the current field dimensions in pixels.
type FieldSizeFunc func() (width, height float64)

// Default field used when no FieldSizeFunc is configured.
const (
	DefaultFieldWidth  = 800
	DefaultFieldHeight = 600
)

// hitGridCellSize must cover the largest hit radius.
const hitGridCellSize = 80.0

// Options configures a Session. Every field is optional.
type Options struct {
	Store     Store
	SaveKey   string
	Notifier  Notifier
	FieldSize FieldSizeFunc
	Time      TimeSource
	Rand      *rand.Rand
	Logger    *log.Logger
}

// Session is the single live game. All methods are safe for concurrent use;
// every piece of session state is guarded by one mutex.
type Session struct {
	mu sync.Mutex

	state     State
	clock     *Clock
	startTime time.Time // Game-clock instant gameTime counts from

	score       int
	totalHits   int
	totalMisses int
	level       int
	gameTime    int

	spawnInterval time.Duration
	maxTargets    int

	targets       *Registry
	items         [ItemCount]int
	milestoneSeen [ItemCount]int // Hit count at the last milestone check, per item
	effects       [EffectCount]Effect

	store     Store
	saveKey   string
	notifier  Notifier
	fieldSize FieldSizeFunc
	rng       *rand.Rand
	logger    *log.Logger
	hitGrid   *physics.SpatialGrid
}

// NewSession creates a stopped session and loads saved progress from the store.
func NewSession(opts Options) *Session {
	s := &Session{
		state:         StateStopped,
		level:         1,
		spawnInterval: config.InitialSpawnInterval,
		maxTargets:    config.InitialMaxTargets,
		targets:       NewRegistry(),
		store:         opts.Store,
		saveKey:       opts.SaveKey,
		notifier:      opts.Notifier,
		fieldSize:     opts.FieldSize,
		rng:           opts.Rand,
		logger:        opts.Logger,
	}

	src := opts.Time
	if src == nil {
		src = SystemTime{}
	}
	s.clock = NewClock(src)
	s.clock.Pause() // Game time only advances while running

	if s.saveKey == "" {
		s.saveKey = config.DefaultSaveKey
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.logger == nil {
		s.logger = log.Default()
	}

	s.load()
	return s
}

// load restores saved progress. Failures fall back to a fresh game.
func (s *Session) load() {
	if s.store == nil {
		return
	}
	rec, err := s.store.Load(s.saveKey)
	if err != nil {
		if !errors.Is(err, ErrNoRecord) {
			s.logger.Warn("failed to load game data", "key", s.saveKey, "err", err)
		}
		return
	}
	rec = rec.Normalized()

	s.score = rec.Score
	s.totalHits = rec.TotalHits
	s.totalMisses = rec.TotalMisses
	s.gameTime = rec.GameTime
	s.level = max(rec.Level, LevelFor(s.score))
	if s.level > 1 {
		s.applyDifficulty()
	}

	// Milestones already paid out in the saved run are not granted again
	for i := range s.milestoneSeen {
		s.milestoneSeen[i] = s.totalHits
	}

	s.logger.Info("loaded game data", "key", s.saveKey, "score", s.score, "level", s.level)
}

// persist saves the current record. Must be called with s.mu held.
func (s *Session) persist() {
	if s.store == nil {
		return
	}
	if err := s.store.Save(s.saveKey, s.record()); err != nil {
		s.logger.Error("failed to save game data", "key", s.saveKey, "err", err)
	}
}

func (s *Session) record() Record {
	return Record{
		Score:       s.score,
		TotalHits:   s.totalHits,
		TotalMisses: s.totalMisses,
		Level:       s.level,
		GameTime:    s.gameTime,
	}
}

// Save persists the current progress, e.g. before the process exits.
func (s *Session) Save() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persist()
}

// Record returns the progress as it would be saved.
func (s *Session) Record() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record()
}

func (s *Session) notify(ev Event) {
	s.notifier.Notify(ev)
}

func (s *Session) setState(st State) {
	s.state = st
	s.notify(Event{Type: EventStateChanged, State: st})
}

// field queries presentation for the current bounds.
func (s *Session) field() object.Field {
	if s.fieldSize == nil {
		return object.Field{Width: DefaultFieldWidth, Height: DefaultFieldHeight}
	}
	w, h := s.fieldSize()
	return object.Field{Width: w, Height: h}
}

// Start begins a new game from stopped, or resumes a paused one.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateStopped:
		s.clock.Resume()
		s.startTime = s.clock.Now().Add(-time.Duration(s.gameTime) * time.Second)
		s.setState(StateRunning)
		s.spawn(object.RandomKind(s.rng))
	case StatePaused:
		s.clock.Resume()
		s.setState(StateRunning)
	}
}

// Pause freezes a running game. Game time, target ages and effect
// countdowns stand still until the next Start.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return
	}
	s.clock.Pause()
	s.setState(StatePaused)
}

// Toggle maps the single start/pause key: stopped starts, running pauses,
// paused resumes.
func (s *Session) Toggle() {
	switch s.State() {
	case StateStopped, StatePaused:
		s.Start()
	case StateRunning:
		s.Pause()
	}
}

// Reset stops the game from any state and zeroes all progress, items and
// effects. Live targets are removed without scoring.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clock.Pause()

	for _, t := range s.targets.All() {
		s.notify(Event{Type: EventTargetRemoved, TargetID: t.ID, Kind: t.Kind, X: t.X, Y: t.Y, Size: t.Size, Reason: ReasonClear})
	}
	s.targets.Clear()

	s.score = 0
	s.totalHits = 0
	s.totalMisses = 0
	s.level = 1
	s.gameTime = 0
	s.spawnInterval = config.InitialSpawnInterval
	s.maxTargets = config.InitialMaxTargets
	s.items = [ItemCount]int{}
	s.milestoneSeen = [ItemCount]int{}
	for k, e := range s.effects {
		if e.Active {
			s.notify(Event{Type: EventEffectExpired, Effect: EffectKind(k)})
		}
	}
	s.effects = [EffectCount]Effect{}

	s.setState(StateStopped)
	s.emitStats()
	s.persist()
}

// State returns the current phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SpawnInterval returns the current spawn period. Hosts re-arm their spawn
// ticker whenever it changes.
func (s *Session) SpawnInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spawnInterval
}

// Resize pulls every live target back inside the current field bounds.
// Presentation calls it after the field changed size.
func (s *Session) Resize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	field := s.field()
	for _, t := range s.targets.All() {
		t.Clamp(field)
	}
}

// TargetAt returns the id of the topmost live target whose circle contains
// the field point (x, y). Later targets are drawn above earlier ones.
func (s *Session) TargetAt(x, y float64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.targetAt(x, y)
}

func (s *Session) targetAt(x, y float64) (int, bool) {
	field := s.field()
	if s.hitGrid == nil || !s.hitGrid.Covers(field.Width, field.Height) {
		s.hitGrid = physics.NewSpatialGrid(field.Width, field.Height, hitGridCellSize)
	}
	s.hitGrid.Clear()

	all := s.targets.All()
	for i, t := range all {
		cx, cy := t.Center()
		s.hitGrid.Insert(cx, cy, i)
	}

	best := -1
	s.hitGrid.QueryAround(x, y, func(i int) bool {
		t := all[i]
		cx, cy := t.Center()
		if physics.PointInCircle(x, y, cx, cy, t.Radius()) && i > best {
			best = i
		}
		return false
	})
	if best < 0 {
		return 0, false
	}
	return all[best].ID, true
}

// Click resolves a click at field point (x, y): a hit on the topmost target
// there, otherwise a field miss.
func (s *Session) Click(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return
	}
	if id, ok := s.targetAt(x, y); ok {
		s.hitTarget(id)
		return
	}
	s.fieldClick(x, y)
}

// Snapshot is an immutable copy of the session for rendering.
type Snapshot struct {
	State         State
	Stats         Stats
	Items         [ItemCount]int
	Effects       [EffectCount]EffectStatus
	Targets       []object.Target // Creation order
	Field         object.Field
	Now           time.Time // Game-clock instant of the snapshot
	SpawnInterval time.Duration
	MaxTargets    int
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	snap := Snapshot{
		State:         s.state,
		Stats:         s.stats(),
		Items:         s.items,
		Targets:       make([]object.Target, 0, s.targets.Len()),
		Field:         s.field(),
		Now:           now,
		SpawnInterval: s.spawnInterval,
		MaxTargets:    s.maxTargets,
	}
	for k, e := range s.effects {
		snap.Effects[k] = EffectStatus{Active: e.On(now), Remaining: e.Remaining(now)}
	}
	for _, t := range s.targets.All() {
		snap.Targets = append(snap.Targets, *t)
	}
	return snap
}
