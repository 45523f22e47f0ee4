// Package synth generates placeholder datasets for dashboard modules.
//
// Every dataset produced by one call derives its notion of elapsed time and
// progress from a single Timeline, so no two modules disagree about how far
// along a goal is.
package synth

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/capability"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/types"
)

// DefaultMaxProgress bounds the random progress draw: generated goals are
// in progress, never complete.
const DefaultMaxProgress = 0.6

// Placeholder is the record stored for a module whose generator failed.
var Placeholder = json.RawMessage(`{"status":"unavailable"}`)

// Timeline is the shared progress model of one synthesis pass.
type Timeline struct {
	Start            time.Time `json:"start"`
	AsOf             time.Time `json:"as_of"`
	Target           time.Time `json:"target"`
	TotalDays        int       `json:"total_days"`
	ElapsedDays      int       `json:"elapsed_days"`
	DaysRemaining    int       `json:"days_remaining"`
	ProgressFraction float64   `json:"progress_fraction"`
}

// NewTimeline spans today to target and places the as-of point at the
// given progress. totalDays is at least 1; progress is clamped to [0,1].
func NewTimeline(today, target time.Time, progress float64) Timeline {
	progress = clamp(progress, 0, 1)
	total := int(math.Round(target.Sub(today).Hours() / 24))
	if total < 1 {
		total = 1
	}
	elapsed := int(math.Round(float64(total) * progress))
	start := target.AddDate(0, 0, -total)

	return Timeline{
		Start:            start,
		AsOf:             start.AddDate(0, 0, elapsed),
		Target:           target,
		TotalDays:        total,
		ElapsedDays:      elapsed,
		DaysRemaining:    total - elapsed,
		ProgressFraction: progress,
	}
}

// ProgressPercent is the progress fraction as a percentage with one decimal.
func (t Timeline) ProgressPercent() float64 {
	return round1(t.ProgressFraction * 100)
}

// dayAt returns the date offset days after the timeline start.
func (t Timeline) dayAt(offset int) string {
	return t.Start.AddDate(0, 0, offset).Format(types.DateLayout)
}

// Input is everything a synthesis pass needs about one goal.
type Input struct {
	Context       types.GoalContext
	EstimatedCost int
	TargetDate    time.Time
	Agents        []string
	Modules       []capability.ModuleKind
}

// Result is the output of one synthesis pass.
type Result struct {
	Timeline Timeline
	Dataset  map[capability.ModuleKind]json.RawMessage
	// Failed lists modules whose generator failed and got Placeholder.
	Failed []capability.ModuleKind
}

// Synthesizer produces module datasets. Its random source is the only
// mutable state and is guarded by a mutex; it is safe for concurrent use.
type Synthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand

	now         func() time.Time
	registry    *capability.Registry
	maxProgress float64
	generators  map[capability.ModuleKind]generator
	logger      *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithClock sets the clock used to anchor the timeline.
func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) {
		s.now = now
	}
}

// WithRegistry sets the capability registry. Modules it does not know
// produce no dataset entry.
func WithRegistry(r *capability.Registry) Option {
	return func(s *Synthesizer) {
		s.registry = r
	}
}

// WithMaxProgress sets the upper bound of the random progress draw.
func WithMaxProgress(p float64) Option {
	return func(s *Synthesizer) {
		if p > 0 && p <= 1 {
			s.maxProgress = p
		}
	}
}

// WithLogger sets the logger used for generator failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Synthesizer) {
		s.logger = l
	}
}

// New creates a Synthesizer seeded with seed. A zero seed draws one from
// the wall clock and logs it so a run can be reproduced.
func New(seed uint64, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		now:         time.Now,
		registry:    capability.Default(),
		maxProgress: DefaultMaxProgress,
		generators:  defaultGenerators(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
		s.logger.Debug("synth: using clock seed", "seed", seed)
	}
	s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return s
}

// Synthesize draws a progress fraction uniformly from [0, maxProgress]
// and generates every module from it.
func (s *Synthesizer) Synthesize(in Input) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run(in, s.rng.Float64()*s.maxProgress)
}

// SynthesizeWithProgress generates every module from an explicit progress
// fraction. No random draw decides progress.
func (s *Synthesizer) SynthesizeWithProgress(in Input, progress float64) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run(in, progress)
}

// run must be called with mu held.
func (s *Synthesizer) run(in Input, progress float64) Result {
	today := s.today()
	target := in.TargetDate
	if target.IsZero() {
		target = today
	}
	tl := NewTimeline(today, target, progress)

	res := Result{
		Timeline: tl,
		Dataset:  make(map[capability.ModuleKind]json.RawMessage, len(in.Modules)),
	}
	for _, kind := range in.Modules {
		if _, done := res.Dataset[kind]; done {
			continue
		}
		c, ok := s.registry.Get(kind)
		if !ok {
			continue
		}
		data, err := s.generate(kind, &genInput{
			Input:    in,
			Timeline: tl,
			Params:   c.DefaultParameters,
			rng:      s.rng,
		})
		if err != nil {
			s.logger.Warn("synth: generator failed",
				"module", kind,
				"category", in.Context.Category,
				"error", err,
			)
			res.Dataset[kind] = Placeholder
			res.Failed = append(res.Failed, kind)
			continue
		}
		res.Dataset[kind] = data
	}
	return res
}

// generate runs one generator, converting a panic into an error.
func (s *Synthesizer) generate(kind capability.ModuleKind, in *genInput) (data json.RawMessage, err error) {
	gen, ok := s.generators[kind]
	if !ok {
		return nil, fmt.Errorf("no generator for %q", kind)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panic: %v", r)
		}
	}()

	record, err := gen(in)
	if err != nil {
		return nil, err
	}
	return json.Marshal(record)
}

func (s *Synthesizer) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v):
		return lo
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
