// internal/progress/progress.go
package progress

import (
	"context"
	"math/rand"
	"time"
)

// Update is one emitted progress tick.
type Update struct {
	Label   string
	Percent int
}

// Step pairs a display label with its share of the total.
type Step struct {
	Label  string
	Weight int
}

// DefaultSteps paces the analysis phases. Weights sum to 100.
func DefaultSteps() []Step {
	return []Step{
		{Label: "Analyzing personal trading patterns...", Weight: 15},
		{Label: "Fetching multi-source market data...", Weight: 25},
		{Label: "Cross-referencing expert insights...", Weight: 20},
		{Label: "AI model inference in progress...", Weight: 25},
		{Label: "Generating personalized analysis...", Weight: 15},
	}
}

const completeLabel = "Analysis complete - insights ready"

// Simulator paces a query by emitting progress updates. It produces no
// data; it exists so the owner can display perceived latency, and must be
// swappable for Instant in tests.
type Simulator interface {
	Run(ctx context.Context, emit func(Update)) error
}

// Stepped walks the step list at a jittered interval. Cancellation stops
// the timer immediately; no update is emitted after ctx is done.
type Stepped struct {
	Steps        []Step
	BaseInterval time.Duration
	Jitter       time.Duration
	Rand         *rand.Rand
}

func NewStepped(base, jitter time.Duration, r *rand.Rand) *Stepped {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Stepped{
		Steps:        DefaultSteps(),
		BaseInterval: base,
		Jitter:       jitter,
		Rand:         r,
	}
}

func (s *Stepped) interval() time.Duration {
	if s.Jitter <= 0 {
		return s.BaseInterval
	}
	return s.BaseInterval + time.Duration(s.Rand.Int63n(int64(s.Jitter)))
}

func (s *Stepped) Run(ctx context.Context, emit func(Update)) error {
	percent := 0
	timer := time.NewTimer(s.interval())
	defer timer.Stop()

	for _, step := range s.Steps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		percent += step.Weight
		emit(Update{Label: step.Label, Percent: percent})
		timer.Reset(s.interval())
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	emit(Update{Label: completeLabel, Percent: 100})
	return nil
}

// Instant completes in one emission, for tests and headless runs.
type Instant struct{}

func (Instant) Run(ctx context.Context, emit func(Update)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	emit(Update{Label: completeLabel, Percent: 100})
	return nil
}
