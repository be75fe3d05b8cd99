package limiter

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// AdmissionLimiter
// Specialized component to bound in-flight requests against the lyrics source
// Responsibilities:
// - Cap the number of concurrently admitted operations to a fixed slot count
// - Impose a randomized pre-request delay while the slot is held, so that
//   admitted requests do not burst against the external source
// - Release slots deterministically regardless of how the operation ends
type AdmissionLimiter interface {
	Acquire(ctx context.Context) (release func(), err error)
	SetDelayWindow(min, max time.Duration)
	SetRandomSeed(randomSeed int64)
	InFlight() int
}

type SlotLimiter struct {
	slots chan struct{}

	mu       sync.RWMutex
	minDelay time.Duration
	maxDelay time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewSlotLimiter(slotCount int) *SlotLimiter {
	if slotCount < 1 {
		slotCount = 1
	}
	return &SlotLimiter{
		slots: make(chan struct{}, slotCount),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetDelayWindow configures the uniform random delay applied while a slot
// is held. A zero window disables the delay entirely.
func (l *SlotLimiter) SetDelayWindow(min, max time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	l.minDelay = min
	l.maxDelay = max
}

// SetRandomSeed makes the delay sequence reproducible for tests.
func (l *SlotLimiter) SetRandomSeed(randomSeed int64) {
	l.rngMu.Lock()
	defer l.rngMu.Unlock()

	l.rng = rand.New(rand.NewSource(randomSeed))
}

// Acquire blocks until a slot is free, then sleeps the randomized delay while
// holding the slot. The returned release func must be called exactly once;
// the slot stays held for the delay plus whatever the caller does before
// releasing. Acquire returns the context error if the caller gives up while
// waiting for a slot or during the delay.
func (l *SlotLimiter) Acquire(ctx context.Context) (func(), error) {
	select {
	case l.slots <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	delay := l.resolveDelay()
	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			<-l.slots
			return nil, ctx.Err()
		}
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			<-l.slots
		})
	}
	return release, nil
}

// InFlight reports how many slots are currently held.
func (l *SlotLimiter) InFlight() int {
	return len(l.slots)
}

// resolveDelay draws a uniformly distributed duration from the configured
// window.
func (l *SlotLimiter) resolveDelay() time.Duration {
	l.mu.RLock()
	min := l.minDelay
	max := l.maxDelay
	l.mu.RUnlock()

	if max <= min {
		return min
	}

	l.rngMu.Lock()
	defer l.rngMu.Unlock()

	if l.rng == nil {
		l.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return min + time.Duration(l.rng.Int63n(int64(max-min)))
}
