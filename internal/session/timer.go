package session

import (
	"sync"
	"time"
)

// TickPeriod is how often a running test refreshes its countdown.
const TickPeriod = 100 * time.Millisecond

// Timer is a recurring tick source. After Stop returns no further tick is
// delivered.
type Timer interface {
	Stop()
}

// TimerFactory arms a timer that delivers ticks tagged with gen.
type TimerFactory func(period time.Duration, gen uint64) Timer

// IntervalTimer calls fire on every period until stopped.
type IntervalTimer struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewIntervalTimer starts a ticker goroutine. fire runs on that goroutine
// and must not block on the event loop that calls Stop.
func NewIntervalTimer(period time.Duration, fire func()) *IntervalTimer {
	t := &IntervalTimer{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go t.run(period, fire)
	return t
}

func (t *IntervalTimer) run(period time.Duration, fire func()) {
	defer close(t.done)
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			// Stop may have raced with the ticker; it wins.
			select {
			case <-t.stop:
				return
			default:
			}
			fire()
		}
	}
}

// Stop halts the ticker and waits for its goroutine to exit. Safe to call
// more than once.
func (t *IntervalTimer) Stop() {
	t.once.Do(func() {
		close(t.stop)
	})
	<-t.done
}
