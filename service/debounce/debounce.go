package debounce

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Event is a debouncer emission. Active false means the input is below the
// minimum query length: an explicit "not searched" signal, distinct from a
// search that found nothing.
type Event struct {
	Query  string
	Active bool
}

// Debouncer turns a rapidly changing input string into a settled query after
// a quiet interval. Inputs below the minimum length short-circuit to an
// immediate inactive event.
type Debouncer struct {
	interval time.Duration
	minLen   int

	mu    sync.Mutex
	timer *time.Timer
	out   chan Event
}

func New(interval time.Duration, minLen int) *Debouncer {
	return &Debouncer{
		interval: interval,
		minLen:   minLen,
		out:      make(chan Event, 8),
	}
}

// Events returns the channel settled and inactive events arrive on.
func (d *Debouncer) Events() <-chan Event {
	return d.out
}

// Feed submits the current raw input. Every call cancels the pending timer;
// a settled event fires only after the input has been stable for the full
// quiet interval.
func (d *Debouncer) Feed(raw string) {
	q := strings.TrimSpace(raw)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if utf8.RuneCountInString(q) < d.minLen {
		d.emit(Event{Query: q, Active: false})
		return
	}

	d.timer = time.AfterFunc(d.interval, func() {
		d.emit(Event{Query: q, Active: true})
	})
}

// Stop cancels any pending emission.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// emit never blocks the timer goroutine: when the consumer lags, the oldest
// buffered event is dropped in favor of the newer one.
func (d *Debouncer) emit(e Event) {
	for {
		select {
		case d.out <- e:
			return
		default:
			select {
			case <-d.out:
			default:
			}
		}
	}
}
