package listview

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a search term takes effect.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer commits the last value it was given once no new value has
// arrived for the configured duration.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	gen      uint64
	duration time.Duration
	commit   func(string)
}

func NewDebouncer(duration time.Duration, commit func(string)) *Debouncer {
	if duration <= 0 {
		duration = DefaultDebounce
	}
	return &Debouncer{duration: duration, commit: commit}
}

// Push restarts the quiet period with value as the candidate.
func (d *Debouncer) Push(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.duration, func() {
		// A timer that fired while Push was replacing it must not commit.
		d.mu.Lock()
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		d.commit(value)
	})
}

// Flush commits value now and drops any pending one.
func (d *Debouncer) Flush(value string) {
	d.Cancel()
	d.commit(value)
}

func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
