package todo

import (
	"sync"
	"time"
)

// monotonicClock 保证连续调用返回严格递增的时间（UTC）
// 墙上时钟回拨时沿用上一次时间 +1ns
type monotonicClock struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func newMonotonicClock(now func() time.Time) *monotonicClock {
	if now == nil {
		now = time.Now
	}
	return &monotonicClock{now: now}
}

func (c *monotonicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().UTC().Round(0)
	if !t.After(c.last) {
		t = c.last.Add(time.Nanosecond)
	}
	c.last = t
	return t
}
