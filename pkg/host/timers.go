package host

import (
	"sort"
	"time"
)

// TimerID 定时器句柄
type TimerID uint64

type interval struct {
	every time.Duration
	next  time.Duration
	fn    func()
}

// Timers 单线程周期定时器（setInterval 语义），由 Advance 推进
type Timers struct {
	nextID TimerID
	timers map[TimerID]*interval
	now    time.Duration
}

// NewTimers 创建定时器集合
func NewTimers() *Timers {
	return &Timers{timers: make(map[TimerID]*interval)}
}

// SetInterval 注册周期回调，首次触发在 every 之后
func (t *Timers) SetInterval(every time.Duration, fn func()) TimerID {
	if every <= 0 {
		every = time.Millisecond
	}
	t.nextID++
	t.timers[t.nextID] = &interval{every: every, next: t.now + every, fn: fn}
	return t.nextID
}

// Clear 注销定时器
func (t *Timers) Clear(id TimerID) {
	delete(t.timers, id)
}

// Active 返回仍在运行的定时器数量
func (t *Timers) Active() int {
	return len(t.timers)
}

// Advance 推进到 now，每个到期的定时器本次最多触发一次
func (t *Timers) Advance(now time.Duration) {
	t.now = now

	ids := make([]TimerID, 0, len(t.timers))
	for id, it := range t.timers {
		if now >= it.next {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		it, ok := t.timers[id]
		if !ok {
			continue
		}
		it.next = now + it.every
		it.fn()
	}
}
