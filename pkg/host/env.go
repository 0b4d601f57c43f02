package host

import "time"

// Clock 时间源，返回自启动以来的单调时间
type Clock interface {
	Now() time.Duration
}

// MonotonicClock 基于 time.Since 的真实时钟
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock 创建从当前时刻开始计时的时钟
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// Now 返回启动以来经过的时间
func (c *MonotonicClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock 手动推进的时钟，用于测试和无头模拟
type ManualClock struct {
	T time.Duration
}

// Now 返回当前时间
func (c *ManualClock) Now() time.Duration {
	return c.T
}

// Advance 前进 d
func (c *ManualClock) Advance(d time.Duration) {
	c.T += d
}

// Env 宿主环境集合
type Env struct {
	Window   *Window
	Document *Document
	Frames   *Frames
	Timers   *Timers
	Clock    Clock
}

// NewEnv 创建宿主环境，视口尺寸为 width x height，文档高度与视口相同
func NewEnv(clock Clock, width, height float64) *Env {
	return &Env{
		Window:   &Window{Width: width, Height: height, Focused: true},
		Document: &Document{Height: height},
		Frames:   NewFrames(),
		Timers:   NewTimers(),
		Clock:    clock,
	}
}

// Step 推进一帧：先触发到期定时器，再执行帧回调
// 输入事件应在 Step 之前投递
func (e *Env) Step() time.Duration {
	now := e.Clock.Now()
	e.Timers.Advance(now)
	e.Frames.Run(now)
	return now
}

// Resize 更新视口尺寸
func (e *Env) Resize(width, height float64) {
	e.Window.Width = width
	e.Window.Height = height
}
