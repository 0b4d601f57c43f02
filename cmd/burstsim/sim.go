package main

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/decker502/coolmode/pkg/burst"
	"github.com/decker502/coolmode/pkg/host"
	"github.com/decker502/coolmode/pkg/overlay"
	"github.com/decker502/coolmode/pkg/sprite"
)

// Gesture 脚本化的指针手势
// 指针在 PressAt 按下、ReleaseAt 抬起，期间沿水平正弦来回移动以触发镜像；
// DetachAt 时拆除附着，之后等待剩余粒子落完
type Gesture struct {
	PressAt   time.Duration
	ReleaseAt time.Duration
	DetachAt  time.Duration
	// Sway 水平摆动幅度（像素），0 表示静止
	Sway float64
	// SwayPeriod 摆动周期
	SwayPeriod time.Duration
}

// DefaultGesture 按住约 2.4 秒，左右摆动
func DefaultGesture() Gesture {
	return Gesture{
		PressAt:    100 * time.Millisecond,
		ReleaseAt:  2500 * time.Millisecond,
		DetachAt:   3 * time.Second,
		Sway:       120,
		SwayPeriod: 2 * time.Second,
	}
}

// TickRecord 每帧一行的追踪记录
type TickRecord struct {
	Tick     int     `csv:"tick"`
	TimeMs   float64 `csv:"time_ms"`
	PointerX float64 `csv:"pointer_x"`
	Pressed  bool    `csv:"pressed"`
	State    string  `csv:"state"`
	Emitting bool    `csv:"emitting"`
	Facing   float64 `csv:"facing"`
	Spawned  int     `csv:"spawned"`
	Culled   int     `csv:"culled"`
	Live     int     `csv:"live"`
	Overlay  int     `csv:"overlay_visuals"`
	Burst    bool    `csv:"burst_started"`
}

// Summary 整次模拟的统计
type Summary struct {
	Ticks        int
	Bursts       int
	SpawnMean    float64
	SpawnStdDev  float64
	PeakLive     int
	TotalSpawned int
	TotalCulled  int
	Closed       bool
	ClosedAt     time.Duration
	OverlayFreed bool
}

func (s Summary) String() string {
	closed := "still draining"
	if s.Closed {
		closed = fmt.Sprintf("closed at %v", s.ClosedAt)
	}
	return fmt.Sprintf("ticks=%d bursts=%d spawns/burst=%.2f±%.2f peak=%d spawned=%d culled=%d (%s, overlay freed=%v)",
		s.Ticks, s.Bursts, s.SpawnMean, s.SpawnStdDev, s.PeakLive, s.TotalSpawned, s.TotalCulled, closed, s.OverlayFreed)
}

// Simulation 在手动时钟上驱动一个附着实例
type Simulation struct {
	Clock    *host.ManualClock
	Env      *host.Env
	Tracker  *host.PointerTracker
	Registry *overlay.Registry
	Engine   *burst.Engine
	Button   *host.Element
	Hook     *burst.Hook

	gesture Gesture
	dt      time.Duration
	tick    int

	perBurst []float64
	spawned  int
	culled   int
	burst    bool
	peak     int
}

// SimConfig 模拟参数
type SimConfig struct {
	Options burst.Options
	Sprite  string
	Seed    uint64
	Dt      time.Duration
	Width   float64
	Height  float64
	Gesture Gesture
}

// NewSimulation 创建模拟
//
// 精灵在启动前同步预热到缓存，附着在创建时即可激活，结果只取决于种子。
func NewSimulation(cfg SimConfig) (*Simulation, error) {
	if cfg.Dt <= 0 {
		cfg.Dt = time.Second / 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 800, 600
	}

	cache := sprite.NewCache()
	if _, err := cache.Load(cfg.Sprite); err != nil {
		return nil, fmt.Errorf("sprite %s: %w", cfg.Sprite, err)
	}

	clock := &host.ManualClock{}
	env := host.NewEnv(clock, cfg.Width, cfg.Height)
	registry := overlay.NewRegistry()
	engine := burst.NewEngine(env, registry, sprite.NewResolver(cache))
	engine.Rand = burst.NewRand(cfg.Seed)

	button := host.NewElement("withdraw", host.Rect{X: cfg.Width/2 - 160, Y: cfg.Height * 2 / 3, W: 320, H: 72})
	tracker := host.NewPointerTracker(env)
	tracker.Track(button)

	s := &Simulation{
		Clock:    clock,
		Env:      env,
		Tracker:  tracker,
		Registry: registry,
		Engine:   engine,
		Button:   button,
		gesture:  cfg.Gesture,
		dt:       cfg.Dt,
	}
	engine.Hooks = burst.Hooks{
		OnBurst: func(time.Duration) {
			s.perBurst = append(s.perBurst, 0)
			s.burst = true
		},
		OnSpawn: func(burst.Particle) {
			s.spawned++
			if n := len(s.perBurst); n > 0 {
				s.perBurst[n-1]++
			}
		},
		OnCull: func(burst.Particle) { s.culled++ },
	}
	s.Hook = engine.Bind(button, sprite.Static(cfg.Sprite), true, cfg.Options)
	return s, nil
}

// pointer 返回时刻 t 的脚本指针状态
func (s *Simulation) pointer(t time.Duration) host.PointerSnapshot {
	b := s.Button.Bounds
	x := b.X + b.W/2
	if s.gesture.Sway > 0 && s.gesture.SwayPeriod > 0 {
		phase := 2 * math.Pi * float64(t) / float64(s.gesture.SwayPeriod)
		x += s.gesture.Sway * math.Sin(phase)
	}
	return host.PointerSnapshot{
		X:       x,
		Y:       b.Y + b.H/2,
		Pressed: t >= s.gesture.PressAt && t < s.gesture.ReleaseAt,
		Focused: true,
	}
}

// Step 推进一帧并返回本帧记录
func (s *Simulation) Step() TickRecord {
	s.tick++
	s.Clock.Advance(s.dt)
	now := s.Clock.Now()

	if s.gesture.DetachAt > 0 && now >= s.gesture.DetachAt {
		s.Hook.Close()
	}

	snap := s.pointer(now)
	s.Tracker.Feed(snap)

	spawnedBefore, culledBefore := s.spawned, s.culled
	s.burst = false
	s.Env.Step()

	a := s.Hook.Current()
	s.peak = max(s.peak, a.Live())

	visuals := 0
	if surface := s.Registry.Surface(); surface != nil {
		visuals = surface.Len()
	}
	return TickRecord{
		Tick:     s.tick,
		TimeMs:   float64(now) / float64(time.Millisecond),
		PointerX: snap.X,
		Pressed:  snap.Pressed,
		State:    a.State().String(),
		Emitting: a.Emitting(),
		Facing:   a.Facing(),
		Spawned:  s.spawned - spawnedBefore,
		Culled:   s.culled - culledBefore,
		Live:     a.Live(),
		Overlay:  visuals,
		Burst:    s.burst,
	}
}

// Done 附着已关闭
func (s *Simulation) Done() bool {
	return s.Hook.Current().State() == burst.StateClosed
}

// Run 运行至多 maxTicks 帧或直到附着关闭，每帧回调 record（可为 nil）
func (s *Simulation) Run(maxTicks int, record func(TickRecord) error) (Summary, error) {
	for s.tick < maxTicks && !s.Done() {
		rec := s.Step()
		if record != nil {
			if err := record(rec); err != nil {
				return s.Summary(), err
			}
		}
	}
	return s.Summary(), nil
}

// Summary 汇总当前统计
func (s *Simulation) Summary() Summary {
	sum := Summary{
		Ticks:        s.tick,
		Bursts:       len(s.perBurst),
		PeakLive:     s.peak,
		TotalSpawned: s.spawned,
		TotalCulled:  s.culled,
		Closed:       s.Done(),
		OverlayFreed: s.Registry.Live() == 0 && s.Registry.Surface() == nil,
	}
	if sum.Closed {
		sum.ClosedAt = s.Clock.Now()
	}
	if len(s.perBurst) > 0 {
		sum.SpawnMean, sum.SpawnStdDev = stat.MeanStdDev(s.perBurst, nil)
		if len(s.perBurst) == 1 {
			sum.SpawnStdDev = 0
		}
	}
	return sum
}
