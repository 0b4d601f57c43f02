package burst

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/decker502/coolmode/pkg/host"
	"github.com/decker502/coolmode/pkg/overlay"
	"github.com/decker502/coolmode/pkg/sprite"
)

// DrainPollInterval 拆除后检查粒子是否落完的周期
const DrainPollInterval = 500 * time.Millisecond

// SpriteResolver 异步精灵解析能力
type SpriteResolver interface {
	Resolve(ctx context.Context, src sprite.Source) *sprite.Future
}

// Hooks 可选的观测回调，供提示音、模拟器统计与测试使用
type Hooks struct {
	OnBurst func(now time.Duration)
	OnSpawn func(p Particle)
	OnCull  func(p Particle)
}

// Engine 持有宿主环境与共享资源，负责创建附着实例
type Engine struct {
	Env     *host.Env
	Overlay *overlay.Registry
	Sprites SpriteResolver
	// Rand 为 nil 时每个附着实例使用基于时间种子的随机源
	Rand  Rand
	Hooks Hooks
}

// NewEngine 创建引擎
func NewEngine(env *host.Env, registry *overlay.Registry, sprites SpriteResolver) *Engine {
	return &Engine{Env: env, Overlay: registry, Sprites: sprites}
}

// State 附着实例状态
type State int

const (
	// StateInactive 精灵尚未解析，没有监听器也没有帧循环
	StateInactive State = iota
	// StateArmed 已激活：监听指针事件，帧循环运行中
	StateArmed
	// StateDraining 已拆除监听器，等待剩余粒子落完
	StateDraining
	// StateClosed 资源已全部释放
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateArmed:
		return "armed"
	case StateDraining:
		return "draining"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

type binding struct {
	target *host.Target
	id     host.ListenerID
}

// Attachment 绑定在一个宿主元素上的引擎实例
type Attachment struct {
	engine *Engine
	el     *host.Element
	cfg    Config
	rng    Rand

	emitter *Emitter
	state   State
	url     string

	future    *sprite.Future
	waitFrame host.FrameID
	frame     host.FrameID
	drain     host.TimerID
	overlay   *overlay.Handle
	bindings  []binding

	particles []Particle

	// 指针跟踪
	mouseX, mouseY float64
	prevMouseX     float64
	facing         float64

	lastTs  time.Duration
	started bool
	closed  bool
}

// Attach 把引擎绑定到元素上
//
// enabled 为 false、元素为 nil 或精灵来源为空时返回一个已关闭的实例，
// 其 Detach 为空操作。精灵解析完成前实例保持 inactive。
func (e *Engine) Attach(el *host.Element, src sprite.Source, enabled bool, opts Options) *Attachment {
	a := &Attachment{
		engine: e,
		el:     el,
		cfg:    Resolve(opts),
		rng:    e.Rand,
		facing: 1,
	}
	if a.rng == nil {
		a.rng = defaultRand()
	}
	a.emitter = NewEmitter(&a.cfg, a.rng)

	if !enabled || el == nil || src.IsZero() {
		a.state = StateClosed
		a.closed = true
		return a
	}

	a.future = e.Sprites.Resolve(context.Background(), src)
	a.pollSprite(e.Env.Clock.Now())
	return a
}

// State 返回当前状态
func (a *Attachment) State() State {
	return a.state
}

// Config 返回解析后的配置
func (a *Attachment) Config() Config {
	return a.cfg
}

// Live 返回存活粒子数
func (a *Attachment) Live() int {
	return len(a.particles)
}

// Particles 返回存活粒子的副本
func (a *Attachment) Particles() []Particle {
	out := make([]Particle, len(a.particles))
	copy(out, a.particles)
	return out
}

// Emitting 是否处于喷发状态
func (a *Attachment) Emitting() bool {
	return a.emitter.Emitting()
}

// Facing 指针最近的水平移动方向（+1 向右，-1 向左）
func (a *Attachment) Facing() float64 {
	return a.facing
}

func (a *Attachment) pollSprite(now time.Duration) {
	a.waitFrame = 0
	res, ok := a.future.Poll()
	if !ok {
		if a.future.Cancelled() {
			return
		}
		a.waitFrame = a.engine.Env.Frames.Request(a.pollSprite)
		return
	}
	if res.Err != nil {
		log.Printf("[Burst] sprite unavailable for %s, staying inactive: %v", a.el.Name, res.Err)
		return
	}
	a.arm(res.URL, now)
}

func (a *Attachment) arm(url string, now time.Duration) {
	env := a.engine.Env
	a.url = url
	a.overlay = a.engine.Overlay.Acquire()
	a.state = StateArmed

	a.bind(&a.el.Target, host.EventPointerMove, a.onMove)
	a.bind(&a.el.Target, host.EventPointerDown, a.onDown)
	a.bind(&a.el.Target, host.EventPointerLeave, a.onStop)
	a.bind(&env.Window.Target, host.EventPointerUp, a.onStop)
	a.bind(&env.Window.Target, host.EventPointerCancel, a.onStop)
	a.bind(&env.Window.Target, host.EventBlur, a.onStop)
	a.bind(&env.Document.Target, host.EventVisibilityChange, a.onVisibility)

	log.Printf("[Burst] armed on %s (sprite=%s, burst=%d, max=%d)", a.el.Name, url, a.cfg.BurstCount, a.cfg.MaxParticles)
	a.loop(now)
}

func (a *Attachment) bind(t *host.Target, typ host.EventType, fn func(host.Event)) {
	a.bindings = append(a.bindings, binding{target: t, id: t.On(typ, fn)})
}

func (a *Attachment) onMove(ev host.Event) {
	a.prevMouseX = a.mouseX
	a.mouseX = ev.X
	a.mouseY = ev.Y
	dx := a.mouseX - a.prevMouseX
	if math.Abs(dx) > 1 {
		if dx >= 0 {
			a.facing = 1
		} else {
			a.facing = -1
		}
	}
}

func (a *Attachment) onDown(ev host.Event) {
	a.onMove(ev)
	a.emitter.Start(a.engine.Env.Clock.Now())
}

func (a *Attachment) onStop(host.Event) {
	a.emitter.Stop()
}

func (a *Attachment) onVisibility(host.Event) {
	if a.engine.Env.Document.Hidden {
		a.emitter.Stop()
	}
}

// loop 帧循环：调度、生成、积分，然后请求下一帧
func (a *Attachment) loop(now time.Duration) {
	if !a.started {
		a.lastTs = now
		a.started = true
	}
	dt := (now - a.lastTs).Seconds()
	a.lastTs = now

	n, started := a.emitter.Tick(now, dt, len(a.particles))
	if started && a.engine.Hooks.OnBurst != nil {
		a.engine.Hooks.OnBurst(now)
	}
	for i := 0; i < n; i++ {
		a.spawn()
	}

	a.integrate()
	a.frame = a.engine.Env.Frames.Request(a.loop)
}

func (a *Attachment) spawn() {
	surface := a.overlay.Surface()
	if surface == nil {
		return
	}

	size := PickSize(a.rng)
	p := Particle{
		X:    a.mouseX - size/2,
		Y:    a.mouseY - size/2,
		Size: size,
	}
	p.VX, p.VY = Launch(&a.cfg, a.rng, a.facing)
	p.Visual = surface.Add(a.url, p.X, p.Y, size)

	a.particles = append(a.particles, p)
	if a.engine.Hooks.OnSpawn != nil {
		a.engine.Hooks.OnSpawn(p)
	}
}

func (a *Attachment) integrate() {
	if len(a.particles) == 0 {
		return
	}
	surface := a.overlay.Surface()
	if surface == nil {
		return
	}

	onCull := func(p Particle) {
		surface.Remove(p.Visual)
		if a.engine.Hooks.OnCull != nil {
			a.engine.Hooks.OnCull(p)
		}
	}
	onMove := func(p *Particle, rotation float64) {
		surface.Move(p.Visual, p.X, p.Y, rotation)
	}
	a.particles = a.cfg.Physics.Step(a.particles, a.engine.Env.BottomLimit(), onCull, onMove)
}

// Detach 拆除附着，可重复调用
//
// 监听器立即同步注销，喷发随之停止；已生成的粒子继续下落，
// 全部落出后才取消帧循环并释放覆盖层引用。
func (a *Attachment) Detach() {
	if a.closed {
		return
	}
	a.closed = true

	for _, b := range a.bindings {
		b.target.Off(b.id)
	}
	a.bindings = nil

	env := a.engine.Env
	if a.state == StateInactive {
		a.future.Cancel()
		if a.waitFrame != 0 {
			env.Frames.Cancel(a.waitFrame)
			a.waitFrame = 0
		}
		a.state = StateClosed
		return
	}

	a.emitter.Stop()
	a.state = StateDraining
	a.drain = env.Timers.SetInterval(DrainPollInterval, a.checkDrained)
}

func (a *Attachment) checkDrained() {
	if len(a.particles) > 0 {
		return
	}
	env := a.engine.Env
	env.Timers.Clear(a.drain)
	env.Frames.Cancel(a.frame)
	a.overlay.Release()
	a.state = StateClosed
	log.Printf("[Burst] %s drained and closed", a.el.Name)
}
