package burst

import (
	"math"
	"time"
)

// 突发内部速率的微扰幅度（总宽度，占速率的比例）
const rateNoise = 0.05

// Emitter 突发调度器
//
// 喷发期间每隔 BurstIntervalSec（加随机抖动）开始一次突发，每次突发的
// BurstCount 个粒子按 BurstCount/BurstDurationSec 的速率分摊到若干帧。
// 小数部分累积在 acc 中，余数按概率取整。上一次突发未发完之前不会
// 开始下一次突发。
type Emitter struct {
	cfg *Config
	rng Rand

	emitting    bool
	nextBurstAt time.Duration
	remaining   int     // 本次突发尚未生成的粒子数
	acc         float64 // 本次突发的小数累加器
}

// NewEmitter 创建调度器
func NewEmitter(cfg *Config, rng Rand) *Emitter {
	return &Emitter{cfg: cfg, rng: rng}
}

// Start 开始喷发（指针按下），首次突发在 InitialBurstDelaySec 之后
func (e *Emitter) Start(now time.Duration) {
	e.emitting = true
	e.nextBurstAt = now + seconds(e.cfg.InitialBurstDelaySec)
	e.remaining = 0
	e.acc = 0
}

// Stop 停止喷发，丢弃本次突发剩余的粒子
func (e *Emitter) Stop() {
	e.emitting = false
	e.remaining = 0
	e.acc = 0
}

// Emitting 是否处于喷发状态
func (e *Emitter) Emitting() bool {
	return e.emitting
}

// Remaining 本次突发尚未生成的粒子数
func (e *Emitter) Remaining() int {
	return e.remaining
}

// NextBurstAt 下一次突发的最早开始时间
func (e *Emitter) NextBurstAt() time.Duration {
	return e.nextBurstAt
}

// Tick 推进一帧，返回本帧应生成的粒子数以及本帧是否开始了新突发
// live 为当前存活粒子数，dt 为距上一帧的秒数
func (e *Emitter) Tick(now time.Duration, dt float64, live int) (spawn int, started bool) {
	if !e.emitting {
		return 0, false
	}

	room := e.cfg.MaxParticles - live

	if now >= e.nextBurstAt && e.remaining == 0 {
		e.remaining = e.cfg.BurstCount
		e.acc = 0
		jitter := 0.0
		if e.cfg.BurstJitterSec > 0 {
			jitter = e.rng.Float64() * e.cfg.BurstJitterSec
		}
		e.nextBurstAt = now + seconds(e.cfg.BurstIntervalSec+jitter)
		started = true
	}

	if e.remaining > 0 && room > 0 {
		rate := float64(e.cfg.BurstCount) / e.cfg.BurstDurationSec
		noise := (e.rng.Float64() - 0.5) * rate * rateNoise
		e.acc += math.Max(0, rate+noise) * dt

		whole := math.Floor(e.acc)
		n := e.remaining
		if whole < float64(n) {
			n = int(whole)
		}
		n = min(n, room)

		// 概率取整
		if n < e.remaining && n < room && e.rng.Float64() < e.acc-whole {
			n++
		}

		e.acc = math.Max(0, e.acc-float64(n))
		e.remaining -= n
		spawn = n
	}

	return spawn, started
}
