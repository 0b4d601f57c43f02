// Package burst 实现指针驱动的粒子喷发引擎
//
// 一个附着实例（Attachment）绑定到一个宿主元素：指针按下开始连续喷发，
// 每帧先由喷发调度器决定本帧生成多少粒子，再由物理积分器推进并剔除
// 落出屏幕的粒子；指针抬起、取消、离开，窗口失焦或页面隐藏时停止喷发。
// 拆除时立即注销监听器，等剩余粒子落完后再释放帧句柄与共享覆盖层。
//
// 调度与积分都是注入时间 (now, dt) 的纯函数，不依赖任何渲染表面。
package burst

import (
	"math"
	"time"
)

// ParticleSizes 粒子尺寸集合（像素），生成时随机取一个
var ParticleSizes = [...]float64{15, 20, 25, 35, 45}

// 默认值
const (
	DefaultMeanAngleDeg         = -60.0
	DefaultSpreadDeg            = 12.0
	DefaultMinSpeed             = 18.0
	DefaultMaxSpeed             = 32.0
	DefaultGravity              = 0.7
	DefaultDrag                 = 0.02
	DefaultHeadingOffsetDeg     = 90.0
	DefaultBurstCount           = 30
	DefaultBurstIntervalSec     = 0.5
	DefaultInitialBurstDelaySec = 0.0
	DefaultBurstDurationSec     = 0.18
	DefaultBurstJitterSec       = 0.03
	DefaultMaxParticles         = 220
)

// Options 喷发配置，所有字段可选，nil 表示使用默认值
//
// 角度以度为单位：0 = 向右，-90 = 向上（屏幕坐标 y 轴向下）。
// 速度单位为 像素/帧，重力为 像素/帧²。
type Options struct {
	// 运动学
	MeanAngleDeg           *float64 `yaml:"meanAngleDeg,omitempty"`
	SpreadDeg              *float64 `yaml:"spreadDeg,omitempty"` // 半锥角
	MinSpeed               *float64 `yaml:"minSpeed,omitempty"`
	MaxSpeed               *float64 `yaml:"maxSpeed,omitempty"`
	Gravity                *float64 `yaml:"gravity,omitempty"`
	Drag                   *float64 `yaml:"drag,omitempty"` // 线性阻尼
	MirrorByMouseDirection *bool    `yaml:"mirrorByMouseDirection,omitempty"`
	AlignWithVelocity      *bool    `yaml:"alignWithVelocity,omitempty"`
	HeadingOffsetDeg       *float64 `yaml:"headingOffsetDeg,omitempty"`

	// 喷发（仅突发模式，突发内部按速率分摊）
	BurstCount           *int     `yaml:"burstCount,omitempty"`
	BurstIntervalSec     *float64 `yaml:"burstIntervalSec,omitempty"`
	InitialBurstDelaySec *float64 `yaml:"initialBurstDelaySec,omitempty"`
	BurstDurationSec     *float64 `yaml:"burstDurationSec,omitempty"`
	BurstJitterSec       *float64 `yaml:"burstJitterSec,omitempty"`

	MaxParticles *int `yaml:"maxParticles,omitempty"`
}

// Float 返回 v 的指针，便于构造 Options
func Float(v float64) *float64 { return &v }

// Int 返回 v 的指针
func Int(v int) *int { return &v }

// Bool 返回 v 的指针
func Bool(v bool) *bool { return &v }

// Config 解析、钳制后的配置，附着期间不可变
type Config struct {
	MeanAngleDeg           float64
	SpreadDeg              float64
	MinSpeed               float64
	MaxSpeed               float64
	MirrorByMouseDirection bool

	Physics Physics

	BurstCount           int
	BurstIntervalSec     float64
	InitialBurstDelaySec float64
	BurstDurationSec     float64
	BurstJitterSec       float64

	MaxParticles int
}

// Physics 积分器参数
type Physics struct {
	Gravity           float64
	Drag              float64
	AlignWithVelocity bool
	HeadingOffsetDeg  float64
}

// Resolve 应用默认值并钳制非法数值，从不返回错误
// NaN 与 ±Inf 视为缺省
func Resolve(o Options) Config {
	burstCount := DefaultBurstCount
	if o.BurstCount != nil {
		burstCount = *o.BurstCount
	}
	maxParticles := DefaultMaxParticles
	if o.MaxParticles != nil {
		maxParticles = *o.MaxParticles
	}

	return Config{
		MeanAngleDeg:           floatOr(o.MeanAngleDeg, DefaultMeanAngleDeg),
		SpreadDeg:              clamp(floatOr(o.SpreadDeg, DefaultSpreadDeg), 0, 89),
		MinSpeed:               floatOr(o.MinSpeed, DefaultMinSpeed),
		MaxSpeed:               floatOr(o.MaxSpeed, DefaultMaxSpeed),
		MirrorByMouseDirection: boolOr(o.MirrorByMouseDirection, true),
		Physics: Physics{
			Gravity:           floatOr(o.Gravity, DefaultGravity),
			Drag:              clamp(floatOr(o.Drag, DefaultDrag), 0, 0.2),
			AlignWithVelocity: boolOr(o.AlignWithVelocity, true),
			HeadingOffsetDeg:  floatOr(o.HeadingOffsetDeg, DefaultHeadingOffsetDeg),
		},
		BurstCount:           max(1, burstCount),
		BurstIntervalSec:     math.Max(0.05, floatOr(o.BurstIntervalSec, DefaultBurstIntervalSec)),
		InitialBurstDelaySec: math.Max(0, floatOr(o.InitialBurstDelaySec, DefaultInitialBurstDelaySec)),
		BurstDurationSec:     math.Max(0.05, floatOr(o.BurstDurationSec, DefaultBurstDurationSec)),
		BurstJitterSec:       math.Max(0, floatOr(o.BurstJitterSec, DefaultBurstJitterSec)),
		MaxParticles:         max(0, maxParticles),
	}
}

// Options 把解析后的配置还原为完整的 Options（所有字段非 nil）
func (c Config) Options() Options {
	return Options{
		MeanAngleDeg:           Float(c.MeanAngleDeg),
		SpreadDeg:              Float(c.SpreadDeg),
		MinSpeed:               Float(c.MinSpeed),
		MaxSpeed:               Float(c.MaxSpeed),
		Gravity:                Float(c.Physics.Gravity),
		Drag:                   Float(c.Physics.Drag),
		MirrorByMouseDirection: Bool(c.MirrorByMouseDirection),
		AlignWithVelocity:      Bool(c.Physics.AlignWithVelocity),
		HeadingOffsetDeg:       Float(c.Physics.HeadingOffsetDeg),
		BurstCount:             Int(c.BurstCount),
		BurstIntervalSec:       Float(c.BurstIntervalSec),
		InitialBurstDelaySec:   Float(c.InitialBurstDelaySec),
		BurstDurationSec:       Float(c.BurstDurationSec),
		BurstJitterSec:         Float(c.BurstJitterSec),
		MaxParticles:           Int(c.MaxParticles),
	}
}

func floatOr(p *float64, def float64) float64 {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return def
	}
	return *p
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
