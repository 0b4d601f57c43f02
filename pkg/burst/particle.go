package burst

import (
	"math"

	"github.com/decker502/coolmode/pkg/overlay"
)

// Particle 单个粒子
// X/Y 为左上角视口坐标；速度单位 像素/帧，VY 为负表示向上
type Particle struct {
	Visual overlay.VisualID
	X, Y   float64
	Size   float64
	VX, VY float64
}

// Launch 计算新粒子的初速度
// facing < 0 且开启镜像时，发射锥沿竖直轴翻转（180° - angle）
func Launch(cfg *Config, rng Rand, facing float64) (vx, vy float64) {
	angleDeg := cfg.MeanAngleDeg + uniform(rng, -cfg.SpreadDeg, cfg.SpreadDeg)
	if cfg.MirrorByMouseDirection && facing < 0 {
		angleDeg = 180 - angleDeg
	}
	angle := angleDeg * math.Pi / 180

	speed := uniform(rng, cfg.MinSpeed, cfg.MaxSpeed)
	return math.Cos(angle) * speed, math.Sin(angle) * speed
}

// PickSize 从尺寸集合中随机取一个
func PickSize(rng Rand) float64 {
	return ParticleSizes[rng.IntN(len(ParticleSizes))]
}

// Rotation 返回粒子的显示旋转角度（度）
func (p Physics) Rotation(pt *Particle) float64 {
	if !p.AlignWithVelocity {
		return 0
	}
	return math.Atan2(pt.VY, pt.VX)*180/math.Pi + p.HeadingOffsetDeg
}

// Step 推进所有粒子一帧并剔除落出 bottom 的粒子
//
// 先施加阻尼再叠加重力，然后按速度移动。遍历从尾到头，被剔除的粒子
// 与末尾元素交换后截断，未访问的下标不受影响。每个被剔除的粒子恰好
// 回调一次 onCull；存活粒子回调 onMove 更新显示。两个回调都可为 nil。
func (p Physics) Step(ps []Particle, bottom float64, onCull func(Particle), onMove func(*Particle, float64)) []Particle {
	keep := 1 - p.Drag
	for i := len(ps) - 1; i >= 0; i-- {
		pt := &ps[i]
		pt.VX *= keep
		pt.VY = pt.VY*keep + p.Gravity
		pt.X += pt.VX
		pt.Y += pt.VY

		if pt.Y >= bottom+pt.Size {
			if onCull != nil {
				onCull(*pt)
			}
			last := len(ps) - 1
			ps[i] = ps[last]
			ps = ps[:last]
			continue
		}

		if onMove != nil {
			onMove(pt, p.Rotation(pt))
		}
	}
	return ps
}
