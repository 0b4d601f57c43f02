package components

// TransformComponent 存储覆盖层粒子的位置与旋转
//
// This is a pure data component following ECS principles - it contains no methods.
type TransformComponent struct {
	X, Y     float64 // 左上角（视口坐标，像素）
	Rotation float64 // 绕中心的旋转角度（度）
}
