package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/coolmode/pkg/host"
)

// InputSystem 采集 ebiten 鼠标与触摸输入，交给 PointerTracker 翻译成宿主事件
//
// 触摸优先于鼠标（移动端）；触摸抬起的那一帧沿用上一 tick 的触点位置，
// 避免指针跳到光标的 (0, 0) 上导致误判 click。
type InputSystem struct {
	tracker *host.PointerTracker
}

// NewInputSystem 创建输入系统
func NewInputSystem(tracker *host.PointerTracker) *InputSystem {
	return &InputSystem{tracker: tracker}
}

// Update 读取本帧输入并投递
// ebiten 的光标与触点坐标已换算为 Layout 的逻辑坐标
func (s *InputSystem) Update() {
	s.tracker.Feed(ReadPointer())
}

// ReadPointer 读取当前帧的指针快照
func ReadPointer() host.PointerSnapshot {
	snap := host.PointerSnapshot{
		Focused: ebiten.IsFocused(),
		Hidden:  ebiten.IsWindowMinimized(),
	}

	// 首先检查活动的触摸（移动设备）
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		snap.X, snap.Y = float64(x), float64(y)
		snap.Pressed = true
		return snap
	}

	// 本帧刚抬起的触摸
	if released := inpututil.AppendJustReleasedTouchIDs(nil); len(released) > 0 {
		x, y := inpututil.TouchPositionInPreviousTick(released[0])
		snap.X, snap.Y = float64(x), float64(y)
		return snap
	}

	// 其次检查鼠标输入（桌面设备）
	x, y := ebiten.CursorPosition()
	snap.X, snap.Y = float64(x), float64(y)
	snap.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return snap
}
