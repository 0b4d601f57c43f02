package host

// Rect 轴对齐矩形（视口坐标）
type Rect struct {
	X, Y, W, H float64
}

// Contains 判断点是否在矩形内（含边界）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Element 可交互的宿主元素（如按钮）
type Element struct {
	Target
	Name   string
	Bounds Rect
}

// NewElement 创建元素
func NewElement(name string, bounds Rect) *Element {
	return &Element{Name: name, Bounds: bounds}
}

// Window 宿主窗口，持有视口尺寸与焦点状态
type Window struct {
	Target
	Width, Height float64
	Focused       bool
}

// Document 宿主文档，持有内容高度与可见性
type Document struct {
	Target
	// Height 文档内容高度，可能大于视口高度
	Height float64
	Hidden bool
}

// SetHidden 更新可见性并派发 visibilitychange；状态未变则不派发
func (d *Document) SetHidden(hidden bool) {
	if d.Hidden == hidden {
		return
	}
	d.Hidden = hidden
	d.Dispatch(Event{Type: EventVisibilityChange})
}

// BottomLimit 返回视口高度与文档高度中的较大者
func (e *Env) BottomLimit() float64 {
	if e.Document.Height > e.Window.Height {
		return e.Document.Height
	}
	return e.Window.Height
}
