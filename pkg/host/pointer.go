package host

// PointerSnapshot 一帧的原始输入状态
// 由具体后端采集（ebiten 鼠标/触摸、tcell 鼠标、脚本化手势）
type PointerSnapshot struct {
	X, Y    float64
	Pressed bool
	// Focused 窗口是否持有焦点
	Focused bool
	// Hidden 窗口是否不可见（最小化、切到后台）
	Hidden bool
}

// PointerTracker 把逐帧快照翻译成宿主事件
//
// 派发规则：
//   - 位置变化：指针下的元素收到 pointermove；离开元素时收到 pointerleave
//   - 按下沿：指针下的元素收到 pointerdown
//   - 抬起沿：窗口收到 pointerup；若按下与抬起在同一元素内，该元素收到 click
//   - 失去焦点：窗口收到 blur
//   - 可见性变化：文档更新 Hidden 并收到 visibilitychange
type PointerTracker struct {
	env      *Env
	elements []*Element
	prev     PointerSnapshot
	inside   map[*Element]bool
	pressed  map[*Element]bool
	primed   bool
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker(env *Env) *PointerTracker {
	return &PointerTracker{
		env:     env,
		inside:  make(map[*Element]bool),
		pressed: make(map[*Element]bool),
	}
}

// Track 纳入命中测试的元素
func (p *PointerTracker) Track(el *Element) {
	p.elements = append(p.elements, el)
}

// Untrack 移出命中测试
func (p *PointerTracker) Untrack(el *Element) {
	for i, e := range p.elements {
		if e == el {
			p.elements = append(p.elements[:i], p.elements[i+1:]...)
			break
		}
	}
	delete(p.inside, el)
	delete(p.pressed, el)
}

// Cancel 模拟系统打断手势（如触摸被系统接管），向窗口派发 pointercancel
func (p *PointerTracker) Cancel() {
	if !p.prev.Pressed {
		return
	}
	p.prev.Pressed = false
	for el := range p.pressed {
		delete(p.pressed, el)
	}
	p.env.Window.Dispatch(Event{Type: EventPointerCancel, X: p.prev.X, Y: p.prev.Y})
}

// Feed 投递一帧快照
func (p *PointerTracker) Feed(s PointerSnapshot) {
	if !p.primed {
		// 首帧只记录状态，焦点与可见性沿用窗口初值
		p.prev = PointerSnapshot{X: s.X, Y: s.Y, Focused: p.env.Window.Focused, Hidden: p.env.Document.Hidden}
		p.primed = true
	}

	if p.prev.Focused && !s.Focused {
		p.env.Window.Dispatch(Event{Type: EventBlur})
	}
	p.env.Window.Focused = s.Focused
	p.env.Document.SetHidden(s.Hidden)

	ev := Event{X: s.X, Y: s.Y}
	moved := s.X != p.prev.X || s.Y != p.prev.Y

	for _, el := range p.elements {
		in := el.Bounds.Contains(s.X, s.Y)
		if moved && in {
			ev.Type = EventPointerMove
			el.Dispatch(ev)
		}
		if p.inside[el] && !in {
			ev.Type = EventPointerLeave
			el.Dispatch(ev)
		}
		p.inside[el] = in
	}

	if s.Pressed && !p.prev.Pressed {
		for _, el := range p.elements {
			if el.Bounds.Contains(s.X, s.Y) {
				p.pressed[el] = true
				ev.Type = EventPointerDown
				el.Dispatch(ev)
			}
		}
	}

	if !s.Pressed && p.prev.Pressed {
		ev.Type = EventPointerUp
		p.env.Window.Dispatch(ev)
		for el := range p.pressed {
			if el.Bounds.Contains(s.X, s.Y) {
				ev.Type = EventClick
				el.Dispatch(ev)
			}
			delete(p.pressed, el)
		}
	}

	p.prev = s
}
