// Package host 提供宿主环境抽象
//
// 粒子引擎不直接依赖任何 UI 框架，而是面向本包的元素、窗口、文档、
// 帧调度器和定时器编程。ebiten 桌面端、终端预览和无头模拟器都只是
// 向这些对象投递事件、推进时间的不同后端。
package host

import "sort"

// EventType 事件类型
type EventType string

const (
	EventPointerMove      EventType = "pointermove"
	EventPointerDown      EventType = "pointerdown"
	EventPointerUp        EventType = "pointerup"
	EventPointerCancel    EventType = "pointercancel"
	EventPointerLeave     EventType = "pointerleave"
	EventClick            EventType = "click"
	EventBlur             EventType = "blur"
	EventVisibilityChange EventType = "visibilitychange"
)

// Event 宿主事件
// X/Y 为视口坐标（像素），非指针事件时为零值
type Event struct {
	Type EventType
	X, Y float64
}

// ListenerID 监听器句柄，用于注销
type ListenerID uint64

type listener struct {
	typ EventType
	fn  func(Event)
}

// Target 事件目标，维护按 ID 注册的监听器表
type Target struct {
	nextID    ListenerID
	listeners map[ListenerID]listener
}

// On 注册监听器并返回句柄
func (t *Target) On(typ EventType, fn func(Event)) ListenerID {
	if t.listeners == nil {
		t.listeners = make(map[ListenerID]listener)
	}
	t.nextID++
	t.listeners[t.nextID] = listener{typ: typ, fn: fn}
	return t.nextID
}

// Off 注销监听器，重复注销无副作用
func (t *Target) Off(id ListenerID) {
	delete(t.listeners, id)
}

// ListenerCount 返回当前注册的监听器数量
func (t *Target) ListenerCount() int {
	return len(t.listeners)
}

// Dispatch 按注册顺序派发事件
// 派发过程中被注销的监听器不会再被调用
func (t *Target) Dispatch(ev Event) {
	ids := make([]ListenerID, 0, len(t.listeners))
	for id, l := range t.listeners {
		if l.typ == ev.Type {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		l, ok := t.listeners[id]
		if !ok {
			continue
		}
		l.fn(ev)
	}
}
