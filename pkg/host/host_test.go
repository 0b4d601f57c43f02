package host

import (
	"testing"
	"time"
)

// TestTarget_DispatchOrderAndOff 测试监听器按注册顺序调用，注销后不再调用
func TestTarget_DispatchOrderAndOff(t *testing.T) {
	var target Target
	var calls []int

	id1 := target.On(EventPointerDown, func(Event) { calls = append(calls, 1) })
	target.On(EventPointerDown, func(Event) { calls = append(calls, 2) })
	target.On(EventPointerUp, func(Event) { calls = append(calls, 99) })

	target.Dispatch(Event{Type: EventPointerDown})
	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Fatalf("派发顺序错误: %v", calls)
	}

	target.Off(id1)
	target.Off(id1) // 重复注销
	calls = nil
	target.Dispatch(Event{Type: EventPointerDown})
	if len(calls) != 1 || calls[0] != 2 {
		t.Errorf("注销后仍被调用: %v", calls)
	}

	if target.ListenerCount() != 2 {
		t.Errorf("ListenerCount = %d, want 2", target.ListenerCount())
	}
}

// TestTarget_OffDuringDispatch 测试派发过程中注销后续监听器
func TestTarget_OffDuringDispatch(t *testing.T) {
	var target Target
	var second ListenerID
	called := false

	target.On(EventBlur, func(Event) { target.Off(second) })
	second = target.On(EventBlur, func(Event) { called = true })

	target.Dispatch(Event{Type: EventBlur})
	if called {
		t.Error("已注销的监听器不应在同一次派发中被调用")
	}
}

func TestFrames_OneShotSemantics(t *testing.T) {
	f := NewFrames()
	runs := 0

	var loop func(now time.Duration)
	loop = func(now time.Duration) {
		runs++
		f.Request(loop)
	}
	f.Request(loop)

	f.Run(0)
	f.Run(time.Millisecond)
	if runs != 2 {
		t.Errorf("每次 Run 应调用一次，实际 %d", runs)
	}

	cancelled := false
	id := f.Request(func(time.Duration) { cancelled = true })
	f.Cancel(id)
	f.Run(2 * time.Millisecond)
	if cancelled {
		t.Error("已取消的帧回调被调用")
	}
}

func TestTimers_Interval(t *testing.T) {
	tm := NewTimers()
	count := 0
	id := tm.SetInterval(500*time.Millisecond, func() { count++ })

	tm.Advance(400 * time.Millisecond)
	if count != 0 {
		t.Fatalf("未到期不应触发, count=%d", count)
	}
	tm.Advance(500 * time.Millisecond)
	tm.Advance(900 * time.Millisecond)
	tm.Advance(1000 * time.Millisecond)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	tm.Clear(id)
	tm.Advance(5 * time.Second)
	if count != 2 || tm.Active() != 0 {
		t.Errorf("清除后仍触发: count=%d active=%d", count, tm.Active())
	}
}

func TestEnv_BottomLimit(t *testing.T) {
	env := NewEnv(&ManualClock{}, 800, 600)
	if got := env.BottomLimit(); got != 600 {
		t.Errorf("BottomLimit = %v, want 600", got)
	}
	env.Document.Height = 1500
	if got := env.BottomLimit(); got != 1500 {
		t.Errorf("BottomLimit = %v, want 1500", got)
	}
}

// TestPointerTracker_Events 测试快照翻译成事件序列
func TestPointerTracker_Events(t *testing.T) {
	env := NewEnv(&ManualClock{}, 800, 600)
	btn := NewElement("button", Rect{X: 100, Y: 100, W: 200, H: 50})
	tracker := NewPointerTracker(env)
	tracker.Track(btn)

	var got []EventType
	record := func(ev Event) { got = append(got, ev.Type) }
	for _, typ := range []EventType{EventPointerMove, EventPointerDown, EventPointerLeave, EventClick} {
		btn.On(typ, record)
	}
	for _, typ := range []EventType{EventPointerUp, EventBlur} {
		env.Window.On(typ, record)
	}
	env.Document.On(EventVisibilityChange, record)

	tracker.Feed(PointerSnapshot{X: 10, Y: 10, Focused: true})
	tracker.Feed(PointerSnapshot{X: 150, Y: 120, Focused: true})
	tracker.Feed(PointerSnapshot{X: 150, Y: 120, Pressed: true, Focused: true})
	tracker.Feed(PointerSnapshot{X: 160, Y: 120, Focused: true})
	tracker.Feed(PointerSnapshot{X: 500, Y: 500, Focused: true})
	tracker.Feed(PointerSnapshot{X: 500, Y: 500, Focused: false})
	tracker.Feed(PointerSnapshot{X: 500, Y: 500, Focused: false, Hidden: true})

	want := []EventType{
		EventPointerMove,
		EventPointerDown,
		EventPointerMove, EventPointerUp, EventClick,
		EventPointerLeave,
		EventBlur,
		EventVisibilityChange,
	}
	if len(got) != len(want) {
		t.Fatalf("事件序列 = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("事件[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if !env.Document.Hidden {
		t.Error("Document.Hidden 应为 true")
	}
}

func TestPointerTracker_Cancel(t *testing.T) {
	env := NewEnv(&ManualClock{}, 800, 600)
	tracker := NewPointerTracker(env)
	cancels := 0
	env.Window.On(EventPointerCancel, func(Event) { cancels++ })

	tracker.Cancel() // 未按下时无效
	tracker.Feed(PointerSnapshot{X: 1, Y: 1, Pressed: true, Focused: true})
	tracker.Cancel()
	tracker.Cancel()
	if cancels != 1 {
		t.Errorf("cancels = %d, want 1", cancels)
	}
}
