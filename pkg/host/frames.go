package host

import (
	"sort"
	"time"
)

// FrameID 帧回调句柄
type FrameID uint64

// Frames 单线程帧调度器
//
// 语义与浏览器的 requestAnimationFrame 一致：
//   - Request 注册的回调只在下一次 Run 时调用一次
//   - 回调内再次 Request 的回调留到下一次 Run
//   - Cancel 后的回调不会被调用
type Frames struct {
	nextID  FrameID
	pending map[FrameID]func(now time.Duration)
}

// NewFrames 创建帧调度器
func NewFrames() *Frames {
	return &Frames{pending: make(map[FrameID]func(now time.Duration))}
}

// Request 请求下一帧回调
func (f *Frames) Request(fn func(now time.Duration)) FrameID {
	f.nextID++
	f.pending[f.nextID] = fn
	return f.nextID
}

// Cancel 取消帧回调，未知句柄直接忽略
func (f *Frames) Cancel(id FrameID) {
	delete(f.pending, id)
}

// Pending 返回等待执行的回调数量
func (f *Frames) Pending() int {
	return len(f.pending)
}

// Run 执行本帧的全部回调，按请求顺序
func (f *Frames) Run(now time.Duration) {
	if len(f.pending) == 0 {
		return
	}

	ids := make([]FrameID, 0, len(f.pending))
	for id := range f.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		fn, ok := f.pending[id]
		if !ok {
			// 被本帧更早的回调取消
			continue
		}
		delete(f.pending, id)
		fn(now)
	}
}
