package sprite

import (
	"context"
	"sync"
)

// Result 精灵解析结果
type Result struct {
	URL string
	Err error
}

// Future 异步解析的精灵地址
//
// 解析在后台 goroutine 完成，持有方在自己的帧循环里调用 Poll 观察结果，
// 因此状态迁移始终发生在持有方所在的线程。Cancel 之后结果被丢弃。
type Future struct {
	mu        sync.Mutex
	done      chan struct{}
	result    Result
	completed bool
	cancelled bool
	cancel    context.CancelFunc
}

// NewFuture 创建一个待完成的 Future
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Ready 返回已完成的 Future
func Ready(url string) *Future {
	f := NewFuture()
	f.Complete(url, nil)
	return f
}

// Complete 写入结果；只有第一次调用生效
func (f *Future) Complete(url string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.completed {
		return
	}
	f.completed = true
	f.result = Result{URL: url, Err: err}
	close(f.done)
}

// Done 结果写入后关闭
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Poll 非阻塞读取结果；未完成或已取消时 ok 为 false
func (f *Future) Poll() (Result, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.completed || f.cancelled {
		return Result{}, false
	}
	return f.result, true
}

// Cancel 取消解析并丢弃结果，可重复调用
func (f *Future) Cancel() {
	f.mu.Lock()
	f.cancelled = true
	cancel := f.cancel
	f.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Cancelled 是否已取消
func (f *Future) Cancelled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancelled
}
