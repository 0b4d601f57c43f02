package overlay

import "log"

// Registry 覆盖层注册表
//
// 由宿主应用持有，生命周期与应用一致。每个附着实例激活时 Acquire，
// 彻底拆除时 Release。覆盖层在第一个视觉元素加入时才创建，
// 在最后一个持有者释放时移除。
type Registry struct {
	live    int
	surface *Surface

	// OnCreate / OnRemove 覆盖层创建、移除时回调（可为 nil）
	OnCreate func()
	OnRemove func()
}

// NewRegistry 创建注册表
func NewRegistry() *Registry {
	return &Registry{}
}

// Live 返回持有覆盖层的附着实例数量
func (r *Registry) Live() int {
	return r.live
}

// Surface 返回当前覆盖层，尚未创建或已移除时返回 nil
func (r *Registry) Surface() *Surface {
	return r.surface
}

// Acquire 登记一个持有者
func (r *Registry) Acquire() *Handle {
	r.live++
	return &Handle{registry: r}
}

func (r *Registry) ensure() *Surface {
	if r.surface == nil {
		r.surface = newSurface()
		log.Printf("[Overlay] surface created (live=%d)", r.live)
		if r.OnCreate != nil {
			r.OnCreate()
		}
	}
	return r.surface
}

func (r *Registry) release() {
	r.live--
	if r.live > 0 {
		return
	}
	r.live = 0
	if r.surface == nil {
		return
	}
	r.surface.clear()
	r.surface = nil
	log.Printf("[Overlay] surface removed")
	if r.OnRemove != nil {
		r.OnRemove()
	}
}

// Handle 单个持有者对覆盖层的引用
type Handle struct {
	registry *Registry
	released bool
}

// Surface 返回覆盖层，必要时创建
// 释放后返回 nil
func (h *Handle) Surface() *Surface {
	if h.released {
		return nil
	}
	return h.registry.ensure()
}

// Release 释放引用；每个 Handle 只递减一次计数
func (h *Handle) Release() {
	if h.released {
		return
	}
	h.released = true
	h.registry.release()
}
