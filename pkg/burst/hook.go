package burst

import (
	"github.com/decker502/coolmode/pkg/host"
	"github.com/decker502/coolmode/pkg/sprite"
)

// Hook 调用方持有的绑定
//
// 精灵来源、开关或配置变化时拆除当前附着并重新附着；
// 新附着会重新解析精灵，旧附着照常排空剩余粒子。
type Hook struct {
	engine  *Engine
	el      *host.Element
	src     sprite.Source
	enabled bool
	opts    Options
	current *Attachment
}

// Bind 创建绑定并立即附着
func (e *Engine) Bind(el *host.Element, src sprite.Source, enabled bool, opts Options) *Hook {
	h := &Hook{engine: e, el: el, src: src, enabled: enabled, opts: opts}
	h.reattach()
	return h
}

// Current 返回当前附着实例
func (h *Hook) Current() *Attachment {
	return h.current
}

// Enabled 返回当前开关状态
func (h *Hook) Enabled() bool {
	return h.enabled
}

// SetSource 更换精灵来源；两个相同的静态引用视为未变化
func (h *Hook) SetSource(src sprite.Source) {
	h.Update(src, h.enabled, h.opts)
}

// SetEnabled 切换开关
func (h *Hook) SetEnabled(enabled bool) {
	h.Update(h.src, enabled, h.opts)
}

// SetOptions 更换配置；解析后与当前配置相同时不重新附着
func (h *Hook) SetOptions(opts Options) {
	h.Update(h.src, h.enabled, opts)
}

// Update 一次性更换全部输入，任一输入变化时只重新附着一次
func (h *Hook) Update(src sprite.Source, enabled bool, opts Options) {
	sameSrc := src.Ref() != "" && src.Ref() == h.src.Ref()
	if sameSrc && enabled == h.enabled && Resolve(opts) == Resolve(h.opts) {
		return
	}
	h.src = src
	h.enabled = enabled
	h.opts = opts
	h.reattach()
}

// Close 拆除当前附着
func (h *Hook) Close() {
	if h.current != nil {
		h.current.Detach()
	}
}

func (h *Hook) reattach() {
	h.Close()
	h.current = h.engine.Attach(h.el, h.src, h.enabled, h.opts)
}
