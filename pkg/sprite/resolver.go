package sprite

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/singleflight"
)

// Resolver 异步精灵解析器
//
// 解析 = 计算引用 + 加载原图到缓存。同一引用的并发解析只加载一次。
type Resolver struct {
	cache *Cache
	group singleflight.Group
}

// NewResolver 创建解析器
func NewResolver(cache *Cache) *Resolver {
	return &Resolver{cache: cache}
}

// Cache 返回底层图片缓存
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// Resolve 开始解析并立即返回 Future
// 静态引用已在缓存中时，返回的 Future 已完成
func (r *Resolver) Resolve(ctx context.Context, src Source) *Future {
	if ref := src.Ref(); ref != "" && r.cache.Has(ref) {
		return Ready(ref)
	}

	ctx, cancel := context.WithCancel(ctx)
	f := NewFuture()
	f.cancel = cancel

	go func() {
		defer cancel()
		url, err := r.resolve(ctx, src)
		if err != nil {
			log.Printf("[Sprite] resolve failed: %v", err)
		}
		f.Complete(url, err)
	}()
	return f
}

func (r *Resolver) resolve(ctx context.Context, src Source) (string, error) {
	ref, err := src.reference(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to compute sprite reference: %w", err)
	}

	_, err, shared := r.group.Do(ref, func() (interface{}, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		_, err := r.cache.Load(ref)
		return nil, err
	})
	if err != nil {
		return "", fmt.Errorf("failed to load sprite %q: %w", ref, err)
	}
	if shared {
		log.Printf("[Sprite] %s resolved by a concurrent request", ref)
	}
	return ref, nil
}
