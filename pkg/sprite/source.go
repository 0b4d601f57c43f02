// Package sprite 负责粒子精灵的异步解析、加载与缩放
package sprite

import (
	"context"
	"errors"
)

// ErrEmptySource 精灵来源为空
var ErrEmptySource = errors.New("sprite: empty source")

// Source 精灵来源：静态引用，或在解析时才计算引用的函数
type Source struct {
	ref string
	fn  func(ctx context.Context) (string, error)
}

// Static 静态引用（builtin:xxx 或图片文件路径）
func Static(ref string) Source {
	return Source{ref: ref}
}

// Lazy 延迟计算的引用
func Lazy(fn func(ctx context.Context) (string, error)) Source {
	return Source{fn: fn}
}

// Ref 返回静态引用；Lazy 来源返回空字符串
func (s Source) Ref() string {
	return s.ref
}

// IsZero 来源是否为空
func (s Source) IsZero() bool {
	return s.ref == "" && s.fn == nil
}

func (s Source) reference(ctx context.Context) (string, error) {
	if s.fn != nil {
		ref, err := s.fn(ctx)
		if err != nil {
			return "", err
		}
		if ref == "" {
			return "", ErrEmptySource
		}
		return ref, nil
	}
	if s.ref == "" {
		return "", ErrEmptySource
	}
	return s.ref, nil
}
