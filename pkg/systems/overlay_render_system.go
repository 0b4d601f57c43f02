// Package systems 提供基于 ebiten 的渲染与输入系统
//
// 系统本身不持有粒子状态：OverlayRenderSystem 只读取覆盖层 EntityManager
// 中的 SpriteComponent + TransformComponent，InputSystem 只产出指针快照。
package systems

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/coolmode/pkg/components"
	"github.com/decker502/coolmode/pkg/ecs"
	"github.com/decker502/coolmode/pkg/overlay"
	"github.com/decker502/coolmode/pkg/sprite"
)

type textureKey struct {
	url  string
	size int
}

// OverlayRenderSystem 把共享覆盖层绘制到屏幕最上层
type OverlayRenderSystem struct {
	registry *overlay.Registry
	cache    *sprite.Cache

	textures map[textureKey]*ebiten.Image
	failed   map[textureKey]bool
}

// NewOverlayRenderSystem 创建覆盖层渲染系统
func NewOverlayRenderSystem(registry *overlay.Registry, cache *sprite.Cache) *OverlayRenderSystem {
	return &OverlayRenderSystem{
		registry: registry,
		cache:    cache,
		textures: make(map[textureKey]*ebiten.Image),
		failed:   make(map[textureKey]bool),
	}
}

// Draw 绘制覆盖层，必须在其它内容之后调用
// 覆盖层已移除时同时释放纹理
func (s *OverlayRenderSystem) Draw(screen *ebiten.Image) {
	surface := s.registry.Surface()
	if surface == nil {
		s.dispose()
		return
	}

	em := surface.EntityManager()
	for _, id := range ecs.GetEntitiesWith2[*components.SpriteComponent, *components.TransformComponent](em) {
		sp, _ := ecs.GetComponent[*components.SpriteComponent](em, id)
		tf, _ := ecs.GetComponent[*components.TransformComponent](em, id)

		img := s.texture(sp.URL, sp.Size)
		if img == nil {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		bounds := img.Bounds()
		op.GeoM = VisualGeoM(tf, sp.Size, float64(bounds.Dx()), float64(bounds.Dy()))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
	}
}

// TextureCount 已上传的纹理数量
func (s *OverlayRenderSystem) TextureCount() int {
	return len(s.textures)
}

// VisualGeoM 计算视觉元素的变换：缩放到 size，绕中心旋转，左上角落在 (X, Y)
func VisualGeoM(tf *components.TransformComponent, size, w, h float64) ebiten.GeoM {
	var g ebiten.GeoM
	if w <= 0 || h <= 0 {
		return g
	}
	// 居中图片
	g.Translate(-w/2, -h/2)
	g.Scale(size/w, size/h)
	g.Rotate(tf.Rotation * math.Pi / 180)
	// 移动到目标位置
	g.Translate(tf.X+size/2, tf.Y+size/2)
	return g
}

func (s *OverlayRenderSystem) texture(url string, size float64) *ebiten.Image {
	key := textureKey{url: url, size: int(math.Round(size))}
	if img, ok := s.textures[key]; ok {
		return img
	}
	if s.failed[key] {
		return nil
	}

	src, err := s.cache.Scaled(url, key.size)
	if err != nil {
		log.Printf("[OverlayRender] sprite %s unavailable: %v", url, err)
		s.failed[key] = true
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	s.textures[key] = img
	return img
}

func (s *OverlayRenderSystem) dispose() {
	if len(s.textures) == 0 {
		return
	}
	for key, img := range s.textures {
		img.Deallocate()
		delete(s.textures, key)
	}
	clear(s.failed)
	log.Printf("[OverlayRender] overlay removed, textures released")
}
