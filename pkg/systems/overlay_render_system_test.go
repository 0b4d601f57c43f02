package systems

import (
	"math"
	"testing"

	"github.com/decker502/coolmode/pkg/components"
	"github.com/decker502/coolmode/pkg/overlay"
	"github.com/decker502/coolmode/pkg/sprite"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestVisualGeoM 测试视觉元素缩放到目标尺寸并绕中心旋转
func TestVisualGeoM(t *testing.T) {
	tests := []struct {
		name       string
		tf         components.TransformComponent
		size, w, h float64
		inX, inY   float64
		wantX      float64
		wantY      float64
	}{
		{"centre stays at centre", components.TransformComponent{X: 100, Y: 50}, 20, 96, 96, 48, 48, 110, 60},
		{"top-left without rotation", components.TransformComponent{X: 100, Y: 50}, 20, 96, 96, 0, 0, 100, 50},
		{"quarter turn moves top-left to top-right", components.TransformComponent{X: 0, Y: 0, Rotation: 90}, 20, 96, 96, 0, 0, 20, 0},
		{"centre under rotation", components.TransformComponent{X: 10, Y: 10, Rotation: 37}, 45, 96, 96, 48, 48, 32.5, 32.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := VisualGeoM(&tt.tf, tt.size, tt.w, tt.h)
			x, y := g.Apply(tt.inX, tt.inY)
			if !near(x, tt.wantX) || !near(y, tt.wantY) {
				t.Errorf("Apply(%v, %v) = (%v, %v), want (%v, %v)", tt.inX, tt.inY, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestVisualGeoM_EmptyImage(t *testing.T) {
	g := VisualGeoM(&components.TransformComponent{X: 5, Y: 5}, 20, 0, 0)
	if x, y := g.Apply(1, 1); x != 1 || y != 1 {
		t.Errorf("空图片应返回单位变换, got (%v, %v)", x, y)
	}
}

// TestOverlayRenderSystem_NoSurface 测试覆盖层不存在时不绘制也不上传纹理
func TestOverlayRenderSystem_NoSurface(t *testing.T) {
	s := NewOverlayRenderSystem(overlay.NewRegistry(), sprite.NewCache())
	s.Draw(nil)
	if s.TextureCount() != 0 {
		t.Errorf("TextureCount = %d, want 0", s.TextureCount())
	}
}
