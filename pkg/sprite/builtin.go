package sprite

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gomonobold"
)

// 内置精灵的栅格化边长；最大粒子 45px，留出缩放余量
const builtinResolution = 96

// 内置精灵均朝上绘制，与默认航向偏移 90° 配合
var builtins = map[string]func(dc *gg.Context, n float64) error{
	"star":    drawStar,
	"droplet": drawDroplet,
	"coin":    drawCoin,
}

// BuiltinNames 返回所有内置精灵名称
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RenderBuiltin 栅格化内置精灵
func RenderBuiltin(name string, size int) (image.Image, error) {
	draw, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown builtin sprite %q", name)
	}
	dc := gg.NewContext(size, size)
	if err := draw(dc, float64(size)); err != nil {
		return nil, fmt.Errorf("failed to render builtin sprite %q: %w", name, err)
	}
	return dc.Image(), nil
}

func drawStar(dc *gg.Context, n float64) error {
	cx, cy := n/2, n/2
	outer, inner := n*0.48, n*0.2
	for i := 0; i < 10; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		dc.LineTo(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
	dc.ClosePath()
	dc.SetRGB255(255, 214, 10)
	dc.FillPreserve()
	dc.SetRGB255(200, 120, 0)
	dc.SetLineWidth(n * 0.03)
	dc.Stroke()
	return nil
}

func drawDroplet(dc *gg.Context, n float64) error {
	cx := n / 2
	r := n * 0.28
	cy := n - r - n*0.06

	dc.MoveTo(cx, n*0.04)
	dc.LineTo(cx+r*math.Cos(-math.Pi/6), cy+r*math.Sin(-math.Pi/6))
	dc.DrawArc(cx, cy, r, -math.Pi/6, math.Pi+math.Pi/6)
	dc.ClosePath()
	dc.SetRGB255(236, 72, 153)
	dc.Fill()

	dc.DrawCircle(cx-r*0.35, cy-r*0.3, r*0.22)
	dc.SetRGBA(1, 1, 1, 0.6)
	dc.Fill()
	return nil
}

func drawCoin(dc *gg.Context, n float64) error {
	dc.DrawCircle(n/2, n/2, n*0.46)
	dc.SetRGB255(217, 70, 239)
	dc.Fill()
	dc.DrawCircle(n/2, n/2, n*0.38)
	dc.SetRGB255(139, 92, 246)
	dc.Fill()

	font, err := truetype.Parse(gomonobold.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: n * 0.55, DPI: 72}))
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored("$", n/2, n/2, 0.5, 0.38)
	return nil
}
