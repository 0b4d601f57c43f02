package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/coolmode/pkg/burst"
	"github.com/decker502/coolmode/pkg/components"
	"github.com/decker502/coolmode/pkg/ecs"
	"github.com/decker502/coolmode/pkg/host"
	"github.com/decker502/coolmode/pkg/overlay"
	"github.com/decker502/coolmode/pkg/sprite"
)

// 一个字符格对应的像素尺寸
const (
	cellW = 8.0
	cellH = 16.0
)

// glyph 精灵在终端中的替代字符与颜色
type glyph struct {
	r     rune
	color tcell.Color
}

var glyphs = map[string]glyph{
	sprite.BuiltinPrefix + "star":    {'*', tcell.NewRGBColor(255, 220, 80)},
	sprite.BuiltinPrefix + "coin":    {'$', tcell.NewRGBColor(240, 180, 40)},
	sprite.BuiltinPrefix + "droplet": {'o', tcell.NewRGBColor(90, 170, 255)},
	"assets/sprites/heart.png":       {'♥', tcell.NewRGBColor(232, 48, 88)},
	"assets/sprites/spark.png":       {'+', tcell.NewRGBColor(255, 214, 64)},
}

func glyphFor(url string) glyph {
	if g, ok := glyphs[url]; ok {
		return g
	}
	return glyph{'•', tcell.ColorWhite}
}

// Preview 终端实时预览：鼠标在按钮上按住即喷发
type Preview struct {
	screen   tcell.Screen
	env      *host.Env
	tracker  *host.PointerTracker
	registry *overlay.Registry
	hook     *burst.Hook
	button   *host.Element
	sound    *popPlayer
	preset   string

	pointer host.PointerSnapshot
}

// NewPreview 初始化终端并绑定引擎
func NewPreview(opts burst.Options, spriteRef, preset string, sound *popPlayer) (*Preview, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal screen: %w", err)
	}
	screen.EnableMouse()
	screen.EnableFocus()

	cols, rows := screen.Size()
	env := host.NewEnv(host.NewMonotonicClock(), float64(cols)*cellW, float64(rows)*cellH)

	cache := sprite.NewCache()
	engine := burst.NewEngine(env, overlay.NewRegistry(), sprite.NewResolver(cache))
	engine.Hooks.OnBurst = func(time.Duration) { sound.Pop() }

	p := &Preview{
		screen:   screen,
		env:      env,
		tracker:  host.NewPointerTracker(env),
		registry: engine.Overlay,
		button:   host.NewElement("withdraw", host.Rect{}),
		sound:    sound,
		preset:   preset,
		pointer:  host.PointerSnapshot{Focused: true},
	}
	p.layout(cols, rows)
	p.tracker.Track(p.button)
	p.hook = engine.Bind(p.button, sprite.Static(spriteRef), true, opts)
	return p, nil
}

// layout 按终端尺寸摆放按钮
func (p *Preview) layout(cols, rows int) {
	w := float64(cols) * cellW
	h := float64(rows) * cellH
	p.env.Resize(w, h)
	p.env.Document.Height = h
	p.button.Bounds = host.Rect{X: w/2 - 14*cellW, Y: h * 2 / 3, W: 28 * cellW, H: 3 * cellH}
}

// Run 运行到用户退出
func (p *Preview) Run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !p.handleEvent(ev) {
				return
			}

		case <-ticker.C:
			p.tracker.Feed(p.pointer)
			p.env.Step()
			p.draw()
		}
	}
}

func (p *Preview) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'e':
				p.hook.SetEnabled(!p.hook.Enabled())
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		p.pointer.X = (float64(x) + 0.5) * cellW
		p.pointer.Y = (float64(y) + 0.5) * cellH
		p.pointer.Pressed = ev.Buttons()&tcell.Button1 != 0

	case *tcell.EventFocus:
		p.pointer.Focused = ev.Focused

	case *tcell.EventResize:
		p.layout(p.screen.Size())
		p.screen.Sync()
	}
	return true
}

func (p *Preview) draw() {
	p.screen.Clear()

	a := p.hook.Current()
	effect := "on"
	if !p.hook.Enabled() {
		effect = "off"
	}
	status := fmt.Sprintf(" preset %s | %s | live %d | effect %s | drag on the button, e toggle, q quit",
		p.preset, a.State(), a.Live(), effect)
	p.drawText(0, 0, status, tcell.StyleDefault.Foreground(tcell.ColorGray))

	b := p.button.Bounds
	style := tcell.StyleDefault.Background(tcell.NewRGBColor(242, 184, 48)).Foreground(tcell.ColorBlack)
	if a.Emitting() {
		style = style.Background(tcell.NewRGBColor(255, 208, 92))
	}
	x0, y0 := int(b.X/cellW), int(b.Y/cellH)
	x1, y1 := int((b.X+b.W)/cellW), int((b.Y+b.H)/cellH)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	label := "Withdraw my winnings"
	p.drawText((x0+x1-len(label))/2, (y0+y1)/2, label, style.Bold(true))

	if surface := p.registry.Surface(); surface != nil {
		em := surface.EntityManager()
		for _, id := range ecs.GetEntitiesWith2[*components.SpriteComponent, *components.TransformComponent](em) {
			sp, _ := ecs.GetComponent[*components.SpriteComponent](em, id)
			tf, _ := ecs.GetComponent[*components.TransformComponent](em, id)
			g := glyphFor(sp.URL)
			cx := int((tf.X + sp.Size/2) / cellW)
			cy := int((tf.Y + sp.Size/2) / cellH)
			p.screen.SetContent(cx, cy, g.r, nil, tcell.StyleDefault.Foreground(g.color))
		}
	}

	p.screen.Show()
}

func (p *Preview) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(strings.TrimRight(s, " ")) {
		p.screen.SetContent(x+i, y, r, nil, style)
	}
}

// Close 拆除附着并恢复终端
func (p *Preview) Close() {
	p.hook.Close()
	p.screen.Fini()
}
