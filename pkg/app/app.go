// Package app 提供演示应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/decker502/coolmode/pkg/burst"
	"github.com/decker502/coolmode/pkg/claim"
	"github.com/decker502/coolmode/pkg/config"
	"github.com/decker502/coolmode/pkg/embedded"
	"github.com/decker502/coolmode/pkg/game"
	"github.com/decker502/coolmode/pkg/host"
	"github.com/decker502/coolmode/pkg/overlay"
	"github.com/decker502/coolmode/pkg/sprite"
	"github.com/decker502/coolmode/pkg/systems"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 800
	ScreenHeight = 600
)

// AppName gdata 存储目录名
const AppName = "coolmode"

// PopSoundFile 突发提示音
const PopSoundFile = "assets/sounds/pop.wav"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Preset 指定喷发预设名称，为空则使用已保存的设置
	Preset string
	// Sprite 覆盖预设的精灵引用
	Sprite string
	// PresetsFile 外部预设文件，为空则使用内置的 data/burst_presets.yaml
	PresetsFile string
	// ClaimFails 模拟领奖失败
	ClaimFails bool
}

// App 演示应用，实现 ebiten.Game 接口
type App struct {
	env      *host.Env
	tracker  *host.PointerTracker
	registry *overlay.Registry
	engine   *burst.Engine
	hook     *burst.Hook
	button   *host.Element

	input  *systems.InputSystem
	render *systems.OverlayRenderSystem

	presets  *config.BurstPresets
	preset   string
	sprite   string
	settings *game.SettingsManager
	audio    *game.AudioManager

	claims *claim.Tracker
	round  int

	labelFont *text.GoTextFace
	hintFont  *text.GoTextFace

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	presets, err := loadPresets(cfg.PresetsFile)
	if err != nil {
		return nil, fmt.Errorf("预设加载失败: %w", err)
	}
	log.Printf("[Config] 加载 %d 个喷发预设: %v", len(presets.Presets), presets.Names())

	settings := game.OpenSettingsManager(AppName)
	if cfg.Preset != "" {
		settings.SetPreset(cfg.Preset)
	}
	if cfg.Sprite != "" {
		settings.SetSprite(cfg.Sprite)
	}

	audioManager := game.NewAudioManager(game.OpenAudioContext(), settings)
	if data, err := embedded.ReadFile(PopSoundFile); err != nil {
		log.Printf("[App] Warning: %v (bursts will be silent)", err)
	} else if err := audioManager.LoadSound(game.SoundPop, data); err != nil {
		log.Printf("[App] Warning: %v (bursts will be silent)", err)
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	env := host.NewEnv(host.NewMonotonicClock(), ScreenWidth, ScreenHeight)
	registry := overlay.NewRegistry()
	cache := sprite.NewCache()
	cache.ReadFile = embedded.ReadFile
	engine := burst.NewEngine(env, registry, sprite.NewResolver(cache))

	button := host.NewElement("withdraw", host.Rect{X: (ScreenWidth - 320) / 2, Y: 380, W: 320, H: 72})
	tracker := host.NewPointerTracker(env)
	tracker.Track(button)

	a := &App{
		env:       env,
		tracker:   tracker,
		registry:  registry,
		engine:    engine,
		button:    button,
		input:     systems.NewInputSystem(tracker),
		render:    systems.NewOverlayRenderSystem(registry, cache),
		presets:   presets,
		settings:  settings,
		audio:     audioManager,
		claims:    claim.NewTracker(&claim.SimulatedSubmitter{Delay: 1500 * time.Millisecond, Fail: cfg.ClaimFails}),
		labelFont: &text.GoTextFace{Source: source, Size: 24},
		hintFont:  &text.GoTextFace{Source: source, Size: 14},
		verbose:   cfg.Verbose,
	}

	button.On(host.EventClick, func(host.Event) { a.submitClaim() })
	engine.Hooks.OnBurst = func(time.Duration) { a.audio.PlaySound(game.SoundPop) }

	preset, spriteRef := a.selectPreset(settings.GetSettings().Preset)
	a.hook = engine.Bind(button, sprite.Static(spriteRef), settings.GetSettings().EffectEnabled, preset.Options)
	log.Printf("[App] 预设 %s, 精灵 %s, 效果开关 %v", a.preset, spriteRef, a.hook.Enabled())

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return a, nil
}

func loadPresets(path string) (*config.BurstPresets, error) {
	if path != "" {
		return config.LoadBurstPresets(path)
	}
	data, err := embedded.ReadFile(config.BurstPresetsFile)
	if err != nil {
		return nil, fmt.Errorf("内置预设读取失败: %w", err)
	}
	return config.ParseBurstPresets(data)
}

// selectPreset 查找预设，找不到时回退到第一个预设
func (a *App) selectPreset(name string) (config.BurstPreset, string) {
	preset, ok := a.presets.Get(name)
	if !ok {
		log.Printf("[App] 未知预设 %q，使用 %s", name, a.presets.Presets[0].Name)
		preset = a.presets.Presets[0]
	}
	a.preset = preset.Name

	spriteRef := preset.Sprite
	if override := a.settings.GetSettings().Sprite; override != "" {
		spriteRef = override
	}
	if spriteRef == "" {
		spriteRef = sprite.BuiltinPrefix + "star"
	}
	a.sprite = spriteRef
	return preset, spriteRef
}

func (a *App) submitClaim() {
	a.round++
	if a.claims.Start("round-" + strconv.Itoa(a.round)) {
		log.Printf("[App] 提交领奖 round-%d", a.round)
	}
}

// Update 更新逻辑，每个 tick 调用一次（通常每秒 60 次）
//
// 顺序：输入 → 定时器 → 帧回调，与浏览器事件循环一致
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// E 切换效果开关
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		a.hook.SetEnabled(!a.hook.Enabled())
		a.settings.SetEffectEnabled(a.hook.Enabled())
		a.saveSettings()
		log.Printf("[App] 效果开关: %v", a.hook.Enabled())
	}

	// S 切换提示音
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.settings.SetSoundEnabled(!a.settings.GetSettings().SoundEnabled)
		a.saveSettings()
	}

	// P 切换到下一个预设
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.nextPreset()
	}

	a.input.Update()
	a.env.Step()
	a.claims.Poll()
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if !fullscreen {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settings.SetFullscreen(fullscreen)
	a.saveSettings()
}

func (a *App) nextPreset() {
	names := a.presets.Names()
	next := names[0]
	for i, name := range names {
		if name == a.preset && i+1 < len(names) {
			next = names[i+1]
		}
	}

	// 切换预设时放弃精灵覆盖
	a.settings.SetSprite("")
	a.settings.SetPreset(next)
	preset, spriteRef := a.selectPreset(next)
	a.hook.Update(sprite.Static(spriteRef), a.hook.Enabled(), preset.Options)
	a.saveSettings()
	log.Printf("[App] 切换预设: %s (%s)", a.preset, spriteRef)
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// 配色
var (
	backgroundColor = color.RGBA{R: 24, G: 26, B: 38, A: 255}
	buttonColor     = color.RGBA{R: 242, G: 184, B: 48, A: 255}
	buttonHotColor  = color.RGBA{R: 255, G: 208, B: 92, A: 255}
	labelColor      = color.RGBA{R: 40, G: 28, B: 8, A: 255}
	hintColor       = color.RGBA{R: 170, G: 176, B: 196, A: 255}
)

// Draw 绘制画面，覆盖层最后绘制
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	b := a.button.Bounds
	fill := buttonColor
	if a.hook.Current().Emitting() {
		fill = buttonHotColor
	}
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), fill, true)

	a.drawCentered(screen, "Withdraw my winnings", a.labelFont, b.X+b.W/2, b.Y+b.H/2, labelColor)

	status := a.claims.Poll()
	line := fmt.Sprintf("claim: %s", status.Status)
	if status.Err != nil {
		line += " (" + status.Err.Error() + ")"
	}
	a.drawCentered(screen, line, a.hintFont, ScreenWidth/2, b.Y+b.H+36, hintColor)

	effect := "on"
	if !a.hook.Enabled() {
		effect = "off"
	}
	hint := fmt.Sprintf("preset %s  |  sprite %s  |  effect %s  |  E effect  S sound  P preset  F11 fullscreen", a.preset, a.sprite, effect)
	a.drawCentered(screen, hint, a.hintFont, ScreenWidth/2, ScreenHeight-24, hintColor)

	a.render.Draw(screen)
}

func (a *App) drawCentered(screen *ebiten.Image, s string, face *text.GoTextFace, cx, cy float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, s, face, op)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// Ebitengine 会自动处理缩放，光标坐标已是逻辑坐标
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Close 拆除附着并保存设置
func (a *App) Close() {
	a.hook.Close()
	a.claims.Cancel()
	a.audio.Close()
	a.saveSettings()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
