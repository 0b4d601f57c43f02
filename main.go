package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/coolmode/pkg/app"
	"github.com/decker502/coolmode/pkg/embedded"
)

var (
	verbose     = flag.Bool("verbose", false, "启用详细日志输出")
	preset      = flag.String("preset", "", "喷发预设名称（default, claim, hearts, sparks）")
	spriteRef   = flag.String("sprite", "", "覆盖预设的精灵引用，如 builtin:coin 或 assets/sprites/heart.png")
	presetsFile = flag.String("presets", "", "外部预设 YAML 文件，默认使用内置预设")
	claimFails  = flag.Bool("claim-fail", false, "模拟领奖交易失败")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		Preset:      *preset,
		Sprite:      *spriteRef,
		PresetsFile: *presetsFile,
		ClaimFails:  *claimFails,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Cool Mode - Withdraw my winnings")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
