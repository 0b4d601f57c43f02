// Package main 提供无界面的喷发模拟器，用于调参与回归
//
// 在手动时钟上按固定步长驱动一个附着实例：脚本化手势按下、摆动、
// 抬起、拆除，逐帧追踪写入 CSV，最后打印统计摘要。
//
// Usage:
//
//	go run ./cmd/burstsim [flags]
//
// Flags:
//
//	--preset <name>     喷发预设（默认 claim）
//	--presets <file>    预设文件（默认 data/burst_presets.yaml）
//	--sprite <ref>      覆盖预设的精灵引用
//	--ticks <n>         最多模拟的帧数
//	--seed <n>          随机种子
//	--out <file>        逐帧追踪 CSV，为空则不输出
//	--tui               终端实时预览（鼠标拖动按钮喷发）
//	--sound             预览时每次突发播放提示音
//	--list              列出预设后退出
//	--verbose           启用详细日志
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/coolmode/pkg/config"
)

var (
	presetFlag  = flag.String("preset", "claim", "Burst preset name")
	presetsFlag = flag.String("presets", config.BurstPresetsFile, "Burst presets YAML file")
	spriteFlag  = flag.String("sprite", "", "Override the preset sprite reference")
	ticksFlag   = flag.Int("ticks", 60*30, "Maximum number of simulated frames")
	seedFlag    = flag.Uint64("seed", 1, "Random seed")
	outFlag     = flag.String("out", "", "Per-tick trace CSV path")
	tuiFlag     = flag.Bool("tui", false, "Interactive terminal preview")
	soundFlag   = flag.Bool("sound", false, "Play a pop on every burst (with --tui)")
	listFlag    = flag.Bool("list", false, "List presets and exit")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "burstsim: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	presets, err := config.LoadBurstPresets(*presetsFlag)
	if err != nil {
		return err
	}
	if *listFlag {
		for _, p := range presets.Presets {
			fmt.Printf("%-10s %s\n", p.Name, p.Sprite)
		}
		return nil
	}

	preset, ok := presets.Get(*presetFlag)
	if !ok {
		return fmt.Errorf("unknown preset %q (available: %v)", *presetFlag, presets.Names())
	}
	spriteRef := preset.Sprite
	if *spriteFlag != "" {
		spriteRef = *spriteFlag
	}

	if *tuiFlag {
		return runPreview(preset, spriteRef)
	}
	return runHeadless(preset, spriteRef)
}

func runHeadless(preset config.BurstPreset, spriteRef string) error {
	sim, err := NewSimulation(SimConfig{
		Options: preset.Options,
		Sprite:  spriteRef,
		Seed:    *seedFlag,
		Dt:      time.Second / 60,
		Gesture: DefaultGesture(),
	})
	if err != nil {
		return err
	}

	trace, err := CreateTraceFile(*outFlag)
	if err != nil {
		return err
	}
	defer trace.Close()

	summary, err := sim.Run(*ticksFlag, trace.Write)
	if err != nil {
		return err
	}

	fmt.Printf("preset %s (%s)\n", preset.Name, spriteRef)
	fmt.Println(summary)
	if trace != nil {
		fmt.Printf("trace: %d rows -> %s\n", trace.Rows(), *outFlag)
	}
	return nil
}

func runPreview(preset config.BurstPreset, spriteRef string) error {
	var sound *popPlayer
	if *soundFlag {
		var err error
		if sound, err = newPopPlayer(); err != nil {
			log.Printf("[BurstSim] sound disabled: %v", err)
			sound = nil
		}
	}
	defer sound.Close()

	preview, err := NewPreview(preset.Options, spriteRef, preset.Name, sound)
	if err != nil {
		return err
	}
	defer preview.Close()

	preview.Run()
	return nil
}
